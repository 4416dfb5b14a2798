package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecord_StartsPending(t *testing.T) {
	rec, err := NewRecord(RecordTypeDebt, 7, Debt{ContactID: 7, InDebt: InDebtNo, Status: DebtStatusInProgress, Amount: 25})
	require.NoError(t, err)

	assert.NotEmpty(t, rec.LocalID)
	assert.Equal(t, SyncStatusPending, rec.SyncStatus)
	assert.Nil(t, rec.RemoteID)
	assert.False(t, rec.Deleted)
	assert.False(t, rec.CreatedAt.IsZero())
	assert.Equal(t, rec.CreatedAt, rec.UpdatedAt)

	var d Debt
	require.NoError(t, rec.Decode(&d))
	assert.Equal(t, 25.0, d.Amount)
}

func TestRecord_MarkSynced_StampsRemoteIDAndClearsError(t *testing.T) {
	rec, err := NewRecord(RecordTypeCall, 1, CallLog{ContactID: 1, CalledAt: "2026-08-30T10:00:00Z"})
	require.NoError(t, err)

	rec.MarkFailed(errors.New("connection refused"))
	assert.Equal(t, SyncStatusFailed, rec.SyncStatus)
	assert.Equal(t, "connection refused", rec.SyncError)
	require.NotNil(t, rec.LastSyncAttempt)

	rec.MarkSynced(42)
	assert.Equal(t, SyncStatusSynced, rec.SyncStatus)
	require.NotNil(t, rec.RemoteID)
	assert.EqualValues(t, 42, *rec.RemoteID)
	assert.Empty(t, rec.SyncError)
}

func TestRecord_SetPayload_RearmsSyncedRecord(t *testing.T) {
	rec, err := NewRecord(RecordTypeDayEntry, 0, DayEntry{Rate: 3, Date: "2026-08-30"})
	require.NoError(t, err)
	rec.MarkSynced(9)

	require.NoError(t, rec.SetPayload(DayEntry{Rate: 5, Date: "2026-08-30"}))
	assert.Equal(t, SyncStatusPending, rec.SyncStatus, "local edit of a synced record must re-arm it")
	assert.Empty(t, rec.SyncError)
	// the server identifier survives the edit; the next sync is an update
	require.NotNil(t, rec.RemoteID)
}

func TestRecord_ApplyRemote_DoesNotRearm(t *testing.T) {
	rec, err := NewRecord(RecordTypeDebt, 1, Debt{ContactID: 1, InDebt: InDebtNo, Status: DebtStatusInProgress, Amount: 10})
	require.NoError(t, err)
	rec.MarkFailed(errors.New("boom"))

	require.NoError(t, rec.ApplyRemote(31, Debt{ContactID: 1, InDebt: InDebtNo, Status: DebtStatusInProgress, Amount: 12}))

	assert.Equal(t, SyncStatusSynced, rec.SyncStatus, "a server refresh must not queue the record for sync")
	require.NotNil(t, rec.RemoteID)
	assert.EqualValues(t, 31, *rec.RemoteID)
	assert.Empty(t, rec.SyncError)

	var d Debt
	require.NoError(t, rec.Decode(&d))
	assert.Equal(t, 12.0, d.Amount)
}

func TestRecord_MarkDeleted(t *testing.T) {
	t.Run("synced record is re-armed so the delete propagates", func(t *testing.T) {
		rec, err := NewRecord(RecordTypeConversation, 2, Conversation{ContactID: 2, HappenedAt: "2026-08-01"})
		require.NoError(t, err)
		rec.MarkSynced(11)

		rec.MarkDeleted()
		assert.True(t, rec.Deleted)
		assert.Equal(t, SyncStatusPending, rec.SyncStatus)
	})

	t.Run("pending record keeps its status", func(t *testing.T) {
		rec, err := NewRecord(RecordTypeConversation, 2, Conversation{ContactID: 2, HappenedAt: "2026-08-01"})
		require.NoError(t, err)

		rec.MarkDeleted()
		assert.True(t, rec.Deleted)
		assert.Equal(t, SyncStatusPending, rec.SyncStatus)
	})

	t.Run("failed record keeps its status", func(t *testing.T) {
		rec, err := NewRecord(RecordTypeConversation, 2, Conversation{ContactID: 2, HappenedAt: "2026-08-01"})
		require.NoError(t, err)
		rec.MarkFailed(errors.New("boom"))

		rec.MarkDeleted()
		assert.True(t, rec.Deleted)
		assert.Equal(t, SyncStatusFailed, rec.SyncStatus)
	})
}

func TestRecord_Unsynced(t *testing.T) {
	rec, err := NewRecord(RecordTypeDebt, 1, Debt{ContactID: 1, Amount: 1, InDebt: InDebtNo, Status: DebtStatusInProgress})
	require.NoError(t, err)

	assert.True(t, rec.Unsynced())
	rec.MarkSynced(1)
	assert.False(t, rec.Unsynced())
	rec.MarkFailed(errors.New("x"))
	assert.True(t, rec.Unsynced())
}

func TestSyncStatus_Valid(t *testing.T) {
	assert.True(t, SyncStatusPending.Valid())
	assert.True(t, SyncStatusSynced.Valid())
	assert.True(t, SyncStatusFailed.Valid())
	assert.False(t, SyncStatus("syncing").Valid())
	assert.False(t, SyncStatus("").Valid())
}

func TestContact_DisplayName(t *testing.T) {
	tests := []struct {
		name    string
		contact Contact
		want    string
	}{
		{"complete name wins", Contact{CompleteName: "John Doe", FirstName: "J"}, "John Doe"},
		{"first and last", Contact{FirstName: "Ada", LastName: "Lovelace"}, "Ada Lovelace"},
		{"first only", Contact{FirstName: "Ada"}, "Ada"},
		{"nickname fallback", Contact{Nickname: "ada"}, "ada"},
		{"placeholder", Contact{}, "(unknown)"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.contact.DisplayName())
		})
	}
}

func TestDebt_Outstanding(t *testing.T) {
	assert.True(t, Debt{Status: DebtStatusInProgress}.Outstanding())
	assert.False(t, Debt{Status: DebtStatusCompleted}.Outstanding())
}
