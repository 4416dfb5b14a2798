package records

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/monicli/internal/client/models"
	"github.com/dmitrijs2005/monicli/internal/common"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE records (
  local_id TEXT PRIMARY KEY,
  record_type TEXT NOT NULL,
  remote_id INTEGER,
  contact_id INTEGER NOT NULL DEFAULT 0,
  payload TEXT NOT NULL,
  sync_status TEXT NOT NULL DEFAULT 'pending',
  sync_error TEXT NOT NULL DEFAULT '',
  last_sync_attempt TIMESTAMP,
  deleted INTEGER NOT NULL DEFAULT 0,
  created_at TIMESTAMP NOT NULL,
  updated_at TIMESTAMP NOT NULL
);
`)
	require.NoError(t, err)
	return db
}

func newDebtRecord(t *testing.T, contactID int64, amount float64) *models.Record {
	t.Helper()
	rec, err := models.NewRecord(models.RecordTypeDebt, contactID, models.Debt{
		ContactID: contactID,
		InDebt:    models.InDebtNo,
		Status:    models.DebtStatusInProgress,
		Amount:    amount,
	})
	require.NoError(t, err)
	return rec
}

func TestSQLiteRepository_InsertAndGetByLocalID(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	rec := newDebtRecord(t, 5, 40)
	require.NoError(t, r.Insert(ctx, rec))

	got, err := r.GetByLocalID(ctx, rec.LocalID)
	require.NoError(t, err)
	assert.Equal(t, rec.LocalID, got.LocalID)
	assert.Equal(t, models.RecordTypeDebt, got.Type)
	assert.Equal(t, models.SyncStatusPending, got.SyncStatus)
	assert.Nil(t, got.RemoteID)
	assert.Nil(t, got.LastSyncAttempt)
	assert.EqualValues(t, 5, got.ContactID)
	assert.WithinDuration(t, rec.CreatedAt, got.CreatedAt, time.Microsecond)

	var d models.Debt
	require.NoError(t, got.Decode(&d))
	assert.Equal(t, 40.0, d.Amount)
}

func TestSQLiteRepository_GetByLocalID_NotFound(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	_, err := r.GetByLocalID(context.Background(), "nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSQLiteRepository_Update_RoundTripsSyncState(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	rec := newDebtRecord(t, 1, 10)
	require.NoError(t, r.Insert(ctx, rec))

	rec.MarkFailed(errors.New("timeout talking to server"))
	require.NoError(t, r.Update(ctx, rec))

	got, err := r.GetByLocalID(ctx, rec.LocalID)
	require.NoError(t, err)
	assert.Equal(t, models.SyncStatusFailed, got.SyncStatus)
	assert.Equal(t, "timeout talking to server", got.SyncError)
	require.NotNil(t, got.LastSyncAttempt)

	rec.MarkSynced(99)
	require.NoError(t, r.Update(ctx, rec))

	got, err = r.GetByLocalID(ctx, rec.LocalID)
	require.NoError(t, err)
	assert.Equal(t, models.SyncStatusSynced, got.SyncStatus)
	require.NotNil(t, got.RemoteID)
	assert.EqualValues(t, 99, *got.RemoteID)
	assert.Empty(t, got.SyncError)
}

func TestSQLiteRepository_Update_MissingRow(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	rec := newDebtRecord(t, 1, 10)
	err := r.Update(context.Background(), rec)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSQLiteRepository_GetAll_ExcludesDeleted(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	keep := newDebtRecord(t, 1, 10)
	gone := newDebtRecord(t, 1, 20)
	require.NoError(t, r.Insert(ctx, keep))
	require.NoError(t, r.Insert(ctx, gone))

	gone.MarkDeleted()
	require.NoError(t, r.Update(ctx, gone))

	got, err := r.GetAll(ctx, models.RecordTypeDebt)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, keep.LocalID, got[0].LocalID)
}

func TestSQLiteRepository_GetByContact_ScopesRows(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	first := newDebtRecord(t, 1, 10)
	second := newDebtRecord(t, 2, 20)
	require.NoError(t, r.Insert(ctx, first))
	require.NoError(t, r.Insert(ctx, second))

	got, err := r.GetByContact(ctx, models.RecordTypeDebt, 2)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, second.LocalID, got[0].LocalID)
}

func TestSQLiteRepository_GetDeleted_ReturnsTombstones(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	live := newDebtRecord(t, 1, 10)
	tomb := newDebtRecord(t, 1, 20)
	tomb.MarkDeleted()
	otherContact := newDebtRecord(t, 2, 30)
	otherContact.MarkDeleted()
	for _, rec := range []*models.Record{live, tomb, otherContact} {
		require.NoError(t, r.Insert(ctx, rec))
	}

	got, err := r.GetDeleted(ctx, models.RecordTypeDebt, 0)
	require.NoError(t, err)
	assert.Len(t, got, 2, "contactID 0 spans all contacts")

	got, err = r.GetDeleted(ctx, models.RecordTypeDebt, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, tomb.LocalID, got[0].LocalID)
	assert.True(t, got[0].Deleted)
}

func TestSQLiteRepository_GetUnsynced_OrderAndDeletedRows(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	oldest := newDebtRecord(t, 1, 1)
	oldest.CreatedAt = time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	middle := newDebtRecord(t, 1, 2)
	middle.CreatedAt = time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC)
	newest := newDebtRecord(t, 1, 3)
	newest.CreatedAt = time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)

	// middle is soft-deleted but still pending: the sweep must see it
	middle.MarkDeleted()
	// newest is already synced: the sweep must skip it
	newest.MarkSynced(7)

	for _, rec := range []*models.Record{newest, oldest, middle} {
		require.NoError(t, r.Insert(ctx, rec))
	}

	got, err := r.GetUnsynced(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, oldest.LocalID, got[0].LocalID, "oldest first")
	assert.Equal(t, middle.LocalID, got[1].LocalID)
	assert.True(t, got[1].Deleted)
}

func TestSQLiteRepository_HardDeleteAndClear(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	one := newDebtRecord(t, 1, 1)
	two := newDebtRecord(t, 1, 2)
	require.NoError(t, r.Insert(ctx, one))
	require.NoError(t, r.Insert(ctx, two))

	require.NoError(t, r.HardDelete(ctx, one.LocalID))
	_, err := r.GetByLocalID(ctx, one.LocalID)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	require.NoError(t, r.Clear(ctx))
	got, err := r.GetAll(ctx, models.RecordTypeDebt)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSQLiteRepository_Insert_ExecError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO records").WillReturnError(errors.New("disk I/O error"))

	r := NewSQLiteRepository(db)
	rec := newDebtRecord(t, 1, 1)
	err = r.Insert(context.Background(), rec)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to insert record")
	require.NoError(t, mock.ExpectationsWereMet())
}
