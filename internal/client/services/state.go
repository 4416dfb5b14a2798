// Package services contains the application services behind each feature
// view: one service per trackable record type plus contacts and auth.
//
// Every feature service follows the same contract: Fetch replaces the
// in-memory list (the Loading flag is set for the duration and always
// cleared), mutations return a success bool and set ErrorMessage instead of
// raising, and derived aggregates are recomputed on every list change.
// Mutations are written to the local store first and pushed
// opportunistically through the sync engine, so every record type works
// offline.
package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/monicli/internal/client/models"
	"github.com/dmitrijs2005/monicli/internal/client/repositories/records"
)

// viewState carries the UI-facing flags every feature service exposes.
// The presentation layer reads these directly; operations never leave
// Loading set after completion.
type viewState struct {
	Loading      bool
	ErrorMessage string
}

func (v *viewState) begin() {
	v.Loading = true
	v.ErrorMessage = ""
}

func (v *viewState) finish() {
	v.Loading = false
}

// fail records a displayable message and returns false for use as a
// mutation result.
func (v *viewState) fail(err error) bool {
	v.ErrorMessage = err.Error()
	return false
}

// remoteRow is one row fetched from the server, normalized for the mirror.
type remoteRow struct {
	ID        int64
	ContactID int64
	Payload   any
}

// mirrorRemote reconciles rows fetched from the server into the local
// mirror for one record type and scope (contactID 0 means all contacts),
// then returns the refreshed local rows, newest first.
//
// Rules: a clean (synced) local row is overwritten with the server copy; a
// locally edited row wins until its push; a soft-deleted row suppresses its
// server copy until the delete goes through; a synced row the server no
// longer returns is purged; unseen server rows are inserted as synced.
func mirrorRemote(ctx context.Context, repo records.Repository, t models.RecordType, contactID int64, remote []remoteRow) ([]*models.Record, error) {
	local, err := listLocal(ctx, repo, t, contactID)
	if err != nil {
		return nil, err
	}
	tombstones, err := repo.GetDeleted(ctx, t, contactID)
	if err != nil {
		return nil, err
	}

	byRemoteID := make(map[int64]*models.Record)
	for _, rec := range local {
		if rec.RemoteID != nil {
			byRemoteID[*rec.RemoteID] = rec
		}
	}
	deletedRemote := make(map[int64]bool, len(tombstones))
	for _, rec := range tombstones {
		if rec.RemoteID != nil {
			deletedRemote[*rec.RemoteID] = true
		}
	}

	seen := make(map[int64]bool, len(remote))
	for _, row := range remote {
		seen[row.ID] = true
		if deletedRemote[row.ID] {
			// the delete is still queued; do not resurrect the row
			continue
		}
		rec, ok := byRemoteID[row.ID]
		if !ok {
			rec, err = models.NewRecord(t, row.ContactID, row.Payload)
			if err != nil {
				return nil, err
			}
			if err := rec.ApplyRemote(row.ID, row.Payload); err != nil {
				return nil, err
			}
			if err := repo.Insert(ctx, rec); err != nil {
				return nil, err
			}
			continue
		}
		if rec.Unsynced() {
			// local changes pending; they win until pushed
			continue
		}
		if err := rec.ApplyRemote(row.ID, row.Payload); err != nil {
			return nil, err
		}
		if err := repo.Update(ctx, rec); err != nil {
			return nil, err
		}
	}

	// synced rows the server no longer returns were deleted remotely
	for _, rec := range local {
		if rec.RemoteID != nil && !seen[*rec.RemoteID] && rec.SyncStatus == models.SyncStatusSynced {
			if err := repo.HardDelete(ctx, rec.LocalID); err != nil {
				return nil, err
			}
		}
	}

	return listLocal(ctx, repo, t, contactID)
}

func listLocal(ctx context.Context, repo records.Repository, t models.RecordType, contactID int64) ([]*models.Record, error) {
	if contactID == 0 {
		return repo.GetAll(ctx, t)
	}
	return repo.GetByContact(ctx, t, contactID)
}

// decodeInto is a small helper for building typed view items.
func decodeInto[T any](rec *models.Record) (T, error) {
	var v T
	if err := json.Unmarshal(rec.Payload, &v); err != nil {
		return v, fmt.Errorf("decoding %s payload: %w", rec.Type, err)
	}
	return v, nil
}
