// Package syncer reconciles local record rows against the remote API.
//
// The engine owns the sync-status state machine: pending/failed rows are
// pushed with the create, update or delete endpoint matching their state;
// success flips them to synced (stamping the server identifier), failure
// flips them to failed with the error absorbed into the row. A failure on
// one record never blocks the rest of a sweep, and there is no automatic
// retry — the next externally triggered sweep picks failed rows up again.
package syncer

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/monicli/internal/api"
	"github.com/dmitrijs2005/monicli/internal/client/models"
	"github.com/dmitrijs2005/monicli/internal/client/repositories/records"
	"github.com/dmitrijs2005/monicli/internal/logging"
)

// Engine pushes local records to the server.
type Engine struct {
	api  *api.Client
	repo records.Repository
	log  logging.Logger
}

// New returns an Engine bound to the given API client and record store.
func New(apiClient *api.Client, repo records.Repository, log logging.Logger) *Engine {
	return &Engine{api: apiClient, repo: repo, log: log.With("component", "syncer")}
}

// Summary reports the outcome of one sweep.
type Summary struct {
	Synced  int
	Failed  int
	Removed int
}

// SyncAll sweeps every pending and failed record, oldest first. Remote
// failures are absorbed into the records; the returned error is non-nil
// only when the local store itself fails.
func (e *Engine) SyncAll(ctx context.Context) (Summary, error) {
	recs, err := e.repo.GetUnsynced(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("loading unsynced records: %w", err)
	}

	var sum Summary
	for _, rec := range recs {
		removed, err := e.SyncRecord(ctx, rec)
		if err != nil {
			return sum, err
		}
		switch {
		case removed:
			sum.Removed++
		case rec.SyncStatus == models.SyncStatusSynced:
			sum.Synced++
		default:
			sum.Failed++
		}
	}

	e.log.Info(ctx, "sync sweep finished",
		"synced", sum.Synced, "failed", sum.Failed, "removed", sum.Removed)
	return sum, nil
}

// SyncRecord pushes a single record and persists the resulting state.
// It returns removed=true when the row was purged (a confirmed delete).
// Remote errors are captured in the record, not returned.
func (e *Engine) SyncRecord(ctx context.Context, rec *models.Record) (bool, error) {
	if !rec.Unsynced() {
		return false, nil
	}

	if rec.Deleted {
		return e.syncDelete(ctx, rec)
	}

	remoteID, err := e.pushUpsert(ctx, rec)
	if err != nil {
		return false, e.recordFailure(ctx, rec, err)
	}
	rec.MarkSynced(remoteID)
	if err := e.repo.Update(ctx, rec); err != nil {
		return false, fmt.Errorf("storing synced record: %w", err)
	}
	e.log.Debug(ctx, "record synced", "local_id", rec.LocalID, "type", rec.Type, "remote_id", remoteID)
	return false, nil
}

func (e *Engine) syncDelete(ctx context.Context, rec *models.Record) (bool, error) {
	// A row that never reached the server has nothing to delete remotely.
	if rec.RemoteID != nil {
		if err := e.pushDelete(ctx, rec); err != nil {
			return false, e.recordFailure(ctx, rec, err)
		}
	}
	if err := e.repo.HardDelete(ctx, rec.LocalID); err != nil {
		return false, fmt.Errorf("purging deleted record: %w", err)
	}
	e.log.Debug(ctx, "record removed", "local_id", rec.LocalID, "type", rec.Type)
	return true, nil
}

func (e *Engine) recordFailure(ctx context.Context, rec *models.Record, cause error) error {
	rec.MarkFailed(cause)
	e.log.Warn(ctx, "sync attempt failed",
		"local_id", rec.LocalID, "type", rec.Type, "error", cause)
	if err := e.repo.Update(ctx, rec); err != nil {
		return fmt.Errorf("storing failed record: %w", err)
	}
	return nil
}

// pushUpsert calls the create or update endpoint matching the record type
// and returns the server-assigned identifier.
func (e *Engine) pushUpsert(ctx context.Context, rec *models.Record) (int64, error) {
	switch rec.Type {
	case models.RecordTypeCall:
		var p models.CallLog
		if err := rec.Decode(&p); err != nil {
			return 0, fmt.Errorf("decoding call payload: %w", err)
		}
		if rec.RemoteID == nil {
			created, err := e.api.CreateCall(ctx, p)
			if err != nil {
				return 0, err
			}
			return created.ID, nil
		}
		updated, err := e.api.UpdateCall(ctx, *rec.RemoteID, p)
		if err != nil {
			return 0, err
		}
		return updated.ID, nil

	case models.RecordTypeDebt:
		var p models.Debt
		if err := rec.Decode(&p); err != nil {
			return 0, fmt.Errorf("decoding debt payload: %w", err)
		}
		if rec.RemoteID == nil {
			created, err := e.api.CreateDebt(ctx, p)
			if err != nil {
				return 0, err
			}
			return created.ID, nil
		}
		updated, err := e.api.UpdateDebt(ctx, *rec.RemoteID, p)
		if err != nil {
			return 0, err
		}
		return updated.ID, nil

	case models.RecordTypeConversation:
		var p models.Conversation
		if err := rec.Decode(&p); err != nil {
			return 0, fmt.Errorf("decoding conversation payload: %w", err)
		}
		if rec.RemoteID == nil {
			created, err := e.api.CreateConversation(ctx, p)
			if err != nil {
				return 0, err
			}
			return created.ID, nil
		}
		updated, err := e.api.UpdateConversation(ctx, *rec.RemoteID, p)
		if err != nil {
			return 0, err
		}
		return updated.ID, nil

	case models.RecordTypeRelationship:
		var p models.Relationship
		if err := rec.Decode(&p); err != nil {
			return 0, fmt.Errorf("decoding relationship payload: %w", err)
		}
		if rec.RemoteID == nil {
			created, err := e.api.CreateRelationship(ctx, p)
			if err != nil {
				return 0, err
			}
			return created.ID, nil
		}
		updated, err := e.api.UpdateRelationship(ctx, *rec.RemoteID, p)
		if err != nil {
			return 0, err
		}
		return updated.ID, nil

	case models.RecordTypeDayEntry:
		var p models.DayEntry
		if err := rec.Decode(&p); err != nil {
			return 0, fmt.Errorf("decoding day entry payload: %w", err)
		}
		if rec.RemoteID == nil {
			created, err := e.api.CreateDayEntry(ctx, p)
			if err != nil {
				return 0, err
			}
			return created.ID, nil
		}
		updated, err := e.api.UpdateDayEntry(ctx, *rec.RemoteID, p)
		if err != nil {
			return 0, err
		}
		return updated.ID, nil

	default:
		return 0, fmt.Errorf("unknown record type %q", rec.Type)
	}
}

func (e *Engine) pushDelete(ctx context.Context, rec *models.Record) error {
	id := *rec.RemoteID
	switch rec.Type {
	case models.RecordTypeCall:
		return e.api.DeleteCall(ctx, id)
	case models.RecordTypeDebt:
		return e.api.DeleteDebt(ctx, id)
	case models.RecordTypeConversation:
		return e.api.DeleteConversation(ctx, id)
	case models.RecordTypeRelationship:
		return e.api.DeleteRelationship(ctx, id)
	case models.RecordTypeDayEntry:
		return e.api.DeleteDayEntry(ctx, id)
	default:
		return fmt.Errorf("unknown record type %q", rec.Type)
	}
}
