package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/monicli/internal/api"
	"github.com/dmitrijs2005/monicli/internal/client/models"
	"github.com/dmitrijs2005/monicli/internal/client/repositories/records"
	"github.com/dmitrijs2005/monicli/internal/client/syncer"
	"github.com/dmitrijs2005/monicli/internal/logging"
)

// CallItem pairs a local record with its decoded payload for display.
type CallItem struct {
	Record *models.Record
	Call   models.CallLog
}

// CallService owns the call log list for one contact at a time.
type CallService struct {
	viewState

	api    *api.Client
	repo   records.Repository
	engine *syncer.Engine
	log    logging.Logger
	online func() bool

	Items []CallItem
}

func NewCallService(apiClient *api.Client, repo records.Repository, engine *syncer.Engine, log logging.Logger, online func() bool) *CallService {
	return &CallService{
		api:    apiClient,
		repo:   repo,
		engine: engine,
		log:    log.With("component", "calls"),
		online: online,
	}
}

// Fetch refreshes the call list for a contact, mirroring server rows when
// online and always re-reading the local store.
func (s *CallService) Fetch(ctx context.Context, contactID int64) {
	s.begin()
	defer s.finish()

	if s.online() {
		remote, err := s.api.ListCalls(ctx, contactID)
		if err != nil {
			s.fail(fmt.Errorf("fetching calls: %w", err))
		} else {
			rows := make([]remoteRow, 0, len(remote))
			for _, c := range remote {
				p := c.Payload()
				if p.ContactID == 0 {
					p.ContactID = contactID
				}
				rows = append(rows, remoteRow{ID: c.ID, ContactID: p.ContactID, Payload: p})
			}
			if _, err := mirrorRemote(ctx, s.repo, models.RecordTypeCall, contactID, rows); err != nil {
				s.fail(err)
			}
		}
	}

	if err := s.reload(ctx, contactID); err != nil {
		s.fail(err)
	}
}

// Create logs a new call locally and pushes it when online.
func (s *CallService) Create(ctx context.Context, call models.CallLog) bool {
	s.begin()
	defer s.finish()

	rec, err := models.NewRecord(models.RecordTypeCall, call.ContactID, call)
	if err != nil {
		return s.fail(err)
	}
	if err := s.repo.Insert(ctx, rec); err != nil {
		return s.fail(err)
	}
	s.push(ctx, rec)

	if err := s.reload(ctx, call.ContactID); err != nil {
		return s.fail(err)
	}
	return true
}

// Update replaces the payload of an existing call log and re-arms it for
// sync.
func (s *CallService) Update(ctx context.Context, localID string, call models.CallLog) bool {
	s.begin()
	defer s.finish()

	rec, err := s.repo.GetByLocalID(ctx, localID)
	if err != nil {
		return s.fail(err)
	}
	if err := rec.SetPayload(call); err != nil {
		return s.fail(err)
	}
	rec.ContactID = call.ContactID
	if err := s.repo.Update(ctx, rec); err != nil {
		return s.fail(err)
	}
	s.push(ctx, rec)

	if err := s.reload(ctx, rec.ContactID); err != nil {
		return s.fail(err)
	}
	return true
}

// Delete soft-deletes a call log.
func (s *CallService) Delete(ctx context.Context, localID string) bool {
	s.begin()
	defer s.finish()

	rec, err := s.repo.GetByLocalID(ctx, localID)
	if err != nil {
		return s.fail(err)
	}
	rec.MarkDeleted()
	if err := s.repo.Update(ctx, rec); err != nil {
		return s.fail(err)
	}
	s.push(ctx, rec)

	if err := s.reload(ctx, rec.ContactID); err != nil {
		return s.fail(err)
	}
	return true
}

func (s *CallService) push(ctx context.Context, rec *models.Record) {
	if !s.online() {
		return
	}
	if _, err := s.engine.SyncRecord(ctx, rec); err != nil {
		s.log.Warn(ctx, "push failed", "local_id", rec.LocalID, "error", err)
	}
}

func (s *CallService) reload(ctx context.Context, contactID int64) error {
	recs, err := listLocal(ctx, s.repo, models.RecordTypeCall, contactID)
	if err != nil {
		return err
	}
	items := make([]CallItem, 0, len(recs))
	for _, rec := range recs {
		c, err := decodeInto[models.CallLog](rec)
		if err != nil {
			return err
		}
		items = append(items, CallItem{Record: rec, Call: c})
	}
	s.Items = items
	return nil
}
