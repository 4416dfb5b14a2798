package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/monicli/internal/api"
	"github.com/dmitrijs2005/monicli/internal/client/models"
	"github.com/dmitrijs2005/monicli/internal/client/repositories/records"
	"github.com/dmitrijs2005/monicli/internal/client/syncer"
	"github.com/dmitrijs2005/monicli/internal/logging"
)

// MoodItem pairs a local record with its decoded day entry.
type MoodItem struct {
	Record *models.Record
	Entry  models.DayEntry
}

// MoodService owns the mood journal. Day entries are account-wide; they
// carry no contact scope.
type MoodService struct {
	viewState

	api    *api.Client
	repo   records.Repository
	engine *syncer.Engine
	log    logging.Logger
	online func() bool

	Items []MoodItem
}

func NewMoodService(apiClient *api.Client, repo records.Repository, engine *syncer.Engine, log logging.Logger, online func() bool) *MoodService {
	return &MoodService{
		api:    apiClient,
		repo:   repo,
		engine: engine,
		log:    log.With("component", "moods"),
		online: online,
	}
}

// Fetch refreshes the mood journal.
func (s *MoodService) Fetch(ctx context.Context) {
	s.begin()
	defer s.finish()

	if s.online() {
		remote, err := s.api.ListDayEntries(ctx)
		if err != nil {
			s.fail(fmt.Errorf("fetching day entries: %w", err))
		} else {
			rows := make([]remoteRow, 0, len(remote))
			for _, d := range remote {
				rows = append(rows, remoteRow{ID: d.ID, Payload: d.Payload()})
			}
			if _, err := mirrorRemote(ctx, s.repo, models.RecordTypeDayEntry, 0, rows); err != nil {
				s.fail(err)
			}
		}
	}

	if err := s.reload(ctx); err != nil {
		s.fail(err)
	}
}

// Create stores a new day entry. The mood rate must be between 1 and 5 and
// the date must be set.
func (s *MoodService) Create(ctx context.Context, entry models.DayEntry) bool {
	s.begin()
	defer s.finish()

	if entry.Rate < 1 || entry.Rate > 5 {
		return s.fail(errors.New("mood rate must be between 1 and 5"))
	}
	if entry.Date == "" {
		return s.fail(errors.New("date is required"))
	}

	rec, err := models.NewRecord(models.RecordTypeDayEntry, 0, entry)
	if err != nil {
		return s.fail(err)
	}
	if err := s.repo.Insert(ctx, rec); err != nil {
		return s.fail(err)
	}
	s.push(ctx, rec)

	if err := s.reload(ctx); err != nil {
		return s.fail(err)
	}
	return true
}

// Update replaces an existing day entry and re-arms it for sync. The same
// validations as Create apply.
func (s *MoodService) Update(ctx context.Context, localID string, entry models.DayEntry) bool {
	s.begin()
	defer s.finish()

	if entry.Rate < 1 || entry.Rate > 5 {
		return s.fail(errors.New("mood rate must be between 1 and 5"))
	}
	if entry.Date == "" {
		return s.fail(errors.New("date is required"))
	}

	rec, err := s.repo.GetByLocalID(ctx, localID)
	if err != nil {
		return s.fail(err)
	}
	if err := rec.SetPayload(entry); err != nil {
		return s.fail(err)
	}
	if err := s.repo.Update(ctx, rec); err != nil {
		return s.fail(err)
	}
	s.push(ctx, rec)

	if err := s.reload(ctx); err != nil {
		return s.fail(err)
	}
	return true
}

// Delete soft-deletes a day entry.
func (s *MoodService) Delete(ctx context.Context, localID string) bool {
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

	if err := s.reload(ctx); err != nil {
		return s.fail(err)
	}
	return true
}

func (s *MoodService) push(ctx context.Context, rec *models.Record) {
	if !s.online() {
		return
	}
	if _, err := s.engine.SyncRecord(ctx, rec); err != nil {
		s.log.Warn(ctx, "push failed", "local_id", rec.LocalID, "error", err)
	}
}

func (s *MoodService) reload(ctx context.Context) error {
	recs, err := s.repo.GetAll(ctx, models.RecordTypeDayEntry)
	if err != nil {
		return err
	}
	items := make([]MoodItem, 0, len(recs))
	for _, rec := range recs {
		d, err := decodeInto[models.DayEntry](rec)
		if err != nil {
			return err
		}
		items = append(items, MoodItem{Record: rec, Entry: d})
	}
	s.Items = items
	return nil
}
