package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/monicli/internal/api"
	"github.com/dmitrijs2005/monicli/internal/client/models"
	"github.com/dmitrijs2005/monicli/internal/client/repositories/records"
	"github.com/dmitrijs2005/monicli/internal/client/syncer"
	"github.com/dmitrijs2005/monicli/internal/common"
	"github.com/dmitrijs2005/monicli/internal/logging"
)

// DebtItem pairs a local record with its decoded payload for display.
type DebtItem struct {
	Record *models.Record
	Debt   models.Debt
}

// DebtService owns the debt list, its sync state and the derived net
// balances. All mutations are local-first: the store is written, then a
// push is attempted through the sync engine when online.
type DebtService struct {
	viewState

	api    *api.Client
	repo   records.Repository
	engine *syncer.Engine
	log    logging.Logger
	online func() bool

	Items    []DebtItem
	Balances []NetBalance
}

func NewDebtService(apiClient *api.Client, repo records.Repository, engine *syncer.Engine, log logging.Logger, online func() bool) *DebtService {
	return &DebtService{
		api:    apiClient,
		repo:   repo,
		engine: engine,
		log:    log.With("component", "debts"),
		online: online,
	}
}

// Fetch refreshes the debt list. Online, server rows are mirrored into the
// local store first; offline, the local mirror is shown as-is. Net
// balances are recomputed on every refresh.
func (s *DebtService) Fetch(ctx context.Context) {
	s.begin()
	defer s.finish()

	if s.online() {
		remote, err := s.api.ListDebts(ctx)
		if err != nil {
			s.fail(fmt.Errorf("fetching debts: %w", err))
		} else {
			rows := make([]remoteRow, 0, len(remote))
			for _, d := range remote {
				p := d.Payload()
				rows = append(rows, remoteRow{ID: d.ID, ContactID: p.ContactID, Payload: p})
			}
			if _, err := mirrorRemote(ctx, s.repo, models.RecordTypeDebt, 0, rows); err != nil {
				s.fail(err)
			}
		}
	}

	if err := s.reload(ctx); err != nil {
		s.fail(err)
	}
}

// Create validates and stores a new debt. A non-positive amount is
// rejected before anything is written or sent.
func (s *DebtService) Create(ctx context.Context, debt models.Debt) bool {
	s.begin()
	defer s.finish()

	if debt.Amount <= 0 {
		return s.fail(errors.New("debt amount must be greater than zero"))
	}

	rec, err := models.NewRecord(models.RecordTypeDebt, debt.ContactID, debt)
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

// Update replaces the payload of an existing debt and re-arms it for sync.
func (s *DebtService) Update(ctx context.Context, localID string, debt models.Debt) bool {
	s.begin()
	defer s.finish()

	if debt.Amount <= 0 {
		return s.fail(errors.New("debt amount must be greater than zero"))
	}

	rec, err := s.repo.GetByLocalID(ctx, localID)
	if err != nil {
		return s.fail(err)
	}
	if err := rec.SetPayload(debt); err != nil {
		return s.fail(err)
	}
	rec.ContactID = debt.ContactID
	if err := s.repo.Update(ctx, rec); err != nil {
		return s.fail(err)
	}
	s.push(ctx, rec)

	if err := s.reload(ctx); err != nil {
		return s.fail(err)
	}
	return true
}

// Delete soft-deletes a debt; the row disappears from the list immediately
// and is purged once the server confirms.
func (s *DebtService) Delete(ctx context.Context, localID string) bool {
	s.begin()
	defer s.finish()

	rec, err := s.repo.GetByLocalID(ctx, localID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return s.fail(errors.New("debt not found"))
		}
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

// push attempts an immediate sync of one record. Offline or failing pushes
// are silent; the record stays queued for the next sweep.
func (s *DebtService) push(ctx context.Context, rec *models.Record) {
	if !s.online() {
		return
	}
	if _, err := s.engine.SyncRecord(ctx, rec); err != nil {
		s.log.Warn(ctx, "push failed", "local_id", rec.LocalID, "error", err)
	}
}

// reload re-reads the local mirror and recomputes net balances.
func (s *DebtService) reload(ctx context.Context) error {
	recs, err := s.repo.GetAll(ctx, models.RecordTypeDebt)
	if err != nil {
		return err
	}
	items := make([]DebtItem, 0, len(recs))
	debts := make([]models.Debt, 0, len(recs))
	for _, rec := range recs {
		d, err := decodeInto[models.Debt](rec)
		if err != nil {
			return err
		}
		items = append(items, DebtItem{Record: rec, Debt: d})
		debts = append(debts, d)
	}
	s.Items = items
	s.Balances = CalculateNetBalances(debts)
	return nil
}
