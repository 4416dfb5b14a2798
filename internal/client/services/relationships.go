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

// RelationshipItem pairs a local record with its decoded payload.
type RelationshipItem struct {
	Record       *models.Record
	Relationship models.Relationship
}

// RelationshipService owns the relationship list of one contact plus the
// reference lists of relationship types and groups. The reference lists
// change rarely, so they are fetched once and cached for the session.
type RelationshipService struct {
	viewState

	api    *api.Client
	repo   records.Repository
	engine *syncer.Engine
	log    logging.Logger
	online func() bool

	Items  []RelationshipItem
	types  []models.RelationshipType
	groups []models.RelationshipTypeGroup
}

func NewRelationshipService(apiClient *api.Client, repo records.Repository, engine *syncer.Engine, log logging.Logger, online func() bool) *RelationshipService {
	return &RelationshipService{
		api:    apiClient,
		repo:   repo,
		engine: engine,
		log:    log.With("component", "relationships"),
		online: online,
	}
}

// Fetch refreshes the relationship list for a contact.
func (s *RelationshipService) Fetch(ctx context.Context, contactID int64) {
	s.begin()
	defer s.finish()

	if s.online() {
		remote, err := s.api.ListRelationships(ctx, contactID)
		if err != nil {
			s.fail(fmt.Errorf("fetching relationships: %w", err))
		} else {
			rows := make([]remoteRow, 0, len(remote))
			for _, r := range remote {
				p := r.Payload()
				if p.ContactIs == 0 {
					p.ContactIs = contactID
				}
				rows = append(rows, remoteRow{ID: r.ID, ContactID: p.ContactIs, Payload: p})
			}
			if _, err := mirrorRemote(ctx, s.repo, models.RecordTypeRelationship, contactID, rows); err != nil {
				s.fail(err)
			}
		}
	}

	if err := s.reload(ctx, contactID); err != nil {
		s.fail(err)
	}
}

// Create links two contacts locally and pushes when online.
func (s *RelationshipService) Create(ctx context.Context, rel models.Relationship) bool {
	s.begin()
	defer s.finish()

	rec, err := models.NewRecord(models.RecordTypeRelationship, rel.ContactIs, rel)
	if err != nil {
		return s.fail(err)
	}
	if err := s.repo.Insert(ctx, rec); err != nil {
		return s.fail(err)
	}
	s.push(ctx, rec)

	if err := s.reload(ctx, rel.ContactIs); err != nil {
		return s.fail(err)
	}
	return true
}

// Update replaces the payload of an existing relationship and re-arms it
// for sync. Monica keys relationship updates on the relationship id, so in
// practice this changes the type between the same two contacts.
func (s *RelationshipService) Update(ctx context.Context, localID string, rel models.Relationship) bool {
	s.begin()
	defer s.finish()

	rec, err := s.repo.GetByLocalID(ctx, localID)
	if err != nil {
		return s.fail(err)
	}
	if err := rec.SetPayload(rel); err != nil {
		return s.fail(err)
	}
	rec.ContactID = rel.ContactIs
	if err := s.repo.Update(ctx, rec); err != nil {
		return s.fail(err)
	}
	s.push(ctx, rec)

	if err := s.reload(ctx, rec.ContactID); err != nil {
		return s.fail(err)
	}
	return true
}

// Delete soft-deletes a relationship.
func (s *RelationshipService) Delete(ctx context.Context, localID string) bool {
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

// Types returns the cached relationship type list, fetching it on first
// use. Offline, an empty list and no error is returned.
func (s *RelationshipService) Types(ctx context.Context) ([]models.RelationshipType, error) {
	if s.types != nil || !s.online() {
		return s.types, nil
	}
	types, err := s.api.ListRelationshipTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching relationship types: %w", err)
	}
	s.types = types
	return s.types, nil
}

// Groups returns the cached relationship type group list, fetching it on
// first use.
func (s *RelationshipService) Groups(ctx context.Context) ([]models.RelationshipTypeGroup, error) {
	if s.groups != nil || !s.online() {
		return s.groups, nil
	}
	groups, err := s.api.ListRelationshipTypeGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching relationship type groups: %w", err)
	}
	s.groups = groups
	return s.groups, nil
}

// TypeName resolves a relationship type identifier to its display name.
func (s *RelationshipService) TypeName(ctx context.Context, typeID int64) string {
	types, err := s.Types(ctx)
	if err != nil {
		return fmt.Sprintf("type %d", typeID)
	}
	for _, t := range types {
		if t.ID == typeID {
			return t.Name
		}
	}
	return fmt.Sprintf("type %d", typeID)
}

func (s *RelationshipService) push(ctx context.Context, rec *models.Record) {
	if !s.online() {
		return
	}
	if _, err := s.engine.SyncRecord(ctx, rec); err != nil {
		s.log.Warn(ctx, "push failed", "local_id", rec.LocalID, "error", err)
	}
}

func (s *RelationshipService) reload(ctx context.Context, contactID int64) error {
	recs, err := listLocal(ctx, s.repo, models.RecordTypeRelationship, contactID)
	if err != nil {
		return err
	}
	items := make([]RelationshipItem, 0, len(recs))
	for _, rec := range recs {
		r, err := decodeInto[models.Relationship](rec)
		if err != nil {
			return err
		}
		items = append(items, RelationshipItem{Record: rec, Relationship: r})
	}
	s.Items = items
	return nil
}
