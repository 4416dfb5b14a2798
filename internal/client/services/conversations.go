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

// ConversationItem pairs a local record with its decoded payload.
type ConversationItem struct {
	Record       *models.Record
	Conversation models.Conversation
}

// ConversationService owns the conversation list for one contact at a time.
type ConversationService struct {
	viewState

	api    *api.Client
	repo   records.Repository
	engine *syncer.Engine
	log    logging.Logger
	online func() bool

	Items []ConversationItem
}

func NewConversationService(apiClient *api.Client, repo records.Repository, engine *syncer.Engine, log logging.Logger, online func() bool) *ConversationService {
	return &ConversationService{
		api:    apiClient,
		repo:   repo,
		engine: engine,
		log:    log.With("component", "conversations"),
		online: online,
	}
}

// Fetch refreshes the conversation list for a contact.
func (s *ConversationService) Fetch(ctx context.Context, contactID int64) {
	s.begin()
	defer s.finish()

	if s.online() {
		remote, err := s.api.ListConversations(ctx, contactID)
		if err != nil {
			s.fail(fmt.Errorf("fetching conversations: %w", err))
		} else {
			rows := make([]remoteRow, 0, len(remote))
			for _, v := range remote {
				p := v.Payload()
				if p.ContactID == 0 {
					p.ContactID = contactID
				}
				rows = append(rows, remoteRow{ID: v.ID, ContactID: p.ContactID, Payload: p})
			}
			if _, err := mirrorRemote(ctx, s.repo, models.RecordTypeConversation, contactID, rows); err != nil {
				s.fail(err)
			}
		}
	}

	if err := s.reload(ctx, contactID); err != nil {
		s.fail(err)
	}
}

// Create logs a new conversation locally and pushes it when online.
func (s *ConversationService) Create(ctx context.Context, conv models.Conversation) bool {
	s.begin()
	defer s.finish()

	rec, err := models.NewRecord(models.RecordTypeConversation, conv.ContactID, conv)
	if err != nil {
		return s.fail(err)
	}
	if err := s.repo.Insert(ctx, rec); err != nil {
		return s.fail(err)
	}
	s.push(ctx, rec)

	if err := s.reload(ctx, conv.ContactID); err != nil {
		return s.fail(err)
	}
	return true
}

// Update replaces the payload of an existing conversation and re-arms it
// for sync.
func (s *ConversationService) Update(ctx context.Context, localID string, conv models.Conversation) bool {
	s.begin()
	defer s.finish()

	rec, err := s.repo.GetByLocalID(ctx, localID)
	if err != nil {
		return s.fail(err)
	}
	if err := rec.SetPayload(conv); err != nil {
		return s.fail(err)
	}
	rec.ContactID = conv.ContactID
	if err := s.repo.Update(ctx, rec); err != nil {
		return s.fail(err)
	}
	s.push(ctx, rec)

	if err := s.reload(ctx, rec.ContactID); err != nil {
		return s.fail(err)
	}
	return true
}

// Delete soft-deletes a conversation.
func (s *ConversationService) Delete(ctx context.Context, localID string) bool {
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

func (s *ConversationService) push(ctx context.Context, rec *models.Record) {
	if !s.online() {
		return
	}
	if _, err := s.engine.SyncRecord(ctx, rec); err != nil {
		s.log.Warn(ctx, "push failed", "local_id", rec.LocalID, "error", err)
	}
}

func (s *ConversationService) reload(ctx context.Context, contactID int64) error {
	recs, err := listLocal(ctx, s.repo, models.RecordTypeConversation, contactID)
	if err != nil {
		return err
	}
	items := make([]ConversationItem, 0, len(recs))
	for _, rec := range recs {
		v, err := decodeInto[models.Conversation](rec)
		if err != nil {
			return err
		}
		items = append(items, ConversationItem{Record: rec, Conversation: v})
	}
	s.Items = items
	return nil
}
