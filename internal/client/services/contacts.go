package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/monicli/internal/api"
	"github.com/dmitrijs2005/monicli/internal/client/models"
	"github.com/dmitrijs2005/monicli/internal/logging"
)

// ContactDetail aggregates the remote-only reads shown on one contact's
// detail view. Errors maps the branch name ("activities", "notes",
// "tasks") to the failure of that branch; a failed branch leaves its slice
// empty and never blocks the others.
type ContactDetail struct {
	Contact    *models.Contact
	Activities []models.Activity
	Notes      []models.Note
	Tasks      []models.Task
	Errors     map[string]error
}

// ContactService searches and reads contacts. Contacts are remote-only;
// nothing here touches the local store.
type ContactService struct {
	viewState

	api *api.Client
	log logging.Logger

	Items     []models.Contact
	Page      int
	HasMore   bool
	lastQuery string
}

func NewContactService(apiClient *api.Client, log logging.Logger) *ContactService {
	return &ContactService{api: apiClient, log: log.With("component", "contacts")}
}

// Search loads the first page of contacts matching query (empty query
// lists everyone).
func (s *ContactService) Search(ctx context.Context, query string) {
	s.begin()
	defer s.finish()

	s.lastQuery = query
	s.Items = nil
	s.Page = 0
	s.HasMore = false
	s.loadPage(ctx, 1)
}

// More appends the next page of the current search.
func (s *ContactService) More(ctx context.Context) {
	if !s.HasMore {
		return
	}
	s.begin()
	defer s.finish()
	s.loadPage(ctx, s.Page+1)
}

func (s *ContactService) loadPage(ctx context.Context, page int) {
	var (
		p   api.Page[models.Contact]
		err error
	)
	if s.lastQuery == "" {
		p, err = s.api.ListContacts(ctx, page)
	} else {
		p, err = s.api.SearchContacts(ctx, s.lastQuery, page)
	}
	if err != nil {
		s.fail(fmt.Errorf("fetching contacts: %w", err))
		return
	}
	s.Items = append(s.Items, p.Items...)
	s.Page = page
	s.HasMore = p.HasMorePages()
}

// LoadDetail fetches a contact together with its activities, notes and
// tasks. The three list fetches run concurrently; a failure in one branch
// is recorded in Errors under the branch name and does not cancel the
// others. Only a failure to load the contact itself is returned as an
// error.
func (s *ContactService) LoadDetail(ctx context.Context, contactID int64) (*ContactDetail, error) {
	s.begin()
	defer s.finish()

	contact, err := s.api.GetContact(ctx, contactID)
	if err != nil {
		s.fail(fmt.Errorf("fetching contact %d: %w", contactID, err))
		return nil, err
	}

	detail := &ContactDetail{Contact: contact, Errors: make(map[string]error)}

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	branch := func(name string, fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				s.log.Warn(ctx, "contact detail branch failed",
					"contact_id", contactID, "branch", name, "error", err)
				mu.Lock()
				detail.Errors[name] = err
				mu.Unlock()
			}
		}()
	}

	branch("activities", func() error {
		items, err := s.api.ListActivities(ctx, contactID)
		if err != nil {
			return err
		}
		detail.Activities = items
		return nil
	})
	branch("notes", func() error {
		items, err := s.api.ListNotes(ctx, contactID)
		if err != nil {
			return err
		}
		detail.Notes = items
		return nil
	})
	branch("tasks", func() error {
		items, err := s.api.ListTasks(ctx, contactID)
		if err != nil {
			return err
		}
		detail.Tasks = items
		return nil
	})

	wg.Wait()
	return detail, nil
}
