package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/dmitrijs2005/monicli/internal/client/models"
)

// SearchContacts returns one page of contacts matching the query.
func (c *Client) SearchContacts(ctx context.Context, query string, page int) (Page[models.Contact], error) {
	extra := url.Values{}
	extra.Set("query", query)
	return list[models.Contact](ctx, c, "/contacts", page, extra)
}

// ListContacts returns one page of all contacts.
func (c *Client) ListContacts(ctx context.Context, page int) (Page[models.Contact], error) {
	return list[models.Contact](ctx, c, "/contacts", page, nil)
}

// GetContact returns a single contact by its server identifier.
func (c *Client) GetContact(ctx context.Context, id int64) (*models.Contact, error) {
	return get[models.Contact](ctx, c, fmt.Sprintf("/contacts/%d", id))
}

// ListActivities returns the activities recorded with a contact.
func (c *Client) ListActivities(ctx context.Context, contactID int64) ([]models.Activity, error) {
	path := fmt.Sprintf("/contacts/%d/activities", contactID)
	return fetchAll(ctx, func(ctx context.Context, page int) (Page[models.Activity], error) {
		return list[models.Activity](ctx, c, path, page, nil)
	})
}

// ListNotes returns the notes attached to a contact.
func (c *Client) ListNotes(ctx context.Context, contactID int64) ([]models.Note, error) {
	path := fmt.Sprintf("/contacts/%d/notes", contactID)
	return fetchAll(ctx, func(ctx context.Context, page int) (Page[models.Note], error) {
		return list[models.Note](ctx, c, path, page, nil)
	})
}

// ListTasks returns the tasks attached to a contact.
func (c *Client) ListTasks(ctx context.Context, contactID int64) ([]models.Task, error) {
	path := fmt.Sprintf("/contacts/%d/tasks", contactID)
	return fetchAll(ctx, func(ctx context.Context, page int) (Page[models.Task], error) {
		return list[models.Task](ctx, c, path, page, nil)
	})
}
