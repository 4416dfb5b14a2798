package api

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/monicli/internal/client/models"
)

// Call is the wire representation of a call log.
type Call struct {
	ID            int64           `json:"id"`
	CalledAt      string          `json:"called_at"`
	Content       string          `json:"content"`
	ContactCalled bool            `json:"contact_called"`
	Contact       *models.Contact `json:"contact"`
}

// Payload converts the wire object into the local record payload.
func (c Call) Payload() models.CallLog {
	p := models.CallLog{
		CalledAt:      c.CalledAt,
		Content:       c.Content,
		ContactCalled: c.ContactCalled,
	}
	if c.Contact != nil {
		p.ContactID = c.Contact.ID
	}
	return p
}

// ListCalls returns every call logged for a contact, walking all pages.
func (c *Client) ListCalls(ctx context.Context, contactID int64) ([]Call, error) {
	path := fmt.Sprintf("/contacts/%d/calls", contactID)
	return fetchAll(ctx, func(ctx context.Context, page int) (Page[Call], error) {
		return list[Call](ctx, c, path, page, nil)
	})
}

func (c *Client) CreateCall(ctx context.Context, call models.CallLog) (*Call, error) {
	return create[Call](ctx, c, "/calls", call)
}

func (c *Client) UpdateCall(ctx context.Context, id int64, call models.CallLog) (*Call, error) {
	return update[Call](ctx, c, fmt.Sprintf("/calls/%d", id), call)
}

func (c *Client) DeleteCall(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/calls/%d", id))
}
