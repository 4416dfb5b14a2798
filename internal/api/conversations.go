package api

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/monicli/internal/client/models"
)

// Conversation is the wire representation of a conversation.
type Conversation struct {
	ID         int64           `json:"id"`
	HappenedAt string          `json:"happened_at"`
	Contact    *models.Contact `json:"contact"`
}

// Payload converts the wire object into the local record payload.
func (v Conversation) Payload() models.Conversation {
	p := models.Conversation{HappenedAt: v.HappenedAt}
	if v.Contact != nil {
		p.ContactID = v.Contact.ID
	}
	return p
}

// ListConversations returns the conversations logged for a contact.
func (c *Client) ListConversations(ctx context.Context, contactID int64) ([]Conversation, error) {
	path := fmt.Sprintf("/contacts/%d/conversations", contactID)
	return fetchAll(ctx, func(ctx context.Context, page int) (Page[Conversation], error) {
		return list[Conversation](ctx, c, path, page, nil)
	})
}

func (c *Client) CreateConversation(ctx context.Context, conv models.Conversation) (*Conversation, error) {
	return create[Conversation](ctx, c, "/conversations", conv)
}

func (c *Client) UpdateConversation(ctx context.Context, id int64, conv models.Conversation) (*Conversation, error) {
	return update[Conversation](ctx, c, fmt.Sprintf("/conversations/%d", id), conv)
}

func (c *Client) DeleteConversation(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/conversations/%d", id))
}
