package api

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/monicli/internal/client/models"
)

// DayEntry is the wire representation of a mood journal entry.
type DayEntry struct {
	ID      int64  `json:"id"`
	Rate    int    `json:"rate"`
	Comment string `json:"comment"`
	Date    string `json:"date"`
}

// Payload converts the wire object into the local record payload.
func (d DayEntry) Payload() models.DayEntry {
	return models.DayEntry{Rate: d.Rate, Comment: d.Comment, Date: d.Date}
}

// ListDayEntries returns all mood entries of the account.
func (c *Client) ListDayEntries(ctx context.Context) ([]DayEntry, error) {
	return fetchAll(ctx, func(ctx context.Context, page int) (Page[DayEntry], error) {
		return list[DayEntry](ctx, c, "/journal/dayentries", page, nil)
	})
}

func (c *Client) CreateDayEntry(ctx context.Context, entry models.DayEntry) (*DayEntry, error) {
	return create[DayEntry](ctx, c, "/journal/dayentries", entry)
}

func (c *Client) UpdateDayEntry(ctx context.Context, id int64, entry models.DayEntry) (*DayEntry, error) {
	return update[DayEntry](ctx, c, fmt.Sprintf("/journal/dayentries/%d", id), entry)
}

func (c *Client) DeleteDayEntry(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/journal/dayentries/%d", id))
}
