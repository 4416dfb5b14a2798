package api

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/monicli/internal/client/models"
)

// Debt is the wire representation of a debt.
type Debt struct {
	ID                 int64           `json:"id"`
	InDebt             string          `json:"in_debt"`
	Status             string          `json:"status"`
	Amount             float64         `json:"amount"`
	AmountWithCurrency string          `json:"amount_with_currency"`
	Reason             string          `json:"reason"`
	Contact            *models.Contact `json:"contact"`
}

// Payload converts the wire object into the local record payload.
func (d Debt) Payload() models.Debt {
	p := models.Debt{
		InDebt:             d.InDebt,
		Status:             d.Status,
		Amount:             d.Amount,
		AmountWithCurrency: d.AmountWithCurrency,
		Reason:             d.Reason,
	}
	if d.Contact != nil {
		p.ContactID = d.Contact.ID
	}
	return p
}

// ListContactDebts returns all debts recorded for one contact.
func (c *Client) ListContactDebts(ctx context.Context, contactID int64) ([]Debt, error) {
	path := fmt.Sprintf("/contacts/%d/debts", contactID)
	return fetchAll(ctx, func(ctx context.Context, page int) (Page[Debt], error) {
		return list[Debt](ctx, c, path, page, nil)
	})
}

// ListDebts returns all debts across every contact.
func (c *Client) ListDebts(ctx context.Context) ([]Debt, error) {
	return fetchAll(ctx, func(ctx context.Context, page int) (Page[Debt], error) {
		return list[Debt](ctx, c, "/debts", page, nil)
	})
}

func (c *Client) CreateDebt(ctx context.Context, debt models.Debt) (*Debt, error) {
	return create[Debt](ctx, c, "/debts", debt)
}

func (c *Client) UpdateDebt(ctx context.Context, id int64, debt models.Debt) (*Debt, error) {
	return update[Debt](ctx, c, fmt.Sprintf("/debts/%d", id), debt)
}

func (c *Client) DeleteDebt(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/debts/%d", id))
}
