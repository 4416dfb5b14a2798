// Package records persists the local mirror of trackable records. Every
// trackable type (calls, debts, conversations, relationships, mood entries)
// shares one table and one sync queue.
package records

import (
	"context"

	"github.com/dmitrijs2005/monicli/internal/client/models"
)

// Repository describes the Local Record Store operations.
type Repository interface {
	// Insert stores a new record row.
	Insert(ctx context.Context, rec *models.Record) error

	// Update rewrites an existing row identified by LocalID.
	Update(ctx context.Context, rec *models.Record) error

	// GetByLocalID returns one record, soft-deleted or not. Returns
	// common.ErrorNotFound when the row does not exist.
	GetByLocalID(ctx context.Context, localID string) (*models.Record, error)

	// GetAll returns all non-deleted records of one type, newest first.
	GetAll(ctx context.Context, t models.RecordType) ([]*models.Record, error)

	// GetByContact returns all non-deleted records of one type scoped to a
	// contact, newest first.
	GetByContact(ctx context.Context, t models.RecordType, contactID int64) ([]*models.Record, error)

	// GetDeleted returns soft-deleted rows of one type, optionally scoped
	// to a contact (contactID 0 means all contacts). A fetch consults these
	// so a queued delete is not resurrected by the server copy.
	GetDeleted(ctx context.Context, t models.RecordType, contactID int64) ([]*models.Record, error)

	// GetUnsynced returns pending and failed rows, soft-deleted included,
	// ordered by creation time ascending (oldest first).
	GetUnsynced(ctx context.Context) ([]*models.Record, error)

	// HardDelete removes a row permanently; used once the server confirmed
	// a delete, or for rows that never reached the server.
	HardDelete(ctx context.Context, localID string) error

	// Clear wipes the whole store (logout lifecycle).
	Clear(ctx context.Context) error
}
