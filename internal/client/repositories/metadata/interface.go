// Package metadata persists small key/value settings of the client:
// credentials, the API base URL, the active account. It has an explicit
// Clear lifecycle used on logout and on credential failures.
package metadata

import "context"

// Repository describes the key/value operations.
type Repository interface {
	// Get returns the stored value, or "" when the key is absent.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string]string, error)
	Clear(ctx context.Context) error
}
