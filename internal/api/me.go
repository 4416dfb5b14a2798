package api

import (
	"context"

	"github.com/dmitrijs2005/monicli/internal/client/models"
)

// Me returns the authenticated account. It doubles as the credential
// check and the liveness probe: ErrInvalidCredentials means the token is
// no longer accepted, ErrNetwork means the server is unreachable.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	return get[models.User](ctx, c, "/me")
}
