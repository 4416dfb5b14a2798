package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/monicli/internal/api"
	"github.com/dmitrijs2005/monicli/internal/client/models"
	"github.com/dmitrijs2005/monicli/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/monicli/internal/client/repositories/records"
	"github.com/dmitrijs2005/monicli/internal/common"
	"github.com/dmitrijs2005/monicli/internal/logging"
)

// AuthService manages the stored API token and the session account. A
// successful login persists the token so later runs can restore the
// session offline; an invalid-credentials response discards the stored
// token immediately.
type AuthService struct {
	viewState

	api     *api.Client
	meta    metadata.Repository
	records records.Repository
	log     logging.Logger

	User *models.User
}

func NewAuthService(apiClient *api.Client, meta metadata.Repository, recs records.Repository, log logging.Logger) *AuthService {
	return &AuthService{
		api:     apiClient,
		meta:    meta,
		records: recs,
		log:     log.With("component", "auth"),
	}
}

// Login verifies a token against the server and persists it on success.
// An already expired token is rejected before the network call.
func (a *AuthService) Login(ctx context.Context, token string) error {
	a.begin()
	defer a.finish()

	a.api.SetToken(token)
	if exp := a.api.TokenExpiry(); !exp.IsZero() && exp.Before(time.Now()) {
		a.api.SetToken("")
		a.fail(common.ErrTokenExpired)
		return common.ErrTokenExpired
	}

	user, err := a.api.Me(ctx)
	if err != nil {
		a.api.SetToken("")
		a.fail(err)
		return fmt.Errorf("verifying credentials: %w", err)
	}

	if err := a.meta.Set(ctx, common.MetaKeyAPIToken, token); err != nil {
		a.fail(err)
		return err
	}
	if err := a.meta.Set(ctx, common.MetaKeyAccount, user.Email); err != nil {
		a.fail(err)
		return err
	}
	a.User = user
	a.log.Info(ctx, "logged in", "account", user.Email)
	return nil
}

// Restore loads the stored token into the API client without a network
// call, so the session works offline. ErrNoCredentials means nobody has
// logged in yet; ErrTokenExpired means a new login is required.
func (a *AuthService) Restore(ctx context.Context) error {
	token, err := a.meta.Get(ctx, common.MetaKeyAPIToken)
	if err != nil {
		return err
	}
	if token == "" {
		return common.ErrNoCredentials
	}
	a.api.SetToken(token)
	if exp := a.api.TokenExpiry(); !exp.IsZero() && exp.Before(time.Now()) {
		a.api.SetToken("")
		return common.ErrTokenExpired
	}
	return nil
}

// Verify checks the restored token against the server. Invalid credentials
// clear the stored token; network failures leave it in place so the
// session can continue offline.
func (a *AuthService) Verify(ctx context.Context) error {
	user, err := a.api.Me(ctx)
	if err != nil {
		if errors.Is(err, api.ErrInvalidCredentials) {
			a.log.Warn(ctx, "stored token rejected, clearing credentials")
			a.api.SetToken("")
			if derr := a.meta.Delete(ctx, common.MetaKeyAPIToken); derr != nil {
				return derr
			}
		}
		return err
	}
	a.User = user
	return nil
}

// Ping reports whether the server currently accepts requests. Any typed
// API response, even an error status, proves the server is reachable;
// only a transport failure counts as offline.
func (a *AuthService) Ping(ctx context.Context) bool {
	_, err := a.api.Me(ctx)
	return !errors.Is(err, api.ErrNetwork)
}

// Logout discards the session: credentials, settings and the entire local
// mirror, including unsynced records.
func (a *AuthService) Logout(ctx context.Context) error {
	a.api.SetToken("")
	a.User = nil
	if err := a.records.Clear(ctx); err != nil {
		return fmt.Errorf("clearing records: %w", err)
	}
	if err := a.meta.Clear(ctx); err != nil {
		return fmt.Errorf("clearing metadata: %w", err)
	}
	a.log.Info(ctx, "logged out")
	return nil
}

// Account returns the stored account email, or "" when not logged in.
func (a *AuthService) Account(ctx context.Context) (string, error) {
	return a.meta.Get(ctx, common.MetaKeyAccount)
}
