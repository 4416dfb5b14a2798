package cli

import (
	"context"
	"errors"
	"os"

	"github.com/dmitrijs2005/monicli/internal/api"
	"github.com/dmitrijs2005/monicli/internal/common"
)

// getSimpleText and getSecret are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getSecret = GetSecret

// Login prompts for a Monica API token and verifies it against the server.
// On success the token is persisted and the session switches online. An
// expired token is rejected without a network round trip; an unreachable
// server leaves the app offline without storing anything.
func (a *App) Login(ctx context.Context) error {
	token, err := getSecret("Enter API token", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.auth.Login(ctx, string(token)); err != nil {
		switch {
		case errors.Is(err, common.ErrTokenExpired):
			printlnFn("Token is expired, generate a new one in Monica settings")
		case errors.Is(err, api.ErrInvalidCredentials):
			printlnFn("Token rejected by the server")
		case errors.Is(err, api.ErrNetwork):
			printlnFn("Server unreachable, try again when online")
		default:
			printlnFn("Login failed:", err.Error())
		}
		return err
	}

	a.account = a.auth.User.Email
	a.setMode(ctx, ModeOnline)
	printlnFn("Logged in as " + a.account)
	return nil
}

// Logout discards the stored credentials and the entire local mirror after
// an explicit confirmation, since unsynced records are lost with it.
func (a *App) Logout(ctx context.Context) error {
	ok, err := GetYesNo(a.reader, "Logging out discards unsynced local changes. Continue?", os.Stdout)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	if err := a.auth.Logout(ctx); err != nil {
		printlnFn("Logout failed:", err.Error())
		return err
	}
	a.account = ""
	printlnFn("Logged out")
	return nil
}
