package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/monicli/internal/api"
	"github.com/dmitrijs2005/monicli/internal/client"
	"github.com/dmitrijs2005/monicli/internal/client/config"
	"github.com/dmitrijs2005/monicli/internal/client/services"
	"github.com/dmitrijs2005/monicli/internal/client/syncer"
	"github.com/dmitrijs2005/monicli/internal/common"
	"github.com/dmitrijs2005/monicli/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// App wires the services behind the REPL and tracks connectivity. The mode
// starts offline; the watcher goroutine and explicit probes flip it, so
// every read goes through IsOnline or currentMode.
type App struct {
	config *config.Config
	log    logging.Logger
	repos  *client.Repositories
	api    *api.Client

	auth     *services.AuthService
	contacts *services.ContactService
	debts    *services.DebtService
	calls    *services.CallService
	convos   *services.ConversationService
	rels     *services.RelationshipService
	moods    *services.MoodService
	engine   *syncer.Engine

	modeMu  sync.RWMutex
	mode    Mode
	account string
	reader  *bufio.Reader
}

func NewApp(c *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	repos, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("initializing database: %w", err)
	}

	apiClient := api.New(c.ServerBaseURL, "", c.HTTPTimeout)
	apiClient.SetPerPage(c.PerPage)

	a := &App{
		config: c,
		log:    log,
		repos:  repos,
		api:    apiClient,
		mode:   ModeOffline,
		reader: bufio.NewReader(os.Stdin),
	}
	online := a.IsOnline

	a.engine = syncer.New(apiClient, repos.Records, log)
	a.auth = services.NewAuthService(apiClient, repos.Metadata, repos.Records, log)
	a.contacts = services.NewContactService(apiClient, log)
	a.debts = services.NewDebtService(apiClient, repos.Records, a.engine, log, online)
	a.calls = services.NewCallService(apiClient, repos.Records, a.engine, log, online)
	a.convos = services.NewConversationService(apiClient, repos.Records, a.engine, log, online)
	a.rels = services.NewRelationshipService(apiClient, repos.Records, a.engine, log, online)
	a.moods = services.NewMoodService(apiClient, repos.Records, a.engine, log, online)

	return a, nil
}

// IsOnline reports the current connectivity mode. The services consult it
// before every opportunistic push.
func (a *App) IsOnline() bool {
	return a.currentMode() == ModeOnline
}

func (a *App) currentMode() Mode {
	a.modeMu.RLock()
	defer a.modeMu.RUnlock()
	return a.mode
}

func (a *App) isLoggedIn() bool {
	return a.account != ""
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.modeMu.Lock()
	if a.mode == mode {
		a.modeMu.Unlock()
		return
	}
	a.mode = mode
	a.modeMu.Unlock()
	printlnFn("Switched to " + string(mode) + " mode")

	// connectivity returned; drain the offline queue
	if mode == ModeOnline {
		if sum, err := a.engine.SyncAll(ctx); err != nil {
			a.log.Error(ctx, "sync sweep failed", "error", err)
		} else if sum.Synced+sum.Failed+sum.Removed > 0 {
			printlnFn(fmt.Sprintf("Synced %d, failed %d, removed %d", sum.Synced, sum.Failed, sum.Removed))
		}
	}
}

// Run restores the stored session, starts the connectivity watcher and
// hands control to the REPL.
func (a *App) Run(ctx context.Context) {
	defer a.repos.Close()

	printlnFn("Welcome to Monica CLI (type 'help' for commands)")

	if err := a.restoreSession(ctx); err != nil {
		if errors.Is(err, common.ErrNoCredentials) || errors.Is(err, common.ErrTokenExpired) {
			_ = a.Login(ctx)
		} else {
			a.log.Error(ctx, "restoring session failed", "error", err)
		}
	}

	watcherCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.StartOnlineStatusWatcher(watcherCtx, a.config.OnlineCheckInterval)

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

func (a *App) restoreSession(ctx context.Context) error {
	if err := a.auth.Restore(ctx); err != nil {
		return err
	}
	account, err := a.auth.Account(ctx)
	if err != nil {
		return err
	}
	a.account = account

	if a.auth.Ping(ctx) {
		a.setMode(ctx, ModeOnline)
		if err := a.auth.Verify(ctx); err != nil {
			if errors.Is(err, api.ErrInvalidCredentials) {
				a.account = ""
				return common.ErrNoCredentials
			}
			a.log.Warn(ctx, "session verification failed", "error", err)
		}
	} else {
		printlnFn("Server unreachable, continuing offline")
	}
	return nil
}

func (a *App) getStatus() string {
	s := ""
	if a.account != "" {
		s = a.account + " "
	}
	if m := a.currentMode(); m != "" {
		s = s + string(m)
	}
	if s != "" {
		s = "(" + s + ")"
	}
	return s
}

// StartOnlineStatusWatcher probes server reachability on the given
// interval and flips the mode on changes.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			probeCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			reachable := a.auth.Ping(probeCtx)
			cancel()

			if reachable {
				a.setMode(ctx, ModeOnline)
			} else {
				a.setMode(ctx, ModeOffline)
			}

		case <-ctx.Done():
			return
		}
	}
}
