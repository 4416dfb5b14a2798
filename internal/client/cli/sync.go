package cli

import (
	"context"
	"fmt"
)

// Sync runs one sync sweep over the offline queue.
func (a *App) Sync(ctx context.Context) error {
	if !a.IsOnline() {
		if a.auth.Ping(ctx) {
			a.setMode(ctx, ModeOnline)
			return nil
		}
		printlnFn("Server unreachable, queued records will sync later")
		return nil
	}

	sum, err := a.engine.SyncAll(ctx)
	if err != nil {
		printlnFn("Sync failed:", err.Error())
		return err
	}
	printlnFn(fmt.Sprintf("Synced %d, failed %d, removed %d", sum.Synced, sum.Failed, sum.Removed))
	return nil
}

// Queue lists the records still waiting to reach the server, oldest first.
func (a *App) Queue(ctx context.Context) error {
	recs, err := a.repos.Records.GetUnsynced(ctx)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}

	if len(recs) == 0 {
		printlnFn("Queue is empty")
		return nil
	}
	for _, rec := range recs {
		action := "upsert"
		if rec.Deleted {
			action = "delete"
		}
		printlnFn(fmt.Sprintf("%s  %-12s %-6s  [%s]",
			rec.LocalID[:8], rec.Type, action, syncLabel(rec)))
	}
	return nil
}
