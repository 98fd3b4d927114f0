package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/focusflow/internal/common"
)

// Sync runs one reconciliation cycle against the server.
func (a *App) Sync(ctx context.Context) error {
	return a.runSync(ctx, a.reconciler.Sync)
}

// ForceSync runs a cycle even when the client believes it is offline.
func (a *App) ForceSync(ctx context.Context) error {
	return a.runSync(ctx, a.reconciler.ForceSync)
}

func (a *App) runSync(ctx context.Context, fn func(context.Context) error) error {
	err := fn(ctx)
	switch {
	case err == nil:
		fmt.Fprintln(a.out, "Sync complete.")
		if n := len(a.reconciler.Conflicts()); n > 0 {
			fmt.Fprintf(a.out, "%d unresolved conflicts. Run 'conflicts' to inspect them.\n", n)
		}
	case errors.Is(err, common.ErrOffline):
		fmt.Fprintln(a.out, "Offline. The sync will run once the server is reachable, or use 'sync force'.")
	case errors.Is(err, common.ErrSyncInFlight):
		fmt.Fprintln(a.out, "A sync is already in progress.")
	case errors.Is(err, common.ErrTransport):
		fmt.Fprintln(a.out, "Server unreachable. The request was queued for retry.")
	default:
		fmt.Fprintln(a.out, "Sync failed:", err.Error())
	}
	return err
}

// Conflicts lists unresolved sync conflicts. Resolution is manual: edit the
// entity locally and sync again, the server decides.
func (a *App) Conflicts(ctx context.Context) error {
	conflicts := a.reconciler.Conflicts()
	if len(conflicts) == 0 {
		fmt.Fprintln(a.out, "No conflicts.")
		return nil
	}
	for _, c := range conflicts {
		fmt.Fprintf(a.out, "%s %s: local v%d vs server v%d\n", c.EntityType, c.EntityID, c.LocalVersion, c.ServerVersion)
		fmt.Fprintf(a.out, "  local:  %s\n", string(c.LocalData))
		fmt.Fprintf(a.out, "  server: %s\n", string(c.ServerData))
	}
	return nil
}

// Status prints connectivity, queue and schedule information.
func (a *App) Status(ctx context.Context) error {
	online := "offline"
	if a.reconciler.Online() {
		online = "online"
	}
	fmt.Fprintln(a.out, "Connectivity:", online)
	fmt.Fprintln(a.out, "Sync state:", a.reconciler.State())
	fmt.Fprintln(a.out, "Queued sync requests:", a.reconciler.QueueLen())
	fmt.Fprintln(a.out, "Unresolved conflicts:", len(a.reconciler.Conflicts()))
	if a.backups.AutoActive() {
		fmt.Fprintln(a.out, "Auto backup: active, every", a.config.AutoBackupInterval)
	} else {
		fmt.Fprintln(a.out, "Auto backup: off")
	}
	return nil
}
