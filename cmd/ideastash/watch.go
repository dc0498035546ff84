package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/ideastash"
	"github.com/aretw0/ideastash/pkg/core"
)

// watchPattern matches every key the journal persists.
const watchPattern = "@ideastash_*"

func newWatchCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Follow changes made to the journal by other processes",
		Long: `Watch the store and reload the journal whenever another process changes it.
Supported by the fs, redis and memory adapters. Stop with Ctrl+C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			app, err := c.open(ctx)
			if err != nil {
				return err
			}
			defer app.Close()

			source, err := app.Source(watchPattern)
			if err != nil {
				return err
			}
			if err := source.Start(ctx); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Watching %d ideas. Press Ctrl+C to stop.\n", len(app.Ideas.Snapshot().Ideas))
			for e := range source.Events() {
				ev, ok := e.(core.Event)
				if !ok {
					continue
				}
				if err := reload(ctx, app, ev); err != nil {
					c.logger.Warn("reload failed", "key", ev.Key, "error", err)
				}
				at := time.Unix(ev.Timestamp, 0).Format(time.TimeOnly)
				switch ev.Key {
				case core.KeyIdeas:
					if ev.Type == core.EventDelete {
						fmt.Fprintf(out, "%s ideas %s: collection removed\n", at, ev.Type)
						continue
					}
					fmt.Fprintf(out, "%s ideas %s: %d ideas\n", at, ev.Type, len(app.Ideas.Snapshot().Ideas))
				case core.KeyPreferences:
					p := app.Preferences.Get()
					fmt.Fprintf(out, "%s preferences %s: sort=%s view=%s\n", at, ev.Type, p.SortOrder, p.ViewMode)
				case core.KeyProStatus:
					fmt.Fprintf(out, "%s premium %s: %s\n", at, ev.Type, onOff(app.Subscription.Snapshot().IsPro, "active", "inactive"))
				}
			}
			return nil
		},
	}
}

// reload refreshes the component owning the changed key. A removed
// collection is left alone: loading it again would seed the samples back
// into the store.
func reload(ctx context.Context, app *ideastash.App, ev core.Event) error {
	switch ev.Key {
	case core.KeyIdeas:
		if ev.Type == core.EventDelete {
			return nil
		}
		return app.Ideas.Load(ctx)
	case core.KeyPreferences:
		return app.Preferences.Load(ctx)
	case core.KeyProStatus:
		return app.Subscription.Refresh(ctx)
	}
	return nil
}
