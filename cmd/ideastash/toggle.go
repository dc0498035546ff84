package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/ideastash"
	"github.com/aretw0/ideastash/pkg/core"
)

func newFavCmd(c *cli) *cobra.Command {
	return newToggleCmd(c, "fav <id>", "Toggle the favorite flag of an idea",
		func(ctx context.Context, app *ideastash.App, id string) error { return app.Ideas.ToggleFavorite(ctx, id) },
		func(i core.Idea) string { return onOff(i.IsFavorite, "favorite", "not a favorite") })
}

func newDoneCmd(c *cli) *cobra.Command {
	return newToggleCmd(c, "done <id>", "Toggle the implemented flag of an idea",
		func(ctx context.Context, app *ideastash.App, id string) error { return app.Ideas.ToggleImplemented(ctx, id) },
		func(i core.Idea) string { return onOff(i.IsImplemented, "implemented", "not implemented") })
}

func newToggleCmd(c *cli, use, short string,
	toggle func(context.Context, *ideastash.App, string) error,
	describe func(core.Idea) string,
) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.openIntact(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			id := args[0]
			if _, ok := app.Ideas.Get(id); !ok {
				return fmt.Errorf("idea %s not found", id)
			}
			if err := toggle(cmd.Context(), app, id); err != nil {
				return fmt.Errorf("failed to update idea: %w", err)
			}
			idea, _ := app.Ideas.Get(id)
			fmt.Fprintf(cmd.OutOrStdout(), "Idea %s is now %s.\n", id, describe(idea))
			return nil
		},
	}
}

func onOff(v bool, on, off string) string {
	if v {
		return on
	}
	return off
}
