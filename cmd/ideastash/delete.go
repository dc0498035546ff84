package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDeleteCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete an idea",
		Args:    cobra.ExactArgs(1),
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
			if err := app.Ideas.Delete(cmd.Context(), id); err != nil {
				return fmt.Errorf("failed to delete idea: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Idea %s deleted.\n", id)
			return nil
		},
	}
}
