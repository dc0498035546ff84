package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newShowCmd(c *cli) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one idea",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			idea, ok := app.Ideas.Get(args[0])
			if !ok {
				return fmt.Errorf("idea %s not found", args[0])
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), idea)
			}
			printIdeaDetail(cmd.OutOrStdout(), idea)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output in JSON format")
	return cmd
}
