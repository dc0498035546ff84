package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/ideastash/pkg/query"
)

func newStatsCmd(c *cli) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize the journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()
			warnUnreadable(cmd.ErrOrStderr(), app)

			stats := query.Summarize(app.Ideas.Snapshot().Ideas)
			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, stats)
			}

			fmt.Fprintf(out, "Ideas:       %d\n", stats.Total)
			fmt.Fprintf(out, "Favorites:   %d\n", stats.Favorites)
			fmt.Fprintf(out, "Implemented: %d\n", stats.Implemented)
			if len(stats.Categories) > 0 {
				fmt.Fprintln(out, "\nCategories:")
				for _, cc := range stats.Categories {
					fmt.Fprintf(out, "  %-10s %d\n", cc.Category.Label(), cc.Count)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output in JSON format")
	return cmd
}

func newTagsCmd(c *cli) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "tags",
		Short: "List tags by how many ideas use them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()
			warnUnreadable(cmd.ErrOrStderr(), app)

			tags := query.TagFrequency(app.Ideas.Snapshot().Ideas)
			if limit > 0 && len(tags) > limit {
				tags = tags[:limit]
			}
			for _, t := range tags {
				fmt.Fprintf(cmd.OutOrStdout(), "%4d  #%s\n", t.Count, t.Tag)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show at most n tags")
	return cmd
}
