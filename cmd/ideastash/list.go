package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/ideastash/pkg/core"
	"github.com/aretw0/ideastash/pkg/query"
)

func newListCmd(c *cli) *cobra.Command {
	var (
		category    string
		search      string
		tag         string
		favorites   bool
		implemented bool
		sortOrder   string
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List ideas",
		Long: `List ideas, newest first unless --sort or the saved sort order says otherwise.
Filters combine: an idea must match all of them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			crit := query.Criteria{Query: search, Tag: tag, FavoritesOnly: favorites}
			if category != "" {
				cat, err := core.ParseCategory(category)
				if err != nil {
					return err
				}
				crit.Category = &cat
			}
			var order core.SortOrder
			if sortOrder != "" {
				o, err := core.ParseSortOrder(sortOrder)
				if err != nil {
					return err
				}
				order = o
			}

			app, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			if order == "" {
				order = app.Preferences.Get().SortOrder
			}

			state := app.Ideas.Snapshot()
			found := query.Filter(state.Ideas, crit)
			if implemented {
				found = query.Implemented(found)
			}
			found = query.Sort(found, order)

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, found)
			}
			warnUnreadable(cmd.ErrOrStderr(), app)
			if len(found) == 0 {
				fmt.Fprintln(out, "No ideas found.")
				return nil
			}
			for _, i := range found {
				printIdea(out, i)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Only ideas of this category")
	cmd.Flags().StringVarP(&search, "search", "q", "", "Case-insensitive text in title, description or tags")
	cmd.Flags().StringVar(&tag, "tag", "", "Only ideas carrying this tag")
	cmd.Flags().BoolVar(&favorites, "favorites", false, "Only favorite ideas")
	cmd.Flags().BoolVar(&implemented, "implemented", false, "Only implemented ideas")
	cmd.Flags().StringVar(&sortOrder, "sort", "", "newest, oldest, alphabetical or category")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output in JSON format")
	return cmd
}
