package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/ideastash/pkg/core"
)

func newUpdateCmd(c *cli) *cobra.Command {
	var (
		title       string
		description string
		category    string
		tags        []string
		clearTags   bool
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit an idea",
		Long:  `Edit the given fields of an idea. Fields without a flag keep their value; --tag replaces the whole tag list.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			var patch core.IdeaPatch
			if flags.Changed("title") {
				patch.Title = &title
			}
			if flags.Changed("description") {
				patch.Description = &description
			}
			if flags.Changed("category") {
				cat := core.Category(category)
				patch.Category = &cat
			}
			if flags.Changed("tag") {
				patch.Tags = tags
			}
			if clearTags {
				patch.Tags = []string{}
			}
			if patch.Empty() {
				return errors.New("nothing to update")
			}
			patch, err := core.ValidatePatch(patch)
			if err != nil {
				return err
			}

			app, err := c.openIntact(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			id := args[0]
			if _, ok := app.Ideas.Get(id); !ok {
				return fmt.Errorf("idea %s not found", id)
			}
			if err := app.Ideas.Update(cmd.Context(), id, patch); err != nil {
				return fmt.Errorf("failed to update idea: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Idea %s updated.\n", id)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "New title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "New description")
	cmd.Flags().StringVarP(&category, "category", "c", "", "New category")
	cmd.Flags().StringArrayVar(&tags, "tag", nil, "Replacement tag (repeatable)")
	cmd.Flags().BoolVar(&clearTags, "clear-tags", false, "Remove every tag")
	cmd.MarkFlagsMutuallyExclusive("tag", "clear-tags")
	return cmd
}
