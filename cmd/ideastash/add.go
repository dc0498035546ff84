package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/ideastash/pkg/core"
)

func newAddCmd(c *cli) *cobra.Command {
	var (
		fields   core.IdeaFields
		category string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Capture a new idea",
		Example: `  ideastash add -t "Tiny garden kit" -d "Balcony herbs in a box" -c lifestyle --tag plants --tag diy`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fields.Category = core.Category(category)
			valid, err := core.ValidateFields(fields)
			if err != nil {
				return err
			}

			app, err := c.openIntact(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			idea, err := app.Ideas.Add(cmd.Context(), valid)
			if err != nil {
				return fmt.Errorf("failed to save idea: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Idea %s added.\n", idea.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&fields.Title, "title", "t", "", "Idea title (required)")
	cmd.Flags().StringVarP(&fields.Description, "description", "d", "", "Idea description (required)")
	cmd.Flags().StringVarP(&category, "category", "c", string(core.CategoryOther), "Idea category")
	cmd.Flags().StringArrayVar(&fields.Tags, "tag", nil, "Tag (repeatable)")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("description")
	return cmd
}
