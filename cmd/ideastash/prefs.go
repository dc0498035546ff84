package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/aretw0/ideastash/pkg/core"
)

func newPrefsCmd(c *cli) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or change preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			p := app.Preferences.Get()
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), p)
			}
			printPrefs(cmd.OutOrStdout(), p)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output in JSON format")

	cmd.AddCommand(newPrefsSetCmd(c), newPrefsResetCmd(c), newOnboardCmd(c))
	return cmd
}

func newPrefsSetCmd(c *cli) *cobra.Command {
	var sortOrder, viewMode string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change the sort order or view mode",
		Example: `  ideastash prefs set --sort alphabetical
  ideastash prefs set --view grid`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if sortOrder == "" && viewMode == "" {
				return errors.New("nothing to set: use --sort or --view")
			}

			app, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			ctx := cmd.Context()
			if sortOrder != "" {
				if err := app.Preferences.SetSortOrder(ctx, core.SortOrder(sortOrder)); err != nil {
					return err
				}
			}
			if viewMode != "" {
				if err := app.Preferences.SetViewMode(ctx, core.ViewMode(viewMode)); err != nil {
					return err
				}
			}
			printPrefs(cmd.OutOrStdout(), app.Preferences.Get())
			return nil
		},
	}

	cmd.Flags().StringVar(&sortOrder, "sort", "", "newest, oldest, alphabetical or category")
	cmd.Flags().StringVar(&viewMode, "view", "", "list or grid")
	return cmd
}

func newPrefsResetCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore the default preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.Preferences.Reset(cmd.Context()); err != nil {
				return err
			}
			printPrefs(cmd.OutOrStdout(), app.Preferences.Get())
			return nil
		},
	}
}

func newOnboardCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "onboard",
		Short: "Mark onboarding as completed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			if app.Preferences.Get().HasCompletedOnboarding {
				fmt.Fprintln(cmd.OutOrStdout(), "Onboarding already completed.")
				return nil
			}
			if err := app.Preferences.SetOnboardingComplete(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Onboarding completed.")
			return nil
		},
	}
}

func printPrefs(w io.Writer, p core.Preferences) {
	fmt.Fprintf(w, "Onboarding: %s\n", onOff(p.HasCompletedOnboarding, "completed", "pending"))
	fmt.Fprintf(w, "Sort order: %s\n", p.SortOrder)
	fmt.Fprintf(w, "View mode:  %s\n", p.ViewMode)
}
