package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/ideastash/pkg/archive"
)

func newExportCmd(c *cli) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Export ideas and preferences",
		Long: `Export ideas and preferences to file, or to stdout when file is omitted or "-".
The format follows the file extension (.json, .yaml, .yml, .csv) unless --format is given.
CSV archives carry ideas only.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "-"
			if len(args) == 1 {
				path = args[0]
			}
			format, err := archiveFormat(format, path)
			if err != nil {
				return err
			}

			app, err := c.openIntact(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			if path == "-" {
				return app.Export(cmd.OutOrStdout(), format)
			}

			f, err := os.Create(path)
			if err != nil {
				return err
			}
			if err := app.Export(f, format); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d ideas to %s.\n", len(app.Ideas.Snapshot().Ideas), path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "json, yaml or csv")
	return cmd
}

func newImportCmd(c *cli) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the journal with an exported archive",
		Long: `Replace every idea with the ideas of an archive ("-" reads stdin).
Preferences are replaced too when the archive carries them.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			format, err := archiveFormat(format, path)
			if err != nil {
				return err
			}

			var r io.Reader = cmd.InOrStdin()
			if path != "-" {
				f, err := os.Open(path)
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}

			app, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			snap, err := app.Import(cmd.Context(), r, format)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d ideas.\n", len(snap.Ideas))
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "json, yaml or csv")
	return cmd
}

func newClearCmd(c *cli) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every idea and reset preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("refusing to clear the journal without --yes")
			}

			app, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Journal cleared.")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm deletion")
	return cmd
}

// archiveFormat returns explicit, or the format of path; stdout defaults to JSON.
func archiveFormat(explicit, path string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if path == "-" {
		return "json", nil
	}
	if f := archive.Format(path); f != "" {
		return f, nil
	}
	return "", fmt.Errorf("cannot infer the format of %s: use --format", path)
}
