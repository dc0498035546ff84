package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/aretw0/ideastash"
	"github.com/aretw0/ideastash/internal/config"
)

// cli carries the global flags and the resolved configuration of one invocation.
type cli struct {
	configPath string
	dataDir    string
	adapter    string
	verbose    bool

	cfg    *config.Config
	logger *slog.Logger
}

// NewRootCmd constructs the root command with every subcommand attached.
func NewRootCmd() *cobra.Command {
	c := &cli{}

	rootCmd := &cobra.Command{
		Use:   "ideastash",
		Short: "A personal journal for capturing and organizing ideas",
		Long: `IdeaStash keeps your ideas in a small local journal.
Ideas are categorized, tagged, marked as favorites or implemented, and
persisted after every change to the configured store (fs, sqlite, redis).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.configure(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "Config file (default $IDEASTASH_CONFIG or ./ideastash.yaml)")
	flags.StringVar(&c.dataDir, "data", "", "Data directory (overrides storage.data_dir)")
	flags.StringVar(&c.adapter, "adapter", "", "Storage adapter: fs, sqlite, redis or memory")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(
		newListCmd(c),
		newShowCmd(c),
		newAddCmd(c),
		newUpdateCmd(c),
		newDeleteCmd(c),
		newFavCmd(c),
		newDoneCmd(c),
		newStatsCmd(c),
		newTagsCmd(c),
		newPrefsCmd(c),
		newProCmd(c),
		newExportCmd(c),
		newImportCmd(c),
		newClearCmd(c),
		newWatchCmd(c),
		newVersionCmd(),
	)
	return rootCmd
}

func (c *cli) configure(cmd *cobra.Command) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if c.dataDir != "" {
		cfg.Storage.DataDir = c.dataDir
	}
	if c.adapter != "" {
		cfg.Storage.Adapter = c.adapter
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	c.cfg = cfg
	c.logger = config.NewLogger(cfg.Log, cmd.ErrOrStderr(), c.verbose)
	slog.SetDefault(c.logger)
	return nil
}

// open wires the journal described by the configuration and loads it.
// Load failures are logged; every component falls back to its defaults.
func (c *cli) open(ctx context.Context) (*ideastash.App, error) {
	s := c.cfg.Storage
	opts := []ideastash.Option{
		ideastash.WithLogger(c.logger),
		ideastash.WithAdapter(s.Adapter),
		ideastash.WithVersioning(s.Versioning),
		ideastash.WithEntitlement(c.cfg.Entitlement.Provider),
		ideastash.WithRedis(s.Redis.Addr, s.Redis.Password, s.Redis.DB),
		ideastash.WithKeyPrefix(s.Redis.Prefix),
	}
	if s.DataDir != "" {
		opts = append(opts, ideastash.WithDataDir(s.DataDir))
	}
	if s.SQLitePath != "" {
		opts = append(opts, ideastash.WithSQLitePath(s.SQLitePath))
	}
	if c.cfg.Seed == "samples" {
		opts = append(opts, ideastash.WithSeed(ideastash.SampleIdeas))
	}

	app, err := ideastash.Open(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	if err := app.Load(ctx); err != nil {
		c.logger.Warn("journal loaded with errors", "error", err)
	}
	return app, nil
}

// openIntact is open for commands that persist or export ideas. An
// unreadable collection is refused so it is neither overwritten nor
// exported as empty.
func (c *cli) openIntact(ctx context.Context) (*ideastash.App, error) {
	app, err := c.open(ctx)
	if err != nil {
		return nil, err
	}
	if msg := app.Ideas.Snapshot().Error; msg != "" {
		_ = app.Close()
		return nil, errors.New(msg)
	}
	return app, nil
}

// warnUnreadable tells the user the ideas shown are the empty fallback of a
// collection that could not be read.
func warnUnreadable(w io.Writer, app *ideastash.App) {
	if msg := app.Ideas.Snapshot().Error; msg != "" {
		fmt.Fprintf(w, "warning: %s\n", msg)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
