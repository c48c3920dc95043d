package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/ecotrack/internal/catalog"
	"github.com/rshade/ecotrack/internal/config"
	"github.com/rshade/ecotrack/internal/logging"
	"github.com/rshade/ecotrack/internal/store"
	"github.com/rshade/ecotrack/internal/tracker"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// Options customise the root command for tests and embedding.
type Options struct {
	// Now overrides the clock used for recording and summaries.
	Now func() time.Time
}

// app holds what a command run needs. It is built in PersistentPreRunE and
// the tracker is opened lazily so config commands never touch the state file.
type app struct {
	opts      Options
	cfg       *config.Config
	catalog   *catalog.Catalog
	tracker   *tracker.Tracker
	store     store.Store
	logResult *logging.Result
}

// Tracker opens the state on first use.
func (a *app) Tracker(ctx context.Context) (*tracker.Tracker, error) {
	if a.tracker != nil {
		return a.tracker, nil
	}
	st, err := store.Open(a.cfg.Data.Backend, a.cfg.Data.File)
	if err != nil {
		return nil, err
	}
	logger.Debug().Ctx(ctx).
		Str("backend", a.cfg.Data.Backend).
		Str("path", st.Path()).
		Msg("opened state store")

	t := tracker.New(tracker.Options{
		ActivityCap:       a.cfg.Data.ActivityCap,
		RegionalAverageKg: a.cfg.Impact.RegionalAverageKg,
	}, st, a.catalog, a.opts.Now)
	t.Open(ctx)
	a.store = st
	a.tracker = t
	return t, nil
}

// close releases the state store if one was opened.
func (a *app) close() error {
	if a.store == nil {
		return nil
	}
	err := a.store.Close()
	a.store = nil
	a.tracker = nil
	return err
}

// NewRootCmd creates the root Cobra command for the ecotrack CLI.
func NewRootCmd(ver string) *cobra.Command {
	return NewRootCmdWithOptions(ver, Options{})
}

// NewRootCmdWithOptions creates the root command with explicit options for testability.
func NewRootCmdWithOptions(ver string, opts Options) *cobra.Command {
	a := &app{opts: opts}

	cmd := &cobra.Command{
		Use:           "ecotrack",
		Short:         "Track the carbon footprint of everyday activities",
		Long:          "EcoTrack: log transport, food and energy activities and see their carbon impact",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			a.cfg = cfg
			config.SetGlobalConfig(cfg)

			a.logResult = setupLogging(cmd)

			cat, err := loadCatalog(cfg)
			if err != nil {
				return err
			}
			a.catalog = cat
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.close(); err != nil {
				logger.Warn().Ctx(cmd.Context()).Err(err).Msg("closing state store")
			}
			return cleanupLogging(cmd, a.logResult)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "config file (default ~/.ecotrack/config.yaml)")
	cmd.PersistentFlags().String("data", "", "state file (overrides data.file)")

	cmd.AddCommand(
		newLogCmd(a),
		newTodayCmd(a),
		newWeekCmd(a),
		newHistoryCmd(a),
		newImpactCmd(a),
		newCompareCmd(a),
		newCatalogCmd(a),
		newExportCmd(a),
		newResetCmd(a),
		newDashboardCmd(a),
		newConfigCmd(a),
	)

	return cmd
}

// loadConfig resolves the config path from --config, ECOTRACK_CONFIG or the
// default location and applies the --data override.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		p, err := config.DefaultConfigPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if data, _ := cmd.Flags().GetString("data"); data != "" {
		cfg.Data.File = data
	}
	return cfg, nil
}

func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.Data.CatalogFile == "" {
		return catalog.Default(), nil
	}
	cat, err := catalog.LoadFile(cfg.Data.CatalogFile)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	return cat, nil
}

const rootCmdExample = `  # Log a car trip and a vegan meal
  ecotrack log transport car
  ecotrack log food vegan --quantity 2

  # Log an activity with a known footprint
  ecotrack log transport ferry --carbon 12.5

  # See today's footprint and the last two weeks
  ecotrack today
  ecotrack week --days 14

  # Compare against the regional average
  ecotrack compare

  # Export every report format into a directory
  ecotrack export --format all --output ./reports

  # Open the interactive dashboard
  ecotrack dashboard`

// newConfigCmd creates the config command group.
func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(), newConfigShowCmd(a))
	return cmd
}
