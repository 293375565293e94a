// Package cli implements the shade command surface.
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/palettelabs/shade/internal/appearance"
	"github.com/palettelabs/shade/internal/config"
	"github.com/palettelabs/shade/internal/db"
	"github.com/palettelabs/shade/internal/ghostty"
	"github.com/palettelabs/shade/internal/logging"
	"github.com/palettelabs/shade/internal/models"
	"github.com/palettelabs/shade/internal/prefs"
	"github.com/palettelabs/shade/internal/session"
	"github.com/palettelabs/shade/internal/themes"
	"github.com/palettelabs/shade/internal/tmux"
)

// version is stamped at build time via -ldflags.
var version = "dev"

var (
	cfgFile        string
	jsonOutput     bool
	jsonlOutput    bool
	nonInteractive bool
	noProgress     bool

	appConfig *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "shade",
	Short: "Keep terminal colors in step with the OS appearance",
	Long: `shade mirrors the operating system's dark/light appearance into tmux
and the Ghostty configuration file, keeping a selected palette pair
consistent across both.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initApp()
	},
}

func init() {
	rootCmd.Version = version
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $XDG_CONFIG_HOME/shade/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&jsonlOutput, "jsonl", false, "output as newline-delimited JSON")
	rootCmd.PersistentFlags().BoolVar(&nonInteractive, "non-interactive", false, "never prompt; fail or fall back to defaults")
	rootCmd.PersistentFlags().BoolVar(&noProgress, "no-progress", false, "disable progress output")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func initApp() error {
	var (
		cfg *config.Config
		err error
	)
	if cfgFile != "" {
		cfg, err = config.LoadFile(cfgFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}
	appConfig = cfg

	format := cfg.Logging.Format
	if format == "" {
		format = "json"
		if term.IsTerminal(int(os.Stderr.Fd())) {
			format = "console"
		}
	}
	if err := logging.Setup(logging.Config{Level: cfg.Logging.Level, Format: format}); err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}
	return nil
}

// GetConfig returns the loaded configuration. Before the root command
// has run (tests, completion) it falls back to defaults.
func GetConfig() *config.Config {
	if appConfig == nil {
		return config.DefaultConfig()
	}
	return appConfig
}

func openDatabase() (*db.DB, error) {
	path := GetConfig().History.Path
	if path == "" {
		path = db.DefaultPath()
	}

	database, err := db.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open journal database: %w", err)
	}
	if _, err := database.MigrateUp(context.Background()); err != nil {
		database.Close()
		return nil, fmt.Errorf("migrate journal database: %w", err)
	}
	return database, nil
}

// noopHost swallows theme applications when the tmux adapter is
// disabled in the configuration.
type noopHost struct{}

func (noopHost) ApplyTheme(context.Context, string, models.Palette) error { return nil }

// buildSession wires a Session from the loaded configuration. The
// returned cleanup closes the journal database when one was opened.
func buildSession() (*session.Session, func(), error) {
	cfg := GetConfig()

	registry, err := themes.Load()
	if err != nil {
		return nil, nil, err
	}

	store := prefs.NewStore(prefs.DefaultPath(), registry, logging.Component("prefs"))

	var host session.Host = noopHost{}
	var notifier session.Notifier
	if cfg.Tmux.Enabled {
		client := tmux.NewLocalClient()
		host = client
		if cfg.Tmux.Notify {
			notifier = client
		}
	}

	opts := session.Options{
		Registry:           registry,
		Store:              store,
		Resolver:           appearance.DefaultResolver(),
		Host:               host,
		Notifier:           notifier,
		GhosttyConfig:      cfg.Ghostty.ConfigPath,
		DisableGhosttySync: !cfg.Ghostty.Sync,
		PollInterval:       cfg.Poll.Interval,
	}
	if cfg.Ghostty.Reload {
		opts.Reloader = ghostty.NewReloader(tmux.LocalExecutor{})
	}

	cleanup := func() {}
	if cfg.History.Enabled {
		database, err := openDatabase()
		if err != nil {
			logging.Component("cli").Warn().Err(err).Msg("journal unavailable for this run")
		} else {
			opts.Events = db.NewEventRepository(database)
			cleanup = func() { database.Close() }
		}
	}

	sess, err := session.New(opts)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return sess, cleanup, nil
}

// PreflightError is a user-facing failure with remediation guidance.
type PreflightError struct {
	Message  string
	Hint     string
	NextStep string
}

func (e *PreflightError) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	if e.Hint != "" {
		b.WriteString("\nhint: ")
		b.WriteString(e.Hint)
	}
	if e.NextStep != "" {
		b.WriteString("\nnext: ")
		b.WriteString(e.NextStep)
	}
	return b.String()
}
