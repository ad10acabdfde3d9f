package ui

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/rota/internal/config"
	"github.com/javiermolinar/rota/internal/db"
	"github.com/javiermolinar/rota/internal/demo"
	"github.com/javiermolinar/rota/internal/logger"
	"github.com/javiermolinar/rota/internal/tui"
	"github.com/javiermolinar/rota/internal/visit"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	repo   visit.Repository
	owned  bool // repo was opened by the app and is closed by it
	config *config.Config
	root   *cobra.Command
	debug  bool // Enable debug logging
	demo   bool // Run the TUI on the built-in roster
}

// NewApp creates a new CLI application. A nil repo is opened on first use
// from the configured database path.
func NewApp(repo visit.Repository, cfg *config.Config) *App {
	a := &App{repo: repo, config: cfg}

	a.root = &cobra.Command{
		Use:   "rota",
		Short: "A drag-and-drop timeline for care visit rotas",
		Long: `Rota shows a day of home-care visits as a timeline, one row per carer
plus a pool of unallocated visits.

Drag a visit with the mouse to give it a new start time or a new carer.
Every move is saved and can be reviewed with 'rota history'.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return logger.Init(a.loggerConfig(cmd))
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			if a.demo {
				return tui.Run(nil, a.config, tui.WithRoster(demo.Roster()))
			}
			repo, err := a.repository()
			if err != nil {
				return err
			}
			return tui.Run(repo, a.config)
		},
	}

	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging")
	a.root.Flags().BoolVar(&a.demo, "demo", false, "Use the built-in roster without touching the database")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.seedCmd())
	a.root.AddCommand(a.rosterCmd())
	a.root.AddCommand(a.moveCmd())
	a.root.AddCommand(a.historyCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "rota %s (commit: %s)\n", Version, Commit)
		},
	}
}

// repository returns the app's repository, opening the database on first use.
func (a *App) repository() (visit.Repository, error) {
	if a.repo != nil {
		return a.repo, nil
	}
	dbPath := a.config.Storage.DBPath
	if dbPath == "" {
		return nil, fmt.Errorf("db path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	repo, err := db.New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("initializing database: %w", err)
	}
	a.repo = repo
	a.owned = true
	return repo, nil
}

// loggerConfig mirrors debug logs to stderr for every command except the
// TUI, which owns the terminal.
func (a *App) loggerConfig(cmd *cobra.Command) logger.Config {
	return logger.Config{
		Debug:  a.debug || a.config.Log.Debug,
		Dir:    a.config.Log.Dir,
		Stderr: cmd != a.root,
	}
}

// SetArgs overrides the command-line arguments, for tests.
func (a *App) SetArgs(args []string) {
	a.root.SetArgs(args)
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases the database if the app opened it.
func (a *App) Close() error {
	if a.repo == nil || !a.owned {
		return nil
	}
	err := a.repo.Close()
	a.repo = nil
	return err
}
