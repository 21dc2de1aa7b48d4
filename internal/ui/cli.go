// Package ui implements the timetable command line.
package ui

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/timetable/internal/config"
	"github.com/javiermolinar/timetable/internal/store"
	"github.com/javiermolinar/timetable/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	repo       store.Repository
	ownsRepo   bool // repo was opened by the app and is closed by Close
	config     *config.Config
	configPath string
	root       *cobra.Command
	debug      bool // Enable debug logging
	noColor    bool
}

// NewApp creates a new CLI application. When repo is nil the database from
// cfg is opened the first time a command needs it.
func NewApp(repo store.Repository, cfg *config.Config) *App {
	if cfg == nil {
		cfg = config.Default()
	}
	a := &App{repo: repo, config: cfg, configPath: config.DefaultConfigPath()}

	a.root = &cobra.Command{
		Use:   "timetable",
		Short: "Build weekly class timetables in the terminal",
		Long: `Timetable is a terminal editor for weekly class timetables.

Keep several candidate timetables side by side, drag lectures between
cells with the mouse, duplicate a table to try a variation, and search
the lecture catalog to fill empty slots.`,
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if a.noColor {
				DisableColor()
			}
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return tui.RunWithDebug(a.repo, a.config, a.debug)
		},
	}

	// Add global flags
	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (writes "+tui.DebugLogPath+")")
	a.root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable colored output")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.searchCmd())
	a.root.AddCommand(a.tableCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "timetable %s (commit: %s)\n", Version, Commit)
		},
	}
}

// SetOutput redirects command output and errors.
func (a *App) SetOutput(w io.Writer) {
	a.root.SetOut(w)
	a.root.SetErr(w)
}

// SetInput redirects command input.
func (a *App) SetInput(r io.Reader) {
	a.root.SetIn(r)
}

// SetArgs overrides the command line arguments.
func (a *App) SetArgs(args []string) {
	a.root.SetArgs(args)
}

// SetConfigPath overrides where the config commands read and write.
func (a *App) SetConfigPath(path string) {
	a.configPath = path
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// repository returns the repository, opening the configured database on
// first use.
func (a *App) repository() (store.Repository, error) {
	if a.repo != nil {
		return a.repo, nil
	}
	repo, err := tui.OpenRepository(a.config.Storage.DBPath)
	if err != nil {
		return nil, err
	}
	a.repo = repo
	a.ownsRepo = true
	return repo, nil
}

// Close releases the database if the app opened it.
func (a *App) Close() error {
	if a.ownsRepo && a.repo != nil {
		return a.repo.Close()
	}
	return nil
}
