package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/timetable/internal/config"
	"github.com/javiermolinar/timetable/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Show, create or edit the configuration file.

Without a subcommand the current configuration is printed.`,
		Example: `  timetable config
  timetable config init
  timetable config edit`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.showConfig(cmd.OutOrStdout())
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the current configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.showConfig(cmd.OutOrStdout())
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), a.configPath)
		},
	})
	cmd.AddCommand(a.configInitCmd())
	cmd.AddCommand(&cobra.Command{
		Use:   "edit",
		Short: "Edit the configuration interactively",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runConfigInteractive(cmd.InOrStdin(), cmd.OutOrStdout())
		},
	})
	return cmd
}

func (a *App) configInitCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with default values",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := os.Stat(a.configPath); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", a.configPath)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("checking config file: %w", err)
			}
			if err := config.Default().SaveTo(a.configPath); err != nil {
				return fmt.Errorf("saving config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", a.configPath)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	return cmd
}

func (a *App) showConfig(w io.Writer) error {
	fmt.Fprintf(w, "Config file: %s\n\n", a.configPath)
	printConfig(w, a.config)
	return nil
}

func (a *App) runConfigInteractive(in io.Reader, w io.Writer) error {
	fmt.Fprintf(w, "Config file: %s\n\n", a.configPath)

	cfg, err := config.LoadFrom(a.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	printConfig(w, cfg)
	fmt.Fprintln(w)

	reader := bufio.NewReader(in)
	cfg.UI.Theme = promptTheme(reader, w, cfg.UI.Theme)
	cfg.UI.ColumnWidth = promptInt(reader, w, "Column width", cfg.UI.ColumnWidth)
	cfg.Grid.ActivationDistance = promptInt(reader, w, "Drag activation distance", cfg.Grid.ActivationDistance)
	cfg.Storage.DBPath = promptValue(reader, w, "Database path", cfg.Storage.DBPath)
	cfg.Catalog.Path = promptValue(reader, w, "Extra lecture catalog (empty for none)", cfg.Catalog.Path)

	// Validate before saving
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.SaveTo(a.configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintln(w, "\nConfiguration saved!")
	return nil
}

func printConfig(w io.Writer, cfg *config.Config) {
	fmt.Fprintln(w, formatHeader("Current configuration:"))
	fmt.Fprintln(w, "──────────────────────")
	fmt.Fprintln(w, "[grid]")
	fmt.Fprintf(w, "  cell_width          = %d\n", cfg.Grid.CellWidth)
	fmt.Fprintf(w, "  cell_height         = %d\n", cfg.Grid.CellHeight)
	fmt.Fprintf(w, "  header_width        = %d\n", cfg.Grid.HeaderWidth)
	fmt.Fprintf(w, "  header_height       = %d\n", cfg.Grid.HeaderHeight)
	fmt.Fprintf(w, "  activation_distance = %d\n", cfg.Grid.ActivationDistance)
	fmt.Fprintln(w, "\n[ui]")
	fmt.Fprintf(w, "  theme               = %s\n", cfg.UI.Theme)
	fmt.Fprintf(w, "  column_width        = %d\n", cfg.UI.ColumnWidth)
	fmt.Fprintln(w, "\n[storage]")
	fmt.Fprintf(w, "  db_path             = %s\n", cfg.Storage.DBPath)
	fmt.Fprintln(w, "\n[catalog]")
	path := cfg.Catalog.Path
	if path == "" {
		path = formatMuted("(built-in only)")
	}
	fmt.Fprintf(w, "  path                = %s\n", path)
}

func promptValue(reader *bufio.Reader, w io.Writer, label, current string) string {
	if current == "" {
		fmt.Fprintf(w, "  %s: ", label)
	} else {
		fmt.Fprintf(w, "  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptInt(reader *bufio.Reader, w io.Writer, label string, current int) int {
	for {
		value := promptValue(reader, w, label, strconv.Itoa(current))
		n, err := strconv.Atoi(value)
		if err == nil {
			return n
		}
		fmt.Fprintf(w, "  Invalid number %q\n", value)
		if _, err := reader.Peek(1); err != nil {
			return current
		}
	}
}

func promptTheme(reader *bufio.Reader, w io.Writer, current string) string {
	options := strings.Join(theme.Available(), ", ")
	label := fmt.Sprintf("UI theme (%s)", options)
	for {
		value := strings.ToLower(promptValue(reader, w, label, current))
		if theme.IsAvailable(value) {
			return value
		}
		fmt.Fprintf(w, "  Invalid theme %q. Available: %s\n", value, options)
		if _, err := reader.Peek(1); err != nil {
			return current
		}
	}
}
