package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) listCmd() *cobra.Command {
	var table string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the saved timetables",
		Long: `List every saved timetable with its entries ordered by day and time.

Use --table to print a single timetable, either by its position
(1 is the first table) or by its id.`,
		Example: `  timetable list
  timetable list --table=2`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, err := a.repository()
			if err != nil {
				return err
			}
			m, err := repo.LoadSchedules(context.Background())
			if err != nil {
				return fmt.Errorf("loading timetables: %w", err)
			}

			w := cmd.OutOrStdout()
			if m.Len() == 0 {
				fmt.Fprintln(w, "No timetables saved yet.")
				return nil
			}

			width := termWidth()
			if table != "" {
				id, err := resolveTable(m, table)
				if err != nil {
					return err
				}
				entries, _ := m.Entries(id)
				printTable(w, m.Index(id), id, entries, width)
				return nil
			}

			for pos, id := range m.IDs() {
				if pos > 0 {
					fmt.Fprintln(w)
				}
				entries, _ := m.Entries(id)
				printTable(w, pos, id, entries, width)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&table, "table", "", "Only print this table (position or id)")

	return cmd
}
