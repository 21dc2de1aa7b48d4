package ui

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/timetable/internal/catalog"
	"github.com/javiermolinar/timetable/internal/schedule"
	"github.com/javiermolinar/timetable/internal/tui/input"
)

func (a *App) searchCmd() *cobra.Command {
	var (
		day   string
		slot  int
		limit int
	)

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search the lecture catalog",
		Long: `Fuzzy search lectures by title, id or major.

The query accepts the same terms as the search dialog: major:CS and
grade:2 narrow the results. --day and --slot keep only lectures held
in that cell.`,
		Example: `  timetable search algebra
  timetable search data major:CS
  timetable search --day=Wed --slot=5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if (day == "") != (slot == 0) {
				return fmt.Errorf("--day and --slot must be used together")
			}
			if day != "" && !schedule.IsDay(day) {
				return fmt.Errorf("%q: %w", day, schedule.ErrUnknownDay)
			}

			cat, err := catalog.Load(a.config.Catalog.Path)
			if err != nil {
				return fmt.Errorf("loading lecture catalog: %w", err)
			}

			q := input.ParseQuery(strings.Join(args, " "))
			results := cat.Search(q.Text, catalog.Filter{
				Day:   day,
				Slot:  slot,
				Major: q.Major,
				Grade: q.Grade,
			})

			w := cmd.OutOrStdout()
			if len(results) == 0 {
				fmt.Fprintln(w, "No lectures match.")
				return nil
			}
			width := termWidth()
			shown := results
			if limit > 0 && len(shown) > limit {
				shown = shown[:limit]
			}
			for _, r := range shown {
				printResult(w, r, width)
			}
			if len(shown) < len(results) {
				fmt.Fprintln(w, formatMuted(fmt.Sprintf("  … %d more", len(results)-len(shown))))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&day, "day", "", "Only lectures held on this day (Mon..Sat)")
	cmd.Flags().IntVar(&slot, "slot", 0, "Only lectures held in this slot (1-24)")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum results to print (0 for all)")

	return cmd
}
