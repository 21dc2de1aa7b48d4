package ui

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/timetable/internal/catalog"
	"github.com/javiermolinar/timetable/internal/editor"
	"github.com/javiermolinar/timetable/internal/schedule"
	"github.com/javiermolinar/timetable/internal/store"
)

func (a *App) tableCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Edit timetables without the TUI",
		Long: `Create, copy, remove and edit timetables from the command line.

Tables are referenced by position (1 is the first table) or by id, as
printed by "timetable list". Days are Mon..Sat and slots 1..24.`,
	}

	cmd.AddCommand(a.tableNewCmd())
	cmd.AddCommand(a.tableDuplicateCmd())
	cmd.AddCommand(a.tableRemoveCmd())
	cmd.AddCommand(a.tableAddCmd())
	cmd.AddCommand(a.tableDeleteCmd())
	cmd.AddCommand(a.tableMoveCmd())
	return cmd
}

func (a *App) tableNewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Append an empty timetable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.editTables(cmd, func(c *editor.Controller) (string, error) {
				id := c.AddTable()
				return fmt.Sprintf("Added Schedule %d (%s)", c.SchedulesMap().Index(id)+1, id), nil
			})
		},
	}
}

func (a *App) tableDuplicateCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "duplicate <table>",
		Aliases: []string{"dup"},
		Short:   "Copy a timetable to a new one at the end",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.editTables(cmd, func(c *editor.Controller) (string, error) {
				item, err := itemFor(c, args[0])
				if err != nil {
					return "", err
				}
				if err := item.Duplicate(); err != nil {
					return "", err
				}
				return fmt.Sprintf("Copied %s to Schedule %d", item.Title(), c.SchedulesMap().Len()), nil
			})
		},
	}
}

func (a *App) tableRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <table>",
		Aliases: []string{"rm"},
		Short:   "Remove a timetable (the last one is kept)",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.editTables(cmd, func(c *editor.Controller) (string, error) {
				item, err := itemFor(c, args[0])
				if err != nil {
					return "", err
				}
				if err := item.Remove(); err != nil {
					return "", fmt.Errorf("%s: %w", item.Title(), err)
				}
				return fmt.Sprintf("Removed %s", item.Title()), nil
			})
		},
	}
}

func (a *App) tableAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <table> <lecture-id>",
		Short: "Add every block of a lecture to a timetable",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.Load(a.config.Catalog.Path)
			if err != nil {
				return fmt.Errorf("loading lecture catalog: %w", err)
			}
			lecture, ok := cat.Get(args[1])
			if !ok {
				return fmt.Errorf("lecture %q not found", args[1])
			}
			entries, err := catalog.ParseSchedule(lecture)
			if err != nil {
				return err
			}

			return a.editTables(cmd, func(c *editor.Controller) (string, error) {
				item, err := itemFor(c, args[0])
				if err != nil {
					return "", err
				}
				if err := c.AddEntries(item.ID, entries...); err != nil {
					return "", err
				}
				return fmt.Sprintf("Added %s (%s) to %s", lecture.Title, catalog.FormatSchedule(entries), item.Title()), nil
			})
		},
	}
}

func (a *App) tableDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <table> <day> <slot>",
		Short: "Delete the entry covering a cell",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, slot, err := parseCell(args[1], args[2])
			if err != nil {
				return err
			}
			return a.editTables(cmd, func(c *editor.Controller) (string, error) {
				item, err := itemFor(c, args[0])
				if err != nil {
					return "", err
				}
				if err := item.DeleteEntry(day, slot); err != nil {
					return "", err
				}
				return fmt.Sprintf("Deleted %s %d from %s", day, slot, item.Title()), nil
			})
		},
	}
}

func (a *App) tableMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <table> <day> <slot> <to-day> <to-slot>",
		Short: "Move the entry covering a cell",
		Long: `Move the entry covering <day> <slot> so that this cell lands on
<to-day> <to-slot>, exactly like dragging it in the TUI. Moves that
would leave the timetable are rejected.`,
		Example: `  timetable table move 1 Mon 1 Wed 3`,
		Args:    cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, slot, err := parseCell(args[1], args[2])
			if err != nil {
				return err
			}
			toDay, toSlot, err := parseCell(args[3], args[4])
			if err != nil {
				return err
			}

			return a.editTables(cmd, func(c *editor.Controller) (string, error) {
				item, err := itemFor(c, args[0])
				if err != nil {
					return "", err
				}
				entries, _ := c.SchedulesMap().Entries(item.ID)
				index := schedule.At(entries, day, slot)
				if index < 0 {
					return "", fmt.Errorf("%s %d in %s: %w", day, slot, item.Title(), schedule.ErrEntryNotFound)
				}

				g := item.Geometry()
				delta := schedule.Point{
					X: (schedule.DayIndex(toDay) - schedule.DayIndex(day)) * g.CellWidth,
					Y: (toSlot - slot) * g.CellHeight,
				}
				err = item.DragEnd(schedule.DragEvent{
					ActiveID: schedule.ActiveID(string(item.ID), index),
					Delta:    delta,
				})
				if err != nil {
					return "", err
				}

				moved, _ := c.SchedulesMap().Entries(item.ID)
				e := moved[index]
				return fmt.Sprintf("Moved %s to %s %s", e.Title(), e.Day, e.TimeLabel()), nil
			})
		},
	}
}

// editTables loads every table, runs fn through a controller and saves the
// result if anything changed.
func (a *App) editTables(cmd *cobra.Command, fn func(*editor.Controller) (string, error)) error {
	repo, err := a.repository()
	if err != nil {
		return err
	}
	ctx := context.Background()

	loaded, err := repo.LoadSchedules(ctx)
	if err != nil {
		return fmt.Errorf("loading timetables: %w", err)
	}
	st := store.New(loaded)
	c := editor.NewController(st,
		editor.WithGeometry(a.config.Grid.Geometry()),
		editor.WithActivationDistance(a.config.Grid.ActivationDistance),
	)
	before := st.Version()

	msg, err := fn(c)
	if err != nil {
		return err
	}

	// A fresh database has no tables, so the default one is saved too.
	if st.Version() != before || loaded.Len() == 0 {
		if err := repo.SaveSchedules(ctx, st.SchedulesMap()); err != nil {
			return fmt.Errorf("saving timetables: %w", err)
		}
	}
	fmt.Fprintln(cmd.OutOrStdout(), formatStats(msg))
	return nil
}

// resolveTable finds a table by 1-based position or by id.
func resolveTable(m *schedule.Map, ref string) (schedule.TableID, error) {
	if n, err := strconv.Atoi(ref); err == nil {
		ids := m.IDs()
		if n < 1 || n > len(ids) {
			return "", fmt.Errorf("table %d of %d: %w", n, len(ids), schedule.ErrTableNotFound)
		}
		return ids[n-1], nil
	}
	id := schedule.TableID(ref)
	if !m.Has(id) {
		return "", fmt.Errorf("table %q: %w", ref, schedule.ErrTableNotFound)
	}
	return id, nil
}

func itemFor(c *editor.Controller, ref string) (*editor.TableItem, error) {
	id, err := resolveTable(c.SchedulesMap(), ref)
	if err != nil {
		return nil, err
	}
	item, ok := c.Item(id)
	if !ok {
		return nil, fmt.Errorf("table %q: %w", ref, schedule.ErrTableNotFound)
	}
	return item, nil
}

// parseCell validates a day label and slot number from the command line.
func parseCell(day, slot string) (string, int, error) {
	if !schedule.IsDay(day) {
		return "", 0, fmt.Errorf("%q: %w", day, schedule.ErrUnknownDay)
	}
	n, err := strconv.Atoi(slot)
	if err != nil || n < 1 || n > schedule.SlotCount {
		return "", 0, fmt.Errorf("slot %q: %w", slot, schedule.ErrSlotRange)
	}
	return day, n, nil
}
