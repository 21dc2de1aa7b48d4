package tui

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/timetable/internal/editor"
	"github.com/javiermolinar/timetable/internal/schedule"
	"github.com/javiermolinar/timetable/internal/tui/commands"
)

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	LogKeyPress(msg)

	// Global keys (work in all modes)
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.loading {
		if msg.String() == "q" {
			return m, tea.Quit
		}
		return m, nil
	}

	switch m.mode {
	case ModeSearch:
		return m.handleSearchKeys(msg)
	case ModeMove:
		return m.handleMoveKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

// handleNormalKeys handles keys in normal mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	// Table focus
	case "tab":
		m.focusTable(m.focus + 1)
	case "shift+tab":
		m.focusTable(m.focus - 1)

	// Cursor
	case "h", "left":
		m.cursor.Day = max(m.cursor.Day-1, 0)
	case "l", "right":
		m.cursor.Day = min(m.cursor.Day+1, len(schedule.DayLabels)-1)
	case "k", "up":
		m.cursor.Slot = max(m.cursor.Slot-1, 1)
		m.ensureCursorVisible()
	case "j", "down":
		m.cursor.Slot = min(m.cursor.Slot+1, schedule.SlotCount)
		m.ensureCursorVisible()
	case "pgup", "ctrl+u":
		m.cursor.Slot = max(m.cursor.Slot-m.visibleSlots(), 1)
		m.ensureCursorVisible()
	case "pgdown", "ctrl+d":
		m.cursor.Slot = min(m.cursor.Slot+m.visibleSlots(), schedule.SlotCount)
		m.ensureCursorVisible()
	case "g":
		m.cursor.Slot = 1
		m.ensureCursorVisible()
	case "G":
		m.cursor.Slot = schedule.SlotCount
		m.ensureCursorVisible()

	// Search
	case "a", "/":
		if err := m.ctrl.OpenSearch(m.focusedID()); err != nil {
			LogError("open search", err)
			return m, nil
		}
		return m.openSearch("search")
	case "enter":
		day, slot := m.cursorCell()
		if err := m.ctrl.OpenSearchAt(m.focusedID(), day, slot); err != nil {
			LogError("open search", err)
			return m, nil
		}
		return m.openSearch("search at cursor")

	// Tables
	case "n":
		id := m.ctrl.AddTable()
		m.focusTable(m.ctrl.SchedulesMap().Index(id))
		return m.afterChange("add table")
	case "d":
		return m.withItem("duplicate", func(item *editor.TableItem) error {
			return item.Duplicate()
		})
	case "X":
		return m.withItem("remove", func(item *editor.TableItem) error {
			return item.Remove()
		})

	// Entries
	case "x", "delete":
		day, slot := m.cursorCell()
		return m.withItem("delete entry", func(item *editor.TableItem) error {
			return item.DeleteEntry(day, slot)
		})
	case "m":
		return m.startMove()
	case "y":
		return m, m.copyFocusedTable()
	}

	return m, nil
}

// handleMoveKeys handles keys while a block is being moved with the keyboard.
func (m Model) handleMoveKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	g := m.ctrl.Geometry()

	switch msg.String() {
	case "esc", "q":
		m.setMode(ModeNormal, "move cancelled")
		m.move = moveState{}
		return m, nil
	case "enter", "m":
		return m.finishMove()
	case "h", "left":
		m.move.delta.X -= g.CellWidth
	case "l", "right":
		m.move.delta.X += g.CellWidth
	case "k", "up":
		m.move.delta.Y -= g.CellHeight
	case "j", "down":
		m.move.delta.Y += g.CellHeight
	default:
		return m, nil
	}

	// Keep the delta where Snap would put it so extra presses past an edge
	// do not have to be undone.
	if item, entry, ok := m.moveTarget(); ok {
		m.move.delta = item.Snap(m.move.delta, entry)
		if _, moved, ok := m.movePreview(); ok {
			m.cursor = Position{Day: schedule.DayIndex(moved.Day), Slot: moved.Start()}
			m.ensureCursorVisible()
		}
	}
	return m, nil
}

// startMove enters move mode for the block under the cursor.
func (m Model) startMove() (tea.Model, tea.Cmd) {
	id := m.focusedID()
	entries, _ := m.ctrl.SchedulesMap().Entries(id)
	day, slot := m.cursorCell()
	index := schedule.At(entries, day, slot)
	if index < 0 {
		LogError("move", fmt.Errorf("%s %d: %w", day, slot, schedule.ErrEntryNotFound))
		return m, nil
	}
	m.move = moveState{table: id, index: index}
	m.setMode(ModeMove, "move "+entries[index].Title())
	return m, nil
}

// finishMove applies the keyboard move exactly like a mouse drag end.
func (m Model) finishMove() (tea.Model, tea.Cmd) {
	item, entry, ok := m.moveTarget()
	m.setMode(ModeNormal, "move done")
	mv := m.move
	m.move = moveState{}
	if !ok {
		return m, nil
	}
	err := item.DragEnd(schedule.DragEvent{
		ActiveID: schedule.ActiveID(string(item.ID), mv.index),
		Delta:    item.Snap(mv.delta, entry),
	})
	if err != nil {
		LogError("move", err)
		return m, nil
	}
	return m.afterChange("move entry")
}

// moveTarget returns the item and entry of the keyboard move in progress.
func (m Model) moveTarget() (*editor.TableItem, schedule.Entry, bool) {
	item, ok := m.ctrl.Item(m.move.table)
	if !ok {
		return nil, schedule.Entry{}, false
	}
	entries, _ := m.ctrl.SchedulesMap().Entries(m.move.table)
	if m.move.index < 0 || m.move.index >= len(entries) {
		return nil, schedule.Entry{}, false
	}
	return item, entries[m.move.index], true
}

// movePreview returns where the keyboard move would land.
func (m Model) movePreview() (int, schedule.Entry, bool) {
	item, entry, ok := m.moveTarget()
	if !ok {
		return -1, schedule.Entry{}, false
	}
	days, slots := item.Geometry().Offsets(item.Snap(m.move.delta, entry))
	moved, err := schedule.Translate(entry, days, slots)
	if err != nil {
		return -1, schedule.Entry{}, false
	}
	return m.move.index, moved, true
}

// withItem runs an operation on the focused table's item. Rejected
// operations leave the store untouched and are only logged.
func (m Model) withItem(action string, fn func(*editor.TableItem) error) (tea.Model, tea.Cmd) {
	item, ok := m.ctrl.Item(m.focusedID())
	if !ok {
		return m, nil
	}
	if err := fn(item); err != nil {
		LogError(action, err)
		return m, nil
	}
	if action == "duplicate" {
		m.focusTable(m.ctrl.SchedulesMap().Len() - 1)
	}
	return m.afterChange(action)
}

// focusTable moves focus to table i, wrapping around.
func (m *Model) focusTable(i int) {
	n := m.ctrl.SchedulesMap().Len()
	if n == 0 {
		return
	}
	m.focus = ((i % n) + n) % n
	m.ensureFocusVisible()
}

// cursorCell returns the day label and slot under the cursor.
func (m Model) cursorCell() (string, int) {
	return schedule.DayLabels[m.cursor.Day], m.cursor.Slot
}

// copyFocusedTable copies a plain text listing of the focused table.
func (m Model) copyFocusedTable() tea.Cmd {
	id := m.focusedID()
	entries, ok := m.ctrl.SchedulesMap().Entries(id)
	if !ok {
		return nil
	}
	title := fmt.Sprintf("Schedule %d", m.focus+1)
	return commands.CopyToClipboard(title, tableText(title, entries))
}

// tableText lists entries by day and start slot, one per line.
func tableText(title string, entries []schedule.Entry) string {
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b schedule.Entry) int {
		if d := schedule.DayIndex(a.Day) - schedule.DayIndex(b.Day); d != 0 {
			return d
		}
		return a.Start() - b.Start()
	})

	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n")
	for _, e := range sorted {
		fmt.Fprintf(&b, "%s %s  %s", e.Day, e.TimeLabel(), e.Title())
		if e.Room != "" {
			fmt.Fprintf(&b, " (%s)", e.Room)
		}
		b.WriteString("\n")
	}
	return b.String()
}
