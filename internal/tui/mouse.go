package tui

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/timetable/internal/editor"
	"github.com/javiermolinar/timetable/internal/schedule"
)

// Zone id prefixes for the clickable parts of the screen.
const (
	zoneAdd    = "add:"
	zoneDup    = "dup:"
	zoneDel    = "del:"
	zoneResult = "result:"
)

// handleMouse handles mouse input.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	LogMouse(msg)
	if m.loading {
		return m, nil
	}

	if m.mode == ModeSearch {
		return m.handleSearchMouse(msg)
	}
	if m.mode == ModeMove {
		return m, nil
	}

	if m.drag != nil {
		switch msg.Action {
		case tea.MouseActionMotion:
			return m.dragMove(msg), nil
		case tea.MouseActionRelease:
			return m.dragEnd(msg)
		}
	}

	if msg.Action != tea.MouseActionPress {
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.scroll--
		m.clampScroll()
	case tea.MouseButtonWheelDown:
		m.scroll++
		m.clampScroll()
	case tea.MouseButtonWheelLeft:
		m.focusTable(m.focus - 1)
	case tea.MouseButtonWheelRight:
		m.focusTable(m.focus + 1)
	case tea.MouseButtonLeft:
		if action, id, ok := m.buttonAt(msg); ok {
			return m.pressButton(action, id)
		}
		return m.dragStart(msg), nil
	case tea.MouseButtonRight:
		return m.deleteAt(msg)
	}
	return m, nil
}

// buttonAt returns the title bar button under the pointer.
func (m Model) buttonAt(msg tea.MouseMsg) (string, schedule.TableID, bool) {
	for _, id := range m.ctrl.SchedulesMap().IDs() {
		for _, prefix := range []string{zoneAdd, zoneDup, zoneDel} {
			if z := m.zones.Get(prefix + string(id)); z != nil && z.InBounds(msg) {
				return prefix, id, true
			}
		}
	}
	return "", "", false
}

// pressButton runs a title bar action.
func (m Model) pressButton(action string, id schedule.TableID) (tea.Model, tea.Cmd) {
	m.focusTable(m.ctrl.SchedulesMap().Index(id))
	switch action {
	case zoneAdd:
		if err := m.ctrl.OpenSearch(id); err != nil {
			LogError("open search", err)
			return m, nil
		}
		return m.openSearch("add button")
	case zoneDup:
		return m.withItem("duplicate", func(item *editor.TableItem) error {
			return item.Duplicate()
		})
	case zoneDel:
		return m.withItem("remove", func(item *editor.TableItem) error {
			return item.Remove()
		})
	}
	return m, nil
}

// dragStart presses the pointer sensor of the table under the pointer.
// The same item is kept until release so the sensor survives the gesture.
func (m Model) dragStart(msg tea.MouseMsg) Model {
	hit, ok := m.hitTest(msg.X, msg.Y)
	if !ok {
		return m
	}
	item, ok := m.ctrl.Item(hit.id)
	if !ok {
		return m
	}
	m.focusTable(hit.pos)

	index := -1
	if day, slot, ok := m.cell(hit); ok {
		m.cursor = Position{Day: schedule.DayIndex(day), Slot: slot}
		entries, _ := m.ctrl.SchedulesMap().Entries(hit.id)
		index = schedule.At(entries, day, slot)
	}

	item.PointerDown(index, m.gridPoint(hit.cx, hit.cy))
	m.drag = &dragState{item: item, left: hit.left, top: hit.top}
	return m
}

// dragMove feeds motion to the sensor of the gesture in progress.
func (m Model) dragMove(msg tea.MouseMsg) Model {
	d := m.drag
	wasDragging := d.item.Sensor().Dragging()
	if d.item.PointerMove(m.gridPoint(msg.X-d.left, msg.Y-d.top)) && !wasDragging {
		LogDragStart(d.item)
	}
	return m
}

// dragEnd releases the sensor. A drag moves the block; a click on an empty
// cell opens the search dialog for that cell.
func (m Model) dragEnd(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	d := m.drag
	m.drag = nil

	id := d.item.ID
	entries, _ := m.ctrl.SchedulesMap().Entries(id)
	g, err := d.item.PointerUp(m.gridPoint(msg.X-d.left, msg.Y-d.top), entries)
	LogDragEnd(id, g, err)
	if err != nil {
		LogError("drag", err)
		return m, nil
	}

	if g.Dragged {
		if next, _ := m.ctrl.SchedulesMap().Entries(id); g.Index < len(next) {
			e := next[g.Index]
			m.cursor = Position{Day: schedule.DayIndex(e.Day), Slot: e.Start()}
			m.ensureCursorVisible()
		}
		return m.afterChange("move entry")
	}
	if _, ok := m.ctrl.SearchInfo(); ok {
		return m.openSearch("empty cell click")
	}
	return m, nil
}

// deleteAt removes the block under the pointer.
func (m Model) deleteAt(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	hit, ok := m.hitTest(msg.X, msg.Y)
	if !ok {
		return m, nil
	}
	day, slot, ok := m.cell(hit)
	if !ok {
		return m, nil
	}
	m.focusTable(hit.pos)
	m.cursor = Position{Day: schedule.DayIndex(day), Slot: slot}
	return m.withItem("delete entry", func(item *editor.TableItem) error {
		return item.DeleteEntry(day, slot)
	})
}

// handleSearchMouse scrolls and picks results in the search dialog.
func (m Model) handleSearchMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress {
		return m, nil
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.search.selected = max(m.search.selected-1, 0)
		m.clampSearchOffset()
	case tea.MouseButtonWheelDown:
		m.search.selected = min(m.search.selected+1, max(len(m.search.results)-1, 0))
		m.clampSearchOffset()
	case tea.MouseButtonLeft:
		if i, ok := m.resultAt(msg); ok {
			m.search.selected = i
			return m.addSelectedLecture()
		}
	}
	return m, nil
}

// resultAt returns the index of the search result under the pointer.
func (m Model) resultAt(msg tea.MouseMsg) (int, bool) {
	end := min(m.search.offset+searchResultRows, len(m.search.results))
	for i := m.search.offset; i < end; i++ {
		if z := m.zones.Get(zoneResult + strconv.Itoa(i)); z != nil && z.InBounds(msg) {
			return i, true
		}
	}
	return 0, false
}
