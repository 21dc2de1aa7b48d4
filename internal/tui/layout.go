package tui

import (
	"github.com/javiermolinar/timetable/internal/schedule"
	"github.com/javiermolinar/timetable/internal/tui/view"
)

// Screen layout of one table, top to bottom: a title line, the top border,
// the day header, one line per visible slot, the bottom border. Tables sit
// side by side, separated by tableGap columns, above a two line footer.
const (
	timeColW    = 6
	tableGap    = 1
	titleRows   = 1
	headerTop   = titleRows + 1 // screen row of the day header
	footerRows  = 2
	chromeRows  = titleRows + 3 + footerRows
	minColWidth = 4
)

// tableWidth returns the outer width of one table.
func (m Model) tableWidth() int {
	return view.GridWidth(timeColW, m.colWidth, len(schedule.DayLabels))
}

// visibleSlots returns how many slot rows fit on screen.
func (m Model) visibleSlots() int {
	return min(max(m.height-chromeRows, 1), schedule.SlotCount)
}

// tablesPerPage returns how many tables fit side by side.
func (m Model) tablesPerPage() int {
	return max((m.width+tableGap)/(m.tableWidth()+tableGap), 1)
}

// tableLeft returns the screen column of the k-th table on screen.
func (m Model) tableLeft(k int) int {
	return k * (m.tableWidth() + tableGap)
}

// gridHit is a screen cell resolved against a table on screen.
type gridHit struct {
	id   schedule.TableID
	pos  int // index of the table in display order
	left int // screen column of the grid's header corner
	top  int // screen row of the grid's header corner
	cx   int // column inside the grid; 0 is the first time column cell
	cy   int // row inside the grid; 0 is the day header
}

// hitTest resolves a screen cell to the grid area of a table.
func (m Model) hitTest(x, y int) (gridHit, bool) {
	ids := m.ctrl.SchedulesMap().IDs()
	innerW := timeColW + len(schedule.DayLabels)*m.colWidth
	for k := 0; k < m.tablesPerPage(); k++ {
		pos := m.first + k
		if pos >= len(ids) {
			break
		}
		left := m.tableLeft(k) + 1
		cx, cy := x-left, y-headerTop
		if cx < 0 || cx >= innerW || cy < 0 || cy > m.visibleSlots() {
			continue
		}
		return gridHit{id: ids[pos], pos: pos, left: left, top: headerTop, cx: cx, cy: cy}, true
	}
	return gridHit{}, false
}

// cell returns the day and slot under a grid hit.
func (m Model) cell(h gridHit) (day string, slot int, ok bool) {
	if h.cx < timeColW || h.cy < 1 {
		return "", 0, false
	}
	col := (h.cx - timeColW) / m.colWidth
	slot = m.scroll + h.cy
	if col >= len(schedule.DayLabels) || slot > schedule.SlotCount {
		return "", 0, false
	}
	return schedule.DayLabels[col], slot, true
}

// gridPoint converts a cell relative to a grid's header corner into grid
// units. Day columns scale to CellWidth and slot rows to CellHeight, so a
// one cell move is exactly one snapped step. Rows land on slot centers.
func (m Model) gridPoint(cx, cy int) schedule.Point {
	g := m.ctrl.Geometry()

	var p schedule.Point
	if cx < timeColW {
		p.X = cx * g.HeaderWidth / timeColW
	} else {
		p.X = g.HeaderWidth + (cx-timeColW)*g.CellWidth/m.colWidth
	}
	if cy >= 1 {
		p.Y = g.HeaderHeight + (m.scroll+cy-1)*g.CellHeight + g.CellHeight/2
	} else {
		p.Y = g.HeaderHeight/2 + cy*g.CellHeight
	}
	return p
}

// ensureFocusVisible scrolls the table strip so the focused table is on screen.
func (m *Model) ensureFocusVisible() {
	per := m.tablesPerPage()
	if m.focus < m.first {
		m.first = m.focus
	}
	if m.focus >= m.first+per {
		m.first = m.focus - per + 1
	}
	m.first = max(min(m.first, m.ctrl.SchedulesMap().Len()-per), 0)
}

// ensureCursorVisible scrolls vertically so the cursor slot is on screen.
func (m *Model) ensureCursorVisible() {
	visible := m.visibleSlots()
	if m.cursor.Slot-1 < m.scroll {
		m.scroll = m.cursor.Slot - 1
	}
	if m.cursor.Slot > m.scroll+visible {
		m.scroll = m.cursor.Slot - visible
	}
	m.clampScroll()
}

func (m *Model) clampScroll() {
	m.scroll = min(max(m.scroll, 0), schedule.SlotCount-m.visibleSlots())
}

// clampFocus keeps focus and cursor valid after tables or the terminal changed.
func (m *Model) clampFocus() {
	n := m.ctrl.SchedulesMap().Len()
	m.focus = min(max(m.focus, 0), max(n-1, 0))
	m.cursor.Day = min(max(m.cursor.Day, 0), len(schedule.DayLabels)-1)
	m.cursor.Slot = min(max(m.cursor.Slot, 1), schedule.SlotCount)
	m.ensureFocusVisible()
	m.clampScroll()
}

// focusedID returns the id of the focused table.
func (m Model) focusedID() schedule.TableID {
	ids := m.ctrl.SchedulesMap().IDs()
	if m.focus < 0 || m.focus >= len(ids) {
		return ""
	}
	return ids[m.focus]
}

// calculateColWidth narrows day columns when one table at the configured
// width does not fit the terminal.
func (m Model) calculateColWidth() int {
	base := max(m.config.UI.ColumnWidth, minColWidth)
	if m.width <= 0 {
		return base
	}
	days := len(schedule.DayLabels)
	avail := (m.width - 2 - timeColW) / days
	if avail < base {
		return max(avail, minColWidth)
	}
	return base
}
