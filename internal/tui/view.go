package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/timetable/internal/editor"
	"github.com/javiermolinar/timetable/internal/schedule"
	"github.com/javiermolinar/timetable/internal/tui/view"
)

const (
	helpNormal = "a add · enter add here · m move · x delete · d duplicate · X remove · n new · y copy · tab next · q quit"
	helpMove   = "hjkl move · enter drop · esc cancel"
	helpSearch = "type to filter · ↑↓ select · enter add · esc close"
)

// View renders the TUI.
func (m Model) View() string {
	showModal := m.mode == ModeSearch
	modal := ""
	if showModal {
		modal = m.renderSearch()
	}

	out := view.Render(view.ViewState{
		Width:        m.width,
		Height:       m.height,
		BaseContent:  m.renderAppContent(),
		ModalContent: modal,
		ShowModal:    showModal,
		Overlay:      m.overlay,
	})
	return m.zones.Scan(out)
}

func (m Model) renderAppContent() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	bodyH := max(m.height-footerRows, 0)

	var body string
	if m.loading {
		body = lipgloss.Place(m.width, bodyH, lipgloss.Center, lipgloss.Center,
			m.styles.HelpStyle.Render("Loading timetables..."),
			lipgloss.WithWhitespaceBackground(m.styles.colorBg))
	} else {
		body = m.renderTables()
	}

	content := view.PadLinesWithBackground(body, m.width, bodyH, m.styles.colorBg) + "\n" +
		view.RenderFooter(m.footerViewState())
	return m.styles.AppStyle.Render(content)
}

// renderTables renders the tables that fit on screen, side by side.
func (m Model) renderTables() string {
	items := m.ctrl.Items()
	end := min(m.first+m.tablesPerPage(), len(items))

	gap := lipgloss.NewStyle().Background(m.styles.colorBg).Render(strings.Repeat(" ", tableGap))
	var parts []string
	for pos := m.first; pos < end; pos++ {
		if pos > m.first {
			parts = append(parts, gap)
		}
		parts = append(parts, m.renderTable(items[pos]))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// renderTable renders one timetable with its title bar.
func (m Model) renderTable(item *editor.TableItem) string {
	s := m.styles
	focused := item.Index == m.focus
	entries, _ := m.ctrl.SchedulesMap().Entries(item.ID)

	ghostIndex, ghost, hasGhost := m.ghost(item, entries)
	cursorDay, cursorSlot := m.cursorCell()
	showCursor := focused && m.mode == ModeNormal && m.drag == nil

	border := s.BorderStyle
	if focused {
		border = s.BorderFocused
	}

	slots := schedule.SlotRange(m.scroll+1, m.scroll+m.visibleSlots())

	return view.RenderGrid(view.GridViewState{
		Title:     m.renderTitle(item, focused),
		TimeWidth: timeColW,
		ColWidth:  m.colWidth,
		Days:      schedule.DayLabels,
		Slots:     slots,
		TimeLabel: schedule.SlotStart,
		Cell: func(day string, slot int) view.Cell {
			cursor := showCursor && day == cursorDay && slot == cursorSlot

			if hasGhost && ghost.Covers(day, slot) {
				return view.Cell{Text: blockText(ghost, slot), Style: s.GhostStyle}
			}

			i := schedule.At(entries, day, slot)
			if i < 0 {
				if cursor {
					return view.Cell{Style: s.CursorStyle}
				}
				return view.Cell{Style: s.EmptyCellStyle}
			}

			e := entries[i]
			style := s.Block(e.Lecture.ID)
			if hasGhost && i == ghostIndex {
				style = s.DimmedBlock(e.Lecture.ID)
			}
			if cursor {
				style = style.Reverse(true)
			}
			return view.Cell{Text: blockText(e, slot), Style: style}
		},
		HeaderStyle: s.DayHeaderStyle,
		TimeStyle:   s.TimeColumnStyle,
		BorderStyle: border,
		Bg:          s.colorBg,
	})
}

// renderTitle renders the table heading and its clickable buttons.
func (m Model) renderTitle(item *editor.TableItem, focused bool) string {
	s := m.styles
	title := s.TitleStyle
	if focused {
		title = s.TitleFocusedStyle
	}
	space := lipgloss.NewStyle().Background(s.colorBg).Render(" ")

	del := s.ButtonDangerStyle
	if item.RemoveDisabled {
		del = s.ButtonDisabled
	}

	id := string(item.ID)
	return title.Render(item.Title()) + space +
		m.zones.Mark(zoneAdd+id, s.ButtonStyle.Render("[+]")) + space +
		m.zones.Mark(zoneDup+id, s.ButtonStyle.Render("[dup]")) + space +
		m.zones.Mark(zoneDel+id, del.Render("[del]"))
}

// ghost returns the drop preview for a table, from either a mouse drag or
// a keyboard move.
func (m Model) ghost(item *editor.TableItem, entries []schedule.Entry) (int, schedule.Entry, bool) {
	if m.drag != nil && m.drag.item.ID == item.ID {
		return m.drag.item.Preview(entries)
	}
	if m.mode == ModeMove && m.move.table == item.ID {
		return m.movePreview()
	}
	return -1, schedule.Entry{}, false
}

// blockText is the text a block shows in one of its slots: the title in the
// first slot and the room in the second.
func blockText(e schedule.Entry, slot int) string {
	switch slot - e.Start() {
	case 0:
		return e.Title()
	case 1:
		return e.Room
	}
	return ""
}

func (m Model) footerViewState() view.FooterViewState {
	s := m.styles
	state := view.FooterViewState{
		Width:       m.width,
		StatusText:  m.statusText(),
		ModeStyle:   s.ModeStyle,
		StatusStyle: s.StatusStyle,
		HelpStyle:   s.HelpStyle,
		Bg:          s.colorBg,
	}
	if m.statusMsg != "" && m.statusErr {
		state.StatusStyle = s.ErrorStyle
	}

	switch m.mode {
	case ModeMove:
		state.Mode = "MOVE"
		state.HelpText = helpMove
	case ModeSearch:
		state.Mode = "SEARCH"
		state.HelpText = helpSearch
	default:
		state.HelpText = helpNormal
	}
	return state
}

// statusText is the temporary message, or the cursor position when there is none.
func (m Model) statusText() string {
	if m.statusMsg != "" {
		return m.statusMsg
	}
	n := m.ctrl.SchedulesMap().Len()
	day, slot := m.cursorCell()
	text := fmt.Sprintf("Schedule %d/%d · %s %s", m.focus+1, n, day, schedule.SlotLabel(slot))
	if per := m.tablesPerPage(); n > per {
		text += fmt.Sprintf(" · showing %d-%d", m.first+1, min(m.first+per, n))
	}
	if m.saving {
		text += " · saving…"
	}
	return text
}
