package tui

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/timetable/internal/catalog"
	"github.com/javiermolinar/timetable/internal/editor"
	"github.com/javiermolinar/timetable/internal/schedule"
	"github.com/javiermolinar/timetable/internal/tui/commands"
	"github.com/javiermolinar/timetable/internal/tui/input"
	"github.com/javiermolinar/timetable/internal/tui/view"
)

const (
	searchResultRows = 8
	searchWidth      = 60
)

// searchDialog is the lecture search modal. It only holds view state; the
// open target lives in the controller's SearchInfo.
type searchDialog struct {
	input    textinput.Model
	results  []catalog.Result
	selected int
	offset   int
}

func newSearchDialog(styles *Styles) searchDialog {
	ti := textinput.New()
	ti.Placeholder = "Title, id or major:CS grade:2"
	ti.CharLimit = 64
	ti.Width = searchWidth - 4
	ti.Prompt = "/ "
	ti.PlaceholderStyle = styles.ModalPlaceholderStyle
	ti.TextStyle = styles.ModalInputTextStyle
	ti.PromptStyle = styles.ModalMetaStyle
	ti.Cursor.Style = styles.ModalInputCursorStyle
	ti.Cursor.TextStyle = styles.ModalInputTextStyle
	return searchDialog{input: ti}
}

// searchFilter turns the controller's search target into a catalog filter.
func searchFilter(info editor.SearchInfo) catalog.Filter {
	if !info.HasSlot() {
		return catalog.Filter{}
	}
	return catalog.Filter{Day: *info.Day, Slot: *info.Time}
}

// openSearch shows the dialog for whatever target the controller holds.
func (m Model) openSearch(reason string) (Model, tea.Cmd) {
	if _, ok := m.ctrl.SearchInfo(); !ok {
		return m, nil
	}
	m.search.input.SetValue("")
	m.search.selected = 0
	m.search.offset = 0
	m.refreshSearch()
	m.setMode(ModeSearch, reason)
	cmd := m.search.input.Focus()
	return m, cmd
}

// closeSearch hides the dialog and clears the controller's target.
func (m *Model) closeSearch(reason string) {
	m.ctrl.CloseSearch()
	m.search.input.Blur()
	m.setMode(ModeNormal, reason)
}

func (m *Model) refreshSearch() {
	info, _ := m.ctrl.SearchInfo()
	q := input.ParseQuery(m.search.input.Value())
	f := searchFilter(info)
	f.Major, f.Grade = q.Major, q.Grade
	m.search.results = m.catalog.Search(q.Text, f)
	m.search.selected = min(m.search.selected, max(len(m.search.results)-1, 0))
	m.clampSearchOffset()
}

func (m *Model) clampSearchOffset() {
	s := &m.search
	if s.selected < s.offset {
		s.offset = s.selected
	}
	if s.selected >= s.offset+searchResultRows {
		s.offset = s.selected - searchResultRows + 1
	}
	s.offset = max(s.offset, 0)
}

// handleSearchKeys handles keys while the search dialog is open.
func (m Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeSearch("search cancelled")
		return m, nil
	case "enter":
		return m.addSelectedLecture()
	case "up", "ctrl+p":
		if m.search.selected > 0 {
			m.search.selected--
			m.clampSearchOffset()
		}
		return m, nil
	case "tab":
		if completed, ok := input.Autocomplete(m.search.input.Value()); ok {
			m.search.input.SetValue(completed)
			m.search.input.CursorEnd()
			m.search.selected = 0
			m.refreshSearch()
			return m, nil
		}
		if m.search.selected < len(m.search.results)-1 {
			m.search.selected++
			m.clampSearchOffset()
		}
		return m, nil
	case "down", "ctrl+n":
		if m.search.selected < len(m.search.results)-1 {
			m.search.selected++
			m.clampSearchOffset()
		}
		return m, nil
	}

	before := m.search.input.Value()
	var cmd tea.Cmd
	m.search.input, cmd = m.search.input.Update(msg)
	if m.search.input.Value() != before {
		m.search.selected = 0
		m.refreshSearch()
	}
	return m, cmd
}

// addSelectedLecture appends every block of the selected lecture to the
// target table and closes the dialog.
func (m Model) addSelectedLecture() (tea.Model, tea.Cmd) {
	info, ok := m.ctrl.SearchInfo()
	if !ok || len(m.search.results) == 0 {
		return m, nil
	}
	lecture := m.search.results[m.search.selected].Lecture

	entries, err := catalog.ParseSchedule(lecture)
	if err != nil {
		LogError("add lecture", err)
		m.setStatus(fmt.Sprintf("%s has no usable schedule", lecture.ID), true)
		return m, commands.ClearStatusAfter(commands.StatusDuration)
	}
	if err := m.ctrl.AddEntries(info.TableID, entries...); err != nil {
		LogError("add lecture", err)
		if errors.Is(err, schedule.ErrTableNotFound) {
			m.closeSearch("table gone")
		}
		return m, nil
	}

	m.closeSearch("lecture added")
	if day := schedule.DayIndex(entries[0].Day); day >= 0 {
		m.cursor = Position{Day: day, Slot: entries[0].Start()}
		m.ensureCursorVisible()
	}
	m.setStatus("Added "+displayTitle(lecture), false)
	m, cmd := m.afterChange("add lecture")
	return m, tea.Batch(cmd, commands.ClearStatusAfter(commands.StatusDuration))
}

func displayTitle(l schedule.Lecture) string {
	if l.Title != "" {
		return l.Title
	}
	return l.ID
}

// renderSearch renders the dialog content placed by the overlay.
func (m Model) renderSearch() string {
	info, ok := m.ctrl.SearchInfo()
	if !ok {
		return ""
	}
	s := m.styles

	title := "Add lecture"
	if pos := m.ctrl.SchedulesMap().Index(info.TableID); pos >= 0 {
		title = fmt.Sprintf("Add lecture to Schedule %d", pos+1)
	}
	if info.HasSlot() {
		title += fmt.Sprintf(" · %s %s", *info.Day, schedule.SlotLabel(*info.Time))
	}

	var body strings.Builder
	body.WriteString(m.search.input.View())
	body.WriteString("\n\n")

	if len(m.search.results) == 0 {
		body.WriteString(s.ModalMetaStyle.Render(view.FitCell("No lectures match", searchWidth)))
	}
	end := min(m.search.offset+searchResultRows, len(m.search.results))
	for i := m.search.offset; i < end; i++ {
		if i > m.search.offset {
			body.WriteString("\n")
		}
		body.WriteString(m.zones.Mark(zoneResult+strconv.Itoa(i), m.renderResult(m.search.results[i], i == m.search.selected)))
	}

	footer := fmt.Sprintf("%d/%d  [↑↓] Select  [Enter] Add  [Esc] Close",
		min(m.search.selected+1, len(m.search.results)), len(m.search.results))
	if keys := input.MatchingKeys(m.search.input.Value()); len(keys) > 0 {
		footer = fmt.Sprintf("[Tab] %s  %s", keys[0].Name, keys[0].Description)
	}
	return view.RenderModalFrame(title, body.String(), footer, s.ModalStyles())
}

// renderResult renders one result line, highlighting the fuzzy matches that
// fall inside the title.
func (m Model) renderResult(r catalog.Result, active bool) string {
	s := m.styles
	base := s.ModalResultStyle
	if active {
		base = s.ModalResultActiveStyle
	}

	const titleW = 28
	const idW = 12
	titleText := view.FitCell(r.Lecture.Title, titleW)

	// Matched indexes are byte offsets into catalog.SearchText, which starts
	// with the title.
	var b strings.Builder
	match := s.ModalMatchStyle.Inherit(base)
	for i, ch := range titleText {
		if i < len(r.Lecture.Title) && slices.Contains(r.MatchedIndexes, i) {
			b.WriteString(match.Render(string(ch)))
			continue
		}
		b.WriteString(base.Render(string(ch)))
	}
	b.WriteString(base.Render(" " + view.FitCell(r.Lecture.ID, idW)))
	rest := searchWidth - titleW - idW - 1
	b.WriteString(base.Foreground(s.ModalMetaStyle.GetForeground()).Render(view.FitCell(r.Lecture.Schedule, rest)))
	return b.String()
}
