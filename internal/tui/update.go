package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/timetable/internal/tui/commands"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.colWidth = m.calculateColWidth()
		m.clampFocus()
		m.ensureCursorVisible()
		return m, nil

	case commands.SchedulesLoadedMsg:
		if msg.Map.Len() > 0 {
			m.store.Set(msg.Map)
		}
		m.savedVersion = m.store.Version()
		m.loading = false
		m.clampFocus()
		LogStoreChange("load", m.store.Version(), m.store.SchedulesMap())
		return m, nil

	case commands.SavedMsg:
		m.saving = false
		m.savedVersion = msg.Version
		cmd := m.maybeSave()
		return m, cmd

	case commands.CopiedMsg:
		return m, commands.Status(fmt.Sprintf("Copied %s", msg.Title))

	case commands.ErrMsg:
		LogError("command", msg.Err)
		m.saving = false
		m.loading = false
		m.setStatus(fmt.Sprintf("Error: %v", msg.Err), true)
		return m, commands.ClearStatusAfter(commands.StatusDuration)

	case commands.StatusMsgCmd:
		m.setStatus(msg.Msg, false)
		return m, commands.ClearStatusAfter(commands.StatusDuration)

	case commands.ClearStatusMsg:
		if !time.Now().Before(m.statusTime) {
			m.statusMsg = ""
			m.statusErr = false
		}
		return m, nil
	}

	// Cursor blink and other textinput messages while the dialog is open
	if m.mode == ModeSearch {
		var cmd tea.Cmd
		m.search.input, cmd = m.search.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

// setMode switches the interaction mode and keeps the overlay in sync.
func (m *Model) setMode(mode Mode, reason string) {
	if m.mode == mode {
		return
	}
	LogModeChange(m.mode, mode, reason)
	m.mode = mode
	if mode == ModeSearch {
		m.overlay.Show()
	} else {
		m.overlay.Hide()
	}
}

// setStatus shows a message in the footer until the status duration passes.
func (m *Model) setStatus(msg string, isErr bool) {
	m.statusMsg = msg
	m.statusErr = isErr
	m.statusTime = time.Now().Add(commands.StatusDuration)
}

// afterChange runs after every successful mutation of the store.
func (m Model) afterChange(action string) (Model, tea.Cmd) {
	LogStoreChange(action, m.store.Version(), m.store.SchedulesMap())
	m.clampFocus()
	cmd := m.maybeSave()
	return m, cmd
}

// maybeSave starts a save when the store moved past the last saved version.
// Only one save runs at a time; SavedMsg triggers the next one.
func (m *Model) maybeSave() tea.Cmd {
	if m.repo == nil || m.saving || m.loading {
		return nil
	}
	version := m.store.Version()
	if version == m.savedVersion {
		return nil
	}
	m.saving = true
	return commands.SaveSchedules(m.repo, m.store.SchedulesMap(), version)
}
