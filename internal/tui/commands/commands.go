// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/timetable/internal/schedule"
	"github.com/javiermolinar/timetable/internal/store"
)

// StatusDuration is how long a status message stays on screen.
const StatusDuration = 3 * time.Second

// SchedulesLoadedMsg is sent when the timetables are read from storage.
type SchedulesLoadedMsg struct {
	Map *schedule.Map
}

// SavedMsg is sent after a snapshot has been written.
type SavedMsg struct {
	Version uint64
}

// CopiedMsg is sent after a table has been copied to the clipboard.
type CopiedMsg struct {
	Title string
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// LoadSchedules reads every timetable from the repository.
func LoadSchedules(repo store.Repository) tea.Cmd {
	return func() tea.Msg {
		if repo == nil {
			return ErrMsg{Err: errors.New("no repository")}
		}
		m, err := repo.LoadSchedules(context.Background())
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("loading timetables: %w", err)}
		}
		return SchedulesLoadedMsg{Map: m}
	}
}

// SaveSchedules writes a snapshot. The map is never mutated after it is
// published, so the command can run off the event loop.
func SaveSchedules(repo store.Repository, m *schedule.Map, version uint64) tea.Cmd {
	return func() tea.Msg {
		if repo == nil {
			return ErrMsg{Err: errors.New("no repository")}
		}
		if err := repo.SaveSchedules(context.Background(), m); err != nil {
			return ErrMsg{Err: fmt.Errorf("saving timetables: %w", err)}
		}
		return SavedMsg{Version: version}
	}
}

// CopyToClipboard writes text to the system clipboard.
func CopyToClipboard(title, text string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return ErrMsg{Err: fmt.Errorf("copying %s: %w", title, err)}
		}
		return CopiedMsg{Title: title}
	}
}

// Status shows a temporary message in the footer.
func Status(msg string) tea.Cmd {
	return func() tea.Msg {
		return StatusMsgCmd{Msg: msg}
	}
}

// ClearStatusAfter clears the status line once d has passed.
func ClearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
