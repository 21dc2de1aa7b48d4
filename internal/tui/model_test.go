package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javiermolinar/timetable/internal/catalog"
	"github.com/javiermolinar/timetable/internal/config"
	"github.com/javiermolinar/timetable/internal/editor"
	"github.com/javiermolinar/timetable/internal/schedule"
	"github.com/javiermolinar/timetable/internal/tui/commands"
)

const (
	testWidth  = 140 // two tables side by side at the default column width
	testHeight = 30  // every slot visible
)

// TestMain renders without colors so views can be compared as plain text.
func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

var algebra = schedule.Entry{
	Day:     "Mon",
	Range:   []int{1, 2},
	Room:    "R101",
	Lecture: schedule.Lecture{ID: "MATH101", Title: "Algebra"},
}

func testCatalog() *catalog.Catalog {
	return catalog.New(
		schedule.Lecture{ID: "CS101", Title: "Programming", Major: "CS", Grade: 1, Schedule: "Mon1~2(R101) Thu3(R102)"},
		schedule.Lecture{ID: "MATH201", Title: "Linear Algebra", Major: "Math", Grade: 2, Schedule: "Wed5~6(R201)"},
		schedule.Lecture{ID: "EE210", Title: "Circuits", Major: "EE", Grade: 2, Schedule: "Fri7(R301)"},
	)
}

func newTestModel(t *testing.T, initial *schedule.Map) Model {
	t.Helper()
	n := 0
	m := New(nil, config.Default(), testCatalog(),
		WithSchedules(initial),
		WithControllerOptions(editor.WithIDGenerator(func() schedule.TableID {
			n++
			return schedule.TableID(fmt.Sprintf("copy-%d", n))
		})),
	)
	t.Cleanup(m.zones.Close)
	return resize(t, *m, testWidth, testHeight)
}

func resize(t *testing.T, m Model, w, h int) Model {
	t.Helper()
	return update(t, m, tea.WindowSizeMsg{Width: w, Height: h})
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	updated, _ := m.Update(msg)
	model, ok := updated.(Model)
	require.True(t, ok, "Update returned %T", updated)
	return model
}

func updateCmd(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	model, ok := updated.(Model)
	require.True(t, ok, "Update returned %T", updated)
	return model, cmd
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		m = update(t, m, key(k))
	}
	return m
}

func tableEntries(t *testing.T, m Model, id schedule.TableID) []schedule.Entry {
	t.Helper()
	got, ok := m.ctrl.SchedulesMap().Entries(id)
	require.True(t, ok, "table %s missing", id)
	return got
}

func oneTable(entries ...schedule.Entry) *schedule.Map {
	return schedule.NewMap().With("schedule-1", entries)
}

type memRepo struct {
	loaded *schedule.Map
	saves  []*schedule.Map
}

func (r *memRepo) LoadSchedules(context.Context) (*schedule.Map, error) {
	return r.loaded, nil
}

func (r *memRepo) SaveSchedules(_ context.Context, m *schedule.Map) error {
	r.saves = append(r.saves, m)
	return nil
}

func (r *memRepo) Close() error { return nil }

func TestNew_Defaults(t *testing.T) {
	m := New(nil, nil, nil)
	defer m.zones.Close()

	assert.Equal(t, 1, m.ctrl.SchedulesMap().Len(), "an empty map gets one table")
	assert.False(t, m.loading)
	assert.Nil(t, m.Init())
	assert.Equal(t, ModeNormal, m.mode)
	assert.Equal(t, Position{Day: 0, Slot: 1}, m.cursor)
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "Normal", ModeNormal.String())
	assert.Equal(t, "Move", ModeMove.String())
	assert.Equal(t, "Search", ModeSearch.String())
	assert.Equal(t, "Unknown(9)", Mode(9).String())
}

func TestLoadReplacesInitialTable(t *testing.T) {
	loaded := oneTable(algebra).With("schedule-2", nil)
	repo := &memRepo{loaded: loaded}
	m := New(repo, config.Default(), testCatalog())
	defer m.zones.Close()
	require.True(t, m.loading)

	cmd := m.Init()
	require.NotNil(t, cmd)
	msg := cmd()
	require.IsType(t, commands.SchedulesLoadedMsg{}, msg)

	model := update(t, *m, msg)
	assert.False(t, model.loading)
	assert.Same(t, loaded, model.ctrl.SchedulesMap())
	assert.Equal(t, model.store.Version(), model.savedVersion, "a load is not a change to save")
}

func TestLoadingBlocksKeys(t *testing.T) {
	repo := &memRepo{loaded: oneTable()}
	m := New(repo, config.Default(), testCatalog())
	defer m.zones.Close()

	model := press(t, *m, "n")
	assert.Equal(t, 1, model.ctrl.SchedulesMap().Len())

	_, cmd := updateCmd(t, model, key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestSaveAfterChange(t *testing.T) {
	repo := &memRepo{loaded: oneTable(algebra)}
	m := New(repo, config.Default(), testCatalog())
	defer m.zones.Close()
	model := update(t, *m, m.Init()())

	model, cmd := updateCmd(t, model, key("d"))
	require.NotNil(t, cmd, "a change starts a save")
	assert.True(t, model.saving)

	// A second change while saving waits for the first save.
	model, second := updateCmd(t, model, key("n"))
	assert.Nil(t, second)

	saved := cmd()
	require.IsType(t, commands.SavedMsg{}, saved)
	require.Len(t, repo.saves, 1)
	assert.Equal(t, 2, repo.saves[0].Len())

	model, next := updateCmd(t, model, saved)
	require.NotNil(t, next, "the newer version is saved next")
	model = update(t, model, next())
	require.Len(t, repo.saves, 2)
	assert.Equal(t, 3, repo.saves[1].Len())
	assert.False(t, model.saving)
	assert.Equal(t, model.store.Version(), model.savedVersion)
}

func TestFlushSavesPendingChange(t *testing.T) {
	repo := &memRepo{loaded: oneTable(algebra)}
	m := New(repo, config.Default(), testCatalog())
	defer m.zones.Close()
	model := update(t, *m, m.Init()())

	require.NoError(t, model.flush())
	assert.Empty(t, repo.saves, "nothing to flush")

	model = press(t, model, "n")
	require.NoError(t, model.flush())
	require.Len(t, repo.saves, 1)
	assert.Equal(t, 2, repo.saves[0].Len())
}

func TestErrMsgShowsStatus(t *testing.T) {
	m := newTestModel(t, oneTable())
	m.saving = true

	model, cmd := updateCmd(t, m, commands.ErrMsg{Err: fmt.Errorf("disk full")})
	assert.NotNil(t, cmd)
	assert.False(t, model.saving)
	assert.True(t, model.statusErr)
	assert.Contains(t, model.statusMsg, "disk full")
}

func TestStatusMessages(t *testing.T) {
	m := newTestModel(t, oneTable())

	model, cmd := updateCmd(t, m, commands.CopiedMsg{Title: "Schedule 1"})
	require.NotNil(t, cmd)
	model = update(t, model, cmd())
	assert.Equal(t, "Copied Schedule 1", model.statusMsg)

	model.statusTime = model.statusTime.Add(-2 * commands.StatusDuration)
	model = update(t, model, commands.ClearStatusMsg{})
	assert.Empty(t, model.statusMsg)
}

func TestDebugLogRecordsEvents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	require.NoError(t, InitDebugLoggerAt(path))
	t.Cleanup(func() {
		CloseDebugLogger()
		debugLog = nil
	})

	m := newTestModel(t, oneTable(algebra))
	press(t, m, "d", "m", "esc")
	LogMouse(tea.MouseMsg{X: 3, Y: 4, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	CloseDebugLogger()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	log := string(data)
	for _, event := range []string{"DEBUG_START", "KEY_PRESS", "STORE_CHANGE", "MODE_CHANGE", "MOUSE", "DEBUG_END"} {
		assert.True(t, strings.Contains(log, `"event":"`+event+`"`), "missing %s in\n%s", event, log)
	}
	assert.Contains(t, log, `"mouse":"left press"`)
	assert.Contains(t, log, `"x":3`)
}
