package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/javiermolinar/timetable/internal/catalog"
	"github.com/javiermolinar/timetable/internal/config"
	"github.com/javiermolinar/timetable/internal/editor"
	"github.com/javiermolinar/timetable/internal/schedule"
	"github.com/javiermolinar/timetable/internal/store"
	"github.com/javiermolinar/timetable/internal/tui/commands"
	"github.com/javiermolinar/timetable/internal/tui/theme"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeMove        // Moving a block with the keyboard
	ModeSearch      // Search dialog open
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "Normal"
	case ModeMove:
		return "Move"
	case ModeSearch:
		return "Search"
	default:
		return fmt.Sprintf("Unknown(%d)", int(m))
	}
}

// Position represents a cursor position in the focused table.
type Position struct {
	Day  int // index into schedule.DayLabels
	Slot int // 1-based slot
}

// moveState tracks a keyboard move. Delta is in grid units, like a drag.
type moveState struct {
	table schedule.TableID
	index int
	delta schedule.Point
}

// dragState tracks a mouse gesture. left and top are the screen cell of the
// grid's header corner when the press happened.
type dragState struct {
	item *editor.TableItem
	left int
	top  int
}

// Model is the main TUI model.
type Model struct {
	// Dependencies
	repo    store.Repository
	config  *config.Config
	catalog *catalog.Catalog
	store   *store.Store
	ctrl    *editor.Controller

	// Theme and styles
	theme  *theme.Theme
	styles *Styles
	zones  *zone.Manager

	// Persistence
	savedVersion uint64
	saving       bool
	loading      bool

	// State
	focus  int      // index of the focused table
	first  int      // first table on screen
	cursor Position // cursor inside the focused table
	scroll int      // slots scrolled off the top
	mode   Mode

	move   moveState
	drag   *dragState
	search searchDialog

	overlay OverlayModel

	// Terminal dimensions and layout
	width    int
	height   int
	colWidth int

	// Messages
	statusMsg  string
	statusErr  bool
	statusTime time.Time
}

// ModelOption configures optional model behavior.
type ModelOption func(*modelOptions)

type modelOptions struct {
	initial *schedule.Map
	ctrl    []editor.Option
}

// WithSchedules seeds the model before anything is loaded.
func WithSchedules(m *schedule.Map) ModelOption {
	return func(o *modelOptions) {
		o.initial = m
	}
}

// WithControllerOptions passes options through to the editor controller.
func WithControllerOptions(opts ...editor.Option) ModelOption {
	return func(o *modelOptions) {
		o.ctrl = append(o.ctrl, opts...)
	}
}

// New creates a new TUI model. repo may be nil, in which case nothing is
// loaded or saved.
func New(repo store.Repository, cfg *config.Config, cat *catalog.Catalog, opts ...ModelOption) *Model {
	if cfg == nil {
		cfg = config.Default()
	}
	if cat == nil {
		cat = catalog.New()
	}

	var o modelOptions
	for _, opt := range opts {
		opt(&o)
	}

	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		t, _ = theme.Load("mocha")
	}
	styles := NewStyles(t)

	st := store.New(o.initial)
	ctrlOpts := append([]editor.Option{
		editor.WithGeometry(cfg.Grid.Geometry()),
		editor.WithActivationDistance(cfg.Grid.ActivationDistance),
	}, o.ctrl...)

	overlay := NewOverlayModel()
	overlay.SetBackground(styles.ModalBackdropColor)

	m := &Model{
		repo:         repo,
		config:       cfg,
		catalog:      cat,
		store:        st,
		ctrl:         editor.NewController(st, ctrlOpts...),
		theme:        t,
		styles:       styles,
		zones:        zone.New(),
		savedVersion: st.Version(),
		loading:      repo != nil,
		cursor:       Position{Day: 0, Slot: 1},
		mode:         ModeNormal,
		search:       newSearchDialog(styles),
		overlay:      overlay,
		colWidth:     cfg.UI.ColumnWidth,
	}
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	if m.repo == nil {
		return nil
	}
	return commands.LoadSchedules(m.repo)
}

// Controller exposes the editor controller driving this model.
func (m Model) Controller() *editor.Controller {
	return m.ctrl
}

// Run starts the TUI.
func Run(repo store.Repository, cfg *config.Config) error {
	return RunWithDebug(repo, cfg, false)
}

// RunWithDebug starts the TUI with optional debug logging. When repo is nil
// the database from cfg is opened and closed on exit.
func RunWithDebug(repo store.Repository, cfg *config.Config, debug bool) error {
	if err := InitDebugLogger(debug); err != nil {
		return err
	}
	defer CloseDebugLogger()

	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	if repo == nil {
		opened, err := OpenRepository(cfg.Storage.DBPath)
		if err != nil {
			return err
		}
		defer func() { _ = opened.Close() }()
		repo = opened
	}

	model := New(repo, cfg, cat)
	defer model.zones.Close()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		if flushErr := fm.flush(); flushErr != nil && err == nil {
			err = flushErr
		}
	}
	return err
}

// flush writes any change the event loop did not get to save.
func (m Model) flush() error {
	if m.repo == nil || m.store.Version() == m.savedVersion {
		return nil
	}
	if err := m.repo.SaveSchedules(context.Background(), m.store.SchedulesMap()); err != nil {
		return fmt.Errorf("saving timetables: %w", err)
	}
	return nil
}
