package ui

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/javiermolinar/timetable/internal/config"
	"github.com/javiermolinar/timetable/internal/db"
	"github.com/javiermolinar/timetable/internal/schedule"
)

var algebra = schedule.Entry{
	Day:   "Mon",
	Range: []int{1, 2},
	Room:  "R101",
	Lecture: schedule.Lecture{
		ID:    "MATH101",
		Title: "Algebra",
	},
}

type testEnv struct {
	t          *testing.T
	repo       *db.SQLite
	cfg        *config.Config
	configPath string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	DisableColor()

	dir := t.TempDir()
	cfg := config.Default()
	cfg.Storage.DBPath = filepath.Join(dir, "timetable.db")
	cfg.Catalog.Path = ""

	repo, err := db.New(cfg.Storage.DBPath)
	if err != nil {
		t.Fatalf("db.New() error = %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	return &testEnv{
		t:          t,
		repo:       repo,
		cfg:        cfg,
		configPath: filepath.Join(dir, "config.toml"),
	}
}

// seed stores two tables: "alpha" holding algebra and an empty "beta".
func (e *testEnv) seed() {
	e.t.Helper()
	m := schedule.NewMap("alpha", "beta").With("alpha", []schedule.Entry{algebra.Clone()})
	if err := e.repo.SaveSchedules(context.Background(), m); err != nil {
		e.t.Fatalf("SaveSchedules() error = %v", err)
	}
}

func (e *testEnv) run(args ...string) (string, error) {
	return e.runWithInput("", args...)
}

func (e *testEnv) runWithInput(input string, args ...string) (string, error) {
	app := NewApp(e.repo, e.cfg)
	app.SetConfigPath(e.configPath)
	var out bytes.Buffer
	app.SetOutput(&out)
	app.SetInput(strings.NewReader(input))
	app.SetArgs(args)
	err := app.Execute()
	return out.String(), err
}

func (e *testEnv) load() *schedule.Map {
	e.t.Helper()
	m, err := e.repo.LoadSchedules(context.Background())
	if err != nil {
		e.t.Fatalf("LoadSchedules() error = %v", err)
	}
	return m
}

func TestVersionCommand(t *testing.T) {
	env := newTestEnv(t)
	out, err := env.run("version")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}
	if !strings.Contains(out, "timetable dev") {
		t.Errorf("version output = %q", out)
	}
}

func TestConfigCommands(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run("config", "path")
	if err != nil {
		t.Fatalf("config path error = %v", err)
	}
	if strings.TrimSpace(out) != env.configPath {
		t.Errorf("config path = %q, want %q", out, env.configPath)
	}

	if _, err := env.run("config", "init"); err != nil {
		t.Fatalf("config init error = %v", err)
	}
	if _, err := os.Stat(env.configPath); err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if _, err := env.run("config", "init"); err == nil {
		t.Error("second config init should fail without --force")
	}
	if _, err := env.run("config", "init", "--force"); err != nil {
		t.Errorf("config init --force error = %v", err)
	}

	out, err = env.run("config")
	if err != nil {
		t.Fatalf("config error = %v", err)
	}
	for _, want := range []string{"[grid]", "theme               = mocha", "(built-in only)"} {
		if !strings.Contains(out, want) {
			t.Errorf("config output missing %q:\n%s", want, out)
		}
	}
}

func TestConfigEdit(t *testing.T) {
	env := newTestEnv(t)

	// theme, column width, then keep the rest.
	out, err := env.runWithInput("sepia\nlatte\n12\n\n\n\n", "config", "edit")
	if err != nil {
		t.Fatalf("config edit error = %v", err)
	}
	if !strings.Contains(out, `Invalid theme "sepia"`) {
		t.Errorf("expected theme rejection, got:\n%s", out)
	}
	if !strings.Contains(out, "Configuration saved!") {
		t.Errorf("expected confirmation, got:\n%s", out)
	}

	cfg, err := config.LoadFrom(env.configPath)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.UI.Theme != "latte" {
		t.Errorf("Theme = %q, want latte", cfg.UI.Theme)
	}
	if cfg.UI.ColumnWidth != 12 {
		t.Errorf("ColumnWidth = %d, want 12", cfg.UI.ColumnWidth)
	}
	if cfg.Grid.ActivationDistance != 8 {
		t.Errorf("ActivationDistance = %d, want 8", cfg.Grid.ActivationDistance)
	}
}

func TestConfigEdit_RejectsInvalidValues(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.runWithInput("\n2\n\n\n\n", "config", "edit")
	if err == nil || !strings.Contains(err.Error(), "column_width") {
		t.Fatalf("config edit error = %v, want column_width error", err)
	}
	if _, statErr := os.Stat(env.configPath); !errors.Is(statErr, os.ErrNotExist) {
		t.Errorf("invalid config was written")
	}
}

func TestListCommand(t *testing.T) {
	t.Run("empty database", func(t *testing.T) {
		env := newTestEnv(t)
		out, err := env.run("list")
		if err != nil {
			t.Fatalf("list error = %v", err)
		}
		if !strings.Contains(out, "No timetables saved yet.") {
			t.Errorf("list output = %q", out)
		}
	})

	t.Run("all tables", func(t *testing.T) {
		env := newTestEnv(t)
		env.seed()
		out, err := env.run("list")
		if err != nil {
			t.Fatalf("list error = %v", err)
		}
		for _, want := range []string{
			"=== Schedule 1 === alpha",
			"Mon 09:00~10:00",
			"Algebra",
			"R101",
			"MATH101",
			"=== Schedule 2 === beta",
			"(empty)",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("list output missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("single table", func(t *testing.T) {
		env := newTestEnv(t)
		env.seed()
		out, err := env.run("list", "--table=beta")
		if err != nil {
			t.Fatalf("list error = %v", err)
		}
		if !strings.Contains(out, "Schedule 2") || strings.Contains(out, "Algebra") {
			t.Errorf("list --table=beta output = %q", out)
		}
	})

	t.Run("unknown table", func(t *testing.T) {
		env := newTestEnv(t)
		env.seed()
		_, err := env.run("list", "--table=9")
		if !errors.Is(err, schedule.ErrTableNotFound) {
			t.Errorf("list --table=9 error = %v, want ErrTableNotFound", err)
		}
	})
}

func TestSearchCommand(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    []string
		notWant []string
		wantErr error
	}{
		{
			name: "fuzzy title",
			args: []string{"search", "linear"},
			want: []string{"MA102-01", "Linear Algebra"},
		},
		{
			name:    "cell filter",
			args:    []string{"search", "--day=Sat", "--slot=2"},
			want:    []string{"HI101-01"},
			notWant: []string{"CS101-01"},
		},
		{
			name:    "major and grade terms",
			args:    []string{"search", "major:Mathematics", "grade:1"},
			want:    []string{"MA101-01", "MA102-01"},
			notWant: []string{"CS101-01", "MA301-01"},
		},
		{
			name: "no match",
			args: []string{"search", "zzqqxx"},
			want: []string{"No lectures match."},
		},
		{
			name: "limit",
			args: []string{"search", "--limit=2"},
			want: []string{"more"},
		},
		{
			name:    "unknown day",
			args:    []string{"search", "--day=Sun", "--slot=1"},
			wantErr: schedule.ErrUnknownDay,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			out, err := env.run(tt.args...)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("error = %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
			for _, notWant := range tt.notWant {
				if strings.Contains(out, notWant) {
					t.Errorf("output should not contain %q:\n%s", notWant, out)
				}
			}
		})
	}
}

func TestSearchCommand_DayNeedsSlot(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.run("search", "--day=Mon"); err == nil {
		t.Error("--day without --slot should fail")
	}
}
