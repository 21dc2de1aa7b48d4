package tui

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/timetable/internal/editor"
	"github.com/javiermolinar/timetable/internal/schedule"
)

// DebugLogger logs TUI state, keystrokes, and events to a file.
type DebugLogger struct {
	mu      sync.Mutex
	file    *os.File
	enabled bool
	seq     int
}

// Global debug logger instance
var debugLog *DebugLogger

// DebugLogPath is the fixed path for debug logs
const DebugLogPath = "timetable-debug.log"

// InitDebugLogger initializes the debug logger if debug mode is enabled.
func InitDebugLogger(enabled bool) error {
	if !enabled {
		debugLog = &DebugLogger{enabled: false}
		return nil
	}
	return InitDebugLoggerAt(DebugLogPath)
}

// InitDebugLoggerAt starts logging to path, truncating it.
func InitDebugLoggerAt(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating debug log: %w", err)
	}

	debugLog = &DebugLogger{
		file:    f,
		enabled: true,
	}

	debugLog.log("DEBUG_START", map[string]any{
		"log_file": path,
		"time":     time.Now().Format(time.RFC3339),
	})

	return nil
}

// CloseDebugLogger closes the debug log file.
func CloseDebugLogger() {
	if debugLog != nil && debugLog.file != nil {
		debugLog.log("DEBUG_END", map[string]any{
			"time": time.Now().Format(time.RFC3339),
		})
		_ = debugLog.file.Close()
		debugLog.file = nil
	}
}

func debugEnabled() bool {
	return debugLog != nil && debugLog.enabled
}

// log writes a structured log entry.
func (d *DebugLogger) log(event string, data map[string]any) {
	if d == nil || !d.enabled || d.file == nil {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	entry := map[string]any{
		"seq":   d.seq,
		"ts":    time.Now().Format("15:04:05.000"),
		"event": event,
	}
	for k, v := range data {
		entry[k] = v
	}

	b, _ := json.Marshal(entry)
	_, _ = fmt.Fprintf(d.file, "%s\n", b)
}

// LogKeyPress logs a key press event.
func LogKeyPress(msg tea.KeyMsg) {
	if !debugEnabled() {
		return
	}
	debugLog.log("KEY_PRESS", map[string]any{
		"key": msg.String(),
	})
}

// LogMouse logs a mouse event.
func LogMouse(msg tea.MouseMsg) {
	if !debugEnabled() {
		return
	}
	debugLog.log("MOUSE", map[string]any{
		"mouse":  msg.String(),
		"x":      msg.X,
		"y":      msg.Y,
		"button": int(msg.Button),
		"action": int(msg.Action),
	})
}

// LogDragStart logs the moment a press turns into a drag.
func LogDragStart(item *editor.TableItem) {
	if !debugEnabled() || item == nil {
		return
	}
	s := item.Sensor()
	debugLog.log("DRAG_START", map[string]any{
		"table":  string(item.ID),
		"index":  s.Active(),
		"origin": pointData(s.Origin()),
	})
}

// LogDragEnd logs a finished gesture.
func LogDragEnd(id schedule.TableID, g editor.Gesture, err error) {
	if !debugEnabled() {
		return
	}
	data := map[string]any{
		"table":   string(id),
		"index":   g.Index,
		"dragged": g.Dragged,
		"delta":   pointData(g.Delta),
	}
	if err != nil {
		data["error"] = err.Error()
	}
	debugLog.log("DRAG_END", data)
}

// LogModeChange logs a mode change.
func LogModeChange(from, to Mode, reason string) {
	if !debugEnabled() {
		return
	}
	debugLog.log("MODE_CHANGE", map[string]any{
		"from":   from.String(),
		"to":     to.String(),
		"reason": reason,
	})
}

// LogStoreChange logs a new timetable snapshot.
func LogStoreChange(action string, version uint64, m *schedule.Map) {
	if !debugEnabled() {
		return
	}
	data := map[string]any{
		"action":  action,
		"version": version,
	}
	if m != nil {
		tables := make([]map[string]any, 0, m.Len())
		for _, id := range m.IDs() {
			entries, _ := m.Entries(id)
			tables = append(tables, map[string]any{
				"id":      string(id),
				"entries": len(entries),
			})
		}
		data["tables"] = tables
	}
	debugLog.log("STORE_CHANGE", data)
}

// LogError logs an error. Rejected edits end up here instead of the screen.
func LogError(context string, err error) {
	if !debugEnabled() || err == nil {
		return
	}
	debugLog.log("ERROR", map[string]any{
		"context": context,
		"error":   err.Error(),
	})
}

func pointData(p schedule.Point) map[string]int {
	return map[string]int{"x": p.X, "y": p.Y}
}
