package editor

import (
	"math"

	"github.com/javiermolinar/timetable/internal/schedule"
)

// DefaultActivationDistance is how far the pointer must travel before a
// press becomes a drag.
const DefaultActivationDistance = 8

// SensorState is the phase of a pointer gesture.
type SensorState int

const (
	// SensorIdle means no button is held.
	SensorIdle SensorState = iota
	// SensorPressed means a button is held within the activation distance.
	SensorPressed
	// SensorDragging means the pointer moved past the activation distance.
	SensorDragging
)

// PointerSensor tells clicks from drags. A press turns into a drag once the
// pointer has moved strictly farther than Distance from where it started.
type PointerSensor struct {
	Distance int

	state  SensorState
	active int
	origin schedule.Point
	last   schedule.Point
}

// NewPointerSensor creates a sensor with the given activation distance.
func NewPointerSensor(distance int) *PointerSensor {
	if distance < 0 {
		distance = 0
	}
	return &PointerSensor{Distance: distance, active: -1}
}

// Press starts a gesture on the entry at index (or -1 for an empty cell).
func (s *PointerSensor) Press(index int, at schedule.Point) {
	s.state = SensorPressed
	s.active = index
	s.origin = at
	s.last = at
}

// Move records pointer motion and reports whether a drag is in progress.
// Presses on empty cells never become drags.
func (s *PointerSensor) Move(at schedule.Point) bool {
	if s.state == SensorIdle {
		return false
	}
	s.last = at
	if s.state == SensorPressed && s.active >= 0 && s.exceeded() {
		s.state = SensorDragging
	}
	return s.state == SensorDragging
}

// Gesture is a finished press.
type Gesture struct {
	Index   int            // pressed entry, -1 for an empty cell
	Origin  schedule.Point // where the press started
	Delta   schedule.Point // raw transform
	Dragged bool           // false means the gesture was a click
}

// Release ends the gesture. ok is false when no press was in progress.
func (s *PointerSensor) Release(at schedule.Point) (g Gesture, ok bool) {
	if s.state == SensorIdle {
		return Gesture{Index: -1}, false
	}
	s.Move(at)
	g = Gesture{
		Index:   s.active,
		Origin:  s.origin,
		Delta:   s.Delta(),
		Dragged: s.state == SensorDragging,
	}
	s.Cancel()
	return g, true
}

// Cancel abandons the gesture.
func (s *PointerSensor) Cancel() {
	s.state = SensorIdle
	s.active = -1
	s.origin = schedule.Point{}
	s.last = schedule.Point{}
}

// State returns the current phase.
func (s *PointerSensor) State() SensorState {
	return s.state
}

// Dragging reports whether a drag is active.
func (s *PointerSensor) Dragging() bool {
	return s.state == SensorDragging
}

// Active returns the pressed entry index, or -1.
func (s *PointerSensor) Active() int {
	if s.state == SensorIdle {
		return -1
	}
	return s.active
}

// Origin returns where the gesture started.
func (s *PointerSensor) Origin() schedule.Point {
	return s.origin
}

// Delta returns the raw transform since the press.
func (s *PointerSensor) Delta() schedule.Point {
	return schedule.Point{X: s.last.X - s.origin.X, Y: s.last.Y - s.origin.Y}
}

func (s *PointerSensor) exceeded() bool {
	d := s.Delta()
	return math.Hypot(float64(d.X), float64(d.Y)) > float64(s.Distance)
}
