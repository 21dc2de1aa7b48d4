package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnap_RoundsToCells(t *testing.T) {
	g := DefaultGeometry
	origin := Point{}
	container := g.ContainerRect(origin)
	dragged := g.EntryRect(origin, Entry{Day: "Wed", Range: []int{5, 6}})

	tests := []struct {
		name string
		in   Point
		want Point
	}{
		{name: "zero", in: Point{0, 0}, want: Point{0, 0}},
		{name: "below_half", in: Point{39, 14}, want: Point{0, 0}},
		{name: "half_rounds_up", in: Point{40, 15}, want: Point{80, 30}},
		{name: "negative_half_rounds_up", in: Point{-40, -15}, want: Point{0, 0}},
		{name: "negative", in: Point{-41, -16}, want: Point{-80, -30}},
		{name: "two_cells", in: Point{170, 55}, want: Point{160, 60}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.Snap(tt.in, dragged, container))
		})
	}
}

func TestSnap_OutputIsCellMultipleInsideBounds(t *testing.T) {
	g := DefaultGeometry
	container := g.ContainerRect(Point{})
	dragged := g.EntryRect(Point{}, Entry{Day: "Wed", Range: []int{5, 6}})

	// Wed is column 2; deltas that round into the grid stay exact multiples.
	for x := -g.CellWidth - g.CellWidth/2; x <= 3*g.CellWidth; x += 7 {
		for y := -3 * g.CellHeight; y <= 10*g.CellHeight; y += 11 {
			got := g.Snap(Point{x, y}, dragged, container)
			assert.Zero(t, got.X%g.CellWidth, "x=%d snapped to %d", x, got.X)
			assert.Zero(t, got.Y%g.CellHeight, "y=%d snapped to %d", y, got.Y)
		}
	}
}

func TestSnap_ClampsToDrawableArea(t *testing.T) {
	g := DefaultGeometry
	origins := []Point{{0, 0}, {300, 120}, {-50, 17}}
	entries := []Entry{
		{Day: "Mon", Range: []int{1}},
		{Day: "Sat", Range: []int{23, 24}},
		{Day: "Thu", Range: []int{10, 11, 12}},
	}
	moves := []Point{{-10000, -10000}, {10000, 10000}, {-10000, 10000}, {10000, -10000}, {35, -44}}

	for _, origin := range origins {
		container := g.ContainerRect(origin)
		for _, e := range entries {
			dragged := g.EntryRect(origin, e)
			for _, mv := range moves {
				got := g.Snap(mv, dragged, container)
				left := dragged.Left + got.X
				top := dragged.Top + got.Y
				assert.Greater(t, left, container.Left+g.HeaderWidth, "left edge under the time column")
				assert.Greater(t, top, container.Top+g.HeaderHeight, "top edge under the day header")
				assert.LessOrEqual(t, dragged.Right+got.X, container.Right)
				assert.LessOrEqual(t, dragged.Bottom+got.Y, container.Bottom)
			}
		}
	}
}

func TestSnap_ClampedDeltaStillTranslatesToFirstCell(t *testing.T) {
	g := DefaultGeometry
	container := g.ContainerRect(Point{})
	e := Entry{Day: "Thu", Range: []int{4, 5}}
	dragged := g.EntryRect(Point{}, e)

	got := g.Snap(Point{-10000, -10000}, dragged, container)
	moved, err := Translate(e, floorDiv(got.X, g.CellWidth), floorDiv(got.Y, g.CellHeight))

	assert.NoError(t, err)
	assert.Equal(t, "Mon", moved.Day)
	assert.Equal(t, []int{1, 2}, moved.Range)
}

func TestSnap_Deterministic(t *testing.T) {
	g := DefaultGeometry
	container := g.ContainerRect(Point{X: 12, Y: 34})
	dragged := g.EntryRect(Point{X: 12, Y: 34}, Entry{Day: "Tue", Range: []int{2}})

	first := g.Snap(Point{123, 77}, dragged, container)
	for range 10 {
		assert.Equal(t, first, g.Snap(Point{123, 77}, dragged, container))
	}
}

func TestFloorDiv(t *testing.T) {
	tests := []struct{ a, b, want int }{
		{7, 2, 3},
		{-7, 2, -4},
		{-8, 2, -4},
		{0, 5, 0},
		{-1, 80, -1},
		{79, 80, 0},
		{5, 0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, floorDiv(tt.a, tt.b), "floorDiv(%d, %d)", tt.a, tt.b)
	}
}

func TestCellAt(t *testing.T) {
	g := DefaultGeometry
	origin := Point{X: 10, Y: 5}

	tests := []struct {
		name     string
		p        Point
		wantDay  string
		wantSlot int
		wantOK   bool
	}{
		{name: "first_cell", p: Point{X: 10 + 120, Y: 5 + 40}, wantDay: "Mon", wantSlot: 1, wantOK: true},
		{name: "inside_tue_slot_3", p: Point{X: 10 + 120 + 80 + 5, Y: 5 + 40 + 2*30 + 29}, wantDay: "Tue", wantSlot: 3, wantOK: true},
		{name: "last_cell", p: Point{X: 10 + 120 + 6*80 - 1, Y: 5 + 40 + 24*30 - 1}, wantDay: "Sat", wantSlot: 24, wantOK: true},
		{name: "time_column", p: Point{X: 10 + 119, Y: 5 + 50}},
		{name: "day_header", p: Point{X: 10 + 130, Y: 5 + 39}},
		{name: "right_of_grid", p: Point{X: 10 + 120 + 6*80, Y: 5 + 50}},
		{name: "below_grid", p: Point{X: 10 + 130, Y: 5 + 40 + 24*30}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			day, slot, ok := g.CellAt(origin, tt.p)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantDay, day)
			assert.Equal(t, tt.wantSlot, slot)
		})
	}
}
