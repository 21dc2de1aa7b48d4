package schedule

// Point is a position or delta in grid units (pixels on the original canvas).
type Point struct {
	X int
	Y int
}

// Rect is an axis-aligned box in grid units. Right and Bottom are exclusive edges.
type Rect struct {
	Top    int
	Left   int
	Right  int
	Bottom int
}

// Geometry describes the drawable layout of one timetable grid.
type Geometry struct {
	CellWidth    int // width of one day column
	CellHeight   int // height of one slot row
	HeaderWidth  int // width of the time label column
	HeaderHeight int // height of the day label row
}

// DefaultGeometry is the reference layout: 80x30 cells, a 120 wide time column
// and a 40 high day header.
var DefaultGeometry = Geometry{
	CellWidth:    80,
	CellHeight:   30,
	HeaderWidth:  120,
	HeaderHeight: 40,
}

// Valid reports whether all sizes are positive.
func (g Geometry) Valid() bool {
	return g.CellWidth > 0 && g.CellHeight > 0 && g.HeaderWidth >= 0 && g.HeaderHeight >= 0
}

// ContainerRect returns the bounds of a whole grid whose top-left corner is origin.
func (g Geometry) ContainerRect(origin Point) Rect {
	return Rect{
		Top:    origin.Y,
		Left:   origin.X,
		Right:  origin.X + g.HeaderWidth + len(DayLabels)*g.CellWidth,
		Bottom: origin.Y + g.HeaderHeight + SlotCount*g.CellHeight,
	}
}

// EntryRect returns the bounds of an entry block inside a grid at origin.
// Entries with an unknown day or empty range yield a zero-width rect at the origin.
func (g Geometry) EntryRect(origin Point, e Entry) Rect {
	col := DayIndex(e.Day)
	if col < 0 || len(e.Range) == 0 {
		return Rect{Top: origin.Y, Left: origin.X, Right: origin.X, Bottom: origin.Y}
	}
	left := origin.X + g.HeaderWidth + col*g.CellWidth
	top := origin.Y + g.HeaderHeight + (e.Start()-1)*g.CellHeight
	return Rect{
		Top:    top,
		Left:   left,
		Right:  left + g.CellWidth,
		Bottom: top + len(e.Range)*g.CellHeight,
	}
}

// CellAt resolves a point inside a grid at origin to a day and 1-based slot.
// Points on the headers or outside the grid report ok == false.
func (g Geometry) CellAt(origin, p Point) (day string, slot int, ok bool) {
	x := p.X - origin.X - g.HeaderWidth
	y := p.Y - origin.Y - g.HeaderHeight
	if x < 0 || y < 0 {
		return "", 0, false
	}
	col := x / g.CellWidth
	row := y / g.CellHeight
	if col >= len(DayLabels) || row >= SlotCount {
		return "", 0, false
	}
	return DayLabels[col], row + 1, true
}

// Snap maps a raw drag transform onto the grid. Each axis is rounded to the
// nearest cell multiple, then clamped so the dragged block stays right of the
// time column, below the day header, and inside the container.
func (g Geometry) Snap(transform Point, dragged, container Rect) Point {
	minX := container.Left - dragged.Left + g.HeaderWidth + 1
	minY := container.Top - dragged.Top + g.HeaderHeight + 1
	maxX := container.Right - dragged.Right
	maxY := container.Bottom - dragged.Bottom

	return Point{
		X: min(max(roundToMultiple(transform.X, g.CellWidth), minX), maxX),
		Y: min(max(roundToMultiple(transform.Y, g.CellHeight), minY), maxY),
	}
}

// Offsets converts a snapped delta into whole day and slot offsets.
func (g Geometry) Offsets(delta Point) (days, slots int) {
	return floorDiv(delta.X, g.CellWidth), floorDiv(delta.Y, g.CellHeight)
}

// roundToMultiple rounds v to the nearest multiple of step, halves toward +inf.
func roundToMultiple(v, step int) int {
	if step <= 0 {
		return v
	}
	return floorDiv(2*v+step, 2*step) * step
}

func floorDiv(a, b int) int {
	if b == 0 {
		return 0
	}
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
