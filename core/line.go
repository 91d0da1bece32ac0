package core

// Point is a 2D screen coordinate in pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Line is a single sortable bar: an immutable sort key (magnitude, the bar
// height in pixels) plus the mutable visual state the renderer reads. Slot
// coordinates travel with slots, not with lines: a swap exchanges the
// positions of the two lines involved so the coordinate grid never drifts.
type Line struct {
	magnitude int
	width     float64
	pos       Point
	color     Color
}

// NewLine creates a line with the given sort key and visual state.
func NewLine(magnitude int, width float64, pos Point, color Color) *Line {
	return &Line{
		magnitude: magnitude,
		width:     width,
		pos:       pos,
		color:     color,
	}
}

// Magnitude returns the sort key. It never changes after creation.
func (l *Line) Magnitude() int {
	if l == nil {
		return 0
	}
	return l.magnitude
}

// Width returns the bar width, fixed for the lifetime of the sequence.
func (l *Line) Width() float64 {
	if l == nil {
		return 0
	}
	return l.width
}

// Position returns the current slot coordinate.
func (l *Line) Position() Point {
	if l == nil {
		return Point{}
	}
	return l.pos
}

// Color returns the current visual color.
func (l *Line) Color() Color {
	if l == nil {
		return ColorNone
	}
	return l.color
}
