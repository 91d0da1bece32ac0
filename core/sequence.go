package core

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// InitialOrder selects how magnitudes are arranged when a sequence is built.
type InitialOrder string

const (
	OrderShuffled InitialOrder = "shuffled"
	OrderSorted   InitialOrder = "sorted"
	OrderReversed InitialOrder = "reversed"
)

// Layout describes how a sequence of lines is derived from the panel
// geometry: how many bars, how far apart, and inside which pixel bounds.
type Layout struct {
	Count        int
	Spacing      float64
	Width        float64
	Height       float64
	MinMagnitude int
	BarColor     Color
	Order        InitialOrder
}

// LineWidth returns the width each bar gets under this layout.
func (l Layout) LineWidth() float64 {
	if l.Count <= 0 {
		return 0
	}
	w := (l.Width - l.Spacing*float64(l.Count+1)) / float64(l.Count)
	if w < 1 {
		w = 1
	}
	return w
}

// Sequence is the ordered, mutable collection of lines being sorted. Index
// order is screen-slot order. The running algorithm is the sole writer for
// the duration of a run; the renderer reads snapshots between steps. Every
// mutating method is one atomic critical section, so an observer never sees
// a torn swap or a half-recolored step.
type Sequence struct {
	mu    sync.RWMutex
	lines []*Line
	base  Color
}

// NewSequence builds a fresh batch of lines from the layout. Magnitudes are
// spread evenly between MinMagnitude and the panel height and then arranged
// according to the layout order; rng drives the shuffled arrangement and may
// be nil for a time-seeded one.
func NewSequence(layout Layout, rng *rand.Rand) (*Sequence, error) {
	if layout.Count < 0 {
		return nil, errors.Errorf("layout count must be non-negative, got %d", layout.Count)
	}
	base := layout.BarColor
	if base == ColorNone {
		base = DefaultBarColor
	}
	minMag := layout.MinMagnitude
	if minMag <= 0 {
		minMag = 2
	}
	maxMag := layout.Height
	if maxMag < float64(minMag) {
		maxMag = float64(minMag)
	}

	values := make([]int, layout.Count)
	for i := range values {
		if layout.Count == 1 {
			values[i] = int(maxMag)
			continue
		}
		f := float64(i) / float64(layout.Count-1)
		values[i] = minMag + int(math.Round(f*(maxMag-float64(minMag))))
	}

	switch layout.Order {
	case OrderSorted:
	case OrderReversed:
		for i, j := 0, len(values)-1; i < j; i, j = i+1, j-1 {
			values[i], values[j] = values[j], values[i]
		}
	default: // OrderShuffled
		if rng == nil {
			rng = rand.New(rand.NewSource(time.Now().UnixNano()))
		}
		for i := len(values) - 1; i > 0; i-- {
			j := rng.Intn(i + 1)
			values[i], values[j] = values[j], values[i]
		}
	}

	width := layout.LineWidth()
	lines := make([]*Line, layout.Count)
	for i := range lines {
		pos := Point{
			X: layout.Spacing + float64(i)*(width+layout.Spacing),
			Y: layout.Height,
		}
		lines[i] = NewLine(values[i], width, pos, base)
	}

	return &Sequence{lines: lines, base: base}, nil
}

// NewSequenceOf builds a sequence holding the given magnitudes in the given
// slot order, laid out under the provided geometry. The layout count is
// taken from the slice.
func NewSequenceOf(layout Layout, magnitudes []int) (*Sequence, error) {
	for _, m := range magnitudes {
		if m < 0 {
			return nil, errors.Errorf("magnitude must be non-negative, got %d", m)
		}
	}
	base := layout.BarColor
	if base == ColorNone {
		base = DefaultBarColor
	}
	layout.Count = len(magnitudes)
	width := layout.LineWidth()
	lines := make([]*Line, len(magnitudes))
	for i, m := range magnitudes {
		pos := Point{
			X: layout.Spacing + float64(i)*(width+layout.Spacing),
			Y: layout.Height,
		}
		lines[i] = NewLine(m, width, pos, base)
	}
	return &Sequence{lines: lines, base: base}, nil
}

// Len returns the number of lines.
func (s *Sequence) Len() int {
	if s == nil {
		return 0
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.lines)
}

// Magnitude returns the sort key in slot i, or 0 when out of range.
func (s *Sequence) Magnitude(i int) int {
	if s == nil {
		return 0
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i < 0 || i >= len(s.lines) {
		return 0
	}
	return s.lines[i].magnitude
}

// Less reports whether slot i holds a strictly smaller key than slot j.
func (s *Sequence) Less(i, j int) bool {
	if s == nil {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i < 0 || j < 0 || i >= len(s.lines) || j >= len(s.lines) {
		return false
	}
	return s.lines[i].magnitude < s.lines[j].magnitude
}

// Greater reports whether slot i holds a strictly greater key than slot j.
// Ties report false, so equal keys never trigger a swap.
func (s *Sequence) Greater(i, j int) bool {
	if s == nil {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i < 0 || j < 0 || i >= len(s.lines) || j >= len(s.lines) {
		return false
	}
	return s.lines[i].magnitude > s.lines[j].magnitude
}

// Swap exchanges the lines in slots i and j together with their slot
// coordinates, as one atomic update. Out-of-range or equal indices no-op.
func (s *Sequence) Swap(i, j int) {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.swapLocked(i, j)
	s.mu.Unlock()
}

// SwapColored is Swap plus recoloring both lines, in the same critical
// section, so a paced step mutates visible state exactly once.
func (s *Sequence) SwapColored(i, j int, c Color) {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.setColorLocked(c, i)
	s.setColorLocked(c, j)
	s.swapLocked(i, j)
	s.mu.Unlock()
}

// SetColor recolors the given slots atomically.
func (s *Sequence) SetColor(c Color, idx ...int) {
	if s == nil {
		return
	}
	s.mu.Lock()
	for _, i := range idx {
		s.setColorLocked(c, i)
	}
	s.mu.Unlock()
}

// SetAllColors recolors every line atomically.
func (s *Sequence) SetAllColors(c Color) {
	if s == nil {
		return
	}
	s.mu.Lock()
	for _, ln := range s.lines {
		ln.color = c
	}
	s.mu.Unlock()
}

// ResetColors restores every line to the layout's base color.
func (s *Sequence) ResetColors() {
	if s == nil {
		return
	}
	s.mu.Lock()
	for _, ln := range s.lines {
		ln.color = s.base
	}
	s.mu.Unlock()
}

// BaseColor returns the color ResetColors restores.
func (s *Sequence) BaseColor() Color {
	if s == nil {
		return ColorNone
	}
	return s.base
}

// LineAt returns the line currently in slot i, or nil when out of range.
// Callers use the pointer for identity and key reads only.
func (s *Sequence) LineAt(i int) *Line {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i < 0 || i >= len(s.lines) {
		return nil
	}
	return s.lines[i]
}

// Window copies the line pointers in the half-open slot range [lo, hi).
func (s *Sequence) Window(lo, hi int) []*Line {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if lo < 0 {
		lo = 0
	}
	if hi > len(s.lines) {
		hi = len(s.lines)
	}
	if lo >= hi {
		return nil
	}
	out := make([]*Line, hi-lo)
	copy(out, s.lines[lo:hi])
	return out
}

// IndexOf locates a line by identity, scanning slots from the given index.
// Returns -1 when the line is not found.
func (s *Sequence) IndexOf(ln *Line, from int) int {
	if s == nil || ln == nil {
		return -1
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if from < 0 {
		from = 0
	}
	for i := from; i < len(s.lines); i++ {
		if s.lines[i] == ln {
			return i
		}
	}
	return -1
}

// Magnitudes copies the current key order, for verification and stats.
func (s *Sequence) Magnitudes() []int {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]int, len(s.lines))
	for i, ln := range s.lines {
		out[i] = ln.magnitude
	}
	return out
}

// IsSorted reports whether keys are in non-decreasing slot order.
func (s *Sequence) IsSorted() bool {
	if s == nil {
		return true
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := 1; i < len(s.lines); i++ {
		if s.lines[i-1].magnitude > s.lines[i].magnitude {
			return false
		}
	}
	return true
}

// Snapshot copies the full visual state for one render frame.
func (s *Sequence) Snapshot() []LineSnapshot {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]LineSnapshot, len(s.lines))
	for i, ln := range s.lines {
		out[i] = LineSnapshot{
			Index:     i,
			Magnitude: ln.magnitude,
			X:         ln.pos.X,
			Y:         ln.pos.Y,
			Width:     ln.width,
			Color:     ln.color,
		}
	}
	return out
}

func (s *Sequence) swapLocked(i, j int) {
	if i == j || i < 0 || j < 0 || i >= len(s.lines) || j >= len(s.lines) {
		return
	}
	a, b := s.lines[i], s.lines[j]
	s.lines[i], s.lines[j] = b, a
	a.pos, b.pos = b.pos, a.pos
}

func (s *Sequence) setColorLocked(c Color, i int) {
	if i < 0 || i >= len(s.lines) {
		return
	}
	s.lines[i].color = c
}

// SameMultiset reports whether two key slices hold the same values with the
// same multiplicities, regardless of order.
func SameMultiset(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[int]int, len(a))
	for _, v := range a {
		counts[v]++
	}
	for _, v := range b {
		counts[v]--
		if counts[v] < 0 {
			return false
		}
	}
	return true
}
