package algo

import "github.com/TexablePlum/Sort-Algoritms/core"

// Algorithm rearranges a sequence through the paced primitives of a Run.
// Implementations return the Run's context error when cancelled mid-flight
// and nil once they finished naturally.
type Algorithm interface {
	Sort(run *Run) error
}

// SortFunc adapts a plain function to the Algorithm interface.
type SortFunc func(run *Run) error

func (f SortFunc) Sort(run *Run) error {
	return f(run)
}

// Descriptor describes a registered algorithm.
type Descriptor struct {
	// Name is the key used to select the algorithm.
	Name string `json:"name"`
	// Summary is a one-line description for listings.
	Summary string `json:"summary"`
	// Sorts reports whether a finished run leaves the sequence ordered.
	// Runs of non-sorting entries such as shuffle end without the
	// completion animation.
	Sorts bool `json:"sorts"`
}

// Palette holds the colors a run paints while it works.
type Palette struct {
	Active core.Color
	Done   core.Color
}

// DefaultPalette returns the stock highlight colors.
func DefaultPalette() Palette {
	return Palette{
		Active: core.DefaultActiveColor,
		Done:   core.DefaultDoneColor,
	}
}

func (p Palette) withDefaults() Palette {
	if p.Active == core.ColorNone {
		p.Active = core.DefaultActiveColor
	}
	if p.Done == core.ColorNone {
		p.Done = core.DefaultDoneColor
	}
	return p
}
