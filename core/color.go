package core

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// Color is a "#rrggbb" hex color carried by lines and frames. Algorithms
// never read it; it exists purely for visualization.
type Color string

// ColorNone marks an unset color.
const ColorNone Color = ""

// Default palette used when a configuration does not override it.
const (
	DefaultBarColor    Color = "#4a90d9" // idle bars
	DefaultActiveColor Color = "#e4574c" // bars touched by the current step
	DefaultDoneColor   Color = "#43b47e" // completion sweep
)

var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ParseColor validates and normalizes a hex color string.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if !hexColorPattern.MatchString(s) {
		return ColorNone, errors.Errorf("invalid color %q, expected #rrggbb", s)
	}
	return Color(strings.ToLower(s)), nil
}

// Valid reports whether the color is a well-formed #rrggbb value.
func (c Color) Valid() bool {
	return hexColorPattern.MatchString(string(c))
}
