package core

import "testing"

func TestParseColorNormalizes(t *testing.T) {
	c, err := ParseColor("  #4A90D9 ")
	if err != nil {
		t.Fatalf("ParseColor: %v", err)
	}
	if c != "#4a90d9" {
		t.Fatalf("expected lowercase color, got %s", c)
	}
}

func TestParseColorRejectsMalformed(t *testing.T) {
	for _, in := range []string{"", "red", "#123", "#12345g", "4a90d9", "#1234567"} {
		if _, err := ParseColor(in); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}

func TestColorValid(t *testing.T) {
	if !DefaultBarColor.Valid() || !DefaultActiveColor.Valid() || !DefaultDoneColor.Valid() {
		t.Fatalf("default palette colors must be valid")
	}
	if ColorNone.Valid() {
		t.Fatalf("empty color must not be valid")
	}
	if Color("#zzzzzz").Valid() {
		t.Fatalf("non-hex color must not be valid")
	}
}

func TestLineAccessorsAndNilSafety(t *testing.T) {
	ln := NewLine(42, 6, Point{X: 10, Y: 600}, DefaultBarColor)
	if ln.Magnitude() != 42 || ln.Width() != 6 {
		t.Fatalf("unexpected line state: %+v", ln)
	}
	if pos := ln.Position(); pos.X != 10 || pos.Y != 600 {
		t.Fatalf("unexpected position: %+v", pos)
	}
	if ln.Color() != DefaultBarColor {
		t.Fatalf("unexpected color: %s", ln.Color())
	}

	var nilLine *Line
	if nilLine.Magnitude() != 0 || nilLine.Width() != 0 {
		t.Fatalf("nil line should read zero values")
	}
	if nilLine.Color() != ColorNone {
		t.Fatalf("nil line should have no color")
	}
}
