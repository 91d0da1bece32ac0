package core

// LineSnapshot is the per-line state exposed to renderers each frame.
type LineSnapshot struct {
	Index     int     `json:"index"`
	Magnitude int     `json:"magnitude"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Width     float64 `json:"width"`
	Color     Color   `json:"color"`
}
