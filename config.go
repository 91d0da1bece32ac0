package main

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/TexablePlum/Sort-Algoritms/core"
)

// Engine constants
const (
	// CanvasWidth and CanvasHeight bound the virtual panel the layout maps
	// bars onto. Renderers scale the resulting coordinates to their viewport.
	CanvasWidth  = 1600.0
	CanvasHeight = 600.0

	// Bar layout defaults
	DefaultBarCount = 100
	MinBarCount     = 2
	MaxBarCount     = 2048
	DefaultSpacing  = 2.0
	MinBarMagnitude = 5

	// Pacing and cadence
	DefaultDelayMs       = 25                    // per-step suspension
	DefaultFrameInterval = 50 * time.Millisecond // frame publish cadence in web mode

	// Server defaults
	DefaultListenAddr    = "127.0.0.1:8080"
	DefaultCommandBuffer = 10 // queued control commands before busy rejection
	DefaultStaticDir     = "web/static"

	// Bookkeeping
	DefaultHistoryLimit = 32 // retained run summaries
	LayoutHashLength    = 16 // hex characters of the layout hash
)

// DefaultAlgorithmName selects the algorithm used when none is configured.
const DefaultAlgorithmName = "bubble"

// Config holds every knob of a sorting session.
type Config struct {
	// Count is the number of bars in the sequence.
	Count int `json:"count" yaml:"count"`
	// Algorithm names the registered algorithm started by default.
	Algorithm string `json:"algorithm" yaml:"algorithm"`
	// DelayMs is the per-step suspension in milliseconds. Zero disables
	// pacing entirely.
	DelayMs int `json:"delayMs" yaml:"delay_ms"`
	// Order arranges the initial magnitudes: shuffled, sorted or reversed.
	Order string `json:"order" yaml:"order"`
	// Seed fixes the random source chain. Zero seeds from the clock.
	Seed int64 `json:"seed,omitempty" yaml:"seed"`

	// Colors. Empty values fall back to the core defaults.
	BarColor    string `json:"barColor,omitempty" yaml:"bar_color"`
	ActiveColor string `json:"activeColor,omitempty" yaml:"active_color"`
	DoneColor   string `json:"doneColor,omitempty" yaml:"done_color"`

	// FrameIntervalMs overrides the frame publish cadence in web mode.
	FrameIntervalMs int `json:"frameIntervalMs,omitempty" yaml:"frame_interval_ms"`
	// TraceCapacity bounds the step trace ring. Zero uses the trace default.
	TraceCapacity int `json:"traceCapacity,omitempty" yaml:"trace_capacity"`
	// MetricsIntervalMs is the reporting cadence of the step meter. Zero
	// disables the meter.
	MetricsIntervalMs int `json:"metricsIntervalMs,omitempty" yaml:"metrics_interval_ms"`

	// ListenAddr is the web server bind address.
	ListenAddr string `json:"-" yaml:"listen_addr"`
	// StaticDir holds frontend assets served at /.
	StaticDir string `json:"-" yaml:"static_dir"`
	// Headless disables the web surface; the session runs one algorithm
	// to completion and exits.
	Headless bool `json:"-" yaml:"headless"`
}

// DefaultConfig returns a session configuration with every field populated.
func DefaultConfig() *Config {
	return &Config{
		Count:             DefaultBarCount,
		Algorithm:         DefaultAlgorithmName,
		DelayMs:           DefaultDelayMs,
		Order:             string(core.OrderShuffled),
		BarColor:          string(core.DefaultBarColor),
		ActiveColor:       string(core.DefaultActiveColor),
		DoneColor:         string(core.DefaultDoneColor),
		FrameIntervalMs:   int(DefaultFrameInterval / time.Millisecond),
		MetricsIntervalMs: 5000,
		ListenAddr:        DefaultListenAddr,
		StaticDir:         DefaultStaticDir,
	}
}

// Clone returns an independent copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

// Delay returns the configured per-step suspension as a duration.
func (c *Config) Delay() time.Duration {
	if c == nil || c.DelayMs <= 0 {
		return 0
	}
	return time.Duration(c.DelayMs) * time.Millisecond
}

// FrameInterval returns the frame publish cadence.
func (c *Config) FrameInterval() time.Duration {
	if c == nil || c.FrameIntervalMs <= 0 {
		return DefaultFrameInterval
	}
	return time.Duration(c.FrameIntervalMs) * time.Millisecond
}

// MetricsInterval returns the step meter cadence, zero when disabled.
func (c *Config) MetricsInterval() time.Duration {
	if c == nil || c.MetricsIntervalMs <= 0 {
		return 0
	}
	return time.Duration(c.MetricsIntervalMs) * time.Millisecond
}

// Layout derives the bar layout from the configuration.
func (c *Config) Layout() core.Layout {
	return core.Layout{
		Count:        c.Count,
		Spacing:      DefaultSpacing,
		Width:        CanvasWidth,
		Height:       CanvasHeight,
		MinMagnitude: MinBarMagnitude,
		BarColor:     core.Color(c.BarColor),
		Order:        core.InitialOrder(c.Order),
	}
}

// computeLayoutHash fingerprints the fields that force a sequence rebuild.
// Frontends compare it between frames to detect that slot geometry changed
// and cached positions are stale.
func computeLayoutHash(cfg *Config) string {
	if cfg == nil {
		return ""
	}
	hashInput := fmt.Sprintf("%d-%s-%s-%.0f-%.0f-%.1f",
		cfg.Count,
		cfg.Order,
		cfg.BarColor,
		CanvasWidth,
		CanvasHeight,
		DefaultSpacing)

	hash := sha256.Sum256([]byte(hashInput))
	return hex.EncodeToString(hash[:])[:LayoutHashLength]
}
