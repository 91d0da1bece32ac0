package main

import (
	"github.com/pkg/errors"

	"github.com/TexablePlum/Sort-Algoritms/algo"
	"github.com/TexablePlum/Sort-Algoritms/core"
)

// ValidateConfig applies structural checks to Config and populates defaults
// where required. It mutates the config in place.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}

	if cfg.Count == 0 {
		cfg.Count = DefaultBarCount
	}
	if cfg.Count < MinBarCount || cfg.Count > MaxBarCount {
		return errors.Errorf("count must be within [%d,%d], got %d", MinBarCount, MaxBarCount, cfg.Count)
	}
	if cfg.DelayMs < 0 {
		return errors.Errorf("delayMs must be non-negative, got %d", cfg.DelayMs)
	}

	if cfg.Algorithm == "" {
		cfg.Algorithm = DefaultAlgorithmName
	}
	if _, _, err := algo.Lookup(cfg.Algorithm); err != nil {
		return errors.Wrap(err, "algorithm")
	}

	if cfg.Order == "" {
		cfg.Order = string(core.OrderShuffled)
	}
	switch core.InitialOrder(cfg.Order) {
	case core.OrderShuffled, core.OrderSorted, core.OrderReversed:
	default:
		return errors.Errorf("order must be one of shuffled, sorted, reversed, got %q", cfg.Order)
	}

	if cfg.BarColor == "" {
		cfg.BarColor = string(core.DefaultBarColor)
	}
	if cfg.ActiveColor == "" {
		cfg.ActiveColor = string(core.DefaultActiveColor)
	}
	if cfg.DoneColor == "" {
		cfg.DoneColor = string(core.DefaultDoneColor)
	}
	for _, c := range []string{cfg.BarColor, cfg.ActiveColor, cfg.DoneColor} {
		if _, err := core.ParseColor(c); err != nil {
			return err
		}
	}

	if cfg.FrameIntervalMs < 0 {
		return errors.Errorf("frameIntervalMs must be non-negative, got %d", cfg.FrameIntervalMs)
	}
	if cfg.TraceCapacity < 0 {
		return errors.Errorf("traceCapacity must be non-negative, got %d", cfg.TraceCapacity)
	}
	if cfg.MetricsIntervalMs < 0 {
		return errors.Errorf("metricsIntervalMs must be non-negative, got %d", cfg.MetricsIntervalMs)
	}

	if cfg.ListenAddr == "" {
		cfg.ListenAddr = DefaultListenAddr
	}
	if cfg.StaticDir == "" {
		cfg.StaticDir = DefaultStaticDir
	}

	return nil
}
