package main

import (
	"math"
	"sync"
	"time"

	"github.com/go-logr/logr"
	"github.com/pkg/errors"

	"github.com/TexablePlum/Sort-Algoritms/hooks"
)

// MeterPluginName identifies the step meter in the plugin catalog.
const MeterPluginName = "metrics/steps"

// stepMeter reports step and swap throughput through the logger at a fixed
// interval. It piggybacks on the step stream, so an idle session emits
// nothing.
type stepMeter struct {
	mu         sync.Mutex
	log        logr.Logger
	interval   time.Duration
	steps      uint64
	swaps      uint64
	lastReport time.Time
}

func newStepMeter(log logr.Logger, interval time.Duration) *stepMeter {
	return &stepMeter{
		log:        log,
		interval:   interval,
		lastReport: time.Now(),
	}
}

// Descriptor implements hooks.Plugin.
func (m *stepMeter) Descriptor() hooks.PluginDescriptor {
	return hooks.PluginDescriptor{
		Name:        MeterPluginName,
		Category:    hooks.PluginCategoryInstrumentation,
		Description: "interval step and swap throughput reporter",
	}
}

// Register implements hooks.Plugin.
func (m *stepMeter) Register(broker *hooks.PluginBroker) error {
	if m == nil {
		return errors.New("step meter is nil")
	}
	if broker == nil {
		return errors.New("plugin broker is nil")
	}
	broker.RegisterStep(m.onStep)
	broker.RegisterRunFinished(m.onRunEnd)
	broker.RegisterRunStopped(m.onRunEnd)
	return nil
}

func (m *stepMeter) onStep(ctx *hooks.StepContext) {
	m.mu.Lock()
	m.steps++
	if ctx.Kind == hooks.StepSwap {
		m.swaps++
	}
	m.emitIfDueLocked()
	m.mu.Unlock()
}

// onRunEnd flushes the tail of a run so short runs still report.
func (m *stepMeter) onRunEnd(res *hooks.RunResult) {
	m.mu.Lock()
	if m.steps > 0 {
		m.reportLocked(time.Now())
	}
	m.mu.Unlock()
}

func (m *stepMeter) emitIfDueLocked() {
	now := time.Now()
	if now.Sub(m.lastReport) < m.interval {
		return
	}
	m.reportLocked(now)
}

func (m *stepMeter) reportLocked(now time.Time) {
	elapsed := now.Sub(m.lastReport).Seconds()
	stepsPerSec := float64(m.steps)
	swapsPerSec := float64(m.swaps)
	if elapsed > 0 {
		stepsPerSec /= elapsed
		swapsPerSec /= elapsed
	}
	m.log.Info("throughput",
		"stepsPerSec", math.Round(stepsPerSec),
		"swapsPerSec", math.Round(swapsPerSec),
		"steps", m.steps,
		"swaps", m.swaps)
	m.steps = 0
	m.swaps = 0
	m.lastReport = now
}
