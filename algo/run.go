package algo

import (
	"context"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/TexablePlum/Sort-Algoritms/core"
	"github.com/TexablePlum/Sort-Algoritms/hooks"
)

// Run provides the paced primitives an algorithm works through. Every
// comparison and swap highlights the touched slots, emits a step event,
// and suspends for the run's delay, so observers see each operation land
// before the next one starts.
type Run struct {
	ctx     context.Context
	seq     *core.Sequence
	delay   time.Duration
	broker  *hooks.PluginBroker
	rng     *rand.Rand
	palette Palette
	base    core.Color

	id        string
	algorithm string

	comparisons atomic.Uint64
	swaps       atomic.Uint64
	steps       atomic.Uint64
}

// RunOptions tune a standalone run.
type RunOptions struct {
	// ID and Algorithm label emitted step events.
	ID        string
	Algorithm string
	// Broker receives step events. A nil broker disables emission.
	Broker *hooks.PluginBroker
	// RNG drives randomized algorithms. Nil seeds from the clock.
	RNG *rand.Rand
	// Palette overrides the highlight colors.
	Palette Palette
}

// NewRun prepares paced primitives over seq. The delay is fixed for the
// lifetime of the run; negative values are treated as zero. The controller
// builds runs itself, so this constructor mainly serves direct invocation
// in tests and benchmarks.
func NewRun(ctx context.Context, seq *core.Sequence, delay time.Duration, opts RunOptions) *Run {
	if ctx == nil {
		ctx = context.Background()
	}
	if delay < 0 {
		delay = 0
	}
	rng := opts.RNG
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Run{
		ctx:       ctx,
		seq:       seq,
		delay:     delay,
		broker:    opts.Broker,
		rng:       rng,
		palette:   opts.Palette.withDefaults(),
		base:      seq.BaseColor(),
		id:        opts.ID,
		algorithm: opts.Algorithm,
	}
}

// ID returns the run identifier carried on step events.
func (r *Run) ID() string { return r.id }

// Algorithm returns the algorithm name carried on step events.
func (r *Run) Algorithm() string { return r.algorithm }

// Len returns the number of slots in the sequence.
func (r *Run) Len() int { return r.seq.Len() }

// Delay returns the pacing interval fixed at run start.
func (r *Run) Delay() time.Duration { return r.delay }

// Rand returns the run's random source.
func (r *Run) Rand() *rand.Rand { return r.rng }

// Context returns the run's cancellation context.
func (r *Run) Context() context.Context { return r.ctx }

// LineAt returns the line currently occupying slot i.
func (r *Run) LineAt(i int) *core.Line { return r.seq.LineAt(i) }

// IndexOf returns the slot currently holding ln, scanning from the given
// slot onward, or -1 when ln is not found.
func (r *Run) IndexOf(ln *core.Line, from int) int { return r.seq.IndexOf(ln, from) }

// Comparisons returns how many comparisons the run has performed.
func (r *Run) Comparisons() uint64 { return r.comparisons.Load() }

// Swaps returns how many swaps the run has performed.
func (r *Run) Swaps() uint64 { return r.swaps.Load() }

// Steps returns the total number of visualized steps so far.
func (r *Run) Steps() uint64 { return r.steps.Load() }

// Greater reports whether the magnitude at slot i exceeds the one at slot j.
// Both slots are highlighted for one pacing interval and the comparison is
// recorded as a visualized step. Equal magnitudes report false, so ties
// never trigger a swap.
func (r *Run) Greater(i, j int) (bool, error) {
	if err := r.checkCtx(); err != nil {
		return false, err
	}
	r.seq.SetColor(r.palette.Active, i, j)
	out := r.seq.Greater(i, j)
	r.comparisons.Add(1)
	r.emitStep(hooks.StepCompare, i, j)
	err := r.pace()
	r.seq.SetColor(r.base, i, j)
	return out, err
}

// Swap exchanges the slots at i and j while both are highlighted, then
// holds for one pacing interval. The exchange itself is a single atomic
// mutation, so observers never see a half-applied swap.
func (r *Run) Swap(i, j int) error {
	if err := r.checkCtx(); err != nil {
		return err
	}
	r.seq.SwapColored(i, j, r.palette.Active)
	r.swaps.Add(1)
	r.emitStep(hooks.StepSwap, i, j)
	err := r.pace()
	r.seq.SetColor(r.base, i, j)
	return err
}

func (r *Run) emitStep(kind hooks.StepKind, i, j int) {
	ordinal := r.steps.Add(1)
	if r.broker == nil {
		return
	}
	r.broker.EmitStep(&hooks.StepContext{
		RunID:     r.id,
		Algorithm: r.algorithm,
		Kind:      kind,
		I:         i,
		J:         j,
		Ordinal:   ordinal,
	})
}

// pace suspends the run for one delay interval, honouring cancellation.
// A zero delay never suspends; it only polls for cancellation.
func (r *Run) pace() error {
	if r.delay <= 0 {
		return r.checkCtx()
	}
	timer := time.NewTimer(r.delay)
	defer timer.Stop()
	select {
	case <-r.ctx.Done():
		return r.ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (r *Run) checkCtx() error {
	select {
	case <-r.ctx.Done():
		return r.ctx.Err()
	default:
		return nil
	}
}
