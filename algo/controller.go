package algo

import (
	"context"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-logr/logr"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"

	"github.com/TexablePlum/Sort-Algoritms/core"
	"github.com/TexablePlum/Sort-Algoritms/hooks"
)

var (
	// ErrAlreadyRunning rejects an operation while a run is in progress.
	ErrAlreadyRunning = errors.New("a run is already in progress")
	// ErrCompleting rejects Stop while the completion animation plays.
	ErrCompleting = errors.New("completion animation in progress")
)

// runState tracks one live run.
type runState struct {
	run       *Run
	desc      Descriptor
	cancel    context.CancelFunc
	done      chan struct{}
	startedAt time.Time
	// finalized flips exactly once and decides whether Stop or the run
	// goroutine performs the final bookkeeping.
	finalized atomic.Bool
}

// Options configure a Controller.
type Options struct {
	// Log receives run lifecycle entries. Defaults to a discarding logger.
	Log logr.Logger
	// Broker receives run and step events. Nil disables emission.
	Broker *hooks.PluginBroker
	// Seed fixes the random source chain for randomized algorithms.
	// Zero seeds from the clock.
	Seed int64
	// Palette overrides the highlight colors.
	Palette Palette
}

// Controller owns the single-run discipline over one sequence. It starts
// runs, holds their cancellation, and tracks the running and completing
// phases that gate outside commands.
type Controller struct {
	mu      sync.Mutex
	log     logr.Logger
	seq     *core.Sequence
	broker  *hooks.PluginBroker
	palette Palette
	rng     *rand.Rand

	current    *runState
	completing bool
	prevDone   chan struct{}
	last       *hooks.RunResult
}

// NewController creates a controller bound to seq.
func NewController(seq *core.Sequence, opts Options) (*Controller, error) {
	if seq == nil {
		return nil, errors.New("sequence cannot be nil")
	}
	log := opts.Log
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Controller{
		log:     log.WithName("controller"),
		seq:     seq,
		broker:  opts.Broker,
		palette: opts.Palette.withDefaults(),
		rng:     rand.New(rand.NewSource(seed)),
	}, nil
}

// Start launches the named algorithm over the controller's sequence in a
// new goroutine and returns the run's identifier. The delay is bound for
// the whole run; negative values are treated as zero. Start fails with
// ErrAlreadyRunning while a previous run is still running or completing.
func (c *Controller) Start(name string, delay time.Duration) (string, error) {
	algorithm, desc, err := Lookup(name)
	if err != nil {
		return "", err
	}
	if delay < 0 {
		delay = 0
	}

	c.mu.Lock()
	if c.current != nil {
		c.mu.Unlock()
		return "", ErrAlreadyRunning
	}
	ctx, cancel := context.WithCancel(context.Background())
	state := &runState{
		desc:      desc,
		cancel:    cancel,
		done:      make(chan struct{}),
		startedAt: time.Now(),
	}
	state.run = NewRun(ctx, c.seq, delay, RunOptions{
		ID:        uuid.NewV4().String(),
		Algorithm: desc.Name,
		Broker:    c.broker,
		RNG:       rand.New(rand.NewSource(c.rng.Int63())),
		Palette:   c.palette,
	})
	c.current = state
	prevDone := c.prevDone
	size := c.seq.Len()
	c.mu.Unlock()

	c.log.V(1).Info("run starting",
		"algorithm", desc.Name, "run", state.run.ID(), "size", size, "delay", delay.String())
	c.broker.EmitRunStarted(&hooks.RunContext{
		RunID:     state.run.ID(),
		Algorithm: desc.Name,
		Size:      size,
	})

	go c.execute(state, algorithm, prevDone)
	return state.run.ID(), nil
}

// execute drives one run to its end. It waits for the previous run's
// goroutine to unwind first, so a stopped run can never interleave its
// final in-flight step with a fresh one.
func (c *Controller) execute(state *runState, algorithm Algorithm, prevDone chan struct{}) {
	defer close(state.done)
	if prevDone != nil {
		<-prevDone
	}

	if err := algorithm.Sort(state.run); err != nil {
		c.abort(state, err)
		return
	}

	if state.desc.Sorts {
		c.mu.Lock()
		if state.finalized.Load() {
			// Stop won the race against the natural finish.
			c.mu.Unlock()
			return
		}
		c.completing = true
		seq := c.seq
		c.mu.Unlock()

		c.broker.EmitCompletionStarted(&hooks.RunContext{
			RunID:     state.run.ID(),
			Algorithm: state.desc.Name,
			Size:      state.run.Len(),
		})
		sweepCompletion(seq, c.palette, state.run.Delay())
	}

	c.finish(state)
}

// finish records a natural completion.
func (c *Controller) finish(state *runState) {
	if !state.finalized.CompareAndSwap(false, true) {
		return
	}
	res := c.buildResult(state, hooks.OutcomeCompleted)

	c.mu.Lock()
	c.completing = false
	c.current = nil
	c.prevDone = state.done
	c.last = res
	c.mu.Unlock()

	state.cancel()
	c.log.Info("run finished",
		"algorithm", res.Algorithm, "run", res.RunID,
		"comparisons", res.Comparisons, "swaps", res.Swaps, "elapsed", res.Elapsed.String())
	c.broker.EmitRunFinished(res)
}

// abort records a run that unwound with an error. Runs cancelled through
// Stop lose the finalized race and exit silently; this path covers
// algorithm failures.
func (c *Controller) abort(state *runState, err error) {
	if !state.finalized.CompareAndSwap(false, true) {
		return
	}
	res := c.buildResult(state, hooks.OutcomeStopped)

	c.mu.Lock()
	c.seq.ResetColors()
	c.completing = false
	c.current = nil
	c.prevDone = state.done
	c.last = res
	c.mu.Unlock()

	state.cancel()
	if errors.Is(err, context.Canceled) {
		c.log.Info("run cancelled", "algorithm", res.Algorithm, "run", res.RunID)
	} else {
		c.log.Error(err, "run failed", "algorithm", res.Algorithm, "run", res.RunID)
	}
	c.broker.EmitRunStopped(res)
}

// Stop cancels the run in progress and restores every slot to the base
// color before returning. Stop fails with ErrCompleting while the
// completion animation plays and quietly succeeds when nothing runs, so
// repeated stops are harmless.
func (c *Controller) Stop() error {
	c.mu.Lock()
	if c.completing {
		c.mu.Unlock()
		return ErrCompleting
	}
	state := c.current
	if state == nil {
		c.mu.Unlock()
		return nil
	}
	if !state.finalized.CompareAndSwap(false, true) {
		c.mu.Unlock()
		return nil
	}
	state.cancel()
	c.seq.ResetColors()
	res := c.buildResult(state, hooks.OutcomeStopped)
	c.current = nil
	c.prevDone = state.done
	c.last = res
	c.mu.Unlock()

	c.log.Info("run stopped",
		"algorithm", res.Algorithm, "run", res.RunID,
		"comparisons", res.Comparisons, "swaps", res.Swaps)
	c.broker.EmitRunStopped(res)
	return nil
}

func (c *Controller) buildResult(state *runState, outcome hooks.RunOutcome) *hooks.RunResult {
	return &hooks.RunResult{
		RunID:       state.run.ID(),
		Algorithm:   state.desc.Name,
		Size:        state.run.Len(),
		Outcome:     outcome,
		Comparisons: state.run.Comparisons(),
		Swaps:       state.run.Swaps(),
		Elapsed:     time.Since(state.startedAt),
	}
}

// Status is a point-in-time view of the controller.
type Status struct {
	Running     bool
	Completing  bool
	RunID       string
	Algorithm   string
	Comparisons uint64
	Swaps       uint64
	Elapsed     time.Duration
	Sorted      bool
}

// Status reports the live run when one is active, otherwise the most
// recent result.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := Status{Completing: c.completing, Sorted: c.seq.IsSorted()}
	switch {
	case c.current != nil:
		st.Running = true
		st.RunID = c.current.run.ID()
		st.Algorithm = c.current.desc.Name
		st.Comparisons = c.current.run.Comparisons()
		st.Swaps = c.current.run.Swaps()
		st.Elapsed = time.Since(c.current.startedAt)
	case c.last != nil:
		st.RunID = c.last.RunID
		st.Algorithm = c.last.Algorithm
		st.Comparisons = c.last.Comparisons
		st.Swaps = c.last.Swaps
		st.Elapsed = c.last.Elapsed
	}
	return st
}

// IsRunning reports whether a run is active, completion phase included.
func (c *Controller) IsRunning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current != nil
}

// IsCompleting reports whether the completion animation is playing.
func (c *Controller) IsCompleting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.completing
}

// LastResult returns a copy of the most recent run result, or nil before
// the first run ended.
func (c *Controller) LastResult() *hooks.RunResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.last == nil {
		return nil
	}
	cp := *c.last
	return &cp
}

// Sequence returns the sequence the controller currently drives.
func (c *Controller) Sequence() *core.Sequence {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seq
}

// ReplaceSequence points the controller at a new sequence, for reset and
// regenerate commands. It fails with ErrAlreadyRunning while a run is
// active.
func (c *Controller) ReplaceSequence(seq *core.Sequence) error {
	if seq == nil {
		return errors.New("sequence cannot be nil")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current != nil {
		return ErrAlreadyRunning
	}
	c.seq = seq
	return nil
}
