// Package trace keeps a bounded history of recent visualized steps so
// frontends and diagnostics can replay what an algorithm just did without
// subscribing to the live hook stream.
package trace

import (
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/TexablePlum/Sort-Algoritms/hooks"
)

// DefaultCapacity bounds a recorder when no explicit capacity is given.
const DefaultCapacity = 512

// PluginName identifies the recorder in the plugin catalog.
const PluginName = "trace/steps"

// Event is one retained step. Seq grows monotonically across the life of
// the recorder, so it doubles as a cursor for incremental reads.
type Event struct {
	Seq       uint64    `json:"seq"`
	At        time.Time `json:"at"`
	RunID     string    `json:"runId"`
	Algorithm string    `json:"algorithm"`
	Kind      string    `json:"kind"`
	I         int       `json:"i"`
	J         int       `json:"j"`
	Ordinal   uint64    `json:"ordinal"`
}

// Recorder retains the most recent events in a fixed ring. When the ring
// is full the oldest event is evicted to admit the new one; writers never
// block and never fail.
type Recorder struct {
	mu      sync.Mutex
	ring    []Event
	start   int
	count   int
	nextSeq uint64
	dropped uint64
	now     func() time.Time
}

// NewRecorder builds a recorder holding at most capacity events.
// Non-positive capacities fall back to DefaultCapacity.
func NewRecorder(capacity int) *Recorder {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Recorder{
		ring: make([]Event, capacity),
		now:  time.Now,
	}
}

// Capacity returns the fixed ring size.
func (r *Recorder) Capacity() int {
	if r == nil {
		return 0
	}
	return len(r.ring)
}

// Len returns the number of retained events.
func (r *Recorder) Len() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Dropped returns how many events were evicted to make room.
func (r *Recorder) Dropped() uint64 {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dropped
}

// Record stores an event, stamping its sequence number and, when unset,
// its timestamp. The oldest retained event is dropped if the ring is full.
func (r *Recorder) Record(ev Event) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextSeq++
	ev.Seq = r.nextSeq
	if ev.At.IsZero() {
		ev.At = r.now()
	}

	if r.count < len(r.ring) {
		r.ring[(r.start+r.count)%len(r.ring)] = ev
		r.count++
		return
	}
	r.ring[r.start] = ev
	r.start = (r.start + 1) % len(r.ring)
	r.dropped++
}

// Events returns the retained events oldest first.
func (r *Recorder) Events() []Event {
	return r.collect(func(Event) bool { return true })
}

// EventsSince returns retained events with Seq greater than seq, oldest
// first. It lets pollers resume from their last seen cursor.
func (r *Recorder) EventsSince(seq uint64) []Event {
	return r.collect(func(ev Event) bool { return ev.Seq > seq })
}

// EventsForRun returns retained events belonging to one run, oldest first.
func (r *Recorder) EventsForRun(runID string) []Event {
	return r.collect(func(ev Event) bool { return ev.RunID == runID })
}

// Reset discards all retained events. Sequence numbers keep growing so
// cursors held by readers stay valid.
func (r *Recorder) Reset() {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.start = 0
	r.count = 0
}

func (r *Recorder) collect(keep func(Event) bool) []Event {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Event, 0, r.count)
	for i := 0; i < r.count; i++ {
		ev := r.ring[(r.start+i)%len(r.ring)]
		if keep(ev) {
			out = append(out, ev)
		}
	}
	return out
}

// Descriptor implements hooks.Plugin.
func (r *Recorder) Descriptor() hooks.PluginDescriptor {
	return hooks.PluginDescriptor{
		Name:        PluginName,
		Category:    hooks.PluginCategoryInstrumentation,
		Description: "bounded ring of recent compare and swap steps",
	}
}

// Register implements hooks.Plugin by subscribing the recorder to the
// step stream.
func (r *Recorder) Register(broker *hooks.PluginBroker) error {
	if r == nil {
		return errors.New("trace recorder is nil")
	}
	if broker == nil {
		return errors.New("plugin broker is nil")
	}
	broker.RegisterStep(func(ctx *hooks.StepContext) {
		r.Record(Event{
			RunID:     ctx.RunID,
			Algorithm: ctx.Algorithm,
			Kind:      string(ctx.Kind),
			I:         ctx.I,
			J:         ctx.J,
			Ordinal:   ctx.Ordinal,
		})
	})
	return nil
}
