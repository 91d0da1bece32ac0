package algo

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/TexablePlum/Sort-Algoritms/core"
	"github.com/TexablePlum/Sort-Algoritms/hooks"
)

func newTestController(t *testing.T, magnitudes []int) (*Controller, *hooks.PluginBroker) {
	t.Helper()
	seq, err := core.NewSequenceOf(testLayout(len(magnitudes), core.OrderSorted), magnitudes)
	if err != nil {
		t.Fatalf("NewSequenceOf: %v", err)
	}
	broker := hooks.NewPluginBroker()
	ctrl, err := NewController(seq, Options{Broker: broker, Seed: 5})
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	return ctrl, broker
}

func reversedMagnitudes(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = n - i
	}
	return out
}

func waitResult(t *testing.T, ch <-chan *hooks.RunResult, what string) *hooks.RunResult {
	t.Helper()
	select {
	case res := <-ch:
		return res
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for %s", what)
		return nil
	}
}

func allBaseColors(seq *core.Sequence) bool {
	base := seq.BaseColor()
	for _, snap := range seq.Snapshot() {
		if snap.Color != base {
			return false
		}
	}
	return true
}

func waitBaseColors(t *testing.T, seq *core.Sequence) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for !allBaseColors(seq) {
		if time.Now().After(deadline) {
			t.Fatalf("colors never returned to base: %+v", seq.Snapshot())
		}
		time.Sleep(time.Millisecond)
	}
}

func TestControllerRunsBubbleToCompletion(t *testing.T) {
	ctrl, broker := newTestController(t, []int{5, 3, 4, 1, 2})
	finished := make(chan *hooks.RunResult, 1)
	broker.RegisterRunFinished(func(res *hooks.RunResult) { finished <- res })

	id, err := ctrl.Start("bubble", 0)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if id == "" {
		t.Fatalf("expected a run id")
	}

	res := waitResult(t, finished, "run finish")
	if res.RunID != id {
		t.Fatalf("result run id %s != started id %s", res.RunID, id)
	}
	if res.Outcome != hooks.OutcomeCompleted || res.Algorithm != "bubble" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Comparisons == 0 || res.Swaps == 0 {
		t.Fatalf("expected counted work, got %+v", res)
	}
	if ctrl.IsRunning() {
		t.Fatalf("controller still running after finish")
	}
	if st := ctrl.Status(); !st.Sorted {
		t.Fatalf("sequence not sorted after bubble: %+v", st)
	}
	if !allBaseColors(ctrl.Sequence()) {
		t.Fatalf("colors not at base after finish")
	}
}

func TestStartRejectsSecondRun(t *testing.T) {
	ctrl, broker := newTestController(t, reversedMagnitudes(64))
	finished := make(chan *hooks.RunResult, 1)
	broker.RegisterRunFinished(func(res *hooks.RunResult) { finished <- res })

	if _, err := ctrl.Start("bubble", 2*time.Millisecond); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := ctrl.Start("insertion", 0); !errors.Is(err, ErrAlreadyRunning) {
		t.Fatalf("expected ErrAlreadyRunning, got %v", err)
	}

	if err := ctrl.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if ctrl.IsRunning() {
		t.Fatalf("expected idle controller right after Stop")
	}

	// A fresh run starts cleanly after the previous one unwound.
	if _, err := ctrl.Start("insertion", 0); err != nil {
		t.Fatalf("restart: %v", err)
	}
	res := waitResult(t, finished, "restarted run")
	if res.Algorithm != "insertion" || res.Outcome != hooks.OutcomeCompleted {
		t.Fatalf("unexpected restart result: %+v", res)
	}
	if st := ctrl.Status(); !st.Sorted {
		t.Fatalf("sequence not sorted after restart")
	}
}

func TestStopIsIdempotent(t *testing.T) {
	original := reversedMagnitudes(80)
	ctrl, broker := newTestController(t, original)
	var stops atomic.Int32
	broker.RegisterRunStopped(func(*hooks.RunResult) { stops.Add(1) })

	if _, err := ctrl.Start("bubble", time.Millisecond); err != nil {
		t.Fatalf("Start: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	if err := ctrl.Stop(); err != nil {
		t.Fatalf("first Stop: %v", err)
	}
	if err := ctrl.Stop(); err != nil {
		t.Fatalf("second Stop: %v", err)
	}
	if got := stops.Load(); got != 1 {
		t.Fatalf("expected exactly one stop event, got %d", got)
	}
	if ctrl.IsRunning() {
		t.Fatalf("controller still running after Stop")
	}
	if !core.SameMultiset(original, ctrl.Sequence().Magnitudes()) {
		t.Fatalf("keys duplicated or lost after Stop")
	}
	waitBaseColors(t, ctrl.Sequence())
}

func TestStopWhenIdleIsQuiet(t *testing.T) {
	ctrl, broker := newTestController(t, []int{3, 1, 2})
	var stops atomic.Int32
	broker.RegisterRunStopped(func(*hooks.RunResult) { stops.Add(1) })

	if err := ctrl.Stop(); err != nil {
		t.Fatalf("Stop on idle controller: %v", err)
	}
	if stops.Load() != 0 {
		t.Fatalf("idle stop must not emit events")
	}
	if ctrl.LastResult() != nil {
		t.Fatalf("expected no result before first run")
	}
}

func TestStopDuringCompletionIsRejected(t *testing.T) {
	ctrl, broker := newTestController(t, []int{2, 1})
	completing := make(chan struct{}, 1)
	finished := make(chan *hooks.RunResult, 1)
	broker.RegisterCompletionStarted(func(*hooks.RunContext) { completing <- struct{}{} })
	broker.RegisterRunFinished(func(res *hooks.RunResult) { finished <- res })

	if _, err := ctrl.Start("bubble", 20*time.Millisecond); err != nil {
		t.Fatalf("Start: %v", err)
	}
	select {
	case <-completing:
	case <-time.After(5 * time.Second):
		t.Fatalf("completion never started")
	}

	if !ctrl.IsCompleting() {
		t.Fatalf("expected completing phase")
	}
	if err := ctrl.Stop(); !errors.Is(err, ErrCompleting) {
		t.Fatalf("expected ErrCompleting, got %v", err)
	}

	res := waitResult(t, finished, "completion to finish")
	if res.Outcome != hooks.OutcomeCompleted {
		t.Fatalf("unexpected outcome: %+v", res)
	}
	if ctrl.IsRunning() || ctrl.IsCompleting() {
		t.Fatalf("flags not cleared after completion")
	}
	if !allBaseColors(ctrl.Sequence()) {
		t.Fatalf("colors not restored after completion")
	}
}

func TestSortedInputStillPlaysCompletion(t *testing.T) {
	ctrl, broker := newTestController(t, []int{1, 2, 3})
	var completionSeen atomic.Bool
	finished := make(chan *hooks.RunResult, 1)
	broker.RegisterCompletionStarted(func(*hooks.RunContext) { completionSeen.Store(true) })
	broker.RegisterRunFinished(func(res *hooks.RunResult) { finished <- res })

	if _, err := ctrl.Start("insertion", 5*time.Millisecond); err != nil {
		t.Fatalf("Start: %v", err)
	}
	res := waitResult(t, finished, "run finish")
	if res.Swaps != 0 {
		t.Fatalf("sorted input produced %d swaps", res.Swaps)
	}
	if !completionSeen.Load() {
		t.Fatalf("completion animation skipped for sorted input")
	}
	if !allBaseColors(ctrl.Sequence()) {
		t.Fatalf("colors not restored")
	}
}

func TestShuffleEndsWithoutCompletion(t *testing.T) {
	ctrl, broker := newTestController(t, []int{1, 2, 3, 4, 5, 6, 7, 8})
	var completionSeen atomic.Bool
	finished := make(chan *hooks.RunResult, 1)
	broker.RegisterCompletionStarted(func(*hooks.RunContext) { completionSeen.Store(true) })
	broker.RegisterRunFinished(func(res *hooks.RunResult) { finished <- res })

	if _, err := ctrl.Start("shuffle", 0); err != nil {
		t.Fatalf("Start: %v", err)
	}
	res := waitResult(t, finished, "shuffle finish")
	if res.Outcome != hooks.OutcomeCompleted {
		t.Fatalf("unexpected outcome: %+v", res)
	}
	if completionSeen.Load() {
		t.Fatalf("shuffle must end without the completion animation")
	}
	if !core.SameMultiset([]int{1, 2, 3, 4, 5, 6, 7, 8}, ctrl.Sequence().Magnitudes()) {
		t.Fatalf("shuffle changed the key multiset")
	}
}

func TestStopRequestedFromStepHook(t *testing.T) {
	ctrl, broker := newTestController(t, reversedMagnitudes(32))
	stopped := make(chan *hooks.RunResult, 1)
	broker.RegisterRunStopped(func(res *hooks.RunResult) { stopped <- res })
	broker.RegisterStep(func(sc *hooks.StepContext) {
		if sc.Ordinal == 4 {
			_ = ctrl.Stop()
		}
	})

	id, err := ctrl.Start("insertion", time.Millisecond)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	res := waitResult(t, stopped, "stop from hook")
	if res.RunID != id || res.Outcome != hooks.OutcomeStopped {
		t.Fatalf("unexpected stop result: %+v", res)
	}
	if ctrl.IsRunning() {
		t.Fatalf("controller still running after hook stop")
	}
	waitBaseColors(t, ctrl.Sequence())
}

func TestStartUnknownAlgorithm(t *testing.T) {
	ctrl, _ := newTestController(t, []int{2, 1})
	if _, err := ctrl.Start("bogosort", 0); err == nil {
		t.Fatalf("expected error for unknown algorithm")
	}
	if ctrl.IsRunning() {
		t.Fatalf("failed start must not mark the controller running")
	}
}

func TestReplaceSequenceGatedByRun(t *testing.T) {
	ctrl, _ := newTestController(t, reversedMagnitudes(64))
	next, err := core.NewSequenceOf(testLayout(4, core.OrderSorted), []int{4, 3, 2, 1})
	if err != nil {
		t.Fatalf("NewSequenceOf: %v", err)
	}

	if _, err := ctrl.Start("bubble", time.Millisecond); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := ctrl.ReplaceSequence(next); !errors.Is(err, ErrAlreadyRunning) {
		t.Fatalf("expected ErrAlreadyRunning, got %v", err)
	}

	if err := ctrl.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if err := ctrl.ReplaceSequence(next); err != nil {
		t.Fatalf("ReplaceSequence after stop: %v", err)
	}
	if ctrl.Sequence() != next {
		t.Fatalf("controller not pointing at the new sequence")
	}
}

func TestStatusTracksRunAndLastResult(t *testing.T) {
	ctrl, _ := newTestController(t, reversedMagnitudes(48))

	id, err := ctrl.Start("cocktail", time.Millisecond)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	var st Status
	for {
		st = ctrl.Status()
		if st.Running && st.Comparisons > 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("status never showed progress: %+v", st)
		}
		time.Sleep(time.Millisecond)
	}
	if st.Algorithm != "cocktail" || st.RunID != id {
		t.Fatalf("unexpected status: %+v", st)
	}

	if err := ctrl.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	st = ctrl.Status()
	if st.Running || st.Completing {
		t.Fatalf("status still running after stop: %+v", st)
	}
	if st.Algorithm != "cocktail" {
		t.Fatalf("status lost the last run: %+v", st)
	}
	last := ctrl.LastResult()
	if last == nil || last.Outcome != hooks.OutcomeStopped || last.RunID != id {
		t.Fatalf("unexpected last result: %+v", last)
	}
}
