package main

import (
	"context"
	"testing"
	"time"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/require"

	"github.com/TexablePlum/Sort-Algoritms/algo"
	"github.com/TexablePlum/Sort-Algoritms/hooks"
	"github.com/TexablePlum/Sort-Algoritms/visual"
)

func newHeadlessSession(t *testing.T, cfg *Config) *Session {
	t.Helper()
	if cfg == nil {
		cfg = &Config{}
	}
	cfg.Headless = true
	session, err := NewSession(cfg, logr.Discard())
	require.NoError(t, err)
	return session
}

func TestSessionHeadlessRunOnce(t *testing.T) {
	session := newHeadlessSession(t, &Config{Count: 64, Algorithm: "insertion", Seed: 7})

	sum, err := session.RunOnce(context.Background(), "insertion", 0)
	require.NoError(t, err)

	require.Equal(t, string(hooks.OutcomeCompleted), sum.Outcome)
	require.Equal(t, "insertion", sum.Algorithm)
	require.Equal(t, 64, sum.Size)
	require.NotZero(t, sum.Comparisons)
	require.True(t, session.ctrl.Sequence().IsSorted())
}

func TestSessionRunOnceStopsOnCancel(t *testing.T) {
	session := newHeadlessSession(t, &Config{Count: 256, Algorithm: "bubble", Seed: 3})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	sum, err := session.RunOnce(ctx, "bubble", 5*time.Millisecond)
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, string(hooks.OutcomeStopped), sum.Outcome)
	require.False(t, session.ctrl.IsRunning())
}

func TestSessionStartRejectedWhileRunning(t *testing.T) {
	session := newHeadlessSession(t, &Config{Count: 256, Algorithm: "bubble", Seed: 3})

	require.NoError(t, session.startRun("bubble", 5))
	err := session.startRun("quick", 5)
	require.ErrorIs(t, err, algo.ErrAlreadyRunning)

	require.NoError(t, session.ctrl.Stop())
}

func TestSessionSetDelay(t *testing.T) {
	session := newHeadlessSession(t, &Config{Count: 16})

	require.NoError(t, session.setDelay(80))
	require.Equal(t, 80, session.cfg.DelayMs)

	require.Error(t, session.setDelay(-1))
	require.Equal(t, 80, session.cfg.DelayMs)
}

func TestSessionSetAlgorithm(t *testing.T) {
	session := newHeadlessSession(t, &Config{Count: 16})

	require.NoError(t, session.setAlgorithm("merge"))
	require.Equal(t, "merge", session.cfg.Algorithm)

	require.Error(t, session.setAlgorithm("nope"))
	require.Equal(t, "merge", session.cfg.Algorithm)
}

func TestSessionResetRebuildsSequence(t *testing.T) {
	session := newHeadlessSession(t, &Config{Count: 32, Seed: 11})

	require.NoError(t, session.handleCommand(visual.ControlCommand{
		Type:  visual.CommandSetCount,
		Count: 48,
	}))
	require.Equal(t, 48, session.cfg.Count)
	require.Equal(t, 48, session.ctrl.Sequence().Len())
}

func TestSessionResetToScene(t *testing.T) {
	session := newHeadlessSession(t, &Config{Count: 32, ListenAddr: "10.0.0.1:9999"})

	require.NoError(t, session.reset("classroom", 0))
	require.Equal(t, 60, session.cfg.Count)
	require.Equal(t, "bubble", session.cfg.Algorithm)
	require.Equal(t, 60, session.ctrl.Sequence().Len())

	// Scenes adjust the workload but never the serving surface.
	require.Equal(t, "10.0.0.1:9999", session.cfg.ListenAddr)
	require.True(t, session.cfg.Headless)

	require.Error(t, session.reset("nope", 0))
}

func TestSessionResetRefusedWhileCompleting(t *testing.T) {
	session := newHeadlessSession(t, &Config{Count: 40, Seed: 5})

	completing := make(chan struct{})
	session.broker.RegisterCompletionStarted(func(ctx *hooks.RunContext) {
		close(completing)
	})

	_, err := session.ctrl.Start("insertion", 2*time.Millisecond)
	require.NoError(t, err)

	select {
	case <-completing:
	case <-time.After(5 * time.Second):
		t.Fatal("completion never started")
	}

	err = session.reset("", 0)
	require.ErrorIs(t, err, algo.ErrCompleting)

	// The run is left to finish its sweep.
	sum, waitErr := waitForSummary(session, 5*time.Second)
	require.NoError(t, waitErr)
	require.Equal(t, string(hooks.OutcomeCompleted), sum.Outcome)
}

func waitForSummary(session *Session, timeout time.Duration) (RunSummary, error) {
	select {
	case <-session.finished:
		return *session.LastSummary(), nil
	case <-time.After(timeout):
		return RunSummary{}, context.DeadlineExceeded
	}
}

func TestSessionHistoryBounded(t *testing.T) {
	session := newHeadlessSession(t, &Config{Count: 8, Seed: 2})

	runIDs := map[string]bool{}
	for i := 0; i < DefaultHistoryLimit+8; i++ {
		sum, err := session.RunOnce(context.Background(), "shuffle", 0)
		require.NoError(t, err)
		runIDs[sum.RunID] = true
	}

	history := session.Summaries()
	require.Len(t, history, DefaultHistoryLimit)
	for _, sum := range history {
		require.True(t, runIDs[sum.RunID], "history contains an unknown run %s", sum.RunID)
	}

	last := session.LastSummary()
	require.NotNil(t, last)
	require.Equal(t, history[len(history)-1], *last)
}

func TestSessionBuildFrame(t *testing.T) {
	session := newHeadlessSession(t, &Config{Count: 24, Algorithm: "heap", DelayMs: 10, Seed: 9})

	frame := session.buildFrame()
	require.Equal(t, uint64(1), frame.Tick)
	require.Equal(t, 24, frame.Count)
	require.Equal(t, 10, frame.DelayMs)
	require.Equal(t, "heap", frame.Algorithm)
	require.Len(t, frame.Lines, 24)
	require.Len(t, frame.LayoutHash, LayoutHashLength)
	require.Nil(t, frame.LastRun)
	require.False(t, frame.Status.Running)

	_, err := session.RunOnce(context.Background(), "heap", 0)
	require.NoError(t, err)

	frame = session.buildFrame()
	require.Equal(t, uint64(2), frame.Tick)
	require.NotNil(t, frame.LastRun)
	require.Equal(t, "heap", frame.LastRun.Algorithm)
	require.True(t, frame.Status.Sorted)
}

func TestSessionCommandValidation(t *testing.T) {
	session := newHeadlessSession(t, &Config{Count: 16})

	require.NoError(t, session.handleCommand(visual.ControlCommand{Type: visual.CommandNone}))
	require.Error(t, session.handleCommand(visual.ControlCommand{Type: "bogus"}))
}

func TestSessionTraceObservesRuns(t *testing.T) {
	session := newHeadlessSession(t, &Config{Count: 16, Seed: 4})

	sum, err := session.RunOnce(context.Background(), "selection", 0)
	require.NoError(t, err)

	events := session.tracer.EventsForRun(sum.RunID)
	require.NotEmpty(t, events)
	require.Equal(t, "selection", events[0].Algorithm)
}
