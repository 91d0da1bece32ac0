package algo

import (
	"testing"
	"time"
)

func TestSweepCompletionRestoresBaseColors(t *testing.T) {
	seq := sequenceOf(t, 1, 2, 3, 4, 5)
	sweepCompletion(seq, DefaultPalette(), 5*time.Millisecond)
	if !allBaseColors(seq) {
		t.Fatalf("sweep left colors off base: %+v", seq.Snapshot())
	}
}

func TestSweepCompletionShowsDoneColor(t *testing.T) {
	seq := sequenceOf(t, 1, 2, 3)
	palette := DefaultPalette()

	done := make(chan struct{})
	go func() {
		sweepCompletion(seq, palette, 10*time.Millisecond)
		close(done)
	}()

	sawDone := false
	deadline := time.Now().Add(2 * time.Second)
	for !sawDone && time.Now().Before(deadline) {
		for _, snap := range seq.Snapshot() {
			if snap.Color == palette.Done {
				sawDone = true
				break
			}
		}
		time.Sleep(time.Millisecond)
	}
	<-done

	if !sawDone {
		t.Fatalf("sweep never showed the done color")
	}
	if !allBaseColors(seq) {
		t.Fatalf("sweep left colors off base")
	}
}

func TestSweepCompletionSkipsAtZeroDelay(t *testing.T) {
	seq := sequenceOf(t, 2, 1)
	palette := DefaultPalette()
	seq.SetColor(palette.Active, 0)

	sweepCompletion(seq, palette, 0)

	snap := seq.Snapshot()
	if snap[0].Color != palette.Active {
		t.Fatalf("zero-delay sweep must not repaint, got %s", snap[0].Color)
	}
}
