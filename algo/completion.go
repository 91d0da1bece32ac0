package algo

import (
	"time"

	"github.com/TexablePlum/Sort-Algoritms/core"
)

const (
	// completionStepCap bounds the per-slot sweep interval so slow runs
	// still finish the animation promptly.
	completionStepCap = 20 * time.Millisecond
	// completionHold is how long the fully colored sequence stays on
	// screen before colors return to base.
	completionHold = 400 * time.Millisecond
)

// sweepCompletion plays the completion animation: slots turn the done
// color left to right, the colored sequence holds, then every slot returns
// to the base color. The sweep cannot be cancelled. A zero delay skips the
// animation entirely so instant runs settle without color churn.
func sweepCompletion(seq *core.Sequence, palette Palette, delay time.Duration) {
	if seq == nil || delay <= 0 {
		return
	}
	step := delay
	if step > completionStepCap {
		step = completionStepCap
	}
	n := seq.Len()
	for i := 0; i < n; i++ {
		seq.SetColor(palette.Done, i)
		time.Sleep(step)
	}
	time.Sleep(completionHold)
	seq.ResetColors()
}
