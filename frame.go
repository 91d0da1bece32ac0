package main

import (
	"github.com/TexablePlum/Sort-Algoritms/algo"
	"github.com/TexablePlum/Sort-Algoritms/core"
)

// RunStatus mirrors the run controller state for frontends. The renderer
// polls it every frame to decide which controls to enable.
type RunStatus struct {
	Running     bool   `json:"running"`
	Completing  bool   `json:"completing"`
	RunID       string `json:"runId,omitempty"`
	Algorithm   string `json:"algorithm,omitempty"`
	Comparisons uint64 `json:"comparisons"`
	Swaps       uint64 `json:"swaps"`
	ElapsedMs   int64  `json:"elapsedMs"`
	Sorted      bool   `json:"sorted"`
}

func statusFromController(st algo.Status) RunStatus {
	return RunStatus{
		Running:     st.Running,
		Completing:  st.Completing,
		RunID:       st.RunID,
		Algorithm:   st.Algorithm,
		Comparisons: st.Comparisons,
		Swaps:       st.Swaps,
		ElapsedMs:   st.Elapsed.Milliseconds(),
		Sorted:      st.Sorted,
	}
}

// VizFrame aggregates the information required by frontends for one repaint.
type VizFrame struct {
	Tick       uint64              `json:"tick"`
	Lines      []core.LineSnapshot `json:"lines"`
	Status     RunStatus           `json:"status"`
	Count      int                 `json:"count"`
	DelayMs    int                 `json:"delayMs"`
	Algorithm  string              `json:"algorithm"`
	LayoutHash string              `json:"layoutHash,omitempty"`
	LastRun    *RunSummary         `json:"lastRun,omitempty"`
}
