package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/TexablePlum/Sort-Algoritms/hooks"
)

// RunSummary is the retained record of one finished or stopped run.
type RunSummary struct {
	RunID       string        `json:"runId"`
	Algorithm   string        `json:"algorithm"`
	Size        int           `json:"size"`
	Outcome     string        `json:"outcome"`
	Comparisons uint64        `json:"comparisons"`
	Swaps       uint64        `json:"swaps"`
	Elapsed     time.Duration `json:"-"`
	ElapsedMs   int64         `json:"elapsedMs"`
	FinishedAt  time.Time     `json:"finishedAt"`
}

func summaryFromResult(res *hooks.RunResult) RunSummary {
	if res == nil {
		return RunSummary{}
	}
	return RunSummary{
		RunID:       res.RunID,
		Algorithm:   res.Algorithm,
		Size:        res.Size,
		Outcome:     string(res.Outcome),
		Comparisons: res.Comparisons,
		Swaps:       res.Swaps,
		Elapsed:     res.Elapsed,
		ElapsedMs:   res.Elapsed.Milliseconds(),
		FinishedAt:  time.Now(),
	}
}

// PrintRunSummary writes a per-run report to stdout.
func PrintRunSummary(sum *RunSummary) {
	if sum == nil {
		fmt.Println("no runs recorded")
		return
	}

	heading := color.New(color.FgCyan, color.Bold)
	heading.Printf("=== %s over %s bars ===\n", sum.Algorithm, humanize.Comma(int64(sum.Size)))

	outcome := color.New(color.FgGreen)
	if sum.Outcome != string(hooks.OutcomeCompleted) {
		outcome = color.New(color.FgYellow)
	}
	outcome.Printf("outcome:     %s\n", sum.Outcome)

	fmt.Printf("comparisons: %s\n", humanize.Comma(int64(sum.Comparisons)))
	fmt.Printf("swaps:       %s\n", humanize.Comma(int64(sum.Swaps)))
	fmt.Printf("elapsed:     %s\n", sum.Elapsed)
	fmt.Printf("finished:    %s\n", humanize.Time(sum.FinishedAt))
}
