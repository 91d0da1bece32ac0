package main

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/go-logr/logr"
	"github.com/pkg/errors"

	"github.com/TexablePlum/Sort-Algoritms/algo"
)

// BenchmarkResult stores one algorithm's timed run.
type BenchmarkResult struct {
	Algorithm   string
	Size        int
	Comparisons uint64
	Swaps       uint64
	Elapsed     time.Duration
	StepsPerSec float64
}

// RunBenchmark times a single algorithm over a fresh sequence built from
// cfg. Pacing and periodic metrics are disabled so the run measures raw
// stepping speed.
func RunBenchmark(ctx context.Context, name string, cfg *Config, log logr.Logger) (*BenchmarkResult, error) {
	bcfg := cfg.Clone()
	bcfg.Headless = true
	bcfg.Algorithm = name
	bcfg.DelayMs = 0
	bcfg.MetricsIntervalMs = 0

	session, err := NewSession(bcfg, log)
	if err != nil {
		return nil, err
	}
	sum, err := session.RunOnce(ctx, name, 0)
	if err != nil {
		return nil, err
	}

	res := &BenchmarkResult{
		Algorithm:   name,
		Size:        sum.Size,
		Comparisons: sum.Comparisons,
		Swaps:       sum.Swaps,
		Elapsed:     sum.Elapsed,
	}
	if secs := sum.Elapsed.Seconds(); secs > 0 {
		res.StepsPerSec = float64(sum.Comparisons+sum.Swaps) / secs
	}
	return res, nil
}

// RunBenchmarkSuite times every sorting algorithm over identically seeded
// sequences and prints a comparison table.
func RunBenchmarkSuite(ctx context.Context, cfg *Config, log logr.Logger) error {
	base := cfg.Clone()
	if base.Seed == 0 {
		base.Seed = time.Now().UnixNano()
	}
	if err := ValidateConfig(base); err != nil {
		return err
	}

	heading := color.New(color.FgCyan, color.Bold)
	heading.Printf("=== benchmark: %s bars, %s order, seed %d ===\n",
		humanize.Comma(int64(base.Count)), base.Order, base.Seed)
	fmt.Printf("%-12s %14s %14s %14s %14s\n", "ALGORITHM", "COMPARISONS", "SWAPS", "ELAPSED", "STEPS/SEC")

	var fastest *BenchmarkResult
	for _, name := range algo.Names() {
		_, desc, err := algo.Lookup(name)
		if err != nil {
			return err
		}
		if !desc.Sorts {
			continue
		}
		res, err := RunBenchmark(ctx, name, base, log)
		if err != nil {
			return errors.Wrapf(err, "benchmark %s", name)
		}
		fmt.Printf("%-12s %14s %14s %14s %14s\n",
			res.Algorithm,
			humanize.Comma(int64(res.Comparisons)),
			humanize.Comma(int64(res.Swaps)),
			res.Elapsed.Round(time.Microsecond).String(),
			humanize.Commaf(math.Round(res.StepsPerSec)))
		if fastest == nil || res.Elapsed < fastest.Elapsed {
			fastest = res
		}
	}
	if fastest != nil {
		color.New(color.FgGreen).Printf("fastest: %s (%s)\n",
			fastest.Algorithm, fastest.Elapsed.Round(time.Microsecond))
	}
	return nil
}
