package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
)

func main() {
	var (
		headless   = flag.Bool("headless", false, "Run one algorithm to completion without the web surface")
		benchmark  = flag.Bool("benchmark", false, "Time every sorting algorithm over the same sequence and exit")
		sceneName  = flag.String("scene", "", "Predefined scene name (e.g. 'classroom', 'large_rush')")
		listScenes = flag.Bool("list-scenes", false, "Print the predefined scenes and exit")
		configFile = flag.String("file", "", "YAML configuration file")
		addr       = flag.String("addr", DefaultListenAddr, "Web surface listen address")
		algorithm  = flag.String("algo", "", "Algorithm to run (see /api/algorithms)")
		count      = flag.Int("count", DefaultBarCount, "Number of bars")
		delayMs    = flag.Int("delay", DefaultDelayMs, "Per-step delay in milliseconds (0 disables pacing)")
		order      = flag.String("order", "", "Initial arrangement: shuffled, sorted or reversed")
		seed       = flag.Int64("seed", 0, "Random seed (0 seeds from the clock)")
		verbosity  = flag.Int("v", 0, "Log verbosity")
		logJSON    = flag.Bool("log-json", false, "Emit structured JSON logs instead of console output")
	)
	flag.Parse()

	log, err := newLogger(*verbosity, !*logJSON)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *listScenes {
		for _, scene := range GetPredefinedScenes() {
			fmt.Printf("%-22s %s\n", scene.Name, scene.Description)
		}
		return
	}

	cfg := DefaultConfig()
	switch {
	case *configFile != "":
		cfg, err = LoadConfigFile(*configFile)
		if err != nil {
			log.Error(err, "load configuration")
			os.Exit(1)
		}
	case *sceneName != "":
		if sceneCfg := GetSceneByName(*sceneName); sceneCfg != nil {
			cfg = sceneCfg
		} else {
			fmt.Printf("Warning: scene '%s' not found, using defaults\n", *sceneName)
		}
	}

	// Explicit flags win over the file or scene.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "algo":
			cfg.Algorithm = *algorithm
		case "count":
			cfg.Count = *count
		case "delay":
			cfg.DelayMs = *delayMs
		case "order":
			cfg.Order = *order
		case "seed":
			cfg.Seed = *seed
		case "addr":
			cfg.ListenAddr = *addr
		}
	})
	if *headless {
		cfg.Headless = true
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *benchmark {
		if err := RunBenchmarkSuite(ctx, cfg, log); err != nil {
			log.Error(err, "benchmark failed")
			os.Exit(1)
		}
		return
	}

	session, err := NewSession(cfg, log)
	if err != nil {
		log.Error(err, "session init")
		os.Exit(1)
	}

	if err := session.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error(err, "session ended")
		os.Exit(1)
	}

	if cfg.Headless {
		PrintRunSummary(session.LastSummary())
	}
}
