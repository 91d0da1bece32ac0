package main

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/go-logr/logr"
	"github.com/pkg/errors"

	"github.com/TexablePlum/Sort-Algoritms/algo"
	"github.com/TexablePlum/Sort-Algoritms/core"
	"github.com/TexablePlum/Sort-Algoritms/hooks"
	"github.com/TexablePlum/Sort-Algoritms/trace"
	"github.com/TexablePlum/Sort-Algoritms/visual"
)

const shuffleAlgorithmName = "shuffle"

// Session owns one sequence and the machinery around it: the run
// controller, the plugin broker with its loaded observers, and the
// visualizer that publishes frames and feeds commands back in.
type Session struct {
	log      logr.Logger
	broker   *hooks.PluginBroker
	registry *hooks.Registry
	tracer   *trace.Recorder
	ctrl     *algo.Controller
	viz      visual.Visualizer
	server   *WebServer

	mu        sync.RWMutex
	cfg       *Config
	tick      uint64
	summaries []RunSummary

	// finished receives the run ID of every settled run. Capacity one
	// suffices because only one run can be in flight.
	finished chan string
}

// NewSession validates cfg, builds the sequence, and wires the controller,
// plugins, and visualizer. The config is owned by the session afterwards.
func NewSession(cfg *Config, log logr.Logger) (*Session, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := ValidateConfig(cfg); err != nil {
		return nil, errors.Wrap(err, "session config")
	}
	if log.GetSink() == nil {
		log = logr.Discard()
	}

	s := &Session{
		log:      log,
		cfg:      cfg,
		broker:   hooks.NewPluginBroker(),
		finished: make(chan string, 1),
	}
	s.registry = hooks.NewRegistry(s.broker)

	s.tracer = trace.NewRecorder(cfg.TraceCapacity)
	if err := s.registry.RegisterPlugin(s.tracer); err != nil {
		return nil, err
	}
	if cfg.MetricsInterval() > 0 {
		meter := newStepMeter(log.WithName("metrics"), cfg.MetricsInterval())
		if err := s.registry.RegisterPlugin(meter); err != nil {
			return nil, err
		}
	}
	if err := s.registry.Load(s.registry.Available()); err != nil {
		return nil, err
	}

	seq, err := buildSequence(cfg)
	if err != nil {
		return nil, err
	}
	palette, err := paletteFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	ctrl, err := algo.NewController(seq, algo.Options{
		Log:     log,
		Broker:  s.broker,
		Seed:    cfg.Seed,
		Palette: palette,
	})
	if err != nil {
		return nil, err
	}
	s.ctrl = ctrl

	s.broker.RegisterRunFinished(s.onRunEnd)
	s.broker.RegisterRunStopped(s.onRunEnd)

	s.initVisualizer()
	return s, nil
}

func buildSequence(cfg *Config) (*core.Sequence, error) {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	seq, err := core.NewSequence(cfg.Layout(), rng)
	if err != nil {
		return nil, errors.Wrap(err, "build sequence")
	}
	return seq, nil
}

func paletteFromConfig(cfg *Config) (algo.Palette, error) {
	active, err := core.ParseColor(cfg.ActiveColor)
	if err != nil {
		return algo.Palette{}, errors.Wrap(err, "active color")
	}
	done, err := core.ParseColor(cfg.DoneColor)
	if err != nil {
		return algo.Palette{}, errors.Wrap(err, "done color")
	}
	return algo.Palette{Active: active, Done: done}, nil
}

func (s *Session) initVisualizer() {
	if s.cfg.Headless {
		s.viz = visual.NewNullVisualizer()
		return
	}
	s.server = NewWebServer(s.cfg.ListenAddr, WebServerOptions{
		Log:        s.log.WithName("web"),
		StatusFunc: s.Status,
		Tracer:     s.tracer,
		StaticDir:  s.cfg.StaticDir,
	})
	viz := NewWebVisualizer(s.server)
	viz.SetHeadless(false)
	s.viz = viz
}

// onRunEnd records the run summary and signals anyone waiting on the run.
func (s *Session) onRunEnd(res *hooks.RunResult) {
	if res == nil {
		return
	}
	sum := summaryFromResult(res)

	s.mu.Lock()
	s.summaries = append(s.summaries, sum)
	if len(s.summaries) > DefaultHistoryLimit {
		s.summaries = s.summaries[len(s.summaries)-DefaultHistoryLimit:]
	}
	s.mu.Unlock()

	select {
	case s.finished <- res.RunID:
	default:
	}
}

// Run serves the session until ctx is cancelled. In headless mode it
// performs a single run of the configured algorithm and returns.
func (s *Session) Run(ctx context.Context) error {
	if s == nil {
		return errors.New("session is nil")
	}
	if s.cfg.Headless {
		return s.runHeadless(ctx)
	}

	s.server.Start()
	s.log.Info("web surface listening",
		"addr", s.cfg.ListenAddr,
		"bars", s.ctrl.Sequence().Len(),
		"algorithm", s.cfg.Algorithm)

	ticker := time.NewTicker(s.cfg.FrameInterval())
	defer ticker.Stop()

	s.publishFrame()
	for {
		select {
		case <-ctx.Done():
			s.shutdown()
			return ctx.Err()
		case <-ticker.C:
			s.drainCommands()
			s.publishFrame()
		}
	}
}

func (s *Session) runHeadless(ctx context.Context) error {
	s.mu.RLock()
	name := s.cfg.Algorithm
	delay := s.cfg.Delay()
	s.mu.RUnlock()

	s.log.Info("headless run", "algorithm", name, "bars", s.ctrl.Sequence().Len(), "delay", delay)
	_, err := s.RunOnce(ctx, name, delay)
	return err
}

// RunOnce starts the named run and blocks until it settles or ctx is
// cancelled. On cancellation the run is stopped and its summary is still
// returned alongside the context error.
func (s *Session) RunOnce(ctx context.Context, name string, delay time.Duration) (RunSummary, error) {
	// Clear a stale notification from a previous run so the wait below
	// cannot match the wrong ID.
	select {
	case <-s.finished:
	default:
	}

	runID, err := s.ctrl.Start(name, delay)
	if err != nil {
		return RunSummary{}, err
	}

	for {
		select {
		case id := <-s.finished:
			if id != runID {
				continue
			}
			sum := s.LastSummary()
			if sum == nil {
				return RunSummary{}, errors.New("run settled without a summary")
			}
			return *sum, nil
		case <-ctx.Done():
			if stopErr := s.ctrl.Stop(); stopErr != nil && !errors.Is(stopErr, algo.ErrCompleting) {
				return RunSummary{}, stopErr
			}
			// Either Stop or the natural finish emits exactly one
			// notification for this run.
			<-s.finished
			sum := s.LastSummary()
			if sum == nil {
				return RunSummary{}, ctx.Err()
			}
			return *sum, ctx.Err()
		}
	}
}

func (s *Session) drainCommands() {
	for {
		cmd, ok := s.viz.NextCommand()
		if !ok {
			return
		}
		if err := s.handleCommand(cmd); err != nil {
			s.log.Info("command rejected", "type", string(cmd.Type), "reason", err.Error())
		}
	}
}

func (s *Session) handleCommand(cmd visual.ControlCommand) error {
	switch cmd.Type {
	case visual.CommandStart:
		return s.startRun(cmd.Algorithm, cmd.DelayMs)
	case visual.CommandStop:
		return s.ctrl.Stop()
	case visual.CommandShuffle:
		return s.startRun(shuffleAlgorithmName, cmd.DelayMs)
	case visual.CommandReset:
		return s.reset(cmd.Scene, 0)
	case visual.CommandSetAlgorithm:
		return s.setAlgorithm(cmd.Algorithm)
	case visual.CommandSetDelay:
		return s.setDelay(cmd.DelayMs)
	case visual.CommandSetCount:
		return s.reset("", cmd.Count)
	case visual.CommandNone:
		return nil
	default:
		return errors.Errorf("unknown command: %s", cmd.Type)
	}
}

func (s *Session) startRun(name string, delayMs int) error {
	s.mu.RLock()
	if name == "" {
		name = s.cfg.Algorithm
	}
	if delayMs < 0 {
		delayMs = s.cfg.DelayMs
	}
	s.mu.RUnlock()

	_, err := s.ctrl.Start(name, time.Duration(delayMs)*time.Millisecond)
	return err
}

func (s *Session) setAlgorithm(name string) error {
	if _, _, err := algo.Lookup(name); err != nil {
		return err
	}
	s.mu.Lock()
	s.cfg.Algorithm = name
	s.mu.Unlock()
	s.log.V(1).Info("algorithm selected", "algorithm", name)
	return nil
}

func (s *Session) setDelay(delayMs int) error {
	if delayMs < 0 {
		return errors.New("delay cannot be negative")
	}
	s.mu.Lock()
	s.cfg.DelayMs = delayMs
	s.mu.Unlock()
	s.log.V(1).Info("delay selected", "delayMs", delayMs)
	return nil
}

// reset rebuilds the sequence, optionally from a named scene or with an
// overridden bar count. A run in progress is stopped first; resets are
// refused while the completion animation plays.
func (s *Session) reset(scene string, count int) error {
	if err := s.ctrl.Stop(); err != nil {
		return err
	}

	s.mu.Lock()
	var next *Config
	if scene != "" {
		next = GetSceneByName(scene)
		if next == nil {
			s.mu.Unlock()
			return errors.Errorf("unknown scene: %s", scene)
		}
		// Scenes choose the workload, not the serving surface.
		next.ListenAddr = s.cfg.ListenAddr
		next.StaticDir = s.cfg.StaticDir
		next.Headless = s.cfg.Headless
		next.FrameIntervalMs = s.cfg.FrameIntervalMs
		next.TraceCapacity = s.cfg.TraceCapacity
		next.MetricsIntervalMs = s.cfg.MetricsIntervalMs
	} else {
		next = s.cfg.Clone()
	}
	if count > 0 {
		next.Count = count
	}
	if err := ValidateConfig(next); err != nil {
		s.mu.Unlock()
		return err
	}
	seq, err := buildSequence(next)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if err := s.ctrl.ReplaceSequence(seq); err != nil {
		s.mu.Unlock()
		return err
	}
	s.cfg = next
	s.mu.Unlock()

	s.tracer.Reset()
	s.log.Info("sequence rebuilt", "bars", next.Count, "order", next.Order, "scene", scene)
	return nil
}

// Status reports the live run state for the web surface.
func (s *Session) Status() RunStatus {
	return statusFromController(s.ctrl.Status())
}

func (s *Session) buildFrame() *VizFrame {
	s.mu.Lock()
	s.tick++
	frame := &VizFrame{
		Tick:       s.tick,
		Count:      s.cfg.Count,
		DelayMs:    s.cfg.DelayMs,
		Algorithm:  s.cfg.Algorithm,
		LayoutHash: computeLayoutHash(s.cfg),
	}
	if n := len(s.summaries); n > 0 {
		last := s.summaries[n-1]
		frame.LastRun = &last
	}
	s.mu.Unlock()

	frame.Lines = s.ctrl.Sequence().Snapshot()
	frame.Status = s.Status()
	return frame
}

func (s *Session) publishFrame() {
	s.viz.PublishFrame(s.buildFrame())
}

// LastSummary returns a copy of the most recent run summary, or nil
// before the first run ended.
func (s *Session) LastSummary() *RunSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.summaries) == 0 {
		return nil
	}
	sum := s.summaries[len(s.summaries)-1]
	return &sum
}

// Summaries returns the retained run history, oldest first.
func (s *Session) Summaries() []RunSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]RunSummary, len(s.summaries))
	copy(out, s.summaries)
	return out
}

func (s *Session) shutdown() {
	if err := s.ctrl.Stop(); err != nil && !errors.Is(err, algo.ErrCompleting) {
		s.log.V(1).Info("stop on shutdown", "reason", err.Error())
	}
	if s.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := s.server.Shutdown(ctx); err != nil {
			s.log.Error(err, "web server shutdown")
		}
	}
	s.log.Info("session closed")
}
