package hooks

import (
	"sync"
	"time"
)

// PluginCategory represents the high-level role of a plugin.
type PluginCategory string

const (
	// PluginCategoryVisualization covers UI, frame, or timeline plugins.
	PluginCategoryVisualization PluginCategory = "visualization"
	// PluginCategoryInstrumentation covers metrics, tracing, and diagnostics.
	PluginCategoryInstrumentation PluginCategory = "instrumentation"
)

// PluginDescriptor describes a plugin registered with the broker.
type PluginDescriptor struct {
	Name        string
	Category    PluginCategory
	Description string
}

// StepKind identifies which kind of visualized step an algorithm performed.
type StepKind string

const (
	// StepCompare marks a key comparison between two slots.
	StepCompare StepKind = "compare"
	// StepSwap marks an exchange of two slots.
	StepSwap StepKind = "swap"
)

// RunOutcome records how a run ended.
type RunOutcome string

const (
	// OutcomeCompleted means the algorithm ran to its natural end.
	OutcomeCompleted RunOutcome = "completed"
	// OutcomeStopped means the run was cancelled before finishing.
	OutcomeStopped RunOutcome = "stopped"
)

// RunContext carries information for run start and completion hooks.
type RunContext struct {
	RunID     string
	Algorithm string
	Size      int
}

// StepContext provides data for per-step hook handlers. Ordinal counts
// visualized steps from the start of the run, beginning at 1.
type StepContext struct {
	RunID     string
	Algorithm string
	Kind      StepKind
	I         int
	J         int
	Ordinal   uint64
}

// RunResult provides the final accounting for finish and stop hooks.
type RunResult struct {
	RunID       string
	Algorithm   string
	Size        int
	Outcome     RunOutcome
	Comparisons uint64
	Swaps       uint64
	Elapsed     time.Duration
}

// RunStartedHook executes when a run begins, before its first step.
type RunStartedHook func(ctx *RunContext)

// StepHook executes once per visualized step. Handlers run outside the
// sequence lock, so they may inspect the sequence or request a stop.
type StepHook func(ctx *StepContext)

// CompletionStartedHook executes when the completion animation begins.
type CompletionStartedHook func(ctx *RunContext)

// RunFinishedHook executes after a run completed and its animation ended.
type RunFinishedHook func(res *RunResult)

// RunStoppedHook executes after a cancelled run has been cleaned up.
type RunStoppedHook func(res *RunResult)

// HookBundle groups multiple hook handlers that belong to one plugin.
type HookBundle struct {
	RunStarted        []RunStartedHook
	Step              []StepHook
	CompletionStarted []CompletionStartedHook
	RunFinished       []RunFinishedHook
	RunStopped        []RunStoppedHook
}

// PluginBroker coordinates hook registration and triggering.
type PluginBroker struct {
	mu sync.RWMutex

	runStartedHooks        []RunStartedHook
	stepHooks              []StepHook
	completionStartedHooks []CompletionStartedHook
	runFinishedHooks       []RunFinishedHook
	runStoppedHooks        []RunStoppedHook

	pluginCatalog map[PluginCategory][]PluginDescriptor
	pluginIndex   map[string]PluginDescriptor
}

// NewPluginBroker creates an empty broker instance.
func NewPluginBroker() *PluginBroker {
	return &PluginBroker{
		runStartedHooks:        make([]RunStartedHook, 0),
		stepHooks:              make([]StepHook, 0),
		completionStartedHooks: make([]CompletionStartedHook, 0),
		runFinishedHooks:       make([]RunFinishedHook, 0),
		runStoppedHooks:        make([]RunStoppedHook, 0),
		pluginCatalog:          make(map[PluginCategory][]PluginDescriptor),
		pluginIndex:            make(map[string]PluginDescriptor),
	}
}

// RegisterRunStarted adds a new hook executed when a run begins.
func (p *PluginBroker) RegisterRunStarted(h RunStartedHook) {
	if p == nil || h == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.runStartedHooks = append(p.runStartedHooks, h)
}

// RegisterStep adds a new hook executed once per visualized step.
func (p *PluginBroker) RegisterStep(h StepHook) {
	if p == nil || h == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stepHooks = append(p.stepHooks, h)
}

// RegisterCompletionStarted adds a hook for the completion animation start.
func (p *PluginBroker) RegisterCompletionStarted(h CompletionStartedHook) {
	if p == nil || h == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.completionStartedHooks = append(p.completionStartedHooks, h)
}

// RegisterRunFinished adds a hook executed after a completed run settles.
func (p *PluginBroker) RegisterRunFinished(h RunFinishedHook) {
	if p == nil || h == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.runFinishedHooks = append(p.runFinishedHooks, h)
}

// RegisterRunStopped adds a hook executed after a cancelled run settles.
func (p *PluginBroker) RegisterRunStopped(h RunStoppedHook) {
	if p == nil || h == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.runStoppedHooks = append(p.runStoppedHooks, h)
}

// EmitRunStarted triggers all registered run start hooks.
func (p *PluginBroker) EmitRunStarted(ctx *RunContext) {
	if p == nil || ctx == nil {
		return
	}
	p.mu.RLock()
	handlers := make([]RunStartedHook, len(p.runStartedHooks))
	copy(handlers, p.runStartedHooks)
	p.mu.RUnlock()
	for _, handler := range handlers {
		handler(ctx)
	}
}

// EmitStep triggers all registered step hooks.
func (p *PluginBroker) EmitStep(ctx *StepContext) {
	if p == nil || ctx == nil {
		return
	}
	p.mu.RLock()
	handlers := make([]StepHook, len(p.stepHooks))
	copy(handlers, p.stepHooks)
	p.mu.RUnlock()
	for _, handler := range handlers {
		handler(ctx)
	}
}

// EmitCompletionStarted triggers all registered completion start hooks.
func (p *PluginBroker) EmitCompletionStarted(ctx *RunContext) {
	if p == nil || ctx == nil {
		return
	}
	p.mu.RLock()
	handlers := make([]CompletionStartedHook, len(p.completionStartedHooks))
	copy(handlers, p.completionStartedHooks)
	p.mu.RUnlock()
	for _, handler := range handlers {
		handler(ctx)
	}
}

// EmitRunFinished triggers all registered run finish hooks.
func (p *PluginBroker) EmitRunFinished(res *RunResult) {
	if p == nil || res == nil {
		return
	}
	p.mu.RLock()
	handlers := make([]RunFinishedHook, len(p.runFinishedHooks))
	copy(handlers, p.runFinishedHooks)
	p.mu.RUnlock()
	for _, handler := range handlers {
		handler(res)
	}
}

// EmitRunStopped triggers all registered run stop hooks.
func (p *PluginBroker) EmitRunStopped(res *RunResult) {
	if p == nil || res == nil {
		return
	}
	p.mu.RLock()
	handlers := make([]RunStoppedHook, len(p.runStoppedHooks))
	copy(handlers, p.runStoppedHooks)
	p.mu.RUnlock()
	for _, handler := range handlers {
		handler(res)
	}
}

// RegisterBundle registers a plugin descriptor together with all hook handlers.
func (p *PluginBroker) RegisterBundle(desc PluginDescriptor, bundle HookBundle) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	p.registerDescriptorLocked(desc)

	if len(bundle.RunStarted) > 0 {
		p.runStartedHooks = append(p.runStartedHooks, bundle.RunStarted...)
	}
	if len(bundle.Step) > 0 {
		p.stepHooks = append(p.stepHooks, bundle.Step...)
	}
	if len(bundle.CompletionStarted) > 0 {
		p.completionStartedHooks = append(p.completionStartedHooks, bundle.CompletionStarted...)
	}
	if len(bundle.RunFinished) > 0 {
		p.runFinishedHooks = append(p.runFinishedHooks, bundle.RunFinished...)
	}
	if len(bundle.RunStopped) > 0 {
		p.runStoppedHooks = append(p.runStoppedHooks, bundle.RunStopped...)
	}
}

// RegisterPluginMetadata stores plugin metadata without registering hooks.
func (p *PluginBroker) RegisterPluginMetadata(desc PluginDescriptor) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.registerDescriptorLocked(desc)
}

// ListPlugins returns descriptors for plugins in the requested category.
func (p *PluginBroker) ListPlugins(category PluginCategory) []PluginDescriptor {
	if p == nil {
		return nil
	}
	p.mu.RLock()
	defer p.mu.RUnlock()

	catalog := p.pluginCatalog[category]
	if len(catalog) == 0 {
		return nil
	}
	out := make([]PluginDescriptor, len(catalog))
	copy(out, catalog)
	return out
}

// ListAllPlugins returns descriptors of every registered plugin.
func (p *PluginBroker) ListAllPlugins() []PluginDescriptor {
	if p == nil {
		return nil
	}
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]PluginDescriptor, 0, len(p.pluginIndex))
	for _, desc := range p.pluginIndex {
		out = append(out, desc)
	}
	return out
}

func (p *PluginBroker) registerDescriptorLocked(desc PluginDescriptor) {
	if desc.Name == "" {
		return
	}
	if _, exists := p.pluginIndex[desc.Name]; exists {
		return
	}
	p.pluginIndex[desc.Name] = desc
	category := desc.Category
	p.pluginCatalog[category] = append(p.pluginCatalog[category], desc)
}
