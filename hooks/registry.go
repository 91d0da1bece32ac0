package hooks

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
)

// PluginFactory installs a plugin's hooks into the broker.
type PluginFactory func(broker *PluginBroker) error

type registryEntry struct {
	desc    PluginDescriptor
	factory PluginFactory
}

// Registry keeps plugin factories that can be activated via configuration.
type Registry struct {
	mu     sync.RWMutex
	broker *PluginBroker

	factories map[string]registryEntry
}

// NewRegistry creates an empty plugin registry bound to a broker.
func NewRegistry(broker *PluginBroker) *Registry {
	if broker == nil {
		broker = NewPluginBroker()
	}
	return &Registry{
		broker:    broker,
		factories: make(map[string]registryEntry),
	}
}

// Broker returns the underlying broker associated with the registry.
func (r *Registry) Broker() *PluginBroker {
	if r == nil {
		return nil
	}
	return r.broker
}

// Register registers a plugin factory under the provided name.
func (r *Registry) Register(name string, desc PluginDescriptor, factory PluginFactory) error {
	if r == nil {
		return errors.New("registry is nil")
	}
	if name == "" {
		return errors.New("plugin name cannot be empty")
	}
	if factory == nil {
		return errors.New("plugin factory cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return errors.Errorf("plugin already registered: %s", name)
	}

	r.factories[name] = registryEntry{
		desc:    desc,
		factory: factory,
	}
	return nil
}

// RegisterPlugin registers a Plugin implementation under its descriptor name.
func (r *Registry) RegisterPlugin(plugin Plugin) error {
	if plugin == nil {
		return errors.New("plugin cannot be nil")
	}
	desc := plugin.Descriptor()
	return r.Register(desc.Name, desc, plugin.Register)
}

// Load activates the requested plugins in order.
func (r *Registry) Load(names []string) error {
	if r == nil {
		return errors.New("registry is nil")
	}
	for _, name := range names {
		entry, err := r.get(name)
		if err != nil {
			return err
		}
		if err := entry.factory(r.broker); err != nil {
			return errors.Wrapf(err, "plugin %s failed", name)
		}
		r.broker.RegisterPluginMetadata(entry.desc)
	}
	return nil
}

// Descriptor returns metadata registered under the provided name.
func (r *Registry) Descriptor(name string) (PluginDescriptor, bool) {
	if r == nil {
		return PluginDescriptor{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.factories[name]
	if !ok {
		return PluginDescriptor{}, false
	}
	return entry.desc, true
}

// Available returns the sorted names of every registered factory.
func (r *Registry) Available() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) get(name string) (registryEntry, error) {
	r.mu.RLock()
	entry, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return registryEntry{}, errors.Errorf("plugin not found: %s", name)
	}
	return entry, nil
}
