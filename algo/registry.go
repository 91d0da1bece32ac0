package algo

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
)

type registryEntry struct {
	desc Descriptor
	algo Algorithm
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]registryEntry)
)

// Register makes an algorithm selectable by name. It is meant to be called
// from init functions and panics on empty or duplicate names.
func Register(desc Descriptor, algo Algorithm) {
	if desc.Name == "" {
		panic("algo: register with empty name")
	}
	if algo == nil {
		panic("algo: register nil algorithm " + desc.Name)
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[desc.Name]; exists {
		panic("algo: duplicate registration " + desc.Name)
	}
	registry[desc.Name] = registryEntry{desc: desc, algo: algo}
}

// Lookup returns the algorithm registered under name.
func Lookup(name string) (Algorithm, Descriptor, error) {
	registryMu.RLock()
	entry, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, Descriptor{}, errors.Errorf("unknown algorithm: %s", name)
	}
	return entry.algo, entry.desc, nil
}

// Names returns the sorted names of every registered algorithm.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Descriptors returns every registered descriptor sorted by name.
func Descriptors() []Descriptor {
	registryMu.RLock()
	defer registryMu.RUnlock()

	descs := make([]Descriptor, 0, len(registry))
	for _, entry := range registry {
		descs = append(descs, entry.desc)
	}
	sort.Slice(descs, func(i, j int) bool { return descs[i].Name < descs[j].Name })
	return descs
}
