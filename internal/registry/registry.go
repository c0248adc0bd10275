// Package registry provides a global registry of simulation variants.
// Variants register themselves in init() functions, allowing the CLI
// to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/coopsim/internal/engine"
)

// ModelInfo contains metadata about a registered variant.
type ModelInfo struct {
	ID             string
	Title          string
	NeedsSelection bool
}

// Factory is a function that creates a new instance of a variant.
type Factory func() engine.Model

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]ModelInfo)
	mu        sync.RWMutex
)

// Register adds a variant factory to the registry.
// Typically called from a variant's init() function.
// Panics if a variant with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: model %q already registered", id))
	}

	factories[id] = f

	m := f()
	infos[id] = ModelInfo{
		ID:             id,
		Title:          m.Title(),
		NeedsSelection: m.NeedsSelection(),
	}
}

// List returns information about all registered variants, sorted by ID.
func List() []ModelInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]ModelInfo, 0, len(factories))
	for id := range factories {
		result = append(result, infos[id])
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a variant by its ID.
// Returns an error if the ID is not registered.
func Create(id string) (engine.Model, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown model %q", id)
	}

	return f(), nil
}

// Exists checks if a variant with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
