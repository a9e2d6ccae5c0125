// Package registry provides a global registry of built-in scenarios.
// Presets register themselves in init() functions, so commands can list
// and create them without knowing where they come from.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/gridsim/internal/scenario"
)

// Info contains metadata about a registered scenario.
type Info struct {
	ID    string
	Title string
}

// Factory returns a fresh copy of a scenario.
type Factory func() scenario.Scenario

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a scenario factory to the registry.
// Panics if a scenario with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: scenario %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns information about all registered scenarios, sorted by ID.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(factories))
	for id := range factories {
		result = append(result, Info{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create returns the scenario registered under id.
func Create(id string) (scenario.Scenario, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return scenario.Scenario{}, fmt.Errorf("registry: unknown scenario %q", id)
	}
	return f(), nil
}

// Exists checks if a scenario with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
