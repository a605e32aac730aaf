package report

import (
	"slices"
	"strings"
	"sync"
)

var (
	registryMu sync.RWMutex
	renderers  = make(map[string]Renderer)
)

// Register makes a renderer available under its Name. Output packages call
// it from init; registering a name twice keeps the latest renderer.
func Register(r Renderer) {
	registryMu.Lock()
	defer registryMu.Unlock()
	renderers[r.Name()] = r
}

// Registry returns the registered renderers ordered by name, so listings and
// render order do not depend on package initialization order.
func Registry() []Renderer {
	registryMu.RLock()
	defer registryMu.RUnlock()
	result := make([]Renderer, 0, len(renderers))
	for _, r := range renderers {
		result = append(result, r)
	}
	slices.SortFunc(result, func(a, b Renderer) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return result
}

// Names returns the names of the given renderers.
func Names(list []Renderer) []string {
	names := make([]string, 0, len(list))
	for _, r := range list {
		names = append(names, r.Name())
	}
	return names
}

// FilterRenderers returns the renderers whose name is listed, keeping the
// order of list.
func FilterRenderers(list []Renderer, names []string) []Renderer {
	var filtered []Renderer
	for _, r := range list {
		if slices.Contains(names, r.Name()) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
