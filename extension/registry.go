// registry.go implements the extension registration system.
//
// Extensions self-register during init(), before main() runs. The registry
// panics on duplicate names following database/sql.Register, and keeps
// registration order so commands and MCP tools are listed deterministically.

package extension

import "sync"

// Registry holds all registered extensions.
var (
	mu       sync.RWMutex
	registry = make(map[string]Extension)
	order    []string // preserve registration order
)

// Register adds an extension to the registry. Called from init() functions.
// A duplicate name is a programmer error and panics.
func Register(e Extension) {
	mu.Lock()
	defer mu.Unlock()

	name := e.Name()
	if _, exists := registry[name]; exists {
		panic("extension already registered: " + name)
	}

	registry[name] = e
	order = append(order, name)
}

// All returns all registered extensions in registration order.
func All() []Extension {
	mu.RLock()
	defer mu.RUnlock()

	exts := make([]Extension, 0, len(order))
	for _, name := range order {
		exts = append(exts, registry[name])
	}
	return exts
}

// Get returns a specific extension by name, or nil if not found.
func Get(name string) Extension {
	mu.RLock()
	defer mu.RUnlock()
	return registry[name]
}

// Names returns the names of all registered extensions.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, len(order))
	copy(names, order)
	return names
}

// Handlers returns the registered extensions that receive events, keyed by
// extension name, in registration order.
func Handlers() []NamedHandler {
	mu.RLock()
	defer mu.RUnlock()

	var out []NamedHandler
	for _, name := range order {
		if h, ok := registry[name].(EventHandler); ok {
			out = append(out, NamedHandler{Name: name, Handler: h})
		}
	}
	return out
}

// NamedHandler pairs an EventHandler with its extension name for logging.
type NamedHandler struct {
	Name    string
	Handler EventHandler
}
