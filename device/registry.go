package device

import (
	"fmt"
	"sort"
	"sync"

	"github.com/gogpu/g3d"
)

// Factory creates a graphics context. Factories are registered via
// Register and called by Open.
type Factory func(cfg Config) (Context, error)

// Registry state - protected by mutex for thread-safe access.
var (
	registryMu sync.RWMutex
	factories  = make(map[string]Factory)
)

// Register registers a backend factory with the given name.
// This function is typically called from init() in backend packages:
//
//	func init() {
//	    device.Register("opengl", func(cfg device.Config) (device.Context, error) {
//	        return New(cfg)
//	    })
//	}
//
// Register panics if factory is nil or a backend with the same name is
// already registered.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if factory == nil {
		panic("device: Register factory is nil")
	}
	if _, dup := factories[name]; dup {
		panic("device: Register called twice for " + name)
	}
	factories[name] = factory
}

// Unregister removes a backend from the registry.
// This is primarily useful for testing. Unknown names are a no-op.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(factories, name)
}

// Open creates a graphics context with the named backend.
// The error wraps ErrUnknownBackend when the name is not registered.
func Open(name string, cfg Config) (Context, error) {
	registryMu.RLock()
	factory, ok := factories[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q (forgotten import?)", ErrUnknownBackend, name)
	}
	ctx, err := factory(cfg)
	if err != nil {
		return nil, fmt.Errorf("device: open %q: %w", name, err)
	}
	g3d.Logger().Info("device: backend opened", "backend", name, "width", cfg.Width, "height", cfg.Height)
	return ctx, nil
}

// Backends returns the registered backend names in alphabetical order.
func Backends() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered reports whether a backend with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := factories[name]
	return ok
}
