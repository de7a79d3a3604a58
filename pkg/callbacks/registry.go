package callbacks

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/goliatone/go-widgetform/pkg/model"
)

// Registry maps callback names to string transforms. Sanitizers and escapers
// declared by name in a schema are resolved against it once, at merge time.
type Registry struct {
	mu    sync.RWMutex
	funcs map[string]func(string) string
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{funcs: make(map[string]func(string) string)}
}

// Clone returns a copy that can be extended without touching r.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cloned := New()
	for name, fn := range r.funcs {
		cloned.funcs[name] = fn
	}
	return cloned
}

// Register associates fn with name. Existing entries are replaced.
func (r *Registry) Register(name string, fn func(string) string) error {
	if name = normalize(name); name == "" {
		return fmt.Errorf("callbacks: callback name is required")
	}
	if fn == nil {
		return fmt.Errorf("callbacks: function for %q is nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.funcs[name] = fn
	return nil
}

// MustRegister mirrors Register but panics on error.
func (r *Registry) MustRegister(name string, fn func(string) string) {
	if err := r.Register(name, fn); err != nil {
		panic(err)
	}
}

// Lookup returns the callback registered under name.
func (r *Registry) Lookup(name string) (model.Callback, bool) {
	if r == nil {
		return model.Callback{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	fn, ok := r.funcs[normalize(name)]
	if !ok {
		return model.Callback{}, false
	}
	return model.Func(normalize(name), fn), true
}

// Resolve turns cb into an invocable callback. Callbacks that already carry a
// function are kept; named ones are looked up. Anything else degrades to
// identity and ok reports false.
func (r *Registry) Resolve(cb model.Callback) (resolved model.Callback, ok bool) {
	if cb.Valid() {
		return cb, true
	}
	if found, exists := r.Lookup(cb.Name); exists {
		return found, true
	}
	return model.Identity(), false
}

// Names returns the registered names sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
