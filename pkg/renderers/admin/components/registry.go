package components

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/goliatone/go-widgetform/pkg/model"
)

// Renderer writes the admin markup of one field into buf.
type Renderer func(buf *bytes.Buffer, field model.Field, data ComponentData) error

// ComponentData carries per-form settings shared by every component.
type ComponentData struct {
	// TimeSlots are the labels offered by the hours selects.
	TimeSlots []string
	// StrictSelect switches select pre-selection to exact matching.
	StrictSelect bool
	Labels       Labels
}

// Descriptor bundles a renderer with the asset handles it depends on.
type Descriptor struct {
	Name     string
	Renderer Renderer
	Assets   []string
}

// Registry tracks component descriptors keyed by name.
type Registry struct {
	mu         sync.RWMutex
	components map[string]Descriptor
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{components: make(map[string]Descriptor)}
}

// Register associates descriptor with name, replacing existing entries.
func (r *Registry) Register(name string, descriptor Descriptor) error {
	if name = normalize(name); name == "" {
		return fmt.Errorf("components: component name is required")
	}
	if descriptor.Renderer == nil {
		return fmt.Errorf("components: renderer for %q is nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	descriptor.Name = name
	descriptor.Assets = slices.Clone(descriptor.Assets)
	r.components[name] = descriptor
	return nil
}

// MustRegister mirrors Register but panics on error.
func (r *Registry) MustRegister(name string, descriptor Descriptor) {
	if err := r.Register(name, descriptor); err != nil {
		panic(err)
	}
}

// Descriptor fetches a descriptor by name.
func (r *Registry) Descriptor(name string) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	descriptor, ok := r.components[normalize(name)]
	if !ok {
		return Descriptor{}, false
	}
	descriptor.Assets = slices.Clone(descriptor.Assets)
	return descriptor, true
}

// Assets returns the unique asset handles of the named components in first
// use order.
func (r *Registry) Assets(names []string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var handles []string
	for _, name := range names {
		descriptor, ok := r.components[normalize(name)]
		if !ok {
			continue
		}
		for _, handle := range descriptor.Assets {
			if handle != "" && !slices.Contains(handles, handle) {
				handles = append(handles, handle)
			}
		}
	}
	return handles
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
