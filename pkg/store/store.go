// Package store persists widget instances keyed by widget type and placement
// number.
package store

import (
	"context"
	"slices"
	"sync"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-widgetform/pkg/model"
)

// ErrInstanceNotFound is returned when a placement has no stored instance.
var ErrInstanceNotFound = goerrors.New("widget instance not found", goerrors.CategoryNotFound).
	WithTextCode("INSTANCE_NOT_FOUND")

// Store reads and writes widget instances.
type Store interface {
	Get(ctx context.Context, idBase, number string) (model.Instance, error)
	Save(ctx context.Context, idBase, number string, instance model.Instance) error
	Delete(ctx context.Context, idBase, number string) error
	// List returns the placement numbers stored for idBase, sorted.
	List(ctx context.Context, idBase string) ([]string, error)
}

// Memory keeps instances in process memory.
type Memory struct {
	mu        sync.RWMutex
	instances map[string]map[string]model.Instance
}

var _ Store = (*Memory)(nil)

// NewMemory constructs an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{instances: make(map[string]map[string]model.Instance)}
}

func (m *Memory) Get(_ context.Context, idBase, number string) (model.Instance, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	instance, ok := m.instances[idBase][number]
	if !ok {
		return model.Instance{}, ErrInstanceNotFound
	}
	return Copy(instance), nil
}

func (m *Memory) Save(_ context.Context, idBase, number string, instance model.Instance) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.instances[idBase] == nil {
		m.instances[idBase] = make(map[string]model.Instance)
	}
	m.instances[idBase][number] = Copy(instance)
	return nil
}

func (m *Memory) Delete(_ context.Context, idBase, number string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.instances[idBase][number]; !ok {
		return ErrInstanceNotFound
	}
	delete(m.instances[idBase], number)
	return nil
}

func (m *Memory) List(_ context.Context, idBase string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	numbers := make([]string, 0, len(m.instances[idBase]))
	for number := range m.instances[idBase] {
		numbers = append(numbers, number)
	}
	slices.Sort(numbers)
	return numbers, nil
}

// Copy returns a deep copy of instance.
func Copy(instance model.Instance) model.Instance {
	out := model.NewInstance()
	out.Title = instance.Title
	for key, value := range instance.Fields {
		value.Value.Hours = value.Value.Hours.Clone()
		out.Fields[key] = value
	}
	return out
}
