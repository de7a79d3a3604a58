package hooks

import (
	"sort"
	"strings"
	"sync"
)

// Extension points consulted by the widget.
const (
	// HookHourIncrement selects the time-slot step: "half_hour" or
	// "fifteen_minutes".
	HookHourIncrement = "wpcw_hour_increment"
	// HookIgnoreTitle makes the emptiness check skip the title field.
	HookIgnoreTitle = "wpcw_is_widget_empty_ignore_title"
	// HookWidgetTitle filters the front-end title before it is printed.
	HookWidgetTitle = "widget_title"
)

// DefaultPriority is used by callers that do not care about ordering.
const DefaultPriority = 10

// Filter receives the current value of a hook point and returns the value
// passed to the next filter.
type Filter func(value any) any

type entry struct {
	priority int
	order    int
	fn       Filter
}

// Filters is a registry of named hook points where external code may
// override a value. Lower priorities run first; ties fall back to
// registration order. A nil or empty registry returns values unchanged.
type Filters struct {
	mu      sync.RWMutex
	entries map[string][]entry
	seq     int
}

// New constructs an empty filter registry.
func New() *Filters {
	return &Filters{entries: make(map[string][]entry)}
}

// Add registers fn on hook.
func (f *Filters) Add(hook string, priority int, fn Filter) {
	if f == nil || fn == nil {
		return
	}
	hook = strings.TrimSpace(hook)
	if hook == "" {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.entries == nil {
		f.entries = make(map[string][]entry)
	}
	f.entries[hook] = append(f.entries[hook], entry{
		priority: priority,
		order:    f.seq,
		fn:       fn,
	})
	f.seq++
}

// Has reports whether any filter is registered on hook.
func (f *Filters) Has(hook string) bool {
	if f == nil {
		return false
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.entries[strings.TrimSpace(hook)]) > 0
}

// Apply runs value through every filter registered on hook.
func (f *Filters) Apply(hook string, value any) any {
	if f == nil {
		return value
	}
	f.mu.RLock()
	chain := append([]entry(nil), f.entries[strings.TrimSpace(hook)]...)
	f.mu.RUnlock()

	sort.SliceStable(chain, func(i, j int) bool {
		if chain[i].priority == chain[j].priority {
			return chain[i].order < chain[j].order
		}
		return chain[i].priority < chain[j].priority
	})
	for _, item := range chain {
		value = item.fn(value)
	}
	return value
}

// ApplyString applies hook and coerces the result back to a string. Filters
// returning a non-string leave value unchanged.
func (f *Filters) ApplyString(hook, value string) string {
	if out, ok := f.Apply(hook, value).(string); ok {
		return out
	}
	return value
}

// ApplyBool applies hook and casts the result to bool the way the host does:
// non-empty strings other than "0", non-zero numbers and true are truthy.
func (f *Filters) ApplyBool(hook string, value bool) bool {
	return truthy(f.Apply(hook, value))
}

func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != "" && v != "0"
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	default:
		return true
	}
}

// Constant returns a filter that always yields value.
func Constant(value any) Filter {
	return func(any) any { return value }
}
