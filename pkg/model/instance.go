package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// InstanceValue is the persisted state of one non-title field.
type InstanceValue struct {
	Value Value `json:"value"`
	Order int   `json:"order"`
}

// Instance is the persisted value set of one widget placement. The title is
// stored as a bare string; every other field as {value, order}.
type Instance struct {
	Title  string
	Fields map[string]InstanceValue
}

// NewInstance returns an empty instance, the state of a freshly placed widget.
func NewInstance() Instance {
	return Instance{Fields: make(map[string]InstanceValue)}
}

// Lookup returns the stored state for key. The title is reported with order 0.
func (i Instance) Lookup(key string) (InstanceValue, bool) {
	if key == TitleKey {
		if i.Title == "" {
			return InstanceValue{}, false
		}
		return InstanceValue{Value: Text(i.Title)}, true
	}
	value, ok := i.Fields[key]
	return value, ok
}

// Set stores value for key, routing the title to its scalar slot.
func (i *Instance) Set(key string, value InstanceValue) {
	if key == TitleKey {
		i.Title = value.Value.Text
		return
	}
	if i.Fields == nil {
		i.Fields = make(map[string]InstanceValue)
	}
	i.Fields[key] = value
}

// Keys returns the stored non-title keys sorted by order, then key.
func (i Instance) Keys() []string {
	keys := make([]string, 0, len(i.Fields))
	for key := range i.Fields {
		keys = append(keys, key)
	}
	sort.SliceStable(keys, func(a, b int) bool {
		left, right := i.Fields[keys[a]], i.Fields[keys[b]]
		if left.Order != right.Order {
			return left.Order < right.Order
		}
		return keys[a] < keys[b]
	})
	return keys
}

// IsEmpty reports whether nothing has been stored yet.
func (i Instance) IsEmpty() bool {
	return i.Title == "" && len(i.Fields) == 0
}

// MarshalJSON keeps the title scalar next to {value, order} objects.
func (i Instance) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(i.Fields)+1)
	for key, value := range i.Fields {
		out[key] = value
	}
	if i.Title != "" {
		out[TitleKey] = i.Title
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads stored instances. Unexpected shapes degrade to empty
// values instead of failing so older rows stay readable.
func (i *Instance) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("model: decode instance: %w", err)
	}

	*i = NewInstance()
	for key, payload := range raw {
		if key == TitleKey {
			i.Title = decodeTitle(payload)
			continue
		}
		i.Fields[key] = decodeInstanceValue(payload)
	}
	return nil
}

func decodeTitle(payload json.RawMessage) string {
	var title string
	if err := json.Unmarshal(payload, &title); err == nil {
		return title
	}
	// Title rows written as objects by older code.
	value := decodeInstanceValue(payload)
	return value.Value.Text
}

func decodeInstanceValue(payload json.RawMessage) InstanceValue {
	var shape struct {
		Value Value           `json:"value"`
		Order json.RawMessage `json:"order"`
	}
	if err := json.Unmarshal(payload, &shape); err != nil {
		return InstanceValue{}
	}
	return InstanceValue{Value: shape.Value, Order: absint(shape.Order)}
}

// absint mirrors the host's absint: numbers and numeric strings become
// non-negative ints, anything else 0.
func absint(raw json.RawMessage) int {
	trimmed := strings.Trim(string(bytes.TrimSpace(raw)), `"`)
	if trimmed == "" {
		return 0
	}
	if n, err := strconv.Atoi(trimmed); err == nil {
		if n < 0 {
			return -n
		}
		return n
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		if f < 0 {
			f = -f
		}
		return int(f)
	}
	return 0
}
