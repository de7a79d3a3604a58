package model

import (
	"encoding/json"
	"strings"
)

// Callback is a tagged reference to a string transform. Name identifies the
// transform in a callback registry; Fn is the resolved function. A callback
// without Fn is unresolved and behaves as identity when called.
type Callback struct {
	Name string
	Fn   func(string) string
}

// Named returns an unresolved callback referring to name.
func Named(name string) Callback {
	return Callback{Name: strings.TrimSpace(name)}
}

// Func wraps fn under name.
func Func(name string, fn func(string) string) Callback {
	return Callback{Name: strings.TrimSpace(name), Fn: fn}
}

// Identity returns the pass-through callback invalid callables degrade to.
func Identity() Callback {
	return Callback{Name: "identity", Fn: identity}
}

func identity(value string) string { return value }

// Valid reports whether the callback can be invoked.
func (c Callback) Valid() bool {
	return c.Fn != nil
}

// IsZero reports whether nothing was declared.
func (c Callback) IsZero() bool {
	return c.Name == "" && c.Fn == nil
}

// Call applies the callback, returning value unchanged when unresolved.
func (c Callback) Call(value string) string {
	if c.Fn == nil {
		return value
	}
	return c.Fn(value)
}

// MarshalJSON encodes the callback by name.
func (c Callback) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Name)
}

// UnmarshalJSON decodes a callback name.
func (c *Callback) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	*c = Named(name)
	return nil
}

// UnmarshalYAML decodes a callback name from YAML schema files.
func (c *Callback) UnmarshalYAML(unmarshal func(any) error) error {
	var name string
	if err := unmarshal(&name); err != nil {
		return err
	}
	*c = Named(name)
	return nil
}
