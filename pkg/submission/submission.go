// Package submission holds raw widget form submissions in the order the
// browser posted them.
package submission

import (
	"slices"

	"github.com/goliatone/go-widgetform/pkg/model"
)

// Field is one submitted field. HasValue is false when the field was posted
// without a value entry.
type Field struct {
	Key      string
	Value    model.Value
	HasValue bool
}

// Submission is an ordered list of submitted fields with unique keys.
type Submission struct {
	Fields []Field
}

// Set stores value under key, replacing an existing entry in place or
// appending a new one.
func (s *Submission) Set(key string, value model.Value) {
	for i := range s.Fields {
		if s.Fields[i].Key == key {
			s.Fields[i].Value = value
			s.Fields[i].HasValue = true
			return
		}
	}
	s.Fields = append(s.Fields, Field{Key: key, Value: value, HasValue: true})
}

// Lookup returns the entry submitted for key.
func (s Submission) Lookup(key string) (Field, bool) {
	for _, field := range s.Fields {
		if field.Key == key {
			return field, true
		}
	}
	return Field{}, false
}

// HasValue reports whether key was submitted with a value.
func (s Submission) HasValue(key string) bool {
	field, ok := s.Lookup(key)
	return ok && field.HasValue
}

// Keys lists submitted keys in submission order.
func (s Submission) Keys() []string {
	keys := make([]string, 0, len(s.Fields))
	for _, field := range s.Fields {
		keys = append(keys, field.Key)
	}
	return keys
}

// Clone returns a deep copy.
func (s Submission) Clone() Submission {
	fields := slices.Clone(s.Fields)
	for i := range fields {
		fields[i].Value.Hours = fields[i].Value.Hours.Clone()
	}
	return Submission{Fields: fields}
}

func (s *Submission) entry(key string) *Field {
	for i := range s.Fields {
		if s.Fields[i].Key == key {
			return &s.Fields[i]
		}
	}
	s.Fields = append(s.Fields, Field{Key: key})
	return &s.Fields[len(s.Fields)-1]
}
