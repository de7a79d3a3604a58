package components

import "dario.cat/mergo"

// Labels holds the user-visible strings of the admin form.
type Labels struct {
	Open       string
	Closed     string
	ClosedBox  string
	ApplyToAll string
	Add        string
}

// DefaultLabels returns the English labels.
func DefaultLabels() Labels {
	return Labels{
		Open:       "OPEN",
		Closed:     "CLOSED",
		ClosedBox:  "Closed",
		ApplyToAll: "Apply to All",
		Add:        "Add",
	}
}

// WithDefaults fills blank labels from DefaultLabels.
func (l Labels) WithDefaults() Labels {
	_ = mergo.Merge(&l, DefaultLabels())
	return l
}
