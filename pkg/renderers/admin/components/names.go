package components

import "github.com/goliatone/go-widgetform/pkg/model"

// Component names registered by NewDefaultRegistry.
const (
	NameInput    = "input"
	NameSelect   = "select"
	NameTextarea = "textarea"
	NameHours    = "hours"
)

// Resolve maps a field to a component name: the form callback wins, then the
// field type. Everything else renders as an input.
func Resolve(field model.Field) string {
	switch field.FormCallback {
	case model.FormCallbackInput:
		return NameInput
	case model.FormCallbackSelect:
		return NameSelect
	case model.FormCallbackTextarea:
		return NameTextarea
	case model.FormCallbackHours:
		return NameHours
	}
	switch field.Type {
	case model.FieldTypeSelect:
		return NameSelect
	case model.FieldTypeTextarea:
		return NameTextarea
	case model.FieldTypeHours:
		return NameHours
	default:
		return NameInput
	}
}
