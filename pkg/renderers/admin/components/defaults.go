package components

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-widgetform/pkg/model"
)

// Asset handle of the admin script that drives sortables and the hours
// editor.
const AdminScriptHandle = "wpcw-admin"

// NewDefaultRegistry returns a registry with the input, select, textarea and
// hours components.
func NewDefaultRegistry() *Registry {
	registry := New()

	registry.MustRegister(NameInput, Descriptor{Renderer: inputRenderer, Assets: []string{AdminScriptHandle}})
	registry.MustRegister(NameSelect, Descriptor{Renderer: selectRenderer, Assets: []string{AdminScriptHandle}})
	registry.MustRegister(NameTextarea, Descriptor{Renderer: textareaRenderer, Assets: []string{AdminScriptHandle}})
	registry.MustRegister(NameHours, Descriptor{Renderer: hoursRenderer, Assets: []string{AdminScriptHandle, "jquery"}})

	return registry
}

func inputRenderer(buf *bytes.Buffer, field model.Field, _ ComponentData) error {
	var b strings.Builder
	beforeField(&b, field)

	value := field.Value.Text
	atts := field.Atts
	if field.Type == model.FieldTypeCheckbox {
		value = model.CheckboxChecked
		if checked := Checked(model.CheckboxChecked, field.Value.Text); checked != "" {
			atts = strings.TrimSpace(atts + " " + checked)
		}
	}

	fmt.Fprintf(&b, `<input class="%s" id="%s" name="%s" type="%s" value="%s" placeholder="%s" autocomplete="off" %s>`,
		field.Escape(field.Class),
		field.Escape(field.ID),
		field.Escape(field.Name),
		field.Escape(string(field.Type)),
		field.Escape(value),
		field.Escape(field.Placeholder),
		field.Escape(atts),
	)

	afterField(&b, field)
	buf.WriteString(b.String())
	return nil
}

func selectRenderer(buf *bytes.Buffer, field model.Field, data ComponentData) error {
	var b strings.Builder
	beforeField(&b, field)

	fmt.Fprintf(&b, `<select class="%s" id="%s" name="%s" autocomplete="off">`,
		field.Escape(field.Class),
		field.Escape(field.ID),
		field.Escape(field.Name),
	)
	for _, option := range field.SelectOptions {
		selected := ""
		if optionSelected(field.Value.Text, option.Value, data.StrictSelect) {
			selected = "selected"
		}
		fmt.Fprintf(&b, `<option value="%s" %s>%s</option>`,
			field.Escape(option.Value),
			selected,
			field.Escape(option.Label),
		)
	}
	b.WriteString(`</select>`)

	afterField(&b, field)
	buf.WriteString(b.String())
	return nil
}

// optionSelected compares the stored value with an option value. Loose mode
// treats numeric strings as numbers, so "1" matches "01" and "1.0".
func optionSelected(current, option string, strict bool) bool {
	if strict || current == option {
		return current == option
	}
	left, errLeft := strconv.ParseFloat(strings.TrimSpace(current), 64)
	right, errRight := strconv.ParseFloat(strings.TrimSpace(option), 64)
	if errLeft != nil || errRight != nil {
		return false
	}
	return left == right
}

func textareaRenderer(buf *bytes.Buffer, field model.Field, _ ComponentData) error {
	var b strings.Builder
	beforeField(&b, field)

	fmt.Fprintf(&b, `<textarea class="%s" id="%s" name="%s" placeholder="%s">%s</textarea>`,
		field.Escape(field.Class),
		field.Escape(field.ID),
		field.Escape(field.Name),
		field.Escape(field.Placeholder),
		field.Escape(field.Value.Text),
	)

	afterField(&b, field)
	buf.WriteString(b.String())
	return nil
}

func hoursRenderer(buf *bytes.Buffer, field model.Field, data ComponentData) error {
	var b strings.Builder
	beforeField(&b, field)
	for index, day := range field.Days {
		b.WriteString(RenderDay(field, day, index == 0, data))
	}
	afterField(&b, field)
	buf.WriteString(b.String())
	return nil
}
