package model

// FieldType enumerates the control kinds a widget field can render as.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeSelect   FieldType = "select"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeCheckbox FieldType = "checkbox"
	FieldTypeHours    FieldType = "hours"

	// Input types passed straight through to <input type="...">.
	FieldTypeEmail  FieldType = "email"
	FieldTypeURL    FieldType = "url"
	FieldTypeTel    FieldType = "tel"
	FieldTypeNumber FieldType = "number"
)

// TitleKey names the field that is always ordered first and persisted as a
// scalar.
const TitleKey = "title"

// Form callbacks select the admin component used for a field.
const (
	FormCallbackInput    = "render_form_input"
	FormCallbackSelect   = "render_form_select"
	FormCallbackTextarea = "render_form_textarea"
	FormCallbackHours    = "render_form_hours"
)

// FormCallbackFor returns the form callback a field of type t renders with
// when its schema declares none.
func FormCallbackFor(t FieldType) string {
	switch t {
	case FieldTypeSelect:
		return FormCallbackSelect
	case FieldTypeTextarea:
		return FormCallbackTextarea
	case FieldTypeHours:
		return FormCallbackHours
	default:
		return FormCallbackInput
	}
}

// Checkbox values. Unchecked boxes are not posted by browsers, so the update
// pipeline injects CheckboxUnchecked for them.
const (
	CheckboxChecked   = "yes"
	CheckboxUnchecked = "no"
)

// SelectOption is one entry of a select field. Options render in slice order.
type SelectOption struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// Field is a fully merged field definition ready to render or sanitize.
type Field struct {
	Key           string
	Icon          string
	Class         string
	ID            string
	Name          string
	Label         string
	LabelAfter    bool
	Description   string
	Type          FieldType
	Sanitizer     Callback
	Escaper       Callback
	FormCallback  string
	Default       string
	Value         Value
	Placeholder   string
	Sortable      bool
	Atts          string
	ShowFrontEnd  bool
	ShowEmpty     bool
	SelectOptions []SelectOption
	Order         int

	// Days carries the per-day schedule of hours fields.
	Days Hours
	// Disabled is set on hours controls of days marked as not open.
	Disabled bool
}

// IsTitle reports whether the field is the pinned title field.
func (f Field) IsTitle() bool {
	return f.Key == TitleKey
}

// Escape runs value through the field escaper.
func (f Field) Escape(value string) string {
	return f.Escaper.Call(value)
}

// Sanitize runs value through the field sanitizer.
func (f Field) Sanitize(value string) string {
	return f.Sanitizer.Call(value)
}

// FieldSchema is a partial field definition. Empty strings and nil pointers
// mean "not declared" and fall back to Defaults. Key, icon, order, id, name
// and value are always computed by the merger and cannot be declared here.
type FieldSchema struct {
	Key           string         `json:"key" yaml:"key"`
	Label         string         `json:"label,omitempty" yaml:"label,omitempty"`
	Description   string         `json:"description,omitempty" yaml:"description,omitempty"`
	Class         string         `json:"class,omitempty" yaml:"class,omitempty"`
	Type          FieldType      `json:"type,omitempty" yaml:"type,omitempty"`
	FormCallback  string         `json:"form_callback,omitempty" yaml:"form_callback,omitempty"`
	Default       string         `json:"default,omitempty" yaml:"default,omitempty"`
	Placeholder   string         `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Atts          string         `json:"atts,omitempty" yaml:"atts,omitempty"`
	LabelAfter    *bool          `json:"label_after,omitempty" yaml:"label_after,omitempty"`
	Sortable      *bool          `json:"sortable,omitempty" yaml:"sortable,omitempty"`
	ShowFrontEnd  *bool          `json:"show_front_end,omitempty" yaml:"show_front_end,omitempty"`
	ShowEmpty     *bool          `json:"show_empty,omitempty" yaml:"show_empty,omitempty"`
	Sanitizer     Callback       `json:"sanitizer,omitempty" yaml:"sanitizer,omitempty"`
	Escaper       Callback       `json:"escaper,omitempty" yaml:"escaper,omitempty"`
	SelectOptions []SelectOption `json:"select_options,omitempty" yaml:"select_options,omitempty"`
	Days          Hours          `json:"days,omitempty" yaml:"days,omitempty"`
}

// Schema is an ordered list of field schemas. Iteration order drives the
// default order assigned to fields without a stored order.
type Schema []FieldSchema

// Lookup returns the first schema entry declared for key.
func (s Schema) Lookup(key string) (FieldSchema, bool) {
	for _, entry := range s {
		if entry.Key == key {
			return entry, true
		}
	}
	return FieldSchema{}, false
}

// Keys lists schema keys in declaration order.
func (s Schema) Keys() []string {
	keys := make([]string, 0, len(s))
	for _, entry := range s {
		keys = append(keys, entry.Key)
	}
	return keys
}

// Bool returns a pointer to v for FieldSchema flags.
func Bool(v bool) *bool {
	return &v
}

// Sanitizer and escaper names used by the defaults table.
const (
	DefaultSanitizer = "sanitize_text_field"
	DefaultEscaper   = "esc_html"
)

// Defaults returns the global field defaults table. Callbacks are returned as
// names and resolved by the merger.
func Defaults() Field {
	return Field{
		Class:        "widefat",
		Type:         FieldTypeText,
		Sanitizer:    Named(DefaultSanitizer),
		Escaper:      Named(DefaultEscaper),
		FormCallback: FormCallbackInput,
		Sortable:     true,
		ShowFrontEnd: true,
	}
}
