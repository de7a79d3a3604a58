package widget

import (
	"github.com/goliatone/go-widgetform/pkg/callbacks"
	"github.com/goliatone/go-widgetform/pkg/model"
)

// Contact widget identifiers.
const (
	ContactIDBase = "wpcw_contact"
	ContactName   = "Contact"

	// ContactLabelsKey toggles front-end labels of the contact widget.
	ContactLabelsKey = "labels"
)

// ContactSchema declares the fields of the contact widget.
func ContactSchema() model.Schema {
	return model.Schema{
		{
			Key:         model.TitleKey,
			Label:       "Title:",
			Description: "The title of the widget (optional)",
			Sortable:    model.Bool(false),
		},
		{
			Key:         "email",
			Label:       "Email:",
			Type:        model.FieldTypeEmail,
			Sanitizer:   model.Named(callbacks.NameSanitizeEmail),
			Escaper:     model.Named(callbacks.NameEscHTML),
			Description: "An email address where website visitors can contact you",
		},
		{
			Key:         "phone",
			Label:       "Phone:",
			Type:        model.FieldTypeTel,
			Description: "A phone number that website visitors can call if they have questions",
		},
		{
			Key:         "fax",
			Label:       "Fax:",
			Description: "A fax number that website visitors can use to send important documents",
		},
		{
			Key:          "address",
			Label:        "Address:",
			Type:         model.FieldTypeTextarea,
			FormCallback: model.FormCallbackTextarea,
			Sanitizer:    model.Named(callbacks.NameSanitizeTextareaField),
			Escaper:      model.Named(callbacks.NameEscTextarea),
			Description:  "A physical address where website visitors can go to visit you",
		},
		{
			Key:          "hours",
			Label:        "Hours:",
			Type:         model.FieldTypeHours,
			FormCallback: model.FormCallbackHours,
			Description:  "Your business hours",
			Days:         model.DefaultWeek(),
		},
		{
			Key:          "showmap",
			Label:        "Display map of address?",
			Type:         model.FieldTypeCheckbox,
			LabelAfter:   model.Bool(true),
			Sortable:     model.Bool(false),
			ShowFrontEnd: model.Bool(false),
		},
		{
			Key:          ContactLabelsKey,
			Label:        "Display labels?",
			Type:         model.FieldTypeCheckbox,
			LabelAfter:   model.Bool(true),
			Sortable:     model.Bool(false),
			ShowFrontEnd: model.Bool(false),
		},
	}
}

// NewContact constructs the contact widget.
func NewContact(options ...Option) (*Widget, error) {
	options = append([]Option{WithLabelsKey(ContactLabelsKey)}, options...)
	return New(ContactIDBase, ContactName, ContactSchema(), options...)
}
