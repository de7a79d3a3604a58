package widget

import (
	"github.com/goliatone/go-widgetform/pkg/callbacks"
	"github.com/goliatone/go-widgetform/pkg/model"
	"github.com/goliatone/go-widgetform/pkg/submission"
)

// Update sanitizes a submission into the instance that replaces old.
//
// Fields are rebuilt from old to recover their types and sanitizers.
// Checkboxes missing from the submission are stored as "no" since browsers
// do not post unchecked boxes. Submitted fields are then walked in
// submission order: the title is stored as a sanitized scalar, every other
// field gets the next order starting at 1 and its sanitized value. Keys the
// schema does not declare keep their value unchanged.
func (w *Widget) Update(submitted submission.Submission, old model.Instance) model.Instance {
	merged := w.Fields(old)
	byKey := make(map[string]model.Field, len(merged))
	for _, field := range merged {
		byKey[field.Key] = field
	}

	incoming := submitted.Clone()
	for _, field := range merged {
		if field.Type == model.FieldTypeCheckbox && !incoming.HasValue(field.Key) {
			incoming.Set(field.Key, model.Text(model.CheckboxUnchecked))
		}
	}

	updated := model.NewInstance()
	order := 1
	for _, entry := range incoming.Fields {
		field, known := byKey[entry.Key]
		if !known {
			w.logger.Debug("widget.update.undeclared_field", "key", entry.Key)
			field = model.Field{Key: entry.Key, Sanitizer: model.Identity()}
		}

		if entry.Key == model.TitleKey {
			updated.Title = field.Sanitize(entry.Value.Text)
			continue
		}

		updated.Set(entry.Key, model.InstanceValue{
			Value: sanitizeValue(field, entry.Value),
			Order: order,
		})
		order++
	}

	w.logger.Info("widget.update",
		"widget", w.idBase,
		"number", w.naming.Number,
		"fields", len(updated.Fields),
	)
	return updated
}

// sanitizeValue runs the field sanitizer over text values and over every
// time string of a schedule. Schedule days are stored with paired open and
// closed lists.
func sanitizeValue(field model.Field, value model.Value) model.Value {
	if !value.IsHours() {
		return model.Text(field.Sanitize(value.Text))
	}

	hours := value.Hours.Clone()
	for i := range hours {
		hours[i].Day = callbacks.SanitizeTitle(hours[i].Day)
		for j := range hours[i].Open {
			hours[i].Open[j] = field.Sanitize(hours[i].Open[j])
		}
		for j := range hours[i].Closed {
			hours[i].Closed[j] = field.Sanitize(hours[i].Closed[j])
		}
		hours[i] = hours[i].Paired()
	}
	return model.HoursValue(hours)
}
