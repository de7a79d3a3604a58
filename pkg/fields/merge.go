package fields

import (
	"strings"

	"dario.cat/mergo"

	"github.com/goliatone/go-widgetform/pkg/model"
)

// Merge builds the complete field list of a placement from its stored
// instance and the widget schema, then orders it.
//
// Per-instance properties (key, icon, order, id, name, value) are always
// computed here. Everything else comes from the schema entry, falling back to
// model.Defaults. Order is the stored order when positive, otherwise the
// index of the entry in the schema.
func Merge(instance model.Instance, schema model.Schema, options ...Option) []model.Field {
	return Order(MergeUnordered(instance, schema, options...))
}

// MergeUnordered is Merge without the final ordering step. Fields keep schema
// order.
func MergeUnordered(instance model.Instance, schema model.Schema, options ...Option) []model.Field {
	cfg := newConfig(options)

	merged := make([]model.Field, 0, len(schema))
	seen := make(map[string]struct{}, len(schema))

	for index, entry := range schema {
		key := strings.TrimSpace(entry.Key)
		if key == "" {
			cfg.logger.Warn("fields.merge.skip_blank_key", "index", index)
			continue
		}
		if _, dup := seen[key]; dup {
			cfg.logger.Warn("fields.merge.skip_duplicate_key", "key", key)
			continue
		}
		seen[key] = struct{}{}

		field := computed(cfg, instance, key, index)
		if err := mergo.Merge(&field, declared(entry)); err != nil {
			cfg.logger.Error("fields.merge.schema", "key", key, "error", err)
		}
		if field.FormCallback == "" {
			field.FormCallback = model.FormCallbackFor(field.Type)
		}
		if err := mergo.Merge(&field, model.Defaults()); err != nil {
			cfg.logger.Error("fields.merge.defaults", "key", key, "error", err)
		}
		applyFlags(&field, entry)

		field.Sanitizer = resolve(cfg, key, "sanitizer", field.Sanitizer)
		field.Escaper = resolve(cfg, key, "escaper", field.Escaper)

		if field.Type == model.FieldTypeHours || field.FormCallback == model.FormCallbackHours {
			field.Days = days(field.Value, entry.Days)
		}

		merged = append(merged, field)
	}
	return merged
}

// computed returns the per-instance base of key.
func computed(cfg config, instance model.Instance, key string, index int) model.Field {
	field := model.Field{
		Key:   key,
		Icon:  key,
		Order: index,
		ID:    cfg.naming.FieldID(key),
		Name:  cfg.naming.FieldName(key) + "[value]",
	}
	if stored, ok := instance.Lookup(key); ok {
		if stored.Order > 0 {
			field.Order = stored.Order
		}
		if !stored.Value.IsEmpty() {
			field.Value = stored.Value
		}
	}
	return field
}

// declared converts the non-boolean schema properties into a Field so mergo
// can fill the zero values of the computed base.
func declared(entry model.FieldSchema) model.Field {
	return model.Field{
		Label:         entry.Label,
		Description:   entry.Description,
		Class:         entry.Class,
		Type:          entry.Type,
		FormCallback:  entry.FormCallback,
		Default:       entry.Default,
		Placeholder:   entry.Placeholder,
		Atts:          entry.Atts,
		Sanitizer:     entry.Sanitizer,
		Escaper:       entry.Escaper,
		SelectOptions: entry.SelectOptions,
	}
}

// applyFlags writes declared booleans. mergo treats false as unset, so flags
// are applied after the defaults pass.
func applyFlags(field *model.Field, entry model.FieldSchema) {
	if entry.LabelAfter != nil {
		field.LabelAfter = *entry.LabelAfter
	}
	if entry.Sortable != nil {
		field.Sortable = *entry.Sortable
	}
	if entry.ShowFrontEnd != nil {
		field.ShowFrontEnd = *entry.ShowFrontEnd
	}
	if entry.ShowEmpty != nil {
		field.ShowEmpty = *entry.ShowEmpty
	}
}

func resolve(cfg config, key, role string, cb model.Callback) model.Callback {
	resolved, ok := cfg.callbacks.Resolve(cb)
	if !ok {
		cfg.logger.Debug("fields.merge.identity_fallback", "key", key, "role", role, "callback", cb.Name)
	}
	return resolved
}

func days(value model.Value, declared model.Hours) model.Hours {
	switch {
	case len(value.Hours) > 0:
		return value.Hours.Clone()
	case len(declared) > 0:
		return declared.Clone()
	default:
		return model.DefaultWeek()
	}
}
