package fields

import "github.com/goliatone/go-widgetform/pkg/model"

// IsEmpty reports whether no front-end visible field carries a value. The
// title is skipped when ignoreTitle is set.
func IsEmpty(fields []model.Field, ignoreTitle bool) bool {
	for _, field := range fields {
		if field.IsTitle() && ignoreTitle {
			continue
		}
		if !field.Value.IsEmpty() && field.ShowFrontEnd {
			return false
		}
	}
	return true
}
