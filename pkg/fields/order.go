package fields

import (
	"slices"

	"github.com/goliatone/go-widgetform/pkg/model"
)

// Compare orders two fields. The title comes first and non-sortable fields
// sort after sortable ones. Sortable fields ascend by Order. Ties return 0,
// so the stable sort keeps input order for them.
func Compare(a, b model.Field) int {
	switch {
	case a.IsTitle() && b.IsTitle():
		return 0
	case a.IsTitle():
		return -1
	case b.IsTitle():
		return 1
	case !a.Sortable && !b.Sortable:
		return 0
	case !a.Sortable:
		return 1
	case !b.Sortable:
		return -1
	case a.Order < b.Order:
		return -1
	case a.Order > b.Order:
		return 1
	default:
		return 0
	}
}

// Order returns a sorted copy of fields. Re-ordering an ordered list returns
// it unchanged.
func Order(fields []model.Field) []model.Field {
	ordered := slices.Clone(fields)
	slices.SortStableFunc(ordered, Compare)
	return ordered
}
