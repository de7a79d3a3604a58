package fields

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-widgetform/pkg/callbacks"
	"github.com/goliatone/go-widgetform/pkg/host"
	"github.com/goliatone/go-widgetform/pkg/model"
)

func contactInstance() model.Instance {
	instance := model.NewInstance()
	instance.Title = "Contact"
	instance.Set("phone", model.InstanceValue{Value: model.Text("555"), Order: 2})
	return instance
}

func contactSchema() model.Schema {
	return model.Schema{
		{Key: "title"},
		{Key: "phone", Sortable: model.Bool(true)},
		{Key: "email", Sortable: model.Bool(true)},
	}
}

func keys(fields []model.Field) []string {
	out := make([]string, 0, len(fields))
	for _, field := range fields {
		out = append(out, field.Key)
	}
	return out
}

func TestMergeOrdersTitlePhoneEmail(t *testing.T) {
	merged := Merge(contactInstance(), contactSchema())

	if diff := cmp.Diff([]string{"title", "phone", "email"}, keys(merged)); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	if merged[0].Value.Text != "Contact" {
		t.Fatalf("expected title value, got %q", merged[0].Value.Text)
	}
	if merged[1].Order != 2 || merged[2].Order != 2 {
		t.Fatalf("expected stored and positional orders of 2, got %d and %d", merged[1].Order, merged[2].Order)
	}
}

func TestMergeFillsEveryDefault(t *testing.T) {
	naming := host.WidgetNaming{IDBase: "wpcw_contact", Number: "3"}
	merged := Merge(model.NewInstance(), model.Schema{{Key: "email", Label: "Email"}}, WithNaming(naming))
	field := merged[0]

	want := model.Field{
		Key:          "email",
		Icon:         "email",
		Class:        "widefat",
		ID:           "widget-wpcw_contact-3-email",
		Name:         "widget-wpcw_contact[3][email][value]",
		Label:        "Email",
		Type:         model.FieldTypeText,
		FormCallback: model.FormCallbackInput,
		Sortable:     true,
		ShowFrontEnd: true,
	}
	want.Sanitizer = model.Named(model.DefaultSanitizer)
	want.Escaper = model.Named(model.DefaultEscaper)
	byName := cmp.Comparer(func(a, b model.Callback) bool { return a.Name == b.Name })

	if !field.Sanitizer.Valid() || !field.Escaper.Valid() {
		t.Fatalf("expected default callbacks to resolve")
	}
	if diff := cmp.Diff(want, field, byName); diff != "" {
		t.Fatalf("merged field mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeComputedKeysWinOverSchema(t *testing.T) {
	instance := model.NewInstance()
	instance.Set("fax", model.InstanceValue{Value: model.Text("123"), Order: 7})

	merged := MergeUnordered(instance, model.Schema{{Key: "fax", Class: "custom", Sortable: model.Bool(false), ShowFrontEnd: model.Bool(false)}})
	field := merged[0]

	if field.Order != 7 || field.Value.Text != "123" {
		t.Fatalf("expected stored order/value, got %d %q", field.Order, field.Value.Text)
	}
	if field.Class != "custom" {
		t.Fatalf("expected schema class, got %q", field.Class)
	}
	if field.Sortable || field.ShowFrontEnd {
		t.Fatalf("expected declared false flags to survive defaults")
	}
}

func TestMergeDegradesUnknownCallbacksToIdentity(t *testing.T) {
	registry := callbacks.New()
	merged := Merge(model.NewInstance(), model.Schema{{
		Key:       "note",
		Sanitizer: model.Named("does_not_exist"),
		Escaper:   model.Func("upper", strings.ToUpper),
	}}, WithCallbacks(registry))

	field := merged[0]
	if !field.Sanitizer.Valid() || field.Sanitize("<b>") != "<b>" {
		t.Fatalf("expected identity sanitizer, got %q", field.Sanitize("<b>"))
	}
	if field.Escape("abc") != "ABC" {
		t.Fatalf("expected invocable escaper to be kept")
	}
}

func TestMergeSkipsDuplicateKeys(t *testing.T) {
	merged := Merge(model.NewInstance(), model.Schema{{Key: "phone", Label: "First"}, {Key: "phone", Label: "Second"}, {Key: " "}})
	if len(merged) != 1 || merged[0].Label != "First" {
		t.Fatalf("expected first declaration only, got %+v", keys(merged))
	}
}

func TestMergeHoursDays(t *testing.T) {
	schema := model.Schema{{Key: "hours", Type: model.FieldTypeHours, FormCallback: model.FormCallbackHours}}

	merged := Merge(model.NewInstance(), schema)
	if len(merged[0].Days) != 7 || merged[0].Days[0].Day != "monday" {
		t.Fatalf("expected default week, got %+v", merged[0].Days)
	}

	stored := model.Hours{{Day: "sunday", NotOpen: true}}
	instance := model.NewInstance()
	instance.Set("hours", model.InstanceValue{Value: model.HoursValue(stored), Order: 1})

	merged = Merge(instance, schema)
	if len(merged[0].Days) != 1 || !merged[0].Days[0].NotOpen {
		t.Fatalf("expected stored schedule, got %+v", merged[0].Days)
	}
}

func TestMergeDerivesFormCallbackFromType(t *testing.T) {
	schema := model.Schema{
		{Key: "color", Type: model.FieldTypeSelect},
		{Key: "notes", Type: model.FieldTypeTextarea},
		{Key: "hours", Type: model.FieldTypeHours},
		{Key: "fax", Type: model.FieldTypeTel},
		{Key: "custom", Type: model.FieldTypeSelect, FormCallback: model.FormCallbackInput},
	}

	got := map[string]string{}
	for _, field := range MergeUnordered(model.NewInstance(), schema) {
		got[field.Key] = field.FormCallback
	}
	want := map[string]string{
		"color":  model.FormCallbackSelect,
		"notes":  model.FormCallbackTextarea,
		"hours":  model.FormCallbackHours,
		"fax":    model.FormCallbackInput,
		"custom": model.FormCallbackInput,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("form callbacks mismatch (-want +got):\n%s", diff)
	}
}

func TestOrderIsIdempotent(t *testing.T) {
	fields := []model.Field{
		{Key: "map", Sortable: false, Order: 0},
		{Key: "email", Sortable: true, Order: 3},
		{Key: "title", Sortable: true, Order: 0},
		{Key: "phone", Sortable: true, Order: 1},
		{Key: "fax", Sortable: true, Order: 3},
	}

	once := Order(fields)
	twice := Order(once)

	if diff := cmp.Diff([]string{"title", "phone", "email", "fax", "map"}, keys(once)); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(keys(once), keys(twice)); diff != "" {
		t.Fatalf("re-ordering changed result (-want +got):\n%s", diff)
	}
}

func TestOrderNeverPlacesNonSortableBeforeSortable(t *testing.T) {
	fields := []model.Field{
		{Key: "labels", Sortable: false, Order: 0},
		{Key: "map", Sortable: false, Order: 1},
		{Key: "address", Sortable: true, Order: 99},
	}
	ordered := Order(fields)
	if ordered[0].Key != "address" {
		t.Fatalf("expected sortable field first, got %v", keys(ordered))
	}
	if diff := cmp.Diff([]string{"address", "labels", "map"}, keys(ordered)); diff != "" {
		t.Fatalf("non-sortable fields should keep input order (-want +got):\n%s", diff)
	}
}

func TestOrderDoesNotMutateInput(t *testing.T) {
	fields := []model.Field{{Key: "b", Sortable: true, Order: 2}, {Key: "a", Sortable: true, Order: 1}}
	Order(fields)
	if fields[0].Key != "b" {
		t.Fatalf("expected input slice untouched")
	}
}

func TestIsEmpty(t *testing.T) {
	fields := []model.Field{
		{Key: "title", Value: model.Text("Contact"), ShowFrontEnd: true},
		{Key: "phone", Value: model.Text(""), ShowFrontEnd: true},
		{Key: "secret", Value: model.Text("x"), ShowFrontEnd: false},
		{Key: "zero", Value: model.Text("0"), ShowFrontEnd: true},
	}

	if IsEmpty(fields, false) {
		t.Fatalf("expected title to count as content")
	}
	if !IsEmpty(fields, true) {
		t.Fatalf("expected widget to be empty when ignoring the title")
	}
}
