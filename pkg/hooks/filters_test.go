package hooks

import (
	"testing"
)

func TestApplyRunsFiltersByPriorityThenRegistration(t *testing.T) {
	filters := New()
	filters.Add("greeting", 20, func(v any) any { return v.(string) + " late" })
	filters.Add("greeting", 5, func(v any) any { return v.(string) + " early" })
	filters.Add("greeting", DefaultPriority, func(v any) any { return v.(string) + " first-ten" })
	filters.Add("greeting", DefaultPriority, func(v any) any { return v.(string) + " second-ten" })

	got := filters.ApplyString("greeting", "hello")
	want := "hello early first-ten second-ten late"
	if got != want {
		t.Fatalf("ApplyString() = %q, want %q", got, want)
	}
}

func TestApplyWithoutFiltersReturnsValue(t *testing.T) {
	var nilFilters *Filters
	if got := nilFilters.ApplyString(HookHourIncrement, "half_hour"); got != "half_hour" {
		t.Fatalf("nil registry changed value: %q", got)
	}
	if New().Has(HookWidgetTitle) {
		t.Fatalf("expected empty registry to report no filters")
	}
}

func TestApplyStringIgnoresNonStringResults(t *testing.T) {
	filters := New()
	filters.Add(HookHourIncrement, DefaultPriority, Constant(15))

	if got := filters.ApplyString(HookHourIncrement, "half_hour"); got != "half_hour" {
		t.Fatalf("expected non-string result to be ignored, got %q", got)
	}
}

func TestApplyBoolCastsLikeHost(t *testing.T) {
	cases := []struct {
		name  string
		value any
		want  bool
	}{
		{name: "true", value: true, want: true},
		{name: "zero string", value: "0", want: false},
		{name: "empty string", value: "", want: false},
		{name: "string", value: "yes", want: true},
		{name: "zero int", value: 0, want: false},
		{name: "int", value: 1, want: true},
		{name: "nil", value: nil, want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			filters := New()
			filters.Add(HookIgnoreTitle, DefaultPriority, Constant(tc.value))
			if got := filters.ApplyBool(HookIgnoreTitle, false); got != tc.want {
				t.Fatalf("ApplyBool() = %v, want %v", got, tc.want)
			}
		})
	}
}
