package model

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestInstanceMarshalKeepsTitleScalar(t *testing.T) {
	instance := NewInstance()
	instance.Set(TitleKey, InstanceValue{Value: Text("Contact")})
	instance.Set("phone", InstanceValue{Value: Text("555"), Order: 2})

	payload, err := json.Marshal(instance)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	want := `{"phone":{"value":"555","order":2},"title":"Contact"}`
	if string(payload) != want {
		t.Fatalf("unexpected payload\nwant: %s\n got: %s", want, payload)
	}
}

func TestInstanceUnmarshalToleratesLegacyShapes(t *testing.T) {
	payload := `{
		"title": {"value": "Legacy"},
		"phone": {"value": "555", "order": "3"},
		"fax": {"value": 42, "order": -1},
		"broken": {"value": {"nested": true}, "order": 4},
		"hours": {"value": [{"day": "monday", "not_open": false, "open": ["9:00 AM"], "closed": ["5:00 PM"]}], "order": 5}
	}`

	var instance Instance
	if err := json.Unmarshal([]byte(payload), &instance); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if instance.Title != "Legacy" {
		t.Fatalf("expected legacy title to be read, got %q", instance.Title)
	}

	want := map[string]InstanceValue{
		"phone":  {Value: Text("555"), Order: 3},
		"fax":    {Value: Text("42"), Order: 1},
		"broken": {},
		"hours": {
			Value: HoursValue(Hours{{Day: "monday", Open: []string{"9:00 AM"}, Closed: []string{"5:00 PM"}}}),
			Order: 5,
		},
	}
	if diff := cmp.Diff(want, instance.Fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestInstanceKeysFollowOrder(t *testing.T) {
	instance := NewInstance()
	instance.Set("email", InstanceValue{Value: Text("a@b.c"), Order: 2})
	instance.Set("phone", InstanceValue{Value: Text("555"), Order: 1})
	instance.Set("fax", InstanceValue{Value: Text("556"), Order: 2})

	if diff := cmp.Diff([]string{"phone", "email", "fax"}, instance.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
}

func TestValueEmptiness(t *testing.T) {
	cases := []struct {
		name  string
		value Value
		empty bool
	}{
		{name: "blank", value: Text(""), empty: true},
		{name: "zero string", value: Text("0"), empty: true},
		{name: "text", value: Text("555"), empty: false},
		{name: "empty schedule", value: HoursValue(Hours{}), empty: true},
		{name: "schedule", value: HoursValue(DefaultWeek()), empty: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.value.IsEmpty(); got != tc.empty {
				t.Fatalf("IsEmpty() = %v, want %v", got, tc.empty)
			}
		})
	}
}

func TestDayHoursRowAccessors(t *testing.T) {
	day := DayHours{Day: "monday", Open: []string{"9:00 AM", "1:00 PM"}, Closed: []string{"12:00 PM"}}

	if day.Rows() != 2 {
		t.Fatalf("expected 2 rows, got %d", day.Rows())
	}
	if got := day.ClosedAt(2); got != "" {
		t.Fatalf("expected missing closing time to be blank, got %q", got)
	}
	if got := day.OpenAt(2); got != "1:00 PM" {
		t.Fatalf("expected second opening time, got %q", got)
	}
	if got := day.String(); got != "monday: 9:00 AM - 12:00 PM, 1:00 PM - " {
		t.Fatalf("unexpected summary %q", got)
	}
}

func TestDayHoursPairedPadsShorterList(t *testing.T) {
	day := DayHours{Day: "monday", Open: []string{"9:00 AM", "1:00 PM"}, Closed: []string{"12:00 PM"}}

	paired := day.Paired()
	want := DayHours{Day: "monday", Open: []string{"9:00 AM", "1:00 PM"}, Closed: []string{"12:00 PM", ""}}
	if diff := cmp.Diff(want, paired); diff != "" {
		t.Fatalf("paired mismatch (-want +got):\n%s", diff)
	}
	if len(day.Closed) != 1 {
		t.Fatalf("expected receiver untouched, got %v", day.Closed)
	}

	closedOnly := DayHours{Day: "tuesday", Closed: []string{"5:00 PM"}}.Paired()
	if diff := cmp.Diff([]string{""}, closedOnly.Open); diff != "" {
		t.Fatalf("open mismatch (-want +got):\n%s", diff)
	}
}
