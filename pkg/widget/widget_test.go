package widget

import (
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-widgetform/pkg/hooks"
	"github.com/goliatone/go-widgetform/pkg/host"
	"github.com/goliatone/go-widgetform/pkg/model"
	"github.com/goliatone/go-widgetform/pkg/submission"
	"github.com/goliatone/go-widgetform/pkg/timeslots"
)

func newContact(t *testing.T, options ...Option) *Widget {
	t.Helper()
	w, err := NewContact(options...)
	if err != nil {
		t.Fatalf("NewContact: %v", err)
	}
	return w.ForPlacement("2")
}

func TestNewRequiresIDBase(t *testing.T) {
	if _, err := New(" ", "x", nil); err == nil {
		t.Fatalf("expected error for blank id base")
	}
}

func TestUpdateInjectsUncheckedCheckboxes(t *testing.T) {
	w := newContact(t)
	var sub submission.Submission
	sub.Set("title", model.Text("  <b>Contact</b> "))
	sub.Set("phone", model.Text("555 <script>x</script>"))
	sub.Set("labels", model.Text("yes"))

	updated := w.Update(sub, model.NewInstance())

	if updated.Title != "Contact" {
		t.Fatalf("expected sanitized scalar title, got %q", updated.Title)
	}
	want := map[string]model.InstanceValue{
		"phone":   {Value: model.Text("555"), Order: 1},
		"labels":  {Value: model.Text("yes"), Order: 2},
		"showmap": {Value: model.Text("no"), Order: 3},
	}
	if diff := cmp.Diff(want, updated.Fields); diff != "" {
		t.Fatalf("instance mismatch (-want +got):\n%s", diff)
	}
}

func TestUpdateReplacesCheckboxWithoutValue(t *testing.T) {
	w := newContact(t)
	sub := submission.Submission{Fields: []submission.Field{
		{Key: "showmap"},
		{Key: "email", Value: model.Text("someone@example.com"), HasValue: true},
	}}

	updated := w.Update(sub, model.NewInstance())

	if got := updated.Fields["showmap"]; got.Value.Text != "no" || got.Order != 1 {
		t.Fatalf("expected showmap no at order 1, got %+v", got)
	}
	if got := updated.Fields["email"]; got.Value.Text != "someone@example.com" || got.Order != 2 {
		t.Fatalf("unexpected email entry %+v", got)
	}
	if _, ok := updated.Fields["labels"]; !ok {
		t.Fatalf("expected labels checkbox to be injected")
	}
}

func TestUpdateOrdersFollowSubmission(t *testing.T) {
	w := newContact(t)
	var sub submission.Submission
	for _, key := range []string{"fax", "title", "email", "unknown", "phone"} {
		sub.Set(key, model.Text("<i>"+key+"</i>"))
	}

	updated := w.Update(sub, model.NewInstance())

	orders := map[string]int{}
	for key, value := range updated.Fields {
		orders[key] = value.Order
	}
	want := map[string]int{"fax": 1, "email": 2, "unknown": 3, "phone": 4, "showmap": 5, "labels": 6}
	if diff := cmp.Diff(want, orders); diff != "" {
		t.Fatalf("orders mismatch (-want +got):\n%s", diff)
	}
	if got := updated.Fields["unknown"].Value.Text; got != "<i>unknown</i>" {
		t.Fatalf("expected undeclared key to pass through, got %q", got)
	}
}

func TestUpdateSanitizesHours(t *testing.T) {
	w := newContact(t)
	var sub submission.Submission
	sub.Set("hours", model.HoursValue(model.Hours{
		{Day: "Monday", Open: []string{"<b>9:00 AM</b>"}, Closed: []string{"5:00 PM"}},
	}))

	updated := w.Update(sub, model.NewInstance())
	want := model.Hours{{Day: "monday", Open: []string{"9:00 AM"}, Closed: []string{"5:00 PM"}}}
	if diff := cmp.Diff(want, updated.Fields["hours"].Value.Hours); diff != "" {
		t.Fatalf("hours mismatch (-want +got):\n%s", diff)
	}
}

func TestUpdatePairsOpenAndClosedTimes(t *testing.T) {
	w := newContact(t)
	body := url.Values{
		"widget-wpcw_contact[2][hours][monday][open][1]":    {"9:00 AM"},
		"widget-wpcw_contact[2][hours][monday][open][2]":    {"1:00 PM"},
		"widget-wpcw_contact[2][hours][monday][closed][1]":  {"12:00 PM"},
		"widget-wpcw_contact[2][hours][tuesday][closed][1]": {"5:00 PM"},
	}.Encode()
	sub, err := submission.ParseForm(body, w.Naming())
	if err != nil {
		t.Fatalf("ParseForm: %v", err)
	}

	updated := w.Update(sub, model.NewInstance())
	got := updated.Fields["hours"].Value.Hours
	for _, day := range got {
		if len(day.Open) != len(day.Closed) {
			t.Fatalf("%s: open %v and closed %v differ in length", day.Day, day.Open, day.Closed)
		}
	}
	monday, _ := got.Day("monday")
	want := model.DayHours{Day: "monday", Open: []string{"9:00 AM", "1:00 PM"}, Closed: []string{"12:00 PM", ""}}
	if diff := cmp.Diff(want, monday); diff != "" {
		t.Fatalf("monday mismatch (-want +got):\n%s", diff)
	}
	tuesday, _ := got.Day("tuesday")
	if diff := cmp.Diff([]string{""}, tuesday.Open); diff != "" {
		t.Fatalf("tuesday open mismatch (-want +got):\n%s", diff)
	}
}

func TestUpdateThenFieldsRoundTrip(t *testing.T) {
	w := newContact(t)
	var sub submission.Submission
	sub.Set("title", model.Text("Contact"))
	sub.Set("phone", model.Text("555"))
	sub.Set("email", model.Text("a@b.co"))

	fields := w.Fields(w.Update(sub, model.NewInstance()))
	var keys []string
	for _, field := range fields {
		keys = append(keys, field.Key)
	}
	want := []string{"title", "phone", "email", "fax", "address", "hours", "showmap", "labels"}
	if diff := cmp.Diff(want, keys); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}
}

func TestTimeSlotsHonourHookAndFormat(t *testing.T) {
	filters := hooks.New()
	filters.Add(hooks.HookHourIncrement, hooks.DefaultPriority, hooks.Constant(timeslots.IncrementFifteenMinutes))

	w := newContact(t, WithFilters(filters), WithOptions(host.MapOptions{host.OptionTimeFormat: "15:04"}))
	slots := w.TimeSlots()
	if len(slots) != 95 || slots[1] != "00:15" {
		t.Fatalf("unexpected slots: %d entries, second %q", len(slots), slots[1])
	}
}

func TestFormUsesPlacementNaming(t *testing.T) {
	out, err := newContact(t).Form(model.NewInstance())
	if err != nil {
		t.Fatalf("Form: %v", err)
	}
	if !strings.Contains(out, `name="widget-wpcw_contact[2][email][value]"`) {
		t.Fatalf("expected placement naming in form")
	}
	if !strings.Contains(out, `widget-wpcw_contact[2][hours][monday][open][1]`) {
		t.Fatalf("expected hours rows in form")
	}
}

func TestDisplayAndEmptiness(t *testing.T) {
	w := newContact(t)
	instance := model.NewInstance()
	if !w.IsEmpty(instance) {
		t.Fatalf("expected fresh instance to be empty")
	}
	out, err := w.Display(host.WrapperArgs{}, instance)
	if err != nil || out != "" {
		t.Fatalf("expected empty display, got %q (%v)", out, err)
	}

	instance.Set("phone", model.InstanceValue{Value: model.Text("555"), Order: 1})
	instance.Set("labels", model.InstanceValue{Value: model.Text("yes"), Order: 2})
	out, err = w.Display(host.WrapperArgs{}, instance)
	if err != nil {
		t.Fatalf("Display: %v", err)
	}
	if !strings.Contains(out, `<li class="phone"><strong>Phone:</strong><br><div>555</div></li>`) {
		t.Fatalf("expected labelled phone, got %s", out)
	}
}

func TestAdminAssetsIncludeDependencies(t *testing.T) {
	bundles := newContact(t).AdminAssets(model.NewInstance(), "/assets/", "1.0", ".min")
	var handles []string
	for _, bundle := range bundles {
		handles = append(handles, bundle.Kind+":"+bundle.Handle)
	}
	want := []string{"style:font-awesome", "style:wpcw-admin", "script:wpcw-admin"}
	if diff := cmp.Diff(want, handles); diff != "" {
		t.Fatalf("bundles mismatch (-want +got):\n%s", diff)
	}
}
