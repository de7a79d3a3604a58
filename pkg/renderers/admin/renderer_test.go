package admin

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-widgetform/pkg/fields"
	"github.com/goliatone/go-widgetform/pkg/host"
	"github.com/goliatone/go-widgetform/pkg/model"
	"github.com/goliatone/go-widgetform/pkg/renderers/admin/components"
)

func mergedContact() []model.Field {
	instance := model.NewInstance()
	instance.Title = "Contact"
	instance.Set("phone", model.InstanceValue{Value: model.Text("555"), Order: 2})

	schema := model.Schema{
		{Key: "title", Label: "Title"},
		{Key: "phone", Label: "Phone"},
		{Key: "email", Label: "Email", Type: model.FieldTypeEmail},
		{Key: "hours", Type: model.FieldTypeHours, FormCallback: model.FormCallbackHours, Sortable: model.Bool(false)},
	}
	return fields.Merge(instance, schema, fields.WithNaming(host.WidgetNaming{IDBase: "wpcw_contact", Number: "2"}))
}

func TestRenderFormKeepsFieldOrderAndAppendsScript(t *testing.T) {
	out, err := New().RenderForm(mergedContact(), FormContext{})
	if err != nil {
		t.Fatalf("RenderForm: %v", err)
	}

	positions := []int{
		strings.Index(out, `<p class="text title">`),
		strings.Index(out, `<p class="text phone">`),
		strings.Index(out, `<p class="email email">`),
		strings.Index(out, `<p class="hours hours not-sortable">`),
		strings.Index(out, "wpcw.change"),
	}
	for i, pos := range positions {
		if pos < 0 {
			t.Fatalf("fragment %d missing from form:\n%s", i, out)
		}
		if i > 0 && pos < positions[i-1] {
			t.Fatalf("fragment %d rendered out of order", i)
		}
	}
	if n := strings.Count(out, `class="day-container closed"`); n != 7 {
		t.Fatalf("expected seven day containers, got %d", n)
	}
	if n := strings.Count(out, "js_wpcw_apply_hours_to_all"); n != 1 {
		t.Fatalf("expected one apply to all action, got %d", n)
	}
}

func TestRenderFormDispatchesMergedFieldsByType(t *testing.T) {
	schema := model.Schema{
		{Key: "color", Type: model.FieldTypeSelect, SelectOptions: []model.SelectOption{{Value: "1", Label: "Red"}}},
		{Key: "notes", Type: model.FieldTypeTextarea},
	}
	merged := fields.Merge(model.NewInstance(), schema, fields.WithNaming(host.WidgetNaming{IDBase: "wpcw_contact", Number: "2"}))

	out, err := New().RenderForm(merged, FormContext{})
	if err != nil {
		t.Fatalf("RenderForm: %v", err)
	}
	if !strings.Contains(out, `<select class="widefat" id="widget-wpcw_contact-2-color"`) {
		t.Fatalf("expected select control, got %s", out)
	}
	if !strings.Contains(out, `<option value="1" >Red</option>`) {
		t.Fatalf("expected select option, got %s", out)
	}
	if !strings.Contains(out, `<textarea class="widefat" id="widget-wpcw_contact-2-notes"`) {
		t.Fatalf("expected textarea control, got %s", out)
	}
	if strings.Contains(out, `type="select"`) || strings.Contains(out, `type="textarea"`) {
		t.Fatalf("expected no input fallback for typed fields, got %s", out)
	}
}

func TestRenderFieldUsesCustomRegistry(t *testing.T) {
	registry := components.NewDefaultRegistry()
	registry.MustRegister(components.NameInput, components.Descriptor{
		Renderer: func(buf *bytes.Buffer, field model.Field, _ components.ComponentData) error {
			buf.WriteString("custom:" + field.Key)
			return nil
		},
	})

	out, err := New(WithRegistry(registry)).RenderField(model.Field{Key: "fax"}, FormContext{})
	if err != nil {
		t.Fatalf("RenderField: %v", err)
	}
	if out != "custom:fax" {
		t.Fatalf("expected custom component output, got %q", out)
	}
}

func TestRenderFieldReportsMissingComponent(t *testing.T) {
	_, err := New(WithRegistry(components.New())).RenderField(model.Field{Key: "fax"}, FormContext{})
	if err == nil {
		t.Fatalf("expected error for unregistered component")
	}
}

func TestRenderDayUsesLabelsAndSlots(t *testing.T) {
	renderer := New(WithLabels(components.Labels{Add: "Ajouter"}))
	field := model.Field{Name: "w[1][hours][value]"}
	day := model.DayHours{Day: "monday", Open: []string{"08:00"}, Closed: []string{"16:00"}}

	out := renderer.RenderDay(field, day, true, FormContext{TimeSlots: []string{"08:00", "16:00"}})
	if !strings.Contains(out, ">Ajouter</a>") || !strings.Contains(out, "Apply to All") {
		t.Fatalf("expected custom and default labels, got %s", out)
	}
	if !strings.Contains(out, `<option selected="selected">08:00</option><option>16:00</option>`) {
		t.Fatalf("expected provided slots, got %s", out)
	}
}

func TestAssets(t *testing.T) {
	got := New().Assets(mergedContact())
	if diff := cmp.Diff([]string{components.AdminScriptHandle, "jquery"}, got); diff != "" {
		t.Fatalf("assets mismatch (-want +got):\n%s", diff)
	}
}
