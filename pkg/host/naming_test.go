package host

import "testing"

func TestWidgetNaming(t *testing.T) {
	naming := WidgetNaming{IDBase: "wpcw_contact", Number: "3"}

	if got := naming.FieldID("phone"); got != "widget-wpcw_contact-3-phone" {
		t.Fatalf("FieldID() = %q", got)
	}
	if got := naming.FieldID("social[]"); got != "widget-wpcw_contact-3-social" {
		t.Fatalf("FieldID() with brackets = %q", got)
	}
	if got := naming.FieldName("phone"); got != "widget-wpcw_contact[3][phone]" {
		t.Fatalf("FieldName() = %q", got)
	}
}

func TestStringOption(t *testing.T) {
	options := MapOptions{OptionTimeFormat: "%H:%M", "blank": "  "}

	if got := StringOption(options, OptionTimeFormat, "x"); got != "%H:%M" {
		t.Fatalf("expected stored option, got %q", got)
	}
	if got := StringOption(options, "blank", "fallback"); got != "fallback" {
		t.Fatalf("expected blank option to fall back, got %q", got)
	}
	if got := StringOption(nil, OptionTimeFormat, "fallback"); got != "fallback" {
		t.Fatalf("expected nil options to fall back, got %q", got)
	}
}
