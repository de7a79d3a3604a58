package components

import (
	"fmt"
	"html"
	"strings"

	"github.com/goliatone/go-widgetform/pkg/model"
)

// Checked returns the bare "checked" attribute when helper and current match.
// Older browsers reject checked="checked" on these controls.
func Checked(helper, current string) string {
	if helper == current {
		return "checked"
	}
	return ""
}

func wrapperClasses(field model.Field) string {
	classes := []string{string(field.Type), field.Key}
	if !field.Sortable {
		classes = append(classes, "not-sortable")
	}
	if field.LabelAfter {
		classes = append(classes, "label-after")
	}
	return strings.Join(classes, " ")
}

func writeLabel(b *strings.Builder, field model.Field) {
	fmt.Fprintf(b, ` <label for="%s" title="%s">%s</label>`,
		html.EscapeString(field.ID),
		html.EscapeString(field.Description),
		html.EscapeString(field.Label),
	)
}

// beforeField opens the wrapper and prints the leading label.
func beforeField(b *strings.Builder, field model.Field) {
	fmt.Fprintf(b, `<p class="%s">`, html.EscapeString(wrapperClasses(field)))
	if !field.LabelAfter {
		writeLabel(b, field)
	}
	if field.Sortable {
		b.WriteString(`<span>`)
	}
}

// afterField prints the trailing label and sortable handle, then closes the
// wrapper.
func afterField(b *strings.Builder, field model.Field) {
	if field.LabelAfter {
		writeLabel(b, field)
	}
	if field.Sortable {
		b.WriteString(`<span class="wpcw-widget-sortable-handle"><span class="dashicons dashicons-menu"></span></span></span>`)
	}
	b.WriteString(`</p>`)
}
