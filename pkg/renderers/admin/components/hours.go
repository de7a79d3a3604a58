package components

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/goliatone/go-widgetform/pkg/callbacks"
	"github.com/goliatone/go-widgetform/pkg/model"
)

// DayName returns the control name prefix of day: the field's trailing
// "[value]" segment is replaced by the day slug.
func DayName(field model.Field, day string) string {
	slug := callbacks.SanitizeTitle(day)
	base := strings.TrimSuffix(field.Name, "[value]")
	return base + "[" + slug + "]"
}

// RenderDay renders the collapsible editor of one day. Every row of the
// schedule gets an open and a closed select; controls of days marked as not
// open are disabled but still rendered. The "apply to all" action only
// appears on the first day.
func RenderDay(field model.Field, day model.DayHours, first bool, data ComponentData) string {
	labels := data.Labels.WithDefaults()
	name := DayName(field, day.Day)
	field.Disabled = day.NotOpen

	openLabel, openClass := labels.Open, "open"
	if day.NotOpen {
		openLabel, openClass = labels.Closed, "closed"
	}

	applyToAll := ""
	if first {
		applyToAll = `<a href="#" class="js_wpcw_apply_hours_to_all">` + html.EscapeString(labels.ApplyToAll) + `</a>`
	}

	notOpenName := html.EscapeString(name + "[not_open]")
	closedCheckbox := fmt.Sprintf(
		`<input name="%[1]s" id="%[1]s" class="js_wpcw_closed_checkbox" type="checkbox" value="1" %[2]s><label for="%[1]s" class="js_wpcw_closed_checkbox"><small>%[3]s</small></label>`,
		notOpenName,
		Checked(flag(day.NotOpen), "1"),
		html.EscapeString(labels.ClosedBox),
	)

	var b strings.Builder
	b.WriteString(`<div class="day-container closed">`)
	fmt.Fprintf(&b, `<strong>%s</strong><span class="toggle"></span><span class="open-label %s">%s</span>`,
		html.EscapeString(cases.Title(language.English).String(day.Day)),
		openClass,
		html.EscapeString(openLabel),
	)
	b.WriteString(`<div class="hidden-container">`)
	b.WriteString(renderHoursSelection(field, name, day, data.TimeSlots, labels))
	b.WriteString(` <span class="day-checkbox-toggle">`)
	b.WriteString(applyToAll)
	b.WriteString(closedCheckbox)
	b.WriteString(`</span></div></div>`)
	return b.String()
}

// renderHoursSelection renders rows 1..len(day.Open). A day without open
// times renders no row; the admin script injects the first one.
func renderHoursSelection(field model.Field, name string, day model.DayHours, slots []string, labels Labels) string {
	disabled := ""
	if field.Disabled {
		disabled = ` disabled="disabled"`
	}

	var b strings.Builder
	for row := 1; row <= day.Rows(); row++ {
		b.WriteString(`<div class="hours-selection">`)
		writeTimeSelect(&b, name+"[open]["+strconv.Itoa(row)+"]", disabled, slots, day.OpenAt(row))
		writeTimeSelect(&b, name+"[closed]["+strconv.Itoa(row)+"]", disabled, slots, day.ClosedAt(row))
		if row == 1 {
			fmt.Fprintf(&b, `<a href="#" class="add-time button-secondary">%s</a>`, html.EscapeString(labels.Add))
		} else {
			b.WriteString(`<a href="#" class="remove-time button-secondary"><span class="dashicons dashicons-no-alt"></span></a>`)
		}
		b.WriteString(`</div>`)
	}
	return b.String()
}

func writeTimeSelect(b *strings.Builder, name, disabled string, slots []string, selected string) {
	fmt.Fprintf(b, `<select name="%s"%s>`, html.EscapeString(name), disabled)
	for _, slot := range slots {
		if slot == selected {
			fmt.Fprintf(b, `<option selected="selected">%s</option>`, html.EscapeString(slot))
			continue
		}
		fmt.Fprintf(b, `<option>%s</option>`, html.EscapeString(slot))
	}
	b.WriteString(`</select>`)
}

func flag(value bool) string {
	if value {
		return "1"
	}
	return ""
}
