package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Value holds a field value: plain text for most fields, a weekly schedule
// for hours fields.
type Value struct {
	Text  string
	Hours Hours
}

// Text builds a text value.
func Text(value string) Value {
	return Value{Text: value}
}

// HoursValue builds an hours value.
func HoursValue(hours Hours) Value {
	return Value{Hours: hours}
}

// IsHours reports whether the value carries a schedule.
func (v Value) IsHours() bool {
	return v.Hours != nil
}

// IsEmpty follows the host emptiness rule: "" and "0" are empty, as is a
// schedule without days.
func (v Value) IsEmpty() bool {
	if v.Hours != nil {
		return len(v.Hours) == 0
	}
	return v.Text == "" || v.Text == "0"
}

// String returns the text value or a compact rendering of the schedule.
func (v Value) String() string {
	if v.Hours == nil {
		return v.Text
	}
	parts := make([]string, 0, len(v.Hours))
	for _, day := range v.Hours {
		parts = append(parts, day.String())
	}
	return strings.Join(parts, "; ")
}

// MarshalJSON encodes text as a JSON string and schedules as an array.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.Hours != nil {
		return json.Marshal(v.Hours)
	}
	return json.Marshal(v.Text)
}

// UnmarshalJSON accepts strings, numbers, booleans, null and schedules.
func (v *Value) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	*v = Value{}
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	switch trimmed[0] {
	case '"':
		return json.Unmarshal(trimmed, &v.Text)
	case '[':
		var hours Hours
		if err := json.Unmarshal(trimmed, &hours); err != nil {
			return fmt.Errorf("model: decode hours value: %w", err)
		}
		if hours == nil {
			hours = Hours{}
		}
		v.Hours = hours
		return nil
	case '{':
		return fmt.Errorf("model: unsupported object value %s", trimmed)
	default:
		v.Text = string(trimmed)
		return nil
	}
}

// DayHours is the schedule of one day. Open and Closed pair by index: row i
// (1-based in markup) opens at Open[i-1] and closes at Closed[i-1].
type DayHours struct {
	Day     string   `json:"day" yaml:"day"`
	NotOpen bool     `json:"not_open" yaml:"not_open"`
	Open    []string `json:"open" yaml:"open"`
	Closed  []string `json:"closed" yaml:"closed"`
}

// Rows returns the number of time slot rows rendered for the day.
func (d DayHours) Rows() int {
	return len(d.Open)
}

// OpenAt returns the opening time of 1-based row, or "" when missing.
func (d DayHours) OpenAt(row int) string {
	return at(d.Open, row)
}

// ClosedAt returns the closing time of 1-based row, or "" when missing.
func (d DayHours) ClosedAt(row int) string {
	return at(d.Closed, row)
}

// Paired returns a copy of d whose Open and Closed lists have equal length.
// The shorter list is padded with "" so no submitted time is dropped.
func (d DayHours) Paired() DayHours {
	rows := max(len(d.Open), len(d.Closed))
	d.Open = pad(d.Open, rows)
	d.Closed = pad(d.Closed, rows)
	return d
}

func pad(values []string, rows int) []string {
	out := make([]string, rows)
	copy(out, values)
	return out
}

func at(values []string, row int) string {
	if row < 1 || row > len(values) {
		return ""
	}
	return values[row-1]
}

// String renders "Monday: 9:00 AM - 5:00 PM" style summaries.
func (d DayHours) String() string {
	if d.NotOpen {
		return d.Day + ": closed"
	}
	slots := make([]string, 0, d.Rows())
	for row := 1; row <= d.Rows(); row++ {
		slots = append(slots, d.OpenAt(row)+" - "+d.ClosedAt(row))
	}
	return d.Day + ": " + strings.Join(slots, ", ")
}

// Hours is an ordered weekly schedule. The first entry is the day that shows
// the "apply to all" action.
type Hours []DayHours

// Day returns the schedule stored for name, compared case-insensitively.
func (h Hours) Day(name string) (DayHours, bool) {
	for _, day := range h {
		if strings.EqualFold(day.Day, name) {
			return day, true
		}
	}
	return DayHours{}, false
}

// Clone returns a deep copy.
func (h Hours) Clone() Hours {
	if h == nil {
		return nil
	}
	out := make(Hours, len(h))
	for i, day := range h {
		out[i] = DayHours{
			Day:     day.Day,
			NotOpen: day.NotOpen,
			Open:    append([]string(nil), day.Open...),
			Closed:  append([]string(nil), day.Closed...),
		}
	}
	return out
}

// Weekdays lists the days of a default schedule in render order.
var Weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// DefaultWeek returns a schedule with one 9:00 AM to 5:00 PM slot per day.
func DefaultWeek() Hours {
	week := make(Hours, 0, len(Weekdays))
	for _, day := range Weekdays {
		week = append(week, DayHours{
			Day:    day,
			Open:   []string{"9:00 AM"},
			Closed: []string{"5:00 PM"},
		})
	}
	return week
}
