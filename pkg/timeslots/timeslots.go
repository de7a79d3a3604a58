// Package timeslots produces the time labels offered by the hours selects.
package timeslots

import (
	"strings"
	"time"

	"github.com/ncruces/go-strftime"
)

// Steps in seconds.
const (
	HalfHour       = 1800
	FifteenMinutes = 900
)

// Increment names accepted by the hour increment hook.
const (
	IncrementHalfHour       = "half_hour"
	IncrementFifteenMinutes = "fifteen_minutes"
)

// Upper bound of the generated range. It is expressed in half-hour units even
// when the step is fifteen minutes, so the last label is always 23:30.
const lastOffset = 47 * HalfHour

// DefaultFormat renders labels like "9:00 AM".
const DefaultFormat = "%-I:%M %p"

// StepFor maps an increment name to a step in seconds. Unknown names use the
// half-hour step.
func StepFor(increment string) int {
	switch strings.TrimSpace(increment) {
	case IncrementFifteenMinutes:
		return FifteenMinutes
	default:
		return HalfHour
	}
}

// Seconds returns the offsets 0, step, 2*step ... up to 47*1800 inclusive.
// Non-positive steps use the half-hour step.
func Seconds(step int) []int {
	if step <= 0 {
		step = HalfHour
	}
	offsets := make([]int, 0, lastOffset/step+1)
	for offset := 0; offset <= lastOffset; offset += step {
		offsets = append(offsets, offset)
	}
	return offsets
}

// Generate formats every offset of Seconds(step). format is a strftime
// pattern when it contains '%', otherwise a Go reference layout. An empty
// format uses DefaultFormat.
func Generate(step int, format string) []string {
	offsets := Seconds(step)
	labels := make([]string, 0, len(offsets))
	for _, offset := range offsets {
		labels = append(labels, Format(offset, format))
	}
	return labels
}

// Format renders one offset, in seconds after midnight UTC.
func Format(offset int, format string) string {
	if strings.TrimSpace(format) == "" {
		format = DefaultFormat
	}
	moment := time.Unix(int64(offset), 0).UTC()
	if strings.Contains(format, "%") {
		return strftime.Format(format, moment)
	}
	return moment.Format(format)
}
