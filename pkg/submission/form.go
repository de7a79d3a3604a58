package submission

import (
	"net/url"
	"strconv"
	"strings"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-widgetform/pkg/host"
	"github.com/goliatone/go-widgetform/pkg/model"
)

const textCodeMalformedForm = "SUBMISSION_MALFORMED_FORM"

// ParseForm decodes an application/x-www-form-urlencoded body posted by the
// admin form of placement naming. Pairs outside the placement are ignored.
//
// Recognised names:
//
//	{prefix}[{key}][value]
//	{prefix}[{key}][{day}][open][{row}]
//	{prefix}[{key}][{day}][closed][{row}]
//	{prefix}[{key}][{day}][not_open]
func ParseForm(body string, naming host.WidgetNaming) (Submission, error) {
	var sub Submission
	prefix := naming.Prefix()

	for _, pair := range strings.Split(body, "&") {
		if pair == "" {
			continue
		}
		rawName, rawValue, _ := strings.Cut(pair, "=")
		name, err := url.QueryUnescape(rawName)
		if err != nil {
			return Submission{}, malformed(err, rawName)
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			return Submission{}, malformed(err, rawName)
		}

		rest, ok := strings.CutPrefix(name, prefix)
		if !ok {
			continue
		}
		segments, ok := splitSegments(rest)
		if !ok || len(segments) < 2 {
			continue
		}
		sub.assign(segments, value)
	}
	return sub, nil
}

// FormNumber returns the placement number of the first pair posted for
// idBase, so a body rendered for one placement can be read into another.
func FormNumber(body, idBase string) (string, bool) {
	prefix := "widget-" + idBase + "["
	for _, pair := range strings.Split(body, "&") {
		rawName, _, _ := strings.Cut(pair, "=")
		name, err := url.QueryUnescape(rawName)
		if err != nil {
			continue
		}
		rest, ok := strings.CutPrefix(name, prefix)
		if !ok {
			continue
		}
		if number, _, ok := strings.Cut(rest, "]"); ok && number != "" {
			return number, true
		}
	}
	return "", false
}

func (s *Submission) assign(segments []string, value string) {
	key := segments[0]
	if segments[1] == "value" && len(segments) == 2 {
		field := s.entry(key)
		field.Value = model.Text(value)
		field.HasValue = true
		return
	}

	day := segments[1]
	field := s.entry(key)
	if field.Value.Hours == nil {
		field.Value = model.HoursValue(model.Hours{})
	}
	field.HasValue = true
	schedule := dayEntry(&field.Value.Hours, day)

	switch {
	case len(segments) == 3 && segments[2] == "not_open":
		schedule.NotOpen = value != "" && value != "0"
	case len(segments) == 4 && (segments[2] == "open" || segments[2] == "closed"):
		row, err := strconv.Atoi(segments[3])
		if err != nil || row < 1 {
			return
		}
		if segments[2] == "open" {
			schedule.Open = place(schedule.Open, row, value)
		} else {
			schedule.Closed = place(schedule.Closed, row, value)
		}
	}
}

func dayEntry(hours *model.Hours, day string) *model.DayHours {
	for i := range *hours {
		if (*hours)[i].Day == day {
			return &(*hours)[i]
		}
	}
	*hours = append(*hours, model.DayHours{Day: day, Open: []string{}, Closed: []string{}})
	return &(*hours)[len(*hours)-1]
}

// place stores value at 1-based row, growing values as needed.
func place(values []string, row int, value string) []string {
	for len(values) < row {
		values = append(values, "")
	}
	values[row-1] = value
	return values
}

// splitSegments turns "[a][b][c]" into ["a", "b", "c"].
func splitSegments(rest string) ([]string, bool) {
	var segments []string
	for rest != "" {
		if rest[0] != '[' {
			return nil, false
		}
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return nil, false
		}
		segments = append(segments, rest[1:end])
		rest = rest[end+1:]
	}
	return segments, true
}

func malformed(err error, name string) error {
	return goerrors.Wrap(err, goerrors.CategoryBadInput, "malformed form submission").
		WithTextCode(textCodeMalformedForm).
		WithMetadata(map[string]any{"name": name})
}
