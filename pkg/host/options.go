package host

import "strings"

// Option keys read by the widget.
const (
	OptionTimeFormat = "time_format"
)

// Options is a key/value configuration lookup.
type Options interface {
	Option(key string) (string, bool)
}

// MapOptions serves options from a map.
type MapOptions map[string]string

// Option implements Options.
func (m MapOptions) Option(key string) (string, bool) {
	value, ok := m[key]
	return value, ok
}

// StringOption returns the option stored under key or fallback when missing
// or blank.
func StringOption(options Options, key, fallback string) string {
	if options == nil {
		return fallback
	}
	value, ok := options.Option(key)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
