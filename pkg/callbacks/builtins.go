package callbacks

import (
	"html"
	"net/mail"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/goliatone/go-slug"
	"github.com/microcosm-cc/bluemonday"
)

// Built-in callback names.
const (
	NameIdentity              = "identity"
	NameSanitizeTextField     = "sanitize_text_field"
	NameSanitizeTextareaField = "sanitize_textarea_field"
	NameSanitizeEmail         = "sanitize_email"
	NameSanitizeTitle         = "sanitize_title"
	NameAbsint                = "absint"
	NameEscURLRaw             = "esc_url_raw"
	NameEscHTML               = "esc_html"
	NameEscAttr               = "esc_attr"
	NameEscTextarea           = "esc_textarea"
	NameEscURL                = "esc_url"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// NewDefaultRegistry returns a registry with the built-in sanitizers and
// escapers registered.
func NewDefaultRegistry() *Registry {
	registry := New()

	registry.MustRegister(NameIdentity, func(value string) string { return value })
	registry.MustRegister(NameSanitizeTextField, SanitizeTextField)
	registry.MustRegister(NameSanitizeTextareaField, SanitizeTextareaField)
	registry.MustRegister(NameSanitizeEmail, SanitizeEmail)
	registry.MustRegister(NameSanitizeTitle, SanitizeTitle)
	registry.MustRegister(NameAbsint, Absint)
	registry.MustRegister(NameEscURLRaw, SanitizeURL)
	registry.MustRegister(NameEscHTML, html.EscapeString)
	registry.MustRegister(NameEscAttr, html.EscapeString)
	registry.MustRegister(NameEscTextarea, html.EscapeString)
	registry.MustRegister(NameEscURL, EscURL)

	return registry
}

// SanitizeTextField strips markup, collapses whitespace and trims the value.
// Entities produced by the HTML policy are decoded again so the stored text
// is escaped exactly once, at render time.
func SanitizeTextField(value string) string {
	cleaned := html.UnescapeString(textSanitizer().Sanitize(value))
	return strings.Join(strings.Fields(cleaned), " ")
}

// SanitizeTextareaField behaves like SanitizeTextField per line, keeping line
// breaks.
func SanitizeTextareaField(value string) string {
	lines := strings.Split(strings.ReplaceAll(value, "\r\n", "\n"), "\n")
	for i, line := range lines {
		lines[i] = SanitizeTextField(line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// SanitizeEmail returns the bare address or "" when value is not an address.
func SanitizeEmail(value string) string {
	addr, err := mail.ParseAddress(strings.TrimSpace(value))
	if err != nil {
		return ""
	}
	return addr.Address
}

// SanitizeTitle slugs value. Values that cannot be slugged become "".
func SanitizeTitle(value string) string {
	normalized, err := slug.Normalize(value)
	if err != nil {
		return ""
	}
	return normalized
}

// Absint converts value to a non-negative integer string.
func Absint(value string) string {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return "0"
	}
	if n < 0 {
		n = -n
	}
	return strconv.Itoa(n)
}

var allowedSchemes = map[string]struct{}{
	"http": {}, "https": {}, "mailto": {}, "tel": {}, "sms": {}, "skype": {},
}

// SanitizeURL keeps URLs with an allowed scheme and drops everything else.
// Scheme-less values are treated as http URLs.
func SanitizeURL(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}
	if !strings.Contains(trimmed, ":") && !strings.HasPrefix(trimmed, "/") && !strings.HasPrefix(trimmed, "#") {
		trimmed = "http://" + trimmed
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return ""
	}
	if parsed.Scheme != "" {
		if _, ok := allowedSchemes[strings.ToLower(parsed.Scheme)]; !ok {
			return ""
		}
	}
	return parsed.String()
}

// EscURL sanitizes value as a URL and escapes it for HTML output.
func EscURL(value string) string {
	return html.EscapeString(SanitizeURL(value))
}

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}
