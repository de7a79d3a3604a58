package host

import (
	"fmt"
	"strings"
)

// Naming derives form control ids and names from field keys. Results must be
// deterministic and collision free within one placement.
type Naming interface {
	FieldID(key string) string
	FieldName(key string) string
}

// WidgetNaming implements the host's naming convention for one placement:
// ids look like widget-{base}-{number}-{key} and names like
// widget-{base}[{number}][{key}].
type WidgetNaming struct {
	IDBase string
	Number string
}

// FieldID returns the id of the control rendering key.
func (n WidgetNaming) FieldID(key string) string {
	cleaned := strings.NewReplacer("[]", "", "[", "-", "]", "").Replace(key)
	return fmt.Sprintf("widget-%s-%s-%s", n.IDBase, n.Number, strings.Trim(cleaned, "-"))
}

// FieldName returns the form name of key.
func (n WidgetNaming) FieldName(key string) string {
	return n.Prefix() + "[" + key + "]"
}

// Prefix is the part of every field name shared by the placement.
func (n WidgetNaming) Prefix() string {
	return fmt.Sprintf("widget-%s[%s]", n.IDBase, n.Number)
}

// DefaultNaming is used when no naming provider is configured.
var DefaultNaming Naming = WidgetNaming{IDBase: "widget", Number: "0"}
