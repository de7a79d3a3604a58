package template

import (
	"io"
)

// TemplateRenderer is the seam presenters render through.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
}
