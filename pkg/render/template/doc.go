// Package template defines the renderer-agnostic template interface used by
// the front-end presenter.
package template
