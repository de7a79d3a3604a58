package tui

import "github.com/goliatone/go-widgetform/pkg/interfaces"

// Option configures the editor.
type Option func(*Editor)

// WithPromptDriver overrides the prompt driver used by the editor.
func WithPromptDriver(driver PromptDriver) Option {
	return func(e *Editor) {
		if driver != nil {
			e.driver = driver
		}
	}
}

// WithLogger sets the editor logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(e *Editor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithMaxSlots caps how many time slots a single day may collect.
func WithMaxSlots(max int) Option {
	return func(e *Editor) {
		if max > 0 {
			e.maxSlots = max
		}
	}
}
