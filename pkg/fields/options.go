package fields

import (
	"github.com/goliatone/go-widgetform/internal/logging"
	"github.com/goliatone/go-widgetform/pkg/callbacks"
	"github.com/goliatone/go-widgetform/pkg/host"
	"github.com/goliatone/go-widgetform/pkg/interfaces"
)

// Option customises Merge.
type Option func(*config)

type config struct {
	naming    host.Naming
	callbacks *callbacks.Registry
	logger    interfaces.Logger
}

// WithNaming sets the id/name provider of the current placement.
func WithNaming(naming host.Naming) Option {
	return func(cfg *config) {
		if naming != nil {
			cfg.naming = naming
		}
	}
}

// WithCallbacks sets the registry sanitizer and escaper names resolve
// against.
func WithCallbacks(registry *callbacks.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.callbacks = registry
		}
	}
}

// WithLogger records callback fallbacks and schema problems.
func WithLogger(logger interfaces.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

func newConfig(options []Option) config {
	cfg := config{
		naming:    host.DefaultNaming,
		callbacks: defaultRegistry,
		logger:    logging.NoOp(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

var defaultRegistry = callbacks.NewDefaultRegistry()
