// Package widget composes the field pipeline into a sidebar widget: merge
// and order fields, render the admin form, sanitize submissions and render
// the front end.
package widget

import (
	"fmt"
	"slices"
	"strings"

	"github.com/goliatone/go-widgetform/internal/logging"
	"github.com/goliatone/go-widgetform/pkg/callbacks"
	"github.com/goliatone/go-widgetform/pkg/fields"
	"github.com/goliatone/go-widgetform/pkg/hooks"
	"github.com/goliatone/go-widgetform/pkg/host"
	"github.com/goliatone/go-widgetform/pkg/interfaces"
	"github.com/goliatone/go-widgetform/pkg/model"
	"github.com/goliatone/go-widgetform/pkg/renderers/admin"
	"github.com/goliatone/go-widgetform/pkg/renderers/display"
	"github.com/goliatone/go-widgetform/pkg/submission"
	"github.com/goliatone/go-widgetform/pkg/timeslots"
)

// Core is the behaviour a concrete widget exposes to its host.
type Core interface {
	Fields(instance model.Instance) []model.Field
	Form(instance model.Instance) (string, error)
	Update(submitted submission.Submission, old model.Instance) model.Instance
	Display(args host.WrapperArgs, instance model.Instance) (string, error)
}

// Option customises a Widget.
type Option func(*Widget)

// WithCallbacks sets the registry sanitizer and escaper names resolve against.
func WithCallbacks(registry *callbacks.Registry) Option {
	return func(w *Widget) {
		if registry != nil {
			w.callbacks = registry
		}
	}
}

// WithFilters sets the hook registry.
func WithFilters(filters *hooks.Filters) Option {
	return func(w *Widget) {
		if filters != nil {
			w.filters = filters
		}
	}
}

// WithOptions sets the host configuration lookup.
func WithOptions(options host.Options) Option {
	return func(w *Widget) {
		if options != nil {
			w.options = options
		}
	}
}

// WithLogger sets the widget logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(w *Widget) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithAdminRenderer replaces the admin form renderer.
func WithAdminRenderer(renderer *admin.Renderer) Option {
	return func(w *Widget) {
		if renderer != nil {
			w.admin = renderer
		}
	}
}

// WithPresenter replaces the front-end presenter.
func WithPresenter(presenter *display.Presenter) Option {
	return func(w *Widget) {
		if presenter != nil {
			w.presenter = presenter
		}
	}
}

// WithLabelsKey names the field whose "yes" value prints labels on the front
// end.
func WithLabelsKey(key string) Option {
	return func(w *Widget) {
		w.labelsKey = strings.TrimSpace(key)
	}
}

// Widget is one widget type bound to a placement number.
type Widget struct {
	idBase    string
	name      string
	schema    model.Schema
	naming    host.WidgetNaming
	labelsKey string

	callbacks *callbacks.Registry
	filters   *hooks.Filters
	options   host.Options
	admin     *admin.Renderer
	presenter *display.Presenter
	logger    interfaces.Logger
}

var _ Core = (*Widget)(nil)

// New constructs a widget type. The returned widget renders placement "0"
// until ForPlacement selects another.
func New(idBase, name string, schema model.Schema, options ...Option) (*Widget, error) {
	idBase = strings.TrimSpace(idBase)
	if idBase == "" {
		return nil, fmt.Errorf("widget: id base is required")
	}

	w := &Widget{
		idBase:    idBase,
		name:      name,
		schema:    slices.Clone(schema),
		naming:    host.WidgetNaming{IDBase: idBase, Number: "0"},
		callbacks: callbacks.NewDefaultRegistry(),
		filters:   hooks.New(),
		options:   host.MapOptions{},
		logger:    logging.NoOp(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(w)
		}
	}

	if w.admin == nil {
		w.admin = admin.New()
	}
	if w.presenter == nil {
		presenter, err := display.New(display.WithFilters(w.filters))
		if err != nil {
			return nil, fmt.Errorf("widget: %w", err)
		}
		w.presenter = presenter
	}
	return w, nil
}

// ForPlacement returns a copy of w bound to placement number.
func (w *Widget) ForPlacement(number string) *Widget {
	clone := *w
	clone.naming.Number = strings.TrimSpace(number)
	return &clone
}

// IDBase returns the widget type identifier.
func (w *Widget) IDBase() string { return w.idBase }

// Name returns the display name.
func (w *Widget) Name() string { return w.name }

// Number returns the bound placement number.
func (w *Widget) Number() string { return w.naming.Number }

// Naming returns the naming scheme of the bound placement.
func (w *Widget) Naming() host.WidgetNaming { return w.naming }

// Schema returns a copy of the field schema.
func (w *Widget) Schema() model.Schema { return slices.Clone(w.schema) }

// Fields merges instance with the schema and orders the result.
func (w *Widget) Fields(instance model.Instance) []model.Field {
	return fields.Merge(instance, w.schema, w.mergeOptions()...)
}

// TimeSlots returns the labels offered by hours selects, honouring the hour
// increment hook and the host time format.
func (w *Widget) TimeSlots() []string {
	increment := w.filters.ApplyString(hooks.HookHourIncrement, timeslots.IncrementHalfHour)
	format := host.StringOption(w.options, host.OptionTimeFormat, timeslots.DefaultFormat)
	return timeslots.Generate(timeslots.StepFor(increment), format)
}

// Form renders the admin form of instance.
func (w *Widget) Form(instance model.Instance) (string, error) {
	return w.admin.RenderForm(w.Fields(instance), admin.FormContext{TimeSlots: w.TimeSlots()})
}

// IsEmpty reports whether instance has nothing to show on the front end.
func (w *Widget) IsEmpty(instance model.Instance) bool {
	ignoreTitle := w.filters.ApplyBool(hooks.HookIgnoreTitle, false)
	return fields.IsEmpty(w.Fields(instance), ignoreTitle)
}

// Display renders the front-end markup of instance.
func (w *Widget) Display(args host.WrapperArgs, instance model.Instance) (string, error) {
	presenter := w.presenter
	if w.labelsKey != "" {
		stored, _ := instance.Lookup(w.labelsKey)
		presenter = presenter.ShowingLabels(stored.Value.Text == model.CheckboxChecked)
	}
	return presenter.Render(w.Fields(instance), args)
}

// AdminAssets lists the bundles the admin form of instance needs, including
// their dependencies.
func (w *Widget) AdminAssets(instance model.Instance, baseURL, version, suffix string) []host.Bundle {
	available := host.AdminBundles(baseURL, version, suffix)
	wanted := w.admin.Assets(w.Fields(instance))

	var out []host.Bundle
	seen := map[string]bool{}
	var visit func(handle string)
	visit = func(handle string) {
		for _, bundle := range available {
			key := bundle.Kind + ":" + bundle.Handle
			if bundle.Handle != handle || seen[key] {
				continue
			}
			seen[key] = true
			for _, dep := range bundle.Deps {
				visit(dep)
			}
			out = append(out, bundle)
		}
	}
	for _, handle := range wanted {
		visit(handle)
	}
	return out
}

func (w *Widget) mergeOptions() []fields.Option {
	return []fields.Option{
		fields.WithNaming(w.naming),
		fields.WithCallbacks(w.callbacks),
		fields.WithLogger(w.logger),
	}
}
