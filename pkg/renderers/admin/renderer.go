// Package admin renders the widget configuration form.
package admin

import (
	"bytes"
	"fmt"

	"github.com/goliatone/go-widgetform/pkg/model"
	"github.com/goliatone/go-widgetform/pkg/renderers/admin/components"
	"github.com/goliatone/go-widgetform/pkg/timeslots"
)

// changeScript tells the admin script a form was (re)rendered so it can reset
// its sortables.
const changeScript = `<script>( function ( $ ) { $( document ).trigger( 'wpcw.change' ); } )( jQuery );</script>`

// Option customises the renderer.
type Option func(*config)

type config struct {
	registry     *components.Registry
	strictSelect bool
	labels       components.Labels
}

// WithRegistry replaces the default component registry.
func WithRegistry(registry *components.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.registry = registry
		}
	}
}

// WithStrictSelect makes select pre-selection compare values exactly instead
// of treating numeric strings as numbers.
func WithStrictSelect(strict bool) Option {
	return func(cfg *config) {
		cfg.strictSelect = strict
	}
}

// WithLabels overrides the hours editor labels. Blank entries keep the
// defaults.
func WithLabels(labels components.Labels) Option {
	return func(cfg *config) {
		cfg.labels = labels
	}
}

// Renderer writes admin form markup for merged, ordered fields.
type Renderer struct {
	registry     *components.Registry
	strictSelect bool
	labels       components.Labels
}

// FormContext carries values computed once per form render.
type FormContext struct {
	// TimeSlots fill the hours selects. Nil uses half-hour slots in the
	// default format.
	TimeSlots []string
}

// New constructs a renderer.
func New(options ...Option) *Renderer {
	cfg := config{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.registry == nil {
		cfg.registry = components.NewDefaultRegistry()
	}
	return &Renderer{
		registry:     cfg.registry,
		strictSelect: cfg.strictSelect,
		labels:       cfg.labels.WithDefaults(),
	}
}

// RenderForm renders every field in the given order followed by the change
// trigger script.
func (r *Renderer) RenderForm(fields []model.Field, ctx FormContext) (string, error) {
	var buf bytes.Buffer
	data := r.componentData(ctx)
	for _, field := range fields {
		if err := r.renderInto(&buf, field, data); err != nil {
			return "", err
		}
	}
	buf.WriteString(changeScript)
	return buf.String(), nil
}

// RenderField renders a single field.
func (r *Renderer) RenderField(field model.Field, ctx FormContext) (string, error) {
	var buf bytes.Buffer
	if err := r.renderInto(&buf, field, r.componentData(ctx)); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderDay renders the editor of one day of an hours field.
func (r *Renderer) RenderDay(field model.Field, day model.DayHours, first bool, ctx FormContext) string {
	return components.RenderDay(field, day, first, r.componentData(ctx))
}

// Assets lists the asset handles the components of fields depend on.
func (r *Renderer) Assets(fields []model.Field) []string {
	names := make([]string, 0, len(fields))
	for _, field := range fields {
		names = append(names, components.Resolve(field))
	}
	return r.registry.Assets(names)
}

func (r *Renderer) renderInto(buf *bytes.Buffer, field model.Field, data components.ComponentData) error {
	name := components.Resolve(field)
	descriptor, ok := r.registry.Descriptor(name)
	if !ok {
		return fmt.Errorf("admin renderer: component %q not registered for field %q", name, field.Key)
	}
	if err := descriptor.Renderer(buf, field, data); err != nil {
		return fmt.Errorf("admin renderer: render field %q: %w", field.Key, err)
	}
	return nil
}

func (r *Renderer) componentData(ctx FormContext) components.ComponentData {
	slots := ctx.TimeSlots
	if slots == nil {
		slots = timeslots.Generate(timeslots.HalfHour, timeslots.DefaultFormat)
	}
	return components.ComponentData{
		TimeSlots:    slots,
		StrictSelect: r.strictSelect,
		Labels:       r.labels,
	}
}
