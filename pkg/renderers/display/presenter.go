// Package display renders the front-end markup of a widget placement.
package display

import (
	"fmt"
	"html"
	"io/fs"
	"strings"

	"github.com/goliatone/go-widgetform/pkg/fields"
	"github.com/goliatone/go-widgetform/pkg/hooks"
	"github.com/goliatone/go-widgetform/pkg/host"
	"github.com/goliatone/go-widgetform/pkg/model"
	rendertemplate "github.com/goliatone/go-widgetform/pkg/render/template"
	"github.com/goliatone/go-widgetform/pkg/render/template/pongo"
)

const widgetTemplate = "widget"

// Option customises the presenter.
type Option func(*config)

type config struct {
	templateFS fs.FS
	filters    *hooks.Filters
	showLabels bool
}

// WithTemplatesFS replaces the embedded templates. The bundle must provide
// widget.tmpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templateFS = files
		}
	}
}

// WithFilters sets the hook registry consulted for the title and the
// emptiness check.
func WithFilters(filters *hooks.Filters) Option {
	return func(cfg *config) {
		cfg.filters = filters
	}
}

// WithLabels prints field labels above values.
func WithLabels(show bool) Option {
	return func(cfg *config) {
		cfg.showLabels = show
	}
}

// Presenter renders ordered fields between the host wrapper markup.
type Presenter struct {
	templates  rendertemplate.TemplateRenderer
	filters    *hooks.Filters
	showLabels bool
}

// New constructs a presenter.
func New(options ...Option) (*Presenter, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	engine, err := pongo.New(pongo.WithFS(cfg.templateFS), pongo.WithExtension(".tmpl"))
	if err != nil {
		return nil, fmt.Errorf("display presenter: configure templates: %w", err)
	}
	return &Presenter{templates: engine, filters: cfg.filters, showLabels: cfg.showLabels}, nil
}

// ShowingLabels returns a copy of p that prints labels when show is set.
func (p *Presenter) ShowingLabels(show bool) *Presenter {
	clone := *p
	clone.showLabels = show
	return &clone
}

// Render prints the widget. A widget without visible content renders
// nothing. The first field is printed as the title when it is the title
// field; every other field becomes a list item.
func (p *Presenter) Render(ordered []model.Field, args host.WrapperArgs) (string, error) {
	ignoreTitle := p.filters.ApplyBool(hooks.HookIgnoreTitle, false)
	if fields.IsEmpty(ordered, ignoreTitle) {
		return "", nil
	}

	title := ""
	rest := ordered
	if len(ordered) > 0 && ordered[0].IsTitle() {
		field := ordered[0]
		rest = ordered[1:]
		if !field.Value.IsEmpty() {
			title = p.filters.ApplyString(hooks.HookWidgetTitle, field.Escape(field.Value.Text))
		}
	}

	items := make([]map[string]any, 0, len(rest))
	for _, field := range rest {
		if !visible(field) {
			continue
		}
		item := map[string]any{
			"key":  field.Key,
			"html": valueHTML(field),
		}
		if p.showLabels {
			item["label"] = field.Label
		}
		items = append(items, item)
	}

	out, err := p.templates.RenderTemplate(widgetTemplate, map[string]any{
		"args": map[string]any{
			"before_widget": args.BeforeWidget,
			"after_widget":  args.AfterWidget,
			"before_title":  args.BeforeTitle,
			"after_title":   args.AfterTitle,
		},
		"title": title,
		"items": items,
	})
	if err != nil {
		return "", fmt.Errorf("display presenter: %w", err)
	}
	return strings.TrimRight(out, "\n"), nil
}

// visible reports whether field is printed on the front end. Checkboxes are
// settings toggles, not content.
func visible(field model.Field) bool {
	if !field.ShowFrontEnd || field.IsTitle() || field.Type == model.FieldTypeCheckbox {
		return false
	}
	return !field.Value.IsEmpty() || field.ShowEmpty
}

func valueHTML(field model.Field) string {
	if field.Value.IsHours() {
		return hoursHTML(field)
	}
	value := field.Value.Text
	if field.Type == model.FieldTypeSelect {
		for _, option := range field.SelectOptions {
			if option.Value == value {
				value = option.Label
				break
			}
		}
	}
	escaped := field.Escape(value)
	if field.Type == model.FieldTypeTextarea {
		escaped = strings.ReplaceAll(escaped, "\n", "<br>")
	}
	return escaped
}

func hoursHTML(field model.Field) string {
	var b strings.Builder
	b.WriteString(`<ul class="hours">`)
	for _, day := range field.Value.Hours {
		fmt.Fprintf(&b, `<li><strong>%s</strong> `, html.EscapeString(day.Day))
		if day.NotOpen || day.Rows() == 0 {
			b.WriteString(`<span class="closed">Closed</span></li>`)
			continue
		}
		slots := make([]string, 0, day.Rows())
		for row := 1; row <= day.Rows(); row++ {
			slots = append(slots, field.Escape(day.OpenAt(row))+" - "+field.Escape(day.ClosedAt(row)))
		}
		b.WriteString(strings.Join(slots, ", "))
		b.WriteString(`</li>`)
	}
	b.WriteString(`</ul>`)
	return b.String()
}
