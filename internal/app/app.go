// Package app wires configuration into a ready widget, store and logger.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-widgetform/internal/config"
	"github.com/goliatone/go-widgetform/internal/logging"
	"github.com/goliatone/go-widgetform/internal/logging/gologger"
	"github.com/goliatone/go-widgetform/pkg/hooks"
	"github.com/goliatone/go-widgetform/pkg/host"
	"github.com/goliatone/go-widgetform/pkg/interfaces"
	"github.com/goliatone/go-widgetform/pkg/model"
	"github.com/goliatone/go-widgetform/pkg/renderers/admin"
	"github.com/goliatone/go-widgetform/pkg/renderers/display"
	"github.com/goliatone/go-widgetform/pkg/store"
	"github.com/goliatone/go-widgetform/pkg/store/bunstore"
	"github.com/goliatone/go-widgetform/pkg/store/filestore"
	"github.com/goliatone/go-widgetform/pkg/timeslots"
	"github.com/goliatone/go-widgetform/pkg/widget"
)

// App holds the runtime collaborators built from a Config.
type App struct {
	Config   config.Config
	Provider interfaces.LoggerProvider
	Logger   interfaces.Logger
	Widget   *widget.Widget
	Store    store.Store

	closers []io.Closer
}

// New builds the application graph described by cfg.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	provider, err := gologger.NewProvider(gologger.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.AddSource,
		Focus:     splitList(cfg.Logging.Focus),
	})
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryBadInput, "configure logger").
			WithTextCode("APP_LOGGER_FAILED")
	}

	a := &App{
		Config:   cfg,
		Provider: provider,
		Logger:   logging.ModuleLogger(provider, logging.RootModule),
	}

	if a.Widget, err = buildWidget(cfg.Widget, provider); err != nil {
		return nil, err
	}
	if a.Store, err = a.buildStore(ctx, cfg.Store, provider); err != nil {
		_ = a.Close()
		return nil, err
	}

	a.Logger.Debug("app.ready",
		"widget", a.Widget.IDBase(),
		"store", cfg.Store.Driver,
	)
	return a, nil
}

// Close releases resources opened by New.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// Filters builds the hook registry configured by cfg.
func Filters(cfg config.Widget) *hooks.Filters {
	filters := hooks.New()
	if increment := strings.TrimSpace(cfg.HourIncrement); increment != "" && increment != timeslots.IncrementHalfHour {
		filters.Add(hooks.HookHourIncrement, hooks.DefaultPriority, hooks.Constant(increment))
	}
	if cfg.IgnoreTitle {
		filters.Add(hooks.HookIgnoreTitle, hooks.DefaultPriority, hooks.Constant(true))
	}
	return filters
}

func buildWidget(cfg config.Widget, provider interfaces.LoggerProvider) (*widget.Widget, error) {
	filters := Filters(cfg)
	options := []widget.Option{
		widget.WithFilters(filters),
		widget.WithOptions(host.MapOptions{host.OptionTimeFormat: cfg.TimeFormat}),
		widget.WithLogger(logging.ModuleLogger(provider, logging.WidgetModule)),
		widget.WithAdminRenderer(admin.New(admin.WithStrictSelect(cfg.StrictSelect))),
	}
	if dir := strings.TrimSpace(cfg.TemplatesDir); dir != "" {
		presenter, err := display.New(display.WithFilters(filters), display.WithTemplatesFS(os.DirFS(dir)))
		if err != nil {
			return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "configure front-end templates").
				WithTextCode("TEMPLATES_INVALID").
				WithMetadata(map[string]any{"dir": dir})
		}
		options = append(options, widget.WithPresenter(presenter))
	}

	if strings.TrimSpace(cfg.SchemaPath) == "" {
		if cfg.IDBase == widget.ContactIDBase {
			return widget.NewContact(options...)
		}
		return widget.New(cfg.IDBase, cfg.Name, widget.ContactSchema(),
			append(options, widget.WithLabelsKey(widget.ContactLabelsKey))...)
	}

	schema, err := LoadSchema(cfg.SchemaPath)
	if err != nil {
		return nil, err
	}
	return widget.New(cfg.IDBase, cfg.Name, schema, options...)
}

// LoadSchema reads a field schema from a YAML or JSON file.
func LoadSchema(path string) (model.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryNotFound, "read field schema").
			WithTextCode("SCHEMA_READ_FAILED").
			WithMetadata(map[string]any{"path": path})
	}

	var schema model.Schema
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &schema)
	default:
		err = json.Unmarshal(data, &schema)
	}
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryBadInput, "decode field schema").
			WithTextCode("SCHEMA_DECODE_FAILED").
			WithMetadata(map[string]any{"path": path})
	}
	return schema, nil
}

func (a *App) buildStore(ctx context.Context, cfg config.Store, provider interfaces.LoggerProvider) (store.Store, error) {
	logger := logging.ModuleLogger(provider, logging.StoreModule)

	switch cfg.Driver {
	case config.DriverFile:
		return filestore.New(cfg.Path, filestore.WithLogger(logger)), nil
	case config.DriverSQLite:
		db, err := bunstore.Open(cfg.DSN)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db)
		s := bunstore.New(db, bunstore.WithLogger(logger))
		if err := s.CreateSchema(ctx); err != nil {
			return nil, err
		}
		return s, nil
	default:
		return store.NewMemory(), nil
	}
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
