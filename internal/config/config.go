// Package config loads the widgetform runtime configuration from JSONC or YAML
// files and validates it.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
	"github.com/tailscale/hujson"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-widgetform/pkg/timeslots"
)

// Store drivers.
const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverSQLite = "sqlite"
)

// Config is the root configuration document.
type Config struct {
	Widget  Widget  `json:"widget" yaml:"widget"`
	Store   Store   `json:"store" yaml:"store"`
	Logging Logging `json:"logging" yaml:"logging"`
	Server  Server  `json:"server" yaml:"server"`
}

// Widget configures the widget type served by the process.
type Widget struct {
	IDBase        string `json:"id_base" yaml:"id_base"`
	Name          string `json:"name" yaml:"name"`
	TimeFormat    string `json:"time_format" yaml:"time_format"`
	HourIncrement string `json:"hour_increment" yaml:"hour_increment"`
	IgnoreTitle   bool   `json:"ignore_title" yaml:"ignore_title"`
	StrictSelect  bool   `json:"strict_select" yaml:"strict_select"`
	// SchemaPath points at a YAML or JSON field schema. Empty selects the
	// built-in contact schema.
	SchemaPath string `json:"schema_path" yaml:"schema_path"`
	// TemplatesDir overrides the front-end templates. The directory must
	// provide widget.tmpl.
	TemplatesDir string `json:"templates_dir" yaml:"templates_dir"`
}

// Store selects where widget instances are persisted.
type Store struct {
	Driver string `json:"driver" yaml:"driver"`
	Path   string `json:"path" yaml:"path"`
	DSN    string `json:"dsn" yaml:"dsn"`
}

// Logging configures the go-logger provider.
type Logging struct {
	Level     string `json:"level" yaml:"level"`
	Format    string `json:"format" yaml:"format"`
	AddSource bool   `json:"add_source" yaml:"add_source"`
	Focus     string `json:"focus" yaml:"focus"`
}

// Server configures the HTTP surface.
type Server struct {
	Addr string `json:"addr" yaml:"addr"`
}

// DefaultConfig returns the configuration used when no file is supplied.
func DefaultConfig() Config {
	return Config{
		Widget: Widget{
			IDBase:        "wpcw_contact",
			Name:          "Contact",
			TimeFormat:    timeslots.DefaultFormat,
			HourIncrement: timeslots.IncrementHalfHour,
		},
		Store: Store{
			Driver: DriverMemory,
		},
		Logging: Logging{
			Level:  "info",
			Format: "console",
		},
		Server: Server{
			Addr: ":8080",
		},
	}
}

// Load reads path, fills unset values from DefaultConfig and validates the
// result. An empty path returns the defaults.
func Load(path string) (Config, error) {
	if strings.TrimSpace(path) == "" {
		cfg := DefaultConfig()
		return cfg, cfg.Validate()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, goerrors.Wrap(err, goerrors.CategoryNotFound, "read configuration file").
			WithTextCode("CONFIG_READ_FAILED").
			WithMetadata(map[string]any{"path": path})
	}
	return Parse(data, filepath.Ext(path))
}

// Parse decodes data according to ext (".yaml", ".yml" or anything else for
// JSON with comments) and merges it over the defaults.
func Parse(data []byte, ext string) (Config, error) {
	var cfg Config
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, parseError(err, "yaml")
		}
	default:
		standardized, err := hujson.Standardize(data)
		if err != nil {
			return Config{}, parseError(err, "jsonc")
		}
		if err := json.Unmarshal(standardized, &cfg); err != nil {
			return Config{}, parseError(err, "json")
		}
	}

	if err := mergo.Merge(&cfg, DefaultConfig()); err != nil {
		return Config{}, goerrors.Wrap(err, goerrors.CategoryInternal, "apply configuration defaults")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func parseError(err error, format string) error {
	return goerrors.Wrap(err, goerrors.CategoryBadInput, "parse configuration").
		WithTextCode("CONFIG_PARSE_FAILED").
		WithMetadata(map[string]any{"format": format})
}

// Validate checks the configuration and reports field errors as a go-errors
// validation error.
func (c Config) Validate() error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.Widget),
		validation.Field(&c.Store),
		validation.Field(&c.Logging),
		validation.Field(&c.Server),
	)
	if err != nil {
		return goerrors.FromOzzoValidation(err, "invalid configuration").
			WithTextCode("CONFIG_INVALID")
	}
	return nil
}

func (w Widget) Validate() error {
	return validation.ValidateStruct(&w,
		validation.Field(&w.IDBase, validation.Required),
		validation.Field(&w.HourIncrement, validation.In(
			timeslots.IncrementHalfHour,
			timeslots.IncrementFifteenMinutes,
		)),
	)
}

func (s Store) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Driver, validation.Required, validation.In(DriverMemory, DriverFile, DriverSQLite)),
		validation.Field(&s.Path, validation.When(s.Driver == DriverFile, validation.Required)),
		validation.Field(&s.DSN, validation.When(s.Driver == DriverSQLite, validation.Required)),
	)
}

func (l Logging) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Level, validation.In("trace", "debug", "info", "warn", "error", "fatal")),
		validation.Field(&l.Format, validation.In("console", "json", "pretty")),
	)
}

func (s Server) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Addr, validation.Required),
	)
}
