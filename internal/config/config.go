// Package config provides configuration types and defaults for the reader.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/kerem-kaynak/visual-reader/internal/logging"
	"github.com/kerem-kaynak/visual-reader/pkg/highlight"
	"github.com/kerem-kaynak/visual-reader/pkg/illustrate"
	"github.com/kerem-kaynak/visual-reader/pkg/reader"
	"github.com/kerem-kaynak/visual-reader/pkg/render"
	"github.com/kerem-kaynak/visual-reader/pkg/tokenizer"
)

// EnvPrefix prefixes environment overrides, e.g. READER_BACKEND_BASE_URL.
const EnvPrefix = "READER"

// Config holds all configuration options.
type Config struct {
	Backend BackendConfig `mapstructure:"backend" yaml:"backend"`
	Reader  ReaderConfig  `mapstructure:"reader" yaml:"reader"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
}

// BackendConfig locates the illustration backend.
type BackendConfig struct {
	Enabled          bool          `mapstructure:"enabled" yaml:"enabled"`
	BaseURL          string        `mapstructure:"base_url" yaml:"base_url"`
	EnvisionPath     string        `mapstructure:"envision_path" yaml:"envision_path"`
	ImageURLTemplate string        `mapstructure:"image_url_template" yaml:"image_url_template"` // {image_id} is substituted
	Timeout          time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// ReaderConfig holds selection and rendering options.
type ReaderConfig struct {
	Policy        string   `mapstructure:"policy" yaml:"policy"` // "single" (default) or "multi"
	ContextRadius int      `mapstructure:"context_radius" yaml:"context_radius"`
	MarkStyle     string   `mapstructure:"mark_style" yaml:"mark_style"`
	Normalize     []string `mapstructure:"normalize" yaml:"normalize"` // extra matching steps: controls, nfc, quotes
}

// LogConfig holds logging options.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"` // "json" or "text"
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Backend: BackendConfig{
			Enabled:          true,
			BaseURL:          illustrate.DefaultBaseURL,
			EnvisionPath:     illustrate.DefaultEnvisionPath,
			ImageURLTemplate: illustrate.DefaultImageURLTemplate,
			Timeout:          illustrate.DefaultTimeout,
		},
		Reader: ReaderConfig{
			Policy:        "single",
			ContextRadius: reader.DefaultContextRadius,
			MarkStyle:     render.DefaultMarkStyle,
			Normalize:     []string{},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// SetDefaults registers every key of Defaults on v, which also makes the
// keys visible to environment overrides.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("backend.enabled", d.Backend.Enabled)
	v.SetDefault("backend.base_url", d.Backend.BaseURL)
	v.SetDefault("backend.envision_path", d.Backend.EnvisionPath)
	v.SetDefault("backend.image_url_template", d.Backend.ImageURLTemplate)
	v.SetDefault("backend.timeout", d.Backend.Timeout)
	v.SetDefault("reader.policy", d.Reader.Policy)
	v.SetDefault("reader.context_radius", d.Reader.ContextRadius)
	v.SetDefault("reader.mark_style", d.Reader.MarkStyle)
	v.SetDefault("reader.normalize", d.Reader.Normalize)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

// New creates a viper instance with defaults and READER_ environment
// overrides. A non-empty path is read as a YAML config file.
func New(path string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	return v, nil
}

// Load builds the configuration from defaults, an optional file and the environment.
func Load(path string) (Config, error) {
	v, err := New(path)
	if err != nil {
		return Config{}, err
	}
	return FromViper(v)
}

// FromViper decodes and validates the configuration held by v.
func FromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration values.
func (c Config) Validate() error {
	var errs []error
	if _, err := highlight.ParsePolicy(c.Reader.Policy); err != nil {
		errs = append(errs, err)
	}
	if c.Reader.ContextRadius < 0 {
		errs = append(errs, fmt.Errorf("reader.context_radius must not be negative, got %d", c.Reader.ContextRadius))
	}
	if _, err := tokenizer.NewNormalizerFromNames(c.Reader.Normalize...); err != nil {
		errs = append(errs, fmt.Errorf("reader.normalize: %w", err))
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	if _, err := logging.ParseFormat(c.Log.Format); err != nil {
		errs = append(errs, err)
	}
	if c.Backend.Enabled && !strings.Contains(c.Backend.ImageURLTemplate, "{image_id}") {
		errs = append(errs, fmt.Errorf("backend.image_url_template %q has no {image_id} placeholder", c.Backend.ImageURLTemplate))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// Illustrate returns the illustration client options.
func (c Config) Illustrate() illustrate.Options {
	return illustrate.Options{
		BaseURL:          c.Backend.BaseURL,
		EnvisionPath:     c.Backend.EnvisionPath,
		ImageURLTemplate: c.Backend.ImageURLTemplate,
		Timeout:          c.Backend.Timeout,
	}
}

// Normalizer returns the normalizer used to match selections against the
// document.
func (c Config) Normalizer() (*tokenizer.Normalizer, error) {
	return tokenizer.NewNormalizerFromNames(c.Reader.Normalize...)
}

// YAML renders the configuration as a YAML document.
func (c Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}
