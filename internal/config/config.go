package config

import (
	"io/fs"
	"time"

	"github.com/spf13/viper"

	"github.com/thoreinstein/tigen/internal/errors"
	"github.com/thoreinstein/tigen/internal/paths"
)

// AppName is the application name used for config file naming.
const AppName = paths.AppName

// Default values applied by Init.
const (
	DefaultColors   = 256
	DefaultRGBBits  = 8
	DefaultLanguage = "c"
	DefaultConstant = "terminfo_capabilities"
	DefaultGuard    = "#pragma once"
	DefaultPackage  = "terminfo"
	DefaultResolve  = "single-pass"
	DefaultDebounce = "200ms"
)

// Config represents the top-level configuration structure.
type Config struct {
	Version  int         `mapstructure:"version" yaml:"version"`
	Colors   int64       `mapstructure:"colors" yaml:"colors"`
	RGBBits  int64       `mapstructure:"rgb_bits" yaml:"rgb_bits"`
	Language string      `mapstructure:"language" yaml:"language"`
	Constant string      `mapstructure:"constant" yaml:"constant"`
	Guard    string      `mapstructure:"guard" yaml:"guard"`
	Package  string      `mapstructure:"package" yaml:"package"`
	Template string      `mapstructure:"template" yaml:"template,omitempty"`
	Resolve  string      `mapstructure:"resolve" yaml:"resolve"`
	Watch    WatchConfig `mapstructure:"watch" yaml:"watch"`
}

// WatchConfig configures compile --watch.
type WatchConfig struct {
	// Debounce is a duration string such as "200ms".
	Debounce string `mapstructure:"debounce" yaml:"debounce"`
}

// DebounceDelay parses Debounce, falling back to the default on an empty value.
func (w WatchConfig) DebounceDelay() (time.Duration, error) {
	s := w.Debounce
	if s == "" {
		s = DefaultDebounce
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, errors.Wrapf(err, "watch.debounce %q", w.Debounce)
	}
	return d, nil
}

// Init initializes Viper with default configuration.
// Call this once at application startup before accessing config values.
// Any state left by a previous Init is discarded.
func Init() {
	viper.Reset()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".")
	viper.AddConfigPath(paths.ConfigDir())

	viper.SetEnvPrefix("TIGEN")
	viper.AutomaticEnv()

	viper.SetDefault("version", 1)
	viper.SetDefault("colors", DefaultColors)
	viper.SetDefault("rgb_bits", DefaultRGBBits)
	viper.SetDefault("language", DefaultLanguage)
	viper.SetDefault("constant", DefaultConstant)
	viper.SetDefault("guard", DefaultGuard)
	viper.SetDefault("package", DefaultPackage)
	viper.SetDefault("template", "")
	viper.SetDefault("resolve", DefaultResolve)
	viper.SetDefault("watch.debounce", DefaultDebounce)
}

// Load reads and validates the configuration.
// If path is provided, it reads from that specific file and a missing file is
// an error. If path is empty, the default locations are searched and a
// missing file means defaults apply.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound) && path == "":
			// implicit load, defaults apply
		case errors.As(err, &notFound), errors.Is(err, fs.ErrNotExist):
			return nil, errors.Wrapf(err, "config file not found at %s", path)
		default:
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, errors.Wrap(errors.Join(errs...), "validating config")
	}

	return &cfg, nil
}

// Used returns the config file viper read, or "" when defaults apply.
func Used() string {
	return viper.ConfigFileUsed()
}
