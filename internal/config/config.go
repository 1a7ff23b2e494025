// Package config loads regsettings configuration from defaults, an
// optional YAML file, REGSETTINGS_* environment variables and command-line
// flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Store backends.
const (
	BackendRegfile = "regfile"
	BackendNative  = "native"
	BackendMemory  = "memory"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "REGSETTINGS"

// Config aggregates configuration for the CLI.
type Config struct {
	Store StoreConfig `mapstructure:"store"`
	App   AppConfig   `mapstructure:"app"`
	Log   LogConfig   `mapstructure:"log"`
}

type StoreConfig struct {
	Backend  string `mapstructure:"backend"`
	File     string `mapstructure:"file"`
	Backup   bool   `mapstructure:"backup"`
	Sync     string `mapstructure:"sync"`
	Encoding string `mapstructure:"encoding"`
}

type AppConfig struct {
	Product string `mapstructure:"product"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// Options controls where Load looks.
type Options struct {
	// File is an explicit config file; it must exist when set.
	File string
	// Flags maps config keys (e.g. "store.file") to flags overriding them.
	Flags map[string]*pflag.Flag
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Backend: BackendRegfile,
			File:    filepath.Join(configDir(), "settings.reg"),
			Sync:    "auto",
		},
		Log: LogConfig{Level: "warn"},
	}
}

// Load reads configuration. Environment variables use the prefix
// "REGSETTINGS" with dots replaced by underscores, so "store.file" becomes
// "REGSETTINGS_STORE_FILE".
func Load(opts Options) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	setDefaults(v, cfg)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvs(v, cfg)

	for key, f := range opts.Flags {
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return nil, fmt.Errorf("bind flag %s: %w", f.Name, err)
		}
	}

	if opts.File != "" {
		v.SetConfigFile(opts.File)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", opts.File, err)
		}
	} else {
		v.SetConfigName("regsettings")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(configDir())
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks enumerated fields and reports every problem found.
func (c *Config) Validate() error {
	var errs *multierror.Error
	switch c.Store.Backend {
	case BackendRegfile, BackendNative, BackendMemory:
	default:
		errs = multierror.Append(errs, fmt.Errorf("unknown store backend %q (want %s, %s or %s)",
			c.Store.Backend, BackendRegfile, BackendNative, BackendMemory))
	}
	switch c.Store.Sync {
	case "", "auto", "none", "full":
	default:
		errs = multierror.Append(errs, fmt.Errorf("unknown sync mode %q", c.Store.Sync))
	}
	if c.Store.Backend == BackendRegfile && c.Store.File == "" {
		errs = multierror.Append(errs, errors.New("store.file is required for the regfile backend"))
	}
	return errs.ErrorOrNil()
}

func configDir() string {
	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		return filepath.Join(dir, "regsettings")
	}
	return "."
}

// setDefaults registers every leaf of cfg as a viper default.
func setDefaults(v *viper.Viper, cfg any, parts ...string) {
	walk(cfg, parts, func(key string, val reflect.Value) {
		v.SetDefault(key, val.Interface())
	})
}

// bindEnvs registers all keys within cfg so that viper will look up
// corresponding environment variables when unmarshalling.
func bindEnvs(v *viper.Viper, cfg any) {
	walk(cfg, nil, func(key string, _ reflect.Value) {
		_ = v.BindEnv(key)
	})
}

func walk(cfg any, parts []string, fn func(key string, val reflect.Value)) {
	val := reflect.ValueOf(cfg)
	typ := reflect.TypeOf(cfg)
	if typ.Kind() == reflect.Ptr {
		val = val.Elem()
		typ = typ.Elem()
	}
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		tag := f.Tag.Get("mapstructure")
		if tag == "" {
			tag = strings.ToLower(f.Name)
		}
		key := append(append([]string(nil), parts...), tag)
		if f.Type.Kind() == reflect.Struct {
			walk(val.Field(i).Interface(), key, fn)
			continue
		}
		fn(strings.Join(key, "."), val.Field(i))
	}
}
