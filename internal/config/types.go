// Package config loads jsonize settings from defaults, a YAML file,
// JSONIZE_ environment variables and command-line flags, in increasing
// order of precedence.
package config

import (
	"fmt"
	"slices"
)

// Default values.
const (
	DefaultConfigFile = "jsonize.yaml"
	DefaultValueKey   = "value"
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "text"
	DefaultPretty     = PrettyAuto
)

// Pretty-print modes for JSON output.
const (
	PrettyAuto   = "auto"
	PrettyAlways = "always"
	PrettyNever  = "never"
)

// Config holds every setting of the CLI.
type Config struct {
	// Namespaces maps prefixes to URIs. Empty means the table declared on
	// each document root.
	Namespaces     map[string]string `koanf:"namespaces"`
	IgnoreEmpty    bool              `koanf:"ignore_empty"`
	ValueKey       string            `koanf:"value_key"`
	AttributeTag   string            `koanf:"attribute_tag"`
	KeepNamespaces bool              `koanf:"keep_namespaces"`
	Pretty         string            `koanf:"pretty"`
	Workers        int               `koanf:"workers"`
	LogLevel       string            `koanf:"log_level"`
	LogFormat      string            `koanf:"log_format"`
	ValidateSchema bool              `koanf:"validate_schema"`

	// File is the config file that was loaded, if any.
	File string `koanf:"-"`
}

// Validate checks the enumerated settings.
func (c *Config) Validate() error {
	if !slices.Contains([]string{PrettyAuto, PrettyAlways, PrettyNever}, c.Pretty) {
		return fmt.Errorf("pretty must be one of auto, always, never; got %q", c.Pretty)
	}

	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}

	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("log_format must be text or json; got %q", c.LogFormat)
	}

	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative; got %d", c.Workers)
	}

	return nil
}
