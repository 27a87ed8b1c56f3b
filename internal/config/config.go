package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"dario.cat/mergo"
	"github.com/kballard/go-shellquote"
	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in the working directory
const FileName = ".stoke.yaml"

// ShellNone disables the shell; recipe lines are split and executed directly
const ShellNone = "none"

// Color modes
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config represents the stoke configuration
type Config struct {
	File          string `yaml:"file,omitempty"`
	DefaultTarget string `yaml:"default_target,omitempty"`
	Shell         string `yaml:"shell,omitempty"`
	LogFile       string `yaml:"log_file,omitempty"`
	Color         string `yaml:"color,omitempty"`
	Silent        bool   `yaml:"silent,omitempty"`
	Strict        bool   `yaml:"strict,omitempty"`
}

// Defaults returns the built-in configuration
func Defaults() Config {
	return Config{
		Shell: "/bin/sh -c",
		Color: ColorAuto,
	}
}

// LoadConfig reads dir/.stoke.yaml. A missing file yields the defaults.
func LoadConfig(dir string) (*Config, error) {
	configPath := filepath.Join(dir, FileName)

	var cfg Config
	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse %s: %w", configPath, err)
		}
	case errors.Is(err, fs.ErrNotExist):
		// no config file
	default:
		return nil, fmt.Errorf("failed to read %s: %w", configPath, err)
	}

	if err := mergo.Merge(&cfg, Defaults()); err != nil {
		return nil, fmt.Errorf("failed to apply defaults: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", configPath, err)
	}
	return &cfg, nil
}

// Override applies non-zero fields of overrides on top of c. Boolean keys
// listed in explicit ("silent", "strict") are copied even when false, so a flag
// set on the command line can switch off a value from the file.
func (c *Config) Override(overrides Config, explicit ...string) error {
	if err := mergo.Merge(c, overrides, mergo.WithOverride); err != nil {
		return fmt.Errorf("failed to apply overrides: %w", err)
	}
	for _, key := range explicit {
		switch key {
		case "silent":
			c.Silent = overrides.Silent
		case "strict":
			c.Strict = overrides.Strict
		default:
			return fmt.Errorf("unknown boolean setting %q", key)
		}
	}
	return c.Validate()
}

// Validate checks enumerated values
func (c *Config) Validate() error {
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("invalid color %q: must be 'auto', 'always' or 'never'", c.Color)
	}
	if _, err := c.ShellArgs(); err != nil {
		return err
	}
	return nil
}

// ShellArgs splits the configured shell into a command prefix. It returns an
// empty slice when the shell is disabled.
func (c *Config) ShellArgs() ([]string, error) {
	if c.Shell == ShellNone {
		return []string{}, nil
	}
	args, err := shellquote.Split(c.Shell)
	if err != nil {
		return nil, fmt.Errorf("invalid shell %q: %w", c.Shell, err)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("invalid shell %q: empty command", c.Shell)
	}
	return args, nil
}
