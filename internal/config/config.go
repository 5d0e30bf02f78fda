// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package config loads settings for the prettyjson command-line tool from a
// YAML file.
package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/creachadair/prettyjson/format"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// configNames are the file names FindConfigFile looks for, in order.
var configNames = []string{".prettyjson.yaml", ".prettyjson.yml"}

// maxIndent is the longest indentation string accepted by Validate.
const maxIndent = 16

// Config represents the complete configuration for the tool.
type Config struct {
	// Record and print warnings as well as errors.
	Warnings bool `yaml:"warnings"`

	// Accept comments and trailing commas in the style of HuJSON.
	AllowComments bool `yaml:"allow_comments"`

	Format FormatConfig `yaml:"format"`
}

// FormatConfig controls the layout of formatted output.
type FormatConfig struct {
	Indent     string `yaml:"indent"`
	FixedReals bool   `yaml:"fixed_reals"`
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Warnings: true,
		Format: FormatConfig{
			Indent: format.DefaultIndent,
		},
	}
}

// LoadConfig loads configuration from the YAML file at path. Settings not
// mentioned in the file keep their default values. Unknown settings are
// reported as errors.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}
	return ParseConfig(data)
}

// ParseConfig parses configuration from YAML text. An empty input yields
// the defaults.
func ParseConfig(data []byte) (*Config, error) {
	cfg := NewConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "failed to parse config file")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return cfg, nil
}

// Validate reports an error if c contains invalid settings.
func (c *Config) Validate() error {
	if len(c.Format.Indent) > maxIndent {
		return errors.Errorf("indent is longer than %d characters", maxIndent)
	}
	if strings.Trim(c.Format.Indent, " \t") != "" {
		return errors.Errorf("indent %q may contain only spaces and tabs", c.Format.Indent)
	}
	return nil
}

// Formatter returns a formatter for the settings in c.
func (c *Config) Formatter() format.Formatter {
	return format.Formatter{
		Indent:     c.Format.Indent,
		FixedReals: c.Format.FixedReals,
	}
}

// FindConfigFile searches for a config file in the current directory and its
// parents. It returns "" if none is found.
func FindConfigFile() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	return FindConfigFileFrom(dir)
}

// FindConfigFileFrom searches for a config file in dir and its parents. It
// returns "" if none is found.
func FindConfigFileFrom(dir string) string {
	for {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if fi, err := os.Stat(path); err == nil && fi.Mode().IsRegular() {
				return path
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "" // reached the root
		}
		dir = parent
	}
}
