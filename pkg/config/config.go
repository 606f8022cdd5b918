// Package config loads the editor's startup configuration from YAML.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-classdiagram/pkg/form"
	"github.com/dd0wney/cluso-classdiagram/pkg/projection"
	"github.com/dd0wney/cluso-classdiagram/pkg/validation"
)

// Config is the editor configuration
type Config struct {
	LogLevel    string        `yaml:"log_level"`
	AuditBuffer int           `yaml:"audit_buffer"` // edit history capacity
	EventBuffer int           `yaml:"event_buffer"` // per-subscriber change buffer
	Layout      LayoutConfig  `yaml:"layout"`
	Seed        []ClassConfig `yaml:"seed"` // classes present at startup
}

// LayoutConfig selects and sizes the diagram layout
type LayoutConfig struct {
	Kind    string  `yaml:"kind"`
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	Padding float64 `yaml:"padding"`
	Columns int     `yaml:"columns"`
}

// ClassConfig is a seeded class. Members are given as form text and go
// through the same validation as typed input.
type ClassConfig struct {
	Name       string            `yaml:"name"`
	Attributes []AttributeConfig `yaml:"attributes"`
	Methods    []MethodConfig    `yaml:"methods"`
}

type AttributeConfig struct {
	Visibility string `yaml:"visibility"`
	Name       string `yaml:"name"`
	Type       string `yaml:"type"`
}

type MethodConfig struct {
	Visibility string `yaml:"visibility"`
	Name       string `yaml:"name"`
	ReturnType string `yaml:"return_type"`
	Args       string `yaml:"args"` // comma separated
}

// Draft returns the attribute as a creation draft
func (a AttributeConfig) Draft() form.AttributeDraft {
	return form.AttributeDraft{Visibility: a.Visibility, Name: a.Name, Type: a.Type}
}

// Draft returns the method as a creation draft
func (m MethodConfig) Draft() form.MethodDraft {
	return form.MethodDraft{Visibility: m.Visibility, Name: m.Name, ReturnType: m.ReturnType, Args: m.Args}
}

// LogLevels lists the accepted log_level values
var LogLevels = []string{"debug", "info", "warn", "error"}

// Default returns the configuration of a fresh diagram: one Example class
// with a single attribute and method.
func Default() *Config {
	d := projection.DefaultLayoutConfig()
	return &Config{
		LogLevel:    "info",
		AuditBuffer: 1024,
		EventBuffer: 64,
		Layout: LayoutConfig{
			Kind:    projection.LayoutGrid,
			Width:   d.Width,
			Height:  d.Height,
			Padding: d.Padding,
		},
		Seed: []ClassConfig{
			{
				Name:       "Example",
				Attributes: []AttributeConfig{{Visibility: "+", Name: "attr1", Type: "string"}},
				Methods:    []MethodConfig{{Visibility: "+", Name: "method1", ReturnType: "void"}},
			},
		},
	}
}

// Load reads a YAML file over the defaults. A LOG_LEVEL environment
// variable overrides log_level.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field and reports all problems at once
func (c *Config) Validate() error {
	v := validation.NewConfigValidator("config").
		OneOf("log_level", c.LogLevel, LogLevels).
		Positive("audit_buffer", c.AuditBuffer).
		Positive("event_buffer", c.EventBuffer).
		OneOf("layout.kind", c.Layout.Kind, projection.LayoutKinds).
		PositiveFloat("layout.width", c.Layout.Width).
		PositiveFloat("layout.height", c.Layout.Height).
		NonNegativeFloat("layout.padding", c.Layout.Padding).
		When(c.Layout.Columns != 0, func(v *validation.ConfigValidator) {
			v.Positive("layout.columns", c.Layout.Columns)
		})

	for i, class := range c.Seed {
		v.Required(fmt.Sprintf("seed[%d].name", i), strings.TrimSpace(class.Name))
	}

	return v.Validate()
}

// ProjectionLayout builds the configured layout
func (c *Config) ProjectionLayout() (projection.Layout, error) {
	return projection.NewLayout(c.Layout.Kind, projection.LayoutConfig{
		Width:   c.Layout.Width,
		Height:  c.Layout.Height,
		Padding: c.Layout.Padding,
		Columns: c.Layout.Columns,
	})
}
