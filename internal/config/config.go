// Package config provides centralized configuration management for vtex-deploy.
// It handles the optional YAML file, .env files, environment variables,
// default values, and configuration validation.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/LiboWorks/vtex-deploy/internal/workflow"
)

// VendorSource selects how a workflow learns the target account.
type VendorSource string

const (
	// VendorInteractive asks the operator.
	VendorInteractive VendorSource = "interactive"
	// VendorManifest reads the vendor field of the app descriptor.
	VendorManifest VendorSource = "manifest"
)

// ParseVendorSource validates a vendor source name.
func ParseVendorSource(s string) (VendorSource, error) {
	switch v := VendorSource(strings.ToLower(strings.TrimSpace(s))); v {
	case VendorInteractive, VendorManifest:
		return v, nil
	}
	return "", fmt.Errorf("unknown vendor source %q (want %q or %q)", s, VendorInteractive, VendorManifest)
}

// Config holds all configuration settings for vtex-deploy
type Config struct {
	// Platform CLI
	Binary string

	// App descriptor and migration settings
	ManifestPath string
	GraphQLIDE   string
	ThemeFrom    string
	ThemeTo      string

	// Vendor resolution per workflow type
	VendorSources map[workflow.Type]VendorSource

	// Runtime settings
	Capture        bool // run every command in capture mode
	NonInteractive bool

	// Output settings
	LogFile   string
	Verbose   bool
	DebugMode bool // stream captured output to the terminal
	NoColor   bool
}

var (
	globalConfig *Config
	globalErr    error
	configOnce   sync.Once
)

// Default values
const (
	DefaultBinary       = "vtex"
	DefaultManifestPath = "manifest.json"
	DefaultGraphQLIDE   = "vtex.admin-graphql-ide@3.x"
	DefaultThemeFrom    = "3.x"
	DefaultThemeTo      = "4.x"
	DefaultConfigFile   = "vtexdeploy.yaml"
	DefaultEnvFile      = ".env"
	DefaultVendorSource = VendorInteractive
)

// Get returns the global configuration, loading it on first use from
// .env, the YAML file and the environment.
func Get() (*Config, error) {
	configOnce.Do(func() {
		globalConfig, globalErr = Load()
	})
	return globalConfig, globalErr
}

// Reset clears the global configuration, forcing reload on next Get()
// This is primarily useful for testing
func Reset() {
	configOnce = sync.Once{}
	globalConfig = nil
	globalErr = nil
}

// NewConfig creates a new configuration with default values
// This is useful for testing or programmatic configuration
func NewConfig() *Config {
	c := &Config{
		Binary:        DefaultBinary,
		ManifestPath:  DefaultManifestPath,
		GraphQLIDE:    DefaultGraphQLIDE,
		ThemeFrom:     DefaultThemeFrom,
		ThemeTo:       DefaultThemeTo,
		VendorSources: make(map[workflow.Type]VendorSource),
	}
	for _, t := range workflow.Types() {
		c.VendorSources[t] = DefaultVendorSource
	}
	return c
}

// Load builds a configuration from defaults, the YAML file (when present)
// and the environment, in increasing order of precedence. The file is taken
// from VTEXDEPLOY_CONFIG, falling back to DefaultConfigFile.
func Load() (*Config, error) {
	return LoadFrom(getEnv("VTEXDEPLOY_CONFIG", ""))
}

// LoadFrom is Load with an explicit config file. An empty path means the
// optional default file. A .env file in the working directory is loaded into
// the environment first; variables already set are not overridden.
func LoadFrom(path string) (*Config, error) {
	if _, err := os.Stat(DefaultEnvFile); err == nil {
		if err := godotenv.Load(DefaultEnvFile); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", DefaultEnvFile, err)
		}
	}
	if path == "" {
		path = getEnv("VTEXDEPLOY_CONFIG", "")
	}

	cfg := NewConfig()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}
	if err := cfg.LoadFile(path); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// fileConfig is the on-disk YAML shape.
type fileConfig struct {
	Binary     string `yaml:"binary"`
	Manifest   string `yaml:"manifest"`
	LogFile    string `yaml:"log_file"`
	GraphQLIDE string `yaml:"graphql_ide"`
	Capture    *bool  `yaml:"capture"`
	Verbose    *bool  `yaml:"verbose"`
	Theme      struct {
		From string `yaml:"from"`
		To   string `yaml:"to"`
	} `yaml:"theme"`
	VendorSource map[string]string `yaml:"vendor_source"`
}

// LoadFile merges the YAML file at path into c. Empty values keep the
// current settings.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	setIf(&c.Binary, fc.Binary)
	setIf(&c.ManifestPath, fc.Manifest)
	setIf(&c.LogFile, fc.LogFile)
	setIf(&c.GraphQLIDE, fc.GraphQLIDE)
	setIf(&c.ThemeFrom, fc.Theme.From)
	setIf(&c.ThemeTo, fc.Theme.To)
	if fc.Capture != nil {
		c.Capture = *fc.Capture
	}
	if fc.Verbose != nil {
		c.Verbose = *fc.Verbose
	}

	for name, src := range fc.VendorSource {
		t, err := workflow.ParseType(name)
		if err != nil {
			return fmt.Errorf("config %s: vendor_source: %w", path, err)
		}
		vs, err := ParseVendorSource(src)
		if err != nil {
			return fmt.Errorf("config %s: vendor_source.%s: %w", path, name, err)
		}
		c.VendorSources[t] = vs
	}
	return nil
}

// applyEnv loads configuration from environment variables
func (c *Config) applyEnv() error {
	c.Binary = getEnv("VTEXDEPLOY_BINARY", c.Binary)
	c.ManifestPath = getEnv("VTEXDEPLOY_MANIFEST", c.ManifestPath)
	c.GraphQLIDE = getEnv("VTEXDEPLOY_GRAPHQL_IDE", c.GraphQLIDE)
	c.ThemeFrom = getEnv("VTEXDEPLOY_THEME_FROM", c.ThemeFrom)
	c.ThemeTo = getEnv("VTEXDEPLOY_THEME_TO", c.ThemeTo)
	c.LogFile = getEnv("VTEXDEPLOY_LOG_FILE", c.LogFile)

	c.Capture = getEnvBool("VTEXDEPLOY_CAPTURE", c.Capture)
	c.NonInteractive = getEnvBool("VTEXDEPLOY_NON_INTERACTIVE", c.NonInteractive)
	c.Verbose = getEnvBool("VTEXDEPLOY_VERBOSE", c.Verbose)
	c.DebugMode = getEnvBool("VTEXDEPLOY_DEBUG", c.DebugMode)
	c.NoColor = getEnvBool("NO_COLOR", c.NoColor)

	if v := os.Getenv("VTEXDEPLOY_VENDOR_SOURCE"); v != "" {
		vs, err := ParseVendorSource(v)
		if err != nil {
			return fmt.Errorf("VTEXDEPLOY_VENDOR_SOURCE: %w", err)
		}
		c.WithVendorSource(vs)
	}
	return nil
}

// VendorSourceFor returns the vendor source configured for t.
func (c *Config) VendorSourceFor(t workflow.Type) VendorSource {
	if vs, ok := c.VendorSources[t]; ok && vs != "" {
		return vs
	}
	return DefaultVendorSource
}

// WithBinary sets the platform CLI binary
func (c *Config) WithBinary(binary string) *Config {
	if binary != "" {
		c.Binary = binary
	}
	return c
}

// WithManifest sets the app descriptor path
func (c *Config) WithManifest(path string) *Config {
	if path != "" {
		c.ManifestPath = path
	}
	return c
}

// WithVendorSource sets the vendor source for the given types, or for all
// types when none are given.
func (c *Config) WithVendorSource(vs VendorSource, types ...workflow.Type) *Config {
	if c.VendorSources == nil {
		c.VendorSources = make(map[workflow.Type]VendorSource)
	}
	if len(types) == 0 {
		types = workflow.Types()
	}
	for _, t := range types {
		c.VendorSources[t] = vs
	}
	return c
}

// WithMigration configures the major release migration
func (c *Config) WithMigration(graphqlIDE, themeFrom, themeTo string) *Config {
	setIf(&c.GraphQLIDE, graphqlIDE)
	setIf(&c.ThemeFrom, themeFrom)
	setIf(&c.ThemeTo, themeTo)
	return c
}

// WithCapture enables capture mode for every command
func (c *Config) WithCapture(enabled bool) *Config {
	c.Capture = enabled
	return c
}

// WithOutput configures the diagnostic log file
func (c *Config) WithOutput(logFile string) *Config {
	c.LogFile = logFile
	return c
}

// WithDebug enables debug (captured output is also streamed) and verbose modes
func (c *Config) WithDebug(debug, verbose bool) *Config {
	c.DebugMode = debug
	c.Verbose = verbose
	return c
}

// Validate checks if the configuration is valid for the intended use
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Binary) == "" {
		return fmt.Errorf("platform CLI binary is required")
	}
	if c.ManifestPath == "" {
		return fmt.Errorf("manifest path is required")
	}
	for t, vs := range c.VendorSources {
		if !t.Valid() {
			return fmt.Errorf("vendor source set for unknown workflow type %q", t)
		}
		if _, err := ParseVendorSource(string(vs)); err != nil {
			return fmt.Errorf("%s: %w", t, err)
		}
	}
	return nil
}

// Helper functions for environment variable parsing

func setIf(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
		// Also accept "yes" as true
		if strings.EqualFold(value, "yes") {
			return true
		}
	}
	return defaultValue
}
