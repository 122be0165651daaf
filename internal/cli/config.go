package cli

import (
	"os"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/jwire-dev/jwire/internal/errors"
)

// CurrentSchema is the manifest/config schema version this build understands
const CurrentSchema = "v1.0.0"

// Config holds the tool configuration, loadable from a jwire.yaml file
type Config struct {
	// Schema is the config schema version, validated against CurrentSchema
	Schema string `yaml:"schema"`

	// OutputDir is where generated component files are written.
	// Empty means alongside the manifest.
	OutputDir string `yaml:"output"`

	// NullChecks wraps provider-method invocations with checkNotNull
	NullChecks bool `yaml:"nullChecks"`

	// Verbose enables detailed logging and error reporting
	Verbose bool `yaml:"-"`
}

// DefaultConfig returns the configuration used when no config file exists
func DefaultConfig() *Config {
	return &Config{
		Schema:     CurrentSchema,
		NullChecks: true,
	}
}

// LoadConfig reads and validates a yaml config file
func LoadConfig(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.FileSystemErrorCode, err, "failed to read config %s", path)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(content, config); err != nil {
		return nil, errors.Wrapf(errors.ConfigurationErrorCode, err, "failed to parse config %s", path)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the schema version against what this build understands
func (c *Config) Validate() error {
	if c.Schema == "" {
		c.Schema = CurrentSchema
		return nil
	}
	if !semver.IsValid(c.Schema) {
		return errors.Newf(errors.ConfigurationErrorCode,
			"invalid schema version %q", c.Schema).
			WithSuggestion("use a semantic version such as " + CurrentSchema)
	}
	if semver.Major(c.Schema) != semver.Major(CurrentSchema) {
		return errors.Newf(errors.ConfigurationErrorCode,
			"schema version %s is not supported by this build (current %s)", c.Schema, CurrentSchema).
			WithSuggestion("regenerate the config or upgrade jwire")
	}
	return nil
}
