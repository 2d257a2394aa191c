// Package config defines the odtmerge configuration model shared by the
// CLI flags, environment variables, and configuration files.
package config

import "maps"

// Default configuration values.
const (
	DefaultLogLevel = "info"
)

// Config holds the resolved odtmerge configuration.
type Config struct {
	// LogLevel controls diagnostic verbosity: debug, info, warn, error.
	LogLevel string `yaml:"log_level,omitempty"`

	// Output is the default output path for rewritten documents. Empty
	// means derive it from the input path.
	Output string `yaml:"output,omitempty"`

	// Data is the default merge data file path.
	Data string `yaml:"data,omitempty"`

	// Variables holds baseline variable assignments. Data-file and
	// CLI-provided variables are merged over them.
	Variables map[string]string `yaml:"variables,omitempty"`
}

// NewConfig returns a Config populated with defaults.
func NewConfig() *Config {
	return &Config{
		LogLevel:  DefaultLogLevel,
		Variables: make(map[string]string),
	}
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	clone := &Config{
		LogLevel: c.LogLevel,
		Output:   c.Output,
		Data:     c.Data,
	}
	if c.Variables != nil {
		clone.Variables = make(map[string]string, len(c.Variables))
		maps.Copy(clone.Variables, c.Variables)
	}
	return clone
}
