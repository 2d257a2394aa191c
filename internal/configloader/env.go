package configloader

import (
	"os"
	"strings"

	"github.com/lpenaud/odtmerge/pkg/config"
)

// EnvPrefix is the prefix for environment variables.
const EnvPrefix = "ODTMERGE_"

// LoadFromEnv creates a config from environment variables. Variables use
// the ODTMERGE_ prefix, e.g. ODTMERGE_LOG_LEVEL=debug. Merge variables may
// be set via ODTMERGE_VAR_<name>=value.
func LoadFromEnv() *config.Config {
	cfg := &config.Config{
		Variables: make(map[string]string),
	}

	if value := os.Getenv(EnvPrefix + "LOG_LEVEL"); value != "" {
		cfg.LogLevel = value
	}
	if value := os.Getenv(EnvPrefix + "OUTPUT"); value != "" {
		cfg.Output = value
	}
	if value := os.Getenv(EnvPrefix + "DATA"); value != "" {
		cfg.Data = value
	}

	// ODTMERGE_VAR_title=Report becomes the merge variable "title".
	const varPrefix = EnvPrefix + "VAR_"
	for _, entry := range os.Environ() {
		if !strings.HasPrefix(entry, varPrefix) {
			continue
		}
		name, value, found := strings.Cut(entry[len(varPrefix):], "=")
		if !found || name == "" {
			continue
		}
		cfg.Variables[name] = value
	}

	return cfg
}
