package configloader

import (
	"context"
	"fmt"
	"os"

	"github.com/lpenaud/odtmerge/pkg/config"
)

// LoadOptions controls configuration loading.
type LoadOptions struct {
	// WorkDir is the directory to start project config discovery from.
	// Empty means the current working directory.
	WorkDir string

	// ExplicitPath is a config file given via --config. When set, project
	// discovery is skipped and the file must exist.
	ExplicitPath string

	// Overrides holds CLI flag values, which take the highest precedence.
	Overrides *config.Config
}

// Load resolves the effective configuration. Precedence, highest first:
// CLI overrides, environment, explicit --config file, project config,
// user config, system config, built-in defaults.
func Load(ctx context.Context, opts LoadOptions) (*config.Config, error) {
	paths, err := DiscoverPaths(ctx, opts.WorkDir)
	if err != nil {
		return nil, fmt.Errorf("discover config paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	systemCfg, err := loadFile(paths.System, false)
	if err != nil {
		return nil, err
	}
	userCfg, err := loadFile(paths.User, false)
	if err != nil {
		return nil, err
	}

	var projectCfg, explicitCfg *config.Config
	if paths.Explicit != "" {
		explicitCfg, err = loadFile(paths.Explicit, true)
		if err != nil {
			return nil, err
		}
	} else {
		projectCfg, err = loadFile(paths.Project, false)
		if err != nil {
			return nil, err
		}
	}

	merged := MergeConfigs(
		systemCfg,
		userCfg,
		projectCfg,
		explicitCfg,
		LoadFromEnv(),
		opts.Overrides,
	)

	return merged, nil
}

// loadFile reads and parses a config file. A missing path yields nil
// unless required is set.
func loadFile(path string, required bool) (*config.Config, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return nil, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg, err := config.FromYAML(data)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, nil
}
