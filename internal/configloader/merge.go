package configloader

import (
	"maps"

	"github.com/lpenaud/odtmerge/pkg/config"
)

// MergeConfigs merges configs in priority order, where later configs
// override earlier ones. Scalar fields replace when non-empty; the
// Variables map merges key by key.
func MergeConfigs(configs ...*config.Config) *config.Config {
	result := config.NewConfig()

	for _, cfg := range configs {
		if cfg == nil {
			continue
		}
		mergeConfig(result, cfg)
	}

	return result
}

// mergeConfig merges src into dst, with src taking precedence.
func mergeConfig(dst, src *config.Config) {
	if src.LogLevel != "" {
		dst.LogLevel = src.LogLevel
	}
	if src.Output != "" {
		dst.Output = src.Output
	}
	if src.Data != "" {
		dst.Data = src.Data
	}
	if len(src.Variables) > 0 {
		if dst.Variables == nil {
			dst.Variables = make(map[string]string, len(src.Variables))
		}
		maps.Copy(dst.Variables, src.Variables)
	}
}
