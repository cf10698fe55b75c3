// Package llm 提供各 LLM 提供商的 Invoker 适配器
package llm

import (
	"otisium-api/internal/config"
	"otisium-api/internal/workflow/port"
)

// modelForTier 按档位选择模型名，未单独配置时使用 Model
func modelForTier(cfg config.ProviderConfig, tier port.EffortTier) string {
	switch {
	case tier == port.TierFast && cfg.FastModel != "":
		return cfg.FastModel
	case tier == port.TierDeep && cfg.DeepModel != "":
		return cfg.DeepModel
	default:
		return cfg.Model
	}
}

func ptr[T any](v T) *T {
	return &v
}
