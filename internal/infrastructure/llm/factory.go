package llm

import (
	"context"
	"fmt"

	"otisium-api/internal/config"
	"otisium-api/internal/domain/service"
	"otisium-api/internal/workflow/port"
)

// NewInvoker 按默认提供商的 kind 创建适配器，并包装为 InstrumentedInvoker
func NewInvoker(ctx context.Context, cfg *config.Config, recorder service.LLMUsageRecorder) (port.Invoker, error) {
	name := cfg.LLM.DefaultProvider
	pc, ok := cfg.LLM.Providers[name]
	if !ok {
		return nil, fmt.Errorf("provider %s not found in LLM config", name)
	}

	base, err := newAdapter(ctx, name, pc)
	if err != nil {
		return nil, err
	}
	return NewInstrumentedInvoker(base, name, cfg.LLM.Timeout, recorder), nil
}

func newAdapter(ctx context.Context, name string, pc config.ProviderConfig) (port.Invoker, error) {
	kind := pc.Kind
	if kind == "" {
		kind = name
	}

	switch kind {
	case config.ProviderKindGemini:
		return NewGeminiInvoker(ctx, name, pc)
	case config.ProviderKindOpenAI:
		return NewOpenAIInvoker(name, pc)
	case config.ProviderKindEino:
		return NewEinoInvoker(name, pc)
	default:
		return nil, fmt.Errorf("unsupported llm provider kind %q for %s", kind, name)
	}
}
