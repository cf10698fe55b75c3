package llm

import (
	"context"
	"fmt"
	"sync"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"otisium-api/internal/config"
	"otisium-api/internal/infrastructure/eino/callback"
	"otisium-api/internal/workflow/port"
)

// EinoInvoker 通过 Eino ChatModel 访问 OpenAI 兼容服务，按模型名惰性创建客户端
type EinoInvoker struct {
	name   string
	cfg    config.ProviderConfig
	models map[string]model.BaseChatModel
	mu     sync.RWMutex
}

// NewEinoInvoker 创建 Eino 适配器
func NewEinoInvoker(name string, cfg config.ProviderConfig) (*EinoInvoker, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("eino provider %s: model is required", name)
	}
	return &EinoInvoker{
		name:   name,
		cfg:    cfg,
		models: make(map[string]model.BaseChatModel),
	}, nil
}

// chatModel 获取指定模型名的 ChatModel
func (e *EinoInvoker) chatModel(ctx context.Context, modelName string) (model.BaseChatModel, error) {
	e.mu.RLock()
	m, ok := e.models[modelName]
	e.mu.RUnlock()
	if ok {
		return m, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	// 再次检查防止竞态
	if m, ok = e.models[modelName]; ok {
		return m, nil
	}

	cm, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:  e.cfg.APIKey,
		BaseURL: e.cfg.BaseURL,
		Model:   modelName,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create eino chat model %s for %s: %w", modelName, e.name, err)
	}

	e.models[modelName] = cm
	return cm, nil
}

// Generate 发起一次 ChatModel.Generate 调用
func (e *EinoInvoker) Generate(ctx context.Context, req port.GenerationRequest) (*port.GenerationResponse, error) {
	modelName := modelForTier(e.cfg, req.Tier)
	cm, err := e.chatModel(ctx, modelName)
	if err != nil {
		return nil, err
	}

	ctx = callback.WithRunInfo(ctx, e.name, "OpenAI")
	outMsg, err := cm.Generate(ctx,
		[]*schema.Message{schema.UserMessage(req.Prompt)},
		model.WithTemperature(float32(req.Temperature)),
		model.WithMaxTokens(req.MaxOutputTokens),
	)
	if err != nil {
		return nil, err
	}

	out := &port.GenerationResponse{Provider: e.name, Model: modelName}
	if outMsg == nil {
		return out, nil
	}
	out.Text = outMsg.Content
	if outMsg.ResponseMeta != nil && outMsg.ResponseMeta.Usage != nil {
		out.PromptTokens = outMsg.ResponseMeta.Usage.PromptTokens
		out.CompletionTokens = outMsg.ResponseMeta.Usage.CompletionTokens
	}
	return out, nil
}
