package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"otisium-api/internal/config"
	"otisium-api/internal/workflow/port"
)

// OpenAIInvoker 基于官方 openai-go SDK 的 Invoker，档位映射为 reasoning_effort 或模型名
type OpenAIInvoker struct {
	name   string
	cfg    config.ProviderConfig
	client openai.Client
}

// NewOpenAIInvoker 创建 OpenAI 适配器，BaseURL 可指向兼容服务
func NewOpenAIInvoker(name string, cfg config.ProviderConfig) (*OpenAIInvoker, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai provider %s: api_key is required", name)
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("openai provider %s: model is required", name)
	}

	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey), option.WithMaxRetries(0)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &OpenAIInvoker{name: name, cfg: cfg, client: openai.NewClient(opts...)}, nil
}

// Generate 发起一次 Chat Completions 调用
func (o *OpenAIInvoker) Generate(ctx context.Context, req port.GenerationRequest) (*port.GenerationResponse, error) {
	modelName := modelForTier(o.cfg, req.Tier)

	params := openai.ChatCompletionNewParams{
		Model:               openai.ChatModel(modelName),
		Messages:            []openai.ChatCompletionMessageParamUnion{openai.UserMessage(req.Prompt)},
		Temperature:         openai.Float(req.Temperature),
		MaxCompletionTokens: openai.Int(int64(req.MaxOutputTokens)),
	}
	if o.cfg.ReasoningEffort {
		params.ReasoningEffort = shared.ReasoningEffortHigh
		if req.Tier == port.TierFast {
			params.ReasoningEffort = shared.ReasoningEffortLow
		}
	}

	resp, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, err
	}

	out := &port.GenerationResponse{
		Provider:         o.name,
		Model:            modelName,
		PromptTokens:     int(resp.Usage.PromptTokens),
		CompletionTokens: int(resp.Usage.CompletionTokens),
	}
	if len(resp.Choices) > 0 {
		out.Text = resp.Choices[0].Message.Content
	}
	return out, nil
}
