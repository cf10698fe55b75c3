package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"otisium-api/internal/config"
	"otisium-api/internal/workflow/port"
)

// GeminiInvoker 基于官方 genai SDK 的 Invoker，档位映射为思考预算
type GeminiInvoker struct {
	name   string
	cfg    config.ProviderConfig
	client *genai.Client
}

// NewGeminiInvoker 创建 Gemini 适配器
func NewGeminiInvoker(ctx context.Context, name string, cfg config.ProviderConfig) (*GeminiInvoker, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini provider %s: api_key is required", name)
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("gemini provider %s: model is required", name)
	}

	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client for %s: %w", name, err)
	}
	return &GeminiInvoker{name: name, cfg: cfg, client: client}, nil
}

// Generate 发起一次 GenerateContent 调用
func (g *GeminiInvoker) Generate(ctx context.Context, req port.GenerationRequest) (*port.GenerationResponse, error) {
	modelName := modelForTier(g.cfg, req.Tier)

	resp, err := g.client.Models.GenerateContent(ctx, modelName, genai.Text(req.Prompt), g.generateConfig(req))
	if err != nil {
		return nil, err
	}

	out := &port.GenerationResponse{
		Text:     resp.Text(),
		Provider: g.name,
		Model:    modelName,
	}
	if u := resp.UsageMetadata; u != nil {
		out.PromptTokens = int(u.PromptTokenCount)
		out.CompletionTokens = int(u.CandidatesTokenCount)
	}
	return out, nil
}

func (g *GeminiInvoker) generateConfig(req port.GenerationRequest) *genai.GenerateContentConfig {
	gc := &genai.GenerateContentConfig{
		Temperature:     ptr(float32(req.Temperature)),
		MaxOutputTokens: int32(req.MaxOutputTokens),
	}

	budget := g.cfg.DeepThinkingBudget
	if req.Tier == port.TierFast {
		budget = g.cfg.FastThinkingBudget
	}
	budget = capThinkingBudget(budget, req.MaxOutputTokens)
	if budget > 0 {
		gc.ThinkingConfig = &genai.ThinkingConfig{ThinkingBudget: ptr(int32(budget))}
	}
	return gc
}

// capThinkingBudget 思考 token 计入输出上限，预算最多占一半，其余留给正文
func capThinkingBudget(budget, maxOutputTokens int) int {
	if maxOutputTokens <= 0 {
		return budget
	}
	return min(budget, maxOutputTokens/2)
}
