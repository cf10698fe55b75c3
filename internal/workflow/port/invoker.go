package port

import (
	"context"
	"errors"
	"fmt"
)

// EffortTier 模型推理强度档位
type EffortTier string

const (
	// TierFast 低推理强度，用于对话、翻译、引文等短任务
	TierFast EffortTier = "fast"
	// TierDeep 高推理强度，用于检测、改写、语法等分析型任务
	TierDeep EffortTier = "deep"
)

// Valid 是否为已知档位
func (t EffortTier) Valid() bool {
	return t == TierFast || t == TierDeep
}

// GenerationRequest 一次模型调用的输入
type GenerationRequest struct {
	Prompt          string
	Tier            EffortTier
	Temperature     float64
	MaxOutputTokens int
}

// GenerationResponse 模型原始输出
type GenerationResponse struct {
	Text     string
	Provider string
	Model    string

	PromptTokens     int
	CompletionTokens int
}

// Invoker 定义工作流层对 LLM 的最小依赖（port）。
// 每次调用恰好发起一次外部请求，不做重试；失败时返回 *ProviderError。
type Invoker interface {
	Generate(ctx context.Context, req GenerationRequest) (*GenerationResponse, error)
}

// ProviderErrorKind 提供商错误分类
type ProviderErrorKind string

const (
	ProviderErrorAuth     ProviderErrorKind = "auth"
	ProviderErrorQuota    ProviderErrorKind = "quota"
	ProviderErrorTimeout  ProviderErrorKind = "timeout"
	ProviderErrorCanceled ProviderErrorKind = "canceled"
	ProviderErrorNetwork  ProviderErrorKind = "network"
	ProviderErrorUnknown  ProviderErrorKind = "unknown"
)

// ProviderError 模型调用失败（网络、鉴权、配额、超时等）
type ProviderError struct {
	Provider string
	Kind     ProviderErrorKind
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("llm provider %s failed (%s): %v", e.Provider, e.Kind, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewProviderError 构造 ProviderError
func NewProviderError(provider string, kind ProviderErrorKind, err error) *ProviderError {
	return &ProviderError{Provider: provider, Kind: kind, Err: err}
}

// AsProviderError 从错误链中提取 ProviderError
func AsProviderError(err error) (*ProviderError, bool) {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
