// Package usage 记录与汇总模型调用用量
package usage

import (
	"context"
	"fmt"
	"strings"

	"otisium-api/internal/domain/entity"
	"otisium-api/internal/domain/repository"
	"otisium-api/internal/domain/service"
)

// Recorder 将每次模型调用写入用量流水
type Recorder struct {
	usageRepo repository.LLMUsageEventRepository
}

func NewRecorder(usageRepo repository.LLMUsageEventRepository) *Recorder {
	return &Recorder{usageRepo: usageRepo}
}

// Record 实现 service.LLMUsageRecorder
func (r *Recorder) Record(ctx context.Context, in service.LLMUsageInput) error {
	if r == nil || r.usageRepo == nil {
		return nil
	}
	if in.PromptTokens < 0 || in.CompletionTokens < 0 {
		return fmt.Errorf("invalid token usage")
	}

	evt := &entity.LLMUsageEvent{
		UserID:           strings.TrimSpace(in.UserID),
		Task:             strings.TrimSpace(in.Task),
		Tier:             strings.TrimSpace(in.Tier),
		Provider:         strings.TrimSpace(in.Provider),
		Model:            strings.TrimSpace(in.Model),
		Status:           strings.TrimSpace(in.Status),
		TokensPrompt:     in.PromptTokens,
		TokensCompletion: in.CompletionTokens,
		DurationMs:       in.DurationMs,
	}
	return r.usageRepo.Create(ctx, evt)
}

var _ service.LLMUsageRecorder = (*Recorder)(nil)
