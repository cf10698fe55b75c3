// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"otisium-api/internal/domain/entity"
	"otisium-api/internal/domain/repository"
)

type LLMUsageEventRepository struct {
	client *Client
}

func NewLLMUsageEventRepository(client *Client) *LLMUsageEventRepository {
	return &LLMUsageEventRepository{client: client}
}

func (r *LLMUsageEventRepository) Create(ctx context.Context, event *entity.LLMUsageEvent) error {
	ctx, span := tracer.Start(ctx, "postgres.LLMUsageEventRepository.Create")
	defer span.End()

	if event.ID == "" {
		event.ID = uuid.NewString()
	}

	db := getDB(ctx, r.client.db)
	if err := db.Create(event).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create llm usage event: %w", err)
	}
	return nil
}

// SummarizeByUser 按任务汇总用户在时间窗口内的调用次数与 token 数
func (r *LLMUsageEventRepository) SummarizeByUser(ctx context.Context, userID string, startInclusive, endExclusive time.Time) ([]repository.TaskUsage, error) {
	ctx, span := tracer.Start(ctx, "postgres.LLMUsageEventRepository.SummarizeByUser")
	defer span.End()

	db := getDB(ctx, r.client.db)

	out := make([]repository.TaskUsage, 0)
	if err := db.Model(&entity.LLMUsageEvent{}).
		Select("task, COUNT(*) AS calls, COALESCE(SUM(tokens_prompt + tokens_completion),0) AS tokens").
		Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, startInclusive, endExclusive).
		Group("task").
		Order("task").
		Scan(&out).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to summarize llm usage: %w", err)
	}
	return out, nil
}
