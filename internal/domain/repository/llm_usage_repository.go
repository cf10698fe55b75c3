// Package repository 定义数据访问层接口
package repository

import (
	"context"
	"time"

	"otisium-api/internal/domain/entity"
)

// TaskUsage 按任务聚合的用量
type TaskUsage struct {
	Task   string `json:"task"`
	Calls  int64  `json:"calls"`
	Tokens int64  `json:"tokens"`
}

type LLMUsageEventRepository interface {
	Create(ctx context.Context, event *entity.LLMUsageEvent) error
	SummarizeByUser(ctx context.Context, userID string, startInclusive, endExclusive time.Time) ([]TaskUsage, error)
}
