// Package entity 定义领域实体
package entity

import "time"

// LLMUsageEvent 单次模型调用的用量流水
type LLMUsageEvent struct {
	ID               string    `json:"id" gorm:"type:uuid;primaryKey"`
	UserID           string    `json:"user_id,omitempty" gorm:"type:varchar(64);index"`
	Task             string    `json:"task" gorm:"type:varchar(32);index;not null"`
	Tier             string    `json:"tier" gorm:"type:varchar(8);not null"`
	Provider         string    `json:"provider" gorm:"type:varchar(32);not null"`
	Model            string    `json:"model" gorm:"type:varchar(64);not null"`
	Status           string    `json:"status" gorm:"type:varchar(16);not null"`
	TokensPrompt     int       `json:"tokens_prompt" gorm:"not null;default:0"`
	TokensCompletion int       `json:"tokens_completion" gorm:"not null;default:0"`
	DurationMs       int       `json:"duration_ms" gorm:"not null;default:0"`
	CreatedAt        time.Time `json:"created_at" gorm:"autoCreateTime;index"`
}

func (LLMUsageEvent) TableName() string {
	return "llm_usage_events"
}
