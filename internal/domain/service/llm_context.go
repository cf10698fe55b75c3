package service

import (
	"context"
	"strings"
)

type llmCtxKey string

const (
	llmCtxKeyTask llmCtxKey = "llm_task"
	llmCtxKeyUser llmCtxKey = "llm_user"
)

// WithTask 标记本次调用所属的写作任务，用于指标与用量归因
func WithTask(ctx context.Context, task string) context.Context {
	return withValue(ctx, llmCtxKeyTask, task)
}

// WithUser 标记发起调用的用户
func WithUser(ctx context.Context, userID string) context.Context {
	return withValue(ctx, llmCtxKeyUser, userID)
}

func withValue(ctx context.Context, key llmCtxKey, value string) context.Context {
	if ctx == nil {
		return nil
	}
	v := strings.TrimSpace(value)
	if v == "" {
		return ctx
	}
	return context.WithValue(ctx, key, v)
}

// TaskFromContext 未标记时返回 "unknown"
func TaskFromContext(ctx context.Context) string {
	if s := stringValue(ctx, llmCtxKeyTask); s != "" {
		return s
	}
	return "unknown"
}

// UserFromContext 匿名调用返回空字符串
func UserFromContext(ctx context.Context) string {
	return stringValue(ctx, llmCtxKeyUser)
}

func stringValue(ctx context.Context, key llmCtxKey) string {
	if ctx == nil {
		return ""
	}
	s, _ := ctx.Value(key).(string)
	return strings.TrimSpace(s)
}
