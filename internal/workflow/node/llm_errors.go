package node

import (
	"context"
	"errors"
	"net"
	"strings"

	"otisium-api/internal/workflow/port"
)

// ClassifyProviderError 按错误类型与报错文本归类提供商错误，仅用于日志与指标标签
func ClassifyProviderError(err error) port.ProviderErrorKind {
	if err == nil {
		return port.ProviderErrorUnknown
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return port.ProviderErrorTimeout
	}
	if errors.Is(err, context.Canceled) {
		return port.ProviderErrorCanceled
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return port.ProviderErrorTimeout
		}
		return port.ProviderErrorNetwork
	}

	msg := strings.ToLower(err.Error())
	switch {
	case containsAny(msg, "401", "403", "api key", "api_key", "unauthorized", "permission_denied", "permission denied"):
		return port.ProviderErrorAuth
	case containsAny(msg, "429", "quota", "rate limit", "rate_limit", "resource_exhausted", "too many requests"):
		return port.ProviderErrorQuota
	case containsAny(msg, "deadline", "timeout", "timed out"):
		return port.ProviderErrorTimeout
	case containsAny(msg, "connection refused", "connection reset", "no such host", "eof", "broken pipe"):
		return port.ProviderErrorNetwork
	default:
		return port.ProviderErrorUnknown
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
