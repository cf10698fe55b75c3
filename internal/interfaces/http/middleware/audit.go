package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"otisium-api/pkg/logger"
)

// AuditConfig 审计配置
type AuditConfig struct {
	// SkipPaths 跳过审计的路径
	SkipPaths []string
}

// DefaultAuditSkipPaths 探针与指标抓取不记访问日志
var DefaultAuditSkipPaths = []string{
	"/health",
	"/ready",
	"/live",
	"/metrics",
}

// Audit 记录每个请求的访问日志，不记录请求体。
// request_id、user_id 由 context 注入，5xx 记为 WARN。
func Audit(cfg AuditConfig) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, path := range cfg.SkipPaths {
		skip[path] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := skip[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		args := []any{
			"method", c.Request.Method,
			"route", c.FullPath(),
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
			"ip", c.ClientIP(),
			"req_bytes", c.Request.ContentLength,
			"resp_bytes", c.Writer.Size(),
		}
		if status >= http.StatusInternalServerError {
			logger.Warn(c.Request.Context(), "api request failed", args...)
			return
		}
		logger.Info(c.Request.Context(), "api request", args...)
	}
}
