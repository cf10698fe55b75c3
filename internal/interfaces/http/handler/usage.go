package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"otisium-api/internal/application/usage"
	"otisium-api/internal/interfaces/http/dto"
	"otisium-api/pkg/logger"
)

const maxUsageWindow = 365 * 24 * time.Hour

// UsageHandler 用量查询处理器
type UsageHandler struct {
	svc *usage.SummaryService
}

func NewUsageHandler(svc *usage.SummaryService) *UsageHandler {
	return &UsageHandler{svc: svc}
}

// Summary 当前用户的用量汇总，window 形如 24h、720h
// @Summary 用量汇总
// @Description 按任务汇总当前用户在时间窗口内的调用次数与 token 数
// @Tags Usage
// @Produce json
// @Security BearerAuth
// @Param window query string false "时间窗口，如 24h"
// @Success 200 {object} usage.Summary
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/usage [get]
func (h *UsageHandler) Summary(c *gin.Context) {
	var window time.Duration
	if raw := c.Query("window"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 || d > maxUsageWindow {
			dto.BadRequest(c, "Invalid window")
			return
		}
		window = d
	}

	sum, err := h.svc.Summarize(c.Request.Context(), c.GetString("user_id"), window)
	if err != nil {
		logger.Error(c.Request.Context(), "failed to summarize usage", err)
		dto.InternalError(c, "Server error")
		return
	}
	dto.OK(c, sum)
}
