// Package handler 提供 HTTP 请求处理器
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"otisium-api/internal/interfaces/http/dto"
)

// bindJSON 解析请求体，失败时写入错误响应并返回 false
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			dto.Error(c, http.StatusRequestEntityTooLarge, "Request body too large")
			return false
		}
		dto.BadRequest(c, "Invalid request body")
		return false
	}
	return true
}
