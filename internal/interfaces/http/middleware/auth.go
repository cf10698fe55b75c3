package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"otisium-api/internal/domain/service"
	"otisium-api/internal/interfaces/http/dto"
	"otisium-api/pkg/logger"
	"otisium-api/pkg/utils"
)

const (
	msgNoToken      = "No token provided"
	msgInvalidToken = "Invalid token"
	msgTokenExpired = "Token expired"
)

// Auth 解析 Bearer Token 并注入用户信息。
// required 为 false 时缺少或无效的 Token 按匿名请求放行。
func Auth(jwtManager *utils.JWTManager, required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			if required {
				abortError(c, http.StatusUnauthorized, msgNoToken)
				return
			}
			c.Next()
			return
		}

		claims, err := jwtManager.ParseToken(token)
		if err != nil {
			if !required {
				c.Next()
				return
			}
			msg := msgInvalidToken
			if errors.Is(err, utils.ErrExpiredToken) {
				msg = msgTokenExpired
			}
			abortError(c, http.StatusUnauthorized, msg)
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)

		ctx := service.WithUser(c.Request.Context(), claims.UserID)
		ctx = logger.WithContext(ctx, logger.UserIDKey, claims.UserID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || scheme != "Bearer" {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func abortError(c *gin.Context, status int, msg string) {
	dto.AbortWithError(c, status, msg)
}
