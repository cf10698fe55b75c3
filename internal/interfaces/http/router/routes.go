package router

import (
	"github.com/gin-gonic/gin"

	"otisium-api/internal/interfaces/http/handler"
)

// RegisterAuthRoutes 注册认证路由
func RegisterAuthRoutes(api *gin.RouterGroup, authHandler *handler.AuthHandler, requireAuth, rateLimit gin.HandlerFunc) {
	auth := api.Group("/auth")
	{
		auth.POST("/signup", rateLimit, authHandler.Signup)
		auth.POST("/login", rateLimit, authHandler.Login)
		auth.POST("/google", rateLimit, authHandler.Google)
		auth.GET("/me", requireAuth, authHandler.Me)
	}
}

// RegisterAssistRoutes 注册写作任务路由，鉴权先于限流以便按用户计数
func RegisterAssistRoutes(api *gin.RouterGroup, assistHandler *handler.AssistHandler, auth, rateLimit gin.HandlerFunc) {
	tasks := api.Group("", auth, rateLimit)
	{
		tasks.POST("/detect", assistHandler.Detect)
		tasks.POST("/plagiarism", assistHandler.Plagiarism)
		tasks.POST("/humanize", assistHandler.Humanize)
		tasks.POST("/paraphrase", assistHandler.Paraphrase)
		tasks.POST("/grammar", assistHandler.Grammar)
		tasks.POST("/translate", assistHandler.Translate)
		tasks.POST("/summarize", assistHandler.Summarize)
		tasks.POST("/chat", assistHandler.Chat)
		tasks.POST("/citation", assistHandler.Citation)
	}
}

// RegisterUsageRoutes 注册用量查询路由
func RegisterUsageRoutes(api *gin.RouterGroup, usageHandler *handler.UsageHandler, requireAuth gin.HandlerFunc) {
	api.GET("/usage", requireAuth, usageHandler.Summary)
}
