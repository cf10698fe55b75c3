//go:build wireinject
// +build wireinject

// Package wire 提供依赖注入配置
package wire

import (
	"context"

	"github.com/google/wire"

	"otisium-api/internal/application/assist"
	"otisium-api/internal/application/auth"
	"otisium-api/internal/application/usage"
	"otisium-api/internal/config"
	"otisium-api/internal/domain/repository"
	"otisium-api/internal/domain/service"
	"otisium-api/internal/infrastructure/persistence/postgres"
	"otisium-api/internal/infrastructure/persistence/redis"
	"otisium-api/internal/interfaces/http/handler"
	"otisium-api/internal/interfaces/http/middleware"
	"otisium-api/internal/interfaces/http/router"
)

// InitializePostgresOnly 仅初始化 PostgreSQL 数据层（用于 bootstrap）
func InitializePostgresOnly(ctx context.Context, cfg *config.Config) (*PostgresOnlyDataLayer, func(), error) {
	wire.Build(
		ProvidePostgresClient,
		wire.Struct(new(PostgresOnlyDataLayer), "*"),
	)
	return nil, nil, nil
}

// InitializeApp 初始化整个应用（带路由器）
func InitializeApp(ctx context.Context, cfg *config.Config) (*router.Router, func(), error) {
	wire.Build(
		RepoSet,
		RedisSet,
		LLMSet,
		ServiceSet,
		RouterSet,
	)
	return nil, nil, nil
}

// PostgresSet PostgreSQL 提供者集合
var PostgresSet = wire.NewSet(
	ProvidePostgresClient,
	postgres.NewTxManager,
	postgres.NewUserRepository,
	postgres.NewLLMUsageEventRepository,
)

// RepoSet 整合了具体实现与接口绑定的集合
var RepoSet = wire.NewSet(
	PostgresSet,
	wire.Bind(new(repository.Transactor), new(*postgres.TxManager)),
	wire.Bind(new(repository.UserRepository), new(*postgres.UserRepository)),
	wire.Bind(new(repository.LLMUsageEventRepository), new(*postgres.LLMUsageEventRepository)),
)

// RedisSet Redis 提供者集合
var RedisSet = wire.NewSet(
	ProvideRedisClient,
	redis.NewCache,
	redis.NewRateLimiter,
	wire.Bind(new(usage.Loader), new(*redis.Cache)),
	wire.Bind(new(middleware.RateLimiter), new(*redis.RateLimiter)),
)

// LLMSet 模型调用与用量记录
var LLMSet = wire.NewSet(
	usage.NewRecorder,
	wire.Bind(new(service.LLMUsageRecorder), new(*usage.Recorder)),
	ProvideInvoker,
)

// ServiceSet 应用服务集合
var ServiceSet = wire.NewSet(
	assist.OptionsFromConfig,
	assist.NewService,
	ProvideJWTManager,
	ProvideGoogleClient,
	wire.Bind(new(auth.GoogleIdentity), new(*auth.GoogleClient)),
	auth.NewService,
	usage.NewSummaryService,
)

// RouterSet 路由器提供者集合
var RouterSet = wire.NewSet(
	ProvideHealthHandler,
	handler.NewAuthHandler,
	handler.NewAssistHandler,
	handler.NewUsageHandler,
	wire.Struct(new(router.Handlers), "*"),
	ProvideRateLimitKeyFunc,
	router.New,
)
