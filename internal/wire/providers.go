package wire

import (
	"context"

	"otisium-api/internal/application/auth"
	"otisium-api/internal/config"
	"otisium-api/internal/domain/service"
	"otisium-api/internal/infrastructure/llm"
	"otisium-api/internal/infrastructure/persistence/postgres"
	"otisium-api/internal/infrastructure/persistence/redis"
	"otisium-api/internal/interfaces/http/handler"
	"otisium-api/internal/interfaces/http/middleware"
	"otisium-api/internal/workflow/port"
	"otisium-api/pkg/utils"
)

// PostgresOnlyDataLayer 仅包含 PostgreSQL 的数据层（用于 bootstrap）
type PostgresOnlyDataLayer struct {
	PgClient *postgres.Client
}

// ProvidePostgresClient 提供 PostgreSQL 客户端
func ProvidePostgresClient(cfg *config.Config) (*postgres.Client, func(), error) {
	client, err := postgres.NewClient(&cfg.Database.Postgres)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		client.Close()
	}
	return client, cleanup, nil
}

// ProvideRedisClient 提供 Redis 客户端
func ProvideRedisClient(cfg *config.Config) (*redis.Client, func(), error) {
	client, err := redis.NewClient(&cfg.Cache.Redis)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		client.Close()
	}
	return client, cleanup, nil
}

// ProvideInvoker 提供带观测与用量记录的模型调用器
func ProvideInvoker(ctx context.Context, cfg *config.Config, recorder service.LLMUsageRecorder) (port.Invoker, error) {
	return llm.NewInvoker(ctx, cfg, recorder)
}

func ProvideJWTManager(cfg *config.Config) *utils.JWTManager {
	jwt := cfg.Security.JWT
	return utils.NewJWTManager(jwt.Secret, jwt.Issuer, jwt.Expiration)
}

func ProvideGoogleClient(cfg *config.Config) *auth.GoogleClient {
	return auth.NewGoogleClient(cfg.Security.OAuth.Google)
}

// ProvideHealthHandler 就绪检查覆盖 PostgreSQL 与 Redis
func ProvideHealthHandler(cfg *config.Config, pg *postgres.Client, rdb *redis.Client) *handler.HealthHandler {
	return handler.NewHealthHandler(cfg.App.Version, map[string]handler.HealthChecker{
		"postgres": pg,
		"redis":    rdb,
	})
}

func ProvideRateLimitKeyFunc() middleware.KeyFunc {
	return redis.BuildRateLimitKey
}
