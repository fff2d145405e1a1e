package redis_fx

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"tripgen/internal/infra"
)

var Module = fx.Provide(provideRedis)

// provideRedis yields a nil client when REDIS_URL is unset.
func provideRedis(lc fx.Lifecycle, cfg *infra.Config) (*redis.Client, error) {
	client, err := infra.InitRedis(cfg)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			infra.CloseRedis(client)
			return nil
		},
	})
	return client, nil
}
