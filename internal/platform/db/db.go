package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"scorecard/internal/platform/config"
)

func Connect(ctx context.Context, cfg config.Config) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	poolCfg.MaxConnLifetime = time.Hour
	poolCfg.MaxConns = int32(max(cfg.DBMaxConns, 1))
	poolCfg.MinConns = min(2, poolCfg.MaxConns)
	return pgxpool.NewWithConfig(ctx, poolCfg)
}
