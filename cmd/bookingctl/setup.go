package main

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nekogravitycat/freight-booking-backend/internal/config"
	"github.com/nekogravitycat/freight-booking-backend/internal/db"
	"github.com/nekogravitycat/freight-booking-backend/internal/pkg/logger"
)

// environment is what the database-backed commands share.
type environment struct {
	cfg  *config.Config
	log  *zap.Logger
	pool *pgxpool.Pool
}

func setup(cmd *cobra.Command) (*environment, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	zl, err := logger.New(cfg.AppEnv)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	pool, err := db.NewPool(cmd.Context(), cfg.DBDSN, db.PoolOptions{MaxConns: cfg.DBMaxConns})
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}
	return &environment{cfg: cfg, log: zl, pool: pool}, nil
}

func (e *environment) close() {
	e.pool.Close()
	_ = e.log.Sync()
}
