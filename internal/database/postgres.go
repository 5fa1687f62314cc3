package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/leesummerdesigns/swissconnection/internal/config"
)

var DB *pgxpool.Pool

// ConnectDB opens the shared pgx pool, sized from configuration.
func ConnectDB(cfg *config.Config) error {
	poolConfig, err := pgxpool.ParseConfig(cfg.DBUrl)
	if err != nil {
		return fmt.Errorf("parse database config: %w", err)
	}

	poolConfig.MaxConns = cfg.DBMaxConns
	poolConfig.MinConns = cfg.DBMinConns
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		return fmt.Errorf("ping database: %w", err)
	}

	DB = pool
	log.Printf("database: connected, pool %d-%d conns", cfg.DBMinConns, cfg.DBMaxConns)
	return nil
}

func CloseDB() {
	if DB != nil {
		DB.Close()
	}
}
