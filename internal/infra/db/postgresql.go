// Package db provides database connection and management functionality.
package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/spendlens/backend/config"
)

const connectTimeout = 5 * time.Second

// Postgres owns the GORM handle and its underlying connection pool.
type Postgres struct {
	conn *gorm.DB
}

// OpenPostgres connects to PostgreSQL, applies the pool settings from the
// configuration, and verifies the connection with a ping.
func OpenPostgres(cfg *config.DatabaseConfig) (*Postgres, error) {
	conn, err := gorm.Open(postgres.Open(cfg.URL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	p := &Postgres{conn: conn}
	if err := p.configurePool(cfg); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := p.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	slog.Info("Database connection established",
		"max_open_conns", cfg.MaxOpenConns,
		"max_idle_conns", cfg.MaxIdleConns,
	)
	return p, nil
}

func (p *Postgres) configurePool(cfg *config.DatabaseConfig) error {
	pool, err := p.conn.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	pool.SetMaxOpenConns(cfg.MaxOpenConns)
	pool.SetMaxIdleConns(cfg.MaxIdleConns)
	pool.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	return nil
}

// Gorm returns the GORM handle for repository construction.
func (p *Postgres) Gorm() *gorm.DB {
	return p.conn
}

// Ping checks that the database is reachable.
func (p *Postgres) Ping(ctx context.Context) error {
	pool, err := p.conn.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return pool.PingContext(ctx)
}

// Migrate runs GORM auto-migration for the given models.
func (p *Postgres) Migrate(models ...any) error {
	if err := p.conn.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to run auto-migration: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (p *Postgres) Close() error {
	pool, err := p.conn.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB for closing: %w", err)
	}
	if err := pool.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	slog.Info("Database connection closed")
	return nil
}
