package postgres

import (
	"context"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
)

const (
	defaultPingDeadline = 30 * time.Second
	maxPingBackoff      = 5 * time.Second
)

// Config captures the connection pool settings for PostgreSQL.
type Config struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxIdleTime time.Duration
	ConnMaxLifetime time.Duration
	PingDeadline    time.Duration
}

// Connect opens a pool through the pgx stdlib driver and waits until the
// server answers a ping, backing off between attempts.
func Connect(ctx context.Context, cfg Config, log zerolog.Logger) (*sqlx.DB, error) {
	db, err := sqlx.Open("pgx", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("postgres open: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	deadline := cfg.PingDeadline
	if deadline <= 0 {
		deadline = defaultPingDeadline
	}
	pingCtx, cancel := context.WithTimeout(ctx, deadline)
	defer cancel()

	backoff := 500 * time.Millisecond
	for {
		err := db.PingContext(pingCtx)
		if err == nil {
			return db, nil
		}
		log.Warn().Err(err).Dur("retry_in", backoff).Msg("postgres not ready yet")

		select {
		case <-pingCtx.Done():
			_ = db.Close()
			return nil, fmt.Errorf("postgres ping: %w", err)
		case <-time.After(backoff):
		}
		if backoff < maxPingBackoff {
			backoff *= 2
		}
	}
}
