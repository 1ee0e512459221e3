// Package db provides the backing-store clients: a PostgreSQL pool with
// schema migration and a Redis client for short-lived session state.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres wraps a pgx connection pool.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres connects to PostgreSQL.
func NewPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

// Pool exposes the underlying pool to repositories.
func (p *Postgres) Pool() *pgxpool.Pool { return p.pool }

// Ping checks database connectivity.
func (p *Postgres) Ping(ctx context.Context) error {
	if err := p.pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Close shuts down the pool.
func (p *Postgres) Close() {
	p.pool.Close()
}

// WaitForReady polls Ping until the database responds or timeout expires.
func (p *Postgres) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for database: %w", ctx.Err())
		case <-ticker.C:
			if err := p.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}

// Migrate creates the schema. The uniqueness constraints on
// demand_logs(user_id, topic_key, search_date) and challenges(topic_key)
// are what make the demand tracker's conflict handling work; do not relax
// them.
func (p *Postgres) Migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		`CREATE TABLE IF NOT EXISTS users (
			id         UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			username   VARCHAR(50)  UNIQUE NOT NULL,
			email      VARCHAR(255) UNIQUE NOT NULL,
			password   VARCHAR(255) NOT NULL,
			created_at TIMESTAMPTZ  NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS notes (
			id             UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id        UUID NOT NULL REFERENCES users(id),
			title          VARCHAR(255) NOT NULL,
			subject        VARCHAR(30)  NOT NULL,
			object_key     TEXT NOT NULL,
			content_type   TEXT NOT NULL,
			file_size      BIGINT NOT NULL DEFAULT 0,
			is_private     BOOLEAN NOT NULL DEFAULT TRUE,
			embedding      vector(384),
			view_count     INTEGER NOT NULL DEFAULT 0,
			download_count INTEGER NOT NULL DEFAULT 0,
			upvotes        INTEGER NOT NULL DEFAULT 0,
			created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS demand_logs (
			id          UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			query       TEXT NOT NULL,
			topic_key   TEXT NOT NULL,
			user_id     UUID NOT NULL REFERENCES users(id),
			search_date DATE NOT NULL,
			UNIQUE (user_id, topic_key, search_date)
		)`,
		`CREATE TABLE IF NOT EXISTS challenges (
			id             UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			topic_key      TEXT UNIQUE NOT NULL,
			reward_credits INTEGER NOT NULL DEFAULT 50,
			demand_count   INTEGER NOT NULL DEFAULT 0,
			is_active      BOOLEAN NOT NULL DEFAULT TRUE,
			winner_note_id UUID REFERENCES notes(id),
			created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}

	for _, stmt := range stmts {
		if _, err := p.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
