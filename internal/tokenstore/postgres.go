package tokenstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore lets several gateway instances share one admin session.
type PostgresStore struct {
	pool *pgxpool.Pool
	key  string
}

func NewPostgresStore(pool *pgxpool.Pool, key string) *PostgresStore {
	return &PostgresStore{pool: pool, key: key}
}

func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	const query = `
		CREATE TABLE IF NOT EXISTS admin_tokens (
			key        TEXT PRIMARY KEY,
			token      TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := s.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("create admin_tokens: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context) (string, error) {
	const query = `SELECT token FROM admin_tokens WHERE key = $1`

	var token string
	if err := s.pool.QueryRow(ctx, query, s.key).Scan(&token); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("select token: %w", err)
	}
	return token, nil
}

func (s *PostgresStore) Set(ctx context.Context, token string) error {
	const query = `
		INSERT INTO admin_tokens (key, token, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key)
		DO UPDATE SET
			token = EXCLUDED.token,
			updated_at = NOW()
	`
	if _, err := s.pool.Exec(ctx, query, s.key, token); err != nil {
		return fmt.Errorf("upsert token: %w", err)
	}
	return nil
}

func (s *PostgresStore) Remove(ctx context.Context) error {
	const query = `DELETE FROM admin_tokens WHERE key = $1`
	if _, err := s.pool.Exec(ctx, query, s.key); err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}
