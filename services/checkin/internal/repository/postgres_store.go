package repository

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS record_collections (
	key        TEXT PRIMARY KEY,
	value      JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS rate_limits (
	rl_key       TEXT PRIMARY KEY,
	count        INTEGER NOT NULL,
	window_start TIMESTAMPTZ NOT NULL,
	expires_at   TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS request_idempotency (
	key_hash   TEXT PRIMARY KEY,
	response   TEXT NOT NULL,
	expires_at TIMESTAMPTZ NOT NULL
);`

// EnsureSchema creates the tables used by the Postgres backend.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// PostgresStore keeps each collection as one JSONB row.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Load(ctx context.Context, key string, dst any) (bool, error) {
	const q = `SELECT value FROM record_collections WHERE key = $1`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var raw []byte
	err := s.pool.QueryRow(ctx, q, key).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("select %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return true, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (s *PostgresStore) Save(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	const q = `
		INSERT INTO record_collections (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if _, err := s.pool.Exec(ctx, q, key, raw); err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	return nil
}

// PostgresRateLimiter is a fixed-window counter kept in rate_limits.
type PostgresRateLimiter struct {
	pool   *pgxpool.Pool
	limit  int
	window time.Duration
}

func NewPostgresRateLimiter(pool *pgxpool.Pool, limit int, window time.Duration) *PostgresRateLimiter {
	return &PostgresRateLimiter{pool: pool, limit: limit, window: window}
}

// rateLimitUpsert opens a window at @now for a new key and restarts it once
// the stored window_start falls before @cutoff.
const rateLimitUpsert = `
	INSERT INTO rate_limits (rl_key, count, window_start, expires_at)
	VALUES (@key, 1, @now, @expires_at)
	ON CONFLICT (rl_key) DO UPDATE SET
		count = CASE
			WHEN rate_limits.window_start < @cutoff THEN 1
			ELSE rate_limits.count + 1
		END,
		window_start = CASE
			WHEN rate_limits.window_start < @cutoff THEN @now
			ELSE rate_limits.window_start
		END,
		expires_at = @expires_at
	RETURNING count`

func rateLimitArgs(key string, now time.Time, window time.Duration) pgx.NamedArgs {
	return pgx.NamedArgs{
		"key":        hashKey(key),
		"now":        now,
		"cutoff":     now.Add(-window),
		"expires_at": now.Add(window),
	}
}

func (l *PostgresRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var count int
	if err := l.pool.QueryRow(ctx, rateLimitUpsert, rateLimitArgs(key, time.Now(), l.window)).Scan(&count); err != nil {
		return true, fmt.Errorf("rate limit upsert: %w", err)
	}
	return count <= l.limit, nil
}

func (l *PostgresRateLimiter) CleanupExpired(ctx context.Context) (int64, error) {
	const q = `DELETE FROM rate_limits WHERE expires_at < now()`

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	result, err := l.pool.Exec(ctx, q)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

// PostgresIdempotencyStore keeps replayable responses in request_idempotency.
type PostgresIdempotencyStore struct {
	pool *pgxpool.Pool
}

func NewPostgresIdempotencyStore(pool *pgxpool.Pool) *PostgresIdempotencyStore {
	return &PostgresIdempotencyStore{pool: pool}
}

func (s *PostgresIdempotencyStore) Get(ctx context.Context, key string) (string, error) {
	const q = `SELECT response FROM request_idempotency WHERE key_hash = $1 AND expires_at > now()`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var response string
	err := s.pool.QueryRow(ctx, q, key).Scan(&response)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	return response, err
}

func (s *PostgresIdempotencyStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	const q = `
		INSERT INTO request_idempotency (key_hash, response, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key_hash) DO UPDATE SET response = EXCLUDED.response, expires_at = EXCLUDED.expires_at`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := s.pool.Exec(ctx, q, key, value, time.Now().Add(ttl))
	return err
}

func (s *PostgresIdempotencyStore) CleanupExpired(ctx context.Context) (int64, error) {
	const q = `DELETE FROM request_idempotency WHERE expires_at < now()`

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	result, err := s.pool.Exec(ctx, q)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

func hashKey(key string) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(key)))
}
