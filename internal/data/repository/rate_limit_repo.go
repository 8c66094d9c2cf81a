package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"job-portal/pkg/database"
)

// RateLimitRepository counts hits per key inside fixed windows. Keys are
// hashed before storage so raw emails and IPs never land in the table.
type RateLimitRepository interface {
	Hit(ctx context.Context, key string, window time.Duration) (int, error)
	Reset(ctx context.Context, key string) error
	DeleteStale(ctx context.Context, olderThan time.Duration) (int64, error)
}

type rateLimitRepository struct {
	db database.PgxIface
}

func NewRateLimitRepository(db database.PgxIface) RateLimitRepository {
	return &rateLimitRepository{db: db}
}

func hashKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}

// Hit registers one request and returns the count for the current window.
func (r *rateLimitRepository) Hit(ctx context.Context, key string, window time.Duration) (int, error) {
	windowStart := time.Now().UTC().Truncate(window)

	query := `
		INSERT INTO rate_limits (key_hash, window_start, count)
		VALUES ($1, $2, 1)
		ON CONFLICT (key_hash, window_start)
		DO UPDATE SET count = rate_limits.count + 1
		RETURNING count
	`

	var count int
	err := r.db.QueryRow(ctx, query, hashKey(key), windowStart).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("rate limit hit for key: %w", err)
	}

	return count, nil
}

func (r *rateLimitRepository) Reset(ctx context.Context, key string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM rate_limits WHERE key_hash = $1`, hashKey(key))
	if err != nil {
		return fmt.Errorf("reset rate limit: %w", err)
	}
	return nil
}

func (r *rateLimitRepository) DeleteStale(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-olderThan)

	result, err := r.db.Exec(ctx, `DELETE FROM rate_limits WHERE window_start < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete stale rate limit rows: %w", err)
	}

	return result.RowsAffected(), nil
}
