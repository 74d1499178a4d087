package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrAccountNotFound is returned for unknown player ids.
var ErrAccountNotFound = errors.New("account not found")

// AccountStore persists player credentials. Hashing happens in the auth
// package; this store only sees opaque hashes.
type AccountStore struct {
	pool *pgxpool.Pool
}

// NewAccountStore wraps a pool.
func NewAccountStore(pool *pgxpool.Pool) *AccountStore {
	return &AccountStore{pool: pool}
}

// Create inserts an account. Duplicate player ids are an error.
func (s *AccountStore) Create(ctx context.Context, playerID, passwordHash string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO accounts (player_id, password_hash) VALUES ($1, $2)`,
		playerID, passwordHash)
	if err != nil {
		return fmt.Errorf("create account %s: %w", playerID, err)
	}
	return nil
}

// PasswordHash returns the stored hash for a player.
func (s *AccountStore) PasswordHash(ctx context.Context, playerID string) (string, error) {
	var hash string
	err := s.pool.QueryRow(ctx, `
		SELECT password_hash FROM accounts WHERE player_id = $1`,
		playerID).Scan(&hash)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrAccountNotFound
	}
	if err != nil {
		return "", fmt.Errorf("load account %s: %w", playerID, err)
	}
	return hash, nil
}
