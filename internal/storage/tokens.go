package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jeremyakd/todo-challenge/internal/models"
)

type pgTokenStorage struct {
	pool *pgxpool.Pool
}

func NewPGTokenStorage(pool *pgxpool.Pool) TokenStorage {
	return &pgTokenStorage{pool: pool}
}

func (s *pgTokenStorage) SaveToken(ctx context.Context, token *models.Token) error {
	// The upsert keeps the one-live-token-per-user invariant in the
	// database: re-issuing replaces rather than appends.
	const upsertTokenQuery = `
INSERT INTO tokens (key, user_id, created_at)
VALUES ($1, $2, $3)
ON CONFLICT (user_id) DO UPDATE
SET key = EXCLUDED.key,
    created_at = EXCLUDED.created_at
`
	_, err := s.pool.Exec(
		ctx,
		upsertTokenQuery,
		token.Key,
		token.UserID,
		token.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert token: %w", err)
	}
	return nil
}

func (s *pgTokenStorage) GetTokenByUserID(ctx context.Context, userID string) (*models.Token, error) {
	token := &models.Token{UserID: userID}

	const selectTokenByUserIDQuery = `
SELECT key,
       created_at
FROM tokens
WHERE user_id = $1
`
	err := s.pool.QueryRow(
		ctx,
		selectTokenByUserIDQuery,
		userID,
	).Scan(
		&token.Key,
		&token.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to select token by user id: %w", err)
	}
	return token, nil
}

func (s *pgTokenStorage) GetUserByTokenKey(ctx context.Context, key string) (*models.User, error) {
	user := &models.User{}

	const selectUserByTokenKeyQuery = `
SELECT u.id,
       u.username,
       u.email,
       u.password,
       u.created_at,
       u.updated_at
FROM tokens t
JOIN users u ON u.id = t.user_id
WHERE t.key = $1
`
	err := s.pool.QueryRow(
		ctx,
		selectUserByTokenKeyQuery,
		key,
	).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.Password,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to select user by token: %w", err)
	}
	return user, nil
}

func (s *pgTokenStorage) DeleteTokensByUserID(ctx context.Context, userID string) (int64, error) {
	const deleteTokensByUserIDQuery = `
DELETE FROM tokens
       WHERE user_id = $1
`
	tag, err := s.pool.Exec(
		ctx,
		deleteTokensByUserIDQuery,
		userID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete tokens by user id: %w", err)
	}
	return tag.RowsAffected(), nil
}
