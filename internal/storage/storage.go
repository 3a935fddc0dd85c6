package storage

import (
	"context"
	"errors"

	"github.com/jeremyakd/todo-challenge/internal/models"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrAlreadyExists = errors.New("record already exists")
)

// UserStorage persists user accounts.
type UserStorage interface {
	// CreateUserWithToken inserts the user and its initial token
	// atomically. It returns ErrAlreadyExists if the username is taken.
	CreateUserWithToken(ctx context.Context, user *models.User, token *models.Token) error

	// GetUserByUsername returns ErrNotFound if no such user exists.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// TokenStorage persists bearer tokens, one live token per user.
type TokenStorage interface {
	// SaveToken inserts the token, replacing any
	// existing token bound to the same user.
	SaveToken(ctx context.Context, token *models.Token) error

	// GetTokenByUserID returns ErrNotFound if the user has no token.
	GetTokenByUserID(ctx context.Context, userID string) (*models.Token, error)

	// GetUserByTokenKey resolves a bearer token to its user.
	// It returns ErrNotFound for unknown or deleted tokens.
	GetUserByTokenKey(ctx context.Context, key string) (*models.User, error)

	// DeleteTokensByUserID removes the user's token and
	// reports how many rows were deleted.
	DeleteTokensByUserID(ctx context.Context, userID string) (int64, error)
}

// TaskStorage persists tasks. Every lookup is keyed by the owning user,
// so a task owned by someone else is indistinguishable from a task that
// does not exist. There is deliberately no fetch-by-id-alone method.
type TaskStorage interface {
	// InsertTask stores the task and fills in its server-assigned ID.
	InsertTask(ctx context.Context, task *models.Task) error

	// SelectTasksByUserID returns the user's tasks, newest-created first.
	SelectTasksByUserID(ctx context.Context, userID string) ([]*models.Task, error)

	// SelectTask returns ErrNotFound if the task does not
	// exist or is not owned by the given user.
	SelectTask(ctx context.Context, userID string, taskID int64) (*models.Task, error)

	// UpdateTask writes title, description, completion flag and the
	// updated timestamp. It returns ErrNotFound under the same
	// ownership policy as SelectTask.
	UpdateTask(ctx context.Context, task *models.Task) error

	// DeleteTask removes the task permanently, ErrNotFound
	// under the same ownership policy as SelectTask.
	DeleteTask(ctx context.Context, userID string, taskID int64) error
}
