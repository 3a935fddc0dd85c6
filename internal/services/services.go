package services

import (
	"context"
	"errors"

	"github.com/jeremyakd/todo-challenge/internal/models"
)

var (
	ErrMissingCredentials = errors.New("username and password are required")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or missing token")
	ErrTaskNotFound       = errors.New("task not found")
	ErrTitleRequired      = errors.New("task title is required")
	ErrTitleTooLong       = errors.New("task title is too long")
)

type AuthService interface {
	// Register creates a user with a hashed password and issues a
	// fresh bearer token, both in one transaction.
	//
	// It returns ErrMissingCredentials if username or password is
	// empty, or ErrUserAlreadyExists if the username is taken.
	Register(ctx context.Context, params RegisterParams) (*AuthResult, error)

	// Login verifies the password against the stored hash and returns
	// the user's existing token, issuing one only if none exists.
	//
	// An unknown username and a wrong password both return
	// ErrInvalidCredentials so callers cannot tell which one failed.
	Login(ctx context.Context, params LoginParams) (*AuthResult, error)

	// Logout deletes the user's token, making it
	// permanently unusable immediately.
	Logout(ctx context.Context, userID string) error

	// ResolveToken maps a bearer token to its user or
	// returns ErrInvalidToken.
	ResolveToken(ctx context.Context, token string) (*models.User, error)
}

// TaskService operations take the resolved user identity as an explicit
// argument; the underlying storage has no lookup that is not keyed by
// owner, so a foreign-owned task is indistinguishable from a missing one.
type TaskService interface {
	// ListTasks returns the user's tasks, newest-created first.
	ListTasks(ctx context.Context, userID string) ([]*models.Task, error)

	// CreateTask persists a new task owned by the given user. It
	// returns ErrTitleRequired if the title is empty, or
	// ErrTitleTooLong past 255 characters.
	CreateTask(ctx context.Context, userID string, params CreateTaskParams) (*models.Task, error)

	// GetTask returns ErrTaskNotFound if the task does not exist or
	// belongs to another user.
	GetTask(ctx context.Context, userID string, taskID int64) (*models.Task, error)

	// ReplaceTask overwrites every mutable field; omitted optional
	// fields reset to their zero values. The task is resolved before
	// the payload is validated, so an unknown or foreign-owned task
	// returns ErrTaskNotFound even when the payload is invalid.
	ReplaceTask(ctx context.Context, userID string, taskID int64, params ReplaceTaskParams) (*models.Task, error)

	// UpdateTask applies only the fields that are set, with the same
	// resolve-then-validate order as ReplaceTask. A supplied but
	// empty title returns ErrTitleRequired.
	UpdateTask(ctx context.Context, userID string, taskID int64, params UpdateTaskParams) (*models.Task, error)

	// DeleteTask removes the task permanently.
	DeleteTask(ctx context.Context, userID string, taskID int64) error
}

type RegisterParams struct {
	Username string
	Password string
	Email    string
}

type LoginParams struct {
	Username string
	Password string
}

type AuthResult struct {
	UserID string
	Token  string
}

type CreateTaskParams struct {
	Title       string
	Description string
	IsCompleted bool
}

type ReplaceTaskParams struct {
	Title       string
	Description string
	IsCompleted bool
}

type UpdateTaskParams struct {
	Title       *string
	Description *string
	IsCompleted *bool
}
