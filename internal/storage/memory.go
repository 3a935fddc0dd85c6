package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/jeremyakd/todo-challenge/internal/models"
)

// Memory is an in-memory implementation of the storage interfaces.
// It backs the unit tests and keeps the same owner-scoping and
// uniqueness guarantees as the Postgres implementation.
type Memory struct {
	mu         sync.RWMutex
	users      map[string]*models.User  // keyed by user id
	usernames  map[string]string        // username -> user id
	tokens     map[string]*models.Token // keyed by token key
	tasks      map[int64]*models.Task
	nextTaskID int64
}

func NewMemory() *Memory {
	return &Memory{
		users:     make(map[string]*models.User),
		usernames: make(map[string]string),
		tokens:    make(map[string]*models.Token),
		tasks:     make(map[int64]*models.Task),
	}
}

func (m *Memory) CreateUserWithToken(_ context.Context, user *models.User, token *models.Token) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, taken := m.usernames[user.Username]; taken {
		return ErrAlreadyExists
	}

	u := *user
	m.users[u.ID] = &u
	m.usernames[u.Username] = u.ID

	t := *token
	m.tokens[t.Key] = &t
	return nil
}

func (m *Memory) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.usernames[username]
	if !ok {
		return nil, ErrNotFound
	}
	u := *m.users[id]
	return &u, nil
}

func (m *Memory) SaveToken(_ context.Context, token *models.Token) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for key, t := range m.tokens {
		if t.UserID == token.UserID {
			delete(m.tokens, key)
		}
	}
	t := *token
	m.tokens[t.Key] = &t
	return nil
}

func (m *Memory) GetTokenByUserID(_ context.Context, userID string) (*models.Token, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, t := range m.tokens {
		if t.UserID == userID {
			token := *t
			return &token, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) GetUserByTokenKey(_ context.Context, key string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.tokens[key]
	if !ok {
		return nil, ErrNotFound
	}
	u := *m.users[t.UserID]
	return &u, nil
}

func (m *Memory) DeleteTokensByUserID(_ context.Context, userID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var deleted int64
	for key, t := range m.tokens {
		if t.UserID == userID {
			delete(m.tokens, key)
			deleted++
		}
	}
	return deleted, nil
}

func (m *Memory) InsertTask(_ context.Context, task *models.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextTaskID++
	task.ID = m.nextTaskID
	t := *task
	m.tasks[t.ID] = &t
	return nil
}

func (m *Memory) SelectTasksByUserID(_ context.Context, userID string) ([]*models.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var tasks []*models.Task
	for _, t := range m.tasks {
		if t.UserID == userID {
			task := *t
			tasks = append(tasks, &task)
		}
	}
	sort.Slice(tasks, func(i, j int) bool {
		if !tasks[i].CreatedAt.Equal(tasks[j].CreatedAt) {
			return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
		}
		return tasks[i].ID > tasks[j].ID
	})
	return tasks, nil
}

func (m *Memory) SelectTask(_ context.Context, userID string, taskID int64) (*models.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.tasks[taskID]
	if !ok || t.UserID != userID {
		return nil, ErrNotFound
	}
	task := *t
	return &task, nil
}

func (m *Memory) UpdateTask(_ context.Context, task *models.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tasks[task.ID]
	if !ok || t.UserID != task.UserID {
		return ErrNotFound
	}
	t.Title = task.Title
	t.Description = task.Description
	t.IsCompleted = task.IsCompleted
	t.UpdatedAt = task.UpdatedAt
	return nil
}

func (m *Memory) DeleteTask(_ context.Context, userID string, taskID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tasks[taskID]
	if !ok || t.UserID != userID {
		return ErrNotFound
	}
	delete(m.tasks, taskID)
	return nil
}
