package services

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/jeremyakd/todo-challenge/internal/models"
	"github.com/jeremyakd/todo-challenge/internal/storage"
)

type taskServiceImpl struct {
	logger zerolog.Logger
	tasks  storage.TaskStorage
}

func NewTaskService(
	logger zerolog.Logger,
	tasks storage.TaskStorage,
) TaskService {
	return &taskServiceImpl{
		logger: logger,
		tasks:  tasks,
	}
}

func (s *taskServiceImpl) ListTasks(ctx context.Context, userID string) ([]*models.Task, error) {
	tasks, err := s.tasks.SelectTasksByUserID(ctx, userID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("user_id", userID).
			Msg("failed to select tasks by user id")
		return nil, err
	}
	s.logger.Debug().
		Int("count", len(tasks)).
		Str("user_id", userID).
		Msg("selected tasks by user id")
	return tasks, nil
}

func (s *taskServiceImpl) CreateTask(ctx context.Context, userID string, params CreateTaskParams) (*models.Task, error) {
	err := validateTitle(params.Title)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	task := &models.Task{
		UserID:      userID,
		Title:       params.Title,
		Description: params.Description,
		IsCompleted: params.IsCompleted,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.tasks.InsertTask(ctx, task)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("user_id", userID).
			Msg("failed to insert task")
		return nil, err
	}

	s.logger.Info().
		Int64("task_id", task.ID).
		Str("user_id", userID).
		Msg("created task")
	return task, nil
}

func (s *taskServiceImpl) GetTask(ctx context.Context, userID string, taskID int64) (*models.Task, error) {
	task, err := s.tasks.SelectTask(ctx, userID, taskID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn().
				Int64("task_id", taskID).
				Str("user_id", userID).
				Msg("task not found")
			return nil, ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("task_id", taskID).
			Msg("failed to select task")
		return nil, err
	}
	return task, nil
}

func (s *taskServiceImpl) ReplaceTask(ctx context.Context, userID string, taskID int64, params ReplaceTaskParams) (*models.Task, error) {
	// Existence and ownership resolve first: a task the caller cannot
	// see stays not-found regardless of what the payload contains.
	task, err := s.GetTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	err = validateTitle(params.Title)
	if err != nil {
		return nil, err
	}

	task.Title = params.Title
	task.Description = params.Description
	task.IsCompleted = params.IsCompleted
	task.UpdatedAt = time.Now()

	err = s.writeTask(ctx, task)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("task_id", task.ID).
		Str("user_id", userID).
		Msg("replaced task")
	return task, nil
}

func (s *taskServiceImpl) UpdateTask(ctx context.Context, userID string, taskID int64, params UpdateTaskParams) (*models.Task, error) {
	// Same order as ReplaceTask: resolve the task before looking at
	// the payload.
	task, err := s.GetTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	if params.Title != nil {
		err = validateTitle(*params.Title)
		if err != nil {
			return nil, err
		}
		task.Title = *params.Title
	}
	if params.Description != nil {
		task.Description = *params.Description
	}
	if params.IsCompleted != nil {
		task.IsCompleted = *params.IsCompleted
	}
	task.UpdatedAt = time.Now()

	err = s.writeTask(ctx, task)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("task_id", task.ID).
		Str("user_id", userID).
		Msg("updated task")
	return task, nil
}

func (s *taskServiceImpl) DeleteTask(ctx context.Context, userID string, taskID int64) error {
	err := s.tasks.DeleteTask(ctx, userID, taskID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn().
				Int64("task_id", taskID).
				Str("user_id", userID).
				Msg("task not found")
			return ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("task_id", taskID).
			Msg("failed to delete task")
		return err
	}

	s.logger.Info().
		Int64("task_id", taskID).
		Str("user_id", userID).
		Msg("deleted task")
	return nil
}

// maxTitleLength bounds the title in characters, matching the
// column width.
const maxTitleLength = 255

func validateTitle(title string) error {
	if title == "" {
		return ErrTitleRequired
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return ErrTitleTooLong
	}
	return nil
}

func (s *taskServiceImpl) writeTask(ctx context.Context, task *models.Task) error {
	err := s.tasks.UpdateTask(ctx, task)
	if err != nil {
		// The task can disappear between the read and the write;
		// the unified not-found policy still applies.
		if errors.Is(err, storage.ErrNotFound) {
			return ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("task_id", task.ID).
			Msg("failed to update task")
		return err
	}
	return nil
}
