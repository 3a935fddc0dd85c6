package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeremyakd/todo-challenge/internal/storage"
)

func newTaskService(t *testing.T) TaskService {
	t.Helper()
	return NewTaskService(zerolog.Nop(), storage.NewMemory())
}

func TestCreateTaskDefaults(t *testing.T) {
	tasks := newTaskService(t)

	task, err := tasks.CreateTask(context.Background(), "u1", CreateTaskParams{
		Title: "Buy milk",
	})
	require.NoError(t, err)
	assert.Positive(t, task.ID)
	assert.Equal(t, "u1", task.UserID)
	assert.Equal(t, "Buy milk", task.Title)
	assert.Empty(t, task.Description)
	assert.False(t, task.IsCompleted)
	assert.False(t, task.CreatedAt.IsZero())
	assert.Equal(t, task.CreatedAt, task.UpdatedAt)
}

func TestCreateTaskRequiresTitle(t *testing.T) {
	tasks := newTaskService(t)

	_, err := tasks.CreateTask(context.Background(), "u1", CreateTaskParams{})
	assert.ErrorIs(t, err, ErrTitleRequired)
}

func TestCreateTaskOwnerIsCaller(t *testing.T) {
	tasks := newTaskService(t)

	task, err := tasks.CreateTask(context.Background(), "u1", CreateTaskParams{
		Title: "Mine",
	})
	require.NoError(t, err)

	got, err := tasks.GetTask(context.Background(), "u1", task.ID)
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID)
}

func TestListTasksNewestFirst(t *testing.T) {
	tasks := newTaskService(t)

	titles := []string{"first", "second", "third"}
	for _, title := range titles {
		_, err := tasks.CreateTask(context.Background(), "u1", CreateTaskParams{Title: title})
		require.NoError(t, err)
	}

	listed, err := tasks.ListTasks(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, "third", listed[0].Title)
	assert.Equal(t, "second", listed[1].Title)
	assert.Equal(t, "first", listed[2].Title)
}

func TestListTasksScopedToOwner(t *testing.T) {
	tasks := newTaskService(t)

	mine, err := tasks.CreateTask(context.Background(), "u1", CreateTaskParams{Title: "mine"})
	require.NoError(t, err)
	theirs, err := tasks.CreateTask(context.Background(), "u2", CreateTaskParams{Title: "theirs"})
	require.NoError(t, err)

	listed, err := tasks.ListTasks(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, mine.ID, listed[0].ID)

	for _, task := range listed {
		assert.NotEqual(t, theirs.ID, task.ID)
	}
}

func TestForeignTaskIndistinguishableFromMissing(t *testing.T) {
	tasks := newTaskService(t)

	theirs, err := tasks.CreateTask(context.Background(), "u2", CreateTaskParams{Title: "theirs"})
	require.NoError(t, err)

	title := "hijacked"
	completed := true

	_, foreignGet := tasks.GetTask(context.Background(), "u1", theirs.ID)
	_, foreignReplace := tasks.ReplaceTask(context.Background(), "u1", theirs.ID, ReplaceTaskParams{Title: title})
	_, foreignUpdate := tasks.UpdateTask(context.Background(), "u1", theirs.ID, UpdateTaskParams{IsCompleted: &completed})
	foreignDelete := tasks.DeleteTask(context.Background(), "u1", theirs.ID)

	_, missingGet := tasks.GetTask(context.Background(), "u1", 99999)

	assert.ErrorIs(t, foreignGet, ErrTaskNotFound)
	assert.ErrorIs(t, foreignReplace, ErrTaskNotFound)
	assert.ErrorIs(t, foreignUpdate, ErrTaskNotFound)
	assert.ErrorIs(t, foreignDelete, ErrTaskNotFound)
	assert.Equal(t, missingGet, foreignGet)

	// The foreign task must be untouched.
	got, err := tasks.GetTask(context.Background(), "u2", theirs.ID)
	require.NoError(t, err)
	assert.Equal(t, "theirs", got.Title)
	assert.False(t, got.IsCompleted)
}

func TestNotFoundPrecedesTitleValidation(t *testing.T) {
	tasks := newTaskService(t)

	theirs, err := tasks.CreateTask(context.Background(), "u2", CreateTaskParams{Title: "theirs"})
	require.NoError(t, err)

	// A task the caller cannot see is not found even when the payload
	// would fail validation on its own.
	empty := ""
	_, foreignReplace := tasks.ReplaceTask(context.Background(), "u1", theirs.ID, ReplaceTaskParams{})
	_, foreignUpdate := tasks.UpdateTask(context.Background(), "u1", theirs.ID, UpdateTaskParams{Title: &empty})
	_, missingReplace := tasks.ReplaceTask(context.Background(), "u1", 99999, ReplaceTaskParams{})
	_, missingUpdate := tasks.UpdateTask(context.Background(), "u1", 99999, UpdateTaskParams{Title: &empty})

	assert.ErrorIs(t, foreignReplace, ErrTaskNotFound)
	assert.ErrorIs(t, foreignUpdate, ErrTaskNotFound)
	assert.ErrorIs(t, missingReplace, ErrTaskNotFound)
	assert.ErrorIs(t, missingUpdate, ErrTaskNotFound)
}

func TestTitleLengthBound(t *testing.T) {
	tasks := newTaskService(t)

	longest := strings.Repeat("a", 255)
	tooLong := longest + "a"

	created, err := tasks.CreateTask(context.Background(), "u1", CreateTaskParams{Title: longest})
	require.NoError(t, err)

	_, err = tasks.CreateTask(context.Background(), "u1", CreateTaskParams{Title: tooLong})
	assert.ErrorIs(t, err, ErrTitleTooLong)

	_, err = tasks.ReplaceTask(context.Background(), "u1", created.ID, ReplaceTaskParams{Title: tooLong})
	assert.ErrorIs(t, err, ErrTitleTooLong)

	_, err = tasks.UpdateTask(context.Background(), "u1", created.ID, UpdateTaskParams{Title: &tooLong})
	assert.ErrorIs(t, err, ErrTitleTooLong)

	got, err := tasks.GetTask(context.Background(), "u1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, longest, got.Title)
}

func TestReplaceTaskOverwritesAllFields(t *testing.T) {
	tasks := newTaskService(t)

	created, err := tasks.CreateTask(context.Background(), "u1", CreateTaskParams{
		Title:       "original",
		Description: "details",
		IsCompleted: true,
	})
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	replaced, err := tasks.ReplaceTask(context.Background(), "u1", created.ID, ReplaceTaskParams{
		Title: "replaced",
	})
	require.NoError(t, err)
	assert.Equal(t, "replaced", replaced.Title)
	assert.Empty(t, replaced.Description, "omitted description resets")
	assert.False(t, replaced.IsCompleted, "omitted completion flag resets")
	assert.Equal(t, created.CreatedAt, replaced.CreatedAt)
	assert.True(t, replaced.UpdatedAt.After(created.UpdatedAt))
}

func TestReplaceTaskRequiresTitle(t *testing.T) {
	tasks := newTaskService(t)

	created, err := tasks.CreateTask(context.Background(), "u1", CreateTaskParams{Title: "original"})
	require.NoError(t, err)

	_, err = tasks.ReplaceTask(context.Background(), "u1", created.ID, ReplaceTaskParams{})
	assert.ErrorIs(t, err, ErrTitleRequired)

	got, err := tasks.GetTask(context.Background(), "u1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", got.Title)
}

func TestUpdateTaskPartial(t *testing.T) {
	tasks := newTaskService(t)

	created, err := tasks.CreateTask(context.Background(), "u1", CreateTaskParams{
		Title:       "original",
		Description: "details",
	})
	require.NoError(t, err)

	completed := true
	updated, err := tasks.UpdateTask(context.Background(), "u1", created.ID, UpdateTaskParams{
		IsCompleted: &completed,
	})
	require.NoError(t, err)
	assert.True(t, updated.IsCompleted)
	assert.Equal(t, "original", updated.Title)
	assert.Equal(t, "details", updated.Description)
}

func TestUpdateTaskRejectsEmptyTitle(t *testing.T) {
	tasks := newTaskService(t)

	created, err := tasks.CreateTask(context.Background(), "u1", CreateTaskParams{Title: "original"})
	require.NoError(t, err)

	empty := ""
	_, err = tasks.UpdateTask(context.Background(), "u1", created.ID, UpdateTaskParams{Title: &empty})
	assert.ErrorIs(t, err, ErrTitleRequired)
}

func TestDeleteTaskIsTerminal(t *testing.T) {
	tasks := newTaskService(t)

	created, err := tasks.CreateTask(context.Background(), "u1", CreateTaskParams{Title: "doomed"})
	require.NoError(t, err)

	require.NoError(t, tasks.DeleteTask(context.Background(), "u1", created.ID))

	_, err = tasks.GetTask(context.Background(), "u1", created.ID)
	assert.ErrorIs(t, err, ErrTaskNotFound)

	err = tasks.DeleteTask(context.Background(), "u1", created.ID)
	assert.ErrorIs(t, err, ErrTaskNotFound)
}
