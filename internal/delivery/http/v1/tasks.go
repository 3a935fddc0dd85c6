package v1

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jeremyakd/todo-challenge/internal/models"
	"github.com/jeremyakd/todo-challenge/internal/services"
)

type taskResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	IsCompleted bool      `json:"is_completed"`
	Created     time.Time `json:"created"`
	Updated     time.Time `json:"updated"`
}

func newTaskResponse(task *models.Task) taskResponse {
	return taskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		IsCompleted: task.IsCompleted,
		Created:     task.CreatedAt,
		Updated:     task.UpdatedAt,
	}
}

func (h *handlerImpl) HandleListTasks(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		h.logger.Error().Msg("no user id found in context")
		abort(c, newUnauthorizedError(detailInvalidToken))
		return
	}

	tasks, err := h.tasks.ListTasks(c, userID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to list tasks")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	response := make([]taskResponse, 0, len(tasks))
	for _, task := range tasks {
		response = append(response, newTaskResponse(task))
	}
	c.JSON(http.StatusOK, response)
}

// createTaskRequest deliberately has no owner field: the owner is always
// the authenticated caller, and anything else the client sends for it is
// discarded by the binding.
type createTaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	IsCompleted *bool   `json:"is_completed"`
}

func (h *handlerImpl) HandleCreateTask(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		h.logger.Error().Msg("no user id found in context")
		abort(c, newUnauthorizedError(detailInvalidToken))
		return
	}

	var req createTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(detailInvalidBody))
		return
	}

	params := services.CreateTaskParams{Title: req.Title}
	if req.Description != nil {
		params.Description = *req.Description
	}
	if req.IsCompleted != nil {
		params.IsCompleted = *req.IsCompleted
	}

	task, err := h.tasks.CreateTask(c, userID, params)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to create task")
		h.abortTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newTaskResponse(task))
}

func (h *handlerImpl) HandleGetTask(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		h.logger.Error().Msg("no user id found in context")
		abort(c, newUnauthorizedError(detailInvalidToken))
		return
	}

	taskID, ok := taskIDFromParam(c)
	if !ok {
		abort(c, newNotFoundError())
		return
	}

	task, err := h.tasks.GetTask(c, userID, taskID)
	if err != nil {
		h.abortTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, newTaskResponse(task))
}

type replaceTaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	IsCompleted *bool   `json:"is_completed"`
}

func (h *handlerImpl) HandleReplaceTask(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		h.logger.Error().Msg("no user id found in context")
		abort(c, newUnauthorizedError(detailInvalidToken))
		return
	}

	taskID, ok := taskIDFromParam(c)
	if !ok {
		abort(c, newNotFoundError())
		return
	}

	var req replaceTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(detailInvalidBody))
		return
	}

	params := services.ReplaceTaskParams{Title: req.Title}
	if req.Description != nil {
		params.Description = *req.Description
	}
	if req.IsCompleted != nil {
		params.IsCompleted = *req.IsCompleted
	}

	task, err := h.tasks.ReplaceTask(c, userID, taskID, params)
	if err != nil {
		h.abortTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, newTaskResponse(task))
}

type updateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	IsCompleted *bool   `json:"is_completed"`
}

func (h *handlerImpl) HandleUpdateTask(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		h.logger.Error().Msg("no user id found in context")
		abort(c, newUnauthorizedError(detailInvalidToken))
		return
	}

	taskID, ok := taskIDFromParam(c)
	if !ok {
		abort(c, newNotFoundError())
		return
	}

	var req updateTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(detailInvalidBody))
		return
	}

	task, err := h.tasks.UpdateTask(c, userID, taskID, services.UpdateTaskParams{
		Title:       req.Title,
		Description: req.Description,
		IsCompleted: req.IsCompleted,
	})
	if err != nil {
		h.abortTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, newTaskResponse(task))
}

func (h *handlerImpl) HandleDeleteTask(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		h.logger.Error().Msg("no user id found in context")
		abort(c, newUnauthorizedError(detailInvalidToken))
		return
	}

	taskID, ok := taskIDFromParam(c)
	if !ok {
		abort(c, newNotFoundError())
		return
	}

	err := h.tasks.DeleteTask(c, userID, taskID)
	if err != nil {
		h.abortTaskError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *handlerImpl) abortTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		abort(c, newNotFoundError())
	case errors.Is(err, services.ErrTitleRequired):
		abort(c, newBadRequestError(detailTitleRequired))
	case errors.Is(err, services.ErrTitleTooLong):
		abort(c, newBadRequestError(detailTitleTooLong))
	default:
		h.logger.Error().
			Err(err).
			Msg("task operation failed")
		abort(c, newStatusTextError(http.StatusInternalServerError))
	}
}

// taskIDFromParam treats a malformed id the same as an unknown one: the
// path cannot name a real task, so the response is the unified not found.
func taskIDFromParam(c *gin.Context) (int64, bool) {
	taskID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || taskID <= 0 {
		return 0, false
	}
	return taskID, true
}
