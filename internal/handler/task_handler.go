package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tasktracker/internal/model"
	"tasktracker/internal/optional"
	"tasktracker/internal/service"
	"tasktracker/internal/timeofday"
)

// TaskUseCase is the task lifecycle as seen by the HTTP layer.
type TaskUseCase interface {
	Create(ctx context.Context, in service.CreateTaskInput) (*model.Task, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Task, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Task, error)
	Update(ctx context.Context, id uuid.UUID, patch service.TaskPatch) (*model.Task, error)
	Remove(ctx context.Context, id uuid.UUID) error
	AddUpdate(ctx context.Context, taskID uuid.UUID, message string) (*model.TaskUpdate, error)
	Logs(ctx context.Context, taskID uuid.UUID) ([]model.TaskLog, error)
	Updates(ctx context.Context, taskID uuid.UUID) ([]model.TaskUpdate, error)
}

type TaskHandler struct {
	tasks  TaskUseCase
	logger *slog.Logger
}

func NewTaskHandler(tasks TaskUseCase, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{tasks: tasks, logger: logger}
}

type CreateTaskRequest struct {
	Title       string  `json:"title" binding:"required" example:"Prepare slides"`
	Description *string `json:"description" example:"For the monday review"`
	Status      string  `json:"status" binding:"required,task_status" example:"Pendiente"`
	Priority    string  `json:"priority" binding:"required,task_priority" example:"Media"`
	StartTime   *string `json:"startTime" example:"14:30"`
	UserID      string  `json:"userId" binding:"required,uuid"`
	// TotalHours is accepted for compatibility and not stored.
	TotalHours *int `json:"totalHours" binding:"omitempty,min=0"`
}

// UpdateTaskRequest distinguishes an omitted field from an explicit null.
type UpdateTaskRequest struct {
	Title       optional.Field[string] `json:"title" swaggertype:"string"`
	Description optional.Field[string] `json:"description" swaggertype:"string"`
	Status      optional.Field[string] `json:"status" swaggertype:"string"`
	Priority    optional.Field[string] `json:"priority" swaggertype:"string"`
	StartTime   optional.Field[string] `json:"startTime" swaggertype:"string"`
	TotalHours  optional.Field[int]    `json:"totalHours" swaggertype:"integer"`
}

type TaskUpdateRequest struct {
	Message string `json:"message" binding:"required"`
}

type listTasksQuery struct {
	UserID string `form:"userId" json:"userId" binding:"required,uuid"`
}

type TaskResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
	StartTime   *string   `json:"startTime"`
	UserID      string    `json:"userId"`
	TotalHours  *int      `json:"totalHours,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type TaskLogResponse struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Details   *string   `json:"details"`
	Timestamp time.Time `json:"timestamp"`
}

type TaskUpdateResponse struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

func newTaskResponse(t *model.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID.String(),
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		StartTime:   timeofday.ToTimeString(t.DueDate),
		UserID:      t.UserID.String(),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// Create godoc
// @Summary      Create a task
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        task  body      CreateTaskRequest  true  "Task"
// @Success      201   {object}  TaskResponse
// @Failure      400   {object}  ErrorResponse
// @Router       /tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid user ID format"})
		return
	}

	task, err := h.tasks.Create(c.Request.Context(), service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		TimeOfDay:   req.StartTime,
		UserID:      userID,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	resp := newTaskResponse(task)
	zero := 0
	resp.TotalHours = &zero
	c.JSON(http.StatusCreated, resp)
}

// List godoc
// @Summary      List a user's tasks, newest first
// @Tags         Tasks
// @Produce      json
// @Security     BearerAuth
// @Param        userId  query     string  true  "Owner id"
// @Success      200     {array}   TaskResponse
// @Failure      400     {object}  ErrorResponse
// @Router       /tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	var q listTasksQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}
	userID, err := uuid.Parse(q.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid user ID format"})
		return
	}

	tasks, err := h.tasks.ListByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	resp := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		resp = append(resp, newTaskResponse(&tasks[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// GetByID godoc
// @Summary      Get a task
// @Tags         Tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task id"
// @Success      200  {object}  TaskResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /tasks/{id} [get]
func (h *TaskHandler) GetByID(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}

	task, err := h.tasks.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, newTaskResponse(task))
}

// Update godoc
// @Summary      Partially update a task
// @Description  Omitted fields are left unchanged. "startTime": "" removes the due date, "description": null clears it.
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Task id"
// @Param        task  body      UpdateTaskRequest  true  "Fields to change"
// @Success      200   {object}  TaskResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /tasks/{id} [patch]
func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if hours, ok := req.TotalHours.Get(); ok && hours < 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request",
			Details: []FieldError{{Field: "totalHours", Message: "must be at least 0"}},
		})
		return
	}

	task, err := h.tasks.Update(c.Request.Context(), id, req.patch())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, newTaskResponse(task))
}

// patch converts the request to a service patch. A null startTime counts as
// omitted; only "" clears the due date.
func (r UpdateTaskRequest) patch() service.TaskPatch {
	p := service.TaskPatch{
		Title:       r.Title,
		Description: r.Description,
		Status:      r.Status,
		Priority:    r.Priority,
		TimeOfDay:   r.StartTime,
	}
	if r.StartTime.IsClear() {
		p.TimeOfDay = optional.Unset[string]()
	}
	return p
}

// Delete godoc
// @Summary      Delete a task with its logs and updates
// @Tags         Tasks
// @Security     BearerAuth
// @Param        id  path  string  true  "Task id"
// @Success      204
// @Router       /tasks/{id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}

	if err := h.tasks.Remove(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddUpdate godoc
// @Summary      Add a progress note to a task
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Task id"
// @Param        note  body      TaskUpdateRequest  true  "Note"
// @Success      201   {object}  TaskUpdateResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /tasks/{id}/updates [post]
func (h *TaskHandler) AddUpdate(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}

	var req TaskUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	update, err := h.tasks.AddUpdate(c.Request.Context(), id, req.Message)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, TaskUpdateResponse{
		ID:        update.ID.String(),
		Message:   update.Message,
		CreatedAt: update.CreatedAt,
	})
}

// ListUpdates godoc
// @Summary      List a task's progress notes, oldest first
// @Tags         Tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task id"
// @Success      200  {array}   TaskUpdateResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /tasks/{id}/updates [get]
func (h *TaskHandler) ListUpdates(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}

	updates, err := h.tasks.Updates(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	resp := make([]TaskUpdateResponse, 0, len(updates))
	for _, u := range updates {
		resp = append(resp, TaskUpdateResponse{ID: u.ID.String(), Message: u.Message, CreatedAt: u.CreatedAt})
	}
	c.JSON(http.StatusOK, resp)
}

// ListLogs godoc
// @Summary      List a task's audit log, oldest first
// @Tags         Tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task id"
// @Success      200  {array}   TaskLogResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /tasks/{id}/logs [get]
func (h *TaskHandler) ListLogs(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}

	logs, err := h.tasks.Logs(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	resp := make([]TaskLogResponse, 0, len(logs))
	for _, l := range logs {
		resp = append(resp, TaskLogResponse{
			ID:        l.ID.String(),
			Action:    l.Action,
			Details:   l.Details,
			Timestamp: l.Timestamp,
		})
	}
	c.JSON(http.StatusOK, resp)
}

func taskID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid task ID"})
		return uuid.Nil, false
	}
	return id, true
}
