package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tasktrack/task-tracker-api/internal/dto"
	apierrors "github.com/tasktrack/task-tracker-api/internal/errors"
	"github.com/tasktrack/task-tracker-api/internal/middleware"
	"github.com/tasktrack/task-tracker-api/internal/models"
	"github.com/tasktrack/task-tracker-api/internal/services"
	"github.com/tasktrack/task-tracker-api/internal/utils"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// CreateTask creates a task in a project.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	actor, exists := middleware.CurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateTaskRequest struct {
		Title          string            `json:"title" binding:"required"`
		Description    string            `json:"description"`
		Status         models.TaskStatus `json:"status"`
		Priority       models.Priority   `json:"priority"`
		DueDate        *time.Time        `json:"due_date"`
		ProjectID      uint64            `json:"project_id" binding:"required"`
		AssignedUserID *uint64           `json:"assigned_user_id"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(actor, services.CreateTaskInput{
		Title:          req.Title,
		Description:    req.Description,
		Status:         req.Status,
		Priority:       req.Priority,
		DueDate:        req.DueDate,
		ProjectID:      req.ProjectID,
		AssignedUserID: req.AssignedUserID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskResponse(*task))
}

// GetTask returns a single task.
func (h *TaskHandler) GetTask(c *gin.Context) {
	actor, exists := middleware.CurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(actor, taskID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskResponse(*task))
}

// UpdateTask applies the provided fields to a task. For an assigned
// user only the status field is honored.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	actor, exists := middleware.CurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type UpdateTaskRequest struct {
		Title          *string            `json:"title"`
		Description    *string            `json:"description"`
		Status         *models.TaskStatus `json:"status"`
		Priority       *models.Priority   `json:"priority"`
		DueDate        *time.Time         `json:"due_date"`
		AssignedUserID *uint64            `json:"assigned_user_id"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.UpdateTask(actor, taskID, services.UpdateTaskInput{
		Title:          req.Title,
		Description:    req.Description,
		Status:         req.Status,
		Priority:       req.Priority,
		DueDate:        req.DueDate,
		AssignedUserID: req.AssignedUserID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskResponse(*task))
}

// DeleteTask deletes a task.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	actor, exists := middleware.CurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(actor, taskID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// AssignTask assigns a task to a user.
func (h *TaskHandler) AssignTask(c *gin.Context) {
	actor, exists := middleware.CurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	task, err := h.taskService.AssignTask(actor, taskID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskResponse(*task))
}

// SetTaskStatus sets a task's status. Assignee only.
func (h *TaskHandler) SetTaskStatus(c *gin.Context) {
	actor, exists := middleware.CurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	status := models.TaskStatus(c.Query("status"))
	if status == "" {
		apierrors.BadRequest(c, "status query parameter is required")
		return
	}

	task, err := h.taskService.SetTaskStatus(actor, taskID, status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskResponse(*task))
}

// ListTasksByProject returns a page of a project's tasks.
func (h *TaskHandler) ListTasksByProject(c *gin.Context) {
	actor, exists := middleware.CurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	input, ok := parseListTasksInput(c)
	if !ok {
		return
	}

	tasks, total, err := h.taskService.ListTasksByProject(actor, projectID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(tasks, input.Page, input.PageSize, total))
}

// ListTasksByUser returns a page of a user's assigned tasks.
func (h *TaskHandler) ListTasksByUser(c *gin.Context) {
	actor, exists := middleware.CurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	input, ok := parseListTasksInput(c)
	if !ok {
		return
	}

	tasks, total, err := h.taskService.ListTasksByUser(actor, userID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(tasks, input.Page, input.PageSize, total))
}

// ListMyTasks returns a page of the caller's assigned tasks.
func (h *TaskHandler) ListMyTasks(c *gin.Context) {
	actor, exists := middleware.CurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	input, ok := parseListTasksInput(c)
	if !ok {
		return
	}

	tasks, total, err := h.taskService.ListMyTasks(actor, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(tasks, input.Page, input.PageSize, total))
}

// parseListTasksInput extracts pagination and the optional status and
// priority filters from the query string.
func parseListTasksInput(c *gin.Context) (services.ListTasksInput, bool) {
	params := utils.GetPaginationParams(c)
	input := services.ListTasksInput{
		Page:     params.Page,
		PageSize: params.Limit,
	}

	if raw := c.Query("status"); raw != "" {
		status := models.TaskStatus(raw)
		if !status.Valid() {
			apierrors.BadRequest(c, "Invalid status filter")
			return input, false
		}
		input.Status = &status
	}
	if raw := c.Query("priority"); raw != "" {
		priority := models.Priority(raw)
		if !priority.Valid() {
			apierrors.BadRequest(c, "Invalid priority filter")
			return input, false
		}
		input.Priority = &priority
	}

	return input, true
}
