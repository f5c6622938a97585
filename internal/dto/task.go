package dto

import (
	"time"

	"github.com/tasktrack/task-tracker-api/internal/models"
)

// TaskResponse represents a task in API responses
type TaskResponse struct {
	ID             uint64            `json:"id"`
	Title          string            `json:"title"`
	Description    string            `json:"description"`
	Status         models.TaskStatus `json:"status"`
	Priority       models.Priority   `json:"priority"`
	DueDate        *time.Time        `json:"due_date"`
	ProjectID      uint64            `json:"project_id"`
	AssignedUserID *uint64           `json:"assigned_user_id"`
	Project        *ProjectResponse  `json:"project,omitempty"`
	AssignedUser   *UserResponse     `json:"assigned_user,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// TaskListItem represents a task in list responses (minimal data)
type TaskListItem struct {
	ID             uint64            `json:"id"`
	Title          string            `json:"title"`
	Description    string            `json:"description"`
	Status         models.TaskStatus `json:"status"`
	Priority       models.Priority   `json:"priority"`
	DueDate        *time.Time        `json:"due_date"`
	ProjectID      uint64            `json:"project_id"`
	AssignedUserID *uint64           `json:"assigned_user_id"`
	CreatedAt      time.Time         `json:"created_at"`
}

// TaskListResponse represents a paginated list of tasks
type TaskListResponse struct {
	Tasks      []TaskListItem `json:"tasks"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalCount int64          `json:"total_count"`
	TotalPages int            `json:"total_pages"`
}

// ToTaskResponse converts a Task model to TaskResponse
func ToTaskResponse(task models.Task) TaskResponse {
	response := TaskResponse{
		ID:             task.ID,
		Title:          task.Title,
		Description:    task.Description,
		Status:         task.Status,
		Priority:       task.Priority,
		DueDate:        task.DueDate,
		ProjectID:      task.ProjectID,
		AssignedUserID: task.AssignedUserID,
		CreatedAt:      task.CreatedAt,
		UpdatedAt:      task.UpdatedAt,
	}

	// Include project if preloaded
	if task.Project.ID != 0 {
		project := ToProjectResponse(task.Project)
		response.Project = &project
	}

	// Include assignee if preloaded
	if task.AssignedUser != nil && task.AssignedUser.ID != 0 {
		assignee := ToUserResponse(*task.AssignedUser)
		response.AssignedUser = &assignee
	}

	return response
}

// ToTaskListItem converts a Task model to TaskListItem
func ToTaskListItem(task models.Task) TaskListItem {
	return TaskListItem{
		ID:             task.ID,
		Title:          task.Title,
		Description:    task.Description,
		Status:         task.Status,
		Priority:       task.Priority,
		DueDate:        task.DueDate,
		ProjectID:      task.ProjectID,
		AssignedUserID: task.AssignedUserID,
		CreatedAt:      task.CreatedAt,
	}
}

// ToTaskListResponse converts a slice of tasks to TaskListResponse
func ToTaskListResponse(tasks []models.Task, page, pageSize int, totalCount int64) TaskListResponse {
	items := make([]TaskListItem, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskListItem(task)
	}

	totalPages := 0
	if pageSize > 0 {
		totalPages = int(totalCount) / pageSize
		if int(totalCount)%pageSize > 0 {
			totalPages++
		}
	}

	return TaskListResponse{
		Tasks:      items,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
		TotalPages: totalPages,
	}
}
