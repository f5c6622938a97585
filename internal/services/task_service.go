package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tasktrack/task-tracker-api/internal/authz"
	"github.com/tasktrack/task-tracker-api/internal/models"
	"github.com/tasktrack/task-tracker-api/internal/repository"
	"gorm.io/gorm"
)

// taskPreloads are the relations loaded for single-task responses.
var taskPreloads = []string{"Project", "Project.Owner", "AssignedUser"}

// TaskService handles task business logic
type TaskService struct {
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository, userRepo repository.UserRepository) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title          string
	Description    string
	Status         models.TaskStatus
	Priority       models.Priority
	DueDate        *time.Time
	ProjectID      uint64
	AssignedUserID *uint64
}

// UpdateTaskInput represents input for updating a task. Nil fields
// leave the stored values unchanged.
type UpdateTaskInput struct {
	Title          *string
	Description    *string
	Status         *models.TaskStatus
	Priority       *models.Priority
	DueDate        *time.Time
	AssignedUserID *uint64
}

// ListTasksInput represents filters for listing tasks. Status takes
// precedence over priority when both are provided.
type ListTasksInput struct {
	Status   *models.TaskStatus
	Priority *models.Priority
	Page     int
	PageSize int
}

// CreateTask creates a task in a project the actor controls.
func (s *TaskService) CreateTask(actor *models.User, input CreateTaskInput) (*models.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}

	project, err := s.findProject(input.ProjectID)
	if err != nil {
		return nil, err
	}

	if !authz.Decide(actor, authz.ActionCreateTask, authz.ForProject(project)) {
		return nil, ErrPermissionDenied
	}

	if input.Status == "" {
		input.Status = models.TaskStatusTodo
	}
	if !input.Status.Valid() {
		return nil, ErrInvalidTaskStatus
	}
	if input.Priority == "" {
		input.Priority = models.PriorityMedium
	}
	if !input.Priority.Valid() {
		return nil, ErrInvalidTaskPriority
	}

	task := &models.Task{
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		Priority:    input.Priority,
		DueDate:     input.DueDate,
		ProjectID:   project.ID,
	}

	if input.AssignedUserID != nil {
		assignee, err := s.findUser(*input.AssignedUserID)
		if err != nil {
			return nil, err
		}
		task.AssignedUserID = &assignee.ID
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, taskPreloads...)
}

// GetTask returns a task the actor may read.
func (s *TaskService) GetTask(actor *models.User, taskID uint64) (*models.Task, error) {
	task, err := s.findTask(taskID)
	if err != nil {
		return nil, err
	}

	if !authz.Decide(actor, authz.ActionReadTask, authz.ForTask(task)) {
		return nil, ErrPermissionDenied
	}

	return task, nil
}

// UpdateTask applies the provided fields to a task. Admins and the
// owning manager update every provided field; the assigned user is
// narrowed to the status field, with any other submitted fields
// silently discarded.
func (s *TaskService) UpdateTask(actor *models.User, taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.findTask(taskID)
	if err != nil {
		return nil, err
	}

	target := authz.ForTask(task)
	if !authz.Decide(actor, authz.ActionUpdateTask, target) {
		return nil, ErrPermissionDenied
	}

	if input.Status != nil && !input.Status.Valid() {
		return nil, ErrInvalidTaskStatus
	}

	if authz.CanApplyFullTaskUpdate(actor, target) {
		if input.Title != nil {
			if strings.TrimSpace(*input.Title) == "" {
				return nil, ErrTitleEmpty
			}
			task.Title = *input.Title
		}
		if input.Description != nil {
			task.Description = *input.Description
		}
		if input.Status != nil {
			task.Status = *input.Status
		}
		if input.Priority != nil {
			if !input.Priority.Valid() {
				return nil, ErrInvalidTaskPriority
			}
			task.Priority = *input.Priority
		}
		if input.DueDate != nil {
			task.DueDate = input.DueDate
		}
		if input.AssignedUserID != nil {
			assignee, err := s.findUser(*input.AssignedUserID)
			if err != nil {
				return nil, err
			}
			task.AssignedUserID = &assignee.ID
		}
	} else {
		// Assigned user: status only, everything else is ignored.
		if input.Status != nil {
			task.Status = *input.Status
		}
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, taskPreloads...)
}

// DeleteTask deletes a task.
func (s *TaskService) DeleteTask(actor *models.User, taskID uint64) error {
	task, err := s.findTask(taskID)
	if err != nil {
		return err
	}

	if !authz.Decide(actor, authz.ActionDeleteTask, authz.ForTask(task)) {
		return ErrPermissionDenied
	}

	if err := s.taskRepo.Delete(task.ID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// AssignTask assigns a task to a user. Managers may only assign tasks
// of their own projects.
func (s *TaskService) AssignTask(actor *models.User, taskID, userID uint64) (*models.Task, error) {
	if actor.Role != models.RoleAdmin && actor.Role != models.RoleManager {
		return nil, ErrPermissionDenied
	}

	task, err := s.findTask(taskID)
	if err != nil {
		return nil, err
	}

	if !authz.Decide(actor, authz.ActionAssignTask, authz.ForTask(task)) {
		return nil, ErrPermissionDenied
	}

	assignee, err := s.findUser(userID)
	if err != nil {
		return nil, err
	}

	task.AssignedUserID = &assignee.ID
	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to assign task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, taskPreloads...)
}

// SetTaskStatus sets a task's status. This operation is assignee-only:
// even an admin or the owning manager is denied unless they are the
// assigned user.
func (s *TaskService) SetTaskStatus(actor *models.User, taskID uint64, status models.TaskStatus) (*models.Task, error) {
	if !status.Valid() {
		return nil, ErrInvalidTaskStatus
	}

	task, err := s.findTask(taskID)
	if err != nil {
		return nil, err
	}

	if !authz.Decide(actor, authz.ActionSetTaskStatus, authz.ForTask(task)) {
		return nil, ErrPermissionDenied
	}

	task.Status = status
	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task status: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, taskPreloads...)
}

// ListTasksByProject returns a page of a project's tasks.
func (s *TaskService) ListTasksByProject(actor *models.User, projectID uint64, input ListTasksInput) ([]models.Task, int64, error) {
	project, err := s.findProject(projectID)
	if err != nil {
		return nil, 0, err
	}

	if !authz.Decide(actor, authz.ActionListProjectTasks, authz.ForProject(project)) {
		return nil, 0, ErrPermissionDenied
	}

	filter := buildTaskFilter(input)
	filter.ProjectID = &project.ID

	tasks, total, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, total, nil
}

// ListTasksByUser returns a page of the tasks assigned to a user.
func (s *TaskService) ListTasksByUser(actor *models.User, userID uint64, input ListTasksInput) ([]models.Task, int64, error) {
	if !authz.Decide(actor, authz.ActionListUserTasks, authz.ForUser(userID)) {
		return nil, 0, ErrPermissionDenied
	}

	filter := buildTaskFilter(input)
	filter.AssignedUserID = &userID

	tasks, total, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, total, nil
}

// ListMyTasks returns a page of the actor's assigned tasks.
func (s *TaskService) ListMyTasks(actor *models.User, input ListTasksInput) ([]models.Task, int64, error) {
	return s.ListTasksByUser(actor, actor.ID, input)
}

// buildTaskFilter maps list input to a repository filter, enforcing
// the status-over-priority precedence.
func buildTaskFilter(input ListTasksInput) repository.TaskFilter {
	filter := repository.TaskFilter{
		Page:     input.Page,
		PageSize: input.PageSize,
	}
	if input.Status != nil {
		filter.Status = input.Status
	} else if input.Priority != nil {
		filter.Priority = input.Priority
	}
	return filter
}

func (s *TaskService) findTask(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID, taskPreloads...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

func (s *TaskService) findProject(projectID uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

func (s *TaskService) findUser(userID uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}
