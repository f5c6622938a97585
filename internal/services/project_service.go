package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tasktrack/task-tracker-api/internal/authz"
	"github.com/tasktrack/task-tracker-api/internal/models"
	"github.com/tasktrack/task-tracker-api/internal/repository"
	"gorm.io/gorm"
)

// ProjectService handles project business logic. Every operation
// resolves the target first and asks the authorization engine before
// touching anything.
type ProjectService struct {
	projectRepo repository.ProjectRepository
}

// NewProjectService creates a new ProjectService
func NewProjectService(projectRepo repository.ProjectRepository) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
	}
}

// CreateProjectInput represents input for creating a project
type CreateProjectInput struct {
	Name        string
	Description string
}

// UpdateProjectInput represents input for updating a project. Nil
// fields leave the stored values unchanged.
type UpdateProjectInput struct {
	Name        *string
	Description *string
}

// CreateProject creates a project owned by the actor.
func (s *ProjectService) CreateProject(actor *models.User, input CreateProjectInput) (*models.Project, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrNameRequired
	}

	if !authz.Decide(actor, authz.ActionCreateProject, authz.Target{}) {
		return nil, ErrPermissionDenied
	}

	project := &models.Project{
		Name:        input.Name,
		Description: input.Description,
		OwnerID:     actor.ID,
	}

	if err := s.projectRepo.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return s.projectRepo.FindByID(project.ID)
}

// GetProject returns a project the actor may read.
func (s *ProjectService) GetProject(actor *models.User, projectID uint64) (*models.Project, error) {
	project, err := s.findProject(projectID)
	if err != nil {
		return nil, err
	}

	if !authz.Decide(actor, authz.ActionReadProject, authz.ForProject(project)) {
		return nil, ErrPermissionDenied
	}

	return project, nil
}

// UpdateProject applies the provided fields to a project.
func (s *ProjectService) UpdateProject(actor *models.User, projectID uint64, input UpdateProjectInput) (*models.Project, error) {
	project, err := s.findProject(projectID)
	if err != nil {
		return nil, err
	}

	if !authz.Decide(actor, authz.ActionUpdateProject, authz.ForProject(project)) {
		return nil, ErrPermissionDenied
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, ErrNameRequired
		}
		project.Name = *input.Name
	}
	if input.Description != nil {
		project.Description = *input.Description
	}

	if err := s.projectRepo.Update(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return s.projectRepo.FindByID(project.ID)
}

// DeleteProject deletes a project along with its tasks.
func (s *ProjectService) DeleteProject(actor *models.User, projectID uint64) error {
	project, err := s.findProject(projectID)
	if err != nil {
		return err
	}

	if !authz.Decide(actor, authz.ActionDeleteProject, authz.ForProject(project)) {
		return ErrPermissionDenied
	}

	if err := s.projectRepo.Delete(project.ID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	return nil
}

// ListProjects returns all projects for an admin and the owned ones
// for a manager. Regular users are denied.
func (s *ProjectService) ListProjects(actor *models.User) ([]models.Project, error) {
	if !authz.Decide(actor, authz.ActionListProjects, authz.Target{}) {
		return nil, ErrPermissionDenied
	}

	var (
		projects []models.Project
		err      error
	)
	if actor.Role == models.RoleAdmin {
		projects, err = s.projectRepo.FindAll()
	} else {
		projects, err = s.projectRepo.FindByOwnerID(actor.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	return projects, nil
}

func (s *ProjectService) findProject(projectID uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}
