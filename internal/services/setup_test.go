package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tasktrack/task-tracker-api/internal/auth"
	"github.com/tasktrack/task-tracker-api/internal/models"
	"github.com/tasktrack/task-tracker-api/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testEnv struct {
	db             *gorm.DB
	authService    *AuthService
	projectService *ProjectService
	taskService    *TaskService
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Task{},
	)
	require.NoError(t, err)

	require.NoError(t, auth.InitSecret("test-secret"))

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return &testEnv{
		db:             db,
		authService:    NewAuthService(userRepo),
		projectService: NewProjectService(projectRepo),
		taskService:    NewTaskService(taskRepo, projectRepo, userRepo),
	}
}

func (e *testEnv) createUser(t *testing.T, email string, role models.Role) *models.User {
	t.Helper()
	user := &models.User{
		Email:        email,
		PasswordHash: "hashedpassword",
		Role:         role,
	}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

func (e *testEnv) createProject(t *testing.T, name string, owner *models.User) *models.Project {
	t.Helper()
	project := &models.Project{
		Name:        name,
		Description: "Test Description",
		OwnerID:     owner.ID,
	}
	require.NoError(t, e.db.Create(project).Error)
	return project
}

func (e *testEnv) createTask(t *testing.T, title string, project *models.Project, assignee *models.User, status models.TaskStatus, priority models.Priority) *models.Task {
	t.Helper()
	task := &models.Task{
		Title:       title,
		Description: "Test Description",
		Status:      status,
		Priority:    priority,
		ProjectID:   project.ID,
	}
	if assignee != nil {
		task.AssignedUserID = &assignee.ID
	}
	require.NoError(t, e.db.Create(task).Error)
	return task
}
