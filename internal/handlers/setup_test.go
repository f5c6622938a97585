package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/tasktrack/task-tracker-api/internal/auth"
	"github.com/tasktrack/task-tracker-api/internal/database"
	"github.com/tasktrack/task-tracker-api/internal/middleware"
	"github.com/tasktrack/task-tracker-api/internal/models"
	"github.com/tasktrack/task-tracker-api/internal/repository"
	"github.com/tasktrack/task-tracker-api/internal/services"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testServer struct {
	db     *gorm.DB
	router *gin.Engine
}

// setupTestServer builds the full route tree against an in-memory
// database, with the real auth middleware in front of it.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Task{},
	)
	require.NoError(t, err)

	database.SetDB(db)
	require.NoError(t, auth.InitSecret("test-secret"))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	authHandler := NewAuthHandler(services.NewAuthService(userRepo))
	projectHandler := NewProjectHandler(services.NewProjectService(projectRepo))
	taskHandler := NewTaskHandler(services.NewTaskService(taskRepo, projectRepo, userRepo))

	r := gin.New()
	api := r.Group("/api")

	authRoutes := api.Group("/auth")
	authRoutes.POST("/register", authHandler.Register)
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)

	users := api.Group("/users")
	users.Use(middleware.RequireAuth())
	users.GET("", authHandler.ListUsers)
	users.GET("/:id/tasks", taskHandler.ListTasksByUser)

	projects := api.Group("/projects")
	projects.Use(middleware.RequireAuth())
	projects.POST("", projectHandler.CreateProject)
	projects.GET("", projectHandler.ListProjects)
	projects.GET("/:id", projectHandler.GetProject)
	projects.PUT("/:id", projectHandler.UpdateProject)
	projects.DELETE("/:id", projectHandler.DeleteProject)
	projects.GET("/:id/tasks", taskHandler.ListTasksByProject)

	tasks := api.Group("/tasks")
	tasks.Use(middleware.RequireAuth())
	tasks.POST("", taskHandler.CreateTask)
	tasks.GET("/:id", taskHandler.GetTask)
	tasks.PUT("/:id", taskHandler.UpdateTask)
	tasks.DELETE("/:id", taskHandler.DeleteTask)
	tasks.PUT("/:id/assign/:userId", taskHandler.AssignTask)
	tasks.PUT("/:id/status", taskHandler.SetTaskStatus)

	me := api.Group("/me")
	me.Use(middleware.RequireAuth())
	me.GET("/tasks", taskHandler.ListMyTasks)

	return &testServer{db: db, router: r}
}

func (s *testServer) createUser(t *testing.T, email string, role models.Role) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	require.NoError(t, err)
	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	require.NoError(t, s.db.Create(user).Error)
	return user
}

func (s *testServer) createProject(t *testing.T, name string, owner *models.User) *models.Project {
	t.Helper()
	project := &models.Project{
		Name:        name,
		Description: "Test Description",
		OwnerID:     owner.ID,
	}
	require.NoError(t, s.db.Create(project).Error)
	return project
}

func (s *testServer) createTask(t *testing.T, title string, project *models.Project, assignee *models.User) *models.Task {
	t.Helper()
	task := &models.Task{
		Title:     title,
		Status:    models.TaskStatusTodo,
		Priority:  models.PriorityMedium,
		ProjectID: project.ID,
	}
	if assignee != nil {
		task.AssignedUserID = &assignee.ID
	}
	require.NoError(t, s.db.Create(task).Error)
	return task
}

func (s *testServer) tokenFor(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := auth.GenerateJWT(user.ID, user.Email)
	require.NoError(t, err)
	return token
}

// request performs an HTTP request against the test router. A non-nil
// body is JSON encoded; an empty token leaves the request anonymous.
func (s *testServer) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), "body: %s", w.Body.String())
}
