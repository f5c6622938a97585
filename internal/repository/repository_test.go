package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tasktrack/task-tracker-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Task{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string, role models.Role) *models.User {
	t.Helper()
	user := &models.User{Email: email, PasswordHash: "hashedpassword", Role: role}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedProject(t *testing.T, db *gorm.DB, name string, ownerID uint64) *models.Project {
	t.Helper()
	project := &models.Project{Name: name, OwnerID: ownerID}
	require.NoError(t, db.Create(project).Error)
	return project
}

func seedTask(t *testing.T, db *gorm.DB, task *models.Task) *models.Task {
	t.Helper()
	require.NoError(t, db.Create(task).Error)
	return task
}

func TestUserRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	user := &models.User{Email: "admin@test.com", PasswordHash: "hashedpassword", Role: models.RoleAdmin}
	require.NoError(t, repo.Create(user))
	require.NotZero(t, user.ID)

	found, err := repo.FindByID(user.ID)
	require.NoError(t, err)
	require.Equal(t, "admin@test.com", found.Email)

	found, err = repo.FindByEmail("admin@test.com")
	require.NoError(t, err)
	require.Equal(t, user.ID, found.ID)

	_, err = repo.FindByEmail("nobody@test.com")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	exists, err := repo.ExistsByEmail("admin@test.com")
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = repo.ExistsByEmail("nobody@test.com")
	require.NoError(t, err)
	require.False(t, exists)

	seedUser(t, db, "user1@test.com", models.RoleUser)
	all, err := repo.FindAll()
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestProjectRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProjectRepository(db)
	manager1 := seedUser(t, db, "manager1@test.com", models.RoleManager)
	manager2 := seedUser(t, db, "manager2@test.com", models.RoleManager)

	project := &models.Project{Name: "E-Commerce Platform", OwnerID: manager1.ID}
	require.NoError(t, repo.Create(project))

	found, err := repo.FindByID(project.ID)
	require.NoError(t, err)
	require.Equal(t, "E-Commerce Platform", found.Name)
	require.Equal(t, manager1.Email, found.Owner.Email)

	_, err = repo.FindByID(9999)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	seedProject(t, db, "Data Analytics Dashboard", manager2.ID)

	all, err := repo.FindAll()
	require.NoError(t, err)
	require.Len(t, all, 2)

	owned, err := repo.FindByOwnerID(manager1.ID)
	require.NoError(t, err)
	require.Len(t, owned, 1)
	require.Equal(t, project.ID, owned[0].ID)

	found.Name = "Renamed"
	require.NoError(t, repo.Update(found))
	found, err = repo.FindByID(project.ID)
	require.NoError(t, err)
	require.Equal(t, "Renamed", found.Name)
}

func TestProjectRepository_DeleteCascadesToTasks(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProjectRepository(db)
	taskRepo := NewTaskRepository(db)
	manager := seedUser(t, db, "manager1@test.com", models.RoleManager)
	project := seedProject(t, db, "Doomed", manager.ID)
	other := seedProject(t, db, "Survivor", manager.ID)

	doomed := seedTask(t, db, &models.Task{Title: "Doomed Task", Status: models.TaskStatusTodo, Priority: models.PriorityMedium, ProjectID: project.ID})
	survivor := seedTask(t, db, &models.Task{Title: "Surviving Task", Status: models.TaskStatusTodo, Priority: models.PriorityMedium, ProjectID: other.ID})

	require.NoError(t, repo.Delete(project.ID))

	_, err := repo.FindByID(project.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = taskRepo.FindByID(doomed.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// Tasks of other projects are untouched.
	_, err = taskRepo.FindByID(survivor.ID)
	require.NoError(t, err)
}

func TestTaskRepository_CRUD(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)
	manager := seedUser(t, db, "manager1@test.com", models.RoleManager)
	user := seedUser(t, db, "user1@test.com", models.RoleUser)
	project := seedProject(t, db, "E-Commerce Platform", manager.ID)

	task := &models.Task{
		Title:          "Setup Database Schema",
		Status:         models.TaskStatusTodo,
		Priority:       models.PriorityHigh,
		ProjectID:      project.ID,
		AssignedUserID: &user.ID,
	}
	require.NoError(t, repo.Create(task))

	found, err := repo.FindByID(task.ID, "Project", "Project.Owner", "AssignedUser")
	require.NoError(t, err)
	require.Equal(t, project.Name, found.Project.Name)
	require.Equal(t, manager.Email, found.Project.Owner.Email)
	require.Equal(t, user.Email, found.AssignedUser.Email)

	found.Status = models.TaskStatusDone
	require.NoError(t, repo.Update(found))
	found, err = repo.FindByID(task.ID)
	require.NoError(t, err)
	require.Equal(t, models.TaskStatusDone, found.Status)

	require.NoError(t, repo.Delete(task.ID))
	_, err = repo.FindByID(task.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

// Reassignment must survive an Update even when the task was loaded
// with the previous AssignedUser preloaded.
func TestTaskRepository_UpdateReassignsWithStalePreload(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)
	manager := seedUser(t, db, "manager1@test.com", models.RoleManager)
	user1 := seedUser(t, db, "user1@test.com", models.RoleUser)
	user2 := seedUser(t, db, "user2@test.com", models.RoleUser)
	project := seedProject(t, db, "E-Commerce Platform", manager.ID)
	task := seedTask(t, db, &models.Task{Title: "Handover", Status: models.TaskStatusTodo, Priority: models.PriorityMedium, ProjectID: project.ID, AssignedUserID: &user1.ID})

	loaded, err := repo.FindByID(task.ID, "Project", "Project.Owner", "AssignedUser")
	require.NoError(t, err)
	require.Equal(t, user1.ID, loaded.AssignedUser.ID)

	loaded.AssignedUserID = &user2.ID
	require.NoError(t, repo.Update(loaded))

	found, err := repo.FindByID(task.ID, "AssignedUser")
	require.NoError(t, err)
	require.NotNil(t, found.AssignedUserID)
	require.Equal(t, user2.ID, *found.AssignedUserID)
	require.Equal(t, user2.Email, found.AssignedUser.Email)
}

func TestTaskRepository_List(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)
	manager := seedUser(t, db, "manager1@test.com", models.RoleManager)
	user := seedUser(t, db, "user1@test.com", models.RoleUser)
	p1 := seedProject(t, db, "E-Commerce Platform", manager.ID)
	p2 := seedProject(t, db, "Mobile App Development", manager.ID)

	seedTask(t, db, &models.Task{Title: "A", Status: models.TaskStatusTodo, Priority: models.PriorityHigh, ProjectID: p1.ID, AssignedUserID: &user.ID})
	seedTask(t, db, &models.Task{Title: "B", Status: models.TaskStatusDone, Priority: models.PriorityHigh, ProjectID: p1.ID})
	seedTask(t, db, &models.Task{Title: "C", Status: models.TaskStatusTodo, Priority: models.PriorityLow, ProjectID: p2.ID, AssignedUserID: &user.ID})

	tasks, total, err := repo.List(TaskFilter{ProjectID: &p1.ID})
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Len(t, tasks, 2)

	tasks, total, err = repo.List(TaskFilter{AssignedUserID: &user.ID})
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Equal(t, user.Email, tasks[0].AssignedUser.Email)

	todo := models.TaskStatusTodo
	tasks, total, err = repo.List(TaskFilter{Status: &todo})
	require.NoError(t, err)
	require.EqualValues(t, 2, total)

	high := models.PriorityHigh
	_, total, err = repo.List(TaskFilter{Priority: &high})
	require.NoError(t, err)
	require.EqualValues(t, 2, total)

	// Status wins over priority when both are set.
	low := models.PriorityLow
	tasks, total, err = repo.List(TaskFilter{Status: &todo, Priority: &low})
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	for _, task := range tasks {
		require.Equal(t, models.TaskStatusTodo, task.Status)
	}
}

func TestTaskRepository_ListPagination(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)
	manager := seedUser(t, db, "manager1@test.com", models.RoleManager)
	project := seedProject(t, db, "E-Commerce Platform", manager.ID)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		seedTask(t, db, &models.Task{
			Title:     "Task",
			Status:    models.TaskStatusTodo,
			Priority:  models.PriorityMedium,
			ProjectID: project.ID,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}

	tasks, total, err := repo.List(TaskFilter{ProjectID: &project.ID, Page: 1, PageSize: 2})
	require.NoError(t, err)
	require.EqualValues(t, 5, total)
	require.Len(t, tasks, 2)

	tasks, total, err = repo.List(TaskFilter{ProjectID: &project.ID, Page: 3, PageSize: 2})
	require.NoError(t, err)
	require.EqualValues(t, 5, total)
	require.Len(t, tasks, 1)

	// An out-of-range page is empty, but the total still counts everything.
	tasks, total, err = repo.List(TaskFilter{ProjectID: &project.ID, Page: 4, PageSize: 2})
	require.NoError(t, err)
	require.EqualValues(t, 5, total)
	require.Empty(t, tasks)
}
