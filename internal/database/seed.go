package database

import (
	"fmt"
	"log"

	"github.com/tasktrack/task-tracker-api/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// SeedDemoData populates an empty database with a demo account set:
// one admin, two managers, three users, four projects and their tasks.
// It is a no-op when any user already exists.
func SeedDemoData() error {
	var count int64
	if err := DB.Model(&models.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	log.Println("Seeding demo data...")

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash demo password: %w", err)
	}

	createUser := func(email string, role models.Role) (*models.User, error) {
		user := &models.User{
			Email:        email,
			PasswordHash: string(hash),
			Role:         role,
		}
		if err := DB.Create(user).Error; err != nil {
			return nil, fmt.Errorf("failed to seed user %s: %w", email, err)
		}
		return user, nil
	}

	createProject := func(name, description string, owner *models.User) (*models.Project, error) {
		project := &models.Project{
			Name:        name,
			Description: description,
			OwnerID:     owner.ID,
		}
		if err := DB.Create(project).Error; err != nil {
			return nil, fmt.Errorf("failed to seed project %s: %w", name, err)
		}
		return project, nil
	}

	createTask := func(title, description string, project *models.Project, assignee *models.User, status models.TaskStatus, priority models.Priority) error {
		task := &models.Task{
			Title:       title,
			Description: description,
			Status:      status,
			Priority:    priority,
			ProjectID:   project.ID,
		}
		if assignee != nil {
			task.AssignedUserID = &assignee.ID
		}
		if err := DB.Create(task).Error; err != nil {
			return fmt.Errorf("failed to seed task %s: %w", title, err)
		}
		return nil
	}

	if _, err := createUser("admin@test.com", models.RoleAdmin); err != nil {
		return err
	}
	manager1, err := createUser("manager1@test.com", models.RoleManager)
	if err != nil {
		return err
	}
	manager2, err := createUser("manager2@test.com", models.RoleManager)
	if err != nil {
		return err
	}
	user1, err := createUser("user1@test.com", models.RoleUser)
	if err != nil {
		return err
	}
	user2, err := createUser("user2@test.com", models.RoleUser)
	if err != nil {
		return err
	}
	user3, err := createUser("user3@test.com", models.RoleUser)
	if err != nil {
		return err
	}

	project1, err := createProject("E-Commerce Platform", "Building a modern e-commerce solution", manager1)
	if err != nil {
		return err
	}
	project2, err := createProject("Mobile App Development", "Creating a cross-platform mobile application", manager1)
	if err != nil {
		return err
	}
	project3, err := createProject("Data Analytics Dashboard", "Business intelligence dashboard", manager2)
	if err != nil {
		return err
	}
	project4, err := createProject("Marketing Website", "Company marketing website redesign", manager2)
	if err != nil {
		return err
	}

	tasks := []struct {
		title, description string
		project            *models.Project
		assignee           *models.User
		status             models.TaskStatus
		priority           models.Priority
	}{
		{"Setup Database Schema", "Design and implement database structure", project1, user1, models.TaskStatusDone, models.PriorityHigh},
		{"User Authentication System", "Implement JWT-based authentication", project1, user1, models.TaskStatusInProgress, models.PriorityHigh},
		{"Product Catalog API", "Create REST API for product management", project1, user2, models.TaskStatusTodo, models.PriorityMedium},
		{"Shopping Cart Feature", "Implement shopping cart functionality", project1, nil, models.TaskStatusTodo, models.PriorityMedium},
		{"Payment Integration", "Integrate payment gateway", project1, user2, models.TaskStatusTodo, models.PriorityHigh},

		{"UI/UX Design", "Create app mockups and designs", project2, user3, models.TaskStatusDone, models.PriorityMedium},
		{"Login Screen Implementation", "Develop login/register screens", project2, user1, models.TaskStatusInProgress, models.PriorityHigh},
		{"Profile Management", "User profile CRUD operations", project2, user2, models.TaskStatusTodo, models.PriorityLow},
		{"Push Notifications", "Implement push notification system", project2, nil, models.TaskStatusTodo, models.PriorityMedium},

		{"Data Model Design", "Design data warehouse schema", project3, user1, models.TaskStatusDone, models.PriorityHigh},
		{"ETL Pipeline", "Build data extraction and transformation pipeline", project3, user2, models.TaskStatusInProgress, models.PriorityHigh},
		{"Dashboard Frontend", "Create interactive dashboard UI", project3, user3, models.TaskStatusTodo, models.PriorityMedium},
		{"Report Generation", "Automated report generation feature", project3, nil, models.TaskStatusTodo, models.PriorityLow},

		{"Homepage Design", "Design modern homepage layout", project4, user3, models.TaskStatusDone, models.PriorityMedium},
		{"Content Management", "Implement CMS for content updates", project4, user1, models.TaskStatusInProgress, models.PriorityMedium},
		{"SEO Optimization", "Optimize website for search engines", project4, user2, models.TaskStatusTodo, models.PriorityLow},
		{"Contact Form", "Create contact form with validation", project4, nil, models.TaskStatusTodo, models.PriorityLow},
	}

	for _, t := range tasks {
		if err := createTask(t.title, t.description, t.project, t.assignee, t.status, t.priority); err != nil {
			return err
		}
	}

	log.Println("Demo data seeded")
	return nil
}
