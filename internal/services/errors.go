package services

import "errors"

// Sentinel errors returned by the service layer. Handlers translate
// them to transport status codes; services never touch HTTP concerns.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrProjectNotFound = errors.New("project not found")
	ErrTaskNotFound    = errors.New("task not found")

	// ErrPermissionDenied is returned whenever the authorization engine
	// denies an action for an authenticated actor.
	ErrPermissionDenied = errors.New("permission denied")

	ErrEmailTaken           = errors.New("user with this email already exists")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrInvalidRole          = errors.New("invalid role")
	ErrTitleRequired        = errors.New("title is required")
	ErrTitleEmpty           = errors.New("title cannot be empty")
	ErrNameRequired         = errors.New("project name is required")
	ErrInvalidTaskStatus    = errors.New("invalid task status")
	ErrInvalidTaskPriority  = errors.New("invalid task priority")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)
