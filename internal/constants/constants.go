package constants

// ContextKeyUser is the gin context key under which the authenticated
// user is stored by the auth middleware.
const ContextKeyUser = "current_user"

// MinPasswordLength is the minimum accepted password length at registration.
const MinPasswordLength = 6

// Pagination bounds for list endpoints.
const (
	MinPage         = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)
