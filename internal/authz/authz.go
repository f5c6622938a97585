// Package authz is the authorization engine for projects and tasks.
//
// Every decision is a pure function of the actor's role and the actor's
// relations to the target entity. The whole permission matrix lives in a
// single rules table so it can be audited in one place; anything without
// an explicit rule is denied.
package authz

import (
	"github.com/tasktrack/task-tracker-api/internal/models"
)

type Action string

const (
	ActionCreateProject Action = "project:create"
	ActionReadProject   Action = "project:read"
	ActionUpdateProject Action = "project:update"
	ActionDeleteProject Action = "project:delete"
	ActionListProjects  Action = "project:list"

	ActionCreateTask    Action = "task:create"
	ActionReadTask      Action = "task:read"
	ActionUpdateTask    Action = "task:update"
	ActionDeleteTask    Action = "task:delete"
	ActionAssignTask    Action = "task:assign"
	ActionSetTaskStatus Action = "task:set-status"

	ActionListProjectTasks Action = "task:list-by-project"
	ActionListUserTasks    Action = "task:list-by-user"
)

// Target carries the relations an action is decided against. Build it
// with one of the constructors below; the zero value carries no
// relations and only role-level rules can match it.
type Target struct {
	// ownerID is the owning user of the project (or of the task's
	// project). Zero when the action has no project in scope.
	ownerID uint64

	// assigneeID is the task's assigned user, nil when unassigned or
	// when the action has no task in scope.
	assigneeID *uint64

	// subjectID is the user whose data is being accessed, for
	// user-scoped actions such as listing a user's assigned tasks.
	subjectID uint64
}

// ForProject builds the decision target for a project-scoped action.
func ForProject(p *models.Project) Target {
	return Target{ownerID: p.OwnerID}
}

// ForTask builds the decision target for a task-scoped action. The
// task's Project must be loaded; ownership is decided through it.
func ForTask(t *models.Task) Target {
	return Target{ownerID: t.Project.OwnerID, assigneeID: t.AssignedUserID}
}

// ForUser builds the decision target for a user-scoped action.
func ForUser(userID uint64) Target {
	return Target{subjectID: userID}
}

// relations is the actor's computed relationship to a target.
type relations struct {
	owner    bool // actor owns the project in scope
	assignee bool // actor is the assigned user of the task in scope
	subject  bool // actor is the user whose data is in scope
}

func relate(actor *models.User, target Target) relations {
	return relations{
		owner:    target.ownerID != 0 && target.ownerID == actor.ID,
		assignee: target.assigneeID != nil && *target.assigneeID == actor.ID,
		subject:  target.subjectID != 0 && target.subjectID == actor.ID,
	}
}

type predicate func(rel relations) bool

func always(relations) bool         { return true }
func isOwner(rel relations) bool    { return rel.owner }
func isAssignee(rel relations) bool { return rel.assignee }
func isSubject(rel relations) bool  { return rel.subject }

// rules is the permission matrix. Rows are actions, columns are roles.
// A missing cell means deny. ActionSetTaskStatus is deliberately
// assignee-only for every role: even an admin or the owning manager
// must be the assignee to use the status-only operation.
var rules = map[Action]map[models.Role]predicate{
	ActionCreateProject: {
		models.RoleAdmin:   always,
		models.RoleManager: always,
	},
	ActionReadProject: {
		models.RoleAdmin:   always,
		models.RoleManager: isOwner,
	},
	ActionUpdateProject: {
		models.RoleAdmin:   always,
		models.RoleManager: isOwner,
	},
	ActionDeleteProject: {
		models.RoleAdmin:   always,
		models.RoleManager: isOwner,
	},
	ActionListProjects: {
		models.RoleAdmin:   always,
		models.RoleManager: always,
	},
	ActionCreateTask: {
		models.RoleAdmin:   always,
		models.RoleManager: isOwner,
	},
	ActionReadTask: {
		models.RoleAdmin:   always,
		models.RoleManager: isOwner,
		models.RoleUser:    isAssignee,
	},
	ActionUpdateTask: {
		models.RoleAdmin:   always,
		models.RoleManager: isOwner,
		models.RoleUser:    isAssignee,
	},
	ActionDeleteTask: {
		models.RoleAdmin:   always,
		models.RoleManager: isOwner,
	},
	ActionAssignTask: {
		models.RoleAdmin:   always,
		models.RoleManager: isOwner,
	},
	ActionSetTaskStatus: {
		models.RoleAdmin:   isAssignee,
		models.RoleManager: isAssignee,
		models.RoleUser:    isAssignee,
	},
	ActionListProjectTasks: {
		models.RoleAdmin:   always,
		models.RoleManager: isOwner,
	},
	ActionListUserTasks: {
		models.RoleAdmin: always,
		models.RoleUser:  isSubject,
	},
}

// Decide reports whether actor may perform action on target.
func Decide(actor *models.User, action Action, target Target) bool {
	byRole, ok := rules[action]
	if !ok {
		return false
	}
	allow, ok := byRole[actor.Role]
	if !ok {
		return false
	}
	return allow(relate(actor, target))
}

// CanApplyFullTaskUpdate reports whether an allowed ActionUpdateTask
// may touch every field. Admins and the owning manager update the whole
// task; an assigned USER passes ActionUpdateTask but is narrowed to the
// status field by the caller.
func CanApplyFullTaskUpdate(actor *models.User, target Target) bool {
	if actor.Role == models.RoleAdmin {
		return true
	}
	return actor.Role == models.RoleManager && relate(actor, target).owner
}
