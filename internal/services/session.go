package services

import "github.com/yukikurage/task-tracker/internal/models"

// Session identifies the caller of an authorised operation. It is built
// only from a successful login and carried explicitly into every call.
type Session struct {
	Username string
	Role     models.Role
}

// IsAdmin reports whether the session has the admin role.
func (s Session) IsAdmin() bool {
	return s.Role == models.RoleAdmin
}

// CanAccess reports whether the session may view and edit the task.
// Admins see every task; members only tasks assigned to them.
func (s Session) CanAccess(task models.Task) bool {
	return s.IsAdmin() || task.AssignedTo == s.Username
}
