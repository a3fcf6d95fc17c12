package repository

import (
	"context"

	"github.com/yukikurage/task-tracker/internal/models"
)

// TaskRepository defines the interface for task data access.
// It performs no access control; callers restrict visibility.
type TaskRepository interface {
	// Create inserts a task and fills in its ID and CreatedAt
	Create(ctx context.Context, task *models.Task) error

	// FindByID finds a task by ID
	FindByID(ctx context.Context, id uint64) (*models.Task, error)

	// List returns tasks in insertion order, optionally pre-filtered
	List(ctx context.Context, filter TaskFilter) ([]models.Task, error)

	// UpdateStatus overwrites a task's stored status and reports rows affected
	UpdateStatus(ctx context.Context, id uint64, status models.TaskStatus) (int64, error)
}

// TaskFilter holds the storage-level filters for listing tasks.
// Status is not a storage filter; it applies after derivation.
type TaskFilter struct {
	AssignedTo *string
}

// UserRepository defines the interface for credential data access
type UserRepository interface {
	// Create inserts a user
	Create(ctx context.Context, user *models.User) error

	// CreateIfAbsent inserts a user unless the username exists and
	// reports whether a row was written
	CreateIfAbsent(ctx context.Context, user *models.User) (bool, error)

	// FindByUsername finds a user by exact, case-sensitive username
	FindByUsername(ctx context.Context, username string) (*models.User, error)

	// List returns all users ordered by username
	List(ctx context.Context) ([]models.User, error)

	// UpdatePassword overwrites the stored credential and reports rows affected
	UpdatePassword(ctx context.Context, username, passwordHash string) (int64, error)

	// Delete removes a user; tasks assigned to them are left untouched
	Delete(ctx context.Context, username string) error
}
