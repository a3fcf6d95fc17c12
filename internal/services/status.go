package services

import (
	"fmt"
	"time"

	"github.com/yukikurage/task-tracker/internal/constants"
	"github.com/yukikurage/task-tracker/internal/models"
)

// DeriveStatus returns the status shown for a task on the given day.
// A task whose deadline is before today and which is not done is overdue.
// The result is never written back.
func DeriveStatus(task models.Task, today time.Time) models.TaskStatus {
	if task.Status == models.TaskStatusDone || task.Deadline.IsZero() {
		return task.Status
	}
	if CalendarDate(task.Deadline).Before(CalendarDate(today)) {
		return models.TaskStatusOverdue
	}
	return task.Status
}

// EditorDefaultStatus is the status pre-selected when editing a task.
// Overdue maps to in_progress so saving without a change does not reset a
// late task to todo.
func EditorDefaultStatus(effective models.TaskStatus) models.TaskStatus {
	if effective == models.TaskStatusOverdue {
		return models.TaskStatusInProgress
	}
	return effective
}

// CalendarDate drops the clock and zone of t, keeping its calendar day.
func CalendarDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDeadline parses a YYYY-MM-DD deadline.
func ParseDeadline(value string) (time.Time, error) {
	t, err := time.Parse(constants.DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDeadline, value)
	}
	return t, nil
}
