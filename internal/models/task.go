package models

import "time"

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
	// TaskStatusOverdue is derived at read time and never stored.
	TaskStatusOverdue TaskStatus = "overdue"
)

// SettableStatuses are the values a task's stored status may take.
var SettableStatuses = []TaskStatus{TaskStatusTodo, TaskStatusInProgress, TaskStatusDone}

// FilterStatuses are the effective statuses a list may be filtered by.
var FilterStatuses = []TaskStatus{TaskStatusTodo, TaskStatusInProgress, TaskStatusDone, TaskStatusOverdue}

// Settable reports whether s may be persisted.
func (s TaskStatus) Settable() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

// Valid reports whether s is a known effective status.
func (s TaskStatus) Valid() bool {
	return s.Settable() || s == TaskStatusOverdue
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

var Priorities = []TaskPriority{TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh}

func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

// Task is a stored task. AssignedTo is a username but is not a foreign key:
// deleting the user leaves the task in place.
type Task struct {
	ID          uint64       `gorm:"primarykey" json:"id"`
	Title       string       `gorm:"type:varchar(255);not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	AssignedTo  string       `gorm:"type:varchar(100)" json:"assigned_to"`
	Priority    TaskPriority `gorm:"type:varchar(20);not null;default:'medium'" json:"priority"`
	Status      TaskStatus   `gorm:"type:varchar(20);not null;default:'todo'" json:"status"`
	Deadline    time.Time    `gorm:"type:date" json:"deadline"`
	CreatedAt   time.Time    `json:"created_at"`
}
