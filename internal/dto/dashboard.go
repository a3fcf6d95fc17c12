package dto

import (
	"github.com/yukikurage/task-tracker/internal/models"
	"github.com/yukikurage/task-tracker/internal/services"
)

type AssigneeCountDTO struct {
	Assignee string `json:"assignee"`
	Count    int    `json:"count"`
}

type DashboardDTO struct {
	Total      int                `json:"total"`
	Todo       int                `json:"todo"`
	InProgress int                `json:"in_progress"`
	Done       int                `json:"done"`
	Overdue    int                `json:"overdue"`
	ByAssignee []AssigneeCountDTO `json:"by_assignee"`
}

// OptionsDTO lists the values offered by the UI pickers
type OptionsDTO struct {
	Priorities       []models.TaskPriority `json:"priorities"`
	SettableStatuses []models.TaskStatus   `json:"settable_statuses"`
	FilterStatuses   []models.TaskStatus   `json:"filter_statuses"`
	Roles            []models.Role         `json:"roles"`
}

func ToDashboardDTO(summary services.DashboardSummary) DashboardDTO {
	buckets := make([]AssigneeCountDTO, len(summary.ByAssignee))
	for i, b := range summary.ByAssignee {
		buckets[i] = AssigneeCountDTO{Assignee: b.Assignee, Count: b.Count}
	}

	return DashboardDTO{
		Total:      summary.Total,
		Todo:       summary.Todo,
		InProgress: summary.InProgress,
		Done:       summary.Done,
		Overdue:    summary.Overdue,
		ByAssignee: buckets,
	}
}

func DefaultOptions() OptionsDTO {
	return OptionsDTO{
		Priorities:       models.Priorities,
		SettableStatuses: models.SettableStatuses,
		FilterStatuses:   models.FilterStatuses,
		Roles:            []models.Role{models.RoleAdmin, models.RoleMember},
	}
}
