package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/yukikurage/task-tracker/internal/models"
	"github.com/yukikurage/task-tracker/internal/repository"
)

// DashboardService computes summary metrics over all tasks.
type DashboardService struct {
	taskRepo repository.TaskRepository
	now      func() time.Time
}

func NewDashboardService(taskRepo repository.TaskRepository) *DashboardService {
	return &DashboardService{
		taskRepo: taskRepo,
		now:      time.Now,
	}
}

// WithClock replaces the clock used to derive overdue tasks.
func (s *DashboardService) WithClock(now func() time.Time) *DashboardService {
	s.now = now
	return s
}

type AssigneeCount struct {
	Assignee string
	Count    int
}

// DashboardSummary counts tasks by effective status. Todo, InProgress, Done
// and Overdue always sum to Total.
type DashboardSummary struct {
	Total      int
	Todo       int
	InProgress int
	Done       int
	Overdue    int
	ByAssignee []AssigneeCount
}

// Summary loads every task, regardless of role, and summarises it.
func (s *DashboardService) Summary(ctx context.Context) (*DashboardSummary, error) {
	tasks, err := s.taskRepo.List(ctx, repository.TaskFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}

	summary := Summarize(tasks, s.now())
	return &summary, nil
}

// Summarize is the pure aggregation behind Summary.
func Summarize(tasks []models.Task, today time.Time) DashboardSummary {
	summary := DashboardSummary{Total: len(tasks)}
	perAssignee := make(map[string]int)

	for _, task := range tasks {
		switch DeriveStatus(task, today) {
		case models.TaskStatusTodo:
			summary.Todo++
		case models.TaskStatusInProgress:
			summary.InProgress++
		case models.TaskStatusDone:
			summary.Done++
		case models.TaskStatusOverdue:
			summary.Overdue++
		}
		perAssignee[task.AssignedTo]++
	}

	summary.ByAssignee = make([]AssigneeCount, 0, len(perAssignee))
	for assignee, count := range perAssignee {
		summary.ByAssignee = append(summary.ByAssignee, AssigneeCount{Assignee: assignee, Count: count})
	}
	sort.Slice(summary.ByAssignee, func(i, j int) bool {
		return summary.ByAssignee[i].Assignee < summary.ByAssignee[j].Assignee
	})

	return summary
}
