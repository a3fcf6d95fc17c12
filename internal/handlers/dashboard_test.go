package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/task-tracker/internal/dto"
	"github.com/yukikurage/task-tracker/internal/models"
)

func TestDashboardHandler_GetDashboard(t *testing.T) {
	srv := newTestServer(t)
	admin := srv.login("admin", "123")

	tasks := []gin.H{
		{"title": "A", "assigned_to": "user1", "priority": "low", "deadline": "2024-07-01"},
		{"title": "B", "assigned_to": "user1", "priority": "low", "deadline": "2024-06-01"},
		{"title": "C", "assigned_to": "user2", "priority": "low", "deadline": "2024-07-01"},
	}
	for _, body := range tasks {
		w := srv.do(http.MethodPost, "/api/tasks", body, admin)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	// members see the same totals as admins
	member := srv.login("user2", "123")
	w := srv.do(http.MethodGet, "/api/dashboard", nil, member)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[dto.DashboardDTO](t, w)
	assert.Equal(t, 3, resp.Total)
	assert.Equal(t, 2, resp.Todo)
	assert.Equal(t, 1, resp.Overdue)
	assert.Equal(t, []dto.AssigneeCountDTO{
		{Assignee: "user1", Count: 2},
		{Assignee: "user2", Count: 1},
	}, resp.ByAssignee)

	w = srv.do(http.MethodGet, "/api/dashboard", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDashboardHandler_GetOptions(t *testing.T) {
	srv := newTestServer(t)
	cookies := srv.login("user1", "123")

	w := srv.do(http.MethodGet, "/api/meta/options", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[dto.OptionsDTO](t, w)
	assert.NotContains(t, resp.SettableStatuses, models.TaskStatusOverdue)
	assert.Contains(t, resp.FilterStatuses, models.TaskStatusOverdue)
	assert.Len(t, resp.Priorities, 3)
}
