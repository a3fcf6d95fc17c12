package services

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/task-tracker/internal/models"
	"github.com/yukikurage/task-tracker/internal/repository"
	"github.com/yukikurage/task-tracker/internal/testutil"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func newMockTaskService(t *testing.T) (*TaskService, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	service := NewTaskService(repository.NewTaskRepository(db), nil).
		WithClock(testutil.FixedClock(testutil.Date(2024, 6, 15)))
	return service, mock
}

// MySQL counts only changed rows, so saving the current status reports zero.
func TestUpdateStatus_UnchangedStatusOnMySQL(t *testing.T) {
	service, mock := newMockTaskService(t)

	rows := sqlmock.NewRows([]string{"id", "title", "assigned_to", "priority", "status", "deadline", "created_at"}).
		AddRow(1, "late", "user1", "medium", "in_progress", testutil.Date(2024, 6, 1), testutil.Date(2024, 5, 1))
	mock.ExpectQuery("SELECT \\* FROM `tasks`").WillReturnRows(rows)
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `tasks` SET `status`").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	view, err := service.UpdateStatus(context.Background(), user1Session, 1, models.TaskStatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusInProgress, view.Status)
	assert.Equal(t, models.TaskStatusOverdue, view.EffectiveStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}
