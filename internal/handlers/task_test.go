package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/task-tracker/internal/constants"
	"github.com/yukikurage/task-tracker/internal/dto"
	apierrors "github.com/yukikurage/task-tracker/internal/errors"
	"github.com/yukikurage/task-tracker/internal/models"
	"github.com/yukikurage/task-tracker/internal/services"
)

type TaskHandlerTestSuite struct {
	suite.Suite
	srv   *testServer
	admin []*http.Cookie
	user1 []*http.Cookie
	user2 []*http.Cookie
}

func (suite *TaskHandlerTestSuite) SetupTest() {
	suite.srv = newTestServer(suite.T())
	suite.admin = suite.srv.login("admin", "123")
	suite.user1 = suite.srv.login("user1", "123")
	suite.user2 = suite.srv.login("user2", "123")
}

func (suite *TaskHandlerTestSuite) createTask(title, assignee, deadline string) dto.TaskDTO {
	w := suite.srv.do(http.MethodPost, "/api/tasks", gin.H{
		"title":       title,
		"description": "details",
		"assigned_to": assignee,
		"priority":    "high",
		"deadline":    deadline,
	}, suite.admin)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	return decode[dto.TaskDTO](suite.T(), w)
}

func (suite *TaskHandlerTestSuite) listTasks(query string, cookies []*http.Cookie) dto.TaskListResponse {
	w := suite.srv.do(http.MethodGet, "/api/tasks"+query, nil, cookies)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	return decode[dto.TaskListResponse](suite.T(), w)
}

func (suite *TaskHandlerTestSuite) TestCreateTask_Success() {
	task := suite.createTask("Write report", "user1", "2024-07-01")

	assert.NotZero(suite.T(), task.ID)
	assert.Equal(suite.T(), "Write report", task.Title)
	assert.Equal(suite.T(), "user1", task.AssignedTo)
	assert.Equal(suite.T(), models.TaskPriorityHigh, task.Priority)
	assert.Equal(suite.T(), models.TaskStatusTodo, task.Status)
	assert.Equal(suite.T(), "2024-07-01", task.Deadline)
	assert.True(suite.T(), task.Editable)
}

func (suite *TaskHandlerTestSuite) TestCreateTask_PastDeadlineIsOverdueImmediately() {
	task := suite.createTask("Late", "user1", "2024-06-14")

	assert.Equal(suite.T(), models.TaskStatusOverdue, task.Status)
	assert.Equal(suite.T(), models.TaskStatusTodo, task.StoredStatus)
	assert.Equal(suite.T(), models.TaskStatusInProgress, task.EditorDefaultStatus)
}

func (suite *TaskHandlerTestSuite) TestCreateTask_InvalidRequest() {
	cases := map[string]gin.H{
		"missing title":    {"priority": "low", "deadline": "2024-07-01"},
		"unknown priority": {"title": "x", "priority": "urgent", "deadline": "2024-07-01"},
		"bad deadline":     {"title": "x", "priority": "low", "deadline": "07/01/2024"},
		"blank title":      {"title": "   ", "priority": "low", "deadline": "2024-07-01"},
	}

	for name, body := range cases {
		suite.Run(name, func() {
			w := suite.srv.do(http.MethodPost, "/api/tasks", body, suite.admin)
			assert.Equal(suite.T(), http.StatusBadRequest, w.Code, w.Body.String())
		})
	}
}

func (suite *TaskHandlerTestSuite) TestCreateTask_ReportsFieldErrors() {
	w := suite.srv.do(http.MethodPost, "/api/tasks", gin.H{
		"title":    "x",
		"priority": "urgent",
		"deadline": "2024-07-01",
	}, suite.admin)
	suite.Require().Equal(http.StatusBadRequest, w.Code)

	resp := decode[struct {
		Code    string            `json:"code"`
		Details map[string]string `json:"details"`
	}](suite.T(), w)
	assert.Equal(suite.T(), apierrors.ErrCodeInvalidInput, resp.Code)
	assert.Contains(suite.T(), resp.Details, "priority")
}

func (suite *TaskHandlerTestSuite) TestCreateTask_MemberForbidden() {
	w := suite.srv.do(http.MethodPost, "/api/tasks", gin.H{
		"title":    "Sneaky",
		"priority": "low",
		"deadline": "2024-07-01",
	}, suite.user1)
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)

	assert.Equal(suite.T(), 0, suite.listTasks("", suite.admin).Total)
}

func (suite *TaskHandlerTestSuite) TestListTasks_Unauthorized() {
	w := suite.srv.do(http.MethodGet, "/api/tasks", nil, nil)
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

func (suite *TaskHandlerTestSuite) TestListTasks_EmptyCarriesMessage() {
	resp := suite.listTasks("", suite.admin)

	assert.Equal(suite.T(), 0, resp.Total)
	assert.NotNil(suite.T(), resp.Tasks)
	assert.Equal(suite.T(), constants.EmptyTaskListMessage, resp.Message)
}

func (suite *TaskHandlerTestSuite) TestListTasks_Filters() {
	suite.createTask("A", "user1", "2024-07-01")
	suite.createTask("B", "user1", "2024-06-01")
	suite.createTask("C", "user2", "2024-07-01")

	all := suite.listTasks("", suite.admin)
	assert.Equal(suite.T(), 3, all.Total)
	assert.Empty(suite.T(), all.Message)

	byUser := suite.listTasks("?assigned_to=user1", suite.admin)
	assert.Equal(suite.T(), 2, byUser.Total)

	overdue := suite.listTasks("?status=overdue", suite.admin)
	suite.Require().Equal(1, overdue.Total)
	assert.Equal(suite.T(), "B", overdue.Tasks[0].Title)

	todo := suite.listTasks("?status=todo&assigned_to=user1", suite.admin)
	suite.Require().Equal(1, todo.Total)
	assert.Equal(suite.T(), "A", todo.Tasks[0].Title)

	w := suite.srv.do(http.MethodGet, "/api/tasks?status=blocked", nil, suite.admin)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *TaskHandlerTestSuite) TestListTasks_MemberSeesOwnTasksOnly() {
	suite.createTask("Mine", "user1", "2024-07-01")
	suite.createTask("Theirs", "user2", "2024-07-01")

	resp := suite.listTasks("", suite.user1)
	suite.Require().Equal(1, resp.Total)
	assert.Equal(suite.T(), "Mine", resp.Tasks[0].Title)

	other := suite.listTasks("?assigned_to=user2", suite.user1)
	assert.Equal(suite.T(), 0, other.Total)
}

func (suite *TaskHandlerTestSuite) TestGetTask() {
	mine := suite.createTask("Mine", "user1", "2024-07-01")

	w := suite.srv.do(http.MethodGet, fmt.Sprintf("/api/tasks/%d", mine.ID), nil, suite.user1)
	suite.Require().Equal(http.StatusOK, w.Code)
	assert.Equal(suite.T(), "Mine", decode[dto.TaskDTO](suite.T(), w).Title)

	w = suite.srv.do(http.MethodGet, fmt.Sprintf("/api/tasks/%d", mine.ID), nil, suite.user2)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	w = suite.srv.do(http.MethodGet, "/api/tasks/9999", nil, suite.admin)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	w = suite.srv.do(http.MethodGet, "/api/tasks/abc", nil, suite.admin)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *TaskHandlerTestSuite) TestUpdateStatus_Success() {
	task := suite.createTask("Late", "user1", "2024-06-01")

	w := suite.srv.do(http.MethodPatch, fmt.Sprintf("/api/tasks/%d/status", task.ID), gin.H{"status": "done"}, suite.user1)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	resp := decode[dto.TaskDTO](suite.T(), w)
	assert.Equal(suite.T(), models.TaskStatusDone, resp.Status)
	assert.Equal(suite.T(), models.TaskStatusDone, resp.StoredStatus)

	assert.Equal(suite.T(), 0, suite.listTasks("?status=overdue", suite.admin).Total)
}

func (suite *TaskHandlerTestSuite) TestUpdateStatus_InvalidStatus() {
	task := suite.createTask("A", "user1", "2024-07-01")

	for _, status := range []string{"overdue", "blocked", ""} {
		w := suite.srv.do(http.MethodPatch, fmt.Sprintf("/api/tasks/%d/status", task.ID), gin.H{"status": status}, suite.admin)
		assert.Equal(suite.T(), http.StatusBadRequest, w.Code, status)
	}
}

func (suite *TaskHandlerTestSuite) TestUpdateStatus_OtherMemberForbidden() {
	task := suite.createTask("A", "user1", "2024-07-01")

	w := suite.srv.do(http.MethodPatch, fmt.Sprintf("/api/tasks/%d/status", task.ID), gin.H{"status": "done"}, suite.user2)
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)

	w = suite.srv.do(http.MethodPatch, fmt.Sprintf("/api/tasks/%d/status", task.ID), gin.H{"status": "in_progress"}, suite.admin)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
}

func (suite *TaskHandlerTestSuite) TestUpdateStatus_NotFound() {
	w := suite.srv.do(http.MethodPatch, "/api/tasks/9999/status", gin.H{"status": "done"}, suite.admin)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *TaskHandlerTestSuite) TestGenerateTasks() {
	suite.srv.drafter.tasks = []services.GeneratedTask{
		{Title: "Prepare slides", Priority: models.TaskPriorityHigh, Deadline: "2024-06-20"},
		{Title: "", Priority: models.TaskPriorityLow},
		{Title: "Book room", Priority: "urgent", Deadline: "2024-01-01"},
	}

	w := suite.srv.do(http.MethodPost, "/api/tasks/generate", gin.H{"text": "meeting notes"}, suite.admin)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	resp := decode[dto.GeneratedTasksResponse](suite.T(), w)
	suite.Require().Len(resp.Tasks, 2)
	assert.Equal(suite.T(), "2024-06-20", resp.Tasks[0].Deadline)
	assert.Equal(suite.T(), models.TaskPriorityMedium, resp.Tasks[1].Priority)
	assert.Empty(suite.T(), resp.Tasks[1].Deadline)

	// drafts are not stored
	assert.Equal(suite.T(), 0, suite.listTasks("", suite.admin).Total)
}

func (suite *TaskHandlerTestSuite) TestGenerateTasks_Errors() {
	w := suite.srv.do(http.MethodPost, "/api/tasks/generate", gin.H{"text": "notes"}, suite.user1)
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)

	w = suite.srv.do(http.MethodPost, "/api/tasks/generate", gin.H{}, suite.admin)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	w = suite.srv.do(http.MethodPost, "/api/tasks/generate", gin.H{"text": "notes"}, suite.admin)
	assert.Equal(suite.T(), http.StatusUnprocessableEntity, w.Code)

	suite.srv.drafter.err = fmt.Errorf("%w: invalid character 'S'", services.ErrAIInvalidResponse)
	w = suite.srv.do(http.MethodPost, "/api/tasks/generate", gin.H{"text": "notes"}, suite.admin)
	assert.Equal(suite.T(), http.StatusUnprocessableEntity, w.Code)
}

func TestTaskHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TaskHandlerTestSuite))
}
