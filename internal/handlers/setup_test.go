package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/task-tracker/internal/config"
	"github.com/yukikurage/task-tracker/internal/repository"
	"github.com/yukikurage/task-tracker/internal/services"
	"github.com/yukikurage/task-tracker/internal/testutil"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var testNow = time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

type fakeDrafter struct {
	tasks []services.GeneratedTask
	err   error
	today time.Time
}

func (f *fakeDrafter) GenerateTasksFromText(ctx context.Context, text string, today time.Time) ([]services.GeneratedTask, error) {
	f.today = today
	return f.tasks, f.err
}

type testServer struct {
	t       *testing.T
	db      *gorm.DB
	router  *gin.Engine
	drafter *fakeDrafter
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.SetupTestDB(t)
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	drafter := &fakeDrafter{}

	userService := services.NewUserService(userRepo, bcrypt.MinCost)
	_, err := userService.EnsureDefaultAccounts(context.Background(), config.DefaultAccounts())
	require.NoError(t, err)

	router, err := NewRouter(Dependencies{
		AuthService:      services.NewAuthService(userRepo),
		UserService:      userService,
		TaskService:      services.NewTaskService(taskRepo, drafter).WithClock(testutil.FixedClock(testNow)),
		DashboardService: services.NewDashboardService(taskRepo).WithClock(testutil.FixedClock(testNow)),
		SessionStore:     cookie.NewStore([]byte("test-secret")),
		Logger:           zap.NewNop(),
	})
	require.NoError(t, err)

	return &testServer{t: t, db: db, router: router, drafter: drafter}
}

// do sends a request with the given cookies and JSON body (nil for none).
func (s *testServer) do(method, url string, body any, cookies []*http.Cookie) *httptest.ResponseRecorder {
	s.t.Helper()

	var req *http.Request
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(s.t, err)
		req = httptest.NewRequest(method, url, bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// login authenticates and returns the session cookies.
func (s *testServer) login(username, password string) []*http.Cookie {
	s.t.Helper()

	w := s.do(http.MethodPost, "/api/auth/login", gin.H{"username": username, "password": password}, nil)
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())

	cookies := w.Result().Cookies()
	require.NotEmpty(s.t, cookies)
	return cookies
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
