package server_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	_ "tasktracker/docs"
	"tasktracker/internal/auth"
	"tasktracker/internal/config"
	"tasktracker/internal/handler"
	"tasktracker/internal/model"
	"tasktracker/internal/server"
	"tasktracker/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubTasks answers every list with no tasks.
type stubTasks struct{}

func (stubTasks) Create(context.Context, service.CreateTaskInput) (*model.Task, error) {
	return nil, service.ErrUserNotFound
}
func (stubTasks) ListByUser(context.Context, uuid.UUID) ([]model.Task, error) { return nil, nil }
func (stubTasks) Get(context.Context, uuid.UUID) (*model.Task, error) {
	return nil, service.ErrTaskNotFound
}
func (stubTasks) Update(context.Context, uuid.UUID, service.TaskPatch) (*model.Task, error) {
	return nil, service.ErrTaskNotFound
}
func (stubTasks) Remove(context.Context, uuid.UUID) error { return nil }
func (stubTasks) AddUpdate(context.Context, uuid.UUID, string) (*model.TaskUpdate, error) {
	return nil, service.ErrTaskNotFound
}
func (stubTasks) Logs(context.Context, uuid.UUID) ([]model.TaskLog, error) { return nil, nil }
func (stubTasks) Updates(context.Context, uuid.UUID) ([]model.TaskUpdate, error) {
	return nil, nil
}

type stubUsers struct{}

func (stubUsers) Register(context.Context, service.RegisterInput) (*model.User, error) {
	return nil, service.ErrEmailTaken
}
func (stubUsers) Authenticate(context.Context, string, string) (*model.User, error) {
	return nil, service.ErrInvalidCredentials
}
func (stubUsers) GetByID(context.Context, uuid.UUID) (*model.User, error) {
	return nil, service.ErrUserNotFound
}
func (stubUsers) FindByEmail(context.Context, string) (*model.User, error) {
	return nil, service.ErrUserNotFound
}

const testSecret = "router-secret"

func setupRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	require.NoError(t, handler.RegisterValidation())

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{JWTSecret: testSecret, CORSOrigins: "*"}
	return server.NewRouter(server.Handlers{
		Users:  handler.NewUserHandler(stubUsers{}, testSecret, time.Hour, logger),
		Tasks:  handler.NewTaskHandler(stubTasks{}, logger),
		Health: handler.NewHealthHandler(map[string]handler.Check{}),
	}, cfg, logger)
}

func TestRouter_Routes(t *testing.T) {
	router := setupRouter(t)
	token, err := auth.GenerateToken(testSecret, uuid.NewString(), time.Hour)
	require.NoError(t, err)
	taskPath := "/tasks/" + uuid.NewString()

	cases := []struct {
		method string
		path   string
		token  string
		code   int
	}{
		{"GET", "/health", "", http.StatusOK},
		{"GET", "/swagger/index.html", "", http.StatusOK},
		{"GET", "/swagger/doc.json", "", http.StatusOK},
		{"POST", "/users", "", http.StatusBadRequest},
		{"POST", "/users/register", "", http.StatusBadRequest},
		{"POST", "/users/login", "", http.StatusBadRequest},
		{"GET", "/users?email=a@example.com", "", http.StatusNotFound},
		{"GET", "/users/" + uuid.NewString(), "", http.StatusNotFound},
		{"GET", "/tasks?userId=" + uuid.NewString(), "", http.StatusUnauthorized},
		{"GET", "/tasks?userId=" + uuid.NewString(), token, http.StatusOK},
		{"GET", taskPath, token, http.StatusNotFound},
		{"DELETE", taskPath, "", http.StatusUnauthorized},
		{"DELETE", taskPath, token, http.StatusNoContent},
		{"GET", taskPath + "/logs", token, http.StatusOK},
		{"GET", taskPath + "/updates", token, http.StatusOK},
		{"OPTIONS", "/tasks", "", http.StatusNoContent},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		if tc.token != "" {
			req.Header.Set("Authorization", "Bearer "+tc.token)
		}
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		assert.Equal(t, tc.code, resp.Code, "%s %s", tc.method, tc.path)
	}
}

func TestRouter_SwaggerDocIsJSON(t *testing.T) {
	router := setupRouter(t)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest("GET", "/swagger/doc.json", nil))

	require.Equal(t, http.StatusOK, resp.Code)
	assert.True(t, json.Valid(resp.Body.Bytes()), "doc.json: %s", resp.Body.String())
}
