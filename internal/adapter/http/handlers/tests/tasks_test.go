package tests

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpadapter "taskboard/internal/adapter/http"
	"taskboard/internal/adapter/http/dto"
	"taskboard/internal/adapter/http/handlers"
	"taskboard/internal/core/domain"
	"taskboard/pkg/apierrors"
	"taskboard/pkg/translator"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const taskID = "5f0c2f7e-2a0b-4c36-9f0e-3b1f8f1f2a10"

type taskServiceMock struct {
	mock.Mock
}

func (m *taskServiceMock) CreateTask(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) ListTasks(ctx context.Context) ([]domain.Task, error) {
	args := m.Called(ctx)

	var tasks []domain.Task
	if value := args.Get(0); value != nil {
		tasks = value.([]domain.Task)
	}
	return tasks, args.Error(1)
}

func (m *taskServiceMock) GetTask(ctx context.Context, id string) (domain.Task, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) (domain.Task, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) DeleteTask(ctx context.Context, id string) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func newRouter(serviceMock *taskServiceMock) *gin.Engine {
	router := gin.New()
	httpadapter.RegisterRoutes(router, handlers.NewHealthHandler(nil), handlers.NewTaskHandler(serviceMock))
	return router
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept-Language", translator.LanguageEn)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func requireAPIError(t *testing.T, rec *httptest.ResponseRecorder, code int, message string) {
	t.Helper()
	require.Equal(t, code, rec.Code)

	var got apierrors.JsonErr
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, code, got.Code)
	require.Equal(t, message, got.Message)
}

func sampleTask() domain.Task {
	dueDate := time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC)
	return domain.Task{
		ID:          taskID,
		Title:       "Write spec",
		Description: "first draft",
		Status:      domain.TaskStatusInProgress,
		BgColor:     "#ffeeaa",
		DueDate:     &dueDate,
		Details:     "ask for review",
		CreatedAt:   time.Date(2026, 2, 13, 10, 20, 30, 0, time.UTC),
		UpdatedAt:   time.Date(2026, 2, 13, 11, 20, 30, 0, time.UTC),
	}
}

func TestTaskHandler_ListTasks_Success(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("ListTasks", mock.Anything).Return([]domain.Task{sampleTask()}, nil).Once()

	rec := doRequest(newRouter(serviceMock), http.MethodGet, "/api/tasks", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var got []dto.TaskItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	require.Equal(t, taskID, got[0].ID)
	require.Equal(t, "Write spec", got[0].Title)
	require.Equal(t, "first draft", got[0].Description)
	require.Equal(t, "In Progress", got[0].Status)
	require.Equal(t, "#ffeeaa", got[0].BgColor)
	require.Equal(t, "2026-02-20", *got[0].DueDate)
	require.Equal(t, "ask for review", got[0].Details)
	require.Equal(t, "2026-02-13T10:20:30Z", got[0].CreatedAt)
	require.Equal(t, "2026-02-13T11:20:30Z", got[0].UpdatedAt)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_ListTasks_EmptyIsArray(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("ListTasks", mock.Anything).Return([]domain.Task{}, nil).Once()

	rec := doRequest(newRouter(serviceMock), http.MethodGet, "/api/tasks", "")

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `[]`, rec.Body.String())
}

func TestTaskHandler_ListTasks_Error(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("ListTasks", mock.Anything).
		Return(nil, fmt.Errorf("list tasks: %w: dial tcp: refused", domain.ErrStoreUnavailable)).Once()

	rec := doRequest(newRouter(serviceMock), http.MethodGet, "/api/tasks", "")

	requireAPIError(t, rec, http.StatusInternalServerError, "Failed to fetch tasks")
	require.NotContains(t, rec.Body.String(), "dial tcp")
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_ListTasks_TranslatesError(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("ListTasks", mock.Anything).Return(nil, errors.New("db is down")).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	req.Header.Set("Accept-Language", "fr-FR,fr;q=0.9")
	rec := httptest.NewRecorder()
	newRouter(serviceMock).ServeHTTP(rec, req)

	requireAPIError(t, rec, http.StatusInternalServerError, "Impossible de récupérer les tâches")
}

func TestTaskHandler_GetTask(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("GetTask", mock.Anything, taskID).Return(sampleTask(), nil).Once()
	serviceMock.On("GetTask", mock.Anything, "missing").Return(domain.Task{}, domain.ErrTaskNotFound).Once()
	router := newRouter(serviceMock)

	rec := doRequest(router, http.MethodGet, "/api/tasks/"+taskID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got dto.TaskItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, taskID, got.ID)

	rec = doRequest(router, http.MethodGet, "/api/tasks/missing", "")
	requireAPIError(t, rec, http.StatusNotFound, "Task not found")
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_CreateTask_TitleOnly(t *testing.T) {
	serviceMock := new(taskServiceMock)
	created := domain.Task{
		ID:        taskID,
		Title:     "Write spec",
		Status:    domain.TaskStatusTodo,
		BgColor:   domain.DefaultBgColor,
		CreatedAt: time.Date(2026, 2, 13, 10, 20, 30, 0, time.UTC),
		UpdatedAt: time.Date(2026, 2, 13, 10, 20, 30, 0, time.UTC),
	}
	serviceMock.On("CreateTask", mock.Anything, domain.CreateTaskInput{Title: "Write spec"}).Return(created, nil).Once()

	rec := doRequest(newRouter(serviceMock), http.MethodPost, "/api/tasks", `{"title":"Write spec"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	var got dto.TaskItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, taskID, got.ID)
	require.Equal(t, "To Do", got.Status)
	require.Equal(t, "#ffffff", got.BgColor)
	require.Nil(t, got.DueDate)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_CreateTask_PassesAllFields(t *testing.T) {
	serviceMock := new(taskServiceMock)
	dueDate := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	expected := domain.CreateTaskInput{
		Title:       "Ship board",
		Description: "v1",
		Status:      domain.TaskStatusDone,
		BgColor:     "#00ff00",
		DueDate:     &dueDate,
		Details:     "notes",
	}
	serviceMock.On("CreateTask", mock.Anything, expected).Return(sampleTask(), nil).Once()

	rec := doRequest(newRouter(serviceMock), http.MethodPost, "/api/tasks", `{
		"title":"Ship board",
		"description":"v1",
		"status":"Done",
		"bgColor":"#00ff00",
		"dueDate":"2026-03-01",
		"details":"notes"
	}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_CreateTask_MeasuresTitleAfterTrim(t *testing.T) {
	serviceMock := new(taskServiceMock)
	title := strings.Repeat("a", domain.MaxTitleLength)
	serviceMock.On("CreateTask", mock.Anything, domain.CreateTaskInput{Title: title}).Return(sampleTask(), nil).Once()

	body := fmt.Sprintf(`{"title":"   %s   "}`, title)
	rec := doRequest(newRouter(serviceMock), http.MethodPost, "/api/tasks", body)

	require.Equal(t, http.StatusCreated, rec.Code)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_CreateTask_InvalidPayload(t *testing.T) {
	bodies := map[string]string{
		"empty title":   `{"title":""}`,
		"blank title":   `{"title":"   "}`,
		"missing title": `{}`,
		"wrong type":    `{"title":42}`,
		"not json":      `title=x`,
		"unknown field": `{"title":"x","owner":"me"}`,
		"null status":   `{"title":"x","status":null}`,
		"empty status":  `{"title":"x","status":""}`,
		"bad due date":  `{"title":"x","dueDate":"someday"}`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			serviceMock := new(taskServiceMock)
			rec := doRequest(newRouter(serviceMock), http.MethodPost, "/api/tasks", body)
			requireAPIError(t, rec, http.StatusBadRequest, "Invalid task payload")
			serviceMock.AssertNotCalled(t, "CreateTask", mock.Anything, mock.Anything)
		})
	}
}

func TestTaskHandler_CreateTask_DomainValidationError(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("CreateTask", mock.Anything, mock.Anything).
		Return(domain.Task{}, &domain.ValidationError{Field: "status", Reason: "unknown"}).Once()

	rec := doRequest(newRouter(serviceMock), http.MethodPost, "/api/tasks", `{"title":"x","status":"Blocked"}`)

	requireAPIError(t, rec, http.StatusBadRequest, "Invalid task payload")
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_CreateTask_StoreError(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("CreateTask", mock.Anything, mock.Anything).Return(domain.Task{}, errors.New("boom")).Once()

	rec := doRequest(newRouter(serviceMock), http.MethodPost, "/api/tasks", `{"title":"x"}`)

	requireAPIError(t, rec, http.StatusInternalServerError, "Failed to create task")
}

func TestTaskHandler_UpdateTask_StatusPatch(t *testing.T) {
	serviceMock := new(taskServiceMock)
	done := domain.TaskStatusDone
	updated := sampleTask()
	updated.Status = domain.TaskStatusDone
	serviceMock.On("UpdateTask", mock.Anything, taskID, domain.TaskPatch{Status: &done}).Return(updated, nil).Twice()
	router := newRouter(serviceMock)

	for _, method := range []string{http.MethodPut, http.MethodPatch} {
		rec := doRequest(router, method, "/api/tasks/"+taskID, `{"status":"Done"}`)

		require.Equal(t, http.StatusOK, rec.Code, method)
		var got dto.TaskItem
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		require.Equal(t, "Done", got.Status)
	}
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_UpdateTask_NotFound(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("UpdateTask", mock.Anything, "unknown", mock.Anything).Return(domain.Task{}, domain.ErrTaskNotFound).Once()

	rec := doRequest(newRouter(serviceMock), http.MethodPut, "/api/tasks/unknown", `{"status":"Done"}`)

	requireAPIError(t, rec, http.StatusNotFound, "Task not found")
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_UpdateTask_MeasuresTitleAfterTrim(t *testing.T) {
	serviceMock := new(taskServiceMock)
	title := strings.Repeat("b", domain.MaxTitleLength)
	serviceMock.On("UpdateTask", mock.Anything, taskID, domain.TaskPatch{Title: &title}).Return(sampleTask(), nil).Once()

	body := fmt.Sprintf(`{"title":"\t%s    "}`, title)
	rec := doRequest(newRouter(serviceMock), http.MethodPut, "/api/tasks/"+taskID, body)

	require.Equal(t, http.StatusOK, rec.Code)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_UpdateTask_InvalidPayload(t *testing.T) {
	bodies := map[string]string{
		"empty object":  `{}`,
		"null body":     `null`,
		"blank title":   `{"title":" "}`,
		"unknown field": `{"colour":"#fff"}`,
		"wrong type":    `{"status":3}`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			serviceMock := new(taskServiceMock)
			rec := doRequest(newRouter(serviceMock), http.MethodPut, "/api/tasks/"+taskID, body)
			requireAPIError(t, rec, http.StatusBadRequest, "Invalid task payload")
			serviceMock.AssertNotCalled(t, "UpdateTask", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestTaskHandler_UpdateTask_InvalidStatusFromService(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("UpdateTask", mock.Anything, taskID, mock.Anything).
		Return(domain.Task{}, &domain.ValidationError{Field: "status", Reason: "unknown"}).Once()

	rec := doRequest(newRouter(serviceMock), http.MethodPut, "/api/tasks/"+taskID, `{"status":"Later"}`)

	requireAPIError(t, rec, http.StatusBadRequest, "Invalid task payload")
}

func TestTaskHandler_DeleteTask(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("DeleteTask", mock.Anything, taskID).Return(taskID, nil).Once()
	serviceMock.On("DeleteTask", mock.Anything, "gone").Return("", domain.ErrTaskNotFound).Once()
	serviceMock.On("DeleteTask", mock.Anything, "broken").Return("", errors.New("boom")).Once()
	router := newRouter(serviceMock)

	rec := doRequest(router, http.MethodDelete, "/api/tasks/"+taskID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got dto.DeleteTaskResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, taskID, got.ID)

	rec = doRequest(router, http.MethodDelete, "/api/tasks/gone", "")
	requireAPIError(t, rec, http.StatusNotFound, "Task not found")

	rec = doRequest(router, http.MethodDelete, "/api/tasks/broken", "")
	requireAPIError(t, rec, http.StatusInternalServerError, "Failed to delete task")
	serviceMock.AssertExpectations(t)
}

func TestHealthHandler_ReportsDatabaseDown(t *testing.T) {
	rec := doRequest(newRouter(new(taskServiceMock)), http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var got handlers.HealthBasic
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, handlers.StatusDown, got.Message)
}

func TestRoutes_UnknownRoute(t *testing.T) {
	rec := doRequest(newRouter(new(taskServiceMock)), http.MethodGet, "/api/unknown", "")
	requireAPIError(t, rec, http.StatusNotFound, "Route not found")
}
