// Package taskclient talks to the task REST API and returns domain values.
package taskclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"taskboard/internal/adapter/http/dto"
	"taskboard/internal/adapter/http/mapper"
	"taskboard/internal/core/domain"
	"taskboard/pkg/apierrors"
)

const (
	DefaultBaseURL = "http://localhost:8080"
	DefaultTimeout = 15 * time.Second

	MsgUpdateFailed = "Failed to update task"
	MsgDeleteFailed = "Failed to delete task"

	tasksPath = "/api/tasks"
)

// StatusError is returned by List and Create when the server answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("task api responded %d", e.StatusCode)
	}
	return fmt.Sprintf("task api responded %d: %s", e.StatusCode, e.Message)
}

// Error is the normalized failure of Update and Remove. Its text is meant to be shown to the user.
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New builds a client for the API rooted at baseURL. A nil httpClient gets one with DefaultTimeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

func (c *Client) List(ctx context.Context) ([]domain.Task, error) {
	var items []dto.TaskItem
	if err := c.do(ctx, http.MethodGet, tasksPath, nil, &items); err != nil {
		return nil, err
	}
	return mapper.FromTaskItems(items)
}

func (c *Client) Create(ctx context.Context, req dto.CreateTaskRequest) (domain.Task, error) {
	var item dto.TaskItem
	if err := c.do(ctx, http.MethodPost, tasksPath, req, &item); err != nil {
		return domain.Task{}, err
	}
	return mapper.FromTaskItem(item)
}

func (c *Client) Update(ctx context.Context, id string, req dto.UpdateTaskRequest) (domain.Task, error) {
	var item dto.TaskItem
	if err := c.do(ctx, http.MethodPut, taskPath(id), req, &item); err != nil {
		return domain.Task{}, normalize(err, MsgUpdateFailed)
	}
	task, err := mapper.FromTaskItem(item)
	if err != nil {
		return domain.Task{}, normalize(err, MsgUpdateFailed)
	}
	return task, nil
}

// Remove deletes the task and returns the id echoed by the server.
func (c *Client) Remove(ctx context.Context, id string) (string, error) {
	var resp dto.DeleteTaskResponse
	if err := c.do(ctx, http.MethodDelete, taskPath(id), nil, &resp); err != nil {
		return "", normalize(err, MsgDeleteFailed)
	}
	return resp.ID, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := &StatusError{StatusCode: resp.StatusCode}
		var apiErr apierrors.JsonErr
		if json.Unmarshal(respBody, &apiErr) == nil {
			statusErr.Message = apiErr.Message
		}
		return statusErr
	}

	if result == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("decoding response of %s %s: %w", method, path, err)
	}
	return nil
}

// normalize keeps the server message when there is one and falls back to a fixed text otherwise.
func normalize(err error, fallback string) *Error {
	var statusErr *StatusError
	if errors.As(err, &statusErr) && statusErr.Message != "" {
		return &Error{Message: statusErr.Message, Cause: err}
	}
	return &Error{Message: fallback, Cause: err}
}

func taskPath(id string) string {
	return tasksPath + "/" + url.PathEscape(id)
}
