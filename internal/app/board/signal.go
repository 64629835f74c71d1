package board

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"

	"taskboard/internal/adapter/http/dto"
	"taskboard/internal/core/domain"
)

// MsgTitleRequired is reported by SubmitTask before any request is sent.
const MsgTitleRequired = "Task title is required"

var ErrTitleRequired = errors.New(MsgTitleRequired)

// RefreshSignal is a counter that only goes up. Controllers reload when it moves.
type RefreshSignal struct {
	n atomic.Uint64
}

func (s *RefreshSignal) Bump() uint64 {
	return s.n.Add(1)
}

func (s *RefreshSignal) Value() uint64 {
	return s.n.Load()
}

type Creator interface {
	Create(ctx context.Context, req dto.CreateTaskRequest) (domain.Task, error)
}

// SubmitTask runs the creation flow. The signal is bumped only when the server accepted the task.
func SubmitTask(ctx context.Context, creator Creator, signal *RefreshSignal, req dto.CreateTaskRequest) (domain.Task, error) {
	if strings.TrimSpace(req.Title) == "" {
		return domain.Task{}, ErrTitleRequired
	}

	task, err := creator.Create(ctx, req)
	if err != nil {
		return domain.Task{}, err
	}

	signal.Bump()
	return task, nil
}

// MoveTo builds a patch that only changes the status.
func MoveTo(status domain.TaskStatus) dto.UpdateTaskRequest {
	value := string(status)
	return dto.UpdateTaskRequest{Status: &value}
}

// Recolor builds a patch that only changes the background colour.
func Recolor(color string) dto.UpdateTaskRequest {
	return dto.UpdateTaskRequest{BgColor: &color}
}
