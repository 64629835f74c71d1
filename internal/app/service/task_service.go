package service

import (
	"context"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
)

type TaskService struct {
	taskRepository ports.TaskRepository
}

func NewTaskService(taskRepository ports.TaskRepository) *TaskService {
	return &TaskService{taskRepository: taskRepository}
}

func (s *TaskService) CreateTask(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error) {
	normalized, err := input.Normalize()
	if err != nil {
		return domain.Task{}, err
	}
	return s.taskRepository.CreateTask(ctx, normalized)
}

func (s *TaskService) ListTasks(ctx context.Context) ([]domain.Task, error) {
	return s.taskRepository.ListTasks(ctx)
}

func (s *TaskService) GetTask(ctx context.Context, id string) (domain.Task, error) {
	return s.taskRepository.GetTask(ctx, id)
}

// UpdateTask validates the fields present in patch and merges them into the stored task.
func (s *TaskService) UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) (domain.Task, error) {
	validated, err := patch.Validate()
	if err != nil {
		return domain.Task{}, err
	}
	return s.taskRepository.UpdateTask(ctx, id, validated)
}

func (s *TaskService) DeleteTask(ctx context.Context, id string) (string, error) {
	return s.taskRepository.DeleteTask(ctx, id)
}

var _ ports.TaskService = (*TaskService)(nil)
