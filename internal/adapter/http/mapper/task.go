package mapper

import (
	"fmt"
	"time"

	"taskboard/internal/adapter/http/dto"
	"taskboard/internal/core/domain"
)

const DateLayout = "2006-01-02"

func ToTaskItems(tasks []domain.Task) []dto.TaskItem {
	items := make([]dto.TaskItem, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, ToTaskItem(task))
	}
	return items
}

func ToTaskItem(task domain.Task) dto.TaskItem {
	item := dto.TaskItem{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		BgColor:     task.BgColor,
		Details:     task.Details,
		CreatedAt:   task.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:   task.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}

	if task.DueDate != nil {
		value := task.DueDate.Format(DateLayout)
		item.DueDate = &value
	}

	return item
}

// FromTaskItem converts a wire task back into a domain value. The status is
// copied as-is, so records outside the known statuses survive the trip.
func FromTaskItem(item dto.TaskItem) (domain.Task, error) {
	task := domain.Task{
		ID:          item.ID,
		Title:       item.Title,
		Description: item.Description,
		Status:      domain.TaskStatus(item.Status),
		BgColor:     item.BgColor,
		Details:     item.Details,
	}

	var err error
	if task.CreatedAt, err = parseTimestamp(item.CreatedAt); err != nil {
		return domain.Task{}, fmt.Errorf("task %s createdAt: %w", item.ID, err)
	}
	if task.UpdatedAt, err = parseTimestamp(item.UpdatedAt); err != nil {
		return domain.Task{}, fmt.Errorf("task %s updatedAt: %w", item.ID, err)
	}

	if item.DueDate != nil && *item.DueDate != "" {
		dueDate, err := ParseDate(*item.DueDate)
		if err != nil {
			return domain.Task{}, fmt.Errorf("task %s dueDate: %w", item.ID, err)
		}
		task.DueDate = &dueDate
	}

	return task, nil
}

func FromTaskItems(items []dto.TaskItem) ([]domain.Task, error) {
	tasks := make([]domain.Task, 0, len(items))
	for _, item := range items {
		task, err := FromTaskItem(item)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// ParseDate accepts a calendar date or an RFC 3339 timestamp and returns midnight UTC of that day.
func ParseDate(value string) (time.Time, error) {
	if parsed, err := time.Parse(DateLayout, value); err == nil {
		return parsed, nil
	}
	parsed, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, err
	}
	parsed = parsed.UTC()
	return time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC), nil
}

func parseTimestamp(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	parsed, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, err
	}
	return parsed.UTC(), nil
}

// ToUpdateTaskRequest builds a patch carrying every writable field of task.
func ToUpdateTaskRequest(task domain.Task) dto.UpdateTaskRequest {
	item := ToTaskItem(task)
	status := item.Status
	return dto.UpdateTaskRequest{
		Title:       &item.Title,
		Description: &item.Description,
		Status:      &status,
		BgColor:     &item.BgColor,
		DueDate:     item.DueDate,
		Details:     &item.Details,
	}
}
