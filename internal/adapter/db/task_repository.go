package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"taskboard/internal/config"
	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
)

const (
	listTasksQuery = `
SELECT id, title, description, status, bg_color, due_date, details, created_at, updated_at
FROM tasks
ORDER BY seq;
`
	getTaskQuery = `
SELECT id, title, description, status, bg_color, due_date, details, created_at, updated_at
FROM tasks
WHERE id = ?`
	insertTaskQuery = `
INSERT INTO tasks (id, title, description, status, bg_color, due_date, details, created_at, updated_at)
VALUES (:id, :title, :description, :status, :bg_color, :due_date, :details, :created_at, :updated_at);
`
	updateTaskQuery = `
UPDATE tasks
SET title = :title,
    description = :description,
    status = :status,
    bg_color = :bg_color,
    due_date = :due_date,
    details = :details,
    updated_at = :updated_at
WHERE id = :id;
`
	deleteTaskQuery = `DELETE FROM tasks WHERE id = ?;`
)

type TaskRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

type taskRow struct {
	ID          string       `db:"id"`
	Title       string       `db:"title"`
	Description string       `db:"description"`
	Status      string       `db:"status"`
	BgColor     string       `db:"bg_color"`
	DueDate     sql.NullTime `db:"due_date"`
	Details     string       `db:"details"`
	CreatedAt   time.Time    `db:"created_at"`
	UpdatedAt   time.Time    `db:"updated_at"`
}

var _ ports.TaskRepository = (*TaskRepository)(nil)

func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db, now: time.Now}
}

func (r *TaskRepository) CreateTask(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error) {
	now := r.timestamp()
	task := domain.Task{
		ID:          uuid.NewString(),
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		BgColor:     input.BgColor,
		DueDate:     input.DueDate,
		Details:     input.Details,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := r.db.NamedExecContext(ctx, insertTaskQuery, mapDomainTaskToTaskRow(task)); err != nil {
		return domain.Task{}, storeError("insert task", err)
	}

	return task, nil
}

func (r *TaskRepository) ListTasks(ctx context.Context) ([]domain.Task, error) {
	var rows []taskRow
	if err := r.db.SelectContext(ctx, &rows, listTasksQuery); err != nil {
		return nil, storeError("list tasks", err)
	}

	tasks := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, mapTaskRowToDomainTask(row))
	}

	return tasks, nil
}

func (r *TaskRepository) GetTask(ctx context.Context, id string) (domain.Task, error) {
	var row taskRow
	if err := r.db.GetContext(ctx, &row, getTaskQuery, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Task{}, domain.ErrTaskNotFound
		}
		return domain.Task{}, storeError("get task", err)
	}

	return mapTaskRowToDomainTask(row), nil
}

// UpdateTask reads, merges and writes the task inside one transaction.
func (r *TaskRepository) UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) (domain.Task, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.Task{}, storeError("begin update", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := getTaskQuery
	if r.db.DriverName() == config.DriverMySQL {
		query += " FOR UPDATE"
	}

	var row taskRow
	if err := tx.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Task{}, domain.ErrTaskNotFound
		}
		return domain.Task{}, storeError("load task", err)
	}

	task := mapTaskRowToDomainTask(row).Apply(patch)
	task.UpdatedAt = r.timestamp()
	if task.UpdatedAt.Before(task.CreatedAt) {
		task.UpdatedAt = task.CreatedAt
	}

	if _, err := tx.NamedExecContext(ctx, updateTaskQuery, mapDomainTaskToTaskRow(task)); err != nil {
		return domain.Task{}, storeError("update task", err)
	}
	if err := tx.Commit(); err != nil {
		return domain.Task{}, storeError("commit update", err)
	}

	return task, nil
}

func (r *TaskRepository) DeleteTask(ctx context.Context, id string) (string, error) {
	result, err := r.db.ExecContext(ctx, deleteTaskQuery, id)
	if err != nil {
		return "", storeError("delete task", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return "", storeError("delete task", err)
	}
	if affected == 0 {
		return "", domain.ErrTaskNotFound
	}

	return id, nil
}

// timestamp is truncated to the precision of DATETIME(6) so returned records match stored ones.
func (r *TaskRepository) timestamp() time.Time {
	return r.now().UTC().Truncate(time.Microsecond)
}

func storeError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStoreUnavailable, err)
}

func mapDomainTaskToTaskRow(task domain.Task) taskRow {
	row := taskRow{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		BgColor:     task.BgColor,
		Details:     task.Details,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}

	if task.DueDate != nil {
		row.DueDate = sql.NullTime{Time: *task.DueDate, Valid: true}
	}

	return row
}

func mapTaskRowToDomainTask(row taskRow) domain.Task {
	task := domain.Task{
		ID:          row.ID,
		Title:       row.Title,
		Description: row.Description,
		Status:      domain.TaskStatus(row.Status),
		BgColor:     row.BgColor,
		Details:     row.Details,
		CreatedAt:   row.CreatedAt.UTC(),
		UpdatedAt:   row.UpdatedAt.UTC(),
	}

	if row.DueDate.Valid {
		value := row.DueDate.Time.UTC()
		task.DueDate = &value
	}

	return task
}
