package domain

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "To Do"
	TaskStatusInProgress TaskStatus = "In Progress"
	TaskStatusDone       TaskStatus = "Done"
)

const (
	DefaultBgColor = "#ffffff"
	MaxTitleLength = 255
)

// TaskStatuses lists the valid statuses in board column order.
var TaskStatuses = []TaskStatus{TaskStatusTodo, TaskStatusInProgress, TaskStatusDone}

var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

type Task struct {
	ID          string
	Title       string
	Description string
	Status      TaskStatus
	BgColor     string
	DueDate     *time.Time
	Details     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type CreateTaskInput struct {
	Title       string
	Description string
	Status      TaskStatus
	BgColor     string
	DueDate     *time.Time
	Details     string
}

// Normalize trims the title, fills in defaults and validates the result.
func (in CreateTaskInput) Normalize() (CreateTaskInput, error) {
	title, err := normalizeTitle(in.Title)
	if err != nil {
		return CreateTaskInput{}, err
	}
	in.Title = title

	if in.Status == "" {
		in.Status = TaskStatusTodo
	}
	if !in.Status.Valid() {
		return CreateTaskInput{}, invalid("status", "must be one of To Do, In Progress, Done")
	}

	if in.BgColor == "" {
		in.BgColor = DefaultBgColor
	}
	if !ValidColor(in.BgColor) {
		return CreateTaskInput{}, invalid("bgColor", "must be a hex colour")
	}

	return in, nil
}

// TaskPatch is a merge-patch over the task fields. Title and Status are
// present when non-nil; the other fields carry an explicit Set flag so a
// null value can clear them.
type TaskPatch struct {
	Title          *string
	Description    *string
	DescriptionSet bool
	Status         *TaskStatus
	BgColor        *string
	BgColorSet     bool
	DueDate        *time.Time
	DueDateSet     bool
	Details        *string
	DetailsSet     bool
}

func (p TaskPatch) Empty() bool {
	return p.Title == nil &&
		p.Status == nil &&
		!p.DescriptionSet &&
		!p.BgColorSet &&
		!p.DueDateSet &&
		!p.DetailsSet
}

// Validate checks only the fields present in the patch.
func (p TaskPatch) Validate() (TaskPatch, error) {
	if p.Title != nil {
		title, err := normalizeTitle(*p.Title)
		if err != nil {
			return TaskPatch{}, err
		}
		p.Title = &title
	}
	if p.Status != nil && !p.Status.Valid() {
		return TaskPatch{}, invalid("status", "must be one of To Do, In Progress, Done")
	}
	if p.BgColorSet && p.BgColor != nil && *p.BgColor != "" && !ValidColor(*p.BgColor) {
		return TaskPatch{}, invalid("bgColor", "must be a hex colour")
	}
	return p, nil
}

// Apply returns a copy of t with the patch merged in. UpdatedAt is left to the store.
func (t Task) Apply(p TaskPatch) Task {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.DescriptionSet {
		t.Description = valueOrEmpty(p.Description)
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.BgColorSet {
		t.BgColor = DefaultBgColor
		if p.BgColor != nil && *p.BgColor != "" {
			t.BgColor = *p.BgColor
		}
	}
	if p.DueDateSet {
		t.DueDate = nil
		if p.DueDate != nil {
			value := *p.DueDate
			t.DueDate = &value
		}
	}
	if p.DetailsSet {
		t.Details = valueOrEmpty(p.Details)
	}
	return t
}

func ValidColor(value string) bool {
	return hexColorPattern.MatchString(value)
}

func normalizeTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", invalid("title", "is required")
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return "", invalid("title", "is too long")
	}
	return title, nil
}

func valueOrEmpty(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
