package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"taskboard/internal/adapter/http/dto"
	"taskboard/internal/adapter/http/mapper"
	"taskboard/internal/core/domain"
)

var ErrInvalidTaskPayload = errors.New("invalid task payload")

var writableFields = map[string]struct{}{
	"title":       {},
	"description": {},
	"status":      {},
	"bgColor":     {},
	"dueDate":     {},
	"details":     {},
}

// Server-assigned fields. Clients may echo them back; their values are ignored.
var readOnlyFields = map[string]struct{}{
	"id":        {},
	"createdAt": {},
	"updatedAt": {},
}

func BuildCreateTaskInput(req dto.CreateTaskRequest, raw map[string]json.RawMessage) (domain.CreateTaskInput, error) {
	if hasUnknownFields(raw) {
		return domain.CreateTaskInput{}, ErrInvalidTaskPayload
	}
	// An explicit status must name a column; only an absent key defaults to To Do.
	if hasJSONField(raw, "status") && (req.Status == nil || *req.Status == "") {
		return domain.CreateTaskInput{}, ErrInvalidTaskPayload
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return domain.CreateTaskInput{}, ErrInvalidTaskPayload
	}

	input := domain.CreateTaskInput{
		Title:       title,
		Description: valueOrEmpty(req.Description),
		Details:     valueOrEmpty(req.Details),
		BgColor:     valueOrEmpty(req.BgColor),
	}

	if req.Status != nil {
		input.Status = domain.TaskStatus(*req.Status)
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		return domain.CreateTaskInput{}, ErrInvalidTaskPayload
	}
	input.DueDate = dueDate

	return input, nil
}

func BuildUpdateTaskInput(req dto.UpdateTaskRequest, raw map[string]json.RawMessage) (domain.TaskPatch, error) {
	if len(raw) == 0 || hasUnknownFields(raw) {
		return domain.TaskPatch{}, ErrInvalidTaskPayload
	}

	var patch domain.TaskPatch

	if hasJSONField(raw, "title") && req.Title == nil {
		return domain.TaskPatch{}, ErrInvalidTaskPayload
	}
	if req.Title != nil {
		value := strings.TrimSpace(*req.Title)
		if value == "" {
			return domain.TaskPatch{}, ErrInvalidTaskPayload
		}
		patch.Title = &value
	}

	if hasJSONField(raw, "status") && req.Status == nil {
		return domain.TaskPatch{}, ErrInvalidTaskPayload
	}
	if req.Status != nil {
		value := domain.TaskStatus(*req.Status)
		patch.Status = &value
	}

	patch.DescriptionSet = hasJSONField(raw, "description")
	if patch.DescriptionSet && !isJSONNull(raw["description"]) && req.Description == nil {
		return domain.TaskPatch{}, ErrInvalidTaskPayload
	}
	patch.Description = req.Description

	patch.DetailsSet = hasJSONField(raw, "details")
	if patch.DetailsSet && !isJSONNull(raw["details"]) && req.Details == nil {
		return domain.TaskPatch{}, ErrInvalidTaskPayload
	}
	patch.Details = req.Details

	patch.BgColorSet = hasJSONField(raw, "bgColor")
	if patch.BgColorSet && !isJSONNull(raw["bgColor"]) && req.BgColor == nil {
		return domain.TaskPatch{}, ErrInvalidTaskPayload
	}
	patch.BgColor = req.BgColor

	patch.DueDateSet = hasJSONField(raw, "dueDate")
	if patch.DueDateSet && !isJSONNull(raw["dueDate"]) {
		if req.DueDate == nil {
			return domain.TaskPatch{}, ErrInvalidTaskPayload
		}
		dueDate, err := parseDueDate(req.DueDate)
		if err != nil {
			return domain.TaskPatch{}, ErrInvalidTaskPayload
		}
		patch.DueDate = dueDate
	}

	return patch, nil
}

// parseDueDate treats an empty string as no due date, matching what date inputs submit when cleared.
func parseDueDate(value *string) (*time.Time, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}
	parsed, err := mapper.ParseDate(strings.TrimSpace(*value))
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func hasUnknownFields(raw map[string]json.RawMessage) bool {
	for field := range raw {
		if _, ok := writableFields[field]; ok {
			continue
		}
		if _, ok := readOnlyFields[field]; ok {
			continue
		}
		return true
	}
	return false
}

func hasJSONField(raw map[string]json.RawMessage, field string) bool {
	_, ok := raw[field]
	return ok
}

func isJSONNull(value json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(value), []byte("null"))
}

func valueOrEmpty(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
