package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"taskboard/internal/adapter/http/dto"
	"taskboard/internal/adapter/http/mapper"
	"taskboard/internal/adapter/http/middleware"
	"taskboard/internal/adapter/http/validation"
	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
	"taskboard/pkg/apierrors"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"
)

type TaskHandler struct {
	taskService ports.TaskService
}

func NewTaskHandler(taskService ports.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) ListTasks(c *gin.Context) {
	lang := middleware.GetLang(c)
	tasks, err := h.taskService.ListTasks(c.Request.Context())
	if err != nil {
		zap.L().Error("failed to list tasks", zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailListTasks, lang),
		)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItems(tasks))
}

func (h *TaskHandler) GetTask(c *gin.Context) {
	taskID := c.Param("id")
	task, err := h.taskService.GetTask(c.Request.Context(), taskID)
	if err != nil {
		h.respondError(c, err, apierrors.MsgFailGetTask, "failed to get task", taskID)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	lang := middleware.GetLang(c)

	var req dto.CreateTaskRequest
	var raw map[string]json.RawMessage
	if err := bindTaskBody(c, &req, &raw); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	input, err := validation.BuildCreateTaskInput(req, raw)
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), input)
	if err != nil {
		h.respondError(c, err, apierrors.MsgFailCreateTask, "failed to create task", "")
		return
	}

	c.JSON(http.StatusCreated, mapper.ToTaskItem(task))
}

// UpdateTask merges the fields present in the body into the task. It serves both PUT and PATCH.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	lang := middleware.GetLang(c)
	taskID := c.Param("id")

	var req dto.UpdateTaskRequest
	var raw map[string]json.RawMessage
	if err := bindTaskBody(c, &req, &raw); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	patch, err := validation.BuildUpdateTaskInput(req, raw)
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), taskID, patch)
	if err != nil {
		h.respondError(c, err, apierrors.MsgFailUpdateTask, "failed to update task", taskID)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	taskID := c.Param("id")
	deletedID, err := h.taskService.DeleteTask(c.Request.Context(), taskID)
	if err != nil {
		h.respondError(c, err, apierrors.MsgFailDeleteTask, "failed to delete task", taskID)
		return
	}

	c.JSON(http.StatusOK, dto.DeleteTaskResponse{ID: deletedID})
}

// respondError maps service errors to responses. Only unclassified failures are logged;
// their cause never reaches the client.
func (h *TaskHandler) respondError(c *gin.Context, err error, failKey, logMsg, taskID string) {
	lang := middleware.GetLang(c)

	switch {
	case errors.Is(err, domain.ErrInvalidTask):
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
	case errors.Is(err, domain.ErrTaskNotFound):
		c.JSON(
			http.StatusNotFound,
			apierrors.CreateError(http.StatusNotFound, apierrors.MsgTaskNotFound, lang),
		)
	default:
		zap.L().Error(logMsg, zap.String("task_id", taskID), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, failKey, lang),
		)
	}
}

// bindTaskBody decodes the body into the typed request and into a raw field map,
// so callers can tell absent fields from explicit nulls.
func bindTaskBody(c *gin.Context, req any, raw *map[string]json.RawMessage) error {
	if err := c.ShouldBindBodyWith(req, binding.JSON); err != nil {
		return err
	}
	if err := c.ShouldBindBodyWith(raw, binding.JSON); err != nil {
		return err
	}
	if *raw == nil {
		return validation.ErrInvalidTaskPayload
	}
	return nil
}
