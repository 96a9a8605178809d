package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/njb1/what2do/internal/domain"
	"github.com/njb1/what2do/internal/logger"

	"github.com/gin-gonic/gin"
)

type createTaskRequest struct {
	Content *string `json:"content"`
}

type updateTaskRequest struct {
	Completed *bool `json:"completed"`
}

// Index is the plain-text liveness message on "/".
func (h *Handler) Index(c *gin.Context) {
	c.String(http.StatusOK, indexMessage)
}

func (h *Handler) ListTasks(c *gin.Context) {
	ctx := c.Request.Context()
	tasks, err := h.Tasks.List(ctx)
	if err != nil {
		logger.WithContext(ctx).Error("list tasks failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list tasks"})
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (h *Handler) CreateTask(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ctx := c.Request.Context()
	if _, err := h.Tasks.Create(ctx, req.Content); err != nil {
		if errors.Is(err, domain.ErrContentRequired) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.WithContext(ctx).Error("create task failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create task"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": msgTaskAdded})
}

func (h *Handler) UpdateTask(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}

	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ctx := c.Request.Context()
	if err := h.Tasks.SetCompleted(ctx, id, req.Completed); err != nil {
		logger.WithContext(ctx).Error("update task failed", "error", err, "task_id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update task"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msgTaskUpdated})
}

func (h *Handler) DeleteTask(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if err := h.Tasks.Delete(ctx, id); err != nil {
		logger.WithContext(ctx).Error("delete task failed", "error", err, "task_id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete task"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msgTaskDeleted})
}

// taskID parses the :id path segment. Only unsigned decimal ids of at least 1
// name a task; anything else is answered with 404 like any other unknown route.
func taskID(c *gin.Context) (int64, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 || raw[0] < '0' || raw[0] > '9' {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return 0, false
	}
	return id, true
}
