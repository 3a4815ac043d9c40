package rest

import (
	"net/http"

	"github.com/Gunvolt24/wb_taskflow/pkg/httpx"
	"github.com/gin-gonic/gin"
)

func (h *Handler) getTaskByID(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty id"})
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	task, err := h.service.GetTask(ctx, id)
	if err != nil {
		h.log.Errorf(ctx, "GetTask failed id=%s err=%v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if task == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *Handler) listTasksByAssignee(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty assignee id"})
		return
	}

	// limit/offset с безопасными дефолтами и границами
	limit, offset := httpx.ParseLimitOffset(c, 20, 100)

	ctx, cancel := h.requestContext(c)
	defer cancel()

	tasks, err := h.service.TasksByAssignee(ctx, id, limit, offset)
	if err != nil {
		h.log.Errorf(ctx, "TasksByAssignee failed id=%s err=%v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// getIngestionHealth — текущее состояние circuit breaker'а и консьюмеров:
// HealthState, счётчик подряд неудачных проб, время с последнего успеха,
// RUNNING/PAUSED по каждому топику.
func (h *Handler) getIngestionHealth(c *gin.Context) {
	if h.healthReader == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "health monitor is not wired"})
		return
	}
	c.JSON(http.StatusOK, h.healthReader.Snapshot())
}

func (h *Handler) listRecentFailures(c *gin.Context) {
	if h.failures == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "failure store is not wired"})
		return
	}

	limit, _ := httpx.ParseLimitOffset(c, 20, 100)

	ctx, cancel := h.requestContext(c)
	defer cancel()

	recs, err := h.failures.RecentFailures(ctx, limit)
	if err != nil {
		h.log.Errorf(ctx, "RecentFailures failed err=%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, recs)
}
