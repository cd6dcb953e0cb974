package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	started      time.Time
	workerStatus func() map[string]bool
}

// NewHealthHandler creates a health handler; workerStatus may be nil
func NewHealthHandler(workerStatus func() map[string]bool) *HealthHandler {
	return &HealthHandler{started: time.Now(), workerStatus: workerStatus}
}

// Health reports liveness and the state of the worker pool
func (h *HealthHandler) Health(c *gin.Context) {
	data := gin.H{
		"status": "ok",
		"uptime": time.Since(h.started).Round(time.Second).String(),
	}
	if h.workerStatus != nil {
		data["workers"] = h.workerStatus()
	}
	c.JSON(http.StatusOK, data)
}
