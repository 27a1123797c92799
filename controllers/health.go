package controllers

import (
	"net/http"

	"category-services-backend/services"

	"github.com/gin-gonic/gin"
)

type HealthController struct {
	Monitor *services.HealthMonitor
}

func NewHealthController(monitor *services.HealthMonitor) *HealthController {
	return &HealthController{Monitor: monitor}
}

// Health reports liveness and the last database check, if a monitor runs.
func (ctl *HealthController) Health(c *gin.Context) {
	body := gin.H{
		"status":  "OK",
		"message": "API is running",
	}

	if ctl.Monitor != nil {
		status, checkedAt := ctl.Monitor.Status()
		body["database"] = status
		if !checkedAt.IsZero() {
			body["checkedAt"] = checkedAt
		}
	}

	c.JSON(http.StatusOK, body)
}
