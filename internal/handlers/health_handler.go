package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	*BaseHandler
	startedAt time.Time
}

func NewHealthHandler(base *BaseHandler) *HealthHandler {
	return &HealthHandler{
		BaseHandler: base,
		startedAt:   time.Now(),
	}
}

// Check pings the database so load balancers see real readiness, not
// just a live process.
func (h *HealthHandler) Check(c *gin.Context) {
	sqlDB, err := h.GetDB(c).DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"error":  "database unreachable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"uptime": time.Since(h.startedAt).Round(time.Second).String(),
	})
}
