package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthCheck handles GET /health
func HealthCheck(deps *Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		broker := "disabled"
		if deps.Broker != nil {
			broker = "disconnected"
			if deps.Broker.IsConnected() {
				broker = "connected"
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"service":  deps.ServiceName,
			"rabbitmq": broker,
		})
	}
}
