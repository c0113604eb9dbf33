package handlers

import (
	"net/http"

	"clinichub/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler handles GET /health with the latest dependency probe.
func HealthHandler(c *gin.Context) {
	status := utils.GetHealthStatus()
	if !status.Healthy() {
		c.JSON(http.StatusServiceUnavailable, utils.Envelope{Success: false, Data: status, Error: "degraded"})
		return
	}
	utils.JSONSuccess(c, http.StatusOK, status)
}
