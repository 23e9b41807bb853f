package v1

import (
	"net/http"

	"portfolio-website/internal/delivery/http/response"
	"portfolio-website/internal/usecase"

	"github.com/gin-gonic/gin"
)

// Health godoc
// @Summary      Health Check
// @Tags         health
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /health [get]
func healthHandler(healthUC usecase.HealthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := healthUC.Check(c.Request.Context())
		message := "System operational"
		if status["status"] != "ok" {
			message = "System degraded"
		}
		response.Success(c, http.StatusOK, message, status)
	}
}
