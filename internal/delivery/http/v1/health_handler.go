package v1

import (
	"net/http"

	"portfolio-web/internal/delivery/http/response"
	"portfolio-web/internal/usecase"

	"github.com/gin-gonic/gin"
)

// Health godoc
// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /health [get]
func healthHandler(healthUC usecase.HealthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", healthUC.Check(c.Request.Context()))
	}
}
