package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prateekh777/professional-website/internal/usecase"
)

type HealthHandler struct {
	healthUC usecase.HealthUsecase
}

func NewHealthHandler(public *gin.RouterGroup, healthUC usecase.HealthUsecase) {
	handler := &HealthHandler{healthUC: healthUC}

	public.GET("/health", handler.Check)
}

// Check godoc
// @Summary      Health Check
// @Description  Reports database, email, storage and redis status. 503 when any configured dependency fails.
// @Tags         health
// @Produce      json
// @Success      200  {object}  usecase.HealthStatus
// @Failure      503  {object}  usecase.HealthStatus
// @Router       /health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	status := h.healthUC.Check(c.Request.Context())

	code := http.StatusOK
	if !status.Healthy() {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, status)
}
