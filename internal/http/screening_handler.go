package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"flowsense/internal/service"
)

// ScreeningHandler expone el motor de screening por HTTP.
type ScreeningHandler struct {
	logger     *zap.Logger
	screenings *service.ScreeningService
}

func NewScreeningHandler(logger *zap.Logger, screenings *service.ScreeningService) *ScreeningHandler {
	return &ScreeningHandler{
		logger:     logger,
		screenings: screenings,
	}
}

// RunScreening maneja POST /screenings: corre los assessors sobre el
// historial actual y devuelve el reporte consolidado.
func (h *ScreeningHandler) RunScreening(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth"})
		return
	}

	report, err := h.screenings.RunScreening(c.Request.Context(), claims.UserID)
	if err != nil {
		h.logger.Error("screening failed", zap.Error(err), zap.String("user_id", claims.UserID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not run screening"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": report})
}

// LatestReport maneja GET /screenings/latest.
func (h *ScreeningHandler) LatestReport(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth"})
		return
	}

	report, err := h.screenings.LatestReport(c.Request.Context(), claims.UserID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no screening report yet"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": report})
}
