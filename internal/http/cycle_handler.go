package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"flowsense/internal/domain"
	"flowsense/internal/repository"
)

// CycleHandler mantiene dependencias para endpoints de ciclos.
type CycleHandler struct {
	logger *zap.Logger
	cycles repository.CycleRepository
}

func NewCycleHandler(logger *zap.Logger, cycles repository.CycleRepository) *CycleHandler {
	return &CycleHandler{
		logger: logger,
		cycles: cycles,
	}
}

// CreateCycle maneja POST /cycles. Cada registro es un snapshot: completar
// un ciclo significa registrar uno nuevo, no editar el anterior.
func (h *CycleHandler) CreateCycle(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth"})
		return
	}

	var req struct {
		StartDate     time.Time  `json:"start_date" binding:"required"`
		EndDate       *time.Time `json:"end_date"`
		Length        int        `json:"length"`
		Symptoms      []string   `json:"symptoms"`
		FlowIntensity string     `json:"flow_intensity"`
		PainScore     *int       `json:"pain_score"`
		MoodScore     *int       `json:"mood_score"`
		EnergyScore   *int       `json:"energy_score"`
		OvulationDate *time.Time `json:"ovulation_date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create cycle request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	flow := domain.FlowIntensity(req.FlowIntensity)
	if req.FlowIntensity == "" {
		flow = domain.FlowMedium
	}

	cycle := domain.CycleRecord{
		ID:            uuid.NewString(),
		UserID:        claims.UserID,
		StartDate:     req.StartDate.UTC(),
		EndDate:       req.EndDate,
		Length:        req.Length,
		FlowIntensity: flow,
		PainScore:     req.PainScore,
		MoodScore:     req.MoodScore,
		EnergyScore:   req.EnergyScore,
		OvulationDate: req.OvulationDate,
		CreatedAt:     time.Now().UTC(),
	}
	for _, s := range req.Symptoms {
		cycle.Symptoms = append(cycle.Symptoms, domain.Symptom(s))
	}

	if err := h.cycles.Create(c.Request.Context(), cycle); err != nil {
		h.logger.Error("create cycle failed", zap.Error(err), zap.String("user_id", claims.UserID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save cycle"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"cycle": cycle})
}

// ListCycles maneja GET /cycles.
func (h *CycleHandler) ListCycles(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth"})
		return
	}

	cycles, err := h.cycles.ListByUser(c.Request.Context(), claims.UserID)
	if err != nil {
		h.logger.Error("list cycles failed", zap.Error(err), zap.String("user_id", claims.UserID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list cycles"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"cycles": cycles})
}
