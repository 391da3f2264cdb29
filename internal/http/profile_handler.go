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

// ProfileHandler mantiene dependencias para endpoints del perfil de salud.
type ProfileHandler struct {
	logger   *zap.Logger
	profiles repository.HealthProfileRepository
}

func NewProfileHandler(logger *zap.Logger, profiles repository.HealthProfileRepository) *ProfileHandler {
	return &ProfileHandler{
		logger:   logger,
		profiles: profiles,
	}
}

// UpsertProfile maneja PUT /profile.
func (h *ProfileHandler) UpsertProfile(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth"})
		return
	}

	var req struct {
		Age           *int     `json:"age"`
		WeightKg      *float64 `json:"weight_kg"`
		HeightCm      *float64 `json:"height_cm"`
		FamilyHistory []string `json:"family_history"`
		Lifestyle     []string `json:"lifestyle"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid profile request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	now := time.Now().UTC()
	profile := domain.HealthProfile{
		ID:        uuid.NewString(),
		UserID:    claims.UserID,
		Age:       req.Age,
		WeightKg:  req.WeightKg,
		HeightCm:  req.HeightCm,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, t := range req.FamilyHistory {
		profile.FamilyHistory = append(profile.FamilyHistory, domain.ConditionTag(t))
	}
	for _, t := range req.Lifestyle {
		profile.Lifestyle = append(profile.Lifestyle, domain.LifestyleTag(t))
	}

	if err := h.profiles.Upsert(c.Request.Context(), profile); err != nil {
		h.logger.Error("upsert profile failed", zap.Error(err), zap.String("user_id", claims.UserID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// GetProfile maneja GET /profile.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth"})
		return
	}

	profile, err := h.profiles.GetByUserID(c.Request.Context(), claims.UserID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}
