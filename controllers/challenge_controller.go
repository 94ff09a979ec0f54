package controllers

import (
	"net/http"
	"time"

	"github.com/OCHOLLA20/75hard-fitness-tracker/services"

	"github.com/gin-gonic/gin"
)

type ChallengeController struct {
	Svc   *services.ChallengeService
	Stats *services.StatsService
}

func NewChallengeController(svc *services.ChallengeService, stats *services.StatsService) *ChallengeController {
	return &ChallengeController{Svc: svc, Stats: stats}
}

func (h *ChallengeController) Start(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var input struct {
		StartDate string `json:"start_date"` // optional, YYYY-MM-DD
	}
	_ = c.ShouldBindJSON(&input)

	var startDate *time.Time
	if input.StartDate != "" {
		parsed, err := time.ParseInLocation("2006-01-02", input.StartDate, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date"})
			return
		}
		startDate = &parsed
	}

	result, err := h.Svc.Start(userID, startDate)
	if err != nil {
		respondError(c, err)
		return
	}
	h.Stats.InvalidateDashboard(userID)
	c.JSON(http.StatusCreated, result)
}

func (h *ChallengeController) Reset(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.Svc.Reset(userID); err != nil {
		respondError(c, err)
		return
	}
	h.Stats.InvalidateDashboard(userID)
	c.JSON(http.StatusOK, gin.H{"message": "challenge reset"})
}

func (h *ChallengeController) Status(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	status, err := h.Svc.Status(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}
