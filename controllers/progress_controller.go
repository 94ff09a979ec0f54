package controllers

import (
	"net/http"
	"strconv"

	"github.com/OCHOLLA20/75hard-fitness-tracker/services"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	Svc    *services.ProgressService
	Photos *services.PhotoService
	Stats  *services.StatsService
}

func NewProgressController(svc *services.ProgressService, photos *services.PhotoService, stats *services.StatsService) *ProgressController {
	return &ProgressController{Svc: svc, Photos: photos, Stats: stats}
}

func dayNumberParam(c *gin.Context) (int, bool) {
	day, err := strconv.Atoi(c.Param("day_number"))
	if err != nil || day < 1 || day > services.ChallengeLengthDays {
		c.JSON(http.StatusBadRequest, gin.H{"error": "day_number must be between 1 and 75"})
		return 0, false
	}
	return day, true
}

func (h *ProgressController) List(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	records, err := h.Svc.List(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func (h *ProgressController) GetByDay(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	day, ok := dayNumberParam(c)
	if !ok {
		return
	}

	progress, err := h.Svc.GetByDay(userID, day)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, progress)
}

func (h *ProgressController) CheckIn(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	day, ok := dayNumberParam(c)
	if !ok {
		return
	}

	var input services.CheckInInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input.DayNumber = day

	progress, err := h.Svc.CheckIn(userID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	h.Stats.InvalidateDashboard(userID)
	c.JSON(http.StatusOK, progress)
}

func (h *ProgressController) UploadPhoto(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	day, ok := dayNumberParam(c)
	if !ok {
		return
	}

	var input services.PhotoUploadInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.Photos.UploadProgressPhoto(userID, day, input)
	if err != nil {
		respondError(c, err)
		return
	}
	h.Stats.InvalidateDashboard(userID)
	c.JSON(http.StatusOK, result)
}
