package controllers

import (
	"net/http"
	"strconv"

	"github.com/OCHOLLA20/75hard-fitness-tracker/services"

	"github.com/gin-gonic/gin"
)

type WorkoutController struct {
	Svc   *services.WorkoutService
	Stats *services.StatsService
}

func NewWorkoutController(svc *services.WorkoutService, stats *services.StatsService) *WorkoutController {
	return &WorkoutController{Svc: svc, Stats: stats}
}

func workoutIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid workout id"})
		return 0, false
	}
	return uint(id), true
}

func (h *WorkoutController) List(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	workouts, err := h.Svc.List(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, workouts)
}

func (h *WorkoutController) Get(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, ok := workoutIDParam(c)
	if !ok {
		return
	}

	workout, err := h.Svc.GetByID(userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, workout)
}

func (h *WorkoutController) Create(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var input services.WorkoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	workout, err := h.Svc.Create(userID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	h.Stats.InvalidateDashboard(userID)
	c.JSON(http.StatusCreated, workout)
}

func (h *WorkoutController) Update(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, ok := workoutIDParam(c)
	if !ok {
		return
	}

	var input services.WorkoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	workout, err := h.Svc.Update(userID, id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	h.Stats.InvalidateDashboard(userID)
	c.JSON(http.StatusOK, workout)
}

func (h *WorkoutController) Delete(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, ok := workoutIDParam(c)
	if !ok {
		return
	}

	if err := h.Svc.Delete(userID, id); err != nil {
		respondError(c, err)
		return
	}
	h.Stats.InvalidateDashboard(userID)
	c.JSON(http.StatusOK, gin.H{"message": "workout deleted"})
}

func (h *WorkoutController) ByDay(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	day, ok := dayNumberParam(c)
	if !ok {
		return
	}

	workouts, err := h.Svc.ByDayNumber(userID, day)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, workouts)
}
