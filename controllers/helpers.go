package controllers

import (
	"errors"
	"net/http"

	"github.com/OCHOLLA20/75hard-fitness-tracker/services"

	"github.com/gin-gonic/gin"
)

func userIDFromCtx(c *gin.Context) (uint, bool) {
	v, ok := c.Get("userID")
	if !ok {
		return 0, false
	}
	switch id := v.(type) {
	case uint:
		return id, true
	case int:
		return uint(id), true
	case int64:
		return uint(id), true
	default:
		return 0, false
	}
}

// respondError maps service sentinel errors onto HTTP status codes.
// Anything unrecognized is a 500.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrProgressNotFound),
		errors.Is(err, services.ErrWorkoutNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrUsernameTaken),
		errors.Is(err, services.ErrSlotTaken),
		errors.Is(err, services.ErrChallengeStarted):
		status = http.StatusConflict
	case errors.Is(err, services.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrWrongPassword),
		errors.Is(err, services.ErrResetTokenInvalid):
		status = http.StatusUnauthorized
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
