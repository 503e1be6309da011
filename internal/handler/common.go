package handler

import (
	"net/http"
	"strconv"

	"carefinder/internal/middleware"
	"carefinder/internal/models"
	"carefinder/internal/repository"

	"github.com/gin-gonic/gin"
)

// currentProfile resolves the caregiver profile of the authenticated user.
// Writes a 401 and returns false when it cannot.
func currentProfile(c *gin.Context, profiles *repository.ProfileRepository) (*models.CaregiverProfile, bool) {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return nil, false
	}
	p, err := profiles.GetByUserID(userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "profile not found"})
		return nil, false
	}
	return p, true
}

// pagination reads limit/offset query params, clamped to sane bounds.
func pagination(c *gin.Context, defaultLimit, maxLimit int) (int, int) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func paramID(c *gin.Context, name string) uint {
	id, _ := strconv.ParseUint(c.Param(name), 10, 64)
	return uint(id)
}
