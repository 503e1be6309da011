package handler

import (
	"log"
	"net/http"

	"carefinder/internal/middleware"
	"carefinder/internal/repository"

	"github.com/gin-gonic/gin"
)

type MeHandler struct {
	userRepo    *repository.UserRepository
	profileRepo *repository.ProfileRepository
	reviewRepo  *repository.ReviewRepository
}

func NewMeHandler(userRepo *repository.UserRepository, profileRepo *repository.ProfileRepository, reviewRepo *repository.ReviewRepository) *MeHandler {
	return &MeHandler{userRepo: userRepo, profileRepo: profileRepo, reviewRepo: reviewRepo}
}

func (h *MeHandler) GetProfile(c *gin.Context) {
	userID := middleware.GetUserID(c)
	u, err := h.userRepo.GetByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	p, err := h.profileRepo.GetByUserID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u, "profile": p})
}

type updateProfileRequest struct {
	DisplayName string `json:"display_name" binding:"required,min=1,max=128"`
}

func (h *MeHandler) UpdateProfile(c *gin.Context) {
	p, ok := currentProfile(c, h.profileRepo)
	if !ok {
		return
	}
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p.DisplayName = req.DisplayName
	if err := h.profileRepo.Update(p); err != nil {
		log.Printf("[me] profile update failed: id=%d err=%v", p.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": p})
}

// DeleteAccount removes the account; profile, favorites, reviews and votes
// cascade with it.
func (h *MeHandler) DeleteAccount(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if _, err := h.userRepo.GetByID(userID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	if err := h.userRepo.Delete(userID); err != nil {
		log.Printf("[me] account delete failed: id=%d err=%v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// MyReviews lists the viewer's own reviews, any status.
func (h *MeHandler) MyReviews(c *gin.Context) {
	p, ok := currentProfile(c, h.profileRepo)
	if !ok {
		return
	}
	list, err := h.reviewRepo.ListByCaregiverID(p.ID)
	if err != nil {
		log.Printf("[me] reviews failed: caregiver=%d err=%v", p.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": list})
}
