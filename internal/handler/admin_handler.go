package handler

import (
	"errors"
	"log"
	"net/http"

	"carefinder/internal/domain"
	"carefinder/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AdminHandler covers review moderation: flagged reviews queue and
// publication status changes.
type AdminHandler struct {
	reviewRepo *repository.ReviewRepository
}

func NewAdminHandler(reviewRepo *repository.ReviewRepository) *AdminHandler {
	return &AdminHandler{reviewRepo: reviewRepo}
}

func (h *AdminHandler) ListFlagged(c *gin.Context) {
	limit, offset := pagination(c, 20, 100)
	list, err := h.reviewRepo.ListFlagged(limit, offset)
	if err != nil {
		log.Printf("[admin] flagged list failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": list})
}

type moderationRequest struct {
	Status  string `json:"status" binding:"required,oneof=PUBLISHED PENDING"`
	Flagged *bool  `json:"flagged"`
}

func (h *AdminHandler) UpdateStatus(c *gin.Context) {
	rv, err := h.reviewRepo.GetByID(paramID(c, "id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "review not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	var req moderationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rv.Status = req.Status
	if req.Flagged != nil {
		rv.Flagged = *req.Flagged
	} else if req.Status == domain.ReviewStatusPublished {
		rv.Flagged = false
	}
	if err := h.reviewRepo.Save(rv); err != nil {
		log.Printf("[admin] status update failed: id=%d err=%v", rv.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"review": rv})
}
