package handler

import (
	"errors"
	"log"
	"net/http"

	"carefinder/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type FavoriteHandler struct {
	favRepo     *repository.FavoriteRepository
	locRepo     *repository.LocationRepository
	profileRepo *repository.ProfileRepository
}

func NewFavoriteHandler(favRepo *repository.FavoriteRepository, locRepo *repository.LocationRepository, profileRepo *repository.ProfileRepository) *FavoriteHandler {
	return &FavoriteHandler{favRepo: favRepo, locRepo: locRepo, profileRepo: profileRepo}
}

// Add bookmarks a location. Adding an existing favorite is a no-op; the
// unique (caregiver, location) index rejects the duplicate-insert race.
func (h *FavoriteHandler) Add(c *gin.Context) {
	p, ok := currentProfile(c, h.profileRepo)
	if !ok {
		return
	}
	locationID := paramID(c, "location_id")
	if _, err := h.locRepo.GetByID(locationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "location not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	exists, _ := h.favRepo.IsFavorite(p.ID, locationID)
	if exists {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}
	if err := h.favRepo.Add(p.ID, locationID); err != nil {
		log.Printf("[favorite] add failed: caregiver=%d location=%d err=%v", p.ID, locationID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add favorite"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "ok"})
}

func (h *FavoriteHandler) Remove(c *gin.Context) {
	p, ok := currentProfile(c, h.profileRepo)
	if !ok {
		return
	}
	if err := h.favRepo.Remove(p.ID, paramID(c, "location_id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// List returns the viewer's favorites with location and organization data.
// Private to the owner.
func (h *FavoriteHandler) List(c *gin.Context) {
	p, ok := currentProfile(c, h.profileRepo)
	if !ok {
		return
	}
	limit, offset := pagination(c, 20, 100)
	list, err := h.favRepo.ListByCaregiverID(p.ID, limit, offset)
	if err != nil {
		log.Printf("[favorite] list failed: caregiver=%d err=%v", p.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	out := make([]gin.H, len(list))
	for i, f := range list {
		out[i] = gin.H{
			"id":          f.ID,
			"location_id": f.LocationID,
			"notes":       f.Notes,
			"visited":     f.Visited,
			"visit_date":  f.VisitDate,
			"created_at":  f.CreatedAt,
			"location": gin.H{
				"id":                f.Location.ID,
				"street":            f.Location.Street,
				"city":              f.Location.City,
				"county":            f.Location.County,
				"organization_name": f.Location.Organization.Name,
			},
		}
	}
	c.JSON(http.StatusOK, gin.H{"favorites": out})
}

type visitStateRequest struct {
	Notes   string `json:"notes"`
	Visited bool   `json:"visited"`
}

// UpdateVisitState saves notes and the visited flag. The visit date is
// derived: stamped when visited flips true, cleared when false.
func (h *FavoriteHandler) UpdateVisitState(c *gin.Context) {
	p, ok := currentProfile(c, h.profileRepo)
	if !ok {
		return
	}
	fav, err := h.favRepo.Get(p.ID, paramID(c, "location_id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "favorite not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	var req visitStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.favRepo.SaveVisitState(fav, req.Notes, req.Visited); err != nil {
		log.Printf("[favorite] visit state failed: id=%d err=%v", fav.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorite": fav})
}
