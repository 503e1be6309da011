package handler

import (
	"errors"
	"log"
	"net/http"
	"sort"
	"strconv"

	"carefinder/config"
	"carefinder/internal/directory"
	"carefinder/internal/middleware"
	"carefinder/internal/models"
	"carefinder/internal/repository"
	"carefinder/pkg/geo"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type LocationHandler struct {
	cfg         *config.Config
	locRepo     *repository.LocationRepository
	reviewRepo  *repository.ReviewRepository
	favRepo     *repository.FavoriteRepository
	profileRepo *repository.ProfileRepository
}

func NewLocationHandler(cfg *config.Config, locRepo *repository.LocationRepository, reviewRepo *repository.ReviewRepository, favRepo *repository.FavoriteRepository, profileRepo *repository.ProfileRepository) *LocationHandler {
	return &LocationHandler{cfg: cfg, locRepo: locRepo, reviewRepo: reviewRepo, favRepo: favRepo, profileRepo: profileRepo}
}

type locationEntry struct {
	models.Location
	OrganizationName string   `json:"organization_name"`
	Services         []string `json:"services"`
	AverageRating    *float64 `json:"average_rating,omitempty"`
	ReviewCount      int      `json:"review_count"`
	DistanceKm       *float64 `json:"distance_km,omitempty"`
}

func entryFor(loc models.Location, summaries map[uint]directory.RatingSummary) locationEntry {
	e := locationEntry{
		Location:         loc,
		OrganizationName: loc.Organization.Name,
		Services:         loc.Organization.ServiceList(),
	}
	if s, ok := summaries[loc.ID]; ok {
		avg := s.AverageRating
		e.AverageRating = &avg
		e.ReviewCount = s.ReviewCount
	}
	return e
}

// List returns the filtered directory: free-text query over org
// name/city/county/services plus normalized county equality, with rating
// summaries attached. Filtering is the in-memory predicate pass; the
// directory scale stays small.
func (h *LocationHandler) List(c *gin.Context) {
	all, err := h.locRepo.ListAll()
	if err != nil {
		log.Printf("[location] list failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	filtered := directory.FilterLocations(all, c.Query("q"), c.Query("county"))

	limit, offset := pagination(c, h.cfg.Directory.DefaultPageSize, h.cfg.Directory.MaxPageSize)
	total := len(filtered)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	page := filtered[offset:end]

	summaries, err := h.reviewRepo.RatingSummaries()
	if err != nil {
		log.Printf("[location] rating summaries failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	out := make([]locationEntry, len(page))
	for i, loc := range page {
		out[i] = entryFor(loc, summaries)
	}
	c.JSON(http.StatusOK, gin.H{"locations": out, "total": total})
}

// Get returns one location with its rating summary and, for signed-in
// viewers, whether they favorited it. Missing locations are a distinct
// not-found state.
func (h *LocationHandler) Get(c *gin.Context) {
	loc, err := h.locRepo.GetByID(paramID(c, "id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "location not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	summary, err := h.reviewRepo.SummaryForLocation(loc.ID)
	if err != nil {
		log.Printf("[location] summary failed: id=%d err=%v", loc.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	resp := gin.H{
		"location":          loc,
		"organization_name": loc.Organization.Name,
		"services":          loc.Organization.ServiceList(),
	}
	if summary != nil {
		resp["average_rating"] = summary.AverageRating
		resp["review_count"] = summary.ReviewCount
	} else {
		resp["review_count"] = 0
	}
	if userID := middleware.GetUserID(c); userID != 0 {
		if p, err := h.profileRepo.GetByUserID(userID); err == nil {
			fav, _ := h.favRepo.IsFavorite(p.ID, loc.ID)
			resp["is_favorited"] = fav
		}
	}
	c.JSON(http.StatusOK, resp)
}

// Nearby returns locations within radius_km of lat/lng, closest first.
// Locations without coordinates are skipped.
func (h *LocationHandler) Nearby(c *gin.Context) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.Query("lng"), 64)
	if latErr != nil || lngErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lng are required"})
		return
	}
	radius := h.cfg.Directory.NearbyRadiusKm
	if v, err := strconv.ParseFloat(c.Query("radius_km"), 64); err == nil && v > 0 {
		radius = v
	}
	all, err := h.locRepo.ListAll()
	if err != nil {
		log.Printf("[location] nearby failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	summaries, err := h.reviewRepo.RatingSummaries()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	delta := geo.BoundingDelta(radius)
	var out []locationEntry
	for _, loc := range all {
		if !loc.HasCoordinates() {
			continue
		}
		if *loc.Latitude < lat-delta || *loc.Latitude > lat+delta ||
			*loc.Longitude < lng-delta || *loc.Longitude > lng+delta {
			continue
		}
		d := geo.HaversineKm(lat, lng, *loc.Latitude, *loc.Longitude)
		if d > radius {
			continue
		}
		e := entryFor(loc, summaries)
		dist := d
		e.DistanceKm = &dist
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return *out[i].DistanceKm < *out[j].DistanceKm })
	c.JSON(http.StatusOK, gin.H{"locations": out})
}

// Counties lists the distinct normalized county names for the filter dropdown.
func (h *LocationHandler) Counties(c *gin.Context) {
	counties, err := h.locRepo.Counties()
	if err != nil {
		log.Printf("[location] counties failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"counties": counties})
}

type locationRequest struct {
	OrganizationID        uint     `json:"organization_id" binding:"required"`
	Street                string   `json:"street" binding:"required"`
	City                  string   `json:"city" binding:"required"`
	County                string   `json:"county"`
	State                 string   `json:"state"`
	PostalCode            string   `json:"postal_code" binding:"required"`
	Latitude              *float64 `json:"latitude"`
	Longitude             *float64 `json:"longitude"`
	ScheduleText          string   `json:"schedule_text"`
	AccessibilityFeatures string   `json:"accessibility_features"`
}

// Create is admin-only. The (organization, street, city, postal_code)
// uniqueness is the database's.
func (h *LocationHandler) Create(c *gin.Context) {
	var req locationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	loc := &models.Location{
		OrganizationID:        req.OrganizationID,
		Street:                req.Street,
		City:                  req.City,
		County:                req.County,
		State:                 req.State,
		PostalCode:            req.PostalCode,
		Latitude:              req.Latitude,
		Longitude:             req.Longitude,
		ScheduleText:          req.ScheduleText,
		AccessibilityFeatures: req.AccessibilityFeatures,
	}
	if err := h.locRepo.Create(loc); err != nil {
		log.Printf("[location] create failed: %v", err)
		c.JSON(http.StatusConflict, gin.H{"error": "location already exists or organization missing"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"location": loc})
}

func (h *LocationHandler) Update(c *gin.Context) {
	loc, err := h.locRepo.GetByID(paramID(c, "id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "location not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	var req locationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	loc.OrganizationID = req.OrganizationID
	loc.Street = req.Street
	loc.City = req.City
	loc.County = req.County
	loc.State = req.State
	loc.PostalCode = req.PostalCode
	loc.Latitude = req.Latitude
	loc.Longitude = req.Longitude
	loc.ScheduleText = req.ScheduleText
	loc.AccessibilityFeatures = req.AccessibilityFeatures
	if err := h.locRepo.Update(loc); err != nil {
		log.Printf("[location] update failed: id=%d err=%v", loc.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"location": loc})
}

// Delete cascades to the location's favorites and reviews.
func (h *LocationHandler) Delete(c *gin.Context) {
	id := paramID(c, "id")
	if _, err := h.locRepo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "location not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	if err := h.locRepo.Delete(id); err != nil {
		log.Printf("[location] delete failed: id=%d err=%v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
