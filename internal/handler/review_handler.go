package handler

import (
	"errors"
	"log"
	"net/http"
	"time"

	"carefinder/internal/directory"
	"carefinder/internal/domain"
	"carefinder/internal/middleware"
	"carefinder/internal/models"
	"carefinder/internal/repository"
	"carefinder/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ReviewHandler struct {
	svc         *service.ReviewService
	reviewRepo  *repository.ReviewRepository
	voteRepo    *repository.VoteRepository
	locRepo     *repository.LocationRepository
	profileRepo *repository.ProfileRepository
}

func NewReviewHandler(svc *service.ReviewService, reviewRepo *repository.ReviewRepository, voteRepo *repository.VoteRepository, locRepo *repository.LocationRepository, profileRepo *repository.ProfileRepository) *ReviewHandler {
	return &ReviewHandler{svc: svc, reviewRepo: reviewRepo, voteRepo: voteRepo, locRepo: locRepo, profileRepo: profileRepo}
}

// reviewEntry is the viewer-facing shape of a review. It carries the author
// display name only; the caregiver profile (account email included) never
// serializes, and ANONYMOUS reviews omit the caregiver id as well.
type reviewEntry struct {
	ID            uint              `json:"id"`
	LocationID    uint              `json:"location_id"`
	CaregiverID   uint              `json:"caregiver_id,omitempty"`
	ReviewType    string            `json:"review_type"`
	Rating        int               `json:"rating"`
	Title         string            `json:"title"`
	Body          string            `json:"body"`
	SubRatings    datatypes.JSONMap `json:"sub_ratings"`
	ActionsTaken  string            `json:"actions_taken"`
	ContextTags   string            `json:"context_tags"`
	Visibility    string            `json:"visibility"`
	VerifiedVisit bool              `json:"verified_visit"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
	AuthorName    string            `json:"author_name"`
	HelpfulCount  int64             `json:"helpful_count"`
	ViewerVoted   bool              `json:"viewer_voted"`
}

func newReviewEntry(rv models.Review) reviewEntry {
	e := reviewEntry{
		ID:            rv.ID,
		LocationID:    rv.LocationID,
		CaregiverID:   rv.CaregiverID,
		ReviewType:    rv.ReviewType,
		Rating:        rv.Rating,
		Title:         rv.Title,
		Body:          rv.Body,
		SubRatings:    rv.SubRatings,
		ActionsTaken:  rv.ActionsTaken,
		ContextTags:   rv.ContextTags,
		Visibility:    rv.Visibility,
		VerifiedVisit: rv.VerifiedVisit,
		CreatedAt:     rv.CreatedAt,
		UpdatedAt:     rv.UpdatedAt,
		AuthorName:    rv.Caregiver.DisplayName,
	}
	if rv.Visibility == domain.VisibilityAnonymous {
		e.CaregiverID = 0
		e.AuthorName = "Anonymous"
	}
	return e
}

// ListForLocation returns the published reviews of a location with helpful
// counts and, for signed-in viewers, their own vote membership. Anonymous
// reviews hide the author name.
func (h *ReviewHandler) ListForLocation(c *gin.Context) {
	locationID := paramID(c, "id")
	if _, err := h.locRepo.GetByID(locationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "location not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	limit, offset := pagination(c, 20, 100)
	reviews, err := h.reviewRepo.ListPublishedByLocationID(locationID, limit, offset)
	if err != nil {
		log.Printf("[review] list failed: location=%d err=%v", locationID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	ids := make([]uint, len(reviews))
	for i := range reviews {
		ids[i] = reviews[i].ID
	}
	counts, err := h.voteRepo.HelpfulCounts(ids)
	if err != nil {
		log.Printf("[review] helpful counts failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	var viewerVotes []models.ReviewVote
	var viewerID uint
	if userID := middleware.GetUserID(c); userID != 0 {
		if p, err := h.profileRepo.GetByUserID(userID); err == nil {
			viewerID = p.ID
			viewerVotes, _ = h.voteRepo.ListByCaregiverID(p.ID)
		}
	}
	out := make([]reviewEntry, len(reviews))
	for i, rv := range reviews {
		e := newReviewEntry(rv)
		e.HelpfulCount = counts[rv.ID]
		e.ViewerVoted = directory.HasVoted(viewerVotes, rv.ID, viewerID)
		out[i] = e
	}
	c.JSON(http.StatusOK, gin.H{"reviews": out})
}

// Submit validates and upserts the viewer's review for the location. An
// existing review for the pair is replaced in place.
func (h *ReviewHandler) Submit(c *gin.Context) {
	p, ok := currentProfile(c, h.profileRepo)
	if !ok {
		return
	}
	locationID := paramID(c, "id")
	if _, err := h.locRepo.GetByID(locationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "location not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	var draft service.ReviewDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rv, created, err := h.svc.Submit(p.ID, locationID, &draft)
	if err != nil {
		switch err {
		case service.ErrTypeRequired, service.ErrTypeUnknown, service.ErrNarrativeRequired,
			service.ErrNarrativeTooLong, service.ErrRatingRange, service.ErrSubRatingRange,
			service.ErrVisibilityUnknown:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			log.Printf("[review] submit failed: caregiver=%d location=%d err=%v", p.ID, locationID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "submission failed, try again"})
		}
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"review": rv})
}

// Delete removes the viewer's own review.
func (h *ReviewHandler) Delete(c *gin.Context) {
	p, ok := currentProfile(c, h.profileRepo)
	if !ok {
		return
	}
	err := h.svc.Delete(p.ID, paramID(c, "id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "review not found"})
			return
		}
		if err == service.ErrNotOwner {
			c.JSON(http.StatusForbidden, gin.H{"error": "not your review"})
			return
		}
		log.Printf("[review] delete failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Vote marks a review helpful for the viewer. Adding twice is a no-op.
func (h *ReviewHandler) Vote(c *gin.Context) {
	p, ok := currentProfile(c, h.profileRepo)
	if !ok {
		return
	}
	reviewID := paramID(c, "id")
	if _, err := h.reviewRepo.GetByID(reviewID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "review not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	has, _ := h.voteRepo.Has(p.ID, reviewID)
	if has {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}
	if err := h.voteRepo.Add(p.ID, reviewID); err != nil {
		// unique index absorbs the duplicate-insert race between two rapid clicks
		log.Printf("[review] vote failed: caregiver=%d review=%d err=%v", p.ID, reviewID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "vote failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "ok"})
}

// Unvote removes the viewer's helpful vote.
func (h *ReviewHandler) Unvote(c *gin.Context) {
	p, ok := currentProfile(c, h.profileRepo)
	if !ok {
		return
	}
	if err := h.voteRepo.Remove(p.ID, paramID(c, "id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "remove failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
