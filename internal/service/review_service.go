package service

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"carefinder/internal/domain"
	"carefinder/internal/models"
	"carefinder/internal/repository"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrTypeRequired      = errors.New("review type is required")
	ErrTypeUnknown       = errors.New("unknown review type")
	ErrNarrativeRequired = errors.New("narrative is required")
	ErrNarrativeTooLong  = fmt.Errorf("narrative exceeds %d characters", domain.MaxNarrativeLen)
	ErrRatingRange       = errors.New("rating must be between 1 and 5")
	ErrSubRatingRange    = errors.New("sub-ratings must be between 1 and 5")
	ErrVisibilityUnknown = errors.New("unknown visibility")
	ErrNotOwner          = errors.New("review does not belong to caregiver")
)

// ReviewDraft carries everything the multi-step submission form collects.
// All sections are editable independently; validation only happens at
// submit time, as one atomic precondition set.
type ReviewDraft struct {
	ReviewType    string         `json:"review_type"`
	Title         string         `json:"title"`
	Narrative     string         `json:"narrative"`
	Rating        int            `json:"rating"`
	SubRatings    map[string]int `json:"sub_ratings"` // only honored for GENERAL reviews
	ActionsTaken  []string       `json:"actions_taken"`
	ContextTags   []string       `json:"context_tags"`
	Visibility    string         `json:"visibility"`
	VerifiedVisit bool           `json:"verified_visit"`
}

type ReviewService struct {
	reviews *repository.ReviewRepository
}

func NewReviewService(reviews *repository.ReviewRepository) *ReviewService {
	return &ReviewService{reviews: reviews}
}

// Validate checks the whole draft before any write. The first failing
// precondition is reported; nothing is persisted on failure.
func (s *ReviewService) Validate(d *ReviewDraft) error {
	if strings.TrimSpace(d.ReviewType) == "" {
		return ErrTypeRequired
	}
	switch d.ReviewType {
	case domain.ReviewTypeGeneral, domain.ReviewTypeIncident, domain.ReviewTypeStaff:
	default:
		return ErrTypeUnknown
	}
	if strings.TrimSpace(d.Narrative) == "" {
		return ErrNarrativeRequired
	}
	if len([]rune(d.Narrative)) > domain.MaxNarrativeLen {
		return ErrNarrativeTooLong
	}
	if d.Rating < 1 || d.Rating > 5 {
		return ErrRatingRange
	}
	if d.ReviewType == domain.ReviewTypeGeneral {
		for _, v := range d.SubRatings {
			if v < 1 || v > 5 {
				return ErrSubRatingRange
			}
		}
	}
	if d.Visibility == "" {
		d.Visibility = domain.VisibilityPublic
	}
	switch d.Visibility {
	case domain.VisibilityPublic, domain.VisibilityAnonymous:
	default:
		return ErrVisibilityUnknown
	}
	return nil
}

// Submit validates the draft and performs one idempotent upsert keyed on
// (caregiver, location): the existing review is replaced in place, otherwise
// a new row is created. Returns the stored review and whether it was created.
func (s *ReviewService) Submit(caregiverID, locationID uint, d *ReviewDraft) (*models.Review, bool, error) {
	if err := s.Validate(d); err != nil {
		return nil, false, err
	}

	sanitized := sanitizeNarrative(d.Narrative)
	flagged := containsBlockedTerm(sanitized) || containsBlockedTerm(d.Title)
	status := domain.ReviewStatusPublished
	if flagged {
		status = domain.ReviewStatusPending
	}

	subRatings := datatypes.JSONMap{}
	if d.ReviewType == domain.ReviewTypeGeneral {
		for k, v := range d.SubRatings {
			subRatings[k] = v
		}
	}

	existing, err := s.reviews.GetByCaregiverAndLocation(caregiverID, locationID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	if existing != nil {
		existing.ReviewType = d.ReviewType
		existing.Rating = d.Rating
		existing.Title = strings.TrimSpace(d.Title)
		existing.Body = d.Narrative
		existing.SubRatings = subRatings
		existing.ActionsTaken = joinTags(d.ActionsTaken)
		existing.ContextTags = joinTags(d.ContextTags)
		existing.Visibility = d.Visibility
		existing.VerifiedVisit = d.VerifiedVisit
		existing.SanitizedBody = sanitized
		existing.Flagged = flagged
		existing.Status = status
		if err := s.reviews.Save(existing); err != nil {
			return nil, false, err
		}
		return existing, false, nil
	}

	rv := &models.Review{
		CaregiverID:   caregiverID,
		LocationID:    locationID,
		ReviewType:    d.ReviewType,
		Rating:        d.Rating,
		Title:         strings.TrimSpace(d.Title),
		Body:          d.Narrative,
		SubRatings:    subRatings,
		ActionsTaken:  joinTags(d.ActionsTaken),
		ContextTags:   joinTags(d.ContextTags),
		Visibility:    d.Visibility,
		VerifiedVisit: d.VerifiedVisit,
		SanitizedBody: sanitized,
		Flagged:       flagged,
		Status:        status,
	}
	if err := s.reviews.Create(rv); err != nil {
		return nil, false, err
	}
	return rv, true, nil
}

// Delete removes the caregiver's own review.
func (s *ReviewService) Delete(caregiverID, reviewID uint) error {
	rv, err := s.reviews.GetByID(reviewID)
	if err != nil {
		return err
	}
	if rv.CaregiverID != caregiverID {
		return ErrNotOwner
	}
	return s.reviews.Delete(reviewID)
}

// sanitizeNarrative trims the text, drops control characters and collapses
// runs of whitespace into single spaces.
func sanitizeNarrative(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range strings.TrimSpace(s) {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			space = true
			continue
		}
		if space && b.Len() > 0 {
			b.WriteByte(' ')
		}
		space = false
		b.WriteRune(r)
	}
	return b.String()
}

// blockedTerms gate publication; matches push the review to PENDING for
// admin moderation rather than rejecting it.
var blockedTerms = []string{"spam", "http://", "https://"}

func containsBlockedTerm(s string) bool {
	low := strings.ToLower(s)
	for _, t := range blockedTerms {
		if strings.Contains(low, t) {
			return true
		}
	}
	return false
}

func joinTags(tags []string) string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if s := strings.TrimSpace(t); s != "" {
			out = append(out, s)
		}
	}
	return strings.Join(out, ",")
}
