package service

import (
	"strings"
	"testing"

	"carefinder/internal/domain"
	"carefinder/internal/models"
	"carefinder/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newReviewTestEnv(t *testing.T) (*ReviewService, *gorm.DB, *models.CaregiverProfile, *models.Location) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.CaregiverProfile{},
		&models.Organization{},
		&models.Location{},
		&models.Review{},
		&models.ReviewVote{},
	))
	u := &models.User{Email: "carer@example.com", Username: "carer", Role: domain.RoleCaregiver}
	require.NoError(t, db.Create(u).Error)
	p := &models.CaregiverProfile{UserID: u.ID, DisplayName: "carer", Email: u.Email}
	require.NoError(t, db.Create(p).Error)
	org := &models.Organization{Name: "Sunrise Day Services"}
	require.NoError(t, db.Create(org).Error)
	loc := &models.Location{OrganizationID: org.ID, Street: "12 Main St", City: "Buffalo", PostalCode: "14201"}
	require.NoError(t, db.Create(loc).Error)
	return NewReviewService(repository.NewReviewRepository(db)), db, p, loc
}

func validDraft() *ReviewDraft {
	return &ReviewDraft{
		ReviewType: domain.ReviewTypeGeneral,
		Title:      "Solid program",
		Narrative:  "Staff were attentive and the activities varied.",
		Rating:     4,
		SubRatings: map[string]int{"dignity": 5, "activities": 4, "safety": 4},
		Visibility: domain.VisibilityPublic,
	}
}

func reviewCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var c int64
	require.NoError(t, db.Model(&models.Review{}).Count(&c).Error)
	return c
}

func TestSubmitValidationRejectsBeforeAnyWrite(t *testing.T) {
	svc, db, p, loc := newReviewTestEnv(t)

	tests := []struct {
		name    string
		mutate  func(*ReviewDraft)
		wantErr error
	}{
		{"missing type", func(d *ReviewDraft) { d.ReviewType = "" }, ErrTypeRequired},
		{"unknown type", func(d *ReviewDraft) { d.ReviewType = "RANT" }, ErrTypeUnknown},
		{"missing narrative", func(d *ReviewDraft) { d.Narrative = "   " }, ErrNarrativeRequired},
		{"narrative too long", func(d *ReviewDraft) { d.Narrative = strings.Repeat("x", domain.MaxNarrativeLen+1) }, ErrNarrativeTooLong},
		{"rating zero", func(d *ReviewDraft) { d.Rating = 0 }, ErrRatingRange},
		{"rating high", func(d *ReviewDraft) { d.Rating = 6 }, ErrRatingRange},
		{"sub-rating range", func(d *ReviewDraft) { d.SubRatings["safety"] = 9 }, ErrSubRatingRange},
		{"unknown visibility", func(d *ReviewDraft) { d.Visibility = "FRIENDS" }, ErrVisibilityUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			tt.mutate(d)
			_, _, err := svc.Submit(p.ID, loc.ID, d)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, int64(0), reviewCount(t, db), "no write may happen on validation failure")
		})
	}
}

func TestSubmitTypeRequiredRegardlessOfNarrative(t *testing.T) {
	svc, db, p, loc := newReviewTestEnv(t)
	d := validDraft()
	d.ReviewType = ""
	_, _, err := svc.Submit(p.ID, loc.ID, d)
	assert.ErrorIs(t, err, ErrTypeRequired)
	assert.Equal(t, int64(0), reviewCount(t, db))
}

func TestSubmitCreatesNewReview(t *testing.T) {
	svc, db, p, loc := newReviewTestEnv(t)
	rv, created, err := svc.Submit(p.ID, loc.ID, validDraft())
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, domain.ReviewStatusPublished, rv.Status)
	assert.False(t, rv.Flagged)
	assert.Equal(t, int64(1), reviewCount(t, db))
}

func TestSubmitReplacesExistingInPlace(t *testing.T) {
	svc, db, p, loc := newReviewTestEnv(t)

	first, created, err := svc.Submit(p.ID, loc.ID, validDraft())
	require.NoError(t, err)
	require.True(t, created)

	d := validDraft()
	d.Rating = 2
	d.Narrative = "Quality dropped over the last months."
	second, created, err := svc.Submit(p.ID, loc.ID, d)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 2, second.Rating)

	// review count for the pair never grows past one
	assert.Equal(t, int64(1), reviewCount(t, db))
}

func TestSubmitDropsSubRatingsForNonGeneralTypes(t *testing.T) {
	svc, _, p, loc := newReviewTestEnv(t)
	d := validDraft()
	d.ReviewType = domain.ReviewTypeIncident
	rv, _, err := svc.Submit(p.ID, loc.ID, d)
	require.NoError(t, err)
	assert.Empty(t, rv.SubRatings)
}

func TestSubmitFlagsBlockedContentToPending(t *testing.T) {
	svc, _, p, loc := newReviewTestEnv(t)
	d := validDraft()
	d.Narrative = "Visit https://example.com for my full story."
	rv, _, err := svc.Submit(p.ID, loc.ID, d)
	require.NoError(t, err)
	assert.True(t, rv.Flagged)
	assert.Equal(t, domain.ReviewStatusPending, rv.Status)
}

func TestSubmitDefaultsVisibilityToPublic(t *testing.T) {
	svc, _, p, loc := newReviewTestEnv(t)
	d := validDraft()
	d.Visibility = ""
	rv, _, err := svc.Submit(p.ID, loc.ID, d)
	require.NoError(t, err)
	assert.Equal(t, domain.VisibilityPublic, rv.Visibility)
}

func TestDeleteOwnershipCheck(t *testing.T) {
	svc, db, p, loc := newReviewTestEnv(t)
	rv, _, err := svc.Submit(p.ID, loc.ID, validDraft())
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(p.ID+1, rv.ID), ErrNotOwner)
	assert.Equal(t, int64(1), reviewCount(t, db))

	require.NoError(t, svc.Delete(p.ID, rv.ID))
	assert.Equal(t, int64(0), reviewCount(t, db))
}

func TestSanitizeNarrative(t *testing.T) {
	assert.Equal(t, "a b c", sanitizeNarrative("  a\tb\n\nc  "))
	assert.Equal(t, "plain", sanitizeNarrative("plain"))
	assert.Equal(t, "", sanitizeNarrative("   "))
}
