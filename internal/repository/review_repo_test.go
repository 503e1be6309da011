package repository

import (
	"testing"

	"carefinder/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedCaregiver(t *testing.T, db *gorm.DB, email string) *models.CaregiverProfile {
	t.Helper()
	u := &models.User{Email: email, Username: email, Role: "CAREGIVER"}
	require.NoError(t, db.Create(u).Error)
	p := &models.CaregiverProfile{UserID: u.ID, DisplayName: email, Email: email}
	require.NoError(t, db.Create(p).Error)
	return p
}

func TestRatingSummariesOverPublishedReviews(t *testing.T) {
	db := newTestDB(t)
	p, loc := seedDirectory(t, db)
	p2 := seedCaregiver(t, db, "second@example.com")
	p3 := seedCaregiver(t, db, "third@example.com")
	repo := NewReviewRepository(db)

	for _, rv := range []models.Review{
		{CaregiverID: p.ID, LocationID: loc.ID, ReviewType: "GENERAL", Rating: 4, Body: "a", Visibility: "PUBLIC", Status: "PUBLISHED"},
		{CaregiverID: p2.ID, LocationID: loc.ID, ReviewType: "GENERAL", Rating: 5, Body: "b", Visibility: "PUBLIC", Status: "PUBLISHED"},
		{CaregiverID: p3.ID, LocationID: loc.ID, ReviewType: "GENERAL", Rating: 3, Body: "c", Visibility: "PUBLIC", Status: "PUBLISHED"},
	} {
		rv := rv
		require.NoError(t, repo.Create(&rv))
	}

	summaries, err := repo.RatingSummaries()
	require.NoError(t, err)
	require.Contains(t, summaries, loc.ID)
	assert.Equal(t, 4.0, summaries[loc.ID].AverageRating)
	assert.Equal(t, 3, summaries[loc.ID].ReviewCount)

	one, err := repo.SummaryForLocation(loc.ID)
	require.NoError(t, err)
	require.NotNil(t, one)
	assert.Equal(t, 4.0, one.AverageRating)
}

func TestSummaryAbsentForUnreviewedLocation(t *testing.T) {
	db := newTestDB(t)
	_, loc := seedDirectory(t, db)
	repo := NewReviewRepository(db)

	summaries, err := repo.RatingSummaries()
	require.NoError(t, err)
	assert.NotContains(t, summaries, loc.ID)

	one, err := repo.SummaryForLocation(loc.ID)
	require.NoError(t, err)
	assert.Nil(t, one)
}

func TestPendingReviewsExcludedFromSummaryAndListing(t *testing.T) {
	db := newTestDB(t)
	p, loc := seedDirectory(t, db)
	repo := NewReviewRepository(db)

	require.NoError(t, repo.Create(&models.Review{
		CaregiverID: p.ID, LocationID: loc.ID, ReviewType: "GENERAL",
		Rating: 1, Body: "spam", Flagged: true, Visibility: "PUBLIC", Status: "PENDING",
	}))

	summaries, err := repo.RatingSummaries()
	require.NoError(t, err)
	assert.NotContains(t, summaries, loc.ID)

	list, err := repo.ListPublishedByLocationID(loc.ID, 20, 0)
	require.NoError(t, err)
	assert.Empty(t, list)

	flagged, err := repo.ListFlagged(20, 0)
	require.NoError(t, err)
	assert.Len(t, flagged, 1)
}

func TestReviewUniquePerCaregiverLocation(t *testing.T) {
	db := newTestDB(t)
	p, loc := seedDirectory(t, db)
	repo := NewReviewRepository(db)

	require.NoError(t, repo.Create(&models.Review{
		CaregiverID: p.ID, LocationID: loc.ID, ReviewType: "GENERAL",
		Rating: 4, Body: "a", Visibility: "PUBLIC", Status: "PUBLISHED",
	}))
	assert.Error(t, repo.Create(&models.Review{
		CaregiverID: p.ID, LocationID: loc.ID, ReviewType: "GENERAL",
		Rating: 5, Body: "b", Visibility: "PUBLIC", Status: "PUBLISHED",
	}))
}
