package repository

import (
	"testing"

	"carefinder/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserDeleteCascadesOwnedRows(t *testing.T) {
	db := newTestDB(t)
	p, loc := seedDirectory(t, db)
	repo := NewUserRepository(db)

	require.NoError(t, NewFavoriteRepository(db).Add(p.ID, loc.ID))
	require.NoError(t, db.Create(&models.Review{
		CaregiverID: p.ID, LocationID: loc.ID, ReviewType: "GENERAL",
		Rating: 5, Body: "good", Visibility: "PUBLIC", Status: "PUBLISHED",
	}).Error)
	var rv models.Review
	require.NoError(t, db.First(&rv).Error)
	require.NoError(t, NewVoteRepository(db).Add(p.ID, rv.ID))

	require.NoError(t, repo.Delete(p.UserID))

	var profiles, favs, reviews, votes int64
	require.NoError(t, db.Model(&models.CaregiverProfile{}).Count(&profiles).Error)
	require.NoError(t, db.Model(&models.Favorite{}).Count(&favs).Error)
	require.NoError(t, db.Model(&models.Review{}).Count(&reviews).Error)
	require.NoError(t, db.Model(&models.ReviewVote{}).Count(&votes).Error)
	assert.Equal(t, int64(0), profiles)
	assert.Equal(t, int64(0), favs)
	assert.Equal(t, int64(0), reviews)
	assert.Equal(t, int64(0), votes)
}
