package directory

import (
	"testing"

	"carefinder/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestAggregate(t *testing.T) {
	reviews := []models.Review{
		{LocationID: 1, Rating: 4},
		{LocationID: 1, Rating: 5},
		{LocationID: 1, Rating: 3},
		{LocationID: 2, Rating: 2},
	}
	got := Aggregate(reviews)
	assert.Len(t, got, 2)
	assert.Equal(t, 4.0, got[1].AverageRating)
	assert.Equal(t, 3, got[1].ReviewCount)
	assert.Equal(t, 2.0, got[2].AverageRating)
	assert.Equal(t, 1, got[2].ReviewCount)
}

func TestAggregateRoundsHalfUp(t *testing.T) {
	// 1+2+2+2 = 7/4 = 1.75 -> 1.8
	got := Aggregate([]models.Review{
		{LocationID: 7, Rating: 1},
		{LocationID: 7, Rating: 2},
		{LocationID: 7, Rating: 2},
		{LocationID: 7, Rating: 2},
	})
	assert.Equal(t, 1.8, got[7].AverageRating)

	// 4+5 = 9/2 = 4.5 stays 4.5
	got = Aggregate([]models.Review{
		{LocationID: 8, Rating: 4},
		{LocationID: 8, Rating: 5},
	})
	assert.Equal(t, 4.5, got[8].AverageRating)

	// 8/3 = 2.666... -> 2.7
	got = Aggregate([]models.Review{
		{LocationID: 9, Rating: 3},
		{LocationID: 9, Rating: 3},
		{LocationID: 9, Rating: 2},
	})
	assert.Equal(t, 2.7, got[9].AverageRating)
}

func TestAggregateEmptyInput(t *testing.T) {
	got := Aggregate(nil)
	assert.Empty(t, got)

	// absence, not a zero entry
	_, ok := got[1]
	assert.False(t, ok)
}

func TestMembership(t *testing.T) {
	favs := []models.Favorite{
		{CaregiverID: 1, LocationID: 10},
		{CaregiverID: 1, LocationID: 20},
	}
	assert.True(t, IsFavorited(favs, 10))
	assert.False(t, IsFavorited(favs, 30))
	assert.False(t, IsFavorited(nil, 10))

	votes := []models.ReviewVote{
		{CaregiverID: 1, ReviewID: 100},
		{CaregiverID: 2, ReviewID: 100},
	}
	assert.True(t, HasVoted(votes, 100, 1))
	assert.False(t, HasVoted(votes, 100, 3))
	assert.False(t, HasVoted(votes, 200, 1))
	assert.False(t, HasVoted(nil, 100, 1))
}
