package directory

import "carefinder/internal/models"

// IsFavorited reports whether the favorites list contains the location.
// Linear scan; favorites-per-viewer stays small.
func IsFavorited(favorites []models.Favorite, locationID uint) bool {
	for i := range favorites {
		if favorites[i].LocationID == locationID {
			return true
		}
	}
	return false
}

// HasVoted reports whether the caregiver already marked the review helpful.
func HasVoted(votes []models.ReviewVote, reviewID, caregiverID uint) bool {
	for i := range votes {
		if votes[i].ReviewID == reviewID && votes[i].CaregiverID == caregiverID {
			return true
		}
	}
	return false
}
