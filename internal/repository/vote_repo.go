package repository

import (
	"carefinder/internal/models"

	"gorm.io/gorm"
)

type VoteRepository struct {
	db *gorm.DB
}

func NewVoteRepository(db *gorm.DB) *VoteRepository {
	return &VoteRepository{db: db}
}

func (r *VoteRepository) Add(caregiverID, reviewID uint) error {
	return r.db.Create(&models.ReviewVote{CaregiverID: caregiverID, ReviewID: reviewID, Helpful: true}).Error
}

func (r *VoteRepository) Remove(caregiverID, reviewID uint) error {
	return r.db.Where("caregiver_id = ? AND review_id = ?", caregiverID, reviewID).Delete(&models.ReviewVote{}).Error
}

func (r *VoteRepository) Has(caregiverID, reviewID uint) (bool, error) {
	var c int64
	err := r.db.Model(&models.ReviewVote{}).Where("caregiver_id = ? AND review_id = ?", caregiverID, reviewID).Count(&c).Error
	return c > 0, err
}

// ListByCaregiverID returns the viewer's votes for membership checks against
// a fetched review page.
func (r *VoteRepository) ListByCaregiverID(caregiverID uint) ([]models.ReviewVote, error) {
	var list []models.ReviewVote
	err := r.db.Where("caregiver_id = ?", caregiverID).Find(&list).Error
	return list, err
}

// HelpfulCounts returns vote counts keyed by review ID.
func (r *VoteRepository) HelpfulCounts(reviewIDs []uint) (map[uint]int64, error) {
	out := make(map[uint]int64, len(reviewIDs))
	if len(reviewIDs) == 0 {
		return out, nil
	}
	var rows []struct {
		ReviewID uint
		Total    int64
	}
	err := r.db.Model(&models.ReviewVote{}).
		Select("review_id, COUNT(*) as total").
		Where("review_id IN ?", reviewIDs).
		Group("review_id").Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.ReviewID] = row.Total
	}
	return out, nil
}
