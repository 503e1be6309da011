package repository

import (
	"carefinder/internal/directory"
	"carefinder/internal/domain"
	"carefinder/internal/models"

	"gorm.io/gorm"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(rv *models.Review) error {
	return r.db.Create(rv).Error
}

func (r *ReviewRepository) Save(rv *models.Review) error {
	return r.db.Save(rv).Error
}

func (r *ReviewRepository) GetByID(id uint) (*models.Review, error) {
	var rv models.Review
	if err := r.db.Preload("Caregiver").First(&rv, id).Error; err != nil {
		return nil, err
	}
	return &rv, nil
}

// GetByCaregiverAndLocation finds the single review for the pair, if any.
func (r *ReviewRepository) GetByCaregiverAndLocation(caregiverID, locationID uint) (*models.Review, error) {
	var rv models.Review
	if err := r.db.Where("caregiver_id = ? AND location_id = ?", caregiverID, locationID).First(&rv).Error; err != nil {
		return nil, err
	}
	return &rv, nil
}

// ListPublishedByLocationID returns published reviews for a location,
// newest first, with the author profile preloaded.
func (r *ReviewRepository) ListPublishedByLocationID(locationID uint, limit, offset int) ([]models.Review, error) {
	var list []models.Review
	err := r.db.Where("location_id = ? AND status = ?", locationID, domain.ReviewStatusPublished).
		Preload("Caregiver").
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}

func (r *ReviewRepository) ListByCaregiverID(caregiverID uint) ([]models.Review, error) {
	var list []models.Review
	err := r.db.Where("caregiver_id = ?", caregiverID).Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *ReviewRepository) ListFlagged(limit, offset int) ([]models.Review, error) {
	var list []models.Review
	err := r.db.Where("flagged = ?", true).Preload("Caregiver").
		Order("updated_at DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}

func (r *ReviewRepository) CountByLocationID(locationID uint) (int64, error) {
	var c int64
	err := r.db.Model(&models.Review{}).Where("location_id = ?", locationID).Count(&c).Error
	return c, err
}

// Delete removes the review; its helpfulness votes cascade.
func (r *ReviewRepository) Delete(id uint) error {
	return r.db.Unscoped().Delete(&models.Review{}, id).Error
}

// RatingSummaries computes per-location count and mean over published
// reviews. It fetches the source rows and reduces through the same
// aggregator the handlers use, so both paths round identically.
func (r *ReviewRepository) RatingSummaries() (map[uint]directory.RatingSummary, error) {
	var rows []models.Review
	if err := r.db.Select("location_id", "rating").
		Where("status = ?", domain.ReviewStatusPublished).Find(&rows).Error; err != nil {
		return nil, err
	}
	return directory.Aggregate(rows), nil
}

// SummaryForLocation returns the aggregate for one location, or nil when it
// has no published reviews.
func (r *ReviewRepository) SummaryForLocation(locationID uint) (*directory.RatingSummary, error) {
	var rows []models.Review
	if err := r.db.Select("location_id", "rating").
		Where("location_id = ? AND status = ?", locationID, domain.ReviewStatusPublished).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	agg := directory.Aggregate(rows)
	if s, ok := agg[locationID]; ok {
		return &s, nil
	}
	return nil, nil
}
