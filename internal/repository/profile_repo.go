package repository

import (
	"carefinder/internal/models"

	"gorm.io/gorm"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) Create(p *models.CaregiverProfile) error {
	return r.db.Create(p).Error
}

func (r *ProfileRepository) GetByID(id uint) (*models.CaregiverProfile, error) {
	var p models.CaregiverProfile
	if err := r.db.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProfileRepository) GetByUserID(userID uint) (*models.CaregiverProfile, error) {
	var p models.CaregiverProfile
	if err := r.db.Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProfileRepository) Update(p *models.CaregiverProfile) error {
	return r.db.Save(p).Error
}
