package repository

import (
	"time"

	"carefinder/internal/models"

	"gorm.io/gorm"
)

type FavoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

func (r *FavoriteRepository) Add(caregiverID, locationID uint) error {
	return r.db.Create(&models.Favorite{CaregiverID: caregiverID, LocationID: locationID}).Error
}

func (r *FavoriteRepository) Remove(caregiverID, locationID uint) error {
	return r.db.Unscoped().Where("caregiver_id = ? AND location_id = ?", caregiverID, locationID).Delete(&models.Favorite{}).Error
}

func (r *FavoriteRepository) Get(caregiverID, locationID uint) (*models.Favorite, error) {
	var f models.Favorite
	if err := r.db.Where("caregiver_id = ? AND location_id = ?", caregiverID, locationID).First(&f).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FavoriteRepository) IsFavorite(caregiverID, locationID uint) (bool, error) {
	var c int64
	err := r.db.Model(&models.Favorite{}).Where("caregiver_id = ? AND location_id = ?", caregiverID, locationID).Count(&c).Error
	return c > 0, err
}

func (r *FavoriteRepository) ListByCaregiverID(caregiverID uint, limit, offset int) ([]models.Favorite, error) {
	var list []models.Favorite
	err := r.db.Where("caregiver_id = ?", caregiverID).
		Preload("Location").Preload("Location.Organization").
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}

// SaveVisitState updates notes and the visited flag. VisitDate is derived:
// set to now when visited transitions to true, cleared when false.
func (r *FavoriteRepository) SaveVisitState(f *models.Favorite, notes string, visited bool) error {
	if visited && !f.Visited {
		now := time.Now()
		f.VisitDate = &now
	} else if !visited {
		f.VisitDate = nil
	}
	f.Notes = notes
	f.Visited = visited
	return r.db.Model(f).Select("Notes", "Visited", "VisitDate").Updates(f).Error
}

func (r *FavoriteRepository) CountByLocationID(locationID uint) (int64, error) {
	var c int64
	err := r.db.Model(&models.Favorite{}).Where("location_id = ?", locationID).Count(&c).Error
	return c, err
}
