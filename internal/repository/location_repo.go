package repository

import (
	"carefinder/internal/directory"
	"carefinder/internal/models"

	"gorm.io/gorm"
)

type LocationRepository struct {
	db *gorm.DB
}

func NewLocationRepository(db *gorm.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

func (r *LocationRepository) Create(l *models.Location) error {
	return r.db.Create(l).Error
}

func (r *LocationRepository) GetByID(id uint) (*models.Location, error) {
	var l models.Location
	if err := r.db.Preload("Organization").First(&l, id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

// ListAll returns every location with its organization preloaded. The
// directory stays small enough (hundreds of sites) that filtering happens
// in-memory via directory.FilterLocations.
func (r *LocationRepository) ListAll() ([]models.Location, error) {
	var list []models.Location
	err := r.db.Preload("Organization").Order("id ASC").Find(&list).Error
	return list, err
}

func (r *LocationRepository) ListByOrganizationID(orgID uint) ([]models.Location, error) {
	var list []models.Location
	err := r.db.Where("organization_id = ?", orgID).Order("id ASC").Find(&list).Error
	return list, err
}

// Counties returns the distinct normalized county names present in the
// directory, for the county filter dropdown.
func (r *LocationRepository) Counties() ([]string, error) {
	var raw []string
	if err := r.db.Model(&models.Location{}).Distinct().Order("county ASC").Pluck("county", &raw).Error; err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(raw))
	out := make([]string, 0, len(raw))
	for _, c := range raw {
		n := directory.NormalizeCounty(c)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out, nil
}

func (r *LocationRepository) Update(l *models.Location) error {
	return r.db.Save(l).Error
}

// Delete removes the location; favorites and reviews cascade with it.
func (r *LocationRepository) Delete(id uint) error {
	return r.db.Unscoped().Delete(&models.Location{}, id).Error
}
