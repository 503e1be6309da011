package repository

import (
	"strings"

	"carefinder/internal/models"

	"gorm.io/gorm"
)

type OrganizationRepository struct {
	db *gorm.DB
}

func NewOrganizationRepository(db *gorm.DB) *OrganizationRepository {
	return &OrganizationRepository{db: db}
}

func (r *OrganizationRepository) Create(o *models.Organization) error {
	return r.db.Create(o).Error
}

func (r *OrganizationRepository) GetByID(id uint) (*models.Organization, error) {
	var o models.Organization
	if err := r.db.Preload("Locations").First(&o, id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrganizationRepository) GetByName(name string) (*models.Organization, error) {
	var o models.Organization
	if err := r.db.Where("name = ?", name).First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrganizationRepository) List(query string, limit, offset int) ([]models.Organization, error) {
	var list []models.Organization
	q := r.db.Order("name ASC").Limit(limit).Offset(offset)
	if query != "" {
		like := "%" + strings.ToLower(query) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(services) LIKE ?", like, like)
	}
	err := q.Find(&list).Error
	return list, err
}

func (r *OrganizationRepository) Update(o *models.Organization) error {
	return r.db.Save(o).Error
}

// Delete removes the organization and, via FK cascade, its locations with
// their favorites and reviews.
func (r *OrganizationRepository) Delete(id uint) error {
	return r.db.Unscoped().Delete(&models.Organization{}, id).Error
}
