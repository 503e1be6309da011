package models

import (
	"time"

	"gorm.io/gorm"
)

// Favorite is a caregiver's private bookmark of a location. Notes and
// visit tracking are never visible to other caregivers.
type Favorite struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	CaregiverID uint           `gorm:"not null;index:idx_fav_caregiver_location,unique" json:"caregiver_id"`
	LocationID  uint           `gorm:"not null;index:idx_fav_caregiver_location,unique" json:"location_id"`
	Notes       string         `gorm:"type:text" json:"notes"`
	Visited     bool           `gorm:"default:false" json:"visited"`
	VisitDate   *time.Time     `json:"visit_date,omitempty"` // derived: set when visited flips true
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Caregiver CaregiverProfile `gorm:"foreignKey:CaregiverID;constraint:OnDelete:CASCADE" json:"-"`
	Location  Location         `gorm:"foreignKey:LocationID;constraint:OnDelete:CASCADE" json:"location,omitempty"`
}

func (Favorite) TableName() string {
	return "favorites"
}
