package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Location is a physical site operated by an Organization.
// Using separate lat/lng columns for portability and Haversine queries.
type Location struct {
	ID                    uint           `gorm:"primaryKey" json:"id"`
	OrganizationID        uint           `gorm:"not null;index;index:idx_loc_org_address,unique" json:"organization_id"`
	Street                string         `gorm:"size:255;not null;index:idx_loc_org_address,unique" json:"street"`
	City                  string         `gorm:"size:128;not null;index:idx_loc_org_address,unique" json:"city"`
	County                string         `gorm:"size:128;index" json:"county"`
	State                 string         `gorm:"size:8" json:"state"`
	PostalCode            string         `gorm:"size:16;not null;index:idx_loc_org_address,unique" json:"postal_code"`
	Latitude              *float64       `gorm:"type:decimal(10,8)" json:"latitude,omitempty"`
	Longitude             *float64       `gorm:"type:decimal(11,8)" json:"longitude,omitempty"`
	ScheduleText          string         `gorm:"size:512" json:"schedule_text"`
	AccessibilityFeatures string         `gorm:"size:1024" json:"accessibility_features"` // comma-separated labels
	CreatedAt             time.Time      `json:"created_at"`
	UpdatedAt             time.Time      `json:"updated_at"`
	DeletedAt             gorm.DeletedAt `gorm:"index" json:"-"`

	Organization Organization `gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE" json:"organization,omitempty"`
}

func (Location) TableName() string {
	return "locations"
}

// AccessibilityList splits the comma-separated accessibility column.
func (l *Location) AccessibilityList() []string {
	if l.AccessibilityFeatures == "" {
		return nil
	}
	parts := strings.Split(l.AccessibilityFeatures, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// HasCoordinates reports whether both lat and lng are set.
func (l *Location) HasCoordinates() bool {
	return l.Latitude != nil && l.Longitude != nil
}
