package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Organization is a provider running one or more day-habilitation sites.
// Globally readable; only admins write.
type Organization struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"uniqueIndex;size:255;not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Phone       string         `gorm:"size:32" json:"phone"`
	Email       string         `gorm:"size:255" json:"email"`
	Website     string         `gorm:"size:512" json:"website"`
	Services    string         `gorm:"size:1024" json:"services"` // comma-separated service-category labels
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Locations []Location `gorm:"foreignKey:OrganizationID" json:"locations,omitempty"`
}

func (Organization) TableName() string {
	return "organizations"
}

// ServiceList splits the comma-separated services column.
func (o *Organization) ServiceList() []string {
	if o.Services == "" {
		return nil
	}
	parts := strings.Split(o.Services, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
