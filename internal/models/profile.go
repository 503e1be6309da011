package models

import (
	"time"

	"gorm.io/gorm"
)

// CaregiverProfile is the directory-facing identity of an account.
// One per user, created automatically at registration.
type CaregiverProfile struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UserID      uint           `gorm:"uniqueIndex;not null" json:"user_id"`
	DisplayName string         `gorm:"size:128;not null" json:"display_name"`
	Email       string         `gorm:"size:255;not null" json:"email"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (CaregiverProfile) TableName() string {
	return "profiles"
}
