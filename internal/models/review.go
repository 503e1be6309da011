package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Review is a caregiver's rating and narrative about one location.
// One review per (caregiver, location); edits replace the row in place.
type Review struct {
	ID            uint              `gorm:"primaryKey" json:"id"`
	CaregiverID   uint              `gorm:"not null;index:idx_review_caregiver_location,unique" json:"caregiver_id"`
	LocationID    uint              `gorm:"not null;index:idx_review_caregiver_location,unique" json:"location_id"`
	ReviewType    string            `gorm:"size:20;not null" json:"review_type"` // GENERAL | INCIDENT | STAFF
	Rating        int               `gorm:"not null" json:"rating"`              // 1-5
	Title         string            `gorm:"size:255" json:"title"`
	Body          string            `gorm:"type:text;not null" json:"body"`
	SubRatings    datatypes.JSONMap `json:"sub_ratings"` // dignity/activities/safety, each 1-5
	ActionsTaken  string            `gorm:"size:1024" json:"actions_taken"` // comma-separated tags
	ContextTags   string            `gorm:"size:1024" json:"context_tags"`  // comma-separated tags
	Visibility    string            `gorm:"size:20;not null;default:'PUBLIC'" json:"visibility"`
	VerifiedVisit bool              `gorm:"default:false" json:"verified_visit"`

	// Moderation metadata
	SanitizedBody string `gorm:"type:text" json:"-"`
	Flagged       bool   `gorm:"default:false;index" json:"-"`
	Status        string `gorm:"size:20;not null;default:'PUBLISHED';index" json:"status"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Caregiver CaregiverProfile `gorm:"foreignKey:CaregiverID;constraint:OnDelete:CASCADE" json:"caregiver,omitempty"`
	Location  Location         `gorm:"foreignKey:LocationID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Review) TableName() string {
	return "reviews"
}

// ReviewVote marks a review helpful for one caregiver. Toggled by
// insert/delete; unique per (caregiver, review).
type ReviewVote struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CaregiverID uint      `gorm:"not null;index:idx_vote_caregiver_review,unique" json:"caregiver_id"`
	ReviewID    uint      `gorm:"not null;index:idx_vote_caregiver_review,unique" json:"review_id"`
	Helpful     bool      `gorm:"default:true" json:"helpful"`
	CreatedAt   time.Time `json:"created_at"`

	Caregiver CaregiverProfile `gorm:"foreignKey:CaregiverID;constraint:OnDelete:CASCADE" json:"-"`
	Review    Review           `gorm:"foreignKey:ReviewID;constraint:OnDelete:CASCADE" json:"-"`
}

func (ReviewVote) TableName() string {
	return "review_helpfulness"
}
