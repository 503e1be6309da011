package domain

const (
	RoleCaregiver = "CAREGIVER"
	RoleAdmin     = "ADMIN"
)

const (
	ReviewTypeGeneral  = "GENERAL"
	ReviewTypeIncident = "INCIDENT"
	ReviewTypeStaff    = "STAFF"
)

const (
	VisibilityPublic    = "PUBLIC"
	VisibilityAnonymous = "ANONYMOUS"
)

const (
	ReviewStatusPublished = "PUBLISHED"
	ReviewStatusPending   = "PENDING"
)

// Sub-rating categories collected by the structured review form.
var SubRatingCategories = []string{"dignity", "activities", "safety"}

// AllCounties is the county filter sentinel meaning "no county filter".
const AllCounties = "all"

// MaxNarrativeLen is the review body limit in runes.
const MaxNarrativeLen = 2000
