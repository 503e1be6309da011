package repository

import (
	"testing"

	"carefinder/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.CaregiverProfile{},
		&models.Organization{},
		&models.Location{},
		&models.Favorite{},
		&models.Review{},
		&models.ReviewVote{},
	))
	return db
}

// seedDirectory creates a caregiver, an organization and one location.
func seedDirectory(t *testing.T, db *gorm.DB) (*models.CaregiverProfile, *models.Location) {
	t.Helper()
	u := &models.User{Email: "carer@example.com", Username: "carer", Role: "CAREGIVER"}
	require.NoError(t, db.Create(u).Error)
	p := &models.CaregiverProfile{UserID: u.ID, DisplayName: "carer", Email: u.Email}
	require.NoError(t, db.Create(p).Error)
	org := &models.Organization{Name: "Sunrise Day Services", Services: "day habilitation"}
	require.NoError(t, db.Create(org).Error)
	loc := &models.Location{
		OrganizationID: org.ID,
		Street:         "12 Main St",
		City:           "Buffalo",
		County:         "Erie",
		State:          "NY",
		PostalCode:     "14201",
	}
	require.NoError(t, db.Create(loc).Error)
	return p, loc
}
