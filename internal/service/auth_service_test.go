package service

import (
	"testing"

	"carefinder/config"
	"carefinder/internal/domain"
	"carefinder/internal/models"
	"carefinder/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newAuthTestEnv(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.CaregiverProfile{}))
	cfg := config.Load()
	svc := NewAuthService(cfg, repository.NewUserRepository(db), repository.NewProfileRepository(db))
	return svc, db
}

func TestRegisterCreatesProfile(t *testing.T) {
	svc, db := newAuthTestEnv(t)

	u, access, refresh, err := svc.Register("carer@example.com", "carer", "secret-password")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleCaregiver, u.Role)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)

	var p models.CaregiverProfile
	require.NoError(t, db.Where("user_id = ?", u.ID).First(&p).Error)
	assert.Equal(t, "carer", p.DisplayName)
	assert.Equal(t, "carer@example.com", p.Email)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthTestEnv(t)
	_, _, _, err := svc.Register("carer@example.com", "carer", "secret-password")
	require.NoError(t, err)

	_, _, _, err = svc.Register("carer@example.com", "other", "secret-password")
	assert.ErrorIs(t, err, ErrEmailExists)

	_, _, _, err = svc.Register("other@example.com", "carer", "secret-password")
	assert.ErrorIs(t, err, ErrUsernameExists)
}

func TestLogin(t *testing.T) {
	svc, _ := newAuthTestEnv(t)
	_, _, _, err := svc.Register("carer@example.com", "carer", "secret-password")
	require.NoError(t, err)

	u, access, _, err := svc.Login("carer@example.com", "secret-password")
	require.NoError(t, err)
	assert.Equal(t, "carer@example.com", u.Email)
	assert.NotEmpty(t, access)

	_, _, _, err = svc.Login("carer@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCreds)

	_, _, _, err = svc.Login("missing@example.com", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCreds)
}

func TestRefreshRoundTrip(t *testing.T) {
	svc, _ := newAuthTestEnv(t)
	u, _, refresh, err := svc.Register("carer@example.com", "carer", "secret-password")
	require.NoError(t, err)

	got, access, newRefresh, err := svc.Refresh(refresh)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, newRefresh)

	_, _, _, err = svc.Refresh("not-a-token")
	assert.Error(t, err)
}

func TestLoginWithGoogleCreatesAndLinks(t *testing.T) {
	svc, db := newAuthTestEnv(t)

	u, _, _, isNew, err := svc.LoginWithGoogle("g-123", "new@example.com", "New Carer", "")
	require.NoError(t, err)
	assert.True(t, isNew)
	var p models.CaregiverProfile
	require.NoError(t, db.Where("user_id = ?", u.ID).First(&p).Error)

	// second sign-in finds the same account
	again, _, _, isNew, err := svc.LoginWithGoogle("g-123", "new@example.com", "New Carer", "")
	require.NoError(t, err)
	assert.False(t, isNew)
	assert.Equal(t, u.ID, again.ID)

	// Google identity links onto an existing email account
	_, _, _, err = svc.Register("linked@example.com", "linked", "secret-password")
	require.NoError(t, err)
	linked, _, _, isNew, err := svc.LoginWithGoogle("g-456", "linked@example.com", "Linked", "")
	require.NoError(t, err)
	assert.False(t, isNew)
	require.NotNil(t, linked.GoogleID)
	assert.Equal(t, "g-456", *linked.GoogleID)
}
