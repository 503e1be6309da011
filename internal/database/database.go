package database

import (
	"log"

	"carefinder/config"
	"carefinder/internal/domain"
	"carefinder/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error), // Only log errors, not every SQL query
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	return db, nil
}

// AutoMigrate runs Gorm auto-migration for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.CaregiverProfile{},
		&models.Organization{},
		&models.Location{},
		&models.Favorite{},
		&models.Review{},
		&models.ReviewVote{},
	)
}

// SeedAdmin creates the initial admin account when ADMIN_EMAIL/ADMIN_PASSWORD
// are configured and no admin exists yet.
func SeedAdmin(db *gorm.DB, email, password string) {
	if email == "" || password == "" {
		return
	}
	var count int64
	db.Model(&models.User{}).Where("role = ?", domain.RoleAdmin).Count(&count)
	if count > 0 {
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("[seed] admin hash failed: %v", err)
		return
	}
	u := &models.User{
		Email:        email,
		Username:     "admin",
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
	}
	if err := db.Create(u).Error; err != nil {
		log.Printf("[seed] admin create failed: %v", err)
		return
	}
	_ = db.Create(&models.CaregiverProfile{UserID: u.ID, DisplayName: "admin", Email: email}).Error
	log.Printf("[seed] admin account created: %s", email)
}
