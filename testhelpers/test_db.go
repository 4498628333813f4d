package testhelpers

import (
	"fmt"
	"testing"

	"github.com/alessandrolsdev/clutch/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB creates an isolated in-memory SQLite database for tests.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.UserStats{},
		&models.Post{},
		&models.Comment{},
		&models.Interaction{},
		&models.GameLog{},
		&models.PlatformIntegration{},
		&models.XpLog{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

// CreateTestUser inserts a user with its profile and stats rows, the
// same shape registration produces.
func CreateTestUser(t *testing.T, db *gorm.DB, username, email string, xp int64) *models.User {
	t.Helper()

	user := &models.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: "$2a$10$testhashtesthashtesthashte",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	if err := db.Create(&models.Profile{
		ID:          uuid.NewString(),
		UserID:      user.ID,
		DisplayName: username,
	}).Error; err != nil {
		t.Fatalf("failed to create test profile: %v", err)
	}
	level := int(xp / 100)
	if level < 1 {
		level = 1
	}
	if err := db.Create(&models.UserStats{
		ID:           uuid.NewString(),
		UserID:       user.ID,
		Level:        level,
		CurrentXP:    xp,
		SocialEnergy: 100,
	}).Error; err != nil {
		t.Fatalf("failed to create test stats: %v", err)
	}
	return user
}
