package services

import (
	"testing"
	"time"

	"quiz-arena-backend/internal/cache"
	"quiz-arena-backend/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{}, &models.Player{}, &models.Genre{}, &models.Game{},
		&models.Question{}, &models.Answer{}, &models.Play{}, &models.Entry{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func newTestGameService(t *testing.T, db *gorm.DB) *GameService {
	t.Helper()
	return NewGameService(db, cache.New())
}

func createTestUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()
	user := models.User{Username: username, PasswordHash: "x"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func createTestMaster(t *testing.T, db *gorm.DB, username string) models.Player {
	t.Helper()
	user := createTestUser(t, db, username)
	now := time.Now()
	player := models.Player{
		UserID:           user.ID,
		Kind:             models.PlayerKindGameMaster,
		RegistrationDate: &now,
		TeamMemberDate:   &now,
	}
	if err := db.Create(&player).Error; err != nil {
		t.Fatalf("create master: %v", err)
	}
	return player
}

func createTestGuest(t *testing.T, db *gorm.DB, username string, invitedBy uint) models.Player {
	t.Helper()
	user := createTestUser(t, db, username)
	player := models.Player{
		UserID:      user.ID,
		Kind:        models.PlayerKindGuest,
		InvitedByID: &invitedBy,
	}
	if err := db.Create(&player).Error; err != nil {
		t.Fatalf("create guest: %v", err)
	}
	return player
}
