// Package testutil provides database fixtures shared by package tests.
package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/freetocompute/mindboard/pkg/database"
	"github.com/freetocompute/mindboard/pkg/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SetupTestDB creates a migrated sqlite database in a temp directory.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.CreateDatabaseWithDialector(sqlite.Open(filepath.Join(t.TempDir(), "test.db")))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func hash(t *testing.T, password string) string {
	t.Helper()
	// MinCost keeps fixtures fast; production hashing lives in pkg/auth
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	return string(h)
}

func SeedAdmin(t *testing.T, db *gorm.DB, username, password string, owner bool) *models.AdminAccount {
	t.Helper()
	admin := &models.AdminAccount{Username: username, PasswordHash: hash(t, password), IsOwner: owner}
	if err := db.Create(admin).Error; err != nil {
		t.Fatalf("Failed to seed admin %s: %v", username, err)
	}
	return admin
}

func SeedSuperModerator(t *testing.T, db *gorm.DB, username, password string) *models.AdminAccount {
	t.Helper()
	admin := SeedAdmin(t, db, username, password, false)
	if err := db.Model(admin).Update("is_super_moderator", true).Error; err != nil {
		t.Fatalf("Failed to flag super-moderator %s: %v", username, err)
	}
	admin.IsSuperModerator = true
	return admin
}

func SeedUser(t *testing.T, db *gorm.DB, username, password, gmail string) *models.UserAccount {
	t.Helper()
	user := &models.UserAccount{Username: username, PasswordHash: hash(t, password), Gmail: gmail}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to seed user %s: %v", username, err)
	}
	return user
}

func SeedMessage(t *testing.T, db *gorm.DB, text, mood string, at time.Time, pinned bool) *models.Message {
	t.Helper()
	message := &models.Message{Message: text, Name: "Anonymous", Mood: mood, Timestamp: at.UTC()}
	if err := db.Create(message).Error; err != nil {
		t.Fatalf("Failed to seed message: %v", err)
	}
	if pinned {
		if err := db.Model(message).Update("is_pinned", true).Error; err != nil {
			t.Fatalf("Failed to pin message: %v", err)
		}
		message.IsPinned = true
	}
	return message
}

func SeedPublicMessage(t *testing.T, db *gorm.DB, text, name, mood string, at time.Time) *models.PublicMessage {
	t.Helper()
	message := &models.PublicMessage{Message: text, Name: name, Mood: mood, CreatedAt: at.UTC()}
	if err := db.Create(message).Error; err != nil {
		t.Fatalf("Failed to seed public message: %v", err)
	}
	return message
}
