package repository_test

import (
	"context"
	"os"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	userdomain "github.com/mohammadpnp/collaborators-api/internal/domain/user"
	"github.com/mohammadpnp/collaborators-api/internal/infrastructure/db"
	"github.com/mohammadpnp/collaborators-api/internal/infrastructure/repository"
)

func openTestDB(t *testing.T) (*gorm.DB, string) {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL is not set")
	}

	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect db: %v", err)
	}
	if err := db.AutoMigrate(gdb); err != nil {
		t.Fatalf("failed schema setup: %v", err)
	}
	if err := gdb.Exec("TRUNCATE collaborators, users RESTART IDENTITY CASCADE").Error; err != nil {
		t.Fatalf("failed cleanup: %v", err)
	}
	return gdb, dsn
}

func createTestUser(t *testing.T, gdb *gorm.DB, email string) userdomain.User {
	t.Helper()

	u, err := repository.NewUserRepository(gdb).Create(context.Background(), userdomain.User{
		Name:         "Gestor",
		Email:        email,
		PasswordHash: "$2a$10$hash",
	})
	if err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return u
}
