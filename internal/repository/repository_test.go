package repository

import (
	"context"
	"testing"

	"github.com/diewo77/recipe-api/internal/db/dbtest"
	"github.com/diewo77/recipe-api/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func setupRepo(t *testing.T, opts ...Option) (*Repository, *gorm.DB) {
	t.Helper()
	conn := dbtest.Open(t)
	opts = append([]Option{WithBcryptCost(bcrypt.MinCost)}, opts...)
	return New(conn, opts...), conn
}

func mustUser(t *testing.T, repo *Repository, email string) *models.User {
	t.Helper()
	u, err := repo.Users.Create(context.Background(), email, "testpass123", UserFields{Name: "Test"})
	if err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return u
}
