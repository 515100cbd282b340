package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/diewo77/recipe-api/internal/auth"
	"github.com/diewo77/recipe-api/internal/db/dbtest"
	"github.com/diewo77/recipe-api/internal/models"
	"github.com/diewo77/recipe-api/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func setupRepo(t *testing.T) *repository.Repository {
	t.Helper()
	return repository.New(dbtest.Open(t), repository.WithBcryptCost(bcrypt.MinCost))
}

func createUser(t *testing.T, repo *repository.Repository, email string) *models.User {
	t.Helper()
	u, err := repo.Users.Create(context.Background(), email, "testpass123", repository.UserFields{Name: "Test Name"})
	if err != nil {
		t.Fatalf("user: %v", err)
	}
	return u
}

// newRequest builds a JSON request with the user injected into the context
// (userID 0 means anonymous) and the {id} wildcard set when id != "".
func newRequest(method, target, body string, userID uint, id string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != 0 {
		req = req.WithContext(auth.WithUserID(req.Context(), userID))
	}
	if id != "" {
		req.SetPathValue("id", id)
	}
	return req
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
}

func nopLogger() *zap.Logger { return zap.NewNop() }
