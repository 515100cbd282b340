package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/diewo77/recipe-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserStore_CreateAndAuthenticate(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	u, err := repo.Users.Create(ctx, "test@example.com", "testpass123", UserFields{Name: "Test"})
	require.NoError(t, err)
	assert.Equal(t, "test@example.com", u.Email)
	assert.True(t, u.IsActive)
	assert.False(t, u.IsStaff)
	assert.NotEqual(t, "testpass123", u.Password)

	got, err := repo.Users.Authenticate(ctx, "test@example.com", "testpass123")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = repo.Users.Authenticate(ctx, "test@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = repo.Users.Authenticate(ctx, "nobody@example.com", "testpass123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserStore_EmailNormalized(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()
	samples := [][2]string{
		{"test1@EXAMPLE.com", "test1@example.com"},
		{"Test2@Example.com", "Test2@example.com"},
		{"TEST3@EXAMPLE.COM", "TEST3@example.com"},
		{"test4@example.COM", "test4@example.com"},
	}
	for _, s := range samples {
		u, err := repo.Users.Create(ctx, s[0], "sample123", UserFields{})
		require.NoError(t, err)
		assert.Equal(t, s[1], u.Email)
	}
	// Login with the un-normalized spelling still matches.
	_, err := repo.Users.Authenticate(ctx, "Test2@EXAMPLE.COM", "sample123")
	assert.NoError(t, err)
}

func TestUserStore_EmptyEmailRejected(t *testing.T) {
	repo, _ := setupRepo(t)
	for _, pw := range []string{"", "pw", "testpass123"} {
		for _, email := range []string{"", "   "} {
			_, err := repo.Users.Create(context.Background(), email, pw, UserFields{})
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "email %q password %q: %v", email, pw, err)
			assert.Equal(t, "required", verr.Fields["email"])
		}
	}
}

func TestUserStore_DuplicateEmail(t *testing.T) {
	repo, _ := setupRepo(t)
	mustUser(t, repo, "dup@example.com")
	_, err := repo.Users.Create(context.Background(), "dup@EXAMPLE.com", "another1", UserFields{})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "already_exists", verr.Fields["email"])
}

func TestUserStore_CreateSuperuser(t *testing.T) {
	repo, _ := setupRepo(t)
	u, err := repo.Users.CreateSuperuser(context.Background(), "admin@example.com", "admin123", UserFields{})
	require.NoError(t, err)
	assert.True(t, u.IsStaff)
	assert.True(t, u.IsSuperuser)
}

func TestUserStore_InactiveCannotAuthenticate(t *testing.T) {
	repo, conn := setupRepo(t)
	u := mustUser(t, repo, "off@example.com")
	require.NoError(t, conn.Model(&models.User{}).Where("id = ?", u.ID).Update("is_active", false).Error)
	_, err := repo.Users.Authenticate(context.Background(), "off@example.com", "testpass123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserStore_Update(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()
	u := mustUser(t, repo, "me@example.com")
	mustUser(t, repo, "taken@example.com")

	name, pw := "Updated", "newpassword123"
	got, err := repo.Users.Update(ctx, u.ID, UserPatch{Name: &name, Password: &pw})
	require.NoError(t, err)
	assert.Equal(t, "Updated", got.Name)
	_, err = repo.Users.Authenticate(ctx, "me@example.com", "newpassword123")
	assert.NoError(t, err)

	email := "taken@Example.com"
	_, err = repo.Users.Update(ctx, u.ID, UserPatch{Email: &email})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "already_exists", verr.Fields["email"])

	_, err = repo.Users.Update(ctx, 9999, UserPatch{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserStore_DeleteCascades(t *testing.T) {
	repo, conn := setupRepo(t)
	ctx := context.Background()
	u := mustUser(t, repo, "gone@example.com")
	other := mustUser(t, repo, "stay@example.com")
	_, err := repo.Recipes.Create(ctx, u.ID, RecipeInput{Title: "r", TimeMinutes: 5, Price: models.NewPrice(100), Tags: []string{"a"}, Ingredients: []string{"salt"}})
	require.NoError(t, err)
	_, err = repo.Recipes.Create(ctx, other.ID, RecipeInput{Title: "r2", TimeMinutes: 5, Price: models.NewPrice(100), Tags: []string{"a"}})
	require.NoError(t, err)
	_, err = repo.Tokens.GetOrCreate(ctx, u.ID)
	require.NoError(t, err)

	require.NoError(t, repo.Users.Delete(ctx, u.ID))

	counts := map[string]int64{}
	for _, table := range []string{"users", "tokens", "recipes", "tags", "ingredients", "recipe_tags", "recipe_ingredients"} {
		var n int64
		require.NoError(t, conn.Table(table).Count(&n).Error)
		counts[table] = n
	}
	assert.Equal(t, map[string]int64{
		"users": 1, "tokens": 0, "recipes": 1, "tags": 1, "ingredients": 0, "recipe_tags": 1, "recipe_ingredients": 0,
	}, counts)

	assert.ErrorIs(t, repo.Users.Delete(ctx, u.ID), ErrNotFound)
}
