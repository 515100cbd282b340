package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/diewo77/recipe-api/internal/models"
	"github.com/diewo77/recipe-api/internal/tokencache"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserFields are the optional attributes set at creation.
type UserFields struct {
	Name string
}

// UserPatch lists the updatable user attributes. Nil means unchanged.
// IsActive is not accepted over HTTP.
type UserPatch struct {
	Email    *string
	Name     *string
	Password *string
	IsActive *bool
}

type UserStore struct {
	db    *gorm.DB
	cache tokencache.Cache
	cost  int
	log   *zap.Logger
}

// Create stores a new active user with a bcrypt hash of password.
func (s *UserStore) Create(ctx context.Context, email, password string, f UserFields) (*models.User, error) {
	return s.create(ctx, email, password, f, false)
}

// CreateSuperuser is Create with the staff and superuser flags set.
func (s *UserStore) CreateSuperuser(ctx context.Context, email, password string, f UserFields) (*models.User, error) {
	return s.create(ctx, email, password, f, true)
}

func (s *UserStore) create(ctx context.Context, email, password string, f UserFields, super bool) (*models.User, error) {
	if strings.TrimSpace(email) == "" {
		return nil, fieldError("email", "required")
	}
	hash, err := s.hash(password)
	if err != nil {
		return nil, err
	}
	u := models.User{
		Email:       models.NormalizeEmail(email),
		Name:        f.Name,
		Password:    hash,
		IsActive:    true,
		IsStaff:     super,
		IsSuperuser: super,
	}
	if err := s.db.WithContext(ctx).Create(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fieldError("email", "already_exists")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &u, nil
}

func (s *UserStore) hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", fieldError("password", "too_long")
		}
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

// Authenticate returns the active user matching email and password.
func (s *UserStore) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	var u models.User
	err := s.db.WithContext(ctx).Where("email = ?", models.NormalizeEmail(email)).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if !u.IsActive || bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return &u, nil
}

func (s *UserStore) Get(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, notFound("get user", err)
	}
	return &u, nil
}

// Update applies the non-nil fields of p.
func (s *UserStore) Update(ctx context.Context, id uint, p UserPatch) (*models.User, error) {
	var u models.User
	var keys []string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&u, id).Error; err != nil {
			return notFound("get user", err)
		}
		updates := map[string]any{}
		if p.Email != nil {
			if strings.TrimSpace(*p.Email) == "" {
				return fieldError("email", "required")
			}
			updates["email"] = models.NormalizeEmail(*p.Email)
		}
		if p.Name != nil {
			updates["name"] = *p.Name
		}
		if p.Password != nil {
			hash, err := s.hash(*p.Password)
			if err != nil {
				return err
			}
			updates["password"] = hash
		}
		if p.IsActive != nil {
			updates["is_active"] = *p.IsActive
			if !*p.IsActive {
				if err := tx.Model(&models.Token{}).Where("user_id = ?", id).Pluck("key", &keys).Error; err != nil {
					return fmt.Errorf("load tokens: %w", err)
				}
			}
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&u).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fieldError("email", "already_exists")
			}
			return fmt.Errorf("update user: %w", err)
		}
		return tx.First(&u, id).Error
	})
	if err != nil {
		return nil, err
	}
	s.forgetTokens(ctx, keys)
	return &u, nil
}

// Delete removes the user together with its token, recipes, tags and ingredients.
func (s *UserStore) Delete(ctx context.Context, id uint) error {
	var keys []string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Token{}).Where("user_id = ?", id).Pluck("key", &keys).Error; err != nil {
			return fmt.Errorf("load tokens: %w", err)
		}
		stmts := []string{
			"DELETE FROM recipe_tags WHERE recipe_id IN (SELECT id FROM recipes WHERE user_id = ?)",
			"DELETE FROM recipe_ingredients WHERE recipe_id IN (SELECT id FROM recipes WHERE user_id = ?)",
		}
		for _, q := range stmts {
			if err := tx.Exec(q, id).Error; err != nil {
				return fmt.Errorf("delete join rows: %w", err)
			}
		}
		for _, m := range []any{&models.Recipe{}, &models.Tag{}, &models.Ingredient{}, &models.Token{}} {
			if err := tx.Where("user_id = ?", id).Delete(m).Error; err != nil {
				return fmt.Errorf("delete %T: %w", m, err)
			}
		}
		res := tx.Delete(&models.User{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete user: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.forgetTokens(ctx, keys)
	return nil
}

// forgetTokens evicts keys from the token cache after a commit.
func (s *UserStore) forgetTokens(ctx context.Context, keys []string) {
	for _, k := range keys {
		if err := s.cache.Delete(ctx, k); err != nil {
			s.log.Warn("token cache delete failed", zap.Error(err))
		}
	}
}
