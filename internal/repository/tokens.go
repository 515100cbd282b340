package repository

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/diewo77/recipe-api/internal/models"
	"github.com/diewo77/recipe-api/internal/tokencache"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TokenStore struct {
	db    *gorm.DB
	users *UserStore
	cache tokencache.Cache
	log   *zap.Logger
}

// Issue authenticates the credentials and returns the user's token.
func (s *TokenStore) Issue(ctx context.Context, email, password string) (*models.Token, error) {
	u, err := s.users.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return s.GetOrCreate(ctx, u.ID)
}

// GetOrCreate returns the user's token, generating one on first use.
func (s *TokenStore) GetOrCreate(ctx context.Context, userID uint) (*models.Token, error) {
	var tok models.Token
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ?", userID).First(&tok).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("load token: %w", err)
		}
		key, err := generateKey()
		if err != nil {
			return err
		}
		tok = models.Token{Key: key, UserID: userID}
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).Create(&tok)
		if res.Error != nil {
			return fmt.Errorf("create token: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			tok = models.Token{}
			return tx.Where("user_id = ?", userID).First(&tok).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &tok, nil
}

// Resolve maps a token key to the ID of an active user.
func (s *TokenStore) Resolve(ctx context.Context, key string) (uint, error) {
	if key == "" {
		return 0, ErrInvalidToken
	}
	id, ok, err := s.cache.Get(ctx, key)
	switch {
	case err != nil:
		s.log.Warn("token cache get failed", zap.Error(err))
	case ok:
		return id, nil
	}
	var tok models.Token
	err = s.db.WithContext(ctx).Preload("User").Where(&models.Token{Key: key}).First(&tok).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, ErrInvalidToken
	}
	if err != nil {
		return 0, fmt.Errorf("resolve token: %w", err)
	}
	if !tok.User.IsActive {
		return 0, ErrInvalidToken
	}
	// Only active users are cached; deactivation drops the entry.
	if err := s.cache.Set(ctx, key, tok.UserID); err != nil {
		s.log.Warn("token cache set failed", zap.Uint("user_id", tok.UserID), zap.Error(err))
	}
	return tok.UserID, nil
}

func generateKey() (string, error) {
	b := make([]byte, 20)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
