package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/diewo77/recipe-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// labelStore implements the operations shared by tags and ingredients.
type labelStore[T models.Tag | models.Ingredient] struct {
	db        *gorm.DB
	joinTable string
	joinCol   string
	newLabel  func(userID uint, name string) T
}

type TagStore struct{ labelStore[models.Tag] }

type IngredientStore struct{ labelStore[models.Ingredient] }

func newTagStore(db *gorm.DB) *TagStore {
	return &TagStore{labelStore[models.Tag]{
		db:        db,
		joinTable: "recipe_tags",
		joinCol:   "tag_id",
		newLabel:  func(userID uint, name string) models.Tag { return models.Tag{UserID: userID, Name: name} },
	}}
}

func newIngredientStore(db *gorm.DB) *IngredientStore {
	return &IngredientStore{labelStore[models.Ingredient]{
		db:        db,
		joinTable: "recipe_ingredients",
		joinCol:   "ingredient_id",
		newLabel:  func(userID uint, name string) models.Ingredient { return models.Ingredient{UserID: userID, Name: name} },
	}}
}

// List returns the user's labels ordered by name, descending.
func (s *labelStore[T]) List(ctx context.Context, userID uint) ([]T, error) {
	var out []T
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("name DESC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list labels: %w", err)
	}
	return out, nil
}

func (s *labelStore[T]) Get(ctx context.Context, userID, id uint) (*T, error) {
	var rec T
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&rec, id).Error; err != nil {
		return nil, notFound("get label", err)
	}
	return &rec, nil
}

// Update renames a label. Renaming onto a name the user already has is a validation error.
func (s *labelStore[T]) Update(ctx context.Context, userID, id uint, name string) (*T, error) {
	var rec T
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).First(&rec, id).Error; err != nil {
			return notFound("get label", err)
		}
		if err := tx.Model(&rec).Update("name", name).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fieldError("name", "already_exists")
			}
			return fmt.Errorf("rename label: %w", err)
		}
		return tx.First(&rec, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Delete removes the label and detaches it from every recipe.
func (s *labelStore[T]) Delete(ctx context.Context, userID, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec T
		if err := tx.Where("user_id = ?", userID).First(&rec, id).Error; err != nil {
			return notFound("get label", err)
		}
		if err := tx.Exec("DELETE FROM "+s.joinTable+" WHERE "+s.joinCol+" = ?", id).Error; err != nil {
			return fmt.Errorf("detach label: %w", err)
		}
		if err := tx.Delete(&rec).Error; err != nil {
			return fmt.Errorf("delete label: %w", err)
		}
		return nil
	})
}

// GetOrCreate returns the user's label called name, creating it if needed.
func (s *labelStore[T]) GetOrCreate(ctx context.Context, userID uint, name string) (*T, error) {
	var out []T
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		out, err = s.getOrCreate(tx, userID, []string{name})
		return err
	})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

// getOrCreate resolves names inside tx. Repeated names collapse to one label.
// The insert relies on the (user_id, name) unique index, so concurrent
// callers converge on the same row.
func (s *labelStore[T]) getOrCreate(tx *gorm.DB, userID uint, names []string) ([]T, error) {
	out := make([]T, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		rec := s.newLabel(userID, name)
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "name"}},
			DoNothing: true,
		}).Create(&rec)
		if res.Error != nil {
			return nil, fmt.Errorf("create label %q: %w", name, res.Error)
		}
		if res.RowsAffected == 0 {
			var existing T
			if err := tx.Where("user_id = ? AND name = ?", userID, name).First(&existing).Error; err != nil {
				return nil, fmt.Errorf("load label %q: %w", name, err)
			}
			rec = existing
		}
		out = append(out, rec)
	}
	return out, nil
}
