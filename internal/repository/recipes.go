package repository

import (
	"context"
	"fmt"

	"github.com/diewo77/recipe-api/internal/models"
	"gorm.io/gorm"
)

// RecipeInput holds the fields of a new recipe. Tags and Ingredients are names
// resolved through get-or-create for the owner.
type RecipeInput struct {
	Title       string
	Description string
	TimeMinutes int
	Price       models.Price
	Link        string
	Tags        []string
	Ingredients []string
}

// RecipePatch lists the updatable recipe fields. A nil field is left unchanged;
// a non-nil Tags or Ingredients (even empty) replaces the whole set.
// The owner is deliberately absent.
type RecipePatch struct {
	Title       *string
	Description *string
	TimeMinutes *int
	Price       *models.Price
	Link        *string
	Tags        *[]string
	Ingredients *[]string
}

type RecipeStore struct {
	db          *gorm.DB
	tags        *TagStore
	ingredients *IngredientStore
}

func withLabels(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tags.id ASC") }).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("ingredients.id ASC") })
}

// List returns the user's recipes, newest first.
func (s *RecipeStore) List(ctx context.Context, userID uint) ([]models.Recipe, error) {
	var out []models.Recipe
	err := withLabels(s.db.WithContext(ctx)).Where("user_id = ?", userID).Order("id DESC").Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	return out, nil
}

func (s *RecipeStore) Get(ctx context.Context, userID, id uint) (*models.Recipe, error) {
	return s.get(s.db.WithContext(ctx), userID, id)
}

func (s *RecipeStore) get(tx *gorm.DB, userID, id uint) (*models.Recipe, error) {
	var r models.Recipe
	if err := withLabels(tx).Where("user_id = ?", userID).First(&r, id).Error; err != nil {
		return nil, notFound("get recipe", err)
	}
	return &r, nil
}

func (s *RecipeStore) Create(ctx context.Context, userID uint, in RecipeInput) (*models.Recipe, error) {
	var out *models.Recipe
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tags, err := s.tags.getOrCreate(tx, userID, in.Tags)
		if err != nil {
			return err
		}
		ingredients, err := s.ingredients.getOrCreate(tx, userID, in.Ingredients)
		if err != nil {
			return err
		}
		r := models.Recipe{
			UserID:      userID,
			Title:       in.Title,
			Description: in.Description,
			TimeMinutes: in.TimeMinutes,
			Price:       in.Price,
			Link:        in.Link,
			Tags:        tags,
			Ingredients: ingredients,
		}
		// Labels already exist; only the join rows are written.
		if err := tx.Omit("Tags.*", "Ingredients.*").Create(&r).Error; err != nil {
			return fmt.Errorf("create recipe: %w", err)
		}
		out, err = s.get(tx, userID, r.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *RecipeStore) Update(ctx context.Context, userID, id uint, p RecipePatch) (*models.Recipe, error) {
	var out *models.Recipe
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var r models.Recipe
		if err := tx.Where("user_id = ?", userID).First(&r, id).Error; err != nil {
			return notFound("get recipe", err)
		}
		updates := map[string]any{}
		if p.Title != nil {
			updates["title"] = *p.Title
		}
		if p.Description != nil {
			updates["description"] = *p.Description
		}
		if p.TimeMinutes != nil {
			updates["time_minutes"] = *p.TimeMinutes
		}
		if p.Price != nil {
			updates["price"] = *p.Price
		}
		if p.Link != nil {
			updates["link"] = *p.Link
		}
		if len(updates) > 0 {
			if err := tx.Model(&r).Updates(updates).Error; err != nil {
				return fmt.Errorf("update recipe: %w", err)
			}
		}
		if p.Tags != nil {
			tags, err := s.tags.getOrCreate(tx, userID, *p.Tags)
			if err != nil {
				return err
			}
			if err := replaceAssociation(tx, &r, "Tags", tags); err != nil {
				return err
			}
		}
		if p.Ingredients != nil {
			ingredients, err := s.ingredients.getOrCreate(tx, userID, *p.Ingredients)
			if err != nil {
				return err
			}
			if err := replaceAssociation(tx, &r, "Ingredients", ingredients); err != nil {
				return err
			}
		}
		var err error
		out, err = s.get(tx, userID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func replaceAssociation[T any](tx *gorm.DB, r *models.Recipe, name string, values []T) error {
	assoc := tx.Model(r).Omit(name + ".*").Association(name)
	var err error
	if len(values) == 0 {
		err = assoc.Clear()
	} else {
		err = assoc.Replace(values)
	}
	if err != nil {
		return fmt.Errorf("replace %s: %w", name, err)
	}
	return nil
}

// Delete removes the recipe and its tag and ingredient links. The labels stay.
func (s *RecipeStore) Delete(ctx context.Context, userID, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var r models.Recipe
		if err := tx.Where("user_id = ?", userID).First(&r, id).Error; err != nil {
			return notFound("get recipe", err)
		}
		if err := tx.Select("Tags", "Ingredients").Delete(&r).Error; err != nil {
			return fmt.Errorf("delete recipe: %w", err)
		}
		return nil
	})
}
