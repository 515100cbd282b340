package serializers

import (
	"strings"

	"github.com/diewo77/recipe-api/internal/models"
	"github.com/diewo77/recipe-api/internal/repository"
	"github.com/diewo77/recipe-api/internal/validation"
)

const (
	maxTitle     = 255
	maxLink      = 255
	maxLabelName = 100
)

// LabelInput is a nested tag or ingredient. Any "id" sent by the client is ignored.
type LabelInput struct {
	Name string `json:"name"`
}

// RecipeRequest is the body of POST, PUT and PATCH on recipes. Absent fields
// stay nil; owner fields are not part of the contract and are dropped.
type RecipeRequest struct {
	Title       *string       `json:"title"`
	Description *string       `json:"description"`
	TimeMinutes *int          `json:"time_minutes"`
	Price       *models.Price `json:"price"`
	Link        *string       `json:"link"`
	Tags        *[]LabelInput `json:"tags"`
	Ingredients *[]LabelInput `json:"ingredients"`
}

// Validate checks field rules. With partial=false (POST, PUT) the required
// fields must be present.
func (r *RecipeRequest) Validate(partial bool) validation.Violations {
	v := validation.Violations{}
	if !partial {
		validation.Present("title", r.Title != nil, v)
		validation.Present("time_minutes", r.TimeMinutes != nil, v)
		validation.Present("price", r.Price != nil, v)
	}
	if r.Title != nil {
		title := strings.TrimSpace(*r.Title)
		validation.Required("title", title, v)
		validation.MaxLength("title", title, maxTitle, v)
	}
	if r.TimeMinutes != nil {
		validation.NonNegativeInt("time_minutes", *r.TimeMinutes, v)
	}
	if r.Link != nil {
		validation.MaxLength("link", *r.Link, maxLink, v)
	}
	if r.Tags != nil {
		validateLabels("tags", *r.Tags, v)
	}
	if r.Ingredients != nil {
		validateLabels("ingredients", *r.Ingredients, v)
	}
	return v
}

// ToInput builds the create input. Call after Validate(false).
func (r *RecipeRequest) ToInput() repository.RecipeInput {
	in := repository.RecipeInput{
		Title:       strings.TrimSpace(deref(r.Title)),
		Description: deref(r.Description),
		Link:        deref(r.Link),
	}
	if r.TimeMinutes != nil {
		in.TimeMinutes = *r.TimeMinutes
	}
	if r.Price != nil {
		in.Price = *r.Price
	}
	if r.Tags != nil {
		in.Tags = labelNames(*r.Tags)
	}
	if r.Ingredients != nil {
		in.Ingredients = labelNames(*r.Ingredients)
	}
	return in
}

// ToPatch maps present fields onto a RecipePatch.
func (r *RecipeRequest) ToPatch() repository.RecipePatch {
	p := repository.RecipePatch{
		Description: r.Description,
		TimeMinutes: r.TimeMinutes,
		Price:       r.Price,
		Link:        r.Link,
	}
	if r.Title != nil {
		title := strings.TrimSpace(*r.Title)
		p.Title = &title
	}
	if r.Tags != nil {
		names := labelNames(*r.Tags)
		p.Tags = &names
	}
	if r.Ingredients != nil {
		names := labelNames(*r.Ingredients)
		p.Ingredients = &names
	}
	return p
}

// LabelResponse represents a tag or an ingredient.
type LabelResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// RecipeResponse is the list representation.
type RecipeResponse struct {
	ID          uint            `json:"id"`
	Title       string          `json:"title"`
	TimeMinutes int             `json:"time_minutes"`
	Price       models.Price    `json:"price"`
	Link        string          `json:"link"`
	Tags        []LabelResponse `json:"tags"`
	Ingredients []LabelResponse `json:"ingredients"`
}

// RecipeDetailResponse adds the description.
type RecipeDetailResponse struct {
	RecipeResponse
	Description string `json:"description"`
}

func NewRecipeResponse(r *models.Recipe) RecipeResponse {
	return RecipeResponse{
		ID:          r.ID,
		Title:       r.Title,
		TimeMinutes: r.TimeMinutes,
		Price:       r.Price,
		Link:        r.Link,
		Tags:        NewTagList(r.Tags),
		Ingredients: NewIngredientList(r.Ingredients),
	}
}

func NewRecipeDetailResponse(r *models.Recipe) RecipeDetailResponse {
	return RecipeDetailResponse{RecipeResponse: NewRecipeResponse(r), Description: r.Description}
}

func NewRecipeList(recipes []models.Recipe) []RecipeResponse {
	out := make([]RecipeResponse, len(recipes))
	for i := range recipes {
		out[i] = NewRecipeResponse(&recipes[i])
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
