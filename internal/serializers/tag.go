package serializers

import (
	"strings"

	"github.com/diewo77/recipe-api/internal/models"
	"github.com/diewo77/recipe-api/internal/validation"
)

// TagRequest is the body of PUT and PATCH on a tag.
type TagRequest struct {
	Name *string `json:"name"`
}

func (r *TagRequest) Validate(partial bool) validation.Violations {
	v := validation.Violations{}
	if !partial {
		validation.Present("name", r.Name != nil, v)
	}
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		validation.Required("name", name, v)
		validation.MaxLength("name", name, maxLabelName, v)
	}
	return v
}

// NewName returns the trimmed name, or nil when the request leaves it unchanged.
func (r *TagRequest) NewName() *string {
	if r.Name == nil {
		return nil
	}
	name := strings.TrimSpace(*r.Name)
	return &name
}

func NewTagResponse(t *models.Tag) LabelResponse {
	return LabelResponse{ID: t.ID, Name: t.Name}
}

func NewTagList(tags []models.Tag) []LabelResponse {
	out := make([]LabelResponse, len(tags))
	for i := range tags {
		out[i] = NewTagResponse(&tags[i])
	}
	return out
}

func NewIngredientResponse(in *models.Ingredient) LabelResponse {
	return LabelResponse{ID: in.ID, Name: in.Name}
}

func NewIngredientList(items []models.Ingredient) []LabelResponse {
	out := make([]LabelResponse, len(items))
	for i := range items {
		out[i] = NewIngredientResponse(&items[i])
	}
	return out
}
