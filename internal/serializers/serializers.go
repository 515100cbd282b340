// Package serializers converts between request/response JSON and store types.
package serializers

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/diewo77/recipe-api/internal/models"
	"github.com/diewo77/recipe-api/internal/validation"
)

// DecodeViolations turns field-level decode failures (wrong JSON type, bad
// price) into validation codes. ok is false for malformed JSON.
func DecodeViolations(err error) (v validation.Violations, ok bool) {
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &typeErr) && typeErr.Field != "":
		return validation.Violations{typeErr.Field: "invalid_type"}, true
	case errors.Is(err, models.ErrPricePrecision):
		return validation.Violations{"price": "max_decimal_places"}, true
	case errors.Is(err, models.ErrPriceRange):
		return validation.Violations{"price": "max_whole_digits"}, true
	case errors.Is(err, models.ErrInvalidPrice):
		return validation.Violations{"price": "invalid"}, true
	}
	return nil, false
}

func validateLabels(field string, labels []LabelInput, v validation.Violations) {
	for i, l := range labels {
		key := fmt.Sprintf("%s.%d.name", field, i)
		name := strings.TrimSpace(l.Name)
		validation.Required(key, name, v)
		validation.MaxLength(key, name, maxLabelName, v)
	}
}

func labelNames(labels []LabelInput) []string {
	out := make([]string, len(labels))
	for i, l := range labels {
		out[i] = strings.TrimSpace(l.Name)
	}
	return out
}
