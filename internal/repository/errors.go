package repository

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/diewo77/recipe-api/internal/validation"
	"gorm.io/gorm"
)

var (
	// ErrNotFound covers both missing records and records owned by another user.
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("unable to authenticate with provided credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

// ValidationError carries per-field codes, e.g. {"email": "already_exists"}.
type ValidationError struct {
	Fields validation.Violations
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func fieldError(field, code string) *ValidationError {
	return &ValidationError{Fields: validation.Violations{field: code}}
}

// notFound maps gorm.ErrRecordNotFound onto ErrNotFound and wraps anything else.
func notFound(op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
