package validation

import (
	"net/mail"
	"strings"
	"unicode/utf8"
)

// Violations maps a field name to a short error code.
type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

// Present records "required" when a field was omitted from the payload.
func Present(field string, present bool, v Violations) {
	if !present {
		v[field] = "required"
	}
}

func MinLength(field, value string, minLen int, v Violations) {
	if utf8.RuneCountInString(value) < minLen {
		v[field] = "too_short"
	}
}

func MaxLength(field, value string, maxLen int, v Violations) {
	if utf8.RuneCountInString(value) > maxLen {
		v[field] = "too_long"
	}
}

// Email accepts a bare address ("a@b.c"), rejecting display-name forms.
func Email(field, value string, v Violations) {
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value || !strings.Contains(value[strings.LastIndex(value, "@")+1:], ".") {
		v[field] = "invalid_email"
	}
}

func NonNegativeInt(field string, val int, v Violations) {
	if val < 0 {
		v[field] = "must_not_be_negative"
	}
}
