package serializers

import (
	"strings"

	"github.com/diewo77/recipe-api/internal/models"
	"github.com/diewo77/recipe-api/internal/repository"
	"github.com/diewo77/recipe-api/internal/validation"
)

const (
	minPassword = 5
	// bcrypt ignores input past 72 bytes and x/crypto rejects it.
	maxPasswordBytes = 72
	maxName          = 255
	maxEmail         = 255
)

// UserRequest is the body of /user/create and of PUT/PATCH /user/me.
type UserRequest struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Name     *string `json:"name"`
}

func (r *UserRequest) Validate(partial bool) validation.Violations {
	v := validation.Violations{}
	if !partial {
		validation.Present("email", r.Email != nil, v)
		validation.Present("password", r.Password != nil, v)
		validation.Present("name", r.Name != nil, v)
	}
	if r.Email != nil {
		email := strings.TrimSpace(*r.Email)
		validation.Required("email", email, v)
		if _, bad := v["email"]; !bad {
			validation.Email("email", email, v)
			validation.MaxLength("email", email, maxEmail, v)
		}
	}
	if r.Password != nil {
		validation.Required("password", *r.Password, v)
		if _, bad := v["password"]; !bad {
			validation.MinLength("password", *r.Password, minPassword, v)
			if len(*r.Password) > maxPasswordBytes {
				v["password"] = "too_long"
			}
		}
	}
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		validation.Required("name", name, v)
		validation.MaxLength("name", name, maxName, v)
	}
	return v
}

func (r *UserRequest) Fields() repository.UserFields {
	return repository.UserFields{Name: strings.TrimSpace(deref(r.Name))}
}

func (r *UserRequest) ToPatch() repository.UserPatch {
	p := repository.UserPatch{Password: r.Password}
	if r.Email != nil {
		email := strings.TrimSpace(*r.Email)
		p.Email = &email
	}
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		p.Name = &name
	}
	return p
}

// UserResponse never carries the password.
type UserResponse struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{Email: u.Email, Name: u.Name}
}

// TokenRequest is the body of /user/token. The password is not trimmed.
type TokenRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *TokenRequest) Validate() validation.Violations {
	v := validation.Violations{}
	validation.Required("email", r.Email, v)
	if r.Password == "" {
		v["password"] = "required"
	}
	return v
}

type TokenResponse struct {
	Token string `json:"token"`
}
