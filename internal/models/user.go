package models

import (
	"strings"
	"time"
)

// User represents an account that owns recipes, tags and ingredients.
type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Email       string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Name        string    `gorm:"size:255;not null;default:''" json:"name"`
	Password    string    `gorm:"size:255;not null" json:"-"` // Hashed, never exposed in JSON
	IsActive    bool      `gorm:"not null;default:true" json:"is_active"`
	IsStaff     bool      `gorm:"not null;default:false" json:"is_staff"`
	IsSuperuser bool      `gorm:"not null;default:false" json:"is_superuser"`
}

func (u *User) String() string { return u.Name }

// Token is the opaque bearer credential issued to a user. A user holds at most one.
type Token struct {
	Key       string    `gorm:"primaryKey;size:40" json:"token"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"-"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `json:"-"`
}

// NormalizeEmail lower-cases the domain part of an address and keeps the local
// part as typed. The split happens at the last "@".
func NormalizeEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at] + "@" + strings.ToLower(email[at+1:])
}
