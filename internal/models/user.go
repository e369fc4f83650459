package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User is an account row in PostgreSQL. Password is empty for accounts that
// only ever signed in through an OAuth provider.
type User struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name"`
	Email       string    `json:"email" gorm:"uniqueIndex"` // stored lower-cased, so uniqueness is case-insensitive
	Password    string    `json:"-"`
	FirebaseUID string    `json:"firebase_uid,omitempty" gorm:"index"` // provider UID for OAuth accounts; empty for credential accounts
	Image       string    `json:"image,omitempty"` // avatar URL on the media CDN
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UserCompact is the projection embedded wherever another entity references a
// user (reel author, notification actor).
type UserCompact struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

// ToCompact returns the display projection of the user.
func (u *User) ToCompact() UserCompact {
	return UserCompact{ID: u.ID, Name: u.Name, Image: u.Image}
}

// RegisterRequest defines the request body for credential registration
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// SignInRequest defines the request body for credential sign-in
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest defines the request body for profile updates
type UpdateProfileRequest struct {
	Name  string `json:"name,omitempty" validate:"omitempty,min=2,max=50"`
	Image string `json:"image,omitempty" validate:"omitempty,url"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
