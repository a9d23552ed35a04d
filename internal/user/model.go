// File: internal/user/model.go
package user

import (
	"time"
)

// User represents the user model in the database. IDs are opaque strings:
// locally-registered users get a generated "u_" id, Google users keep the
// provider's subject id (or a generated "g_" fallback when it is absent).
type User struct {
	ID           string     `gorm:"type:varchar(64);primaryKey"`
	Email        string     `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash *string    `gorm:"type:varchar(255)"` // Pointer to allow NULL; nil for provider accounts
	Name         string     `gorm:"type:varchar(255)"`
	Picture      string     `gorm:"type:text"`
	Provider     string     `gorm:"type:varchar(32);not null;default:'local'"`
	CreatedAt    time.Time  `gorm:"column:created_at;not null"`
	LastSeenAt   *time.Time `gorm:"column:last_seen_at"`
}

// TableName specifies the table name for the User model.
func (User) TableName() string {
	return "users"
}

// Sanitize removes sensitive information like the password hash.
func (u *User) Sanitize() {
	u.PasswordHash = nil
}

func (u *User) GetID() string {
	return u.ID
}

func (u *User) GetEmail() string {
	return u.Email
}

func (u *User) GetProvider() string {
	return u.Provider
}

// --- DTOs for API requests/responses ---

// RegisterRequest carries one of two identity claims: an email/password pair
// or a provider-issued credential blob. Presence decides the flow; the
// service validates whichever claim is present.
type RegisterRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	Credential string `json:"credential"`
}

// UserResponse defines the structure for user data sent in API responses.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Picture   string    `json:"picture"`
	Provider  string    `json:"provider"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToUserResponse converts a User model to a UserResponse DTO.
func ToUserResponse(user *User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Picture:   user.Picture,
		Provider:  user.Provider,
		CreatedAt: user.CreatedAt,
	}
}

// AuthResult is what a successful pass through the registration/login flow
// yields: the user row touched, exactly one token, and an optional note
// ("existing" when the call was a convenience re-login).
type AuthResult struct {
	User  *User
	Token string
	Note  string
}
