// Package models defines the user account entity.
package models

import (
	"strings"
	"time"

	id "github.com/L968/trecco-api/pkg/domain"
	dErrors "github.com/L968/trecco-api/pkg/domain-errors"
)

// Namespaced error codes for the users module.
const (
	CodeUserNotFound           dErrors.Code = "User.NotFound"
	CodeUserEmailTaken         dErrors.Code = "User.EmailTaken"
	CodeUserInvalidCredentials dErrors.Code = "User.InvalidCredentials"
)

// User is an account that can own boards and be added as a board member.
// PasswordHash is a bcrypt hash; the plaintext never leaves the service layer.
type User struct {
	ID           id.UserID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewUser constructs a user with an already-hashed password.
func NewUser(name, email, passwordHash string, now time.Time) (*User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if email == "" || !strings.Contains(email, "@") {
		return nil, dErrors.New(dErrors.CodeValidation, "a valid email address is required")
	}
	if name == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "name cannot be empty")
	}
	if passwordHash == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "password hash is required")
	}

	return &User{
		ID:           id.NewUserID(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now.UTC(),
	}, nil
}
