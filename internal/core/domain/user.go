package domain

import (
	"errors"
	"time"
)

var ErrUserExists = errors.New("username already taken")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrNoActiveSession = errors.New("no active session")

// User models a registered account that owns chatbots.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
