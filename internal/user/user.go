package user

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a user cannot be resolved.
var ErrNotFound = errors.New("user not found")

// ErrAlreadyExists is returned when the username is taken.
var ErrAlreadyExists = errors.New("user already exists")

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
