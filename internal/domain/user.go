package domain

import (
	"errors"
	"time"
)

var (
	// ErrEmailALreadyExists indicates the the user with the given email already exists.
	ErrEmailALreadyExists = errors.New("Email already exists")
	// ErrUserNotFound indicates the the user is not found.
	ErrUserNotFound = errors.New("User not found")
	// ErrWrongPassword indicates the wrong password for the given user.
	ErrWrongPassword = errors.New("Wrong password")
	// ErrRequiresRecentLogin indicates that the access token is too old for a sensitive operation.
	ErrRequiresRecentLogin = errors.New("Operation requires a recent login")
	// ErrTooManyRequests indicates too many failed re-authentication attempts in a row.
	ErrTooManyRequests = errors.New("Too many requests")
)

// User holds user account data.
type User struct {
	Email             string    `json:"email"`
	HashedPassword    string    `json:"hashed_password"`
	PasswordChangedAt time.Time `json:"password_changed_at,omitempty"`
	CreatedAt         time.Time `json:"created_at,omitempty"`
}

// CreateUserParams is the input data to create a user.
type CreateUserParams struct {
	Email          string `json:"email"`
	HashedPassword string `json:"hashed_password"`
}

// UserWihtoutPassword is User data excluding password data.
type UserWihtoutPassword struct {
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
