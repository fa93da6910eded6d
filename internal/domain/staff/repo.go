package staff

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when no user matches.
	ErrNotFound = errors.New("staff user not found")
	// ErrEmailTaken is returned when registering an email that already
	// has an account.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials covers both unknown email and wrong
	// password, so a login failure does not reveal which.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Repository is the storage contract for staff accounts.
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}
