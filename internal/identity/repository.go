package identity

import (
	"context"
	"errors"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrDuplicateUser = errors.New("username or id number already taken")
)

// Repository contains all DB interactions needed by the service.
type Repository interface {
	CreateUser(ctx context.Context, u *User) (*User, error)
	GetUserByID(ctx context.Context, id int64) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)

	UpdateProfile(ctx context.Context, id int64, firstName, lastName, email string, profilePicture *string) (*User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error

	ListByRole(ctx context.Context, role Role) ([]User, error)
}
