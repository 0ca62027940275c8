package repository

import (
	"context"

	"libraryhub/models"
)

// UserRepository defines the interface for user operations
type UserRepository interface {
	// CreateUser hashes the password carried in user.Password and stores the
	// user. Returns ErrDuplicate when the username or email is taken.
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
}
