package repository

import (
	"context"

	"cabbooking/internal/domain"
)

// UserRepository defines the persistence operations for riders.
type UserRepository interface {
	// Create adds a new user.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves an active user by ID.
	GetByID(ctx context.Context, id string) (*domain.User, error)
}
