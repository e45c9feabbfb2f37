package repository

import (
	"context"

	"cabbooking/internal/domain"
)

// DriverRepository defines the persistence operations for drivers.
type DriverRepository interface {
	// Create adds a new driver.
	Create(ctx context.Context, driver *domain.Driver) error

	// GetByID retrieves an active driver by ID.
	GetByID(ctx context.Context, id string) (*domain.Driver, error)
}
