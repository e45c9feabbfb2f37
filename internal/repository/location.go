package repository

import (
	"context"

	"cabbooking/internal/domain"
)

// LocationRepository defines the persistence operations for locations.
type LocationRepository interface {
	// Create persists a new location.
	Create(ctx context.Context, location *domain.Location) error

	// GetByID retrieves an active location by ID.
	GetByID(ctx context.Context, id string) (*domain.Location, error)
}
