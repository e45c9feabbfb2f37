package repository

import (
	"context"

	"cabbooking/internal/domain"
)

// VehicleRepository defines the persistence operations for vehicles.
type VehicleRepository interface {
	// Create adds a new vehicle.
	Create(ctx context.Context, vehicle *domain.Vehicle) error

	// GetByID retrieves an active vehicle by ID.
	GetByID(ctx context.Context, id string) (*domain.Vehicle, error)
}
