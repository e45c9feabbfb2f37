package repository

import (
	"context"
	"time"

	"cabbooking/internal/domain"
)

// RideRepository defines the persistence operations for rides.
// Every list method excludes soft-deleted rides; time bounds are inclusive.
type RideRepository interface {
	// Create persists a new ride together with its discount links.
	Create(ctx context.Context, ride *domain.Ride) error

	// GetByID retrieves an active ride by ID.
	GetByID(ctx context.Context, id string) (*domain.Ride, error)

	// ListCreatedBetween returns rides created within [start, end).
	ListCreatedBetween(ctx context.Context, start, end time.Time) ([]*domain.Ride, error)

	// ListByStatusEndedBetween returns rides in status whose end time is within [start, end).
	ListByStatusEndedBetween(ctx context.Context, status domain.RideStatus, start, end time.Time) ([]*domain.Ride, error)

	// ListByStatusesCreatedBetween returns rides in any of statuses created within [start, end).
	ListByStatusesCreatedBetween(ctx context.Context, statuses []domain.RideStatus, start, end time.Time) ([]*domain.Ride, error)

	// ListHighValueCreatedBetween returns rides created within [start, end) whose
	// distance exceeds minDistanceKm or whose fare exceeds minFare. NULL values never match.
	ListHighValueCreatedBetween(ctx context.Context, start, end time.Time, minDistanceKm, minFare float64) ([]*domain.Ride, error)

	// ListByDiscountCode returns distinct rides linked to a discount with the given code.
	ListByDiscountCode(ctx context.Context, code string) ([]*domain.Ride, error)
}
