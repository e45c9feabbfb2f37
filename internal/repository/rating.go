package repository

import (
	"context"

	"cabbooking/internal/domain"
)

// RatingRepository defines the read operations for ratings.
type RatingRepository interface {
	// ListByRideID returns the active ratings left on a ride.
	ListByRideID(ctx context.Context, rideID string) ([]domain.Rating, error)
}
