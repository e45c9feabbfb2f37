package repository

import (
	"context"

	"cabbooking/internal/domain"
)

// PaymentRepository defines the read operations for payments.
type PaymentRepository interface {
	// GetByRideID retrieves the active payment of a ride.
	// Returns nil if the ride has no payment.
	GetByRideID(ctx context.Context, rideID string) (*domain.Payment, error)
}
