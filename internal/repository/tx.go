package repository

import "context"

// TxRepositories groups the repositories bound to a single transaction.
type TxRepositories struct {
	Users     UserRepository
	Drivers   DriverRepository
	Vehicles  VehicleRepository
	Locations LocationRepository
	Discounts DiscountRepository
	Rides     RideRepository
}

// Transactor runs work as one all-or-nothing unit against the store.
type Transactor interface {
	// WithinTx calls fn with transaction-scoped repositories. The transaction
	// commits when fn returns nil and rolls back otherwise.
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos TxRepositories) error) error
}
