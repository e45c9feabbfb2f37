package service

import (
	"errors"
	"fmt"

	"cabbooking/internal/repository"
)

// ErrInvalidArgument is the parent of every input validation error.
var ErrInvalidArgument = errors.New("invalid argument")

var (
	// ErrUserNotFound is returned when the rider is missing or soft-deleted.
	ErrUserNotFound = fmt.Errorf("user %w", repository.ErrNotFound)

	// ErrDriverNotFound is returned when the driver is missing or soft-deleted.
	ErrDriverNotFound = fmt.Errorf("driver %w", repository.ErrNotFound)

	// ErrVehicleNotFound is returned when the vehicle is missing or soft-deleted.
	ErrVehicleNotFound = fmt.Errorf("vehicle %w", repository.ErrNotFound)

	// ErrLocationNotFound is returned when a referenced location is missing or soft-deleted.
	ErrLocationNotFound = fmt.Errorf("location %w", repository.ErrNotFound)

	// ErrRideNotFound is returned when the ride is missing or soft-deleted.
	ErrRideNotFound = fmt.Errorf("ride %w", repository.ErrNotFound)

	// ErrDiscountNotFound is returned when no usable discount has the requested code.
	ErrDiscountNotFound = fmt.Errorf("discount %w", repository.ErrNotFound)
)

var (
	// ErrLocationCoordinatesMissing is returned when a location spec has neither an id nor both coordinates.
	ErrLocationCoordinatesMissing = fmt.Errorf("%w: location requires an id or both latitude and longitude", ErrInvalidArgument)

	// ErrInvalidCoordinates is returned when latitude or longitude is out of range.
	ErrInvalidCoordinates = fmt.Errorf("%w: coordinates out of range", ErrInvalidArgument)

	// ErrInvalidFare is returned when a supplied fare is not positive.
	ErrInvalidFare = fmt.Errorf("%w: fare must be greater than zero", ErrInvalidArgument)

	// ErrInvalidDistance is returned when a supplied distance is not positive.
	ErrInvalidDistance = fmt.Errorf("%w: distance must be greater than zero", ErrInvalidArgument)

	// ErrInvalidRiderID is returned when rider ID is empty.
	ErrInvalidRiderID = fmt.Errorf("%w: rider id is required", ErrInvalidArgument)

	// ErrInvalidMinFare is returned when a minimum fare filter is negative.
	ErrInvalidMinFare = fmt.Errorf("%w: minimum fare must not be negative", ErrInvalidArgument)

	// ErrInvalidRideID is returned when ride ID is empty.
	ErrInvalidRideID = fmt.Errorf("%w: ride id is required", ErrInvalidArgument)

	// ErrInvalidPassword is returned when a registration password is too short.
	ErrInvalidPassword = fmt.Errorf("%w: password must be at least 8 characters", ErrInvalidArgument)

	// ErrInvalidCapacity is returned when a vehicle capacity is not positive.
	ErrInvalidCapacity = fmt.Errorf("%w: capacity must be greater than zero", ErrInvalidArgument)
)

// notFoundAs replaces a generic repository.ErrNotFound with a typed one.
func notFoundAs(err, typed error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return typed
	}
	return err
}
