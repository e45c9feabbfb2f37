package domain

import "time"

// RideStatus represents the current status of a ride.
type RideStatus string

const (
	RideStatusRequested RideStatus = "REQUESTED"
	RideStatusAccepted  RideStatus = "ACCEPTED"
	RideStatusOngoing   RideStatus = "ONGOING"
	RideStatusCompleted RideStatus = "COMPLETED"
	RideStatusCancelled RideStatus = "CANCELLED"
)

// Ride represents a booked trip. Related entities are referenced by id only;
// DriverID and VehicleID are empty when not assigned.
type Ride struct {
	ID               string
	UserID           string
	DriverID         string
	VehicleID        string
	PickupLocationID string
	DropLocationID   string
	Status           RideStatus
	Fare             *float64
	DistanceKm       *float64
	StartTime        *time.Time
	EndTime          *time.Time
	Discounts        []Discount
	Deleted          bool
	CreatedAt        time.Time
}

// DiscountCodes returns the codes of the attached discounts.
func (r *Ride) DiscountCodes() []string {
	codes := make([]string, 0, len(r.Discounts))
	for _, d := range r.Discounts {
		codes = append(codes, d.Code)
	}
	return codes
}

// RideDetails is a ride with its related records loaded.
type RideDetails struct {
	Ride    *Ride
	Pickup  *Location
	Drop    *Location
	Payment *Payment
	Ratings []Rating
}
