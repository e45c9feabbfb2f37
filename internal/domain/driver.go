package domain

import "time"

// DriverStatus represents the current status of a driver.
type DriverStatus string

const (
	DriverStatusAvailable DriverStatus = "AVAILABLE"
	DriverStatusOnRide    DriverStatus = "ON_RIDE"
	DriverStatusOffline   DriverStatus = "OFFLINE"
	DriverStatusInactive  DriverStatus = "INACTIVE"
)

// Driver represents a driver in the system.
// Phone, Email and LicenseNumber are unique across drivers; the store enforces it.
type Driver struct {
	ID            string
	Name          string
	Phone         string
	Email         string
	LicenseNumber string
	Rating        float64 // 0-5, two decimals
	Status        DriverStatus
	Deleted       bool
	CreatedAt     time.Time
}
