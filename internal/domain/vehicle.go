package domain

import "time"

// VehicleType represents the category of a vehicle.
type VehicleType string

const (
	VehicleTypeBike VehicleType = "BIKE"
	VehicleTypeAuto VehicleType = "AUTO"
	VehicleTypeCar  VehicleType = "CAR"
	VehicleTypeSUV  VehicleType = "SUV"
)

// Vehicle represents a vehicle, optionally owned by a driver.
type Vehicle struct {
	ID            string
	DriverID      string // empty when the vehicle has no owner
	VehicleNumber string
	Model         string
	Type          VehicleType
	Capacity      int
	Deleted       bool
	CreatedAt     time.Time
}
