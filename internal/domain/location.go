package domain

import (
	"math"
	"time"
)

// CoordinateScale is the number of decimal places stored for latitude and longitude.
const CoordinateScale = 6

// Location is a recorded coordinate pair used as a ride pickup or drop point.
type Location struct {
	ID         string
	Latitude   float64
	Longitude  float64
	RecordedAt time.Time
	Deleted    bool
}

// RoundCoordinate rounds a coordinate to the stored precision.
func RoundCoordinate(v float64) float64 {
	p := math.Pow10(CoordinateScale)
	return math.Round(v*p) / p
}
