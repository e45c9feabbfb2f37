package domain

import "time"

// RatingActor identifies which side of a ride gave or received a rating.
type RatingActor string

const (
	RatingActorUser   RatingActor = "USER"
	RatingActorDriver RatingActor = "DRIVER"
)

// Rating is feedback left on a ride, valued 1 to 5.
type Rating struct {
	ID        string
	RideID    string
	GivenBy   RatingActor
	GivenTo   RatingActor
	Value     int
	Comments  string
	Deleted   bool
	CreatedAt time.Time
}
