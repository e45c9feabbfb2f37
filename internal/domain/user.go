package domain

import "time"

// UserStatus represents the account status of a rider.
type UserStatus string

const (
	UserStatusActive   UserStatus = "ACTIVE"
	UserStatusInactive UserStatus = "INACTIVE"
	UserStatusBlocked  UserStatus = "BLOCKED"
)

// User represents a rider in the system.
type User struct {
	ID           string
	Name         string
	Phone        string
	Email        string
	PasswordHash string
	Status       UserStatus
	Deleted      bool
	CreatedAt    time.Time
}
