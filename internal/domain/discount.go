package domain

import "time"

// MaxDiscountCodeLength is the longest code a discount can carry.
const MaxDiscountCodeLength = 50

// Discount is a promotion code that can be attached to rides.
// ValidFrom and ValidTo are calendar dates, both inclusive; nil means open-ended.
type Discount struct {
	ID          string
	Code        string
	Description string
	Percentage  int
	ValidFrom   *time.Time
	ValidTo     *time.Time
	Deleted     bool
	CreatedAt   time.Time
}

// ActiveOn reports whether the discount is usable on the calendar day of t.
// Only the year, month and day of t are considered.
func (d *Discount) ActiveOn(t time.Time) bool {
	if d.Deleted {
		return false
	}
	day := civilDate(t)
	if d.ValidFrom != nil && civilDate(*d.ValidFrom) > day {
		return false
	}
	if d.ValidTo != nil && civilDate(*d.ValidTo) < day {
		return false
	}
	return true
}

// civilDate packs a date into an integer that orders like the calendar.
func civilDate(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}
