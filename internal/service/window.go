package service

import "time"

// TimeWindow is an inclusive [Start, End] range.
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

// Next returns the first instant after the window. Storage queries take it
// as an exclusive upper bound since Postgres rounds End up to Next.
func (w TimeWindow) Next() time.Time {
	return w.End.Add(time.Nanosecond)
}

// DayWindow returns the full calendar day containing date in loc:
// midnight through 23:59:59.999999999.
func DayWindow(date time.Time, loc *time.Location) TimeWindow {
	start := startOfDay(date, loc)
	return TimeWindow{
		Start: start,
		End:   start.AddDate(0, 0, 1).Add(-time.Nanosecond),
	}
}

// WeekWindow returns the Monday-starting week containing date in loc.
func WeekWindow(date time.Time, loc *time.Location) TimeWindow {
	day := startOfDay(date, loc)
	// Monday=1 ... Sunday=7
	isoWeekday := int(day.Weekday())
	if isoWeekday == 0 {
		isoWeekday = 7
	}
	start := day.AddDate(0, 0, -(isoWeekday - 1))
	return TimeWindow{
		Start: start,
		End:   start.AddDate(0, 0, 7).Add(-time.Nanosecond),
	}
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
