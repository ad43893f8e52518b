package travel

import "time"

// DateLayout is the calendar date format used on every boundary.
const DateLayout = "2006-01-02"

// MaxTripDays bounds the length of a synthesized itinerary.
const MaxTripDays = 10

// ParseDate parses a YYYY-MM-DD date, reporting field on failure.
func ParseDate(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, Invalid(field, "is required")
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, Invalid(field, "%q is not a YYYY-MM-DD date", value)
	}
	return t, nil
}

// DateRange is a validated inclusive range of calendar days.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// ParseRange parses start and end and checks start <= end.
func ParseRange(startField, start, endField, end string) (DateRange, error) {
	s, err := ParseDate(startField, start)
	if err != nil {
		return DateRange{}, err
	}
	e, err := ParseDate(endField, end)
	if err != nil {
		return DateRange{}, err
	}
	if e.Before(s) {
		return DateRange{}, Invalid(endField, "%s is before %s %s", end, startField, start)
	}
	return DateRange{Start: s, End: e}, nil
}

// Days is the inclusive number of days in the range.
func (r DateRange) Days() int {
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}

// Date returns the calendar date of the 1-based day index.
func (r DateRange) Date(day int) string {
	return r.Start.AddDate(0, 0, day-1).Format(DateLayout)
}
