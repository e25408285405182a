package daterange

import (
	"lodge/shared/constant"
	"lodge/shared/failure"
	"lodge/shared/timezone"
	"math"
	"time"
)

const hoursPerNight = 24

// Range is a half-open stay interval [CheckIn, CheckOut). A check-out date
// equal to another range's check-in date is not a conflict, which is what
// allows same-day turnover of a room.
type Range struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// New builds a Range, requiring check-out to fall strictly after check-in.
func New(checkIn, checkOut time.Time) (Range, error) {
	if checkIn.IsZero() || checkOut.IsZero() {
		return Range{}, failure.BadRequestFromString("check-in and check-out dates are required") //nolint:wrapcheck
	}

	if !checkOut.After(checkIn) {
		return Range{}, failure.BadRequestFromString("check-out date must be after check-in date") //nolint:wrapcheck
	}

	return Range{CheckIn: checkIn, CheckOut: checkOut}, nil
}

// Parse builds a Range from YYYY-MM-DD strings in the application timezone.
func Parse(checkIn, checkOut string) (Range, error) {
	start, err := timezone.Parse(constant.StayDateFormat, checkIn)
	if err != nil {
		return Range{}, failure.BadRequestFromString("invalid check-in date, expected YYYY-MM-DD") //nolint:wrapcheck
	}

	end, err := timezone.Parse(constant.StayDateFormat, checkOut)
	if err != nil {
		return Range{}, failure.BadRequestFromString("invalid check-out date, expected YYYY-MM-DD") //nolint:wrapcheck
	}

	return New(start, end)
}

// Overlaps reports whether the two half-open intervals intersect.
func (r Range) Overlaps(other Range) bool {
	return r.CheckIn.Before(other.CheckOut) && other.CheckIn.Before(r.CheckOut)
}

// Nights returns the billable number of nights, rounding partial days up.
// Both ends are normalized to midnight UTC first so that DST transitions in
// the application timezone cannot add or drop a night.
func (r Range) Nights() int {
	checkIn := midnightUTC(r.CheckIn)
	checkOut := midnightUTC(r.CheckOut)

	nights := int(math.Ceil(checkOut.Sub(checkIn).Hours() / hoursPerNight))
	if nights < 1 {
		return 1
	}

	return nights
}

func midnightUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
