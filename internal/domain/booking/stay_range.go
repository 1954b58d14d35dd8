package booking

import (
	"time"

	"github.com/staynest/service-reservation/internal/common/domain"
)

// StayRange is an immutable value object for a booked date range. The range
// is half-open: the check-in day is included, the check-out day is not, so
// two stays that touch at a boundary do not conflict.
type StayRange struct {
	checkIn  time.Time
	checkOut time.Time
}

// NewStayRange validates that checkOut is strictly after checkIn. A zero-night
// stay (equal timestamps) is rejected.
func NewStayRange(checkIn, checkOut time.Time) (StayRange, error) {
	if !checkOut.After(checkIn) {
		return StayRange{}, domain.NewInvalidDateRangeError("check-out date must be strictly after check-in date")
	}
	return StayRange{checkIn: checkIn.UTC(), checkOut: checkOut.UTC()}, nil
}

// CheckIn returns the start of the stay.
func (r StayRange) CheckIn() time.Time { return r.checkIn }

// CheckOut returns the end of the stay (exclusive).
func (r StayRange) CheckOut() time.Time { return r.checkOut }

// Nights returns the length of the stay as a whole calendar-day difference.
func (r StayRange) Nights() int {
	in := truncateToDay(r.checkIn)
	out := truncateToDay(r.checkOut)
	return int(out.Sub(in) / (24 * time.Hour))
}

// Overlaps reports whether the two half-open ranges share at least one night.
func (r StayRange) Overlaps(other StayRange) bool {
	return r.checkIn.Before(other.checkOut) && r.checkOut.After(other.checkIn)
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
