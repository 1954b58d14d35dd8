package review

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Review is a renter's rating of a completed stay. One review per booking.
type Review struct {
	id         uuid.UUID
	bookingID  uuid.UUID
	propertyID uuid.UUID
	renterID   uuid.UUID
	rating     int
	comment    string
	createdAt  time.Time
}

// NewReview creates a review with a rating between 1 and 5.
func NewReview(bookingID, propertyID, renterID uuid.UUID, rating int, comment string) (*Review, error) {
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("rating must be between 1 and 5, got %d", rating)
	}

	return &Review{
		id:         uuid.New(),
		bookingID:  bookingID,
		propertyID: propertyID,
		renterID:   renterID,
		rating:     rating,
		comment:    comment,
		createdAt:  time.Now().UTC(),
	}, nil
}

// Reconstruct rebuilds a Review from persistence.
func Reconstruct(id, bookingID, propertyID, renterID uuid.UUID, rating int, comment string, createdAt time.Time) *Review {
	return &Review{
		id:         id,
		bookingID:  bookingID,
		propertyID: propertyID,
		renterID:   renterID,
		rating:     rating,
		comment:    comment,
		createdAt:  createdAt,
	}
}

// Getters.
func (r *Review) ID() uuid.UUID         { return r.id }
func (r *Review) BookingID() uuid.UUID  { return r.bookingID }
func (r *Review) PropertyID() uuid.UUID { return r.propertyID }
func (r *Review) RenterID() uuid.UUID   { return r.renterID }
func (r *Review) Rating() int           { return r.rating }
func (r *Review) Comment() string       { return r.comment }
func (r *Review) CreatedAt() time.Time  { return r.createdAt }
