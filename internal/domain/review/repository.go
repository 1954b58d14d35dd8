package review

import (
	"context"

	"github.com/google/uuid"
)

// ReviewRepository defines persistence operations for stay reviews.
type ReviewRepository interface {
	// Save persists a new review. The store enforces one review per booking.
	Save(ctx context.Context, review *Review) error
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*Review, error)
	FindByPropertyID(ctx context.Context, propertyID uuid.UUID, page, limit int) ([]*Review, int64, error)
}
