package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ListFilter narrows a booking listing. A nil Status means all statuses.
type ListFilter struct {
	Status *BookingStatus
}

// BookingRepository defines the persistence contract for booking aggregates.
type BookingRepository interface {
	// FindByID retrieves a booking by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)

	// FindByRenterID retrieves bookings made by a renter with pagination.
	FindByRenterID(ctx context.Context, renterID uuid.UUID, filter ListFilter, page, limit int) ([]*Booking, int64, error)

	// FindByHostID retrieves bookings on a host's properties with pagination.
	FindByHostID(ctx context.Context, hostID uuid.UUID, filter ListFilter, page, limit int) ([]*Booking, int64, error)

	// ExistsOverlapping reports whether any pending or confirmed booking on
	// the property overlaps the half-open range [checkIn, checkOut).
	ExistsOverlapping(ctx context.Context, propertyID uuid.UUID, checkIn, checkOut time.Time) (bool, error)

	// ListAll retrieves all bookings with pagination (admin).
	ListAll(ctx context.Context, page, limit int) ([]*Booking, int64, error)

	// CountByStatus returns booking counts grouped by status (admin).
	CountByStatus(ctx context.Context) (map[string]int64, error)

	// Save persists a new booking. The store enforces at most one active
	// booking per conflicting interval; a lost race surfaces as a
	// date-conflict error.
	Save(ctx context.Context, booking *Booking) error

	// Update persists changes to an existing booking with optimistic locking.
	Update(ctx context.Context, booking *Booking) error
}
