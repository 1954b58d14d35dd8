package booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/staynest/service-reservation/internal/common/domain"
)

// Booking is the aggregate root for a reservation on a property. The host ID
// is copied from the property at creation time so access checks never need a
// second lookup, and so a later transfer of the property does not rewrite
// history.
type Booking struct {
	id         uuid.UUID
	propertyID uuid.UUID
	hostID     uuid.UUID
	renterID   uuid.UUID

	stay            StayRange
	numberOfGuests  int
	totalPriceCents int64
	status          BookingStatus

	cancellationReason string
	specialRequests    string
	canceledAt         *time.Time

	version   int64
	createdAt time.Time
	updatedAt time.Time
}

// NewBooking creates a confirmed booking. The platform has no payment
// authorization step, so creation yields confirmed directly; the pending
// state exists only for status updates submitted through the transition
// machine.
func NewBooking(
	propertyID, hostID, renterID uuid.UUID,
	stay StayRange,
	numberOfGuests int,
	totalPriceCents int64,
	specialRequests string,
	now time.Time,
) (*Booking, error) {
	if propertyID == uuid.Nil {
		return nil, domain.NewValidationError("property ID is required")
	}
	if hostID == uuid.Nil {
		return nil, domain.NewValidationError("host ID is required")
	}
	if renterID == uuid.Nil {
		return nil, domain.NewValidationError("renter ID is required")
	}
	if numberOfGuests <= 0 {
		return nil, domain.NewValidationError("number of guests must be positive")
	}
	if totalPriceCents < 0 {
		return nil, domain.NewValidationError("total price cannot be negative")
	}

	now = now.UTC()
	return &Booking{
		id:              uuid.New(),
		propertyID:      propertyID,
		hostID:          hostID,
		renterID:        renterID,
		stay:            stay,
		numberOfGuests:  numberOfGuests,
		totalPriceCents: totalPriceCents,
		status:          StatusConfirmed,
		specialRequests: specialRequests,
		version:         1,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

// Reconstruct rebuilds a Booking from persistence data (no validation).
func Reconstruct(
	id, propertyID, hostID, renterID uuid.UUID,
	stay StayRange,
	numberOfGuests int,
	totalPriceCents int64,
	status BookingStatus,
	cancellationReason, specialRequests string,
	canceledAt *time.Time,
	version int64,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:                 id,
		propertyID:         propertyID,
		hostID:             hostID,
		renterID:           renterID,
		stay:               stay,
		numberOfGuests:     numberOfGuests,
		totalPriceCents:    totalPriceCents,
		status:             status,
		cancellationReason: cancellationReason,
		specialRequests:    specialRequests,
		canceledAt:         canceledAt,
		version:            version,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}
}

// --- Getters ---

// ID returns the booking's unique identifier.
func (b *Booking) ID() uuid.UUID { return b.id }

// PropertyID returns the booked property's ID.
func (b *Booking) PropertyID() uuid.UUID { return b.propertyID }

// HostID returns the property host's user ID as snapshotted at creation.
func (b *Booking) HostID() uuid.UUID { return b.hostID }

// RenterID returns the reserving user's ID.
func (b *Booking) RenterID() uuid.UUID { return b.renterID }

// Stay returns the booked date range.
func (b *Booking) Stay() StayRange { return b.stay }

// NumberOfGuests returns the guest count.
func (b *Booking) NumberOfGuests() int { return b.numberOfGuests }

// TotalPriceCents returns the immutable total price in cents.
func (b *Booking) TotalPriceCents() int64 { return b.totalPriceCents }

// Status returns the current booking status.
func (b *Booking) Status() BookingStatus { return b.status }

// CancellationReason returns the reason supplied on cancellation, if any.
func (b *Booking) CancellationReason() string { return b.cancellationReason }

// SpecialRequests returns the renter's free-text requests.
func (b *Booking) SpecialRequests() string { return b.specialRequests }

// CanceledAt returns the cancellation time, or nil.
func (b *Booking) CanceledAt() *time.Time { return b.canceledAt }

// Version returns the entity version for optimistic locking.
func (b *Booking) Version() int64 { return b.version }

// CreatedAt returns the creation timestamp.
func (b *Booking) CreatedAt() time.Time { return b.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }

// --- Access control ---

// CanBeViewedBy reports whether the given user may read this booking.
// Only the booking's host and renter are party to it.
func (b *Booking) CanBeViewedBy(userID uuid.UUID) bool {
	return userID == b.hostID || userID == b.renterID
}

// CanBeModifiedBy reports whether the given user may mutate this booking.
// Identical to the view rule: both parties may request transitions.
func (b *Booking) CanBeModifiedBy(userID uuid.UUID) bool {
	return b.CanBeViewedBy(userID)
}

// --- Behavior ---

// ChangeStatus applies a status transition after validating it against the
// transition table. A transition into canceled records the reason and time.
func (b *Booking) ChangeStatus(target BookingStatus, reason string, now time.Time) error {
	if !b.status.CanTransitionTo(target) {
		return domain.NewInvalidTransitionError(string(b.status), string(target))
	}

	now = now.UTC()
	b.status = target
	if target == StatusCanceled {
		b.cancellationReason = reason
		b.canceledAt = &now
	}
	b.updatedAt = now
	return nil
}

// IncrementVersion bumps the version for optimistic locking.
func (b *Booking) IncrementVersion() {
	b.version++
}
