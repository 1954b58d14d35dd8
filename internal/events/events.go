package events

import (
	"time"

	"github.com/google/uuid"
)

// Topics this service produces to and consumes from.
const (
	TopicReservationEvents = "reservation.events"
	TopicStayEvents        = "stay.events"
)

// Event types carried in the CloudEvent envelope.
const (
	ReservationConfirmed = "reservation.confirmed"
	ReservationCanceled  = "reservation.canceled"
	ReservationCompleted = "reservation.completed"

	StayCheckedOut = "stay.checked_out"
)

// ReservationConfirmedEvent is published when a booking is created.
type ReservationConfirmedEvent struct {
	BookingID       uuid.UUID `json:"booking_id"`
	PropertyID      uuid.UUID `json:"property_id"`
	HostID          uuid.UUID `json:"host_id"`
	RenterID        uuid.UUID `json:"renter_id"`
	CheckInDate     time.Time `json:"check_in_date"`
	CheckOutDate    time.Time `json:"check_out_date"`
	NumberOfGuests  int       `json:"number_of_guests"`
	TotalPriceCents int64     `json:"total_price_cents"`
	OccurredAt      time.Time `json:"occurred_at"`
}

// ReservationCanceledEvent is published when a booking is canceled.
type ReservationCanceledEvent struct {
	BookingID   uuid.UUID `json:"booking_id"`
	PropertyID  uuid.UUID `json:"property_id"`
	CanceledBy  uuid.UUID `json:"canceled_by"`
	Reason      string    `json:"reason,omitempty"`
	CheckInDate time.Time `json:"check_in_date"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// ReservationCompletedEvent is published when a stay finishes.
type ReservationCompletedEvent struct {
	BookingID       uuid.UUID `json:"booking_id"`
	PropertyID      uuid.UUID `json:"property_id"`
	HostID          uuid.UUID `json:"host_id"`
	RenterID        uuid.UUID `json:"renter_id"`
	TotalPriceCents int64     `json:"total_price_cents"`
	OccurredAt      time.Time `json:"occurred_at"`
}

// StayCheckedOutEvent is emitted by the stay-tracking system when a guest
// checks out; it drives the confirmed -> completed transition here.
type StayCheckedOutEvent struct {
	BookingID  uuid.UUID `json:"booking_id"`
	RecordedBy uuid.UUID `json:"recorded_by"`
	OccurredAt time.Time `json:"occurred_at"`
}
