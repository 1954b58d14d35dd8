package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/staynest/service-reservation/internal/common/auth"
	"github.com/staynest/service-reservation/internal/common/clock"
	"github.com/staynest/service-reservation/internal/common/domain"
	"github.com/staynest/service-reservation/internal/common/kafka"
	bookingDomain "github.com/staynest/service-reservation/internal/domain/booking"
	propertyDomain "github.com/staynest/service-reservation/internal/domain/property"
	"github.com/staynest/service-reservation/internal/events"
)

// CreateBookingRequest holds the data needed to create a new booking.
type CreateBookingRequest struct {
	PropertyID      uuid.UUID `json:"property_id" binding:"required"`
	CheckInDate     time.Time `json:"check_in_date" binding:"required"`
	CheckOutDate    time.Time `json:"check_out_date" binding:"required"`
	NumberOfGuests  int       `json:"number_of_guests" binding:"required,gt=0"`
	SpecialRequests string    `json:"special_requests"`
}

// UpdateBookingStatusRequest holds a caller-supplied status change.
type UpdateBookingStatusRequest struct {
	Status             string `json:"status" binding:"required"`
	CancellationReason string `json:"cancellation_reason"`
}

// PropertySummaryDTO is the denormalized listing snippet attached to a
// booking for client display.
type PropertySummaryDTO struct {
	ID               uuid.UUID `json:"id"`
	Title            string    `json:"title"`
	City             string    `json:"city"`
	Country          string    `json:"country"`
	NightlyRateCents int64     `json:"nightly_rate_cents"`
	CoverImageURL    string    `json:"cover_image_url,omitempty"`
}

// BookingDTO is the response representation of a booking.
type BookingDTO struct {
	ID                 uuid.UUID           `json:"id"`
	PropertyID         uuid.UUID           `json:"property_id"`
	HostID             uuid.UUID           `json:"host_id"`
	RenterID           uuid.UUID           `json:"renter_id"`
	CheckInDate        time.Time           `json:"check_in_date"`
	CheckOutDate       time.Time           `json:"check_out_date"`
	Nights             int                 `json:"nights"`
	NumberOfGuests     int                 `json:"number_of_guests"`
	TotalPriceCents    int64               `json:"total_price_cents"`
	Status             string              `json:"status"`
	CancellationReason string              `json:"cancellation_reason,omitempty"`
	SpecialRequests    string              `json:"special_requests,omitempty"`
	CanceledAt         *time.Time          `json:"canceled_at,omitempty"`
	Property           *PropertySummaryDTO `json:"property,omitempty"`
	Version            int64               `json:"version"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
}

// cancellationCutoff is how close to check-in a booking may still be canceled.
// Exactly at the cutoff counts as inside the forbidden window.
const cancellationCutoff = 24 * time.Hour

// BookingService is the application service orchestrating the reservation
// engine: creation, transitions, cancellation and access control.
type BookingService struct {
	bookings   bookingDomain.BookingRepository
	properties propertyDomain.PropertyRepository
	pricing    bookingDomain.PricingStrategy
	producer   *kafka.Producer
	clock      clock.Clock
	logger     *zap.Logger
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	bookings bookingDomain.BookingRepository,
	properties propertyDomain.PropertyRepository,
	pricing bookingDomain.PricingStrategy,
	producer *kafka.Producer,
	clk clock.Clock,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		bookings:   bookings,
		properties: properties,
		pricing:    pricing,
		producer:   producer,
		clock:      clk,
		logger:     logger,
	}
}

// CreateBooking validates a reservation request end to end and persists a
// confirmed booking. Validation is fail-fast in a fixed order: actor, dates,
// property existence, property state, capacity, availability.
func (s *BookingService) CreateBooking(ctx context.Context, actor auth.Actor, req CreateBookingRequest) (*BookingDTO, error) {
	if actor.IsAnonymous() {
		return nil, domain.NewUnauthenticatedError()
	}
	if actor.Role != auth.RoleRenter {
		return nil, domain.NewForbiddenError("only renters can create bookings")
	}

	now := s.clock.Now()
	if req.CheckInDate.Before(now) {
		return nil, domain.NewInvalidDateRangeError("check-in date cannot be in the past")
	}

	stay, err := bookingDomain.NewStayRange(req.CheckInDate, req.CheckOutDate)
	if err != nil {
		return nil, err
	}
	if stay.Nights() < 1 {
		return nil, domain.NewInvalidDateRangeError("stay must cover at least one night")
	}

	prop, err := s.properties.FindByID(ctx, req.PropertyID)
	if err != nil {
		return nil, err
	}
	if !prop.IsActive() {
		return nil, domain.NewPropertyUnavailableError()
	}
	if req.NumberOfGuests > prop.MaxGuests() {
		return nil, domain.NewCapacityExceededError(prop.MaxGuests())
	}

	// Availability is evaluated against live store state. The store's
	// exclusion constraint covers the window between this check and the
	// insert below.
	taken, err := s.bookings.ExistsOverlapping(ctx, prop.ID(), stay.CheckIn(), stay.CheckOut())
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.NewDateConflictError()
	}

	totalPriceCents, err := s.pricing.Calculate(bookingDomain.PricingParams{
		Nights:           stay.Nights(),
		NightlyRateCents: prop.NightlyRateCents(),
	})
	if err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	bk, err := bookingDomain.NewBooking(
		prop.ID(),
		prop.HostID(),
		actor.ID,
		stay,
		req.NumberOfGuests,
		totalPriceCents,
		req.SpecialRequests,
		now,
	)
	if err != nil {
		return nil, err
	}

	if err := s.bookings.Save(ctx, bk); err != nil {
		return nil, err
	}

	s.logger.Info("booking created",
		zap.String("booking_id", bk.ID().String()),
		zap.String("property_id", prop.ID().String()),
		zap.Int64("total_price_cents", totalPriceCents),
	)

	s.publishConfirmed(ctx, bk)

	result := toBookingDTO(bk)
	result.Property = toPropertySummary(prop)
	return &result, nil
}

// GetBooking retrieves a single booking, enforcing the access guard.
func (s *BookingService) GetBooking(ctx context.Context, actor auth.Actor, bookingID uuid.UUID) (*BookingDTO, error) {
	if actor.IsAnonymous() {
		return nil, domain.NewUnauthenticatedError()
	}

	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !bk.CanBeViewedBy(actor.ID) {
		return nil, domain.NewForbiddenError("you are not a party to this booking")
	}

	result := toBookingDTO(bk)
	if prop, err := s.properties.FindByID(ctx, bk.PropertyID()); err == nil {
		result.Property = toPropertySummary(prop)
	} else {
		// Display enrichment only; the booking itself is authoritative.
		s.logger.Warn("failed to enrich booking with property summary",
			zap.String("booking_id", bk.ID().String()),
			zap.Error(err),
		)
	}
	return &result, nil
}

// ListBookings returns the actor's bookings: renters see bookings they made,
// hosts see bookings on their properties. An optional status filters the list.
func (s *BookingService) ListBookings(ctx context.Context, actor auth.Actor, statusFilter string, page, limit int) (*domain.PaginatedResult[BookingDTO], error) {
	if actor.IsAnonymous() {
		return nil, domain.NewUnauthenticatedError()
	}

	filter := bookingDomain.ListFilter{}
	if statusFilter != "" {
		status, err := bookingDomain.ParseBookingStatus(statusFilter)
		if err != nil {
			return nil, domain.NewValidationError(err.Error())
		}
		filter.Status = &status
	}

	var (
		items []*bookingDomain.Booking
		total int64
		err   error
	)
	switch actor.Role {
	case auth.RoleHost:
		items, total, err = s.bookings.FindByHostID(ctx, actor.ID, filter, page, limit)
	default:
		items, total, err = s.bookings.FindByRenterID(ctx, actor.ID, filter, page, limit)
	}
	if err != nil {
		return nil, err
	}

	dtos := make([]BookingDTO, len(items))
	for i, bk := range items {
		dtos[i] = toBookingDTO(bk)
	}
	result := domain.NewPaginatedResult(dtos, total, page, limit)
	return &result, nil
}

// UpdateBookingStatus applies a caller-supplied status change through the
// transition machine. The booking is re-fetched so the table is evaluated
// against the latest stored status, and the write is optimistically locked.
func (s *BookingService) UpdateBookingStatus(ctx context.Context, actor auth.Actor, bookingID uuid.UUID, req UpdateBookingStatusRequest) (*BookingDTO, error) {
	if actor.IsAnonymous() {
		return nil, domain.NewUnauthenticatedError()
	}

	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !bk.CanBeModifiedBy(actor.ID) {
		return nil, domain.NewForbiddenError("you are not a party to this booking")
	}

	target, err := bookingDomain.ParseBookingStatus(req.Status)
	if err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	if err := bk.ChangeStatus(target, req.CancellationReason, s.clock.Now()); err != nil {
		return nil, err
	}

	bk.IncrementVersion()
	if err := s.bookings.Update(ctx, bk); err != nil {
		return nil, err
	}

	s.publishTransition(ctx, bk, actor.ID)

	result := toBookingDTO(bk)
	return &result, nil
}

// CancelBooking cancels a booking, layering the cancellation policy on top
// of the generic transition: not already canceled, not completed, and more
// than 24 hours before check-in.
func (s *BookingService) CancelBooking(ctx context.Context, actor auth.Actor, bookingID uuid.UUID, reason string) (*BookingDTO, error) {
	if actor.IsAnonymous() {
		return nil, domain.NewUnauthenticatedError()
	}

	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !bk.CanBeModifiedBy(actor.ID) {
		return nil, domain.NewForbiddenError("you are not a party to this booking")
	}

	switch bk.Status() {
	case bookingDomain.StatusCanceled:
		return nil, domain.NewAlreadyCanceledError()
	case bookingDomain.StatusCompleted:
		return nil, domain.NewImmutableError("cannot cancel completed booking")
	}

	now := s.clock.Now()
	if bk.Stay().CheckIn().Sub(now) <= cancellationCutoff {
		return nil, domain.NewCancellationWindowClosedError()
	}

	if err := bk.ChangeStatus(bookingDomain.StatusCanceled, reason, now); err != nil {
		return nil, err
	}

	bk.IncrementVersion()
	if err := s.bookings.Update(ctx, bk); err != nil {
		return nil, err
	}

	s.logger.Info("booking canceled",
		zap.String("booking_id", bk.ID().String()),
		zap.String("canceled_by", actor.ID.String()),
	)

	s.publishCanceled(ctx, bk, actor.ID)

	result := toBookingDTO(bk)
	return &result, nil
}

// CompleteFromCheckout transitions a booking to completed on behalf of the
// stay-tracking system. Trusted system-to-system path: no per-actor guard.
func (s *BookingService) CompleteFromCheckout(ctx context.Context, bookingID uuid.UUID) error {
	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return err
	}

	if err := bk.ChangeStatus(bookingDomain.StatusCompleted, "", s.clock.Now()); err != nil {
		return err
	}

	bk.IncrementVersion()
	if err := s.bookings.Update(ctx, bk); err != nil {
		return err
	}

	s.publishCompleted(ctx, bk)
	return nil
}

// IsPropertyAvailable answers the public availability probe for a property
// and half-open date range.
func (s *BookingService) IsPropertyAvailable(ctx context.Context, propertyID uuid.UUID, checkIn, checkOut time.Time) (bool, error) {
	stay, err := bookingDomain.NewStayRange(checkIn, checkOut)
	if err != nil {
		return false, err
	}

	if _, err := s.properties.FindByID(ctx, propertyID); err != nil {
		return false, err
	}

	taken, err := s.bookings.ExistsOverlapping(ctx, propertyID, stay.CheckIn(), stay.CheckOut())
	if err != nil {
		return false, err
	}
	return !taken, nil
}

// --- Admin methods ---

// BookingStatsDTO holds booking statistics for the admin dashboard.
type BookingStatsDTO struct {
	TotalBookings int64            `json:"total_bookings"`
	ByStatus      map[string]int64 `json:"by_status"`
}

// ListAllBookings returns a paginated list of all bookings (admin).
func (s *BookingService) ListAllBookings(ctx context.Context, page, limit int) ([]BookingDTO, int64, error) {
	items, total, err := s.bookings.ListAll(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}

	dtos := make([]BookingDTO, len(items))
	for i, bk := range items {
		dtos[i] = toBookingDTO(bk)
	}
	return dtos, total, nil
}

// GetBookingStats returns aggregate booking statistics (admin).
func (s *BookingService) GetBookingStats(ctx context.Context) (*BookingStatsDTO, error) {
	counts, err := s.bookings.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, c := range counts {
		total += c
	}
	return &BookingStatsDTO{TotalBookings: total, ByStatus: counts}, nil
}

// --- Helpers ---

func toBookingDTO(bk *bookingDomain.Booking) BookingDTO {
	return BookingDTO{
		ID:                 bk.ID(),
		PropertyID:         bk.PropertyID(),
		HostID:             bk.HostID(),
		RenterID:           bk.RenterID(),
		CheckInDate:        bk.Stay().CheckIn(),
		CheckOutDate:       bk.Stay().CheckOut(),
		Nights:             bk.Stay().Nights(),
		NumberOfGuests:     bk.NumberOfGuests(),
		TotalPriceCents:    bk.TotalPriceCents(),
		Status:             string(bk.Status()),
		CancellationReason: bk.CancellationReason(),
		SpecialRequests:    bk.SpecialRequests(),
		CanceledAt:         bk.CanceledAt(),
		Version:            bk.Version(),
		CreatedAt:          bk.CreatedAt(),
		UpdatedAt:          bk.UpdatedAt(),
	}
}

func toPropertySummary(p *propertyDomain.Property) *PropertySummaryDTO {
	return &PropertySummaryDTO{
		ID:               p.ID(),
		Title:            p.Title(),
		City:             p.City(),
		Country:          p.Country(),
		NightlyRateCents: p.NightlyRateCents(),
		CoverImageURL:    p.CoverImageURL(),
	}
}

func (s *BookingService) publishTransition(ctx context.Context, bk *bookingDomain.Booking, actorID uuid.UUID) {
	switch bk.Status() {
	case bookingDomain.StatusConfirmed:
		s.publishConfirmed(ctx, bk)
	case bookingDomain.StatusCanceled:
		s.publishCanceled(ctx, bk, actorID)
	case bookingDomain.StatusCompleted:
		s.publishCompleted(ctx, bk)
	}
}

func (s *BookingService) publishConfirmed(ctx context.Context, bk *bookingDomain.Booking) {
	evt := events.ReservationConfirmedEvent{
		BookingID:       bk.ID(),
		PropertyID:      bk.PropertyID(),
		HostID:          bk.HostID(),
		RenterID:        bk.RenterID(),
		CheckInDate:     bk.Stay().CheckIn(),
		CheckOutDate:    bk.Stay().CheckOut(),
		NumberOfGuests:  bk.NumberOfGuests(),
		TotalPriceCents: bk.TotalPriceCents(),
		OccurredAt:      s.clock.Now(),
	}
	s.publishEvent(ctx, events.TopicReservationEvents, events.ReservationConfirmed, evt)
}

func (s *BookingService) publishCanceled(ctx context.Context, bk *bookingDomain.Booking, actorID uuid.UUID) {
	evt := events.ReservationCanceledEvent{
		BookingID:   bk.ID(),
		PropertyID:  bk.PropertyID(),
		CanceledBy:  actorID,
		Reason:      bk.CancellationReason(),
		CheckInDate: bk.Stay().CheckIn(),
		OccurredAt:  s.clock.Now(),
	}
	s.publishEvent(ctx, events.TopicReservationEvents, events.ReservationCanceled, evt)
}

func (s *BookingService) publishCompleted(ctx context.Context, bk *bookingDomain.Booking) {
	evt := events.ReservationCompletedEvent{
		BookingID:       bk.ID(),
		PropertyID:      bk.PropertyID(),
		HostID:          bk.HostID(),
		RenterID:        bk.RenterID(),
		TotalPriceCents: bk.TotalPriceCents(),
		OccurredAt:      s.clock.Now(),
	}
	s.publishEvent(ctx, events.TopicReservationEvents, events.ReservationCompleted, evt)
}

func (s *BookingService) publishEvent(ctx context.Context, topic, eventType string, data interface{}) {
	if s.producer == nil {
		return
	}

	cloudEvent, err := kafka.NewCloudEvent("service-reservation", eventType, data)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	if err := s.producer.PublishEvent(ctx, topic, cloudEvent); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("topic", topic),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}
