package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/staynest/service-reservation/internal/common/domain"
	bookingDomain "github.com/staynest/service-reservation/internal/domain/booking"
)

// Postgres error codes for constraint violations.
const (
	pgUniqueViolation    = "23505"
	pgExclusionViolation = "23P01"
)

// BookingModel is the GORM model for the bookings table.
type BookingModel struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey"`
	PropertyID         uuid.UUID  `gorm:"type:uuid;index;not null"`
	HostID             uuid.UUID  `gorm:"type:uuid;index;not null"`
	RenterID           uuid.UUID  `gorm:"type:uuid;index;not null"`
	CheckInDate        time.Time  `gorm:"not null"`
	CheckOutDate       time.Time  `gorm:"not null"`
	NumberOfGuests     int        `gorm:"not null"`
	TotalPriceCents    int64      `gorm:"not null"`
	Status             string     `gorm:"not null;size:20;index"`
	CancellationReason string     `gorm:"size:500"`
	SpecialRequests    string     `gorm:"size:1000"`
	CanceledAt         *time.Time `gorm:""`
	Version            int64      `gorm:"not null;default:1"`
	CreatedAt          time.Time  `gorm:"not null"`
	UpdatedAt          time.Time  `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "bookings"
}

// GormBookingRepository is the GORM-based implementation of BookingRepository.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// FindByID retrieves a booking by its unique identifier.
func (r *GormBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("booking", id.String())
		}
		return nil, domain.NewInternalError("failed to find booking by ID", err)
	}
	return toDomainBooking(&model)
}

// FindByRenterID retrieves bookings made by a renter with pagination.
func (r *GormBookingRepository) FindByRenterID(ctx context.Context, renterID uuid.UUID, filter bookingDomain.ListFilter, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	return r.findByColumn(ctx, "renter_id", renterID, filter, page, limit)
}

// FindByHostID retrieves bookings on a host's properties with pagination.
func (r *GormBookingRepository) FindByHostID(ctx context.Context, hostID uuid.UUID, filter bookingDomain.ListFilter, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	return r.findByColumn(ctx, "host_id", hostID, filter, page, limit)
}

func (r *GormBookingRepository) findByColumn(ctx context.Context, column string, userID uuid.UUID, filter bookingDomain.ListFilter, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	query := r.db.WithContext(ctx).Model(&BookingModel{}).Where(column+" = ?", userID)
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, domain.NewInternalError("failed to count bookings", err)
	}

	var models []BookingModel
	offset := (page - 1) * limit
	if err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, domain.NewInternalError("failed to find bookings", err)
	}

	bookings := make([]*bookingDomain.Booking, len(models))
	for i, m := range models {
		bk, err := toDomainBooking(&m)
		if err != nil {
			return nil, 0, err
		}
		bookings[i] = bk
	}
	return bookings, total, nil
}

// ExistsOverlapping reports whether any pending or confirmed booking on the
// property overlaps the half-open range [checkIn, checkOut). Two half-open
// intervals overlap iff each starts before the other ends.
func (r *GormBookingRepository) ExistsOverlapping(ctx context.Context, propertyID uuid.UUID, checkIn, checkOut time.Time) (bool, error) {
	statuses := make([]string, 0, 2)
	for _, s := range bookingDomain.ActiveStatuses() {
		statuses = append(statuses, string(s))
	}

	// Existence check only, so stop at the first match.
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&BookingModel{}).
		Where("property_id = ?", propertyID).
		Where("status IN ?", statuses).
		Where("check_in_date < ? AND check_out_date > ?", checkOut, checkIn).
		Limit(1).
		Pluck("id", &ids).Error
	if err != nil {
		return false, domain.NewInternalError("failed to check availability", err)
	}
	return len(ids) > 0, nil
}

// ListAll retrieves all bookings with pagination (admin).
func (r *GormBookingRepository) ListAll(ctx context.Context, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).Count(&total).Error; err != nil {
		return nil, 0, domain.NewInternalError("failed to count bookings", err)
	}

	var models []BookingModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, domain.NewInternalError("failed to list bookings", err)
	}

	bookings := make([]*bookingDomain.Booking, len(models))
	for i, m := range models {
		bk, err := toDomainBooking(&m)
		if err != nil {
			return nil, 0, err
		}
		bookings[i] = bk
	}
	return bookings, total, nil
}

// CountByStatus returns booking counts grouped by status (admin).
func (r *GormBookingRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}
	var results []statusCount
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).
		Select("status, count(*) as count").
		Group("status").
		Find(&results).Error; err != nil {
		return nil, domain.NewInternalError("failed to count by status", err)
	}

	counts := make(map[string]int64)
	for _, sc := range results {
		counts[sc.Status] = sc.Count
	}
	return counts, nil
}

// Save persists a new booking. The bookings_no_overlap exclusion constraint
// makes the insert the authoritative availability check: a conflicting
// concurrent insert loses and surfaces as a date-conflict error.
func (r *GormBookingRepository) Save(ctx context.Context, bk *bookingDomain.Booking) error {
	model := toBookingModel(bk)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isConstraintViolation(err) {
			return domain.NewDateConflictError()
		}
		return domain.NewInternalError("failed to save booking", err)
	}
	return nil
}

// Update persists changes to an existing booking with optimistic locking.
func (r *GormBookingRepository) Update(ctx context.Context, bk *bookingDomain.Booking) error {
	model := toBookingModel(bk)

	// Only update if the stored version matches the version this aggregate
	// was loaded at (IncrementVersion has already been called).
	expectedVersion := bk.Version() - 1
	result := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("id = ? AND version = ?", model.ID, expectedVersion).
		Updates(map[string]interface{}{
			"status":              model.Status,
			"cancellation_reason": model.CancellationReason,
			"canceled_at":         model.CanceledAt,
			"version":             model.Version,
			"updated_at":          model.UpdatedAt,
		})

	if result.Error != nil {
		return domain.NewInternalError("failed to update booking", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("booking was modified by another transaction")
	}
	return nil
}

// --- Conversion helpers ---

func toBookingModel(bk *bookingDomain.Booking) *BookingModel {
	return &BookingModel{
		ID:                 bk.ID(),
		PropertyID:         bk.PropertyID(),
		HostID:             bk.HostID(),
		RenterID:           bk.RenterID(),
		CheckInDate:        bk.Stay().CheckIn(),
		CheckOutDate:       bk.Stay().CheckOut(),
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

func toDomainBooking(m *BookingModel) (*bookingDomain.Booking, error) {
	status, err := bookingDomain.ParseBookingStatus(m.Status)
	if err != nil {
		return nil, domain.NewInternalError("corrupt booking status in store", err)
	}

	stay, err := bookingDomain.NewStayRange(m.CheckInDate, m.CheckOutDate)
	if err != nil {
		return nil, domain.NewInternalError("corrupt booking date range in store", err)
	}

	return bookingDomain.Reconstruct(
		m.ID,
		m.PropertyID,
		m.HostID,
		m.RenterID,
		stay,
		m.NumberOfGuests,
		m.TotalPriceCents,
		status,
		m.CancellationReason,
		m.SpecialRequests,
		m.CanceledAt,
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	), nil
}

// isConstraintViolation reports whether err is a unique or exclusion
// constraint violation from Postgres.
func isConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation || pgErr.Code == pgExclusionViolation
	}
	return false
}
