package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/staynest/service-reservation/internal/common/domain"
	reviewDomain "github.com/staynest/service-reservation/internal/domain/review"
)

// ReviewModel is the GORM model for the reviews table.
type ReviewModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	BookingID  uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	PropertyID uuid.UUID `gorm:"type:uuid;index;not null"`
	RenterID   uuid.UUID `gorm:"type:uuid;index;not null"`
	Rating     int       `gorm:"not null"`
	Comment    string    `gorm:"size:2000"`
	CreatedAt  time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (ReviewModel) TableName() string {
	return "reviews"
}

// GormReviewRepository is the GORM-based implementation of ReviewRepository.
type GormReviewRepository struct {
	db *gorm.DB
}

// NewGormReviewRepository creates a new GormReviewRepository.
func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// Save persists a new review. The unique index on booking_id enforces one
// review per booking.
func (r *GormReviewRepository) Save(ctx context.Context, rv *reviewDomain.Review) error {
	model := toReviewModel(rv)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isConstraintViolation(err) {
			return domain.NewConflictError("booking has already been reviewed")
		}
		return domain.NewInternalError("failed to save review", err)
	}
	return nil
}

// FindByBookingID retrieves the review for a booking.
func (r *GormReviewRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*reviewDomain.Review, error) {
	var model ReviewModel
	if err := r.db.WithContext(ctx).Where("booking_id = ?", bookingID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("review for booking", bookingID.String())
		}
		return nil, domain.NewInternalError("failed to find review", err)
	}
	return toDomainReview(&model), nil
}

// FindByPropertyID retrieves reviews for a property with pagination.
func (r *GormReviewRepository) FindByPropertyID(ctx context.Context, propertyID uuid.UUID, page, limit int) ([]*reviewDomain.Review, int64, error) {
	query := r.db.WithContext(ctx).Model(&ReviewModel{}).Where("property_id = ?", propertyID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, domain.NewInternalError("failed to count reviews", err)
	}

	var models []ReviewModel
	offset := (page - 1) * limit
	if err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, domain.NewInternalError("failed to list reviews", err)
	}

	reviews := make([]*reviewDomain.Review, len(models))
	for i, m := range models {
		reviews[i] = toDomainReview(&m)
	}
	return reviews, total, nil
}

// --- Conversion helpers ---

func toReviewModel(rv *reviewDomain.Review) *ReviewModel {
	return &ReviewModel{
		ID:         rv.ID(),
		BookingID:  rv.BookingID(),
		PropertyID: rv.PropertyID(),
		RenterID:   rv.RenterID(),
		Rating:     rv.Rating(),
		Comment:    rv.Comment(),
		CreatedAt:  rv.CreatedAt(),
	}
}

func toDomainReview(m *ReviewModel) *reviewDomain.Review {
	return reviewDomain.Reconstruct(
		m.ID,
		m.BookingID,
		m.PropertyID,
		m.RenterID,
		m.Rating,
		m.Comment,
		m.CreatedAt,
	)
}
