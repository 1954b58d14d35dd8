package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/staynest/service-reservation/internal/common/auth"
	"github.com/staynest/service-reservation/internal/common/domain"
	bookingDomain "github.com/staynest/service-reservation/internal/domain/booking"
	reviewDomain "github.com/staynest/service-reservation/internal/domain/review"
)

// SubmitReviewRequest holds the data to review a completed stay.
type SubmitReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// ReviewDTO is the API response representation of a stay review.
type ReviewDTO struct {
	ID         uuid.UUID `json:"id"`
	BookingID  uuid.UUID `json:"booking_id"`
	PropertyID uuid.UUID `json:"property_id"`
	RenterID   uuid.UUID `json:"renter_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// ReviewService handles stay review use cases.
type ReviewService struct {
	reviews  reviewDomain.ReviewRepository
	bookings bookingDomain.BookingRepository
	logger   *zap.Logger
}

// NewReviewService creates a new ReviewService.
func NewReviewService(reviews reviewDomain.ReviewRepository, bookings bookingDomain.BookingRepository, logger *zap.Logger) *ReviewService {
	return &ReviewService{reviews: reviews, bookings: bookings, logger: logger}
}

// SubmitReview records the renter's review of a completed booking. Only the
// booking's renter may review, only once, and only after the stay completed.
func (s *ReviewService) SubmitReview(ctx context.Context, actor auth.Actor, bookingID uuid.UUID, req SubmitReviewRequest) (*ReviewDTO, error) {
	if actor.IsAnonymous() {
		return nil, domain.NewUnauthenticatedError()
	}

	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if bk.RenterID() != actor.ID {
		return nil, domain.NewForbiddenError("only the booking's renter can review the stay")
	}
	if bk.Status() != bookingDomain.StatusCompleted {
		return nil, domain.NewValidationError("only completed stays can be reviewed")
	}

	rv, err := reviewDomain.NewReview(bk.ID(), bk.PropertyID(), actor.ID, req.Rating, req.Comment)
	if err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	if err := s.reviews.Save(ctx, rv); err != nil {
		return nil, err
	}

	s.logger.Info("review submitted",
		zap.String("booking_id", bookingID.String()),
		zap.Int("rating", req.Rating),
	)
	result := toReviewDTO(rv)
	return &result, nil
}

// ListPropertyReviews returns the reviews for a property, newest first.
func (s *ReviewService) ListPropertyReviews(ctx context.Context, propertyID uuid.UUID, page, limit int) (*domain.PaginatedResult[ReviewDTO], error) {
	reviews, total, err := s.reviews.FindByPropertyID(ctx, propertyID, page, limit)
	if err != nil {
		return nil, err
	}

	dtos := make([]ReviewDTO, len(reviews))
	for i, rv := range reviews {
		dtos[i] = toReviewDTO(rv)
	}
	result := domain.NewPaginatedResult(dtos, total, page, limit)
	return &result, nil
}

func toReviewDTO(rv *reviewDomain.Review) ReviewDTO {
	return ReviewDTO{
		ID:         rv.ID(),
		BookingID:  rv.BookingID(),
		PropertyID: rv.PropertyID(),
		RenterID:   rv.RenterID(),
		Rating:     rv.Rating(),
		Comment:    rv.Comment(),
		CreatedAt:  rv.CreatedAt(),
	}
}
