package application

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/staynest/service-reservation/internal/common/auth"
	"github.com/staynest/service-reservation/internal/common/domain"
)

// reviewFixture seeds a completed booking for the fixture's renter and wires
// a ReviewService around it.
type reviewFixture struct {
	*bookingFixture
	service *ReviewService
	reviews *fakeReviewRepo
	booking *BookingDTO
}

func newReviewFixture(t *testing.T) *reviewFixture {
	t.Helper()

	bf := newBookingFixture(t)
	dto := bf.createBooking(t, bf.now.AddDate(0, 0, 10), bf.now.AddDate(0, 0, 13))

	_, err := bf.service.UpdateBookingStatus(context.Background(), bf.host, dto.ID, UpdateBookingStatusRequest{Status: "completed"})
	require.NoError(t, err)

	reviews := newFakeReviewRepo()
	return &reviewFixture{
		bookingFixture: bf,
		service:        NewReviewService(reviews, bf.bookings, zap.NewNop()),
		reviews:        reviews,
		booking:        dto,
	}
}

func TestSubmitReview_Succeeds(t *testing.T) {
	f := newReviewFixture(t)

	dto, err := f.service.SubmitReview(context.Background(), f.renter, f.booking.ID, SubmitReviewRequest{Rating: 5, Comment: "spotless"})
	require.NoError(t, err)

	assert.Equal(t, f.booking.ID, dto.BookingID)
	assert.Equal(t, f.property.ID(), dto.PropertyID)
	assert.Equal(t, f.renter.ID, dto.RenterID)
	assert.Equal(t, 5, dto.Rating)
	assert.Equal(t, "spotless", dto.Comment)
}

func TestSubmitReview_AnonymousActor(t *testing.T) {
	f := newReviewFixture(t)

	_, err := f.service.SubmitReview(context.Background(), auth.Actor{}, f.booking.ID, SubmitReviewRequest{Rating: 4})
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindUnauthenticated))
}

func TestSubmitReview_OnlyRenter(t *testing.T) {
	f := newReviewFixture(t)

	// The host stayed nowhere; only the renter may review.
	_, err := f.service.SubmitReview(context.Background(), f.host, f.booking.ID, SubmitReviewRequest{Rating: 1})
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindForbidden))
}

func TestSubmitReview_RequiresCompletedStay(t *testing.T) {
	f := newReviewFixture(t)
	active := f.createBooking(t, f.now.AddDate(0, 0, 20), f.now.AddDate(0, 0, 22))

	_, err := f.service.SubmitReview(context.Background(), f.renter, active.ID, SubmitReviewRequest{Rating: 3})
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindValidation))
}

func TestSubmitReview_OncePerBooking(t *testing.T) {
	f := newReviewFixture(t)
	ctx := context.Background()

	_, err := f.service.SubmitReview(ctx, f.renter, f.booking.ID, SubmitReviewRequest{Rating: 5})
	require.NoError(t, err)

	_, err = f.service.SubmitReview(ctx, f.renter, f.booking.ID, SubmitReviewRequest{Rating: 2})
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindConflict))
}

func TestSubmitReview_InvalidRating(t *testing.T) {
	f := newReviewFixture(t)

	_, err := f.service.SubmitReview(context.Background(), f.renter, f.booking.ID, SubmitReviewRequest{Rating: 6})
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindValidation))
}

func TestListPropertyReviews(t *testing.T) {
	f := newReviewFixture(t)
	ctx := context.Background()

	_, err := f.service.SubmitReview(ctx, f.renter, f.booking.ID, SubmitReviewRequest{Rating: 5, Comment: "spotless"})
	require.NoError(t, err)

	result, err := f.service.ListPropertyReviews(ctx, f.property.ID(), 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Total)
	require.Len(t, result.Items, 1)
	assert.Equal(t, 5, result.Items[0].Rating)

	// Another property has no reviews.
	result, err = f.service.ListPropertyReviews(ctx, uuid.New(), 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(0), result.Total)
}
