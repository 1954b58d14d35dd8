package review

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReview(t *testing.T) {
	bookingID := uuid.New()
	propertyID := uuid.New()
	renterID := uuid.New()

	r, err := NewReview(bookingID, propertyID, renterID, 5, "great stay")
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, r.ID())
	assert.Equal(t, bookingID, r.BookingID())
	assert.Equal(t, propertyID, r.PropertyID())
	assert.Equal(t, renterID, r.RenterID())
	assert.Equal(t, 5, r.Rating())
	assert.Equal(t, "great stay", r.Comment())
}

func TestNewReview_RatingBounds(t *testing.T) {
	for _, rating := range []int{0, -1, 6} {
		_, err := NewReview(uuid.New(), uuid.New(), uuid.New(), rating, "")
		assert.Error(t, err, "rating %d", rating)
	}
	for rating := 1; rating <= 5; rating++ {
		_, err := NewReview(uuid.New(), uuid.New(), uuid.New(), rating, "")
		assert.NoError(t, err, "rating %d", rating)
	}
}
