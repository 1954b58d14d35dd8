package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingStatus_CanTransitionTo(t *testing.T) {
	allowed := map[BookingStatus]map[BookingStatus]bool{
		StatusPending:   {StatusConfirmed: true, StatusCanceled: true},
		StatusConfirmed: {StatusCanceled: true, StatusCompleted: true},
		StatusCanceled:  {},
		StatusCompleted: {},
	}

	all := []BookingStatus{StatusPending, StatusConfirmed, StatusCanceled, StatusCompleted}
	for _, from := range all {
		for _, to := range all {
			got := from.CanTransitionTo(to)
			want := allowed[from][to]
			assert.Equal(t, want, got, "transition %s -> %s", from, to)
		}
	}
}

func TestBookingStatus_SelfTransitionRejected(t *testing.T) {
	for _, s := range []BookingStatus{StatusPending, StatusConfirmed, StatusCanceled, StatusCompleted} {
		assert.False(t, s.CanTransitionTo(s), "self transition on %s", s)
	}
}

func TestBookingStatus_IsTerminal(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusConfirmed.IsTerminal())
	assert.True(t, StatusCanceled.IsTerminal())
	assert.True(t, StatusCompleted.IsTerminal())
}

func TestBookingStatus_IsActive(t *testing.T) {
	assert.True(t, StatusPending.IsActive())
	assert.True(t, StatusConfirmed.IsActive())
	assert.False(t, StatusCanceled.IsActive())
	assert.False(t, StatusCompleted.IsActive())
}

func TestParseBookingStatus(t *testing.T) {
	s, err := ParseBookingStatus("confirmed")
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, s)

	_, err = ParseBookingStatus("archived")
	assert.Error(t, err)

	_, err = ParseBookingStatus("")
	assert.Error(t, err)
}

func TestActiveStatuses(t *testing.T) {
	assert.ElementsMatch(t, []BookingStatus{StatusPending, StatusConfirmed}, ActiveStatuses())
}
