package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/staynest/service-reservation/internal/common/domain"
	"github.com/staynest/service-reservation/internal/common/kafka"
)

type fakeCompleter struct {
	calls []uuid.UUID
	err   error
}

func (f *fakeCompleter) CompleteFromCheckout(_ context.Context, bookingID uuid.UUID) error {
	f.calls = append(f.calls, bookingID)
	return f.err
}

func newTestConsumer(completer BookingCompleter) *CheckoutEventConsumer {
	return &CheckoutEventConsumer{
		service: completer,
		logger:  zap.NewNop(),
	}
}

func checkedOutMessage(t *testing.T, bookingID uuid.UUID) kafkago.Message {
	t.Helper()
	ce, err := kafka.NewCloudEvent("service-stay", StayCheckedOut, StayCheckedOutEvent{
		BookingID:  bookingID,
		RecordedBy: uuid.New(),
		OccurredAt: time.Now().UTC(),
	})
	require.NoError(t, err)
	raw, err := json.Marshal(ce)
	require.NoError(t, err)
	return kafkago.Message{Value: raw}
}

func TestCheckoutConsumer_CompletesBooking(t *testing.T) {
	completer := &fakeCompleter{}
	consumer := newTestConsumer(completer)
	bookingID := uuid.New()

	err := consumer.handleMessage(context.Background(), checkedOutMessage(t, bookingID))
	require.NoError(t, err)
	require.Len(t, completer.calls, 1)
	assert.Equal(t, bookingID, completer.calls[0])
}

func TestCheckoutConsumer_MalformedMessageNotRetried(t *testing.T) {
	completer := &fakeCompleter{}
	consumer := newTestConsumer(completer)

	err := consumer.handleMessage(context.Background(), kafkago.Message{Value: []byte("not json")})
	require.NoError(t, err)
	assert.Empty(t, completer.calls)
}

func TestCheckoutConsumer_IgnoresOtherEventTypes(t *testing.T) {
	completer := &fakeCompleter{}
	consumer := newTestConsumer(completer)

	ce, err := kafka.NewCloudEvent("service-stay", "stay.checked_in", map[string]string{})
	require.NoError(t, err)
	raw, err := json.Marshal(ce)
	require.NoError(t, err)

	err = consumer.handleMessage(context.Background(), kafkago.Message{Value: raw})
	require.NoError(t, err)
	assert.Empty(t, completer.calls)
}

func TestCheckoutConsumer_DropsUncompletableBooking(t *testing.T) {
	for _, completerErr := range []error{
		domain.NewNotFoundError("booking", uuid.New().String()),
		domain.NewInvalidTransitionError("canceled", "completed"),
	} {
		completer := &fakeCompleter{err: completerErr}
		consumer := newTestConsumer(completer)

		err := consumer.handleMessage(context.Background(), checkedOutMessage(t, uuid.New()))
		require.NoError(t, err)
		require.Len(t, completer.calls, 1)
	}
}

func TestCheckoutConsumer_TransientFailureRedelivered(t *testing.T) {
	completer := &fakeCompleter{err: domain.NewInternalError("database unavailable", nil)}
	consumer := newTestConsumer(completer)

	err := consumer.handleMessage(context.Background(), checkedOutMessage(t, uuid.New()))
	require.Error(t, err)
}
