package events

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/staynest/service-reservation/internal/common/domain"
	"github.com/staynest/service-reservation/internal/common/kafka"
)

// BookingCompleter completes a booking after the guest has checked out.
// Implemented by the booking application service.
type BookingCompleter interface {
	CompleteFromCheckout(ctx context.Context, bookingID uuid.UUID) error
}

// CheckoutEventConsumer listens to stay events and completes bookings when a
// guest checks out.
type CheckoutEventConsumer struct {
	consumer *kafka.Consumer
	service  BookingCompleter
	logger   *zap.Logger
}

// NewCheckoutEventConsumer creates a new CheckoutEventConsumer.
func NewCheckoutEventConsumer(
	brokers []string,
	groupID string,
	service BookingCompleter,
	logger *zap.Logger,
) *CheckoutEventConsumer {
	consumer := kafka.NewConsumer(brokers, groupID, TopicStayEvents, logger)
	return &CheckoutEventConsumer{
		consumer: consumer,
		service:  service,
		logger:   logger,
	}
}

// Start begins consuming stay events. This blocks until the context is cancelled.
func (c *CheckoutEventConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.handleMessage)
}

// Close closes the underlying Kafka consumer.
func (c *CheckoutEventConsumer) Close() error {
	return c.consumer.Close()
}

func (c *CheckoutEventConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	var cloudEvent kafka.CloudEvent
	if err := json.Unmarshal(msg.Value, &cloudEvent); err != nil {
		c.logger.Error("failed to parse cloud event from stay topic",
			zap.Error(err),
			zap.String("raw", string(msg.Value)),
		)
		return nil // Don't retry malformed messages
	}

	switch cloudEvent.Type {
	case StayCheckedOut:
		return c.handleCheckedOut(ctx, cloudEvent)
	default:
		c.logger.Debug("ignoring unhandled stay event type",
			zap.String("type", cloudEvent.Type),
		)
		return nil
	}
}

func (c *CheckoutEventConsumer) handleCheckedOut(ctx context.Context, cloudEvent kafka.CloudEvent) error {
	var evt StayCheckedOutEvent
	if err := cloudEvent.ParseData(&evt); err != nil {
		c.logger.Error("failed to parse StayCheckedOutEvent data",
			zap.Error(err),
		)
		return nil // Don't retry malformed data
	}

	c.logger.Info("processing stay checkout",
		zap.String("booking_id", evt.BookingID.String()),
	)

	if err := c.service.CompleteFromCheckout(ctx, evt.BookingID); err != nil {
		// A booking that no longer exists or can no longer transition will
		// never succeed on redelivery.
		if domain.IsKind(err, domain.KindNotFound) || domain.IsKind(err, domain.KindInvalidTransition) {
			c.logger.Warn("dropping checkout event for uncompletable booking",
				zap.String("booking_id", evt.BookingID.String()),
				zap.Error(err),
			)
			return nil
		}
		c.logger.Error("failed to complete booking after checkout",
			zap.String("booking_id", evt.BookingID.String()),
			zap.Error(err),
		)
		return err
	}

	c.logger.Info("booking completed after checkout",
		zap.String("booking_id", evt.BookingID.String()),
	)
	return nil
}
