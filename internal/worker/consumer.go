package worker

import (
	"context"
	"errors"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/dream-journal-api/pkg/helpers"
)

// ErrPermanent marks a message that can never succeed; it is dropped instead of requeued.
var ErrPermanent = errors.New("permanent failure")

// Handler processes one message body.
type Handler func(ctx context.Context, body []byte) error

// Acknowledger is the subset of amqp.Delivery used to settle a message.
type Acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

// Settle runs h on body and acks, drops or requeues the message depending on the outcome.
func Settle(ctx context.Context, msg Acknowledger, body []byte, h Handler, logger *logrus.Entry) {
	err := h(ctx, body)
	switch {
	case err == nil:
		_ = msg.Ack(false)
	case errors.Is(err, ErrPermanent):
		logger.WithError(err).Warn("dropping message")
		_ = msg.Nack(false, false)
	default:
		logger.WithError(err).Error("handler failed, requeueing")
		_ = msg.Nack(false, true)
	}
}

// Consume declares queue, then feeds its deliveries to h until ctx is done or
// the channel closes.
func Consume(ctx context.Context, ch *amqp.Channel, queue string, prefetch int, h Handler, logger *logrus.Logger) error {
	if err := ch.Qos(prefetch, 0, false); err != nil {
		return err
	}
	if err := helpers.DeclareQueue(ch, queue); err != nil {
		return err
	}
	msgs, err := ch.Consume(queue, "", false, false, false, false, nil)
	if err != nil {
		return err
	}

	entry := logger.WithField("queue", queue)
	entry.Info("worker listening")
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return errors.New("delivery channel closed")
			}
			Settle(ctx, msg, msg.Body, h, entry.WithField("delivery_tag", msg.DeliveryTag))
		}
	}
}
