package messaging

import (
	"context"
	"encoding/json"
	"time"

	"github.com/AchilleasB/hotel-desk/reservation-service/internal/core/ports"
	amqp "github.com/rabbitmq/amqp091-go"
)

var _ ports.ReservationEventPublisher = (*RabbitMQBroker)(nil)

func (rmq *RabbitMQBroker) PublishReservationCreated(ctx context.Context, evt ports.ReservationCreatedEvent) error {
	body, err := json.Marshal(evt)
	if err != nil {
		return err
	}

	// Respect context deadline
	if deadline, ok := ctx.Deadline(); ok {
		if time.Until(deadline) <= 0 {
			return ctx.Err()
		}
	}

	_, err = rmq.cb.Execute(func() (interface{}, error) {
		err := rmq.ch.PublishWithContext(
			ctx,
			"",            // exchange (default)
			rmq.queueName, // routing key == queue name
			false,         // mandatory
			false,         // immediate
			amqp.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp.Persistent,
				Type:         ports.ReservationCreatedEventType,
				Timestamp:    time.Now().UTC(),
				Body:         body,
			},
		)
		return nil, err
	})
	return err
}
