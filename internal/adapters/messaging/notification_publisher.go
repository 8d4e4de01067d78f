package messaging

import (
	"context"
	"encoding/json"
	"time"

	"github.com/AchilleasB/tutor-agency/intake-service/internal/core/ports"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

var _ ports.NotificationPublisher = (*RabbitMQBroker)(nil)

// PublishRegistration queues a {type, registration} message for the
// notification function.
func (rmq *RabbitMQBroker) PublishRegistration(ctx context.Context, n ports.RegistrationNotification) error {
	body, err := json.Marshal(n)
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
		rmq.mu.Lock()
		defer rmq.mu.Unlock()

		err := rmq.ch.PublishWithContext(
			ctx,
			"",            // exchange (default)
			rmq.queueName, // routing key == queue name
			false,         // mandatory
			false,         // immediate
			amqp.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp.Persistent,
				MessageId:    uuid.NewString(),
				Type:         string(n.Type),
				Timestamp:    time.Now(),
				Body:         body,
			},
		)
		return nil, err
	})
	return err
}
