package produce

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	ResourceExchange        = "resource.exchange"
	ResourceEventQueue      = "resource.events"
	ResourceEventRoutingKey = "resource.events"
)

type ResourceEventService struct {
	channel *amqp.Channel
}

// ResourceEventMessage is one object/thing lifecycle event. Payload is
// the record snapshot at the time of the action.
type ResourceEventMessage struct {
	ResourceType string          `json:"resource_type"`
	ResourceID   string          `json:"resource_id"`
	ScopeID      string          `json:"scope_id"`
	Action       string          `json:"action"`
	Payload      json.RawMessage `json:"payload,omitempty"`
	Timestamp    int64           `json:"timestamp"`
}

func InitResourceEventService(channel *amqp.Channel) *ResourceEventService {
	service := &ResourceEventService{
		channel: channel,
	}

	err := channel.ExchangeDeclare(
		ResourceExchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		panic("Failed to declare Resource exchange: " + err.Error())
	}

	_, err = channel.QueueDeclare(
		ResourceEventQueue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		panic("Failed to declare Resource event queue: " + err.Error())
	}

	err = channel.QueueBind(
		ResourceEventQueue,
		ResourceEventRoutingKey,
		ResourceExchange,
		false,
		nil,
	)
	if err != nil {
		panic("Failed to bind Resource event queue: " + err.Error())
	}

	return service
}

func (s *ResourceEventService) PublishResourceEvent(ctx context.Context, message ResourceEventMessage) error {
	body, err := json.Marshal(message)
	if err != nil {
		return err
	}

	return s.channel.PublishWithContext(
		ctx,
		ResourceExchange,
		ResourceEventRoutingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		},
	)
}
