package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/bookingswingevents-commits/SwingBooking-sub001/internal/model"
)

const DefaultQueue = "swingbooking.events"

// AMQPPublisher publishes events as persistent JSON messages to a durable
// queue through the default exchange.
type AMQPPublisher struct {
	url   string
	queue string
	dial  func(url string) (*amqp.Connection, error)
}

func NewAMQPPublisher(url, queue string) *AMQPPublisher {
	if queue == "" {
		queue = DefaultQueue
	}
	return &AMQPPublisher{url: url, queue: queue, dial: amqp.Dial}
}

func (p *AMQPPublisher) Queue() string {
	return p.queue
}

// Notify opens one connection per batch.
func (p *AMQPPublisher) Notify(ctx context.Context, events ...model.Event) error {
	if len(events) == 0 {
		return nil
	}

	conn, err := p.dial(p.url)
	if err != nil {
		return fmt.Errorf("rabbitmq: dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("rabbitmq: channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	// Idempotent. Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(
		p.queue, // name
		true,    // durable
		false,   // autoDelete
		false,   // exclusive
		false,   // noWait
		nil,     // args
	); err != nil {
		return fmt.Errorf("rabbitmq: queue declare: %w", err)
	}

	for _, e := range events {
		pub, err := publishing(e)
		if err != nil {
			return err
		}
		if err := ch.PublishWithContext(ctx,
			"",      // default exchange
			p.queue, // routing key = queue name
			false,   // mandatory
			false,   // immediate
			pub,
		); err != nil {
			return fmt.Errorf("rabbitmq: publish %s: %w", e.EventType, err)
		}
	}

	return nil
}

func publishing(e model.Event) (amqp.Publishing, error) {
	body, err := json.Marshal(e)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("rabbitmq: marshal event: %w", err)
	}

	ts := e.CreatedAt
	if ts.IsZero() {
		ts = time.Now()
	}

	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    e.ID.String(),
		Type:         string(e.EventType),
		Timestamp:    ts.UTC(),
		Headers:      amqp.Table{"event_type": string(e.EventType)},
		Body:         body,
	}, nil
}
