package queue

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Publisher sends activity events to RabbitMQ.  Each publish dials its own
// connection so a broker restart never leaves the web process holding a
// dead channel.
type Publisher struct {
	URL    string
	Queue  string
	Logger *zap.Logger
}

// NewPublisher returns a publisher for the activity queue at url.
func NewPublisher(url string, logger *zap.Logger) *Publisher {
	return &Publisher{URL: url, Queue: ActivityQueueName, Logger: logger}
}

// Publish publishes ev to the activity queue as a persistent JSON
// message.  Errors are logged and returned so the caller can choose to
// ignore them.
func (p *Publisher) Publish(ctx context.Context, ev ActivityEvent) error {
	conn, err := amqp.Dial(p.URL)
	if err != nil {
		p.Logger.Warn("rabbitmq dial failed", zap.Error(err))
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.Logger.Warn("rabbitmq channel open failed", zap.Error(err))
		return err
	}
	defer func() { _ = ch.Close() }()

	// Declaring is idempotent. Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(
		p.Queue, // name
		true,    // durable
		false,   // autoDelete
		false,   // exclusive
		false,   // noWait
		nil,     // args
	); err != nil {
		p.Logger.Warn("rabbitmq queue declare failed", zap.Error(err))
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Type:         ev.Kind,
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", p.Queue, false, false, pub); err != nil {
		p.Logger.Warn("rabbitmq publish failed", zap.String("kind", ev.Kind), zap.Error(err))
		return err
	}
	return nil
}
