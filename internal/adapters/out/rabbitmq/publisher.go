// Package rabbitmq publishes outbox events to a topic exchange. The routing key is the event
// type, so consumers can bind on patterns such as "order.*".
package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"fulfillment/internal/core/domain/events"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ErrPublishNotConfirmed is returned when the broker nacks a message or the confirm channel closes.
var ErrPublishNotConfirmed = errors.New("broker did not confirm the message")

// channel is the subset of *amqp.Channel the publisher needs.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher implements ports.MessagePublisher. With confirms enabled every Publish waits
// for the broker's ack, so a message is only reported published once the broker owns it.
type Publisher struct {
	conn     *amqp.Connection
	ch       channel
	exchange string
	acks     <-chan amqp.Confirmation

	mu sync.Mutex
}

// Dial connects, declares a durable topic exchange and turns on publisher confirms.
func Dial(url, exchange string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	if err = ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange %q: %w", exchange, err)
	}

	if err = ch.Confirm(false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	acks := ch.NotifyPublish(make(chan amqp.Confirmation, 1))

	return &Publisher{conn: conn, ch: ch, exchange: exchange, acks: acks}, nil
}

// NewPublisher wraps an already open channel. acks may be nil when confirms are off.
func NewPublisher(ch channel, exchange string, acks <-chan amqp.Confirmation) *Publisher {
	return &Publisher{ch: ch, exchange: exchange, acks: acks}
}

// Publish sends one event as a persistent JSON message. Calls are serialised so that each
// confirmation is matched with its own message.
func (p *Publisher) Publish(ctx context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ch.PublishWithContext(ctx, p.exchange, event.Type, false, false, toPublishing(event)); err != nil {
		return err
	}
	if p.acks == nil {
		return nil
	}

	select {
	case conf, ok := <-p.acks:
		if !ok {
			return fmt.Errorf("%w: channel closed", ErrPublishNotConfirmed)
		}
		if !conf.Ack {
			return fmt.Errorf("%w: nack for event %s", ErrPublishNotConfirmed, event.ID)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close closes the channel and then the connection.
func (p *Publisher) Close() error {
	var err error
	if p.ch != nil {
		err = p.ch.Close()
	}
	if p.conn != nil {
		err = errors.Join(err, p.conn.Close())
	}
	return err
}

func toPublishing(event events.Event) amqp.Publishing {
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.ID.String(),
		Type:         event.Type,
		Timestamp:    event.OccurredAt.UTC(),
		Headers: amqp.Table{
			"aggregate_id": event.AggregateID.String(),
		},
		Body: event.Payload,
	}
}
