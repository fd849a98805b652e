package rabbitmq

import (
	"context"
	"errors"
	"testing"
	"time"

	"fulfillment/internal/core/domain/events"
	"fulfillment/internal/core/domain/model/kernel"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockChannel struct{ mock.Mock }

func (m *mockChannel) PublishWithContext(
	ctx context.Context,
	exchange, key string,
	mandatory, immediate bool,
	msg amqp.Publishing,
) error {
	args := m.Called(ctx, exchange, key, mandatory, immediate, msg)
	return args.Error(0)
}

func (m *mockChannel) Close() error {
	return m.Called().Error(0)
}

func testEvent() events.Event {
	return events.Event{
		ID:          kernel.NewUUID(),
		Type:        events.OrderClaimed,
		AggregateID: kernel.NewUUID(),
		Payload:     []byte(`{"status":"OUT_FOR_DELIVERY"}`),
		OccurredAt:  time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC),
	}
}

func TestPublisher_Publish(t *testing.T) {
	event := testEvent()
	ch := new(mockChannel)
	ch.On("PublishWithContext", mock.Anything, "fulfillment.events", events.OrderClaimed, false, false,
		mock.MatchedBy(func(msg amqp.Publishing) bool {
			return msg.DeliveryMode == amqp.Persistent &&
				msg.ContentType == "application/json" &&
				msg.MessageId == event.ID.String() &&
				msg.Headers["aggregate_id"] == event.AggregateID.String() &&
				string(msg.Body) == string(event.Payload)
		})).Return(nil).Once()

	acks := make(chan amqp.Confirmation, 1)
	acks <- amqp.Confirmation{DeliveryTag: 1, Ack: true}

	p := NewPublisher(ch, "fulfillment.events", acks)
	require.NoError(t, p.Publish(t.Context(), event))
	ch.AssertExpectations(t)
}

func TestPublisher_Publish_Nack(t *testing.T) {
	ch := new(mockChannel)
	ch.On("PublishWithContext", mock.Anything, mock.Anything, mock.Anything, false, false, mock.Anything).Return(nil)

	acks := make(chan amqp.Confirmation, 1)
	acks <- amqp.Confirmation{DeliveryTag: 1, Ack: false}

	p := NewPublisher(ch, "x", acks)
	require.ErrorIs(t, p.Publish(t.Context(), testEvent()), ErrPublishNotConfirmed)
}

func TestPublisher_Publish_ContextCancelledWhileWaiting(t *testing.T) {
	ch := new(mockChannel)
	ch.On("PublishWithContext", mock.Anything, mock.Anything, mock.Anything, false, false, mock.Anything).Return(nil)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	p := NewPublisher(ch, "x", make(chan amqp.Confirmation))
	require.ErrorIs(t, p.Publish(ctx, testEvent()), context.Canceled)
}

func TestPublisher_Publish_ChannelError(t *testing.T) {
	boom := errors.New("channel closed")
	ch := new(mockChannel)
	ch.On("PublishWithContext", mock.Anything, mock.Anything, mock.Anything, false, false, mock.Anything).Return(boom)

	p := NewPublisher(ch, "x", nil)
	require.ErrorIs(t, p.Publish(t.Context(), testEvent()), boom)
}

func TestPublisher_Close(t *testing.T) {
	ch := new(mockChannel)
	ch.On("Close").Return(nil).Once()

	assert.NoError(t, NewPublisher(ch, "x", nil).Close())
	ch.AssertExpectations(t)
}
