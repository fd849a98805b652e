package events

import (
	"encoding/json"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/worker"
)

// Event types, also used as routing keys.
const (
	OrderPlaced        = "order.placed"
	OrderStatusChanged = "order.status_changed"
	OrderClaimed       = "order.claimed"
	OrderDeleted       = "order.deleted"
	WorkerRegistered   = "worker.registered"
	WorkerStatusChange = "worker.status_changed"
	WorkerRejected     = "worker.rejected"
)

// Event is an outbox envelope. Payload is JSON.
type Event struct {
	ID          kernel.UUID
	Type        string
	AggregateID kernel.UUID
	Payload     []byte
	OccurredAt  time.Time
}

type orderPayload struct {
	OrderID      string  `json:"order_id"`
	CustomerID   *string `json:"customer_id,omitempty"`
	RestaurantID string  `json:"restaurant_id"`
	Status       string  `json:"status"`
	PrevStatus   string  `json:"previous_status,omitempty"`
	WorkerID     *string `json:"worker_id,omitempty"`
	Total        string  `json:"total"`
}

type workerPayload struct {
	WorkerID string  `json:"worker_id"`
	Status   string  `json:"status"`
	Reason   *string `json:"reason,omitempty"`
}

// NewOrderPlaced describes a freshly placed order.
func NewOrderPlaced(o *order.Order, at time.Time) (Event, error) {
	return newOrderEvent(OrderPlaced, o, "", at)
}

// NewOrderStatusChanged describes a status write, prev being the status that was replaced.
func NewOrderStatusChanged(o *order.Order, prev order.Status, at time.Time) (Event, error) {
	return newOrderEvent(OrderStatusChanged, o, prev, at)
}

// NewOrderClaimed describes a successful claim. The payload carries the worker id.
func NewOrderClaimed(o *order.Order, prev order.Status, at time.Time) (Event, error) {
	return newOrderEvent(OrderClaimed, o, prev, at)
}

// NewOrderDeleted describes an administrative hard delete.
func NewOrderDeleted(o *order.Order, at time.Time) (Event, error) {
	return newOrderEvent(OrderDeleted, o, "", at)
}

// NewWorkerRegistered describes a new pending application.
func NewWorkerRegistered(w *worker.Worker, at time.Time) (Event, error) {
	return newWorkerEvent(WorkerRegistered, w, at)
}

// NewWorkerStatusChanged describes an approval or a suspension.
func NewWorkerStatusChanged(w *worker.Worker, at time.Time) (Event, error) {
	return newWorkerEvent(WorkerStatusChange, w, at)
}

// NewWorkerRejected describes a rejected application. The worker row is gone by then.
func NewWorkerRejected(w *worker.Worker, at time.Time) (Event, error) {
	return newWorkerEvent(WorkerRejected, w, at)
}

func newOrderEvent(eventType string, o *order.Order, prev order.Status, at time.Time) (Event, error) {
	if err := o.Validate(); err != nil {
		return Event{}, err
	}

	p := orderPayload{
		OrderID:      o.ID().String(),
		RestaurantID: o.RestaurantID().String(),
		Status:       o.Status().String(),
		PrevStatus:   prev.String(),
		Total:        o.Total().String(),
	}
	if c := o.CustomerID(); c != nil {
		s := c.String()
		p.CustomerID = &s
	}
	if w := o.Worker(); w != nil {
		s := w.String()
		p.WorkerID = &s
	}

	return newEvent(eventType, o.ID(), p, at)
}

func newWorkerEvent(eventType string, w *worker.Worker, at time.Time) (Event, error) {
	if err := w.Validate(); err != nil {
		return Event{}, err
	}

	return newEvent(eventType, w.ID(), workerPayload{
		WorkerID: w.ID().String(),
		Status:   w.Status().String(),
		Reason:   w.SuspensionReason(),
	}, at)
}

func newEvent(eventType string, aggregateID kernel.UUID, payload any, at time.Time) (Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Event{}, err
	}

	return Event{
		ID:          kernel.NewUUID(),
		Type:        eventType,
		AggregateID: aggregateID,
		Payload:     data,
		OccurredAt:  at.UTC(),
	}, nil
}
