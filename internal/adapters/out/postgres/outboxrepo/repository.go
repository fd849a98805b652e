// Package outboxrepo stores integration events in the "outbox_events" table until the relay
// job has published them.
package outboxrepo

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/events"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EventDTO is one outbox row. PublishedAt stays NULL until the relay marks it.
type EventDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Type        string     `gorm:"type:varchar(64);not null"`
	AggregateID uuid.UUID  `gorm:"type:uuid;not null;index"`
	Payload     string     `gorm:"type:text;not null"`
	OccurredAt  time.Time  `gorm:"not null;index"`
	PublishedAt *time.Time `gorm:"index"`
}

// TableName overrides the gorm default.
func (EventDTO) TableName() string {
	return "outbox_events"
}

// GormOutboxRepository implements ports.OutboxRepository using GORM.
type GormOutboxRepository struct {
	db *gorm.DB
}

// NewGormOutboxRepository returns a repository bound to db, which may be a transaction.
func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

// Add stores the event as unpublished.
func (r *GormOutboxRepository) Add(ctx context.Context, event events.Event) error {
	if err := event.ID.Validate(); err != nil {
		return err
	}

	dto := EventDTO{
		ID:          event.ID.Bytes(),
		Type:        event.Type,
		AggregateID: event.AggregateID.Bytes(),
		Payload:     string(event.Payload),
		OccurredAt:  event.OccurredAt.UTC(),
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}

// ListUnpublished returns up to limit unpublished events, oldest first.
func (r *GormOutboxRepository) ListUnpublished(ctx context.Context, limit int) ([]events.Event, error) {
	var dtos []EventDTO
	if err := r.db.WithContext(ctx).
		Where("published_at IS NULL").
		Order("occurred_at").
		Limit(limit).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	out := make([]events.Event, 0, len(dtos))
	for _, dto := range dtos {
		id, err := kernel.UUIDFromGoogle(dto.ID)
		if err != nil {
			return nil, err
		}
		aggregateID, err := kernel.UUIDFromGoogle(dto.AggregateID)
		if err != nil {
			return nil, err
		}
		out = append(out, events.Event{
			ID:          id,
			Type:        dto.Type,
			AggregateID: aggregateID,
			Payload:     []byte(dto.Payload),
			OccurredAt:  dto.OccurredAt.UTC(),
		})
	}

	return out, nil
}

// MarkPublished stamps the event. An unknown id is errs.ErrObjectNotFound.
func (r *GormOutboxRepository) MarkPublished(ctx context.Context, id kernel.UUID, at time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&EventDTO{}).
		Where("id = ?", id.Bytes()).
		Update("published_at", at.UTC())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("outbox event", id.String())
	}
	return nil
}
