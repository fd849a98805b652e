package orderrepo

import (
	"context"
	"errors"

	"fulfillment/internal/adapters/out/postgres/workerrepo"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/worker"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrClaimIsNotApplied is returned when Claim is called with an aggregate that has not been claimed in memory.
var ErrClaimIsNotApplied = errors.New("order must be claimed before it is persisted as claimed")

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository returns a repository bound to db, which may be a transaction.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the order row and then its item rows. Callers run it inside a transaction so
// a failed item insert leaves no order behind.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)
	if err := db.Omit(clause.Associations).Create(&dto).Error; err != nil {
		return err
	}
	if err := db.Create(&dto.Items).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get loads the order with its items in placement order.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// UpdateStatus is a compare-and-set on the status column. For orders that carry a worker the
// stored worker must match as well.
func (r *GormOrderRepository) UpdateStatus(
	ctx context.Context,
	aggregate *order.Order,
	expected order.Status,
) (bool, error) {
	if err := aggregate.Validate(); err != nil {
		return false, err
	}

	query := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND status = ?", aggregate.ID().Bytes(), expected.String())
	if w := aggregate.Worker(); w != nil {
		query = query.Where("worker_id = ?", w.Bytes())
	}

	result := query.Updates(map[string]any{
		"status":         aggregate.Status().String(),
		"delivery_notes": aggregate.DeliveryNotes(),
		"updated_at":     aggregate.UpdatedAt(),
	})
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, nil
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return true, nil
}

// Claim writes the assignment with a single conditional UPDATE:
//
//	UPDATE orders SET worker_id = ?, status = 'OUT_FOR_DELIVERY'
//	WHERE id = ? AND worker_id IS NULL AND status IN ('CONFIRMED', 'PREPARING', 'READY')
//	  AND EXISTS (SELECT 1 FROM delivery_workers WHERE id = ? AND status = 'active')
//
// Of any number of concurrent claims on one order at most one affects a row, and none does
// for a worker that is unknown or not active at write time.
func (r *GormOrderRepository) Claim(ctx context.Context, aggregate *order.Order) (bool, error) {
	if err := aggregate.Validate(); err != nil {
		return false, err
	}
	w := aggregate.Worker()
	if w == nil || aggregate.Status() != order.OutForDelivery {
		return false, ErrClaimIsNotApplied
	}

	db := r.db.WithContext(ctx)
	activeWorker := db.Model(&workerrepo.WorkerDTO{}).
		Select("1").
		Where("id = ? AND status = ?", w.Bytes(), worker.Active.String())

	result := db.Model(&OrderDTO{}).
		Where("id = ? AND worker_id IS NULL AND status IN ?", aggregate.ID().Bytes(), claimableStatuses()).
		Where("EXISTS (?)", activeWorker).
		Updates(map[string]any{
			"worker_id":  w.Bytes(),
			"status":     aggregate.Status().String(),
			"updated_at": aggregate.UpdatedAt(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, nil
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return true, nil
}

// Delete removes the items and then the order.
func (r *GormOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	if err := db.Where("order_id = ?", id.Bytes()).Delete(&OrderItemDTO{}).Error; err != nil {
		return err
	}

	result := db.Where("id = ?", id.Bytes()).Delete(&OrderDTO{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", id.String())
	}

	return nil
}

func claimableStatuses() []string {
	statuses := order.ClaimableStatuses()
	out := make([]string, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, s.String())
	}
	return out
}
