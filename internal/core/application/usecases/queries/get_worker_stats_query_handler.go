package queries

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DefaultEarningsRate is the share of a delivered order's total credited to the worker.
var DefaultEarningsRate = decimal.RequireFromString("0.10")

// GetWorkerStatsQueryHandler counts the worker's delivered and active orders and computes
// earnings as rate x sum of delivered totals. Only orders assigned to the worker are read.
type GetWorkerStatsQueryHandler struct {
	db   *gorm.DB
	rate decimal.Decimal
}

// NewGetWorkerStatsQueryHandler computes earnings as rate times the delivered order totals.
func NewGetWorkerStatsQueryHandler(db *gorm.DB, rate decimal.Decimal) GetWorkerStatsQueryHandler {
	return GetWorkerStatsQueryHandler{db: db, rate: rate}
}

type workerOrderRow struct {
	Status    string
	Total     decimal.Decimal
	UpdatedAt time.Time
}

// Handle reads the worker's delivered and in-flight orders and totals them.
func (h GetWorkerStatsQueryHandler) Handle(ctx context.Context, query GetWorkerStatsQuery) (WorkerStats, error) {
	if err := query.Validate(); err != nil {
		return WorkerStats{}, err
	}

	var rows []workerOrderRow
	if err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			total,
			updated_at
		FROM orders
		WHERE worker_id = ?
			AND status IN ?
	`, query.WorkerID().Bytes(), []string{order.Delivered.String(), order.OutForDelivery.String()},
	).Scan(&rows).Error; err != nil {
		return WorkerStats{}, err
	}

	startOfDay := query.StartOfDay()
	delivered := kernel.ZeroMoney()
	stats := WorkerStats{}
	for _, row := range rows {
		switch row.Status {
		case order.OutForDelivery.String():
			stats.ActiveOrders++
		case order.Delivered.String():
			total, err := kernel.NewMoney(row.Total)
			if err != nil {
				return WorkerStats{}, err
			}
			delivered = delivered.Add(total)
			stats.TotalDeliveries++
			if !row.UpdatedAt.UTC().Before(startOfDay) {
				stats.TodayDeliveries++
			}
		}
	}
	stats.TotalEarnings = delivered.Scale(h.rate)

	return stats, nil
}
