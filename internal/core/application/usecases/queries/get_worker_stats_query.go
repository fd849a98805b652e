package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

// ErrGetWorkerStatsQueryIsNotConstructed is returned by Validate on a zero-value query.
var ErrGetWorkerStatsQueryIsNotConstructed = errors.New(
	"GetWorkerStatsQuery must be created via NewGetWorkerStatsQuery constructor",
)

// GetWorkerStatsQuery summarises one worker's deliveries as of now.
type GetWorkerStatsQuery struct {
	workerID kernel.UUID
	now      time.Time
	guard    guard.ConstructorGuard
}

// NewGetWorkerStatsQuery takes the clock reading explicitly; "today" is the UTC day containing now.
func NewGetWorkerStatsQuery(workerID kernel.UUID, now time.Time) (GetWorkerStatsQuery, error) {
	if err := workerID.Validate(); err != nil {
		return GetWorkerStatsQuery{}, err
	}
	return GetWorkerStatsQuery{
		workerID: workerID,
		now:      now.UTC(),
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// WorkerID returns the worker whose deliveries are counted.
func (q GetWorkerStatsQuery) WorkerID() kernel.UUID { return q.workerID }
// Now returns the clock reading in UTC.
func (q GetWorkerStatsQuery) Now() time.Time { return q.now }

// StartOfDay is midnight UTC of the query's day.
func (q GetWorkerStatsQuery) StartOfDay() time.Time {
	return q.now.Truncate(24 * time.Hour)
}

// Validate ensures the query was created through the constructor.
func (q GetWorkerStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetWorkerStatsQueryIsNotConstructed)
}

// WorkerStats is the dashboard of a delivery worker.
type WorkerStats struct {
	TotalDeliveries int
	TodayDeliveries int
	ActiveOrders    int
	TotalEarnings   kernel.Money
}
