// Package workerrepo persists delivery workers with gorm in the "delivery_workers" table.
package workerrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/worker"

	"github.com/google/uuid"
)

// WorkerDTO is the "delivery_workers" row. The license number is unique.
type WorkerDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name             string    `gorm:"type:varchar(255);not null"`
	Email            string    `gorm:"type:varchar(255);not null"`
	Phone            string    `gorm:"type:varchar(64);not null"`
	VehicleType      string    `gorm:"type:varchar(64);not null"`
	LicenseNumber    string    `gorm:"type:varchar(128);not null;uniqueIndex"`
	Status           string    `gorm:"type:varchar(16);not null;index"`
	SuspensionReason *string   `gorm:"type:text"`
	CreatedAt        time.Time `gorm:"not null"`
	UpdatedAt        time.Time `gorm:"not null;autoUpdateTime:false"`
}

// TableName overrides the gorm default.
func (WorkerDTO) TableName() string {
	return "delivery_workers"
}

func fromDomain(w *worker.Worker) WorkerDTO {
	p := w.Profile()
	return WorkerDTO{
		ID:               w.ID().Bytes(),
		Name:             p.Name,
		Email:            p.Email,
		Phone:            p.Phone,
		VehicleType:      p.VehicleType,
		LicenseNumber:    p.LicenseNumber,
		Status:           w.Status().String(),
		SuspensionReason: w.SuspensionReason(),
		CreatedAt:        w.CreatedAt(),
		UpdatedAt:        w.UpdatedAt(),
	}
}

func toDomain(dto WorkerDTO) (*worker.Worker, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	status, err := worker.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return worker.RestoreWorker(
		id,
		worker.Profile{
			Name:          dto.Name,
			Email:         dto.Email,
			Phone:         dto.Phone,
			VehicleType:   dto.VehicleType,
			LicenseNumber: dto.LicenseNumber,
		},
		status,
		dto.SuspensionReason,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
