package repository

import (
	"context"

	"medcare-portal/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	FindAll(ctx context.Context, db *gorm.DB, filter entity.AppointmentFilter) ([]entity.Appointment, error)
}

type OperationRepository interface {
	FindAll(ctx context.Context, db *gorm.DB, filter entity.OperationFilter) ([]entity.Operation, error)
	Create(ctx context.Context, db *gorm.DB, operation *entity.Operation) error
}

type DutyScheduleRepository interface {
	FindAll(ctx context.Context, db *gorm.DB, filter entity.DutyScheduleFilter) ([]entity.DutySchedule, error)
	Create(ctx context.Context, db *gorm.DB, schedule *entity.DutySchedule) error
}
