package repository

import (
	"context"

	"medcare-portal/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorRepository interface {
	FindAll(ctx context.Context, db *gorm.DB, filter entity.DoctorFilter) ([]entity.Doctor, error)
	FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.Doctor, error)
	Create(ctx context.Context, db *gorm.DB, doctor *entity.Doctor) error
}

type NurseRepository interface {
	FindAll(ctx context.Context, db *gorm.DB, filter entity.NurseFilter) ([]entity.Nurse, error)
	FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.Nurse, error)
	Create(ctx context.Context, db *gorm.DB, nurse *entity.Nurse) error
}
