package repository

import (
	"context"

	"medcare-portal/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProfileRepository interface {
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Profile, error)
	FindAll(ctx context.Context, db *gorm.DB, filter entity.ProfileFilter) ([]entity.Profile, error)
	Create(ctx context.Context, db *gorm.DB, profile *entity.Profile) error
}
