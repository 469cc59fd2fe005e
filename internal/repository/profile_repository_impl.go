package repository

import (
	"context"
	"errors"

	"medcare-portal/internal/domain/entity"
	domainRepo "medcare-portal/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type profileRepository struct{}

func NewProfileRepository() domainRepo.ProfileRepository {
	return &profileRepository{}
}

func (r *profileRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Profile, error) {
	var profile entity.Profile
	err := db.WithContext(ctx).Where("id = ?", id).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) FindAll(ctx context.Context, db *gorm.DB, filter entity.ProfileFilter) ([]entity.Profile, error) {
	query := db.WithContext(ctx).Model(&entity.Profile{})
	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}

	query, err := applyOrder(query, filter.Order, "created_at", "name")
	if err != nil {
		return nil, err
	}

	var profiles []entity.Profile
	if err := query.Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *profileRepository) Create(ctx context.Context, db *gorm.DB, profile *entity.Profile) error {
	return db.WithContext(ctx).Create(profile).Error
}
