package repository

import (
	"context"
	"errors"

	"medcare-portal/internal/domain/entity"
	domainRepo "medcare-portal/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Doctor Repository

type doctorRepository struct{}

func NewDoctorRepository() domainRepo.DoctorRepository {
	return &doctorRepository{}
}

func (r *doctorRepository) FindAll(ctx context.Context, db *gorm.DB, filter entity.DoctorFilter) ([]entity.Doctor, error) {
	query := db.WithContext(ctx).Model(&entity.Doctor{})

	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.AvailabilityStatus != "" {
		query = query.Where("availability_status = ?", filter.AvailabilityStatus)
	}
	if filter.IsPresent != nil {
		query = query.Where("is_present = ?", *filter.IsPresent)
	}
	if filter.Department != "" {
		query = query.Where("department = ?", filter.Department)
	}
	if filter.Expand.Has(entity.ExpandProfile) {
		query = query.Preload("Profile", profileSummary)
	}

	query, err := applyOrder(query, filter.Order, "created_at", "department", "specialization")
	if err != nil {
		return nil, err
	}

	var doctors []entity.Doctor
	if err := query.Find(&doctors).Error; err != nil {
		return nil, err
	}
	return doctors, nil
}

func (r *doctorRepository) FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := db.WithContext(ctx).Where("user_id = ?", userID).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) Create(ctx context.Context, db *gorm.DB, doctor *entity.Doctor) error {
	return db.WithContext(ctx).Omit("Profile").Create(doctor).Error
}

// Nurse Repository

type nurseRepository struct{}

func NewNurseRepository() domainRepo.NurseRepository {
	return &nurseRepository{}
}

func (r *nurseRepository) FindAll(ctx context.Context, db *gorm.DB, filter entity.NurseFilter) ([]entity.Nurse, error) {
	query := db.WithContext(ctx).Model(&entity.Nurse{})

	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Expand.Has(entity.ExpandProfile) {
		query = query.Preload("Profile", profileSummary)
	}

	query, err := applyOrder(query, filter.Order, "created_at", "department")
	if err != nil {
		return nil, err
	}

	var nurses []entity.Nurse
	if err := query.Find(&nurses).Error; err != nil {
		return nil, err
	}
	return nurses, nil
}

func (r *nurseRepository) FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.Nurse, error) {
	var nurse entity.Nurse
	err := db.WithContext(ctx).Where("user_id = ?", userID).First(&nurse).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &nurse, nil
}

func (r *nurseRepository) Create(ctx context.Context, db *gorm.DB, nurse *entity.Nurse) error {
	return db.WithContext(ctx).Omit("Profile").Create(nurse).Error
}
