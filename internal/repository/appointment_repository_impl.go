package repository

import (
	"context"
	"errors"

	"medcare-portal/internal/domain/entity"
	domainRepo "medcare-portal/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error {
	return db.WithContext(ctx).Omit("Patient", "Doctor").Create(appointment).Error
}

func (r *appointmentRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.WithContext(ctx).
		Preload("Doctor").Preload("Doctor.Profile", profileSummary).
		Where("id = ?", id).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindAll(ctx context.Context, db *gorm.DB, filter entity.AppointmentFilter) ([]entity.Appointment, error) {
	query := db.WithContext(ctx).Model(&entity.Appointment{})

	if filter.PatientID != nil {
		query = query.Where("appointments.patient_id = ?", *filter.PatientID)
	}
	if filter.DoctorID != nil {
		query = query.Where("appointments.doctor_id = ?", *filter.DoctorID)
	}
	if filter.OnDate != "" {
		query = query.Where("appointments.appointment_date = ?", filter.OnDate)
	}
	if filter.Department != "" {
		query = query.
			Joins("JOIN doctors ON doctors.id = appointments.doctor_id").
			Where("doctors.department = ?", filter.Department)
	}

	query = preloadAppointmentRelations(query, filter.Expand)

	query, err := applyOrder(query, filter.Order, "created_at", "appointment_date", "appointment_time")
	if err != nil {
		return nil, err
	}

	var appointments []entity.Appointment
	if err := query.Find(&appointments).Error; err != nil {
		return nil, err
	}
	return appointments, nil
}

// preloadAppointmentRelations is shared by appointments and operations,
// which embed the same patient and doctor associations.
func preloadAppointmentRelations(query *gorm.DB, expand entity.Expand) *gorm.DB {
	if expand.Has(entity.ExpandPatient) {
		query = query.Preload("Patient", profileSummary)
	}
	if expand.Has(entity.ExpandDoctor) || expand.Has(entity.ExpandDoctorProfile) {
		query = query.Preload("Doctor")
	}
	if expand.Has(entity.ExpandDoctorProfile) {
		query = query.Preload("Doctor.Profile", profileSummary)
	}
	return query
}

// Operation Repository

type operationRepository struct{}

func NewOperationRepository() domainRepo.OperationRepository {
	return &operationRepository{}
}

func (r *operationRepository) FindAll(ctx context.Context, db *gorm.DB, filter entity.OperationFilter) ([]entity.Operation, error) {
	query := db.WithContext(ctx).Model(&entity.Operation{})

	if filter.DoctorID != nil {
		query = query.Where("doctor_id = ?", *filter.DoctorID)
	}
	query = preloadAppointmentRelations(query, filter.Expand)

	query, err := applyOrder(query, filter.Order, "created_at", "operation_date")
	if err != nil {
		return nil, err
	}

	var operations []entity.Operation
	if err := query.Find(&operations).Error; err != nil {
		return nil, err
	}
	return operations, nil
}

func (r *operationRepository) Create(ctx context.Context, db *gorm.DB, operation *entity.Operation) error {
	return db.WithContext(ctx).Omit("Patient", "Doctor").Create(operation).Error
}

// Duty Schedule Repository

type dutyScheduleRepository struct{}

func NewDutyScheduleRepository() domainRepo.DutyScheduleRepository {
	return &dutyScheduleRepository{}
}

func (r *dutyScheduleRepository) FindAll(ctx context.Context, db *gorm.DB, filter entity.DutyScheduleFilter) ([]entity.DutySchedule, error) {
	query := db.WithContext(ctx).Model(&entity.DutySchedule{})

	if filter.DoctorID != nil {
		query = query.Where("doctor_id = ?", *filter.DoctorID)
	}

	query, err := applyOrder(query, filter.Order, "duty_date", "created_at")
	if err != nil {
		return nil, err
	}

	var schedules []entity.DutySchedule
	if err := query.Find(&schedules).Error; err != nil {
		return nil, err
	}
	return schedules, nil
}

func (r *dutyScheduleRepository) Create(ctx context.Context, db *gorm.DB, schedule *entity.DutySchedule) error {
	return db.WithContext(ctx).Create(schedule).Error
}
