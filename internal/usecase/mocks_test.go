package usecase

import (
	"context"
	"io"
	"time"

	"medcare-portal/config"
	"medcare-portal/internal/domain/entity"
	"medcare-portal/internal/querycache"
	"medcare-portal/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestCache() *querycache.Cache {
	return querycache.New(config.CacheConfig{}, quietLogger())
}

// fixedClock pins "now" to 2026-03-14 10:00 UTC.
func fixedClock() Clock {
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	return NewClockAt(func() time.Time { return now }, time.UTC)
}

type mockProfileRepo struct{ mock.Mock }

func (m *mockProfileRepo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Profile, error) {
	args := m.Called(ctx, db, id)
	profile, _ := args.Get(0).(*entity.Profile)
	return profile, args.Error(1)
}

func (m *mockProfileRepo) FindAll(ctx context.Context, db *gorm.DB, filter entity.ProfileFilter) ([]entity.Profile, error) {
	args := m.Called(ctx, db, filter)
	profiles, _ := args.Get(0).([]entity.Profile)
	return profiles, args.Error(1)
}

func (m *mockProfileRepo) Create(ctx context.Context, db *gorm.DB, profile *entity.Profile) error {
	return m.Called(ctx, db, profile).Error(0)
}

type mockDoctorRepo struct{ mock.Mock }

func (m *mockDoctorRepo) FindAll(ctx context.Context, db *gorm.DB, filter entity.DoctorFilter) ([]entity.Doctor, error) {
	args := m.Called(ctx, db, filter)
	doctors, _ := args.Get(0).([]entity.Doctor)
	return doctors, args.Error(1)
}

func (m *mockDoctorRepo) FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.Doctor, error) {
	args := m.Called(ctx, db, userID)
	doctor, _ := args.Get(0).(*entity.Doctor)
	return doctor, args.Error(1)
}

func (m *mockDoctorRepo) Create(ctx context.Context, db *gorm.DB, doctor *entity.Doctor) error {
	return m.Called(ctx, db, doctor).Error(0)
}

type mockNurseRepo struct{ mock.Mock }

func (m *mockNurseRepo) FindAll(ctx context.Context, db *gorm.DB, filter entity.NurseFilter) ([]entity.Nurse, error) {
	args := m.Called(ctx, db, filter)
	nurses, _ := args.Get(0).([]entity.Nurse)
	return nurses, args.Error(1)
}

func (m *mockNurseRepo) FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.Nurse, error) {
	args := m.Called(ctx, db, userID)
	nurse, _ := args.Get(0).(*entity.Nurse)
	return nurse, args.Error(1)
}

func (m *mockNurseRepo) Create(ctx context.Context, db *gorm.DB, nurse *entity.Nurse) error {
	return m.Called(ctx, db, nurse).Error(0)
}

type mockAppointmentRepo struct{ mock.Mock }

func (m *mockAppointmentRepo) Create(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error {
	return m.Called(ctx, db, appointment).Error(0)
}

func (m *mockAppointmentRepo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	args := m.Called(ctx, db, id)
	appointment, _ := args.Get(0).(*entity.Appointment)
	return appointment, args.Error(1)
}

func (m *mockAppointmentRepo) FindAll(ctx context.Context, db *gorm.DB, filter entity.AppointmentFilter) ([]entity.Appointment, error) {
	args := m.Called(ctx, db, filter)
	appointments, _ := args.Get(0).([]entity.Appointment)
	return appointments, args.Error(1)
}

type mockOperationRepo struct{ mock.Mock }

func (m *mockOperationRepo) FindAll(ctx context.Context, db *gorm.DB, filter entity.OperationFilter) ([]entity.Operation, error) {
	args := m.Called(ctx, db, filter)
	operations, _ := args.Get(0).([]entity.Operation)
	return operations, args.Error(1)
}

func (m *mockOperationRepo) Create(ctx context.Context, db *gorm.DB, operation *entity.Operation) error {
	return m.Called(ctx, db, operation).Error(0)
}

type mockDutyRepo struct{ mock.Mock }

func (m *mockDutyRepo) FindAll(ctx context.Context, db *gorm.DB, filter entity.DutyScheduleFilter) ([]entity.DutySchedule, error) {
	args := m.Called(ctx, db, filter)
	schedules, _ := args.Get(0).([]entity.DutySchedule)
	return schedules, args.Error(1)
}

func (m *mockDutyRepo) Create(ctx context.Context, db *gorm.DB, schedule *entity.DutySchedule) error {
	return m.Called(ctx, db, schedule).Error(0)
}

type mockBookingGuard struct{ mock.Mock }

func (m *mockBookingGuard) Claim(ctx context.Context, patientID uuid.UUID, key string, ttl time.Duration) (service.Claim, error) {
	args := m.Called(ctx, patientID, key, ttl)
	claim, _ := args.Get(0).(service.Claim)
	return claim, args.Error(1)
}

func (m *mockBookingGuard) Reclaim(ctx context.Context, patientID uuid.UUID, key string, previous uuid.UUID, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, patientID, key, previous, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *mockBookingGuard) Complete(ctx context.Context, patientID uuid.UUID, key string, appointmentID uuid.UUID, ttl time.Duration) error {
	return m.Called(ctx, patientID, key, appointmentID, ttl).Error(0)
}

func (m *mockBookingGuard) Release(ctx context.Context, patientID uuid.UUID, key string) error {
	return m.Called(ctx, patientID, key).Error(0)
}

type mockAuditService struct{ mock.Mock }

func (m *mockAuditService) Record(ctx context.Context, userID *uuid.UUID, action string, metadata entity.JSON) error {
	return m.Called(ctx, userID, action, metadata).Error(0)
}

type mockInvalidator struct{ mock.Mock }

func (m *mockInvalidator) Invalidate(key querycache.Key) {
	m.Called(key)
}

func (m *mockInvalidator) InvalidatePrefix(name string) {
	m.Called(name)
}

type mockRevocation struct{ mock.Mock }

func (m *mockRevocation) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	return m.Called(ctx, tokenID, expiresAt).Error(0)
}

func (m *mockRevocation) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}
