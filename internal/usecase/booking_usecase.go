package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"medcare-portal/config"
	"medcare-portal/internal/converter"
	"medcare-portal/internal/delivery/dto"
	"medcare-portal/internal/domain/entity"
	"medcare-portal/internal/domain/repository"
	"medcare-portal/internal/querycache"
	"medcare-portal/internal/service"
	"medcare-portal/pkg/validator"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrBookingValidation = errors.New("booking form is invalid")
	ErrBookingInProgress = errors.New("an identical booking is already being processed")
	ErrDoctorNotFound    = errors.New("doctor not found")
	ErrNotPatient        = errors.New("only patients can book appointments")
)

// BookingError carries the submitted form back so the caller can show it
// again unchanged.
type BookingError struct {
	Err    error
	Fields map[string]string
	Form   dto.BookingFormState
}

func (e *BookingError) Error() string {
	return e.Err.Error()
}

func (e *BookingError) Unwrap() error {
	return e.Err
}

type BookingUsecase interface {
	BookAppointment(ctx context.Context, identity entity.Identity, req *dto.BookAppointmentRequest) (*dto.BookingResult, error)
}

type bookingUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	cache           *querycache.Cache
	invalidator     QueryInvalidator
	clock           Clock
	cfg             config.BookingConfig
	validator       *validator.CustomValidator
	profileRepo     repository.ProfileRepository
	appointmentRepo repository.AppointmentRepository
	guard           service.BookingGuard
	auditService    service.AuditService
}

func NewBookingUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	cache *querycache.Cache,
	invalidator QueryInvalidator,
	clock Clock,
	cfg config.BookingConfig,
	validator *validator.CustomValidator,
	profileRepo repository.ProfileRepository,
	appointmentRepo repository.AppointmentRepository,
	guard service.BookingGuard,
	auditService service.AuditService,
) BookingUsecase {
	return &bookingUsecase{
		db:              db,
		log:             log,
		cache:           cache,
		invalidator:     invalidator,
		clock:           clock,
		cfg:             cfg,
		validator:       validator,
		profileRepo:     profileRepo,
		appointmentRepo: appointmentRepo,
		guard:           guard,
		auditService:    auditService,
	}
}

// BookAppointment books one appointment for the signed-in patient.
//
// Flow:
// 1. Validate the form (no store access on failure)
// 2. Check the viewer is a patient
// 3. Claim the duplicate-submission guard in Redis
// 4. Insert the appointment with status scheduled
// 5. Invalidate the appointment lists and record the audit entry
//
// Any failure after step 3 releases the guard.
func (u *bookingUsecase) BookAppointment(ctx context.Context, identity entity.Identity, req *dto.BookAppointmentRequest) (*dto.BookingResult, error) {
	form := converter.FormStateFromRequest(req)
	fail := func(err error) error {
		return &BookingError{Err: err, Form: form}
	}

	// Step 1: Validate
	appointment, fields := u.parseForm(req)
	if len(fields) > 0 {
		return nil, &BookingError{Err: ErrBookingValidation, Fields: fields, Form: form}
	}

	patientID := identity.UserID

	// Step 2: Only patients book
	profile, _, err := loadProfile(ctx, u.cache, u.profileRepo, u.db, patientID)
	if err != nil {
		u.log.Warnf("Failed to load profile %s for booking: %+v", patientID, err)
		return nil, fail(err)
	}
	if profile.ResolvedRole() != entity.RolePatient {
		return nil, fail(ErrNotPatient)
	}

	// Step 3: Duplicate guard
	guardKey, guardTTL := u.guardKeyFor(req)
	pendingTTL := u.pendingTTL(guardTTL)
	guarded := true
	claim, err := u.guard.Claim(ctx, patientID, guardKey, pendingTTL)
	if err != nil {
		u.log.Warnf("Booking guard unavailable, continuing unguarded: %+v", err)
		guarded = false
	}

	switch claim.State {
	case service.ClaimInProgress:
		return nil, fail(ErrBookingInProgress)
	case service.ClaimCompleted:
		existing, err := u.appointmentRepo.FindByID(ctx, u.db, claim.AppointmentID)
		if err != nil {
			u.log.Warnf("Failed to find replayed appointment %s: %+v", claim.AppointmentID, err)
			return nil, fail(err)
		}
		if existing != nil {
			return &dto.BookingResult{
				Appointment: converter.AppointmentToResponse(existing),
				Form:        dto.BookingFormState{},
				Replayed:    true,
			}, nil
		}
		// the earlier appointment is gone, take the key back before booking again
		reclaimed, err := u.guard.Reclaim(ctx, patientID, guardKey, claim.AppointmentID, pendingTTL)
		if err != nil {
			u.log.Warnf("Booking guard unavailable, continuing unguarded: %+v", err)
			guarded = false
		} else if !reclaimed {
			return nil, fail(ErrBookingInProgress)
		}
	}

	// Step 4: Insert
	appointment.PatientID = patientID
	if err := u.appointmentRepo.Create(ctx, u.db, appointment); err != nil {
		if guarded {
			u.releaseGuard(patientID, guardKey)
		}
		if isForeignKeyError(err, "doctor") {
			return nil, fail(ErrDoctorNotFound)
		}
		u.log.Warnf("Failed to create appointment for patient %s: %+v", patientID, err)
		return nil, fail(fmt.Errorf("create appointment: %w", err))
	}

	if guarded {
		u.completeGuard(ctx, patientID, guardKey, appointment.ID, guardTTL)
	}

	// Step 5: Refresh every list the appointment shows up in, then audit
	u.invalidateAppointmentLists(appointment)

	if err := u.auditService.Record(ctx, &patientID, entity.AuditActionAppointmentBook, entity.JSON{
		"appointment_id":   appointment.ID.String(),
		"doctor_id":        appointment.DoctorID.String(),
		"appointment_date": req.AppointmentDate,
		"appointment_time": req.AppointmentTime,
	}); err != nil {
		u.log.Warnf("Appointment %s booked without audit entry: %+v", appointment.ID, err)
	}

	u.log.Infof("Appointment booked: id=%s, patient=%s, doctor=%s, date=%s %s",
		appointment.ID, patientID, appointment.DoctorID, req.AppointmentDate, req.AppointmentTime)

	return &dto.BookingResult{
		Appointment: converter.AppointmentToResponse(appointment),
		Form:        dto.BookingFormState{},
	}, nil
}

// parseForm validates req and builds the appointment it describes. A
// non-empty field map means the form is rejected.
func (u *bookingUsecase) parseForm(req *dto.BookAppointmentRequest) (*entity.Appointment, map[string]string) {
	if err := u.validator.Validate(req); err != nil {
		return nil, u.validator.FormatValidationErrors(err)
	}

	fields := make(map[string]string)
	doctorID, err := uuid.Parse(req.DoctorID)
	if err != nil {
		fields["doctor_id"] = "doctor_id must be a valid UUID"
	}
	date, err := entity.ParseDate(req.AppointmentDate)
	if err != nil {
		fields["appointment_date"] = "appointment_date must use the format YYYY-MM-DD"
	} else if req.AppointmentDate < u.clock.Today() {
		fields["appointment_date"] = "appointment_date cannot be in the past"
	}
	clock, err := entity.ParseClock(req.AppointmentTime)
	if err != nil {
		fields["appointment_time"] = "appointment_time must use the format HH:MM"
	}
	if len(fields) > 0 {
		return nil, fields
	}

	return &entity.Appointment{
		ID:              uuid.New(),
		DoctorID:        doctorID,
		AppointmentDate: date,
		AppointmentTime: clock,
		Status:          entity.AppointmentStatusScheduled,
		Notes:           req.Notes,
	}, nil
}

// guardKeyFor prefers the client's Idempotency-Key. Without one, identical
// form contents are treated as the same submission for a short window.
func (u *bookingUsecase) guardKeyFor(req *dto.BookAppointmentRequest) (string, time.Duration) {
	if req.IdempotencyKey != "" {
		return "key:" + req.IdempotencyKey, u.cfg.IdempotencyTTL
	}
	return "form:" + bookingFingerprint(req), u.cfg.DuplicateWindow
}

// pendingTTL bounds how long an unfinished claim blocks retries, so a
// crashed submission frees the key well before the completed ttl.
func (u *bookingUsecase) pendingTTL(ttl time.Duration) time.Duration {
	if u.cfg.PendingTTL > 0 && u.cfg.PendingTTL < ttl {
		return u.cfg.PendingTTL
	}
	return ttl
}

func (u *bookingUsecase) invalidateAppointmentLists(appointment *entity.Appointment) {
	u.invalidator.Invalidate(PatientAppointmentsKey(appointment.PatientID))
	u.invalidator.Invalidate(querycache.NewKey(QueryDoctorAppointments, appointment.DoctorID.String()))
	u.invalidator.InvalidatePrefix(QueryDepartmentAppointments)
	u.invalidator.InvalidatePrefix(QueryAllAppointments)
}

func bookingFingerprint(req *dto.BookAppointmentRequest) string {
	digest := xxhash.New()
	for _, part := range []string{req.DoctorID, req.AppointmentDate, req.AppointmentTime, req.Notes} {
		_, _ = digest.WriteString(part)
		_, _ = digest.WriteString("\x00")
	}
	return strconv.FormatUint(digest.Sum64(), 16)
}

// releaseGuard runs detached from the request so a cancelled request still
// frees the key.
func (u *bookingUsecase) releaseGuard(patientID uuid.UUID, key string) {
	releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := u.guard.Release(releaseCtx, patientID, key); err != nil {
		u.log.Errorf("Failed to release booking guard for patient %s: %+v", patientID, err)
	}
}

// completeGuard records the booked appointment even when the request was
// cancelled after the insert.
func (u *bookingUsecase) completeGuard(ctx context.Context, patientID uuid.UUID, key string, appointmentID uuid.UUID, ttl time.Duration) {
	completeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := u.guard.Complete(completeCtx, patientID, key, appointmentID, ttl); err != nil {
		u.log.Warnf("Failed to complete booking guard: %+v", err)
	}
}
