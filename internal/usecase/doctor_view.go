package usecase

import (
	"context"

	"medcare-portal/internal/converter"
	"medcare-portal/internal/delivery/dto"
	"medcare-portal/internal/domain/entity"
	"medcare-portal/internal/domain/repository"
	"medcare-portal/internal/querycache"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const noDoctorRecord = "no doctor record is linked to this account"

type doctorView struct {
	viewDeps
	doctorRepo      repository.DoctorRepository
	appointmentRepo repository.AppointmentRepository
	operationRepo   repository.OperationRepository
	dutyRepo        repository.DutyScheduleRepository
}

func (v *doctorView) Role() entity.Role {
	return entity.RoleDoctor
}

func (v *doctorView) Build(ctx context.Context, viewer *entity.Profile) *dto.DashboardResponse {
	userID := viewer.ID
	info := querycache.Fetch(ctx, v.cache, querycache.NewKey(QueryDoctorInfo, userID.String()), func(ctx context.Context) (*entity.Doctor, error) {
		return v.doctorRepo.FindByUserID(ctx, v.db, userID)
	})

	dashboard := &dto.DoctorDashboard{Doctor: converter.DoctorToResponse(info.Data)}
	switch {
	case info.Err != nil:
		dashboard.DoctorError = info.Err.Error()
	case info.Data == nil && !info.IsLoading:
		dashboard.DoctorError = noDoctorRecord
		v.log.Warnf("No doctor record for user %s", userID)
	}

	if info.Data == nil {
		dashboard.Appointments = disabledSection[dto.AppointmentResponse]()
		dashboard.Operations = disabledSection[dto.OperationResponse]()
		dashboard.DutySchedules = disabledSection[dto.DutyScheduleResponse]()
		return &dto.DashboardResponse{
			Title:  "Doctor Dashboard",
			Stats:  doctorStats(nil, nil, nil, v.clock.Now()),
			Doctor: dashboard,
		}
	}

	var (
		doctorID     = info.Data.ID
		appointments querycache.Result[[]entity.Appointment]
		operations   querycache.Result[[]entity.Operation]
		duties       querycache.Result[[]entity.DutySchedule]
	)
	scope := doctorID.String()

	var g errgroup.Group
	g.Go(func() error {
		appointments = fetchList(ctx, v.viewDeps, querycache.NewKey(QueryDoctorAppointments, scope), v.appointmentRepo.FindAll, entity.AppointmentFilter{
			DoctorID: uuidPtr(doctorID),
			Expand:   entity.ExpandPatient,
			Order:    entity.Order{Column: "appointment_date"},
		})
		return nil
	})
	g.Go(func() error {
		operations = fetchList(ctx, v.viewDeps, querycache.NewKey(QueryDoctorOperations, scope), v.operationRepo.FindAll, entity.OperationFilter{
			DoctorID: uuidPtr(doctorID),
			Expand:   entity.ExpandPatient,
			Order:    entity.Order{Column: "operation_date"},
		})
		return nil
	})
	g.Go(func() error {
		duties = fetchList(ctx, v.viewDeps, querycache.NewKey(QueryDoctorDutySchedule, scope), v.dutyRepo.FindAll, entity.DutyScheduleFilter{
			DoctorID: uuidPtr(doctorID),
			Order:    entity.Order{Column: "duty_date"},
		})
		return nil
	})
	_ = g.Wait()

	dashboard.Appointments = sectionOf(appointments, converter.AppointmentsToResponses, v.cfg.DoctorListLimit)
	dashboard.Operations = sectionOf(operations, converter.OperationsToResponses, v.cfg.DoctorListLimit)
	dashboard.DutySchedules = sectionOf(duties, converter.DutySchedulesToResponses, 0)

	return &dto.DashboardResponse{
		Title:  "Doctor Dashboard",
		Stats:  doctorStats(appointments.Data, operations.Data, duties.Data, v.clock.Now()),
		Doctor: dashboard,
	}
}

func uuidPtr(id uuid.UUID) *uuid.UUID {
	return &id
}
