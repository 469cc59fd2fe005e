package usecase

import (
	"context"

	"medcare-portal/internal/converter"
	"medcare-portal/internal/delivery/dto"
	"medcare-portal/internal/domain/entity"
	"medcare-portal/internal/domain/repository"
	"medcare-portal/internal/querycache"

	"golang.org/x/sync/errgroup"
)

const noNurseRecord = "no nurse record is linked to this account"

type nurseView struct {
	viewDeps
	nurseRepo       repository.NurseRepository
	doctorRepo      repository.DoctorRepository
	appointmentRepo repository.AppointmentRepository
}

func (v *nurseView) Role() entity.Role {
	return entity.RoleNurse
}

func (v *nurseView) Build(ctx context.Context, viewer *entity.Profile) *dto.DashboardResponse {
	userID := viewer.ID
	info := querycache.Fetch(ctx, v.cache, querycache.NewKey(QueryNurseInfo, userID.String()), func(ctx context.Context) (*entity.Nurse, error) {
		return v.nurseRepo.FindByUserID(ctx, v.db, userID)
	})

	today := v.clock.Today()
	dashboard := &dto.NurseDashboard{
		Nurse: converter.NurseToResponse(info.Data),
		Date:  today,
	}
	switch {
	case info.Err != nil:
		dashboard.NurseError = info.Err.Error()
	case info.Data == nil && !info.IsLoading:
		dashboard.NurseError = noNurseRecord
		v.log.Warnf("No nurse record for user %s", userID)
	}

	var department string
	if info.Data != nil {
		department = info.Data.Department
	}
	dashboard.Department = department
	enabled := querycache.Enabled(department != "")

	var (
		appointments querycache.Result[[]entity.Appointment]
		doctors      querycache.Result[[]entity.Doctor]
	)

	var g errgroup.Group
	g.Go(func() error {
		appointments = fetchList(ctx, v.viewDeps, querycache.NewKey(QueryDepartmentAppointments, department, today), v.appointmentRepo.FindAll, entity.AppointmentFilter{
			Department: department,
			OnDate:     today,
			Expand:     entity.ExpandPatient | entity.ExpandDoctorProfile,
			Order:      entity.Order{Column: "appointment_time"},
		}, enabled)
		return nil
	})
	g.Go(func() error {
		doctors = fetchList(ctx, v.viewDeps, querycache.NewKey(QueryDepartmentDoctors, department), v.doctorRepo.FindAll, entity.DoctorFilter{
			Department: department,
			Expand:     entity.ExpandProfile,
		}, enabled)
		return nil
	})
	_ = g.Wait()

	if department == "" {
		dashboard.Appointments = disabledSection[dto.AppointmentResponse]()
		dashboard.Doctors = disabledSection[dto.DoctorResponse]()
	} else {
		dashboard.Appointments = sectionOf(appointments, converter.AppointmentsToResponses, 0)
		dashboard.Doctors = sectionOf(doctors, converter.DoctorsToResponses, 0)
	}

	return &dto.DashboardResponse{
		Title: "Nurse Dashboard",
		Stats: nurseStats(appointments.Data, doctors.Data),
		Nurse: dashboard,
	}
}
