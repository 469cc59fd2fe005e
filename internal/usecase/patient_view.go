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

type patientView struct {
	viewDeps
	doctorRepo      repository.DoctorRepository
	appointmentRepo repository.AppointmentRepository
}

func (v *patientView) Role() entity.Role {
	return entity.RolePatient
}

func (v *patientView) Build(ctx context.Context, viewer *entity.Profile) *dto.DashboardResponse {
	var (
		doctors      querycache.Result[[]entity.Doctor]
		appointments querycache.Result[[]entity.Appointment]
	)

	present := true
	patientID := viewer.ID

	var g errgroup.Group
	g.Go(func() error {
		doctors = fetchList(ctx, v.viewDeps, querycache.NewKey(QueryAvailableDoctors), v.doctorRepo.FindAll, entity.DoctorFilter{
			AvailabilityStatus: entity.AvailabilityAvailable,
			IsPresent:          &present,
			Expand:             entity.ExpandProfile,
		})
		return nil
	})
	g.Go(func() error {
		appointments = fetchList(ctx, v.viewDeps, PatientAppointmentsKey(patientID), v.appointmentRepo.FindAll, entity.AppointmentFilter{
			PatientID: &patientID,
			Expand:    entity.ExpandDoctor | entity.ExpandDoctorProfile,
			Order:     entity.Order{Column: "appointment_date"},
		})
		return nil
	})
	_ = g.Wait()

	return &dto.DashboardResponse{
		Title: "Patient Dashboard",
		Stats: patientStats(doctors.Data, appointments.Data, v.clock.Now()),
		Patient: &dto.PatientDashboard{
			AvailableDoctors: sectionOf(doctors, converter.DoctorsToResponses, 0),
			Appointments:     sectionOf(appointments, converter.AppointmentsToResponses, 0),
			DoctorOptions:    converter.DoctorsToBookingOptions(doctors.Data),
			BookingForm:      dto.BookingFormState{},
		},
	}
}
