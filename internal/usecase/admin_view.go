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

type adminView struct {
	viewDeps
	profileRepo     repository.ProfileRepository
	doctorRepo      repository.DoctorRepository
	nurseRepo       repository.NurseRepository
	appointmentRepo repository.AppointmentRepository
}

func (v *adminView) Role() entity.Role {
	return entity.RoleAdministrator
}

func (v *adminView) Build(ctx context.Context, _ *entity.Profile) *dto.DashboardResponse {
	var (
		profiles     querycache.Result[[]entity.Profile]
		doctors      querycache.Result[[]entity.Doctor]
		nurses       querycache.Result[[]entity.Nurse]
		appointments querycache.Result[[]entity.Appointment]
	)

	var g errgroup.Group
	g.Go(func() error {
		profiles = fetchList(ctx, v.viewDeps, querycache.NewKey(QueryAllProfiles), v.profileRepo.FindAll, entity.ProfileFilter{
			Order: entity.OrderCreatedDesc,
		})
		return nil
	})
	g.Go(func() error {
		doctors = fetchList(ctx, v.viewDeps, querycache.NewKey(QueryAllDoctors), v.doctorRepo.FindAll, entity.DoctorFilter{
			Expand: entity.ExpandProfile,
			Order:  entity.OrderCreatedDesc,
		})
		return nil
	})
	g.Go(func() error {
		nurses = fetchList(ctx, v.viewDeps, querycache.NewKey(QueryAllNurses), v.nurseRepo.FindAll, entity.NurseFilter{
			Expand: entity.ExpandProfile,
			Order:  entity.OrderCreatedDesc,
		})
		return nil
	})
	g.Go(func() error {
		appointments = fetchList(ctx, v.viewDeps, querycache.NewKey(QueryAllAppointments), v.appointmentRepo.FindAll, entity.AppointmentFilter{
			Expand: entity.ExpandPatient | entity.ExpandDoctorProfile,
			Order:  entity.OrderCreatedDesc,
		})
		return nil
	})
	_ = g.Wait()

	return &dto.DashboardResponse{
		Title: "Administrator Dashboard",
		Stats: adminStats(profiles.Data, doctors.Data, nurses.Data, appointments.Data),
		Administrator: &dto.AdminDashboard{
			RecentAppointments: sectionOf(appointments, converter.AppointmentsToResponses, v.cfg.RecentAppointments),
			Patients:           sectionOf(profilesWithRole(profiles, entity.RolePatient), converter.ProfilesToResponses, 0),
			Doctors:            sectionOf(doctors, converter.DoctorsToResponses, 0),
			Nurses:             sectionOf(nurses, converter.NursesToResponses, 0),
		},
	}
}

// profilesWithRole narrows the all-profiles result in memory so the roster
// shares one cached query with the stats.
func profilesWithRole(res querycache.Result[[]entity.Profile], role entity.Role) querycache.Result[[]entity.Profile] {
	filtered := make([]entity.Profile, 0, len(res.Data))
	for _, profile := range res.Data {
		if profile.Role == role.String() {
			filtered = append(filtered, profile)
		}
	}
	res.Data = filtered
	return res
}
