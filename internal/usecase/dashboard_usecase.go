package usecase

import (
	"context"
	"errors"
	"fmt"

	"medcare-portal/config"
	"medcare-portal/internal/converter"
	"medcare-portal/internal/delivery/dto"
	"medcare-portal/internal/domain/entity"
	"medcare-portal/internal/domain/repository"
	"medcare-portal/internal/querycache"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrProfileNotFound    = errors.New("profile not found")
	ErrProfileUnavailable = errors.New("profile could not be loaded")
	ErrDashboardForbidden = errors.New("dashboard is not available for this role")
)

// Query families. Each view reads through one of these, scoped by the
// parameters it filters on.
const (
	QueryUserProfile            = "user-profile"
	QueryAvailableDoctors       = "available-doctors"
	QueryPatientAppointments    = "patient-appointments"
	QueryDoctorInfo             = "doctor-info"
	QueryDoctorAppointments     = "doctor-appointments"
	QueryDoctorOperations       = "doctor-operations"
	QueryDoctorDutySchedule     = "doctor-duty-schedule"
	QueryNurseInfo              = "nurse-info"
	QueryDepartmentAppointments = "department-appointments"
	QueryDepartmentDoctors      = "department-doctors"
	QueryAllProfiles            = "all-profiles"
	QueryAllDoctors             = "all-doctors"
	QueryAllNurses              = "all-nurses"
	QueryAllAppointments        = "all-appointments"
)

func ProfileKey(userID uuid.UUID) querycache.Key {
	return querycache.NewKey(QueryUserProfile, userID.String())
}

func PatientAppointmentsKey(patientID uuid.UUID) querycache.Key {
	return querycache.NewKey(QueryPatientAppointments, patientID.String())
}

// QueryInvalidator is the write side of the query cache.
type QueryInvalidator interface {
	Invalidate(key querycache.Key)
	InvalidatePrefix(name string)
}

// DashboardView renders one role's dashboard. The set of views is closed.
type DashboardView interface {
	Role() entity.Role
	Build(ctx context.Context, viewer *entity.Profile) *dto.DashboardResponse
	dashboardView()
}

type DashboardUsecase interface {
	// ResolveDashboard renders the view that matches the viewer's role.
	ResolveDashboard(ctx context.Context, identity entity.Identity) (*dto.DashboardResponse, error)
	// ForcedDashboard renders role's view, which must be the viewer's own role.
	ForcedDashboard(ctx context.Context, identity entity.Identity, role entity.Role) (*dto.DashboardResponse, error)
	ViewerRole(ctx context.Context, identity entity.Identity) (entity.Role, error)
}

// DashboardRepositories groups the read models the views query.
type DashboardRepositories struct {
	Profile      repository.ProfileRepository
	Doctor       repository.DoctorRepository
	Nurse        repository.NurseRepository
	Appointment  repository.AppointmentRepository
	Operation    repository.OperationRepository
	DutySchedule repository.DutyScheduleRepository
}

type dashboardUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	cache       *querycache.Cache
	profileRepo repository.ProfileRepository

	patient DashboardView
	doctor  DashboardView
	nurse   DashboardView
	admin   DashboardView
}

func NewDashboardUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	cache *querycache.Cache,
	clock Clock,
	cfg config.DashboardConfig,
	repos DashboardRepositories,
) DashboardUsecase {
	deps := viewDeps{db: db, log: log, cache: cache, clock: clock, cfg: cfg}
	return &dashboardUsecase{
		db:          db,
		log:         log,
		cache:       cache,
		profileRepo: repos.Profile,
		patient:     &patientView{viewDeps: deps, doctorRepo: repos.Doctor, appointmentRepo: repos.Appointment},
		doctor: &doctorView{
			viewDeps:        deps,
			doctorRepo:      repos.Doctor,
			appointmentRepo: repos.Appointment,
			operationRepo:   repos.Operation,
			dutyRepo:        repos.DutySchedule,
		},
		nurse: &nurseView{viewDeps: deps, nurseRepo: repos.Nurse, doctorRepo: repos.Doctor, appointmentRepo: repos.Appointment},
		admin: &adminView{
			viewDeps:        deps,
			profileRepo:     repos.Profile,
			doctorRepo:      repos.Doctor,
			nurseRepo:       repos.Nurse,
			appointmentRepo: repos.Appointment,
		},
	}
}

// viewFor is total: any role without a dedicated view gets the patient view.
func (u *dashboardUsecase) viewFor(role entity.Role) DashboardView {
	switch role {
	case entity.RoleDoctor:
		return u.doctor
	case entity.RoleNurse:
		return u.nurse
	case entity.RoleAdministrator:
		return u.admin
	default:
		return u.patient
	}
}

func (u *dashboardUsecase) ResolveDashboard(ctx context.Context, identity entity.Identity) (*dto.DashboardResponse, error) {
	profile, stale, err := loadProfile(ctx, u.cache, u.profileRepo, u.db, identity.UserID)
	if err != nil {
		u.log.Warnf("Failed to load profile %s: %+v", identity.UserID, err)
		return nil, err
	}
	return u.render(ctx, u.viewFor(profile.ResolvedRole()), profile, stale)
}

func (u *dashboardUsecase) ForcedDashboard(ctx context.Context, identity entity.Identity, role entity.Role) (*dto.DashboardResponse, error) {
	profile, stale, err := loadProfile(ctx, u.cache, u.profileRepo, u.db, identity.UserID)
	if err != nil {
		u.log.Warnf("Failed to load profile %s: %+v", identity.UserID, err)
		return nil, err
	}
	if role != profile.ResolvedRole() {
		u.log.Warnf("Profile %s (%s) requested the %s dashboard", identity.UserID, profile.ResolvedRole(), role)
		return nil, ErrDashboardForbidden
	}
	return u.render(ctx, u.viewFor(role), profile, stale)
}

func (u *dashboardUsecase) ViewerRole(ctx context.Context, identity entity.Identity) (entity.Role, error) {
	profile, _, err := loadProfile(ctx, u.cache, u.profileRepo, u.db, identity.UserID)
	if err != nil {
		return entity.RolePatient, err
	}
	return profile.ResolvedRole(), nil
}

func (u *dashboardUsecase) render(ctx context.Context, view DashboardView, profile *entity.Profile, stale bool) (*dto.DashboardResponse, error) {
	resp := view.Build(ctx, profile)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resp.Role = view.Role().String()
	resp.Viewer = converter.ProfileToViewer(profile)
	resp.Stale = stale
	return resp, nil
}

// loadProfile reads the viewer's profile through the cache. A previously
// loaded profile is still served when a refresh fails.
func loadProfile(ctx context.Context, cache *querycache.Cache, repo repository.ProfileRepository, db *gorm.DB, userID uuid.UUID) (*entity.Profile, bool, error) {
	res := querycache.Fetch(ctx, cache, ProfileKey(userID), func(ctx context.Context) (*entity.Profile, error) {
		return repo.FindByID(ctx, db, userID)
	})

	switch {
	case res.IsLoading:
		return nil, false, ctx.Err()
	case res.Err != nil && res.Data == nil:
		return nil, false, fmt.Errorf("%w: %w", ErrProfileUnavailable, res.Err)
	case res.Data == nil:
		return nil, false, ErrProfileNotFound
	}
	return res.Data, res.Stale, nil
}
