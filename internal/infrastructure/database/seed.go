package database

import (
	"context"
	"fmt"
	"time"

	"medcare-portal/internal/domain/entity"
	domainRepo "medcare-portal/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type SeedRepositories struct {
	Profile      domainRepo.ProfileRepository
	Doctor       domainRepo.DoctorRepository
	Nurse        domainRepo.NurseRepository
	Appointment  domainRepo.AppointmentRepository
	Operation    domainRepo.OperationRepository
	DutySchedule domainRepo.DutyScheduleRepository
}

// Seeder fills an empty database with one account per role and a few days
// of activity around today.
type Seeder struct {
	db    *gorm.DB
	log   *logrus.Logger
	repos SeedRepositories
	loc   *time.Location
}

func NewSeeder(db *gorm.DB, log *logrus.Logger, repos SeedRepositories, loc *time.Location) *Seeder {
	if loc == nil {
		loc = time.UTC
	}
	return &Seeder{db: db, log: log, repos: repos, loc: loc}
}

type SeedResult struct {
	Profiles []entity.Profile
}

func (s *Seeder) Seed(ctx context.Context) (*SeedResult, error) {
	existing, err := s.repos.Profile.FindAll(ctx, s.db, entity.ProfileFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to check existing profiles: %w", err)
	}
	if len(existing) > 0 {
		s.log.Infof("Database already has %d profiles, skipping seed", len(existing))
		return &SeedResult{Profiles: existing}, nil
	}

	result := &SeedResult{}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		profiles := []*entity.Profile{
			{ID: uuid.New(), Name: "Alicia Admin", Email: "admin@medcare.test", Role: entity.RoleNameAdministrator},
			{ID: uuid.New(), Name: "Gregory House", Email: "house@medcare.test", Role: entity.RoleNameDoctor},
			{ID: uuid.New(), Name: "Meredith Grey", Email: "grey@medcare.test", Role: entity.RoleNameDoctor},
			{ID: uuid.New(), Name: "Carla Espinosa", Email: "carla@medcare.test", Role: entity.RoleNameNurse},
			{ID: uuid.New(), Name: "Peter Parker", Email: "peter@medcare.test", Phone: "+62811000001", Role: entity.RoleNamePatient},
		}
		for _, p := range profiles {
			if err := s.repos.Profile.Create(ctx, tx, p); err != nil {
				return fmt.Errorf("create profile %s: %w", p.Email, err)
			}
			result.Profiles = append(result.Profiles, *p)
		}
		house, grey, carla, peter := profiles[1], profiles[2], profiles[3], profiles[4]

		doctors := []*entity.Doctor{
			{
				ID: uuid.New(), UserID: house.ID, Specialization: "Diagnostics", Department: "Internal Medicine",
				IsPresent: true, AvailabilityStatus: entity.AvailabilityAvailable,
				ShiftStart: datatypes.NewTime(8, 0, 0, 0), ShiftEnd: datatypes.NewTime(16, 0, 0, 0),
			},
			{
				ID: uuid.New(), UserID: grey.ID, Specialization: "General Surgery", Department: "Surgery",
				IsPresent: true, AvailabilityStatus: entity.AvailabilityUnavailable,
				ShiftStart: datatypes.NewTime(7, 0, 0, 0), ShiftEnd: datatypes.NewTime(19, 0, 0, 0),
			},
		}
		for _, d := range doctors {
			if err := s.repos.Doctor.Create(ctx, tx, d); err != nil {
				return fmt.Errorf("create doctor: %w", err)
			}
		}

		if err := s.repos.Nurse.Create(ctx, tx, &entity.Nurse{UserID: carla.ID, Department: "Internal Medicine"}); err != nil {
			return fmt.Errorf("create nurse: %w", err)
		}

		today := time.Now().In(s.loc)
		date := func(offset int) datatypes.Date {
			d := today.AddDate(0, 0, offset)
			return datatypes.Date(time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC))
		}

		appointments := []*entity.Appointment{
			{PatientID: peter.ID, DoctorID: doctors[0].ID, AppointmentDate: date(0), AppointmentTime: datatypes.NewTime(9, 30, 0, 0), Status: entity.AppointmentStatusConfirmed, Notes: "Recurring headaches"},
			{PatientID: peter.ID, DoctorID: doctors[0].ID, AppointmentDate: date(3), AppointmentTime: datatypes.NewTime(11, 0, 0, 0), Status: entity.AppointmentStatusScheduled},
			{PatientID: peter.ID, DoctorID: doctors[1].ID, AppointmentDate: date(-7), AppointmentTime: datatypes.NewTime(14, 0, 0, 0), Status: entity.AppointmentStatusCompleted},
		}
		for _, a := range appointments {
			if err := s.repos.Appointment.Create(ctx, tx, a); err != nil {
				return fmt.Errorf("create appointment: %w", err)
			}
		}

		operation := &entity.Operation{
			PatientID: peter.ID, DoctorID: doctors[1].ID, OperationName: "Appendectomy",
			OperationDate: date(1), OperationTime: datatypes.NewTime(10, 0, 0, 0), Status: entity.OperationStatusScheduled,
		}
		if err := s.repos.Operation.Create(ctx, tx, operation); err != nil {
			return fmt.Errorf("create operation: %w", err)
		}

		for offset := 0; offset < 3; offset++ {
			for _, d := range doctors {
				duty := &entity.DutySchedule{
					DoctorID: d.ID, DutyDate: date(offset),
					ShiftStart: d.ShiftStart, ShiftEnd: d.ShiftEnd, Ward: d.Department,
				}
				if err := s.repos.DutySchedule.Create(ctx, tx, duty); err != nil {
					return fmt.Errorf("create duty schedule: %w", err)
				}
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Infof("Seeded %d profiles", len(result.Profiles))
	return result, nil
}
