package usecase

import (
	"time"

	"medcare-portal/internal/delivery/dto"
	"medcare-portal/internal/domain/entity"
)

const (
	StatAvailableDoctors     = "Available Doctors"
	StatTotalAppointments    = "Total Appointments"
	StatUpcomingAppointments = "Upcoming Appointments"
	StatTodaysAppointments   = "Today's Appointments"
	StatUpcomingOperations   = "Upcoming Operations"
	StatTodaysDuties         = "Today's Duties"
	StatDoctorsPresent       = "Doctors Present"
	StatTotalDoctors         = "Total Doctors"
	StatTotalPatients        = "Total Patients"
	StatTotalNurses          = "Total Nurses"
)

func patientStats(doctors []entity.Doctor, appointments []entity.Appointment, now time.Time) []dto.StatResponse {
	return []dto.StatResponse{
		{Label: StatAvailableDoctors, Value: len(doctors)},
		{Label: StatTotalAppointments, Value: len(appointments)},
		{Label: StatUpcomingAppointments, Value: countUpcomingAppointments(appointments, now)},
	}
}

func doctorStats(appointments []entity.Appointment, operations []entity.Operation, duties []entity.DutySchedule, now time.Time) []dto.StatResponse {
	today := now.Format(entity.DateLayout)
	return []dto.StatResponse{
		{Label: StatTodaysAppointments, Value: countAppointmentsOn(appointments, today)},
		{Label: StatUpcomingOperations, Value: countUpcomingOperations(operations, now)},
		{Label: StatTodaysDuties, Value: countDutiesOn(duties, today)},
	}
}

// nurseStats expects appointments already narrowed to the department and day.
func nurseStats(appointments []entity.Appointment, doctors []entity.Doctor) []dto.StatResponse {
	return []dto.StatResponse{
		{Label: StatTodaysAppointments, Value: len(appointments)},
		{Label: StatDoctorsPresent, Value: countPresentDoctors(doctors)},
		{Label: StatTotalDoctors, Value: len(doctors)},
	}
}

func adminStats(profiles []entity.Profile, doctors []entity.Doctor, nurses []entity.Nurse, appointments []entity.Appointment) []dto.StatResponse {
	return []dto.StatResponse{
		{Label: StatTotalPatients, Value: countProfilesWithRole(profiles, entity.RolePatient)},
		{Label: StatTotalDoctors, Value: len(doctors)},
		{Label: StatTotalNurses, Value: len(nurses)},
		{Label: StatTotalAppointments, Value: len(appointments)},
		{Label: StatDoctorsPresent, Value: countPresentDoctors(doctors)},
	}
}

// countUpcomingAppointments counts appointments starting at or after now.
func countUpcomingAppointments(appointments []entity.Appointment, now time.Time) int {
	var n int
	for i := range appointments {
		if !appointments[i].StartsAt(now.Location()).Before(now) {
			n++
		}
	}
	return n
}

func countUpcomingOperations(operations []entity.Operation, now time.Time) int {
	var n int
	for i := range operations {
		if !operations[i].StartsAt(now.Location()).Before(now) {
			n++
		}
	}
	return n
}

func countAppointmentsOn(appointments []entity.Appointment, day string) int {
	var n int
	for i := range appointments {
		if appointments[i].Day() == day {
			n++
		}
	}
	return n
}

func countDutiesOn(duties []entity.DutySchedule, day string) int {
	var n int
	for i := range duties {
		if duties[i].Day() == day {
			n++
		}
	}
	return n
}

func countPresentDoctors(doctors []entity.Doctor) int {
	var n int
	for _, doctor := range doctors {
		if doctor.IsPresent {
			n++
		}
	}
	return n
}

// countProfilesWithRole matches the stored role exactly, so unknown roles
// are not counted as patients here.
func countProfilesWithRole(profiles []entity.Profile, role entity.Role) int {
	var n int
	for _, profile := range profiles {
		if profile.Role == role.String() {
			n++
		}
	}
	return n
}
