package usecase

import (
	"context"
	"errors"
	"testing"

	"medcare-portal/config"
	"medcare-portal/internal/delivery/dto"
	"medcare-portal/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

type dashboardFixture struct {
	profiles     *mockProfileRepo
	doctors      *mockDoctorRepo
	nurses       *mockNurseRepo
	appointments *mockAppointmentRepo
	operations   *mockOperationRepo
	duties       *mockDutyRepo
	usecase      *dashboardUsecase
}

func newDashboardFixture() *dashboardFixture {
	f := &dashboardFixture{
		profiles:     &mockProfileRepo{},
		doctors:      &mockDoctorRepo{},
		nurses:       &mockNurseRepo{},
		appointments: &mockAppointmentRepo{},
		operations:   &mockOperationRepo{},
		duties:       &mockDutyRepo{},
	}
	f.usecase = NewDashboardUsecase(nil, quietLogger(), newTestCache(), fixedClock(),
		config.DashboardConfig{RecentAppointments: 10, DoctorListLimit: 5},
		DashboardRepositories{
			Profile:      f.profiles,
			Doctor:       f.doctors,
			Nurse:        f.nurses,
			Appointment:  f.appointments,
			Operation:    f.operations,
			DutySchedule: f.duties,
		},
	).(*dashboardUsecase)
	return f
}

func (f *dashboardFixture) withProfile(role string) *entity.Profile {
	profile := &entity.Profile{ID: uuid.New(), Name: "Meredith", Email: "meredith@example.com", Role: role}
	f.profiles.On("FindByID", mock.Anything, mock.Anything, profile.ID).Return(profile, nil)
	return profile
}

// stubEmptyLists makes every list and lookup query return nothing.
func (f *dashboardFixture) stubEmptyLists() {
	f.profiles.On("FindAll", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil).Maybe()
	f.doctors.On("FindAll", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil).Maybe()
	f.doctors.On("FindByUserID", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil).Maybe()
	f.nurses.On("FindAll", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil).Maybe()
	f.nurses.On("FindByUserID", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil).Maybe()
	f.appointments.On("FindAll", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil).Maybe()
	f.operations.On("FindAll", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil).Maybe()
	f.duties.On("FindAll", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil).Maybe()
}

func identityOf(profile *entity.Profile) entity.Identity {
	return entity.Identity{UserID: profile.ID, Email: profile.Email, TokenID: "tok"}
}

func statValue(t *testing.T, stats []dto.StatResponse, label string) int {
	t.Helper()
	for _, stat := range stats {
		if stat.Label == label {
			return stat.Value
		}
	}
	t.Fatalf("stat %q not found in %+v", label, stats)
	return 0
}

func day(t *testing.T, s string) datatypes.Date {
	t.Helper()
	d, err := entity.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestViewForIsTotal(t *testing.T) {
	f := newDashboardFixture()

	for _, role := range entity.Roles() {
		assert.Equal(t, role, f.usecase.viewFor(role).Role())
	}
	assert.Equal(t, entity.RolePatient, f.usecase.viewFor(entity.Role(99)).Role())
}

func TestResolveDashboardDispatchesByRole(t *testing.T) {
	tests := []struct {
		storedRole string
		wantRole   string
		wantTitle  string
	}{
		{"patient", "patient", "Patient Dashboard"},
		{"doctor", "doctor", "Doctor Dashboard"},
		{"nurse", "nurse", "Nurse Dashboard"},
		{"administrator", "administrator", "Administrator Dashboard"},
		{"", "patient", "Patient Dashboard"},
		{"receptionist", "patient", "Patient Dashboard"},
	}

	for _, tt := range tests {
		t.Run("role "+tt.storedRole, func(t *testing.T) {
			f := newDashboardFixture()
			profile := f.withProfile(tt.storedRole)
			f.stubEmptyLists()

			resp, err := f.usecase.ResolveDashboard(context.Background(), identityOf(profile))
			require.NoError(t, err)

			assert.Equal(t, tt.wantRole, resp.Role)
			assert.Equal(t, tt.wantTitle, resp.Title)
			assert.Equal(t, tt.wantRole, resp.Viewer.Role)

			rendered := 0
			for _, section := range []bool{resp.Patient != nil, resp.Doctor != nil, resp.Nurse != nil, resp.Administrator != nil} {
				if section {
					rendered++
				}
			}
			assert.Equal(t, 1, rendered, "exactly one dashboard is rendered")
		})
	}
}

func TestResolveDashboardProfileNotFound(t *testing.T) {
	f := newDashboardFixture()
	userID := uuid.New()
	f.profiles.On("FindByID", mock.Anything, mock.Anything, userID).Return(nil, nil)

	_, err := f.usecase.ResolveDashboard(context.Background(), entity.Identity{UserID: userID})
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestResolveDashboardProfileFetchFails(t *testing.T) {
	f := newDashboardFixture()
	userID := uuid.New()
	f.profiles.On("FindByID", mock.Anything, mock.Anything, userID).Return(nil, errors.New("connection refused"))

	_, err := f.usecase.ResolveDashboard(context.Background(), entity.Identity{UserID: userID})
	assert.ErrorIs(t, err, ErrProfileUnavailable)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestResolveDashboardReusesCachedQueries(t *testing.T) {
	f := newDashboardFixture()
	profile := f.withProfile("patient")
	f.stubEmptyLists()

	for i := 0; i < 3; i++ {
		_, err := f.usecase.ResolveDashboard(context.Background(), identityOf(profile))
		require.NoError(t, err)
	}

	f.profiles.AssertNumberOfCalls(t, "FindByID", 1)
	f.doctors.AssertNumberOfCalls(t, "FindAll", 1)
	f.appointments.AssertNumberOfCalls(t, "FindAll", 1)
}

func TestForcedDashboardRejectsOtherRoles(t *testing.T) {
	f := newDashboardFixture()
	profile := f.withProfile("patient")
	f.stubEmptyLists()

	for _, role := range []entity.Role{entity.RoleDoctor, entity.RoleNurse, entity.RoleAdministrator} {
		resp, err := f.usecase.ForcedDashboard(context.Background(), identityOf(profile), role)
		assert.ErrorIs(t, err, ErrDashboardForbidden, role.String())
		assert.Nil(t, resp)
	}

	f.profiles.AssertNotCalled(t, "FindAll", mock.Anything, mock.Anything, mock.Anything)
	f.doctors.AssertNotCalled(t, "FindAll", mock.Anything, mock.Anything, mock.Anything)
}

func TestForcedDashboardAllowsOwnRole(t *testing.T) {
	f := newDashboardFixture()
	profile := f.withProfile("nurse")
	f.stubEmptyLists()

	resp, err := f.usecase.ForcedDashboard(context.Background(), identityOf(profile), entity.RoleNurse)
	require.NoError(t, err)
	assert.Equal(t, "nurse", resp.Role)
	assert.NotNil(t, resp.Nurse)
}

func TestViewerRole(t *testing.T) {
	f := newDashboardFixture()
	profile := f.withProfile("doctor")

	role, err := f.usecase.ViewerRole(context.Background(), identityOf(profile))
	require.NoError(t, err)
	assert.Equal(t, entity.RoleDoctor, role)
}

func TestPatientDashboardAvailableDoctors(t *testing.T) {
	f := newDashboardFixture()
	profile := f.withProfile("patient")
	doctorID := uuid.New()

	f.doctors.On("FindAll", mock.Anything, mock.Anything, mock.MatchedBy(func(filter entity.DoctorFilter) bool {
		return filter.AvailabilityStatus == entity.AvailabilityAvailable &&
			filter.IsPresent != nil && *filter.IsPresent &&
			filter.Expand.Has(entity.ExpandProfile)
	})).Return([]entity.Doctor{{
		ID:                 doctorID,
		Specialization:     "Cardiology",
		Department:         "Cardiology",
		IsPresent:          true,
		AvailabilityStatus: entity.AvailabilityAvailable,
		Profile:            &entity.Profile{Name: "Grey"},
	}}, nil).Once()
	f.appointments.On("FindAll", mock.Anything, mock.Anything, mock.MatchedBy(func(filter entity.AppointmentFilter) bool {
		return filter.PatientID != nil && *filter.PatientID == profile.ID && filter.Order.Column == "appointment_date"
	})).Return([]entity.Appointment{
		{ID: uuid.New(), AppointmentDate: day(t, "2026-03-20"), AppointmentTime: datatypes.NewTime(9, 0, 0, 0), Status: entity.AppointmentStatusScheduled},
		{ID: uuid.New(), AppointmentDate: day(t, "2026-03-14"), AppointmentTime: datatypes.NewTime(8, 0, 0, 0), Status: entity.AppointmentStatusCompleted},
	}, nil).Once()

	resp, err := f.usecase.ResolveDashboard(context.Background(), identityOf(profile))
	require.NoError(t, err)

	assert.Equal(t, 1, statValue(t, resp.Stats, StatAvailableDoctors))
	assert.Equal(t, 2, statValue(t, resp.Stats, StatTotalAppointments))
	assert.Equal(t, 1, statValue(t, resp.Stats, StatUpcomingAppointments))
	assert.Equal(t, []dto.BookingOption{{Value: doctorID, Label: "Dr. Grey - Cardiology"}}, resp.Patient.DoctorOptions)
	assert.Equal(t, dto.BookingFormState{}, resp.Patient.BookingForm)
	assert.Equal(t, "affirmative", resp.Patient.Appointments.Items[0].StatusCategory)
	f.doctors.AssertExpectations(t)
	f.appointments.AssertExpectations(t)
}

func TestPatientDashboardReportsSectionError(t *testing.T) {
	f := newDashboardFixture()
	profile := f.withProfile("patient")
	f.doctors.On("FindAll", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
	f.appointments.On("FindAll", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("statement timeout"))

	resp, err := f.usecase.ResolveDashboard(context.Background(), identityOf(profile))
	require.NoError(t, err)

	assert.Equal(t, "statement timeout", resp.Patient.Appointments.LoadError)
	assert.Empty(t, resp.Patient.Appointments.Items)
	assert.Empty(t, resp.Patient.AvailableDoctors.LoadError)
}

func TestDoctorDashboardCountsToday(t *testing.T) {
	f := newDashboardFixture()
	profile := f.withProfile("doctor")
	doctor := &entity.Doctor{ID: uuid.New(), UserID: profile.ID, Specialization: "Surgery"}
	f.doctors.On("FindByUserID", mock.Anything, mock.Anything, profile.ID).Return(doctor, nil)

	byDoctor := func(id *uuid.UUID) bool { return id != nil && *id == doctor.ID }
	f.appointments.On("FindAll", mock.Anything, mock.Anything, mock.MatchedBy(func(filter entity.AppointmentFilter) bool {
		return byDoctor(filter.DoctorID) && filter.Expand.Has(entity.ExpandPatient)
	})).Return([]entity.Appointment{
		{AppointmentDate: day(t, "2026-03-14"), AppointmentTime: datatypes.NewTime(9, 0, 0, 0)},
		{AppointmentDate: day(t, "2026-03-14"), AppointmentTime: datatypes.NewTime(15, 0, 0, 0)},
		{AppointmentDate: day(t, "2026-03-10"), AppointmentTime: datatypes.NewTime(11, 0, 0, 0)},
	}, nil)
	f.operations.On("FindAll", mock.Anything, mock.Anything, mock.MatchedBy(func(filter entity.OperationFilter) bool {
		return byDoctor(filter.DoctorID)
	})).Return([]entity.Operation{
		{OperationName: "Bypass", OperationDate: day(t, "2026-03-20"), Status: entity.OperationStatusScheduled},
		{OperationName: "Appendectomy", OperationDate: day(t, "2026-03-01"), Status: entity.OperationStatusCompleted},
	}, nil)
	f.duties.On("FindAll", mock.Anything, mock.Anything, mock.MatchedBy(func(filter entity.DutyScheduleFilter) bool {
		return byDoctor(filter.DoctorID)
	})).Return([]entity.DutySchedule{
		{DutyDate: day(t, "2026-03-14")},
		{DutyDate: day(t, "2026-03-15")},
	}, nil)

	resp, err := f.usecase.ResolveDashboard(context.Background(), identityOf(profile))
	require.NoError(t, err)

	assert.Equal(t, 2, statValue(t, resp.Stats, StatTodaysAppointments))
	assert.Equal(t, 1, statValue(t, resp.Stats, StatUpcomingOperations))
	assert.Equal(t, 1, statValue(t, resp.Stats, StatTodaysDuties))
	assert.Equal(t, doctor.ID, resp.Doctor.Doctor.ID)
	assert.Len(t, resp.Doctor.DutySchedules.Items, 2)
	assert.Equal(t, "neutral", resp.Doctor.Operations.Items[1].StatusCategory)
}

func TestDoctorDashboardWithoutDoctorRecord(t *testing.T) {
	f := newDashboardFixture()
	profile := f.withProfile("doctor")
	f.doctors.On("FindByUserID", mock.Anything, mock.Anything, profile.ID).Return(nil, nil)

	resp, err := f.usecase.ResolveDashboard(context.Background(), identityOf(profile))
	require.NoError(t, err)

	assert.Equal(t, noDoctorRecord, resp.Doctor.DoctorError)
	assert.True(t, resp.Doctor.Appointments.Disabled)
	assert.True(t, resp.Doctor.Operations.Disabled)
	assert.True(t, resp.Doctor.DutySchedules.Disabled)
	f.appointments.AssertNotCalled(t, "FindAll", mock.Anything, mock.Anything, mock.Anything)
	f.operations.AssertNotCalled(t, "FindAll", mock.Anything, mock.Anything, mock.Anything)
	f.duties.AssertNotCalled(t, "FindAll", mock.Anything, mock.Anything, mock.Anything)
}

func TestNurseDashboardWaitsForDepartment(t *testing.T) {
	f := newDashboardFixture()
	profile := f.withProfile("nurse")
	f.nurses.On("FindByUserID", mock.Anything, mock.Anything, profile.ID).Return(&entity.Nurse{ID: uuid.New(), UserID: profile.ID}, nil)

	resp, err := f.usecase.ResolveDashboard(context.Background(), identityOf(profile))
	require.NoError(t, err)

	assert.True(t, resp.Nurse.Appointments.Disabled)
	assert.True(t, resp.Nurse.Doctors.Disabled)
	assert.Equal(t, 0, statValue(t, resp.Stats, StatTotalDoctors))
	f.appointments.AssertNotCalled(t, "FindAll", mock.Anything, mock.Anything, mock.Anything)
	f.doctors.AssertNotCalled(t, "FindAll", mock.Anything, mock.Anything, mock.Anything)
}

func TestNurseDashboardFiltersByExactDepartment(t *testing.T) {
	f := newDashboardFixture()
	profile := f.withProfile("nurse")
	f.nurses.On("FindByUserID", mock.Anything, mock.Anything, profile.ID).
		Return(&entity.Nurse{ID: uuid.New(), UserID: profile.ID, Department: "Cardiology"}, nil)

	f.appointments.On("FindAll", mock.Anything, mock.Anything, mock.MatchedBy(func(filter entity.AppointmentFilter) bool {
		return filter.Department == "Cardiology" && filter.OnDate == "2026-03-14"
	})).Return([]entity.Appointment{{ID: uuid.New()}, {ID: uuid.New()}}, nil).Once()
	f.doctors.On("FindAll", mock.Anything, mock.Anything, mock.MatchedBy(func(filter entity.DoctorFilter) bool {
		return filter.Department == "Cardiology"
	})).Return([]entity.Doctor{{IsPresent: true}, {IsPresent: false}}, nil).Once()

	resp, err := f.usecase.ResolveDashboard(context.Background(), identityOf(profile))
	require.NoError(t, err)

	assert.Equal(t, "Cardiology", resp.Nurse.Department)
	assert.Equal(t, "2026-03-14", resp.Nurse.Date)
	assert.Equal(t, 2, statValue(t, resp.Stats, StatTodaysAppointments))
	assert.Equal(t, 1, statValue(t, resp.Stats, StatDoctorsPresent))
	assert.Equal(t, 2, statValue(t, resp.Stats, StatTotalDoctors))
	f.appointments.AssertExpectations(t)
	f.doctors.AssertExpectations(t)
}

func TestAdminDashboard(t *testing.T) {
	f := newDashboardFixture()
	profile := f.withProfile("administrator")

	f.profiles.On("FindAll", mock.Anything, mock.Anything, entity.ProfileFilter{Order: entity.OrderCreatedDesc}).Return([]entity.Profile{
		{Name: "Izzie", Role: "patient"}, {Name: "George", Role: "patient"}, {Name: "Derek", Role: "doctor"},
		{Name: "Alex", Role: "patient"}, {Name: "Bailey", Role: "janitor"},
	}, nil)
	doctors := make([]entity.Doctor, 7)
	doctors[0].IsPresent = true
	doctors[3].IsPresent = true
	f.doctors.On("FindAll", mock.Anything, mock.Anything, mock.Anything).Return(doctors, nil)
	f.nurses.On("FindAll", mock.Anything, mock.Anything, mock.Anything).Return([]entity.Nurse{{}, {}}, nil)
	f.appointments.On("FindAll", mock.Anything, mock.Anything, mock.MatchedBy(func(filter entity.AppointmentFilter) bool {
		return filter.Order == entity.OrderCreatedDesc && filter.PatientID == nil && filter.DoctorID == nil
	})).Return(make([]entity.Appointment, 12), nil)

	resp, err := f.usecase.ResolveDashboard(context.Background(), identityOf(profile))
	require.NoError(t, err)

	assert.Equal(t, 3, statValue(t, resp.Stats, StatTotalPatients))
	assert.Equal(t, 7, statValue(t, resp.Stats, StatTotalDoctors))
	assert.Equal(t, 2, statValue(t, resp.Stats, StatTotalNurses))
	assert.Equal(t, 12, statValue(t, resp.Stats, StatTotalAppointments))
	assert.Equal(t, 2, statValue(t, resp.Stats, StatDoctorsPresent))

	admin := resp.Administrator
	assert.Len(t, admin.RecentAppointments.Items, 10)
	assert.Equal(t, 12, admin.RecentAppointments.Total)
	assert.Len(t, admin.Doctors.Items, 7)
	assert.Equal(t, 7, admin.Doctors.Total)

	require.Len(t, admin.Patients.Items, 3)
	assert.Equal(t, 3, admin.Patients.Total)
	var names []string
	for _, patient := range admin.Patients.Items {
		assert.Equal(t, "patient", patient.Role)
		names = append(names, patient.Name)
	}
	assert.Equal(t, []string{"Izzie", "George", "Alex"}, names)
}
