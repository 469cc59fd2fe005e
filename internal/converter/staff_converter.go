package converter

import (
	"fmt"

	"medcare-portal/internal/delivery/dto"
	"medcare-portal/internal/domain/entity"
)

func DoctorToResponse(doctor *entity.Doctor) *dto.DoctorResponse {
	if doctor == nil {
		return nil
	}

	response := &dto.DoctorResponse{
		ID:                   doctor.ID,
		UserID:               doctor.UserID,
		Specialization:       doctor.Specialization,
		Department:           doctor.Department,
		IsPresent:            doctor.IsPresent,
		AvailabilityStatus:   string(doctor.AvailabilityStatus),
		AvailabilityCategory: string(entity.CategorizeAvailability(doctor.AvailabilityStatus)),
		ShiftStart:           entity.FormatClock(doctor.ShiftStart),
		ShiftEnd:             entity.FormatClock(doctor.ShiftEnd),
	}

	// Include profile info if expanded
	if doctor.Profile != nil {
		response.Name = doctor.Profile.Name
		response.Email = doctor.Profile.Email
	}

	return response
}

func DoctorsToResponses(doctors []entity.Doctor) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(doctors))
	for i := range doctors {
		responses[i] = *DoctorToResponse(&doctors[i])
	}
	return responses
}

// DoctorsToBookingOptions builds the selector entries, "Dr. <name> - <specialization>".
func DoctorsToBookingOptions(doctors []entity.Doctor) []dto.BookingOption {
	options := make([]dto.BookingOption, 0, len(doctors))
	for _, doctor := range doctors {
		name := ""
		if doctor.Profile != nil {
			name = doctor.Profile.Name
		}
		options = append(options, dto.BookingOption{
			Value: doctor.ID,
			Label: fmt.Sprintf("Dr. %s - %s", name, doctor.Specialization),
		})
	}
	return options
}

func NurseToResponse(nurse *entity.Nurse) *dto.NurseResponse {
	if nurse == nil {
		return nil
	}

	response := &dto.NurseResponse{
		ID:         nurse.ID,
		UserID:     nurse.UserID,
		Department: nurse.Department,
	}
	if nurse.Profile != nil {
		response.Name = nurse.Profile.Name
		response.Email = nurse.Profile.Email
	}
	return response
}

func NursesToResponses(nurses []entity.Nurse) []dto.NurseResponse {
	responses := make([]dto.NurseResponse, len(nurses))
	for i := range nurses {
		responses[i] = *NurseToResponse(&nurses[i])
	}
	return responses
}
