package converter

import (
	"medcare-portal/internal/delivery/dto"
	"medcare-portal/internal/domain/entity"
)

// AppointmentToResponse flattens whichever relations were expanded.
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:             appointment.ID,
		PatientID:      appointment.PatientID,
		DoctorID:       appointment.DoctorID,
		Date:           appointment.Day(),
		Time:           entity.FormatClock(appointment.AppointmentTime),
		Status:         string(appointment.Status),
		StatusCategory: string(entity.CategorizeStatus(string(appointment.Status))),
		Notes:          appointment.Notes,
		CreatedAt:      appointment.CreatedAt,
	}

	if appointment.Patient != nil {
		response.PatientName = appointment.Patient.Name
	}
	if appointment.Doctor != nil {
		response.Specialization = appointment.Doctor.Specialization
		response.Department = appointment.Doctor.Department
		if appointment.Doctor.Profile != nil {
			response.DoctorName = appointment.Doctor.Profile.Name
		}
	}

	return response
}

func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = *AppointmentToResponse(&appointments[i])
	}
	return responses
}

func OperationsToResponses(operations []entity.Operation) []dto.OperationResponse {
	responses := make([]dto.OperationResponse, len(operations))
	for i, operation := range operations {
		responses[i] = dto.OperationResponse{
			ID:             operation.ID,
			OperationName:  operation.OperationName,
			Date:           entity.FormatDate(operation.OperationDate),
			Time:           entity.FormatClock(operation.OperationTime),
			Status:         string(operation.Status),
			StatusCategory: string(entity.CategorizeStatus(string(operation.Status))),
		}
		if operation.Patient != nil {
			responses[i].PatientName = operation.Patient.Name
		}
	}
	return responses
}

func DutySchedulesToResponses(schedules []entity.DutySchedule) []dto.DutyScheduleResponse {
	responses := make([]dto.DutyScheduleResponse, len(schedules))
	for i, schedule := range schedules {
		responses[i] = dto.DutyScheduleResponse{
			ID:         schedule.ID,
			Date:       schedule.Day(),
			ShiftStart: entity.FormatClock(schedule.ShiftStart),
			ShiftEnd:   entity.FormatClock(schedule.ShiftEnd),
			Ward:       schedule.Ward,
		}
	}
	return responses
}

// FormStateFromRequest echoes the submitted form.
func FormStateFromRequest(req *dto.BookAppointmentRequest) dto.BookingFormState {
	return dto.BookingFormState{
		DoctorID:        req.DoctorID,
		AppointmentDate: req.AppointmentDate,
		AppointmentTime: req.AppointmentTime,
		Notes:           req.Notes,
	}
}
