package entity

// StatusCategory drives the badge colour of appointment and operation rows.
type StatusCategory string

const (
	StatusAffirmative StatusCategory = "affirmative"
	StatusNegative    StatusCategory = "negative"
	StatusNeutral     StatusCategory = "neutral"
)

// CategorizeStatus maps a raw status string onto a badge category.
// Shared by appointments and operations.
func CategorizeStatus(status string) StatusCategory {
	switch status {
	case string(AppointmentStatusConfirmed), string(AppointmentStatusScheduled):
		return StatusAffirmative
	case string(AppointmentStatusCancelled):
		return StatusNegative
	default:
		return StatusNeutral
	}
}

// CategorizeAvailability does the same for a doctor's availability_status.
func CategorizeAvailability(status AvailabilityStatus) StatusCategory {
	switch status {
	case AvailabilityAvailable:
		return StatusAffirmative
	case AvailabilityUnavailable:
		return StatusNegative
	default:
		return StatusNeutral
	}
}
