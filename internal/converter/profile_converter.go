package converter

import (
	"medcare-portal/internal/delivery/dto"
	"medcare-portal/internal/domain/entity"
)

func ProfileToResponse(profile *entity.Profile) *dto.ProfileResponse {
	if profile == nil {
		return nil
	}
	return &dto.ProfileResponse{
		ID:        profile.ID,
		Name:      profile.Name,
		Email:     profile.Email,
		Phone:     profile.Phone,
		Role:      profile.Role,
		CreatedAt: profile.CreatedAt,
	}
}

func ProfilesToResponses(profiles []entity.Profile) []dto.ProfileResponse {
	responses := make([]dto.ProfileResponse, len(profiles))
	for i := range profiles {
		responses[i] = *ProfileToResponse(&profiles[i])
	}
	return responses
}

// ProfileToViewer reports the role as resolved, so an unknown stored
// role shows up as patient.
func ProfileToViewer(profile *entity.Profile) dto.ViewerResponse {
	return dto.ViewerResponse{
		ID:    profile.ID,
		Name:  profile.Name,
		Email: profile.Email,
		Role:  profile.ResolvedRole().String(),
	}
}
