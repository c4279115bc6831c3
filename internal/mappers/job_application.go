package mappers

import (
	"github.com/followjobs/followjobs/dto"
	"github.com/followjobs/followjobs/internal/models"
)

func MapJobApplicationToDTO(application *models.JobApplication) *dto.JobApplication {
	if application == nil {
		return nil
	}
	return &dto.JobApplication{
		ID:                application.ID,
		ApplicationDate:   application.ApplicationDate,
		Company:           application.Company,
		Position:          application.Position,
		EmploymentType:    application.EmploymentType,
		Portal:            application.Portal,
		Status:            application.Status,
		StatusDisplayName: application.Status.DisplayName(),
		ResponseDate:      application.ResponseDate,
		JobURL:            application.JobURL,
		Notes:             application.Notes,
		CreatedAt:         application.CreatedAt,
		UpdatedAt:         application.UpdatedAt,
	}
}

func MapJobApplicationsToDTO(applications []*models.JobApplication) []*dto.JobApplication {
	result := make([]*dto.JobApplication, 0, len(applications))
	for _, application := range applications {
		result = append(result, MapJobApplicationToDTO(application))
	}
	return result
}

// MapInputToJobApplication builds a new, unsaved entity. Status and dates are left
// for the caller to decide.
func MapInputToJobApplication(input *dto.JobApplicationInput) *models.JobApplication {
	return &models.JobApplication{
		Company:        input.Company,
		Position:       input.Position,
		EmploymentType: input.EmploymentType,
		Portal:         input.Portal,
		JobURL:         input.JobURL,
		Notes:          input.Notes,
		GmailMessageID: input.GmailMessageID,
	}
}
