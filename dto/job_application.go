package dto

import (
	"time"

	"github.com/followjobs/followjobs/internal/enum"
)

// JobApplication is the external representation used by the API.
type JobApplication struct {
	ID                uint64                 `json:"id"`
	ApplicationDate   time.Time              `json:"applicationDate"`
	Company           string                 `json:"company"`
	Position          string                 `json:"position"`
	EmploymentType    *string                `json:"employmentType"`
	Portal            string                 `json:"portal"`
	Status            enum.ApplicationStatus `json:"status"`
	StatusDisplayName string                 `json:"statusDisplayName"`
	ResponseDate      *time.Time             `json:"responseDate"`
	JobURL            *string                `json:"jobUrl"`
	Notes             *string                `json:"notes"`
	CreatedAt         time.Time              `json:"createdAt"`
	UpdatedAt         time.Time              `json:"updatedAt"`
}

// JobApplicationInput carries caller supplied fields for create and full update.
// Status is ignored on create.
type JobApplicationInput struct {
	ApplicationDate *time.Time              `json:"applicationDate"`
	Company         string                  `json:"company" binding:"notblank,max=255"`
	Position        string                  `json:"position" binding:"notblank,max=255"`
	EmploymentType  *string                 `json:"employmentType" binding:"omitempty,max=100"`
	Portal          string                  `json:"portal" binding:"notblank,max=50"`
	Status          *enum.ApplicationStatus `json:"status" binding:"omitempty,applicationstatus"`
	JobURL          *string                 `json:"jobUrl" binding:"omitempty,max=500"`
	Notes           *string                 `json:"notes"`
	GmailMessageID  *string                 `json:"gmailMessageId" binding:"omitempty,max=100"`
}

type UpdateStatus struct {
	Status enum.ApplicationStatus `json:"status" binding:"required,applicationstatus"`
	Notes  *string                `json:"notes"`
}
