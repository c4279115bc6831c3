package models

import (
	"time"

	"github.com/followjobs/followjobs/internal/enum"
)

// Company and position placeholder written by importers that could not extract a value.
const NotFoundPlaceholder = "No encontrado"

type JobApplication struct {
	ID              uint64                 `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ApplicationDate time.Time              `gorm:"column:application_date;type:timestamp;not null;index" json:"applicationDate"`
	Company         string                 `gorm:"column:company;type:varchar(255);not null" json:"company"`
	Position        string                 `gorm:"column:position;type:varchar(255);not null" json:"position"`
	EmploymentType  *string                `gorm:"column:employment_type;type:varchar(100)" json:"employmentType"`
	Portal          string                 `gorm:"column:portal;type:varchar(50);not null;index" json:"portal"`
	Status          enum.ApplicationStatus `gorm:"column:status;type:varchar(20);not null;index" json:"status"`
	ResponseDate    *time.Time             `gorm:"column:response_date;type:timestamp" json:"responseDate"`
	JobURL          *string                `gorm:"column:job_url;type:varchar(500)" json:"jobUrl"`
	Notes           *string                `gorm:"column:notes;type:text" json:"notes"`
	GmailMessageID  *string                `gorm:"column:gmail_message_id;type:varchar(100);uniqueIndex" json:"gmailMessageId"`
	CreatedAt       time.Time              `gorm:"column:created_at;type:timestamp;not null;autoCreateTime:false" json:"createdAt"`
	UpdatedAt       time.Time              `gorm:"column:updated_at;type:timestamp;autoUpdateTime:false" json:"updatedAt"`
}

func (JobApplication) TableName() string {
	return "job_applications"
}
