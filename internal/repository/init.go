package repository

import (
	"gorm.io/gorm"

	"github.com/followjobs/followjobs/interfaces"
	"github.com/followjobs/followjobs/internal/models"
)

type Repositories struct {
	JobApplicationRepository interfaces.JobApplicationRepository
}

func InitRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		JobApplicationRepository: NewJobApplicationRepository(db),
	}
}

func MigrateDB(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.JobApplication{},
	)
}
