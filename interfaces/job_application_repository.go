package interfaces

import (
	"context"
	"time"

	"github.com/followjobs/followjobs/internal/enum"
	"github.com/followjobs/followjobs/internal/models"
)

// JobApplicationRepository owns persistence of job applications. Lookups that find
// nothing return a nil record and a nil error.
type JobApplicationRepository interface {
	Save(ctx context.Context, application *models.JobApplication) (*models.JobApplication, error)
	FindByID(ctx context.Context, id uint64) (*models.JobApplication, error)
	FindAll(ctx context.Context) ([]*models.JobApplication, error)
	FindByPortal(ctx context.Context, portal string) ([]*models.JobApplication, error)
	FindByStatus(ctx context.Context, status enum.ApplicationStatus) ([]*models.JobApplication, error)
	FindByPortalAndStatus(ctx context.Context, portal string, status enum.ApplicationStatus) ([]*models.JobApplication, error)
	FindByCompanyContains(ctx context.Context, company string) ([]*models.JobApplication, error)
	FindByPositionContains(ctx context.Context, position string) ([]*models.JobApplication, error)
	FindByGmailMessageID(ctx context.Context, gmailMessageID string) (*models.JobApplication, error)
	FindByApplicationDateBetween(ctx context.Context, start, end time.Time) ([]*models.JobApplication, error)
	FindStale(ctx context.Context, cutoff time.Time) ([]*models.JobApplication, error)
	ExistsByID(ctx context.Context, id uint64) (bool, error)
	ExistsByGmailMessageID(ctx context.Context, gmailMessageID string) (bool, error)
	DeleteByID(ctx context.Context, id uint64) error
	DeleteInvalid(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context) (map[enum.ApplicationStatus]int64, error)
	CountByPortal(ctx context.Context) (map[string]int64, error)
	Transaction(ctx context.Context, fn func(repo JobApplicationRepository) error) error
}
