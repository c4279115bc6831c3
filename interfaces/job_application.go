package interfaces

import (
	"context"
	"time"

	"github.com/followjobs/followjobs/dto"
	"github.com/followjobs/followjobs/internal/enum"
)

// JobApplicationService applies the business rules on top of the repository.
// Id scoped lookups and mutations return a nil result when the id does not exist.
type JobApplicationService interface {
	Create(ctx context.Context, input *dto.JobApplicationInput) (*dto.JobApplication, error)
	FindByID(ctx context.Context, id uint64) (*dto.JobApplication, error)
	Update(ctx context.Context, id uint64, input *dto.JobApplicationInput) (*dto.JobApplication, error)
	UpdateStatus(ctx context.Context, id uint64, input *dto.UpdateStatus) (*dto.JobApplication, error)
	Delete(ctx context.Context, id uint64) (bool, error)

	FindAll(ctx context.Context) ([]*dto.JobApplication, error)
	FindByPortal(ctx context.Context, portal string) ([]*dto.JobApplication, error)
	FindByStatus(ctx context.Context, status enum.ApplicationStatus) ([]*dto.JobApplication, error)
	FindByPortalAndStatus(ctx context.Context, portal string, status enum.ApplicationStatus) ([]*dto.JobApplication, error)
	SearchByCompany(ctx context.Context, company string) ([]*dto.JobApplication, error)
	SearchByPosition(ctx context.Context, position string) ([]*dto.JobApplication, error)
	FindByDateRange(ctx context.Context, start, end time.Time) ([]*dto.JobApplication, error)
	FindStale(ctx context.Context, olderThanDays int) ([]*dto.JobApplication, error)

	Stats(ctx context.Context) (*dto.ApplicationStats, error)
	PortalCounts(ctx context.Context) (map[string]int64, error)
	CleanInvalidApplications(ctx context.Context) (int64, error)
}
