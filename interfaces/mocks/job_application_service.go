package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/followjobs/followjobs/dto"
	"github.com/followjobs/followjobs/internal/enum"
)

// JobApplicationService is a testify mock of interfaces.JobApplicationService
type JobApplicationService struct {
	mock.Mock
}

func applications(args mock.Arguments) ([]*dto.JobApplication, error) {
	result, _ := args.Get(0).([]*dto.JobApplication)
	return result, args.Error(1)
}

func application(args mock.Arguments) (*dto.JobApplication, error) {
	result, _ := args.Get(0).(*dto.JobApplication)
	return result, args.Error(1)
}

func (m *JobApplicationService) Create(ctx context.Context, input *dto.JobApplicationInput) (*dto.JobApplication, error) {
	return application(m.Called(ctx, input))
}

func (m *JobApplicationService) FindByID(ctx context.Context, id uint64) (*dto.JobApplication, error) {
	return application(m.Called(ctx, id))
}

func (m *JobApplicationService) Update(ctx context.Context, id uint64, input *dto.JobApplicationInput) (*dto.JobApplication, error) {
	return application(m.Called(ctx, id, input))
}

func (m *JobApplicationService) UpdateStatus(ctx context.Context, id uint64, input *dto.UpdateStatus) (*dto.JobApplication, error) {
	return application(m.Called(ctx, id, input))
}

func (m *JobApplicationService) Delete(ctx context.Context, id uint64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *JobApplicationService) FindAll(ctx context.Context) ([]*dto.JobApplication, error) {
	return applications(m.Called(ctx))
}

func (m *JobApplicationService) FindByPortal(ctx context.Context, portal string) ([]*dto.JobApplication, error) {
	return applications(m.Called(ctx, portal))
}

func (m *JobApplicationService) FindByStatus(ctx context.Context, status enum.ApplicationStatus) ([]*dto.JobApplication, error) {
	return applications(m.Called(ctx, status))
}

func (m *JobApplicationService) FindByPortalAndStatus(ctx context.Context, portal string, status enum.ApplicationStatus) ([]*dto.JobApplication, error) {
	return applications(m.Called(ctx, portal, status))
}

func (m *JobApplicationService) SearchByCompany(ctx context.Context, company string) ([]*dto.JobApplication, error) {
	return applications(m.Called(ctx, company))
}

func (m *JobApplicationService) SearchByPosition(ctx context.Context, position string) ([]*dto.JobApplication, error) {
	return applications(m.Called(ctx, position))
}

func (m *JobApplicationService) FindByDateRange(ctx context.Context, start, end time.Time) ([]*dto.JobApplication, error) {
	return applications(m.Called(ctx, start, end))
}

func (m *JobApplicationService) FindStale(ctx context.Context, olderThanDays int) ([]*dto.JobApplication, error) {
	return applications(m.Called(ctx, olderThanDays))
}

func (m *JobApplicationService) Stats(ctx context.Context) (*dto.ApplicationStats, error) {
	args := m.Called(ctx)
	result, _ := args.Get(0).(*dto.ApplicationStats)
	return result, args.Error(1)
}

func (m *JobApplicationService) PortalCounts(ctx context.Context) (map[string]int64, error) {
	args := m.Called(ctx)
	result, _ := args.Get(0).(map[string]int64)
	return result, args.Error(1)
}

func (m *JobApplicationService) CleanInvalidApplications(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
