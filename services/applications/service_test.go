package applications

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/followjobs/followjobs/dto"
	"github.com/followjobs/followjobs/internal/database"
	"github.com/followjobs/followjobs/internal/enum"
	apperrors "github.com/followjobs/followjobs/internal/errors"
	"github.com/followjobs/followjobs/internal/logger"
	"github.com/followjobs/followjobs/internal/repository"
	"github.com/followjobs/followjobs/internal/utils"
)

var serviceNow = time.Date(2025, 4, 2, 15, 30, 0, 0, time.UTC)

type recordingPublisher struct {
	mu       sync.Mutex
	messages []interface{}
	err      error
}

func (p *recordingPublisher) PublishFanoutEvent(_ context.Context, _ string, _ enum.EntityType, message interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, message)
	return p.err
}

func (p *recordingPublisher) Close() error {
	return nil
}

func (p *recordingPublisher) last() interface{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.messages) == 0 {
		return nil
	}
	return p.messages[len(p.messages)-1]
}

func newTestService(t *testing.T) (*jobApplicationService, *recordingPublisher) {
	t.Helper()
	db, err := database.NewSQLiteConnection(filepath.Join(t.TempDir(), "service.db"), "SILENT")
	require.NoError(t, err)
	require.NoError(t, repository.MigrateDB(db))

	publisher := &recordingPublisher{}
	service := NewJobApplicationService(repository.NewJobApplicationRepository(db), publisher, logger.NewNopLogger()).(*jobApplicationService)
	service.now = func() time.Time { return serviceNow }
	return service, publisher
}

func input(company, position, portal string) *dto.JobApplicationInput {
	return &dto.JobApplicationInput{
		Company:  company,
		Position: position,
		Portal:   portal,
	}
}

func TestCreate_ForcesSentAndDefaultsDate(t *testing.T) {
	ctx := context.Background()
	service, publisher := newTestService(t)

	in := input("Acme", "Backend Dev", "LinkedIn")
	in.Status = utils.ToPtr(enum.ApplicationStatusAccepted)

	created, err := service.Create(ctx, in)
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.NotZero(t, created.ID)
	assert.Equal(t, enum.ApplicationStatusSent, created.Status)
	assert.Equal(t, "Enviado", created.StatusDisplayName)
	assert.True(t, created.ApplicationDate.Equal(serviceNow))
	assert.Nil(t, created.ResponseDate)

	event, ok := publisher.last().(dto.ApplicationCreated)
	require.True(t, ok)
	assert.Equal(t, created.ID, event.Application.ID)
}

func TestCreate_KeepsSuppliedDate(t *testing.T) {
	service, _ := newTestService(t)

	appliedAt := time.Date(2025, 1, 15, 10, 0, 0, 0, time.FixedZone("CET", 3600))
	in := input("Acme", "Backend Dev", "LinkedIn")
	in.ApplicationDate = &appliedAt

	created, err := service.Create(context.Background(), in)
	require.NoError(t, err)
	assert.True(t, created.ApplicationDate.Equal(appliedAt))
	assert.Equal(t, time.UTC, created.ApplicationDate.Location())
}

func TestCreate_DuplicateGmailMessageID(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(t)

	first := input("Acme", "Backend Dev", "LinkedIn")
	first.GmailMessageID = utils.ToPtr("msg-1")
	_, err := service.Create(ctx, first)
	require.NoError(t, err)

	second := input("Globex", "Frontend Dev", "Indeed")
	second.GmailMessageID = utils.ToPtr("msg-1")
	_, err = service.Create(ctx, second)
	require.Error(t, err)
	assert.True(t, errors.Is(err, repository.ErrConstraintViolation))
}

func TestFindByID_Missing(t *testing.T) {
	service, _ := newTestService(t)

	found, err := service.FindByID(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestUpdate_OverwritesEditableFields(t *testing.T) {
	ctx := context.Background()
	service, publisher := newTestService(t)

	created, err := service.Create(ctx, input("Acme", "Backend Dev", "LinkedIn"))
	require.NoError(t, err)
	_, err = service.UpdateStatus(ctx, created.ID, &dto.UpdateStatus{Status: enum.ApplicationStatusInterview})
	require.NoError(t, err)

	update := input("Acme Corp", "Senior Backend Dev", "Indeed")
	update.JobURL = utils.ToPtr("https://acme.example/jobs/1")
	updated, err := service.Update(ctx, created.ID, update)
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.Equal(t, "Acme Corp", updated.Company)
	assert.Equal(t, "Senior Backend Dev", updated.Position)
	assert.Equal(t, "Indeed", updated.Portal)
	assert.Equal(t, "https://acme.example/jobs/1", *updated.JobURL)
	assert.Nil(t, updated.Notes)
	assert.Equal(t, enum.ApplicationStatusInterview, updated.Status)
	require.NotNil(t, updated.ResponseDate)
	assert.True(t, updated.CreatedAt.Equal(created.CreatedAt))

	_, ok := publisher.last().(dto.ApplicationUpdated)
	assert.True(t, ok)
}

func TestUpdate_WithStatus(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(t)

	created, err := service.Create(ctx, input("Acme", "Backend Dev", "LinkedIn"))
	require.NoError(t, err)

	update := input("Acme", "Backend Dev", "LinkedIn")
	update.Status = utils.ToPtr(enum.ApplicationStatusRejected)
	updated, err := service.Update(ctx, created.ID, update)
	require.NoError(t, err)

	assert.Equal(t, enum.ApplicationStatusRejected, updated.Status)
	assert.Nil(t, updated.ResponseDate)
}

func TestUpdate_Missing(t *testing.T) {
	service, publisher := newTestService(t)

	updated, err := service.Update(context.Background(), 99, input("Acme", "Backend Dev", "LinkedIn"))
	require.NoError(t, err)
	assert.Nil(t, updated)
	assert.Nil(t, publisher.last())
}

func TestUpdateStatus_StampsResponseDate(t *testing.T) {
	ctx := context.Background()

	for _, status := range []enum.ApplicationStatus{enum.ApplicationStatusRejected, enum.ApplicationStatusAccepted, enum.ApplicationStatusInterview} {
		t.Run(string(status), func(t *testing.T) {
			service, _ := newTestService(t)
			created, err := service.Create(ctx, input("Acme", "Backend Dev", "LinkedIn"))
			require.NoError(t, err)

			updated, err := service.UpdateStatus(ctx, created.ID, &dto.UpdateStatus{Status: status})
			require.NoError(t, err)
			assert.Equal(t, status, updated.Status)
			require.NotNil(t, updated.ResponseDate)
			assert.True(t, updated.ResponseDate.Equal(serviceNow))
		})
	}
}

func TestUpdateStatus_NonResponseKeepsResponseDate(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(t)

	created, err := service.Create(ctx, input("Acme", "Backend Dev", "LinkedIn"))
	require.NoError(t, err)

	updated, err := service.UpdateStatus(ctx, created.ID, &dto.UpdateStatus{Status: enum.ApplicationStatusNoResponse})
	require.NoError(t, err)
	assert.Nil(t, updated.ResponseDate)

	_, err = service.UpdateStatus(ctx, created.ID, &dto.UpdateStatus{Status: enum.ApplicationStatusRejected})
	require.NoError(t, err)

	later := serviceNow.Add(48 * time.Hour)
	service.now = func() time.Time { return later }
	updated, err = service.UpdateStatus(ctx, created.ID, &dto.UpdateStatus{Status: enum.ApplicationStatusSent})
	require.NoError(t, err)
	require.NotNil(t, updated.ResponseDate)
	assert.True(t, updated.ResponseDate.Equal(serviceNow))
}

func TestUpdateStatus_AppendsNotes(t *testing.T) {
	ctx := context.Background()
	service, publisher := newTestService(t)

	created, err := service.Create(ctx, input("Acme", "Backend Dev", "LinkedIn"))
	require.NoError(t, err)

	updated, err := service.UpdateStatus(ctx, created.ID, &dto.UpdateStatus{Status: enum.ApplicationStatusInterview, Notes: utils.ToPtr("Phone screen")})
	require.NoError(t, err)
	assert.Equal(t, "[2025-04-02T15:30:00] Phone screen", *updated.Notes)

	event, ok := publisher.last().(dto.ApplicationStatusChanged)
	require.True(t, ok)
	assert.Equal(t, enum.ApplicationStatusSent, event.PreviousStatus)
	assert.Equal(t, enum.ApplicationStatusInterview, event.Application.Status)

	service.now = func() time.Time { return serviceNow.Add(time.Hour) }
	updated, err = service.UpdateStatus(ctx, created.ID, &dto.UpdateStatus{Status: enum.ApplicationStatusAccepted, Notes: utils.ToPtr("Offer received")})
	require.NoError(t, err)
	assert.Equal(t, "[2025-04-02T15:30:00] Phone screen\n[2025-04-02T16:30:00] Offer received", *updated.Notes)

	updated, err = service.UpdateStatus(ctx, created.ID, &dto.UpdateStatus{Status: enum.ApplicationStatusAccepted, Notes: utils.ToPtr("   ")})
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(*updated.Notes, "\n"))
}

func TestUpdateStatus_Missing(t *testing.T) {
	service, _ := newTestService(t)

	updated, err := service.UpdateStatus(context.Background(), 5, &dto.UpdateStatus{Status: enum.ApplicationStatusRejected})
	require.NoError(t, err)
	assert.Nil(t, updated)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	service, publisher := newTestService(t)

	created, err := service.Create(ctx, input("Acme", "Backend Dev", "LinkedIn"))
	require.NoError(t, err)

	deleted, err := service.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	event, ok := publisher.last().(dto.ApplicationDeleted)
	require.True(t, ok)
	assert.Equal(t, created.ID, event.ID)

	deleted, err = service.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	found, err := service.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestPublishFailureDoesNotFailMutation(t *testing.T) {
	service, publisher := newTestService(t)
	publisher.err = errors.New("broker down")

	created, err := service.Create(context.Background(), input("Acme", "Backend Dev", "LinkedIn"))
	require.NoError(t, err)
	assert.NotNil(t, created)
}

func TestQueries(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(t)

	acme, err := service.Create(ctx, input("Acme", "Backend Dev", "LinkedIn"))
	require.NoError(t, err)
	_, err = service.Create(ctx, input("Globex", "Frontend Dev", "Indeed"))
	require.NoError(t, err)
	_, err = service.Create(ctx, input("acme labs", "Data Engineer", "LinkedIn"))
	require.NoError(t, err)
	_, err = service.UpdateStatus(ctx, acme.ID, &dto.UpdateStatus{Status: enum.ApplicationStatusRejected})
	require.NoError(t, err)

	all, err := service.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	linkedIn, err := service.FindByPortal(ctx, "LinkedIn")
	require.NoError(t, err)
	assert.Len(t, linkedIn, 2)

	none, err := service.FindByPortal(ctx, "linkedin")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	rejected, err := service.FindByStatus(ctx, enum.ApplicationStatusRejected)
	require.NoError(t, err)
	require.Len(t, rejected, 1)
	assert.Equal(t, acme.ID, rejected[0].ID)

	linkedInSent, err := service.FindByPortalAndStatus(ctx, "LinkedIn", enum.ApplicationStatusSent)
	require.NoError(t, err)
	require.Len(t, linkedInSent, 1)
	assert.Equal(t, "acme labs", linkedInSent[0].Company)

	byCompany, err := service.SearchByCompany(ctx, "ACME")
	require.NoError(t, err)
	assert.Len(t, byCompany, 2)

	byPosition, err := service.SearchByPosition(ctx, "dev")
	require.NoError(t, err)
	assert.Len(t, byPosition, 2)

	inRange, err := service.FindByDateRange(ctx, serviceNow.Add(-time.Hour), serviceNow.Add(time.Hour))
	require.NoError(t, err)
	assert.Len(t, inRange, 3)

	_, err = service.FindByDateRange(ctx, serviceNow, serviceNow.Add(-time.Hour))
	assert.ErrorIs(t, err, apperrors.ErrInvalidDateRange)
}

func TestFindStale(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(t)

	old := input("Acme", "Backend Dev", "LinkedIn")
	old.ApplicationDate = utils.ToPtr(serviceNow.AddDate(0, 0, -45))
	stale, err := service.Create(ctx, old)
	require.NoError(t, err)

	_, err = service.Create(ctx, input("Globex", "Frontend Dev", "Indeed"))
	require.NoError(t, err)

	answered := input("Initech", "QA", "Indeed")
	answered.ApplicationDate = utils.ToPtr(serviceNow.AddDate(0, 0, -60))
	answeredApp, err := service.Create(ctx, answered)
	require.NoError(t, err)
	_, err = service.UpdateStatus(ctx, answeredApp.ID, &dto.UpdateStatus{Status: enum.ApplicationStatusRejected})
	require.NoError(t, err)

	result, err := service.FindStale(ctx, 30)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, stale.ID, result[0].ID)

	_, err = service.FindStale(ctx, 0)
	assert.ErrorIs(t, err, apperrors.ErrInvalidDays)
}

func TestStatsAndPortalCounts(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(t)

	stats, err := service.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, dto.ApplicationStats{}, *stats)

	a, err := service.Create(ctx, input("Acme", "Backend Dev", "LinkedIn"))
	require.NoError(t, err)
	b, err := service.Create(ctx, input("Globex", "Frontend Dev", "Indeed"))
	require.NoError(t, err)
	_, err = service.Create(ctx, input("Initech", "QA", "LinkedIn"))
	require.NoError(t, err)
	_, err = service.UpdateStatus(ctx, a.ID, &dto.UpdateStatus{Status: enum.ApplicationStatusInterview})
	require.NoError(t, err)
	_, err = service.UpdateStatus(ctx, b.ID, &dto.UpdateStatus{Status: enum.ApplicationStatusRejected})
	require.NoError(t, err)

	stats, err = service.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, dto.ApplicationStats{Total: 3, Sent: 1, Rejected: 1, Interviews: 1}, *stats)

	portals, err := service.PortalCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"LinkedIn": 2, "Indeed": 1}, portals)
}

func TestCleanInvalidApplications(t *testing.T) {
	ctx := context.Background()
	service, publisher := newTestService(t)

	_, err := service.Create(ctx, input("Acme", "Backend Dev", "LinkedIn"))
	require.NoError(t, err)
	_, err = service.Create(ctx, input("No encontrado", "No encontrado", "LinkedIn"))
	require.NoError(t, err)
	_, err = service.Create(ctx, input("No encontrado", "Backend Dev", "Indeed"))
	require.NoError(t, err)

	deleted, err := service.CleanInvalidApplications(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	event, ok := publisher.last().(dto.InvalidApplicationsCleaned)
	require.True(t, ok)
	assert.Equal(t, int64(1), event.Deleted)

	deleted, err = service.CleanInvalidApplications(ctx)
	require.NoError(t, err)
	assert.Zero(t, deleted)

	all, err := service.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestAcmeLifecycle(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(t)

	created, err := service.Create(ctx, input("Acme", "Backend Dev", "LinkedIn"))
	require.NoError(t, err)
	assert.Equal(t, enum.ApplicationStatusSent, created.Status)

	updated, err := service.UpdateStatus(ctx, created.ID, &dto.UpdateStatus{Status: enum.ApplicationStatusInterview, Notes: utils.ToPtr("Phone screen")})
	require.NoError(t, err)
	assert.Equal(t, enum.ApplicationStatusInterview, updated.Status)
	assert.Equal(t, "Entrevista", updated.StatusDisplayName)
	require.NotNil(t, updated.ResponseDate)
	assert.Equal(t, "[2025-04-02T15:30:00] Phone screen", *updated.Notes)

	stats, err := service.Stats(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, stats.SuccessRate(), 0.001)

	deleted, err := service.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	all, err := service.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
