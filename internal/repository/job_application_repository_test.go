package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/followjobs/followjobs/interfaces"
	"github.com/followjobs/followjobs/internal/database"
	"github.com/followjobs/followjobs/internal/enum"
	"github.com/followjobs/followjobs/internal/models"
	"github.com/followjobs/followjobs/internal/utils"
)

var baseTime = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func newTestRepository(t *testing.T) *jobApplicationRepository {
	t.Helper()
	db, err := database.NewSQLiteConnection(filepath.Join(t.TempDir(), "repository.db"), "SILENT")
	require.NoError(t, err)
	require.NoError(t, MigrateDB(db))

	clock := baseTime
	return &jobApplicationRepository{
		db: db,
		now: func() time.Time {
			clock = clock.Add(time.Second)
			return clock
		},
	}
}

func newApplication(company, position, portal string, appliedAt time.Time) *models.JobApplication {
	return &models.JobApplication{
		ApplicationDate: appliedAt,
		Company:         company,
		Position:        position,
		Portal:          portal,
		Status:          enum.ApplicationStatusSent,
	}
}

func mustSave(t *testing.T, repo interfaces.JobApplicationRepository, application *models.JobApplication) *models.JobApplication {
	t.Helper()
	saved, err := repo.Save(context.Background(), application)
	require.NoError(t, err)
	return saved
}

func TestJobApplicationRepository_SaveInsertsAndUpdates(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	saved := mustSave(t, repo, newApplication("Acme", "Engineer", "LinkedIn", baseTime))
	require.NotZero(t, saved.ID)
	assert.Equal(t, saved.CreatedAt, saved.UpdatedAt)
	createdAt := saved.CreatedAt

	saved.Position = "Senior Engineer"
	updated := mustSave(t, repo, saved)
	assert.Equal(t, saved.ID, updated.ID)

	found, err := repo.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Senior Engineer", found.Position)
	assert.True(t, found.CreatedAt.Equal(createdAt))
	assert.True(t, found.UpdatedAt.After(found.CreatedAt))
}

func TestJobApplicationRepository_SaveKeepsCreatedAt(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	saved := mustSave(t, repo, newApplication("Acme", "Engineer", "LinkedIn", baseTime))
	createdAt := saved.CreatedAt

	saved.CreatedAt = baseTime.Add(72 * time.Hour)
	mustSave(t, repo, saved)

	found, err := repo.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.True(t, found.CreatedAt.Equal(createdAt))
}

func TestJobApplicationRepository_SaveDuplicateGmailMessageID(t *testing.T) {
	repo := newTestRepository(t)

	first := newApplication("Acme", "Engineer", "LinkedIn", baseTime)
	first.GmailMessageID = utils.ToPtr("msg-1")
	mustSave(t, repo, first)

	// several rows without a message id are fine
	mustSave(t, repo, newApplication("Globex", "Analyst", "Indeed", baseTime))
	mustSave(t, repo, newApplication("Initech", "Tester", "Indeed", baseTime))

	second := newApplication("Hooli", "Engineer", "LinkedIn", baseTime)
	second.GmailMessageID = utils.ToPtr("msg-1")
	_, err := repo.Save(context.Background(), second)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConstraintViolation))
}

func TestJobApplicationRepository_SaveNil(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.Save(context.Background(), nil)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestJobApplicationRepository_FindByIDMissing(t *testing.T) {
	repo := newTestRepository(t)

	found, err := repo.FindByID(context.Background(), 4242)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestJobApplicationRepository_FindAllOrderedByApplicationDateDesc(t *testing.T) {
	repo := newTestRepository(t)

	mustSave(t, repo, newApplication("Oldest", "Engineer", "LinkedIn", baseTime.Add(-48*time.Hour)))
	mustSave(t, repo, newApplication("Newest", "Engineer", "LinkedIn", baseTime))
	mustSave(t, repo, newApplication("Middle", "Engineer", "LinkedIn", baseTime.Add(-24*time.Hour)))

	all, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Newest", all[0].Company)
	assert.Equal(t, "Middle", all[1].Company)
	assert.Equal(t, "Oldest", all[2].Company)
}

func TestJobApplicationRepository_FindAllEmpty(t *testing.T) {
	repo := newTestRepository(t)

	all, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)
}

func TestJobApplicationRepository_Filters(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	mustSave(t, repo, newApplication("Acme Corp", "Backend Engineer", "LinkedIn", baseTime))
	mustSave(t, repo, newApplication("ACME Labs", "Data Analyst", "Indeed", baseTime))
	rejected := newApplication("Globex", "Go Developer", "linkedin", baseTime)
	rejected.Status = enum.ApplicationStatusRejected
	mustSave(t, repo, rejected)

	byPortal, err := repo.FindByPortal(ctx, "LinkedIn")
	require.NoError(t, err)
	require.Len(t, byPortal, 1)
	assert.Equal(t, "Acme Corp", byPortal[0].Company)

	byStatus, err := repo.FindByStatus(ctx, enum.ApplicationStatusRejected)
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	assert.Equal(t, "Globex", byStatus[0].Company)

	byCompany, err := repo.FindByCompanyContains(ctx, "acme")
	require.NoError(t, err)
	assert.Len(t, byCompany, 2)

	byPosition, err := repo.FindByPositionContains(ctx, "ENGINEER")
	require.NoError(t, err)
	require.Len(t, byPosition, 1)
	assert.Equal(t, "Acme Corp", byPosition[0].Company)
}

func TestJobApplicationRepository_FindByCompanyContainsEscapesWildcards(t *testing.T) {
	repo := newTestRepository(t)

	mustSave(t, repo, newApplication("Acme", "Engineer", "LinkedIn", baseTime))
	mustSave(t, repo, newApplication("100% Remote", "Engineer", "LinkedIn", baseTime))

	found, err := repo.FindByCompanyContains(context.Background(), "%")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "100% Remote", found[0].Company)
}

func TestJobApplicationRepository_ContainsFoldsNonASCII(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	mustSave(t, repo, newApplication("ÑANDÚ Tecnología", "Ingeniero de Señales", "Computrabajo", baseTime))
	mustSave(t, repo, newApplication("Acme", "Engineer", "LinkedIn", baseTime))

	for _, term := range []string{"ñandú", "ÑANDÚ", "Ñandú tecnOLOGÍA", "logía"} {
		found, err := repo.FindByCompanyContains(ctx, term)
		require.NoError(t, err)
		require.Len(t, found, 1, term)
		assert.Equal(t, "ÑANDÚ Tecnología", found[0].Company)
	}

	found, err := repo.FindByPositionContains(ctx, "SEÑALES")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Computrabajo", found[0].Portal)

	found, err = repo.FindByCompanyContains(ctx, "ACME")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Acme", found[0].Company)
}

func TestJobApplicationRepository_FindByGmailMessageID(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	application := newApplication("Acme", "Engineer", "LinkedIn", baseTime)
	application.GmailMessageID = utils.ToPtr("msg-42")
	mustSave(t, repo, application)

	found, err := repo.FindByGmailMessageID(ctx, "msg-42")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Acme", found.Company)

	missing, err := repo.FindByGmailMessageID(ctx, "msg-0")
	require.NoError(t, err)
	assert.Nil(t, missing)

	exists, err := repo.ExistsByGmailMessageID(ctx, "msg-42")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByGmailMessageID(ctx, "msg-0")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestJobApplicationRepository_FindByPortalAndStatus(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	older := mustSave(t, repo, newApplication("Acme", "Engineer", "LinkedIn", baseTime.AddDate(0, 0, -2)))
	newer := mustSave(t, repo, newApplication("Globex", "Engineer", "LinkedIn", baseTime))
	mustSave(t, repo, newApplication("Initech", "Engineer", "Indeed", baseTime))
	rejected := newApplication("Hooli", "Engineer", "LinkedIn", baseTime)
	rejected.Status = enum.ApplicationStatusRejected
	mustSave(t, repo, rejected)

	found, err := repo.FindByPortalAndStatus(ctx, "LinkedIn", enum.ApplicationStatusSent)
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, newer.ID, found[0].ID)
	assert.Equal(t, older.ID, found[1].ID)

	none, err := repo.FindByPortalAndStatus(ctx, "Indeed", enum.ApplicationStatusRejected)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestJobApplicationRepository_FindByApplicationDateBetween(t *testing.T) {
	repo := newTestRepository(t)

	mustSave(t, repo, newApplication("Before", "Engineer", "LinkedIn", baseTime.Add(-10*24*time.Hour)))
	mustSave(t, repo, newApplication("Start", "Engineer", "LinkedIn", baseTime.Add(-5*24*time.Hour)))
	mustSave(t, repo, newApplication("Inside", "Engineer", "LinkedIn", baseTime.Add(-2*24*time.Hour)))
	mustSave(t, repo, newApplication("After", "Engineer", "LinkedIn", baseTime.Add(24*time.Hour)))

	found, err := repo.FindByApplicationDateBetween(context.Background(), baseTime.Add(-5*24*time.Hour), baseTime)
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "Inside", found[0].Company)
	assert.Equal(t, "Start", found[1].Company)
}

func TestJobApplicationRepository_FindStale(t *testing.T) {
	repo := newTestRepository(t)
	cutoff := baseTime.Add(-30 * 24 * time.Hour)

	mustSave(t, repo, newApplication("Stale", "Engineer", "LinkedIn", cutoff.Add(-24*time.Hour)))
	mustSave(t, repo, newApplication("Older Stale", "Engineer", "LinkedIn", cutoff.Add(-48*time.Hour)))
	mustSave(t, repo, newApplication("Recent", "Engineer", "LinkedIn", cutoff.Add(24*time.Hour)))

	answered := newApplication("Answered", "Engineer", "LinkedIn", cutoff.Add(-24*time.Hour))
	answered.ResponseDate = utils.ToPtr(baseTime)
	mustSave(t, repo, answered)

	noResponse := newApplication("Given up", "Engineer", "LinkedIn", cutoff.Add(-24*time.Hour))
	noResponse.Status = enum.ApplicationStatusNoResponse
	mustSave(t, repo, noResponse)

	stale, err := repo.FindStale(context.Background(), cutoff)
	require.NoError(t, err)
	require.Len(t, stale, 2)
	assert.Equal(t, "Older Stale", stale[0].Company)
	assert.Equal(t, "Stale", stale[1].Company)
}

func TestJobApplicationRepository_ExistsAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	saved := mustSave(t, repo, newApplication("Acme", "Engineer", "LinkedIn", baseTime))

	exists, err := repo.ExistsByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, repo.DeleteByID(ctx, saved.ID))

	exists, err = repo.ExistsByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	found, err := repo.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestJobApplicationRepository_DeleteInvalid(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	a := mustSave(t, repo, newApplication("", models.NotFoundPlaceholder, "LinkedIn", baseTime))
	b := mustSave(t, repo, newApplication("Acme", "", "LinkedIn", baseTime))
	c := mustSave(t, repo, newApplication(models.NotFoundPlaceholder, models.NotFoundPlaceholder, "Indeed", baseTime))
	d := mustSave(t, repo, newApplication("", "", "Indeed", baseTime))
	e := mustSave(t, repo, newApplication(models.NotFoundPlaceholder, "Engineer", "Indeed", baseTime))

	deleted, err := repo.DeleteInvalid(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)

	for _, removed := range []uint64{a.ID, c.ID, d.ID} {
		found, err := repo.FindByID(ctx, removed)
		require.NoError(t, err)
		assert.Nil(t, found)
	}
	for _, kept := range []uint64{b.ID, e.ID} {
		found, err := repo.FindByID(ctx, kept)
		require.NoError(t, err)
		assert.NotNil(t, found)
	}

	deleted, err = repo.DeleteInvalid(ctx)
	require.NoError(t, err)
	assert.Zero(t, deleted)
}

func TestJobApplicationRepository_Counts(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	mustSave(t, repo, newApplication("A", "Engineer", "LinkedIn", baseTime))
	mustSave(t, repo, newApplication("B", "Engineer", "LinkedIn", baseTime))
	interview := newApplication("C", "Engineer", "Indeed", baseTime)
	interview.Status = enum.ApplicationStatusInterview
	mustSave(t, repo, interview)

	byStatus, err := repo.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), byStatus[enum.ApplicationStatusSent])
	assert.Equal(t, int64(1), byStatus[enum.ApplicationStatusInterview])
	assert.Zero(t, byStatus[enum.ApplicationStatusRejected])

	byPortal, err := repo.CountByPortal(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"LinkedIn": 2, "Indeed": 1}, byPortal)
}

func TestJobApplicationRepository_TransactionRollsBack(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)
	boom := errors.New("boom")

	err := repo.Transaction(ctx, func(tx interfaces.JobApplicationRepository) error {
		mustSave(t, tx, newApplication("Acme", "Engineer", "LinkedIn", baseTime))
		return boom
	})
	assert.Equal(t, boom, err)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%acme%", containsPattern("ACME"))
	assert.Equal(t, `%50\% off\_now%`, containsPattern("50% off_now"))
}
