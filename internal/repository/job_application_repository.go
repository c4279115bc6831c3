package repository

import (
	"context"
	"strings"
	"time"

	"github.com/opentracing/opentracing-go"
	tracingLog "github.com/opentracing/opentracing-go/log"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/followjobs/followjobs/interfaces"
	"github.com/followjobs/followjobs/internal/enum"
	"github.com/followjobs/followjobs/internal/models"
	"github.com/followjobs/followjobs/internal/tracing"
	"github.com/followjobs/followjobs/internal/utils"
)

const (
	orderByApplicationDateDesc = "application_date DESC, id DESC"
	dialectSQLite              = "sqlite"
)

type jobApplicationRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewJobApplicationRepository(db *gorm.DB) interfaces.JobApplicationRepository {
	return &jobApplicationRepository{
		db:  db,
		now: utils.Now,
	}
}

func (r *jobApplicationRepository) Save(ctx context.Context, application *models.JobApplication) (*models.JobApplication, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "JobApplicationRepository.Save")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)

	if application == nil {
		tracing.TraceErr(span, ErrInvalidInput)
		return nil, ErrInvalidInput
	}

	now := r.now()
	application.UpdatedAt = now

	var err error
	if application.ID == 0 {
		application.CreatedAt = now
		err = r.db.WithContext(ctx).Create(application).Error
	} else {
		tracing.TagEntity(span, utils.FormatID(application.ID))
		err = r.db.WithContext(ctx).Omit("created_at").Save(application).Error
	}
	if err != nil {
		if isUniqueViolation(err) {
			err = errors.WithMessagef(ErrConstraintViolation, "gmail message id %q already exists", utils.GetOrDefault(application.GmailMessageID, ""))
			tracing.TraceErr(span, err)
			return nil, err
		}
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return nil, errors.Wrap(err, "db error")
	}

	span.LogFields(tracingLog.Uint64("response.id", application.ID))
	return application, nil
}

func (r *jobApplicationRepository) FindByID(ctx context.Context, id uint64) (*models.JobApplication, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "JobApplicationRepository.FindByID")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	tracing.TagEntity(span, utils.FormatID(id))

	var application models.JobApplication
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&application).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			span.LogFields(tracingLog.Bool("response.found", false))
			return nil, nil
		}
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return nil, errors.Wrap(err, "db error")
	}

	return &application, nil
}

func (r *jobApplicationRepository) FindAll(ctx context.Context) ([]*models.JobApplication, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "JobApplicationRepository.FindAll")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)

	return r.find(span, r.db.WithContext(ctx).Order(orderByApplicationDateDesc))
}

func (r *jobApplicationRepository) FindByPortal(ctx context.Context, portal string) ([]*models.JobApplication, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "JobApplicationRepository.FindByPortal")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	span.LogKV("portal", portal)

	return r.find(span, r.db.WithContext(ctx).
		Where("portal = ?", portal).
		Order(orderByApplicationDateDesc))
}

func (r *jobApplicationRepository) FindByStatus(ctx context.Context, status enum.ApplicationStatus) ([]*models.JobApplication, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "JobApplicationRepository.FindByStatus")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	span.LogKV("status", status.String())

	return r.find(span, r.db.WithContext(ctx).
		Where("status = ?", status).
		Order(orderByApplicationDateDesc))
}

func (r *jobApplicationRepository) FindByPortalAndStatus(ctx context.Context, portal string, status enum.ApplicationStatus) ([]*models.JobApplication, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "JobApplicationRepository.FindByPortalAndStatus")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	span.LogKV("portal", portal, "status", status.String())

	return r.find(span, r.db.WithContext(ctx).
		Where("portal = ? AND status = ?", portal, status).
		Order(orderByApplicationDateDesc))
}

func (r *jobApplicationRepository) FindByCompanyContains(ctx context.Context, company string) ([]*models.JobApplication, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "JobApplicationRepository.FindByCompanyContains")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	span.LogKV("company", company)

	return r.findContains(ctx, span, "company", company, func(application *models.JobApplication) string {
		return application.Company
	})
}

func (r *jobApplicationRepository) FindByPositionContains(ctx context.Context, position string) ([]*models.JobApplication, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "JobApplicationRepository.FindByPositionContains")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	span.LogKV("position", position)

	return r.findContains(ctx, span, "position", position, func(application *models.JobApplication) string {
		return application.Position
	})
}

func (r *jobApplicationRepository) FindByGmailMessageID(ctx context.Context, gmailMessageID string) (*models.JobApplication, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "JobApplicationRepository.FindByGmailMessageID")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	span.LogKV("gmailMessageId", gmailMessageID)

	var application models.JobApplication
	err := r.db.WithContext(ctx).
		Where("gmail_message_id = ?", gmailMessageID).
		First(&application).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return nil, errors.Wrap(err, "db error")
	}

	return &application, nil
}

func (r *jobApplicationRepository) FindByApplicationDateBetween(ctx context.Context, start, end time.Time) ([]*models.JobApplication, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "JobApplicationRepository.FindByApplicationDateBetween")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	span.LogKV("start", start, "end", end)

	return r.find(span, r.db.WithContext(ctx).
		Where("application_date >= ? AND application_date <= ?", start.UTC(), end.UTC()).
		Order(orderByApplicationDateDesc))
}

func (r *jobApplicationRepository) FindStale(ctx context.Context, cutoff time.Time) ([]*models.JobApplication, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "JobApplicationRepository.FindStale")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	span.LogKV("cutoff", cutoff)

	return r.find(span, r.db.WithContext(ctx).
		Where("status = ?", enum.ApplicationStatusSent).
		Where("application_date < ?", cutoff.UTC()).
		Where("response_date IS NULL").
		Order("application_date ASC, id ASC"))
}

func (r *jobApplicationRepository) ExistsByID(ctx context.Context, id uint64) (bool, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "JobApplicationRepository.ExistsByID")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	tracing.TagEntity(span, utils.FormatID(id))

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.JobApplication{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return false, errors.Wrap(err, "db error")
	}

	span.LogFields(tracingLog.Bool("response.exists", count > 0))
	return count > 0, nil
}

func (r *jobApplicationRepository) ExistsByGmailMessageID(ctx context.Context, gmailMessageID string) (bool, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "JobApplicationRepository.ExistsByGmailMessageID")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	span.LogKV("gmailMessageId", gmailMessageID)

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.JobApplication{}).
		Where("gmail_message_id = ?", gmailMessageID).
		Count(&count).Error
	if err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return false, errors.Wrap(err, "db error")
	}

	span.LogFields(tracingLog.Bool("response.exists", count > 0))
	return count > 0, nil
}

func (r *jobApplicationRepository) DeleteByID(ctx context.Context, id uint64) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "JobApplicationRepository.DeleteByID")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	tracing.TagEntity(span, utils.FormatID(id))

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.JobApplication{}).Error
	if err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return errors.Wrap(err, "db error")
	}

	return nil
}

// DeleteInvalid removes rows whose company and position were both left empty
// or filled with the import placeholder.
func (r *jobApplicationRepository) DeleteInvalid(ctx context.Context) (int64, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "JobApplicationRepository.DeleteInvalid")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)

	result := r.db.WithContext(ctx).
		Where("(company = ? OR company = ?) AND (position = ? OR position = ?)",
			"", models.NotFoundPlaceholder, "", models.NotFoundPlaceholder).
		Delete(&models.JobApplication{})
	if result.Error != nil {
		tracing.TraceErr(span, errors.Wrap(result.Error, "db error"))
		return 0, errors.Wrap(result.Error, "db error")
	}

	span.LogFields(tracingLog.Int64("response.deleted", result.RowsAffected))
	return result.RowsAffected, nil
}

func (r *jobApplicationRepository) CountByStatus(ctx context.Context) (map[enum.ApplicationStatus]int64, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "JobApplicationRepository.CountByStatus")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)

	var rows []struct {
		Status enum.ApplicationStatus
		Total  int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.JobApplication{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return nil, errors.Wrap(err, "db error")
	}

	counts := make(map[enum.ApplicationStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}

func (r *jobApplicationRepository) CountByPortal(ctx context.Context) (map[string]int64, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "JobApplicationRepository.CountByPortal")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)

	var rows []struct {
		Portal string
		Total  int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.JobApplication{}).
		Select("portal, COUNT(*) AS total").
		Group("portal").
		Scan(&rows).Error
	if err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return nil, errors.Wrap(err, "db error")
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Portal] = row.Total
	}
	return counts, nil
}

func (r *jobApplicationRepository) Transaction(ctx context.Context, fn func(repo interfaces.JobApplicationRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&jobApplicationRepository{db: tx, now: r.now})
	})
}

func (r *jobApplicationRepository) find(span opentracing.Span, query *gorm.DB) ([]*models.JobApplication, error) {
	applications := make([]*models.JobApplication, 0)
	if err := query.Find(&applications).Error; err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return nil, errors.Wrap(err, "db error")
	}

	span.LogFields(tracingLog.Int("response.count", len(applications)))
	return applications, nil
}

// findContains matches term as a case insensitive substring of column. SQLite's
// LOWER() only folds ASCII, so on SQLite the folding happens in Go.
func (r *jobApplicationRepository) findContains(ctx context.Context, span opentracing.Span, column, term string, value func(*models.JobApplication) string) ([]*models.JobApplication, error) {
	if r.db.Dialector.Name() != dialectSQLite {
		return r.find(span, r.db.WithContext(ctx).
			Where("LOWER("+column+`) LIKE ? ESCAPE '\'`, containsPattern(term)).
			Order(orderByApplicationDateDesc))
	}

	applications, err := r.find(span, r.db.WithContext(ctx).Order(orderByApplicationDateDesc))
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(term)
	matches := make([]*models.JobApplication, 0, len(applications))
	for _, application := range applications {
		if strings.Contains(strings.ToLower(value(application)), needle) {
			matches = append(matches, application)
		}
	}
	span.LogFields(tracingLog.Int("response.matches", len(matches)))
	return matches, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}
