package applications

import (
	"context"
	"fmt"
	"time"

	"github.com/opentracing/opentracing-go"

	"github.com/followjobs/followjobs/dto"
	"github.com/followjobs/followjobs/interfaces"
	"github.com/followjobs/followjobs/internal/enum"
	apperrors "github.com/followjobs/followjobs/internal/errors"
	"github.com/followjobs/followjobs/internal/logger"
	"github.com/followjobs/followjobs/internal/mappers"
	"github.com/followjobs/followjobs/internal/models"
	"github.com/followjobs/followjobs/internal/tracing"
	"github.com/followjobs/followjobs/internal/utils"
)

type jobApplicationService struct {
	repository interfaces.JobApplicationRepository
	publisher  interfaces.EventPublisher
	log        logger.Logger
	now        func() time.Time
}

func NewJobApplicationService(repository interfaces.JobApplicationRepository, publisher interfaces.EventPublisher, log logger.Logger) interfaces.JobApplicationService {
	return &jobApplicationService{
		repository: repository,
		publisher:  publisher,
		log:        log,
		now:        utils.Now,
	}
}

func (s *jobApplicationService) Create(ctx context.Context, input *dto.JobApplicationInput) (*dto.JobApplication, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "JobApplicationService.Create")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	s.log.Infof("Creating application: %s - %s", input.Company, input.Position)

	entity := mappers.MapInputToJobApplication(input)
	entity.Status = enum.ApplicationStatusSent
	if input.ApplicationDate != nil {
		entity.ApplicationDate = input.ApplicationDate.UTC()
	} else {
		entity.ApplicationDate = s.now()
	}

	saved, err := s.repository.Save(ctx, entity)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	s.log.Infof("Application created with ID: %d", saved.ID)

	result := mappers.MapJobApplicationToDTO(saved)
	s.publish(ctx, saved.ID, dto.ApplicationCreated{Application: *result})
	return result, nil
}

func (s *jobApplicationService) FindByID(ctx context.Context, id uint64) (*dto.JobApplication, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "JobApplicationService.FindByID")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagEntity(span, utils.FormatID(id))

	s.log.Infof("Finding application with ID: %d", id)

	application, err := s.repository.FindByID(ctx, id)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	return mappers.MapJobApplicationToDTO(application), nil
}

// Update overwrites the editable fields. Status changes only when one is supplied;
// response date, creation time and gmail message id are never touched here.
func (s *jobApplicationService) Update(ctx context.Context, id uint64, input *dto.JobApplicationInput) (*dto.JobApplication, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "JobApplicationService.Update")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagEntity(span, utils.FormatID(id))

	s.log.Infof("Updating application with ID: %d", id)

	var updated *models.JobApplication
	err := s.repository.Transaction(ctx, func(repo interfaces.JobApplicationRepository) error {
		existing, err := repo.FindByID(ctx, id)
		if err != nil || existing == nil {
			return err
		}

		existing.Company = input.Company
		existing.Position = input.Position
		existing.EmploymentType = input.EmploymentType
		existing.Portal = input.Portal
		existing.JobURL = input.JobURL
		existing.Notes = input.Notes
		if input.Status != nil {
			existing.Status = *input.Status
		}

		updated, err = repo.Save(ctx, existing)
		return err
	})
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	if updated == nil {
		s.log.Warnf("Application not found for update: %d", id)
		return nil, nil
	}
	s.log.Infof("Application updated: %d", updated.ID)

	result := mappers.MapJobApplicationToDTO(updated)
	s.publish(ctx, updated.ID, dto.ApplicationUpdated{Application: *result})
	return result, nil
}

// UpdateStatus sets the status, stamps the response date when the company answered
// and appends the optional note to the existing ones.
func (s *jobApplicationService) UpdateStatus(ctx context.Context, id uint64, input *dto.UpdateStatus) (*dto.JobApplication, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "JobApplicationService.UpdateStatus")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagEntity(span, utils.FormatID(id))

	s.log.Infof("Updating status of application %d to %s", id, input.Status)

	var updated *models.JobApplication
	var previousStatus enum.ApplicationStatus
	err := s.repository.Transaction(ctx, func(repo interfaces.JobApplicationRepository) error {
		existing, err := repo.FindByID(ctx, id)
		if err != nil || existing == nil {
			return err
		}

		now := s.now()
		previousStatus = existing.Status
		existing.Status = input.Status

		if input.Status.IsResponse() {
			existing.ResponseDate = &now
			s.log.Infof("Response date recorded for application %d", id)
		}

		if !utils.IsBlank(input.Notes) {
			existing.Notes = utils.ToPtr(appendNote(existing.Notes, *input.Notes, now))
		}

		updated, err = repo.Save(ctx, existing)
		return err
	})
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	if updated == nil {
		s.log.Warnf("Application not found for status update: %d", id)
		return nil, nil
	}

	result := mappers.MapJobApplicationToDTO(updated)
	s.publish(ctx, updated.ID, dto.ApplicationStatusChanged{Application: *result, PreviousStatus: previousStatus})
	return result, nil
}

func (s *jobApplicationService) Delete(ctx context.Context, id uint64) (bool, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "JobApplicationService.Delete")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagEntity(span, utils.FormatID(id))

	s.log.Infof("Deleting application with ID: %d", id)

	deleted := false
	err := s.repository.Transaction(ctx, func(repo interfaces.JobApplicationRepository) error {
		exists, err := repo.ExistsByID(ctx, id)
		if err != nil || !exists {
			return err
		}
		if err = repo.DeleteByID(ctx, id); err != nil {
			return err
		}
		deleted = true
		return nil
	})
	if err != nil {
		tracing.TraceErr(span, err)
		return false, err
	}

	if !deleted {
		s.log.Warnf("Application not found for deletion: %d", id)
		return false, nil
	}
	s.log.Infof("Application deleted: %d", id)

	s.publish(ctx, id, dto.ApplicationDeleted{ID: id})
	return true, nil
}

func (s *jobApplicationService) FindAll(ctx context.Context) ([]*dto.JobApplication, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "JobApplicationService.FindAll")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	s.log.Info("Fetching all applications")
	return s.mapList(span, func() ([]*models.JobApplication, error) {
		return s.repository.FindAll(ctx)
	})
}

func (s *jobApplicationService) FindByPortal(ctx context.Context, portal string) ([]*dto.JobApplication, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "JobApplicationService.FindByPortal")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	s.log.Infof("Finding applications from portal: %s", portal)
	return s.mapList(span, func() ([]*models.JobApplication, error) {
		return s.repository.FindByPortal(ctx, portal)
	})
}

func (s *jobApplicationService) FindByStatus(ctx context.Context, status enum.ApplicationStatus) ([]*dto.JobApplication, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "JobApplicationService.FindByStatus")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	s.log.Infof("Finding applications with status: %s", status)
	return s.mapList(span, func() ([]*models.JobApplication, error) {
		return s.repository.FindByStatus(ctx, status)
	})
}

func (s *jobApplicationService) FindByPortalAndStatus(ctx context.Context, portal string, status enum.ApplicationStatus) ([]*dto.JobApplication, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "JobApplicationService.FindByPortalAndStatus")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	s.log.Infof("Finding applications from portal %s with status: %s", portal, status)
	return s.mapList(span, func() ([]*models.JobApplication, error) {
		return s.repository.FindByPortalAndStatus(ctx, portal, status)
	})
}

func (s *jobApplicationService) SearchByCompany(ctx context.Context, company string) ([]*dto.JobApplication, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "JobApplicationService.SearchByCompany")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	s.log.Infof("Searching applications by company: %s", company)
	return s.mapList(span, func() ([]*models.JobApplication, error) {
		return s.repository.FindByCompanyContains(ctx, company)
	})
}

func (s *jobApplicationService) SearchByPosition(ctx context.Context, position string) ([]*dto.JobApplication, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "JobApplicationService.SearchByPosition")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	s.log.Infof("Searching applications by position: %s", position)
	return s.mapList(span, func() ([]*models.JobApplication, error) {
		return s.repository.FindByPositionContains(ctx, position)
	})
}

func (s *jobApplicationService) FindByDateRange(ctx context.Context, start, end time.Time) ([]*dto.JobApplication, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "JobApplicationService.FindByDateRange")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	if start.After(end) {
		tracing.TraceErr(span, apperrors.ErrInvalidDateRange)
		return nil, apperrors.ErrInvalidDateRange
	}

	s.log.Infof("Finding applications between %s and %s", start.Format(time.RFC3339), end.Format(time.RFC3339))
	return s.mapList(span, func() ([]*models.JobApplication, error) {
		return s.repository.FindByApplicationDateBetween(ctx, start, end)
	})
}

// FindStale returns applications still in SENT without any answer for more than olderThanDays.
func (s *jobApplicationService) FindStale(ctx context.Context, olderThanDays int) ([]*dto.JobApplication, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "JobApplicationService.FindStale")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	if olderThanDays <= 0 {
		tracing.TraceErr(span, apperrors.ErrInvalidDays)
		return nil, apperrors.ErrInvalidDays
	}

	cutoff := s.now().AddDate(0, 0, -olderThanDays)
	s.log.Infof("Finding stale applications sent before %s", cutoff.Format(time.RFC3339))
	return s.mapList(span, func() ([]*models.JobApplication, error) {
		return s.repository.FindStale(ctx, cutoff)
	})
}

func (s *jobApplicationService) Stats(ctx context.Context) (*dto.ApplicationStats, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "JobApplicationService.Stats")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	counts, err := s.repository.CountByStatus(ctx)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	stats := dto.ApplicationStats{
		Sent:       counts[enum.ApplicationStatusSent],
		Rejected:   counts[enum.ApplicationStatusRejected],
		Accepted:   counts[enum.ApplicationStatusAccepted],
		Interviews: counts[enum.ApplicationStatusInterview],
		NoResponse: counts[enum.ApplicationStatusNoResponse],
	}
	for _, count := range counts {
		stats.Total += count
	}
	return &stats, nil
}

func (s *jobApplicationService) PortalCounts(ctx context.Context) (map[string]int64, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "JobApplicationService.PortalCounts")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	counts, err := s.repository.CountByPortal(ctx)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	return counts, nil
}

func (s *jobApplicationService) CleanInvalidApplications(ctx context.Context) (int64, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "JobApplicationService.CleanInvalidApplications")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	s.log.Info("Running cleanup of invalid applications")

	deleted, err := s.repository.DeleteInvalid(ctx)
	if err != nil {
		tracing.TraceErr(span, err)
		return 0, err
	}
	s.log.Infof("Invalid applications deleted: %d", deleted)

	if deleted > 0 {
		s.publish(ctx, 0, dto.InvalidApplicationsCleaned{Deleted: deleted})
	}
	return deleted, nil
}

func (s *jobApplicationService) mapList(span opentracing.Span, load func() ([]*models.JobApplication, error)) ([]*dto.JobApplication, error) {
	applications, err := load()
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	return mappers.MapJobApplicationsToDTO(applications), nil
}

// publish is best effort, the mutation is already committed.
func (s *jobApplicationService) publish(ctx context.Context, id uint64, message interface{}) {
	if s.publisher == nil {
		return
	}
	entityId := ""
	if id != 0 {
		entityId = utils.FormatID(id)
	}
	if err := s.publisher.PublishFanoutEvent(ctx, entityId, enum.JOB_APPLICATION, message); err != nil {
		s.log.Errorf("Failed to publish %T for application %s: %v", message, entityId, err)
	}
}

func appendNote(existing *string, note string, at time.Time) string {
	entry := fmt.Sprintf("[%s] %s", at.Format(utils.NoteTimestampLayout), note)
	if existing == nil || *existing == "" {
		return entry
	}
	return *existing + "\n" + entry
}
