package services

import (
	"github.com/followjobs/followjobs/interfaces"
	"github.com/followjobs/followjobs/internal/logger"
	"github.com/followjobs/followjobs/internal/repository"
	"github.com/followjobs/followjobs/services/applications"
	"github.com/followjobs/followjobs/services/events"
)

type Services struct {
	EventsService         *events.EventsService
	JobApplicationService interfaces.JobApplicationService
}

func InitServices(rabbitmqURL string, log logger.Logger, repos *repository.Repositories) (*Services, error) {
	eventsService, err := events.NewEventsService(rabbitmqURL, log, events.DefaultPublisherConfig())
	if err != nil {
		return nil, err
	}

	services := Services{
		EventsService:         eventsService,
		JobApplicationService: applications.NewJobApplicationService(repos.JobApplicationRepository, eventsService.Publisher, log),
	}

	return &services, nil
}

// Close releases the broker connection
func (s *Services) Close() error {
	if s.EventsService == nil {
		return nil
	}
	return s.EventsService.Close()
}
