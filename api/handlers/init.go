package handlers

import (
	"github.com/followjobs/followjobs/internal/logger"
	"github.com/followjobs/followjobs/services"
)

type APIHandlers struct {
	Applications *ApplicationsHandler
}

func InitHandlers(s *services.Services, log logger.Logger) *APIHandlers {
	return &APIHandlers{
		Applications: NewApplicationsHandler(s.JobApplicationService, log),
	}
}
