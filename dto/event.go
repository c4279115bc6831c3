package dto

import (
	"github.com/followjobs/followjobs/internal/enum"
)

type Event struct {
	Event    EventDetails  `json:"event"`
	Metadata EventMetadata `json:"metadata"`
}

type EventDetails struct {
	Id         string          `json:"id"`
	EntityId   string          `json:"entityId"`
	EntityType enum.EntityType `json:"entityType"`
	EventType  string          `json:"eventType"`
	Data       interface{}     `json:"data"`
}

type EventMetadata struct {
	UberTraceId string `json:"uber-trace-id"`
	AppSource   string `json:"appSource"`
	RequestId   string `json:"requestId"`
	Timestamp   string `json:"timestamp"`
}

type ApplicationCreated struct {
	Application JobApplication `json:"application"`
}

type ApplicationUpdated struct {
	Application JobApplication `json:"application"`
}

type ApplicationStatusChanged struct {
	Application    JobApplication         `json:"application"`
	PreviousStatus enum.ApplicationStatus `json:"previousStatus"`
}

type ApplicationDeleted struct {
	ID uint64 `json:"id"`
}

type InvalidApplicationsCleaned struct {
	Deleted int64 `json:"deleted"`
}

type StaleApplicationsReport struct {
	OlderThanDays int      `json:"olderThanDays"`
	Count         int      `json:"count"`
	IDs           []uint64 `json:"ids"`
}
