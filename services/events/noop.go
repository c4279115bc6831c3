package events

import (
	"context"

	"github.com/followjobs/followjobs/internal/enum"
	"github.com/followjobs/followjobs/internal/logger"
)

// NoopPublisher is used when no broker is configured. Events are only logged.
type NoopPublisher struct {
	logger logger.Logger
}

func NewNoopPublisher(logger logger.Logger) *NoopPublisher {
	return &NoopPublisher{logger: logger}
}

func (p *NoopPublisher) PublishFanoutEvent(ctx context.Context, entityId string, entityType enum.EntityType, message interface{}) error {
	event := NewEvent(ctx, nil, entityId, entityType, message)
	p.logger.Debugf("Event %s for %s %s not published, no broker configured", event.Event.EventType, entityType, entityId)
	return nil
}

func (p *NoopPublisher) Close() error {
	return nil
}
