package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/followjobs/followjobs/internal/enum"
)

// EventPublisher is a testify mock of interfaces.EventPublisher
type EventPublisher struct {
	mock.Mock
}

func (m *EventPublisher) PublishFanoutEvent(ctx context.Context, entityId string, entityType enum.EntityType, message interface{}) error {
	return m.Called(ctx, entityId, entityType, message).Error(0)
}

func (m *EventPublisher) Close() error {
	return m.Called().Error(0)
}
