package enum

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseApplicationStatus(t *testing.T) {
	for _, status := range ApplicationStatuses() {
		parsed, err := ParseApplicationStatus(status.String())
		require.NoError(t, err)
		assert.Equal(t, status, parsed)
	}

	_, err := ParseApplicationStatus("PENDING")
	assert.True(t, errors.Is(err, ErrInvalidApplicationStatus))

	_, err = ParseApplicationStatus("sent")
	assert.Error(t, err)
}

func TestApplicationStatus_IsResponse(t *testing.T) {
	assert.True(t, ApplicationStatusRejected.IsResponse())
	assert.True(t, ApplicationStatusAccepted.IsResponse())
	assert.True(t, ApplicationStatusInterview.IsResponse())
	assert.False(t, ApplicationStatusSent.IsResponse())
	assert.False(t, ApplicationStatusNoResponse.IsResponse())
}

func TestApplicationStatus_DisplayName(t *testing.T) {
	assert.Equal(t, "Entrevista", ApplicationStatusInterview.DisplayName())
	assert.Equal(t, "Sin respuesta", ApplicationStatusNoResponse.DisplayName())
	assert.Empty(t, ApplicationStatus("UNKNOWN").DisplayName())
}
