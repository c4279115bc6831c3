package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplicationStats_Rates(t *testing.T) {
	empty := ApplicationStats{}
	assert.Equal(t, 0.0, empty.SuccessRate())
	assert.Equal(t, 0.0, empty.RejectionRate())

	stats := ApplicationStats{Total: 10, Accepted: 2, Interviews: 1, Rejected: 3, Sent: 4}
	assert.InDelta(t, 30.0, stats.SuccessRate(), 1e-9)
	assert.InDelta(t, 30.0, stats.RejectionRate(), 1e-9)
}

func TestApplicationStatsResponse_JSON(t *testing.T) {
	body, err := json.Marshal(NewApplicationStatsResponse(ApplicationStats{Total: 4, Accepted: 1, Rejected: 2}))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, 4.0, decoded["total"])
	assert.Equal(t, 25.0, decoded["successRate"])
	assert.Equal(t, 50.0, decoded["rejectionRate"])
}
