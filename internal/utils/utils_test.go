package utils

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsBlank(t *testing.T) {
	assert.True(t, IsBlank(nil))
	assert.True(t, IsBlank(ToPtr("")))
	assert.True(t, IsBlank(ToPtr(" \t\n")))
	assert.False(t, IsBlank(ToPtr(" note ")))
}

func TestGetOrDefault(t *testing.T) {
	assert.Equal(t, "fallback", GetOrDefault(nil, "fallback"))
	assert.Equal(t, "value", GetOrDefault(ToPtr("value"), "fallback"))
}

func TestGenerateNanoIDWithPrefix(t *testing.T) {
	id := GenerateNanoIDWithPrefix("event", 21)
	assert.True(t, strings.HasPrefix(id, "event_"))
	assert.Len(t, id, len("event_")+21)
	assert.NotEqual(t, id, GenerateNanoIDWithPrefix("event", 21))
}

func TestGetContext_Empty(t *testing.T) {
	assert.Empty(t, GetRequestIdFromContext(context.Background()))

	ctx := WithCustomContext(context.Background(), &CustomContext{AppSource: "followjobs", RequestId: "abc"})
	assert.Equal(t, "abc", GetRequestIdFromContext(ctx))
	assert.Equal(t, "followjobs", GetAppSourceFromContext(ctx))
}
