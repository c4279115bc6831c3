package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/followjobs/followjobs/internal/utils"
)

const RequestIdHeader = "X-Request-ID"

// Longer caller supplied ids are replaced so they never reach logs or response headers.
const maxRequestIdLength = 64

// RequestIdMiddleware reuses the caller's request id or assigns a new one
func RequestIdMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestId := c.GetHeader(RequestIdHeader)
		if requestId == "" || len(requestId) > maxRequestIdLength {
			requestId = uuid.NewString()
		}

		c.Set(utils.RequestIdKey, requestId)
		c.Header(RequestIdHeader, requestId)
		c.Next()
	}
}
