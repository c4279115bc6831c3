package middleware

import (
	"github.com/gin-gonic/gin"

	apierrors "github.com/followjobs/followjobs/api/errors"
	"github.com/followjobs/followjobs/internal/logger"
)

// RecoveryMiddleware turns a panic into the generic 500 body
func RecoveryMiddleware(log logger.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Errorf("Recovered from panic on %s %s: %v", c.Request.Method, c.Request.URL.Path, recovered)
		apierrors.RespondInternalError(c)
	})
}
