package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/dream-journal-api/internal/application"
	"github.com/oksasatya/dream-journal-api/pkg/response"
	"github.com/oksasatya/dream-journal-api/pkg/validation"
)

const msgInternal = "Internal server error"

func statusOf(kind application.Kind) int {
	switch kind {
	case application.KindBadRequest:
		return http.StatusBadRequest
	case application.KindUnauthorized:
		return http.StatusUnauthorized
	case application.KindNotFound:
		return http.StatusNotFound
	case application.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError is the single error boundary of every handler. Only curated
// AppError messages reach the client; everything else becomes a generic 500.
func respondError(c *gin.Context, logger *logrus.Logger, err error) {
	var ae *application.AppError
	if !errors.As(err, &ae) {
		logEntry(c, logger).WithError(err).Error("unhandled error")
		response.Error[any](c, http.StatusInternalServerError, msgInternal, nil)
		return
	}
	status := statusOf(ae.Kind)
	if status >= http.StatusInternalServerError {
		logEntry(c, logger).WithError(ae.Err).Error(ae.Message)
	}
	response.Error[any](c, status, ae.Message, nil)
}

// respondBindError answers a request body that failed to decode or validate.
func respondBindError(c *gin.Context, err error) {
	response.Error[any](c, http.StatusBadRequest, "Invalid request payload", validation.ToDetails(err))
}

func logEntry(c *gin.Context, logger *logrus.Logger) *logrus.Entry {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return logger.WithFields(logrus.Fields{
		"request_id": c.GetString("request_id"),
		"method":     c.Request.Method,
		"path":       c.FullPath(),
	})
}

// requesterID returns the user id placed in the context by the auth middleware.
func requesterID(c *gin.Context) string {
	return c.GetString("userID")
}
