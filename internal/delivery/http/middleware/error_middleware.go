package middleware

import (
	"errors"
	"net/http"

	"portfolio-web/internal/delivery/http/response"
	"portfolio-web/pkg/apperror"
	"portfolio-web/pkg/logger"
	"portfolio-web/pkg/security"

	"github.com/gin-gonic/gin"
)

// ErrorHandler renders the last error a handler attached with c.Error.
// Only AppError messages and details reach the client; everything else is logged.
func ErrorHandler(audit *security.SecurityLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Err != nil {
				log := logger.Log.Error
				if appErr.Code < http.StatusInternalServerError {
					log = logger.Log.Warn
				}
				log("request failed",
					"status", appErr.Code,
					"path", c.Request.URL.Path,
					"request_id", response.RequestID(c),
					"error", appErr.Err,
				)
			}
			var detail interface{}
			if appErr.Detail != "" {
				detail = appErr.Detail
			}
			response.Error(c, appErr.Code, appErr.Message, detail)
			return
		}

		logger.Log.Error("unhandled error",
			"path", c.Request.URL.Path,
			"request_id", response.RequestID(c),
			"error", err,
		)
		audit.LogServerError(c.Request.Context(), c.ClientIP(), response.RequestID(c), c.Request.URL.Path, err)
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", "Internal Server Error")
	}
}
