package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/movie-watchlist/internal/application"
	"github.com/oksasatya/movie-watchlist/pkg/response"
)

// statusFor maps a failure kind to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, application.ErrUserNotFound),
		errors.Is(err, application.ErrMovieNotFound),
		errors.Is(err, application.ErrEntryNotFound),
		errors.Is(err, application.ErrEmptyWatchlist):
		return http.StatusNotFound
	case errors.Is(err, application.ErrInvalidState),
		errors.Is(err, application.ErrInvalidQuery):
		return http.StatusBadRequest
	case errors.Is(err, application.ErrDuplicateEntry),
		errors.Is(err, application.ErrUsernameTaken):
		return http.StatusConflict
	case errors.Is(err, application.ErrInvalidCredentials),
		errors.Is(err, application.ErrIncorrectPassword):
		return http.StatusUnauthorized
	case errors.Is(err, application.ErrProviderUnavailable):
		return http.StatusBadGateway
	case errors.Is(err, application.ErrSearchUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// fail writes err as an error envelope. Anything unclassified is logged and
// reported with a generic message.
func fail(c *gin.Context, logger *logrus.Logger, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		if logger != nil && !errors.Is(err, application.ErrInternal) {
			logger.WithError(err).WithField("request_id", c.GetString("request_id")).Error("unhandled error")
		}
		msg = application.ErrInternal.Error()
	}
	response.Error[any](c, status, msg, nil)
}
