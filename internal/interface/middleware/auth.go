package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/movie-watchlist/internal/application"
	"github.com/oksasatya/movie-watchlist/internal/domain/entity"
	"github.com/oksasatya/movie-watchlist/pkg/response"
)

const (
	CtxUserIDKey   = "userID"
	CtxUsernameKey = "username"
)

// Authenticator is satisfied by *application.UserService.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*entity.User, error)
}

// BasicAuth checks HTTP Basic credentials on every request. There are no
// sessions; on success userID and username are set in the Gin context.
func BasicAuth(auth Authenticator, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, password, ok := c.Request.BasicAuth()
		if !ok || username == "" {
			c.Header("WWW-Authenticate", `Basic realm="watchlist"`)
			response.Error[any](c, http.StatusUnauthorized, "missing credentials", nil)
			c.Abort()
			return
		}

		u, err := auth.Authenticate(c.Request.Context(), username, password)
		if err != nil {
			if errors.Is(err, application.ErrInvalidCredentials) {
				c.Header("WWW-Authenticate", `Basic realm="watchlist"`)
				response.Error[any](c, http.StatusUnauthorized, application.ErrInvalidCredentials.Error(), nil)
			} else {
				if logger != nil {
					logger.WithError(err).WithField("request_id", c.GetString("request_id")).Error("basic auth failed")
				}
				response.Error[any](c, http.StatusInternalServerError, application.ErrInternal.Error(), nil)
			}
			c.Abort()
			return
		}

		c.Set(CtxUserIDKey, strconv.FormatInt(u.ID, 10))
		c.Set(CtxUsernameKey, u.Username)
		c.Next()
	}
}
