package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	handlers "github.com/oksasatya/movie-watchlist/internal/interface/http"
	"github.com/oksasatya/movie-watchlist/internal/interface/middleware"
)

// WatchlistModule serves the caller's watchlist behind HTTP Basic auth.
type WatchlistModule struct {
	Handler *handlers.WatchlistHandler
	Auth    middleware.Authenticator
	Redis   *redis.Client
	Logger  *logrus.Logger
}

func NewWatchlistModule(h *handlers.WatchlistHandler, auth middleware.Authenticator, rdb *redis.Client, logger *logrus.Logger) *WatchlistModule {
	return &WatchlistModule{Handler: h, Auth: auth, Redis: rdb, Logger: logger}
}

func (m *WatchlistModule) Register(rg *gin.RouterGroup) {
	wl := rg.Group("/watchlist")
	// Limit failed guessing per IP before credentials are checked, then per account.
	wl.Use(
		middleware.RateLimit(m.Redis, 300, time.Minute, middleware.KeyByIP(), nil),
		middleware.BasicAuth(m.Auth, m.Logger),
		middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		wl.POST("", m.Handler.Add)
		wl.GET("", m.Handler.List)
		wl.GET("/search", m.Handler.Search)
		wl.DELETE("/:imdb_id", m.Handler.Delete)
		wl.PATCH("/:imdb_id", m.Handler.UpdateState)
	}
}
