package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/movie-watchlist/internal/interface/http"
	"github.com/oksasatya/movie-watchlist/internal/interface/middleware"
)

// MovieModule proxies provider lookups. Every call costs provider quota, so
// it is limited per IP.
type MovieModule struct {
	Handler   *handlers.MovieHandler
	Redis     *redis.Client
	PerMinute int
}

func NewMovieModule(h *handlers.MovieHandler, rdb *redis.Client, perMinute int) *MovieModule {
	return &MovieModule{Handler: h, Redis: rdb, PerMinute: perMinute}
}

func (m *MovieModule) Register(rg *gin.RouterGroup) {
	movies := rg.Group("/movies")
	movies.Use(middleware.RateLimit(m.Redis, m.PerMinute, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP()))
	{
		movies.GET("/title", m.Handler.ByTitle)
		movies.GET("/id", m.Handler.ByID)
		movies.GET("/search", m.Handler.Search)
		movies.GET("/random", m.Handler.Random)
		// top-rated fans out to one provider call per title
		movies.GET("/top-rated", middleware.RateLimit(m.Redis, 5, time.Minute, middleware.KeyByIPAndPath(), nil), m.Handler.TopRated)
	}
}
