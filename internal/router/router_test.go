package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"

	"github.com/oksasatya/movie-watchlist/config"
	"github.com/oksasatya/movie-watchlist/internal/container"
)

func TestInitModules_Routes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger, _ := test.NewNullLogger()
	cfg := config.Load()
	cfg.DebugMetricsEnabled = true
	container.SetConfig(cfg)
	container.SetLogger(logger)

	engine := gin.New()
	reg := NewRegistry(engine)
	InitModules(reg)
	reg.RegisterAll()

	got := map[string]bool{}
	for _, rt := range engine.Routes() {
		got[rt.Method+" "+rt.Path] = true
	}
	for _, want := range []string{
		"GET /api/health",
		"POST /api/user/create-account",
		"POST /api/user/login",
		"POST /api/user/update-password",
		"POST /api/watchlist",
		"GET /api/watchlist",
		"GET /api/watchlist/search",
		"DELETE /api/watchlist/:imdb_id",
		"PATCH /api/watchlist/:imdb_id",
		"GET /api/movies/title",
		"GET /api/movies/id",
		"GET /api/movies/search",
		"GET /api/movies/random",
		"GET /api/movies/top-rated",
		"GET /api/debug/vars",
	} {
		assert.True(t, got[want], want)
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/watchlist", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code, "watchlist requires credentials")
}
