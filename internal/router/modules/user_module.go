package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/movie-watchlist/internal/interface/http"
	"github.com/oksasatya/movie-watchlist/internal/interface/middleware"
)

// UserModule serves account routes. They are public and limited per IP and path.
// POST /user/create-account, POST /user/login, POST /user/update-password
type UserModule struct {
	Handler *handlers.UserHandler
	Redis   *redis.Client
}

func NewUserModule(h *handlers.UserHandler, rdb *redis.Client) *UserModule {
	return &UserModule{Handler: h, Redis: rdb}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	createLimiter := middleware.RateLimit(m.Redis, 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(m.Redis, 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	passwordLimiter := middleware.RateLimit(m.Redis, 5, time.Minute, middleware.KeyByIPAndPath(), nil)

	user := rg.Group("/user")
	user.POST("/create-account", createLimiter, m.Handler.CreateAccount)
	user.POST("/login", loginLimiter, m.Handler.Login)
	user.POST("/update-password", passwordLimiter, m.Handler.UpdatePassword)
}
