package router

import (
	"github.com/oksasatya/movie-watchlist/internal/application"
	"github.com/oksasatya/movie-watchlist/internal/container"
	"github.com/oksasatya/movie-watchlist/internal/domain/service"
	"github.com/oksasatya/movie-watchlist/internal/infrastructure/events"
	"github.com/oksasatya/movie-watchlist/internal/infrastructure/omdb"
	pginfra "github.com/oksasatya/movie-watchlist/internal/infrastructure/postgres"
	"github.com/oksasatya/movie-watchlist/internal/infrastructure/search"
	handlers "github.com/oksasatya/movie-watchlist/internal/interface/http"
	"github.com/oksasatya/movie-watchlist/internal/router/modules"
)

type Services struct {
	Users     *application.UserService
	Watchlist *application.WatchlistService
	Movies    *application.MovieService
}

// BuildServices wires the application services from the container
// singletons. Events and search stay disabled when their clients are nil.
func BuildServices() Services {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	provider := omdb.NewClient(cfg.OMDbBaseURL, cfg.OMDbAPIKey, cfg.OMDbTimeout)

	var publisher service.EventPublisher
	if pub := container.GetRabbitPub(); pub != nil {
		publisher = events.NewPublisher(pub)
	}
	var index service.WatchlistIndex
	if es := container.GetES(); es != nil {
		index = search.NewWatchlistIndex(es, cfg.ESWatchlistIndex)
	}

	return Services{
		Users:     application.NewUserService(pginfra.NewUserRepository(pool), logger),
		Watchlist: application.NewWatchlistService(pginfra.NewTransactionManager(pool), provider, publisher, index, logger),
		Movies:    application.NewMovieService(provider, application.DefaultRandomTitles, application.DefaultTopRatedTitles, logger),
	}
}

// InitModules initializes all application modules and registers them with the router registry.
// Call it once during startup, after the container has been populated.
func InitModules(r *Registry) {
	InitModulesWith(r, BuildServices())
}

func InitModulesWith(r *Registry, svc Services) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	rdb := container.GetRedis()

	r.Add(modules.NewHealthModule())
	r.Add(modules.NewUserModule(handlers.NewUserHandler(svc.Users, logger), rdb))
	r.Add(modules.NewWatchlistModule(handlers.NewWatchlistHandler(svc.Watchlist, logger), svc.Users, rdb, logger))
	r.Add(modules.NewMovieModule(handlers.NewMovieHandler(svc.Movies, logger), rdb, cfg.RateLimitPerMinute))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(rdb))
	}
}
