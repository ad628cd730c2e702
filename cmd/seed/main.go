package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/oksasatya/movie-watchlist/config"
	"github.com/oksasatya/movie-watchlist/internal/application"
	"github.com/oksasatya/movie-watchlist/internal/infrastructure/omdb"
	pginfra "github.com/oksasatya/movie-watchlist/internal/infrastructure/postgres"
	"github.com/oksasatya/movie-watchlist/pkg/helpers"
)

const (
	demoUser     = "test_user"
	demoPassword = "password123"
	demoMovie    = "tt0319343" // Elf
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), 2, 1, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	users := application.NewUserService(pginfra.NewUserRepository(pool), logger)
	_, err = users.CreateAccount(ctx, demoUser, demoPassword)
	switch {
	case errors.Is(err, application.ErrUsernameTaken):
		logger.Infof("user %s already exists", demoUser)
	case err != nil:
		log.Fatalf("failed to seed user: %v", err)
	}

	provider := omdb.NewClient(cfg.OMDbBaseURL, cfg.OMDbAPIKey, cfg.OMDbTimeout)
	watchlist := application.NewWatchlistService(pginfra.NewTransactionManager(pool), provider, nil, nil, logger)
	entry, err := watchlist.Add(ctx, demoUser, demoMovie)
	switch {
	case errors.Is(err, application.ErrDuplicateEntry):
		logger.Info(err.Error())
	case err != nil:
		log.Fatalf("failed to seed watchlist: %v", err)
	default:
		fmt.Printf("seeded user=%s password=%s movie=%q\n", demoUser, demoPassword, entry.Title)
	}
}
