// Command manage creates or drops the database schema.
//
//	go run ./cmd/manage init_db
//	go run ./cmd/manage drop_db
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/oksasatya/movie-watchlist/config"
	pginfra "github.com/oksasatya/movie-watchlist/internal/infrastructure/postgres"
	"github.com/oksasatya/movie-watchlist/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: manage init_db|drop_db")
		os.Exit(2)
	}

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)

	m, err := pginfra.NewMigrator(cfg.PostgresDSN(), cfg.MigrationsDir, logger)
	if err != nil {
		log.Fatalf("migration setup failed: %v", err)
	}
	defer m.Close()

	switch os.Args[1] {
	case "init_db":
		err = m.Up()
	case "drop_db":
		err = m.Down()
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", os.Args[1])
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("%s failed: %v", os.Args[1], err)
	}
	logger.Infof("%s complete", os.Args[1])
}
