// Command indexer consumes watchlist events from RabbitMQ and keeps the
// Elasticsearch watchlist index in step with Postgres.
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/oksasatya/movie-watchlist/config"
	"github.com/oksasatya/movie-watchlist/internal/infrastructure/events"
	"github.com/oksasatya/movie-watchlist/internal/infrastructure/search"
	"github.com/oksasatya/movie-watchlist/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-indexer", cfg.Env)

	if !cfg.EventsEnabled {
		logger.Info("EVENTS_ENABLED=false; indexer disabled")
		return
	}
	if cfg.RabbitMQURL == "" || cfg.RabbitMQWatchlistQueue == "" {
		log.Fatal("RabbitMQ not configured")
	}

	es, err := helpers.NewESClient(helpers.ESOptions{
		Addresses:  cfg.ESAddrs(),
		Username:   cfg.ElasticsearchUser,
		Password:   cfg.ElasticsearchPass,
		MaxRetries: 5,
	})
	if err != nil {
		log.Fatalf("elasticsearch: %v", err)
	}
	index := search.NewWatchlistIndex(es, cfg.ESWatchlistIndex)
	if err := index.EnsureIndex(context.Background()); err != nil {
		log.Fatalf("ensure index: %v", err)
	}

	consumer, err := helpers.NewRabbitConsumer(cfg.RabbitMQURL, cfg.RabbitMQWatchlistQueue, 16)
	if err != nil {
		log.Fatalf("rabbitmq: %v", err)
	}
	defer consumer.Close()

	msgs, err := consumer.Deliveries("watchlist-indexer")
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	indexer := events.NewIndexer(index, logger)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		for msg := range msgs {
			c, cancelMsg := context.WithTimeout(ctx, 10*time.Second)
			err := indexer.Handle(c, msg.Body)
			cancelMsg()
			switch {
			case errors.Is(err, events.ErrBadPayload):
				logger.WithError(err).Warn("dropping bad message")
				_ = msg.Nack(false, false)
			case err != nil:
				logger.WithError(err).Warn("index failed; requeueing")
				_ = msg.Nack(false, true)
			default:
				_ = msg.Ack(false)
			}
		}
		close(done)
	}()

	logger.Infof("indexer listening on queue=%s", cfg.RabbitMQWatchlistQueue)
	<-stop
	logger.Info("shutting down...")
	cancel()
	consumer.Close()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}
