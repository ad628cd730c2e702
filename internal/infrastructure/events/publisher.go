// Package events carries watchlist changes over RabbitMQ to the search index.
package events

import (
	"context"
	"fmt"
	"time"

	"github.com/oksasatya/movie-watchlist/internal/domain/service"
)

// JSONPublisher is satisfied by *helpers.RabbitPublisher.
type JSONPublisher interface {
	PublishJSON(ctx context.Context, body any) error
	Close()
}

type Publisher struct {
	pub     JSONPublisher
	timeout time.Duration
}

func NewPublisher(pub JSONPublisher) *Publisher {
	return &Publisher{pub: pub, timeout: 2 * time.Second}
}

func (p *Publisher) PublishWatchlistEvent(ctx context.Context, event *service.WatchlistEvent) error {
	c, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	if err := p.pub.PublishJSON(c, event); err != nil {
		return fmt.Errorf("publish %s event: %w", event.Type, err)
	}
	return nil
}

func (p *Publisher) Close() error {
	p.pub.Close()
	return nil
}

var _ service.EventPublisher = (*Publisher)(nil)
