package service

import (
	"context"
	"time"

	"github.com/oksasatya/movie-watchlist/internal/domain/entity"
)

type WatchlistEventType string

const (
	WatchlistEntryAdded   WatchlistEventType = "added"
	WatchlistEntryUpdated WatchlistEventType = "updated"
	WatchlistEntryRemoved WatchlistEventType = "removed"
)

// WatchlistEvent is emitted after a watchlist change has been committed.
type WatchlistEvent struct {
	Type       WatchlistEventType   `json:"type"`
	UserID     int64                `json:"user_id"`
	Username   string               `json:"username"`
	Entry      entity.WatchlistItem `json:"entry"`
	OccurredAt time.Time            `json:"occurred_at"`
}

// EventPublisher delivers watchlist events to the message broker.
type EventPublisher interface {
	PublishWatchlistEvent(ctx context.Context, event *WatchlistEvent) error
	Close() error
}
