package service

import (
	"context"

	"github.com/oksasatya/movie-watchlist/internal/domain/entity"
)

// WatchlistIndex is the full-text view of watchlist entries.
type WatchlistIndex interface {
	Upsert(ctx context.Context, userID int64, item entity.WatchlistItem) error
	Remove(ctx context.Context, userID int64, imdbID string) error
	Search(ctx context.Context, userID int64, query string, size int) ([]entity.WatchlistItem, error)
}
