package repository

import (
	"context"

	"github.com/oksasatya/movie-watchlist/internal/domain/entity"
)

// WatchlistRepository persists watchlist entries. ListByUser returns entries
// in insertion order.
type WatchlistRepository interface {
	Create(ctx context.Context, e *entity.WatchlistEntry) error
	Get(ctx context.Context, userID int64, imdbID string) (*entity.WatchlistEntry, error)
	ListByUser(ctx context.Context, userID int64) ([]entity.WatchlistEntry, error)
	Update(ctx context.Context, e *entity.WatchlistEntry) error
	Delete(ctx context.Context, id int64) error
}
