// Package service declares collaborators the application layer depends on
// but does not implement.
package service

import (
	"context"
	"errors"

	"github.com/oksasatya/movie-watchlist/internal/domain/entity"
)

// ErrProviderUnavailable reports a transport or protocol failure talking to
// the movie provider. It is never used for "no such movie".
var ErrProviderUnavailable = errors.New("movie provider unavailable")

// TitleQuery narrows a title lookup.
type TitleQuery struct {
	Title string
	Year  int
	Plot  string // "short", "full" or empty
}

// SearchQuery is a keyword search against the provider.
type SearchQuery struct {
	Keyword string
	Year    int
	Type    string // "movie", "series", "episode" or empty
	Page    int
}

// MovieProvider looks up movie metadata. A lookup that matches nothing
// returns (nil, nil).
type MovieProvider interface {
	FetchByID(ctx context.Context, imdbID, plot string) (*entity.Movie, error)
	FetchByTitle(ctx context.Context, q TitleQuery) (*entity.Movie, error)
	SearchByKeyword(ctx context.Context, q SearchQuery) ([]entity.MovieSummary, error)
}
