package entity

import (
	"errors"
	"time"
)

// WatchingState is the position of a title in a user's watchlist.
type WatchingState string

const (
	StateToWatch   WatchingState = "To Watch"
	StateWatched   WatchingState = "Watched"
	StateWatchNext WatchingState = "Watch Next"
)

var ErrUnknownWatchingState = errors.New("unknown watching state")

// ParseWatchingState accepts exactly the three known values, case-sensitive.
func ParseWatchingState(s string) (WatchingState, error) {
	switch ws := WatchingState(s); ws {
	case StateToWatch, StateWatched, StateWatchNext:
		return ws, nil
	}
	return "", ErrUnknownWatchingState
}

// WatchlistEntry is one (user, movie) pairing. Metadata fields mirror the
// provider record at the time of the last refresh.
type WatchlistEntry struct {
	ID         int64
	UserID     int64
	Title      string
	IMDbID     string
	Year       string
	Rated      string
	Runtime    string
	Plot       string
	Genre      string
	IMDbRating string
	Type       string
	State      WatchingState
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ApplyMovie overwrites every metadata field with the values from m.
func (e *WatchlistEntry) ApplyMovie(m *Movie) {
	e.Title = m.Title
	e.IMDbID = m.IMDbID
	e.Year = m.Year
	e.Rated = m.Rated
	e.Runtime = m.Runtime
	e.Plot = m.Plot
	e.Genre = m.Genre
	e.IMDbRating = m.IMDbRating
	e.Type = m.Type
}

// WatchlistItem is the public projection of an entry. Field names follow the
// movie provider's vocabulary.
type WatchlistItem struct {
	Title         string        `json:"Title"`
	IMDbID        string        `json:"imdbID"`
	Year          string        `json:"Year,omitempty"`
	Rated         string        `json:"Rated,omitempty"`
	Runtime       string        `json:"Runtime,omitempty"`
	Plot          string        `json:"Plot,omitempty"`
	Genre         string        `json:"Genre,omitempty"`
	IMDbRating    string        `json:"imdbRating,omitempty"`
	Type          string        `json:"Type,omitempty"`
	WatchingState WatchingState `json:"Watching State"`
}

func (e *WatchlistEntry) Item() WatchlistItem {
	return WatchlistItem{
		Title:         e.Title,
		IMDbID:        e.IMDbID,
		Year:          e.Year,
		Rated:         e.Rated,
		Runtime:       e.Runtime,
		Plot:          e.Plot,
		Genre:         e.Genre,
		IMDbRating:    e.IMDbRating,
		Type:          e.Type,
		WatchingState: e.State,
	}
}
