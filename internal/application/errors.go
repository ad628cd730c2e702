package application

import (
	"errors"
	"fmt"

	"github.com/oksasatya/movie-watchlist/internal/domain/service"
)

// Failure kinds reported by the application services. Callers match them
// with errors.Is; nothing else crosses the service boundary.
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrMovieNotFound       = errors.New("movie not found")
	ErrProviderUnavailable = service.ErrProviderUnavailable
	ErrDuplicateEntry      = errors.New("movie already in watchlist")
	ErrEntryNotFound       = errors.New("watchlist entry not found")
	ErrInvalidState        = errors.New("invalid watching state")
	ErrEmptyWatchlist      = errors.New("watchlist is empty")

	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrIncorrectPassword  = errors.New("old password is incorrect")
	ErrUsernameTaken      = errors.New("username already exists")

	ErrInvalidQuery      = errors.New("invalid query")
	ErrEmptyCatalog      = errors.New("no titles available")
	ErrSearchUnavailable = errors.New("watchlist search unavailable")
	ErrInternal          = errors.New("an unexpected error occurred")
)

// DuplicateEntryError carries the conflicting title for user-facing messages.
type DuplicateEntryError struct {
	Title    string
	Username string
}

func (e *DuplicateEntryError) Error() string {
	return fmt.Sprintf("movie '%s' is already in %s's watchlist", e.Title, e.Username)
}

func (e *DuplicateEntryError) Is(target error) bool { return target == ErrDuplicateEntry }

var kinds = []error{
	ErrUserNotFound,
	ErrMovieNotFound,
	ErrProviderUnavailable,
	ErrEntryNotFound,
	ErrInvalidState,
	ErrEmptyWatchlist,
	ErrInvalidCredentials,
	ErrIncorrectPassword,
	ErrUsernameTaken,
	ErrInvalidQuery,
	ErrEmptyCatalog,
	ErrSearchUnavailable,
	ErrInternal,
}

// classify returns the failure kind carried by err, stripped of any wrapping,
// or nil when err is not one of ours.
func classify(err error) error {
	var dup *DuplicateEntryError
	if errors.As(err, &dup) {
		return dup
	}
	for _, k := range kinds {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}
