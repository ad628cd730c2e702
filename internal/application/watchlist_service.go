package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/movie-watchlist/internal/domain/entity"
	repo "github.com/oksasatya/movie-watchlist/internal/domain/repository"
	"github.com/oksasatya/movie-watchlist/internal/domain/service"
)

const defaultSearchSize = 10

type WatchlistService struct {
	Tx       repo.TransactionManager
	Provider service.MovieProvider
	Events   service.EventPublisher
	Index    service.WatchlistIndex
	Logger   *logrus.Logger
}

func NewWatchlistService(tx repo.TransactionManager, provider service.MovieProvider, events service.EventPublisher, index service.WatchlistIndex, logger *logrus.Logger) *WatchlistService {
	return &WatchlistService{
		Tx:       tx,
		Provider: provider,
		Events:   events,
		Index:    index,
		Logger:   logger,
	}
}

// Add puts the movie on the user's watchlist in the "To Watch" state.
// The user is resolved before the provider is consulted, and the duplicate
// check runs before anything is written.
func (s *WatchlistService) Add(ctx context.Context, username, imdbID string) (*entity.WatchlistEntry, error) {
	fields := logrus.Fields{"username": username, "imdb_id": imdbID}

	var user *entity.User
	err := s.Tx.Execute(ctx, func(repos repo.RepositoryFactory) error {
		var err error
		user, err = findUser(ctx, repos, username)
		return err
	})
	if err != nil {
		return nil, s.settle(err, "add: resolve user", fields)
	}

	movie, err := s.fetch(ctx, imdbID, fields)
	if err != nil {
		return nil, err
	}

	entry := &entity.WatchlistEntry{UserID: user.ID, State: entity.StateToWatch}
	entry.ApplyMovie(movie)
	entry.IMDbID = imdbID

	err = s.Tx.Execute(ctx, func(repos repo.RepositoryFactory) error {
		_, err := repos.Watchlist().Get(ctx, user.ID, imdbID)
		switch {
		case err == nil:
			return &DuplicateEntryError{Title: movie.Title, Username: username}
		case !errors.Is(err, repo.ErrNotFound):
			return err
		}
		if err := repos.Watchlist().Create(ctx, entry); err != nil {
			if errors.Is(err, repo.ErrDuplicate) {
				return &DuplicateEntryError{Title: movie.Title, Username: username}
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, s.settle(err, "add: create entry", fields)
	}

	if s.Logger != nil {
		s.Logger.WithFields(fields).WithField("title", entry.Title).Info("added movie to watchlist")
	}
	s.publish(ctx, service.WatchlistEntryAdded, user, entry)
	return entry, nil
}

// Delete removes the (user, movie) entry.
func (s *WatchlistService) Delete(ctx context.Context, username, imdbID string) error {
	fields := logrus.Fields{"username": username, "imdb_id": imdbID}

	var (
		user    *entity.User
		removed *entity.WatchlistEntry
	)
	err := s.Tx.Execute(ctx, func(repos repo.RepositoryFactory) error {
		var err error
		user, err = findUser(ctx, repos, username)
		if err != nil {
			return err
		}
		removed, err = findEntry(ctx, repos, user.ID, imdbID)
		if err != nil {
			return err
		}
		return deleteEntry(ctx, repos, removed)
	})
	if err != nil {
		return s.settle(err, "delete entry", fields)
	}

	if s.Logger != nil {
		s.Logger.WithFields(fields).Info("removed movie from watchlist")
	}
	s.publish(ctx, service.WatchlistEntryRemoved, user, removed)
	return nil
}

// UpdateState moves an entry to a new watching state. "Watched" removes the
// entry, "Watch Next" refreshes its metadata from the provider, and
// "To Watch" only changes the state. The returned entry is nil when the
// entry was removed.
func (s *WatchlistService) UpdateState(ctx context.Context, username, imdbID, state string) (*entity.WatchlistEntry, error) {
	fields := logrus.Fields{"username": username, "imdb_id": imdbID, "state": state}

	var (
		user  *entity.User
		entry *entity.WatchlistEntry
		next  entity.WatchingState
	)
	err := s.Tx.Execute(ctx, func(repos repo.RepositoryFactory) error {
		var err error
		user, err = findUser(ctx, repos, username)
		if err != nil {
			return err
		}
		entry, err = findEntry(ctx, repos, user.ID, imdbID)
		if err != nil {
			return err
		}
		next, err = entity.ParseWatchingState(state)
		if err != nil {
			return ErrInvalidState
		}

		switch next {
		case entity.StateWatched:
			return deleteEntry(ctx, repos, entry)
		case entity.StateToWatch:
			entry.State = entity.StateToWatch
			return updateEntry(ctx, repos, entry)
		}
		// Watch Next is finished below, once fresh metadata is in hand.
		return nil
	})
	if err != nil {
		return nil, s.settle(err, "update state", fields)
	}

	switch next {
	case entity.StateWatched:
		if s.Logger != nil {
			s.Logger.WithFields(fields).Info("movie watched, removed from watchlist")
		}
		s.publish(ctx, service.WatchlistEntryRemoved, user, entry)
		return nil, nil
	case entity.StateToWatch:
		s.publish(ctx, service.WatchlistEntryUpdated, user, entry)
		return entry, nil
	}

	movie, err := s.fetch(ctx, imdbID, fields)
	if err != nil {
		return nil, err
	}

	err = s.Tx.Execute(ctx, func(repos repo.RepositoryFactory) error {
		var err error
		entry, err = findEntry(ctx, repos, user.ID, imdbID)
		if err != nil {
			return err
		}
		entry.ApplyMovie(movie)
		entry.IMDbID = imdbID
		entry.State = entity.StateWatchNext
		return updateEntry(ctx, repos, entry)
	})
	if err != nil {
		return nil, s.settle(err, "update state: refresh", fields)
	}

	if s.Logger != nil {
		s.Logger.WithFields(fields).Info("refreshed watchlist entry")
	}
	s.publish(ctx, service.WatchlistEntryUpdated, user, entry)
	return entry, nil
}

// List returns the user's entries in insertion order. A user with no entries
// gets ErrEmptyWatchlist rather than an empty slice.
func (s *WatchlistService) List(ctx context.Context, username string) ([]entity.WatchlistItem, error) {
	fields := logrus.Fields{"username": username}

	var entries []entity.WatchlistEntry
	err := s.Tx.Execute(ctx, func(repos repo.RepositoryFactory) error {
		user, err := findUser(ctx, repos, username)
		if err != nil {
			return err
		}
		entries, err = repos.Watchlist().ListByUser(ctx, user.ID)
		return err
	})
	if err != nil {
		return nil, s.settle(err, "list watchlist", fields)
	}
	if len(entries) == 0 {
		return nil, ErrEmptyWatchlist
	}

	items := make([]entity.WatchlistItem, 0, len(entries))
	for i := range entries {
		items = append(items, entries[i].Item())
	}
	return items, nil
}

// Search runs a full-text query over the user's indexed entries.
func (s *WatchlistService) Search(ctx context.Context, username, query string, size int) ([]entity.WatchlistItem, error) {
	fields := logrus.Fields{"username": username, "query": query}

	var user *entity.User
	err := s.Tx.Execute(ctx, func(repos repo.RepositoryFactory) error {
		var err error
		user, err = findUser(ctx, repos, username)
		return err
	})
	if err != nil {
		return nil, s.settle(err, "search: resolve user", fields)
	}
	if s.Index == nil {
		return nil, ErrSearchUnavailable
	}
	if size <= 0 || size > 50 {
		size = defaultSearchSize
	}

	items, err := s.Index.Search(ctx, user.ID, query, size)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithFields(fields).Warn("watchlist search failed")
		}
		return nil, ErrSearchUnavailable
	}
	return items, nil
}

func (s *WatchlistService) fetch(ctx context.Context, imdbID string, fields logrus.Fields) (*entity.Movie, error) {
	movie, err := s.Provider.FetchByID(ctx, imdbID, "")
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithFields(fields).Warn("movie provider lookup failed")
		}
		return nil, ErrProviderUnavailable
	}
	if movie == nil {
		return nil, ErrMovieNotFound
	}
	return movie, nil
}

// settle passes failure kinds through untouched and replaces anything else
// with ErrInternal after logging it.
func (s *WatchlistService) settle(err error, op string, fields logrus.Fields) error {
	if kind := classify(err); kind != nil {
		return kind
	}
	if s.Logger != nil {
		s.Logger.WithError(err).WithFields(fields).Error(op)
	}
	return ErrInternal
}

func (s *WatchlistService) publish(ctx context.Context, typ service.WatchlistEventType, user *entity.User, e *entity.WatchlistEntry) {
	if s.Events == nil {
		return
	}
	ev := &service.WatchlistEvent{
		Type:       typ,
		UserID:     user.ID,
		Username:   user.Username,
		Entry:      e.Item(),
		OccurredAt: time.Now().UTC(),
	}
	if err := s.Events.PublishWatchlistEvent(ctx, ev); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithFields(logrus.Fields{
			"event":    typ,
			"username": user.Username,
			"imdb_id":  e.IMDbID,
		}).Warn("publish watchlist event failed")
	}
}

func findUser(ctx context.Context, repos repo.RepositoryFactory, username string) (*entity.User, error) {
	u, err := repos.Users().GetByUsername(ctx, username)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return u, err
}

func findEntry(ctx context.Context, repos repo.RepositoryFactory, userID int64, imdbID string) (*entity.WatchlistEntry, error) {
	e, err := repos.Watchlist().Get(ctx, userID, imdbID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrEntryNotFound
	}
	return e, err
}

func deleteEntry(ctx context.Context, repos repo.RepositoryFactory, e *entity.WatchlistEntry) error {
	err := repos.Watchlist().Delete(ctx, e.ID)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrEntryNotFound
	}
	return err
}

func updateEntry(ctx context.Context, repos repo.RepositoryFactory, e *entity.WatchlistEntry) error {
	err := repos.Watchlist().Update(ctx, e)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrEntryNotFound
	}
	return err
}
