package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/movie-watchlist/internal/domain/service"
)

// ErrBadPayload marks a message that can never be processed. It should be
// dropped rather than requeued.
var ErrBadPayload = errors.New("bad watchlist event payload")

// Indexer applies watchlist events to the search index.
type Indexer struct {
	Index  service.WatchlistIndex
	Logger *logrus.Logger
}

func NewIndexer(index service.WatchlistIndex, logger *logrus.Logger) *Indexer {
	return &Indexer{Index: index, Logger: logger}
}

// Handle decodes one message body and upserts or removes the document.
func (i *Indexer) Handle(ctx context.Context, body []byte) error {
	var ev service.WatchlistEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	if ev.UserID == 0 || ev.Entry.IMDbID == "" {
		return fmt.Errorf("%w: missing user or imdb id", ErrBadPayload)
	}

	fields := logrus.Fields{"event": ev.Type, "user_id": ev.UserID, "imdb_id": ev.Entry.IMDbID}
	var err error
	switch ev.Type {
	case service.WatchlistEntryAdded, service.WatchlistEntryUpdated:
		err = i.Index.Upsert(ctx, ev.UserID, ev.Entry)
	case service.WatchlistEntryRemoved:
		err = i.Index.Remove(ctx, ev.UserID, ev.Entry.IMDbID)
	default:
		return fmt.Errorf("%w: unknown event type %q", ErrBadPayload, ev.Type)
	}
	if err != nil {
		return err
	}
	if i.Logger != nil {
		i.Logger.WithFields(fields).Debug("watchlist event indexed")
	}
	return nil
}
