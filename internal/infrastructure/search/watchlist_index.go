// Package search keeps a per-user full-text index of watchlist entries in
// Elasticsearch.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/movie-watchlist/internal/domain/entity"
	"github.com/oksasatya/movie-watchlist/internal/domain/service"
)

const indexMapping = `{
  "mappings": {
    "properties": {
      "user_id":        {"type": "long"},
      "imdbID":         {"type": "keyword"},
      "Title":          {"type": "text"},
      "Genre":          {"type": "text"},
      "Plot":           {"type": "text"},
      "Watching State": {"type": "keyword"}
    }
  }
}`

type document struct {
	UserID int64 `json:"user_id"`
	entity.WatchlistItem
}

type WatchlistIndex struct {
	es      *elasticsearch.Client
	index   string
	timeout time.Duration
}

func NewWatchlistIndex(es *elasticsearch.Client, index string) *WatchlistIndex {
	return &WatchlistIndex{es: es, index: index, timeout: 3 * time.Second}
}

// DocumentID is the index key of one (user, movie) entry.
func DocumentID(userID int64, imdbID string) string {
	return strconv.FormatInt(userID, 10) + ":" + imdbID
}

// EnsureIndex creates the index with its mapping when it does not exist.
func (w *WatchlistIndex) EnsureIndex(ctx context.Context) error {
	c, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	res, err := esapi.IndicesExistsRequest{Index: []string{w.index}}.Do(c, w.es)
	if err != nil {
		return fmt.Errorf("es exists %s: %w", w.index, err)
	}
	_ = res.Body.Close()
	if res.StatusCode == http.StatusOK {
		return nil
	}

	res, err = esapi.IndicesCreateRequest{Index: w.index, Body: bytes.NewReader([]byte(indexMapping))}.Do(c, w.es)
	if err != nil {
		return fmt.Errorf("es create %s: %w", w.index, err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es create %s: %s", w.index, res.Status())
	}
	return nil
}

func (w *WatchlistIndex) Upsert(ctx context.Context, userID int64, item entity.WatchlistItem) error {
	b, err := json.Marshal(document{UserID: userID, WatchlistItem: item})
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{
		Index:      w.index,
		DocumentID: DocumentID(userID, item.IMDbID),
		Body:       bytes.NewReader(b),
		Refresh:    "false",
	}
	c, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	res, err := req.Do(c, w.es)
	if err != nil {
		return fmt.Errorf("es index: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es index: %s", res.Status())
	}
	return nil
}

// Remove deletes the document. A document that is already gone is not an error.
func (w *WatchlistIndex) Remove(ctx context.Context, userID int64, imdbID string) error {
	req := esapi.DeleteRequest{Index: w.index, DocumentID: DocumentID(userID, imdbID)}
	c, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	res, err := req.Do(c, w.es)
	if err != nil {
		return fmt.Errorf("es delete: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("es delete: %s", res.Status())
	}
	return nil
}

// Search runs a multi_match over Title, Genre and Plot restricted to one user.
func (w *WatchlistIndex) Search(ctx context.Context, userID int64, q string, size int) ([]entity.WatchlistItem, error) {
	query := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": map[string]any{
					"multi_match": map[string]any{
						"query":  q,
						"fields": []string{"Title^2", "Genre", "Plot"},
					},
				},
				"filter": map[string]any{
					"term": map[string]any{"user_id": userID},
				},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	res, err := w.es.Search(w.es.Search.WithContext(c), w.es.Search.WithIndex(w.index), w.es.Search.WithBody(bytes.NewReader(b)))
	if err != nil {
		return nil, fmt.Errorf("es search: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("es search: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source document `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("es search decode: %w", err)
	}

	out := make([]entity.WatchlistItem, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source.WatchlistItem)
	}
	return out, nil
}

var _ service.WatchlistIndex = (*WatchlistIndex)(nil)
