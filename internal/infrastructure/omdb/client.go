// Package omdb is the OMDb (omdbapi.com) implementation of the movie provider.
package omdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/oksasatya/movie-watchlist/internal/domain/entity"
	"github.com/oksasatya/movie-watchlist/internal/domain/service"
)

const DefaultBaseURL = "https://www.omdbapi.com/"

type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

// Responses
type movieResponse struct {
	entity.Movie
	Response string `json:"Response"`
	Error    string `json:"Error"`
}

type searchResponse struct {
	Search       []entity.MovieSummary `json:"Search"`
	TotalResults string                `json:"totalResults"`
	Response     string                `json:"Response"`
	Error        string                `json:"Error"`
}

func (c *Client) FetchByID(ctx context.Context, imdbID, plot string) (*entity.Movie, error) {
	q := url.Values{}
	q.Set("i", imdbID)
	setPlot(q, plot)
	return c.fetchMovie(ctx, q)
}

func (c *Client) FetchByTitle(ctx context.Context, tq service.TitleQuery) (*entity.Movie, error) {
	q := url.Values{}
	q.Set("t", tq.Title)
	if tq.Year > 0 {
		q.Set("y", strconv.Itoa(tq.Year))
	}
	setPlot(q, tq.Plot)
	return c.fetchMovie(ctx, q)
}

// SearchByKeyword returns one page of hits. "Movie not found!" and
// "Too many results." both come back as an empty result.
func (c *Client) SearchByKeyword(ctx context.Context, sq service.SearchQuery) ([]entity.MovieSummary, error) {
	q := url.Values{}
	q.Set("s", sq.Keyword)
	if sq.Year > 0 {
		q.Set("y", strconv.Itoa(sq.Year))
	}
	if sq.Type != "" {
		q.Set("type", sq.Type)
	}
	if sq.Page > 0 {
		q.Set("page", strconv.Itoa(sq.Page))
	}

	var res searchResponse
	if err := c.get(ctx, q, &res); err != nil {
		return nil, err
	}
	if !strings.EqualFold(res.Response, "True") {
		return nil, nil
	}
	return res.Search, nil
}

func (c *Client) fetchMovie(ctx context.Context, q url.Values) (*entity.Movie, error) {
	var res movieResponse
	if err := c.get(ctx, q, &res); err != nil {
		return nil, err
	}
	if !strings.EqualFold(res.Response, "True") {
		return nil, nil
	}
	m := res.Movie
	return &m, nil
}

func (c *Client) get(ctx context.Context, q url.Values, out any) error {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return fmt.Errorf("%w: bad base url: %v", service.ErrProviderUnavailable, err)
	}
	q.Set("apikey", c.apiKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("%w: %v", service.ErrProviderUnavailable, err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", service.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: omdb returned %d", service.ErrProviderUnavailable, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode: %v", service.ErrProviderUnavailable, err)
	}
	return nil
}

func setPlot(q url.Values, plot string) {
	if plot != "" {
		q.Set("plot", plot)
	}
}

var _ service.MovieProvider = (*Client)(nil)
