package application

import (
	"context"
	"math/rand/v2"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/movie-watchlist/internal/domain/entity"
	"github.com/oksasatya/movie-watchlist/internal/domain/service"
)

// Catalog is a finite list of titles the movie service may pick from.
type Catalog interface {
	Titles() []string
}

// StaticCatalog is a Catalog backed by a fixed slice.
type StaticCatalog []string

func (c StaticCatalog) Titles() []string { return c }

// PickRandom chooses one title from c. A nil rng uses the global source.
func PickRandom(c Catalog, rng *rand.Rand) (string, error) {
	if c == nil {
		return "", ErrEmptyCatalog
	}
	titles := c.Titles()
	if len(titles) == 0 {
		return "", ErrEmptyCatalog
	}
	if rng == nil {
		return titles[rand.IntN(len(titles))], nil
	}
	return titles[rng.IntN(len(titles))], nil
}

type MovieService struct {
	Provider       service.MovieProvider
	RandomTitles   Catalog
	TopRatedTitles Catalog
	Rand           *rand.Rand
	Logger         *logrus.Logger
}

func NewMovieService(provider service.MovieProvider, random, topRated Catalog, logger *logrus.Logger) *MovieService {
	return &MovieService{Provider: provider, RandomTitles: random, TopRatedTitles: topRated, Logger: logger}
}

func (s *MovieService) ByTitle(ctx context.Context, title string, year int, plot string) (*entity.Movie, error) {
	if strings.TrimSpace(title) == "" || !validPlot(plot) || year < 0 {
		return nil, ErrInvalidQuery
	}
	m, err := s.Provider.FetchByTitle(ctx, service.TitleQuery{Title: title, Year: year, Plot: plot})
	return s.movie(m, err, logrus.Fields{"title": title})
}

func (s *MovieService) ByID(ctx context.Context, imdbID, plot string) (*entity.Movie, error) {
	if strings.TrimSpace(imdbID) == "" || !validPlot(plot) {
		return nil, ErrInvalidQuery
	}
	m, err := s.Provider.FetchByID(ctx, imdbID, plot)
	return s.movie(m, err, logrus.Fields{"imdb_id": imdbID})
}

// Search returns one page of keyword matches; page is 1..100.
func (s *MovieService) Search(ctx context.Context, keyword string, year int, contentType string, page int) ([]entity.MovieSummary, error) {
	if strings.TrimSpace(keyword) == "" || page < 1 || page > 100 || year < 0 || !validType(contentType) {
		return nil, ErrInvalidQuery
	}
	res, err := s.Provider.SearchByKeyword(ctx, service.SearchQuery{Keyword: keyword, Year: year, Type: contentType, Page: page})
	if err != nil {
		s.warn(err, "movie search failed", logrus.Fields{"keyword": keyword})
		return nil, ErrProviderUnavailable
	}
	if res == nil {
		res = []entity.MovieSummary{}
	}
	return res, nil
}

// Random looks up a title picked from the random catalog.
func (s *MovieService) Random(ctx context.Context, plot string) (*entity.Movie, error) {
	if !validPlot(plot) {
		return nil, ErrInvalidQuery
	}
	title, err := PickRandom(s.RandomTitles, s.Rand)
	if err != nil {
		return nil, err
	}
	m, err := s.Provider.FetchByTitle(ctx, service.TitleQuery{Title: title, Plot: plot})
	return s.movie(m, err, logrus.Fields{"title": title})
}

// TopRated resolves every title of the top-rated catalog. Titles the provider
// cannot resolve are skipped; a provider outage fails the whole call.
func (s *MovieService) TopRated(ctx context.Context) ([]entity.Movie, error) {
	if s.TopRatedTitles == nil || len(s.TopRatedTitles.Titles()) == 0 {
		return nil, ErrEmptyCatalog
	}
	titles := s.TopRatedTitles.Titles()
	out := make([]entity.Movie, 0, len(titles))
	for _, title := range titles {
		m, err := s.Provider.FetchByTitle(ctx, service.TitleQuery{Title: title})
		if err != nil {
			s.warn(err, "top rated lookup failed", logrus.Fields{"title": title})
			return nil, ErrProviderUnavailable
		}
		if m == nil {
			continue
		}
		out = append(out, *m)
	}
	return out, nil
}

func (s *MovieService) movie(m *entity.Movie, err error, fields logrus.Fields) (*entity.Movie, error) {
	if err != nil {
		s.warn(err, "movie lookup failed", fields)
		return nil, ErrProviderUnavailable
	}
	if m == nil {
		return nil, ErrMovieNotFound
	}
	return m, nil
}

func (s *MovieService) warn(err error, msg string, fields logrus.Fields) {
	if s.Logger != nil {
		s.Logger.WithError(err).WithFields(fields).Warn(msg)
	}
}

func validPlot(p string) bool {
	return p == "" || p == "short" || p == "full"
}

func validType(t string) bool {
	switch t {
	case "", "movie", "series", "episode":
		return true
	}
	return false
}
