package application

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/oksasatya/movie-watchlist/internal/domain/entity"
	repo "github.com/oksasatya/movie-watchlist/internal/domain/repository"
	"github.com/oksasatya/movie-watchlist/internal/domain/service"
)

var errBoom = errors.New("connection reset by peer")

// memStore is an in-memory stand-in for Postgres. Execute snapshots state
// and restores it when fn fails, like a rolled back transaction.
type memStore struct {
	mu          sync.Mutex
	users       map[string]entity.User
	entries     []entity.WatchlistEntry
	nextUserID  int64
	nextEntryID int64
	fail        map[string]error
	txCount     int
}

func newMemStore() *memStore {
	return &memStore{users: map[string]entity.User{}, fail: map[string]error{}}
}

func (s *memStore) failWith(op string, err error) { s.fail[op] = err }

func (s *memStore) check(op string) error {
	if err, ok := s.fail[op]; ok {
		return err
	}
	return nil
}

func (s *memStore) addUser(username string) entity.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextUserID++
	u := entity.User{ID: s.nextUserID, Username: username, Salt: "00", PasswordHash: "00"}
	s.users[username] = u
	return u
}

func (s *memStore) entriesFor(userID int64) []entity.WatchlistEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entity.WatchlistEntry
	for _, e := range s.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out
}

func (s *memStore) Execute(ctx context.Context, fn func(repos repo.RepositoryFactory) error) error {
	s.mu.Lock()
	s.txCount++
	users := make(map[string]entity.User, len(s.users))
	for k, v := range s.users {
		users[k] = v
	}
	entries := append([]entity.WatchlistEntry(nil), s.entries...)
	s.mu.Unlock()

	err := fn(s)
	if err == nil {
		err = s.check("tx.commit")
	}
	if err != nil {
		s.mu.Lock()
		s.users, s.entries = users, entries
		s.mu.Unlock()
	}
	return err
}

func (s *memStore) Users() repo.UserRepository          { return memUsers{s} }
func (s *memStore) Watchlist() repo.WatchlistRepository { return memWatchlist{s} }

type memUsers struct{ s *memStore }

func (r memUsers) Create(ctx context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.check("users.create"); err != nil {
		return err
	}
	if _, ok := r.s.users[u.Username]; ok {
		return repo.ErrDuplicate
	}
	r.s.nextUserID++
	u.ID = r.s.nextUserID
	u.CreatedAt, u.UpdatedAt = time.Now(), time.Now()
	r.s.users[u.Username] = *u
	return nil
}

func (r memUsers) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.check("users.get"); err != nil {
		return nil, err
	}
	u, ok := r.s.users[username]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &u, nil
}

func (r memUsers) UpdateCredentials(ctx context.Context, userID int64, salt, passwordHash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.check("users.update"); err != nil {
		return err
	}
	for name, u := range r.s.users {
		if u.ID == userID {
			u.Salt, u.PasswordHash = salt, passwordHash
			r.s.users[name] = u
			return nil
		}
	}
	return repo.ErrNotFound
}

type memWatchlist struct{ s *memStore }

func (r memWatchlist) Create(ctx context.Context, e *entity.WatchlistEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.check("watchlist.create"); err != nil {
		return err
	}
	for _, x := range r.s.entries {
		if x.UserID == e.UserID && x.IMDbID == e.IMDbID {
			return repo.ErrDuplicate
		}
	}
	r.s.nextEntryID++
	e.ID = r.s.nextEntryID
	r.s.entries = append(r.s.entries, *e)
	return nil
}

func (r memWatchlist) Get(ctx context.Context, userID int64, imdbID string) (*entity.WatchlistEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.check("watchlist.get"); err != nil {
		return nil, err
	}
	for _, x := range r.s.entries {
		if x.UserID == userID && x.IMDbID == imdbID {
			e := x
			return &e, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r memWatchlist) ListByUser(ctx context.Context, userID int64) ([]entity.WatchlistEntry, error) {
	if err := r.s.check("watchlist.list"); err != nil {
		return nil, err
	}
	return r.s.entriesFor(userID), nil
}

func (r memWatchlist) Update(ctx context.Context, e *entity.WatchlistEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.check("watchlist.update"); err != nil {
		return err
	}
	for i, x := range r.s.entries {
		if x.ID == e.ID {
			r.s.entries[i] = *e
			return nil
		}
	}
	return repo.ErrNotFound
}

func (r memWatchlist) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.check("watchlist.delete"); err != nil {
		return err
	}
	for i, x := range r.s.entries {
		if x.ID == id {
			r.s.entries = append(r.s.entries[:i], r.s.entries[i+1:]...)
			return nil
		}
	}
	return repo.ErrNotFound
}

type fakeProvider struct {
	mu      sync.Mutex
	byID    map[string]*entity.Movie
	byTitle map[string]*entity.Movie
	search  []entity.MovieSummary
	err     error
	calls   int
	titles  []string
}

func newFakeProvider(movies ...*entity.Movie) *fakeProvider {
	p := &fakeProvider{byID: map[string]*entity.Movie{}, byTitle: map[string]*entity.Movie{}}
	for _, m := range movies {
		p.byID[m.IMDbID] = m
		p.byTitle[m.Title] = m
	}
	return p
}

func (p *fakeProvider) FetchByID(ctx context.Context, imdbID, plot string) (*entity.Movie, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	m, ok := p.byID[imdbID]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (p *fakeProvider) FetchByTitle(ctx context.Context, q service.TitleQuery) (*entity.Movie, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	p.titles = append(p.titles, q.Title)
	if p.err != nil {
		return nil, p.err
	}
	m, ok := p.byTitle[q.Title]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (p *fakeProvider) SearchByKeyword(ctx context.Context, q service.SearchQuery) ([]entity.MovieSummary, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return p.search, nil
}

type fakePublisher struct {
	events []*service.WatchlistEvent
	err    error
}

func (p *fakePublisher) PublishWatchlistEvent(ctx context.Context, ev *service.WatchlistEvent) error {
	p.events = append(p.events, ev)
	return p.err
}

func (p *fakePublisher) Close() error { return nil }

type fakeIndex struct {
	items  []entity.WatchlistItem
	err    error
	userID int64
	query  string
	size   int
}

func (f *fakeIndex) Upsert(ctx context.Context, userID int64, item entity.WatchlistItem) error {
	return f.err
}

func (f *fakeIndex) Remove(ctx context.Context, userID int64, imdbID string) error { return f.err }

func (f *fakeIndex) Search(ctx context.Context, userID int64, query string, size int) ([]entity.WatchlistItem, error) {
	f.userID, f.query, f.size = userID, query, size
	return f.items, f.err
}

func elf() *entity.Movie {
	return &entity.Movie{
		Title:      "Elf",
		IMDbID:     "tt0319343",
		Year:       "2003",
		Rated:      "PG",
		Runtime:    "97 min",
		Plot:       "Raised as an oversized elf, Buddy travels from the North Pole to New York City to meet his biological father.",
		Genre:      "Adventure, Comedy, Family",
		IMDbRating: "7.1",
		Type:       "movie",
	}
}

func inception() *entity.Movie {
	return &entity.Movie{
		Title:      "Inception",
		IMDbID:     "tt1375666",
		Year:       "2010",
		Rated:      "PG-13",
		Runtime:    "148 min",
		Plot:       "A thief who steals corporate secrets through dream-sharing technology.",
		Genre:      "Action, Adventure, Sci-Fi",
		IMDbRating: "8.8",
		Type:       "movie",
	}
}
