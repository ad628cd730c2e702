package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/movie-watchlist/internal/application"
	"github.com/oksasatya/movie-watchlist/internal/domain/entity"
	"github.com/oksasatya/movie-watchlist/internal/interface/middleware"
	"github.com/oksasatya/movie-watchlist/pkg/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
	validation.Init()
}

type envelope struct {
	Status  int             `json:"status"`
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
}

func do(t *testing.T, r *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{application.ErrUserNotFound, http.StatusNotFound},
		{application.ErrMovieNotFound, http.StatusNotFound},
		{application.ErrEntryNotFound, http.StatusNotFound},
		{application.ErrEmptyWatchlist, http.StatusNotFound},
		{application.ErrInvalidState, http.StatusBadRequest},
		{application.ErrInvalidQuery, http.StatusBadRequest},
		{&application.DuplicateEntryError{Title: "Elf", Username: "test_user"}, http.StatusConflict},
		{application.ErrUsernameTaken, http.StatusConflict},
		{application.ErrInvalidCredentials, http.StatusUnauthorized},
		{application.ErrIncorrectPassword, http.StatusUnauthorized},
		{application.ErrProviderUnavailable, http.StatusBadGateway},
		{application.ErrSearchUnavailable, http.StatusServiceUnavailable},
		{application.ErrInternal, http.StatusInternalServerError},
		{errors.New("anything else"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, statusFor(tc.err), tc.err.Error())
	}
}

func TestHealth(t *testing.T) {
	r := gin.New()
	r.GET("/api/health", Health)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"App is running!"}`, w.Body.String())
}

type stubAccounts struct {
	createErr error
	authErr   error
	updateErr error
	gotNew    string
}

func (s *stubAccounts) CreateAccount(ctx context.Context, username, password string) (*entity.User, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &entity.User{ID: 1, Username: username}, nil
}

func (s *stubAccounts) Authenticate(ctx context.Context, username, password string) (*entity.User, error) {
	if s.authErr != nil {
		return nil, s.authErr
	}
	return &entity.User{ID: 1, Username: username}, nil
}

func (s *stubAccounts) UpdatePassword(ctx context.Context, username, oldPassword, newPassword string) error {
	s.gotNew = newPassword
	return s.updateErr
}

func userRouter(svc AccountService) *gin.Engine {
	h := NewUserHandler(svc, nil)
	r := gin.New()
	r.POST("/user/create-account", h.CreateAccount)
	r.POST("/user/login", h.Login)
	r.POST("/user/update-password", h.UpdatePassword)
	return r
}

func TestUserHandler_CreateAccount(t *testing.T) {
	svc := &stubAccounts{}
	r := userRouter(svc)

	w, env := do(t, r, http.MethodPost, "/user/create-account", map[string]string{"username": "test_user", "password": "hunter22"})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Account created successfully", env.Message)
	assert.JSONEq(t, `{"id":1,"username":"test_user"}`, string(env.Data))

	w, env = do(t, r, http.MethodPost, "/user/create-account", map[string]string{"username": "test_user"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, string(env.Error), "password")

	w, _ = do(t, r, http.MethodPost, "/user/create-account", map[string]string{"username": "test_user", "password": "short"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	svc.createErr = application.ErrUsernameTaken
	w, env = do(t, r, http.MethodPost, "/user/create-account", map[string]string{"username": "test_user", "password": "hunter22"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "username already exists", env.Message)
}

func TestUserHandler_Login(t *testing.T) {
	svc := &stubAccounts{}
	r := userRouter(svc)

	w, env := do(t, r, http.MethodPost, "/user/login", map[string]string{"username": "test_user", "password": "x"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Login successful", env.Message)

	svc.authErr = application.ErrInvalidCredentials
	w, _ = do(t, r, http.MethodPost, "/user/login", map[string]string{"username": "test_user", "password": "x"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = do(t, r, http.MethodPost, "/user/login", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserHandler_UpdatePassword(t *testing.T) {
	svc := &stubAccounts{}
	r := userRouter(svc)
	body := map[string]string{"username": "test_user", "old_password": "hunter22", "new_password": "n3w-password"}

	w, _ := do(t, r, http.MethodPost, "/user/update-password", body)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "n3w-password", svc.gotNew)

	for err, status := range map[error]int{
		application.ErrUserNotFound:      http.StatusNotFound,
		application.ErrIncorrectPassword: http.StatusUnauthorized,
		application.ErrInternal:          http.StatusInternalServerError,
	} {
		svc.updateErr = err
		w, _ = do(t, r, http.MethodPost, "/user/update-password", body)
		assert.Equal(t, status, w.Code, err.Error())
	}
}

type stubWatchlist struct {
	err      error
	entry    *entity.WatchlistEntry
	items    []entity.WatchlistItem
	username string
	imdbID   string
	state    string
	query    string
	size     int
}

func (s *stubWatchlist) Add(ctx context.Context, username, imdbID string) (*entity.WatchlistEntry, error) {
	s.username, s.imdbID = username, imdbID
	return s.entry, s.err
}

func (s *stubWatchlist) Delete(ctx context.Context, username, imdbID string) error {
	s.username, s.imdbID = username, imdbID
	return s.err
}

func (s *stubWatchlist) UpdateState(ctx context.Context, username, imdbID, state string) (*entity.WatchlistEntry, error) {
	s.username, s.imdbID, s.state = username, imdbID, state
	return s.entry, s.err
}

func (s *stubWatchlist) List(ctx context.Context, username string) ([]entity.WatchlistItem, error) {
	s.username = username
	return s.items, s.err
}

func (s *stubWatchlist) Search(ctx context.Context, username, query string, size int) ([]entity.WatchlistItem, error) {
	s.username, s.query, s.size = username, query, size
	return s.items, s.err
}

func elfEntry() *entity.WatchlistEntry {
	return &entity.WatchlistEntry{ID: 1, UserID: 1, Title: "Elf", IMDbID: "tt0319343", Year: "2003", State: entity.StateToWatch}
}

func watchlistRouter(svc WatchlistService) *gin.Engine {
	h := NewWatchlistHandler(svc, nil)
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set(middleware.CtxUsernameKey, "test_user") })
	r.POST("/watchlist", h.Add)
	r.GET("/watchlist", h.List)
	r.GET("/watchlist/search", h.Search)
	r.DELETE("/watchlist/:imdb_id", h.Delete)
	r.PATCH("/watchlist/:imdb_id", h.UpdateState)
	return r
}

func TestWatchlistHandler_Add(t *testing.T) {
	svc := &stubWatchlist{entry: elfEntry()}
	r := watchlistRouter(svc)

	w, env := do(t, r, http.MethodPost, "/watchlist", map[string]string{"imdb_id": "tt0319343"})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Movie added to test_user's watchlist", env.Message)
	assert.Equal(t, "test_user", svc.username)
	assert.Contains(t, string(env.Data), `"Watching State":"To Watch"`)

	w, _ = do(t, r, http.MethodPost, "/watchlist", map[string]string{"imdb_id": "elf"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	svc.err = &application.DuplicateEntryError{Title: "Elf", Username: "test_user"}
	w, env = do(t, r, http.MethodPost, "/watchlist", map[string]string{"imdb_id": "tt0319343"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "movie 'Elf' is already in test_user's watchlist", env.Message)

	svc.err = application.ErrProviderUnavailable
	w, _ = do(t, r, http.MethodPost, "/watchlist", map[string]string{"imdb_id": "tt0319343"})
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestWatchlistHandler_List(t *testing.T) {
	svc := &stubWatchlist{items: []entity.WatchlistItem{elfEntry().Item()}}
	r := watchlistRouter(svc)

	w, env := do(t, r, http.MethodGet, "/watchlist", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var items []map[string]string
	require.NoError(t, json.Unmarshal(env.Data, &items))
	require.Len(t, items, 1)
	assert.Equal(t, "tt0319343", items[0]["imdbID"])
	assert.Equal(t, "To Watch", items[0]["Watching State"])

	svc.err = application.ErrEmptyWatchlist
	w, _ = do(t, r, http.MethodGet, "/watchlist", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWatchlistHandler_UpdateState(t *testing.T) {
	svc := &stubWatchlist{}
	r := watchlistRouter(svc)

	w, env := do(t, r, http.MethodPatch, "/watchlist/tt0319343", map[string]string{"watching_state": "Watched"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Movie marked as watched and removed from watchlist", env.Message)
	assert.Equal(t, "tt0319343", svc.imdbID)
	assert.Equal(t, "Watched", svc.state)

	svc.entry = elfEntry()
	svc.entry.State = entity.StateWatchNext
	w, env = do(t, r, http.MethodPatch, "/watchlist/tt0319343", map[string]string{"watching_state": "Watch Next"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"Watching State":"Watch Next"`)

	svc.err = application.ErrInvalidState
	w, _ = do(t, r, http.MethodPatch, "/watchlist/tt0319343", map[string]string{"watching_state": "Seen"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	svc.err = application.ErrEntryNotFound
	w, _ = do(t, r, http.MethodPatch, "/watchlist/tt0000000", map[string]string{"watching_state": "Watched"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWatchlistHandler_DeleteAndSearch(t *testing.T) {
	svc := &stubWatchlist{items: []entity.WatchlistItem{}}
	r := watchlistRouter(svc)

	w, _ := do(t, r, http.MethodDelete, "/watchlist/tt0319343", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "tt0319343", svc.imdbID)

	w, _ = do(t, r, http.MethodGet, "/watchlist/search?q=comedy&size=5", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "comedy", svc.query)
	assert.Equal(t, 5, svc.size)

	w, _ = do(t, r, http.MethodGet, "/watchlist/search", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	svc.err = application.ErrSearchUnavailable
	w, _ = do(t, r, http.MethodGet, "/watchlist/search?q=comedy", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

type stubMovies struct {
	err  error
	page int
}

func (s *stubMovies) ByTitle(ctx context.Context, title string, year int, plot string) (*entity.Movie, error) {
	return &entity.Movie{Title: title, Year: fmt.Sprint(year), Plot: plot}, s.err
}

func (s *stubMovies) ByID(ctx context.Context, imdbID, plot string) (*entity.Movie, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &entity.Movie{Title: "Elf", IMDbID: imdbID}, nil
}

func (s *stubMovies) Search(ctx context.Context, keyword string, year int, contentType string, page int) ([]entity.MovieSummary, error) {
	s.page = page
	return []entity.MovieSummary{{Title: "Elf", IMDbID: "tt0319343"}}, s.err
}

func (s *stubMovies) Random(ctx context.Context, plot string) (*entity.Movie, error) {
	return &entity.Movie{Title: "Inception"}, s.err
}

func (s *stubMovies) TopRated(ctx context.Context) ([]entity.Movie, error) {
	return []entity.Movie{{Title: "The Godfather"}}, s.err
}

func movieRouter(svc MovieLookup) *gin.Engine {
	logger, _ := test.NewNullLogger()
	h := NewMovieHandler(svc, logger)
	r := gin.New()
	r.GET("/movies/title", h.ByTitle)
	r.GET("/movies/id", h.ByID)
	r.GET("/movies/search", h.Search)
	r.GET("/movies/random", h.Random)
	r.GET("/movies/top-rated", h.TopRated)
	return r
}

func TestMovieHandler(t *testing.T) {
	svc := &stubMovies{}
	r := movieRouter(svc)

	w, env := do(t, r, http.MethodGet, "/movies/title?title=Elf&year=2003&plot=full", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"Year":"2003"`)

	w, _ = do(t, r, http.MethodGet, "/movies/title?title=Elf&plot=medium", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = do(t, r, http.MethodGet, "/movies/id?id=tt0319343", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = do(t, r, http.MethodGet, "/movies/search?q=elf", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, svc.page, "page defaults to 1")

	w, _ = do(t, r, http.MethodGet, "/movies/search?q=elf&page=101", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = do(t, r, http.MethodGet, "/movies/random", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = do(t, r, http.MethodGet, "/movies/top-rated", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	svc.err = application.ErrMovieNotFound
	w, _ = do(t, r, http.MethodGet, "/movies/id?id=tt0000000", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	svc.err = errors.New("unexpected")
	w, env = do(t, r, http.MethodGet, "/movies/top-rated", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "an unexpected error occurred", env.Message)
}
