package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/movie-watchlist/internal/domain/entity"
	"github.com/oksasatya/movie-watchlist/internal/interface/middleware"
	"github.com/oksasatya/movie-watchlist/pkg/response"
	"github.com/oksasatya/movie-watchlist/pkg/validation"
)

// WatchlistService is satisfied by *application.WatchlistService.
type WatchlistService interface {
	Add(ctx context.Context, username, imdbID string) (*entity.WatchlistEntry, error)
	Delete(ctx context.Context, username, imdbID string) error
	UpdateState(ctx context.Context, username, imdbID, state string) (*entity.WatchlistEntry, error)
	List(ctx context.Context, username string) ([]entity.WatchlistItem, error)
	Search(ctx context.Context, username, query string, size int) ([]entity.WatchlistItem, error)
}

// WatchlistHandler serves the caller's own watchlist. Routes sit behind
// middleware.BasicAuth, which provides the username.
type WatchlistHandler struct {
	Svc    WatchlistService
	Logger *logrus.Logger
}

func NewWatchlistHandler(svc WatchlistService, logger *logrus.Logger) *WatchlistHandler {
	return &WatchlistHandler{Svc: svc, Logger: logger}
}

type addEntryRequest struct {
	IMDbID string `json:"imdb_id" binding:"required,imdbid"`
}

type updateStateRequest struct {
	WatchingState string `json:"watching_state" binding:"required"`
}

type searchEntriesQuery struct {
	Q    string `form:"q" binding:"required"`
	Size int    `form:"size" binding:"omitempty,gte=1,lte=50"`
}

func (h *WatchlistHandler) Add(c *gin.Context) {
	var req addEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	username := c.GetString(middleware.CtxUsernameKey)

	e, err := h.Svc.Add(c.Request.Context(), username, req.IMDbID)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, e.Item(), fmt.Sprintf("Movie added to %s's watchlist", username), nil)
}

func (h *WatchlistHandler) List(c *gin.Context) {
	items, err := h.Svc.List(c.Request.Context(), c.GetString(middleware.CtxUsernameKey))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, items, "watchlist", map[string]any{"count": len(items)})
}

func (h *WatchlistHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.GetString(middleware.CtxUsernameKey), c.Param("imdb_id")); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "Movie removed from watchlist", nil)
}

func (h *WatchlistHandler) UpdateState(c *gin.Context) {
	var req updateStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	e, err := h.Svc.UpdateState(c.Request.Context(), c.GetString(middleware.CtxUsernameKey), c.Param("imdb_id"), req.WatchingState)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	if e == nil {
		response.Success[any](c, http.StatusOK, nil, "Movie marked as watched and removed from watchlist", nil)
		return
	}
	response.Success(c, http.StatusOK, e.Item(), "Watching state updated", nil)
}

func (h *WatchlistHandler) Search(c *gin.Context) {
	var q searchEntriesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid query", validation.ToDetails(err))
		return
	}

	items, err := h.Svc.Search(c.Request.Context(), c.GetString(middleware.CtxUsernameKey), q.Q, q.Size)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, items, "search results", map[string]any{"count": len(items)})
}
