package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/movie-watchlist/internal/domain/entity"
	"github.com/oksasatya/movie-watchlist/pkg/response"
	"github.com/oksasatya/movie-watchlist/pkg/validation"
)

// MovieLookup is satisfied by *application.MovieService.
type MovieLookup interface {
	ByTitle(ctx context.Context, title string, year int, plot string) (*entity.Movie, error)
	ByID(ctx context.Context, imdbID, plot string) (*entity.Movie, error)
	Search(ctx context.Context, keyword string, year int, contentType string, page int) ([]entity.MovieSummary, error)
	Random(ctx context.Context, plot string) (*entity.Movie, error)
	TopRated(ctx context.Context) ([]entity.Movie, error)
}

type MovieHandler struct {
	Svc    MovieLookup
	Logger *logrus.Logger
}

func NewMovieHandler(svc MovieLookup, logger *logrus.Logger) *MovieHandler {
	return &MovieHandler{Svc: svc, Logger: logger}
}

type titleQuery struct {
	Title string `form:"title" binding:"required"`
	Year  int    `form:"year" binding:"omitempty,gte=1870,lte=2100"`
	Plot  string `form:"plot" binding:"omitempty,plot"`
}

type idQuery struct {
	ID   string `form:"id" binding:"required,imdbid"`
	Plot string `form:"plot" binding:"omitempty,plot"`
}

type keywordQuery struct {
	Q    string `form:"q" binding:"required"`
	Year int    `form:"year" binding:"omitempty,gte=1870,lte=2100"`
	Type string `form:"type" binding:"omitempty,mediatype"`
	Page int    `form:"page" binding:"omitempty,gte=1,lte=100"`
}

type plotQuery struct {
	Plot string `form:"plot" binding:"omitempty,plot"`
}

func (h *MovieHandler) ByTitle(c *gin.Context) {
	var q titleQuery
	if !h.bindQuery(c, &q) {
		return
	}
	m, err := h.Svc.ByTitle(c.Request.Context(), q.Title, q.Year, q.Plot)
	h.respond(c, m, err)
}

func (h *MovieHandler) ByID(c *gin.Context) {
	var q idQuery
	if !h.bindQuery(c, &q) {
		return
	}
	m, err := h.Svc.ByID(c.Request.Context(), q.ID, q.Plot)
	h.respond(c, m, err)
}

func (h *MovieHandler) Search(c *gin.Context) {
	var q keywordQuery
	if !h.bindQuery(c, &q) {
		return
	}
	if q.Page == 0 {
		q.Page = 1
	}
	res, err := h.Svc.Search(c.Request.Context(), q.Q, q.Year, q.Type, q.Page)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, res, "search results", map[string]any{"page": q.Page, "count": len(res)})
}

func (h *MovieHandler) Random(c *gin.Context) {
	var q plotQuery
	if !h.bindQuery(c, &q) {
		return
	}
	m, err := h.Svc.Random(c.Request.Context(), q.Plot)
	h.respond(c, m, err)
}

func (h *MovieHandler) TopRated(c *gin.Context) {
	movies, err := h.Svc.TopRated(c.Request.Context())
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, movies, "top rated movies", map[string]any{"count": len(movies)})
}

func (h *MovieHandler) bindQuery(c *gin.Context, dst any) bool {
	if err := c.ShouldBindQuery(dst); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid query", validation.ToDetails(err))
		return false
	}
	return true
}

func (h *MovieHandler) respond(c *gin.Context, m *entity.Movie, err error) {
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, m, "movie", nil)
}
