package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/movie-watchlist/internal/domain/entity"
	"github.com/oksasatya/movie-watchlist/internal/domain/repository"
)

const watchlistColumns = `id, user_id, title, imdb_id, year, rated, runtime, plot, genre, imdb_rating, type, watching_state, created_at, updated_at`

type WatchlistRepository struct {
	db DBTX
}

func NewWatchlistRepository(db DBTX) *WatchlistRepository {
	return &WatchlistRepository{db: db}
}

func (r *WatchlistRepository) Create(ctx context.Context, e *entity.WatchlistEntry) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO watchlist_entries
			(user_id, title, imdb_id, year, rated, runtime, plot, genre, imdb_rating, type, watching_state)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`, e.UserID, e.Title, e.IMDbID, e.Year, e.Rated, e.Runtime, e.Plot, e.Genre, e.IMDbRating, e.Type, string(e.State))

	return translate(row.Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt))
}

func (r *WatchlistRepository) Get(ctx context.Context, userID int64, imdbID string) (*entity.WatchlistEntry, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+watchlistColumns+`
		FROM watchlist_entries
		WHERE user_id = $1 AND imdb_id = $2
	`, userID, imdbID)

	e, err := scanEntry(row)
	if err != nil {
		return nil, translate(err)
	}
	return e, nil
}

// ListByUser returns entries in insertion order.
func (r *WatchlistRepository) ListByUser(ctx context.Context, userID int64) ([]entity.WatchlistEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+watchlistColumns+`
		FROM watchlist_entries
		WHERE user_id = $1
		ORDER BY id
	`, userID)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var out []entity.WatchlistEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

func (r *WatchlistRepository) Update(ctx context.Context, e *entity.WatchlistEntry) error {
	e.UpdatedAt = time.Now()

	res, err := r.db.Exec(ctx, `
		UPDATE watchlist_entries
		SET title = $1, imdb_id = $2, year = $3, rated = $4, runtime = $5, plot = $6,
			genre = $7, imdb_rating = $8, type = $9, watching_state = $10, updated_at = $11
		WHERE id = $12
	`, e.Title, e.IMDbID, e.Year, e.Rated, e.Runtime, e.Plot, e.Genre, e.IMDbRating, e.Type, string(e.State), e.UpdatedAt, e.ID)
	if err != nil {
		return translate(err)
	}

	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *WatchlistRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.Exec(ctx, `DELETE FROM watchlist_entries WHERE id = $1`, id)
	if err != nil {
		return translate(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanEntry(row pgx.Row) (*entity.WatchlistEntry, error) {
	var (
		e     entity.WatchlistEntry
		state string
	)
	if err := row.Scan(&e.ID, &e.UserID, &e.Title, &e.IMDbID, &e.Year, &e.Rated, &e.Runtime, &e.Plot,
		&e.Genre, &e.IMDbRating, &e.Type, &state, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	e.State = entity.WatchingState(state)
	return &e, nil
}

var _ repository.WatchlistRepository = (*WatchlistRepository)(nil)
