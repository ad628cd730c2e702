package postgres

import (
	"context"
	"time"

	"github.com/oksasatya/movie-watchlist/internal/domain/entity"
	"github.com/oksasatya/movie-watchlist/internal/domain/repository"
)

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO users (username, salt, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, u.Username, u.Salt, u.PasswordHash)

	return translate(row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt))
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	u := &entity.User{}

	row := r.db.QueryRow(ctx, `
		SELECT id, username, salt, password_hash, created_at, updated_at
		FROM users
		WHERE username = $1
	`, username)

	if err := row.Scan(&u.ID, &u.Username, &u.Salt, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, translate(err)
	}

	return u, nil
}

// UpdateCredentials replaces salt and hash in one statement so they never
// disagree.
func (r *UserRepository) UpdateCredentials(ctx context.Context, userID int64, salt, passwordHash string) error {
	res, err := r.db.Exec(ctx, `
		UPDATE users
		SET salt = $1, password_hash = $2, updated_at = $3
		WHERE id = $4
	`, salt, passwordHash, time.Now(), userID)
	if err != nil {
		return translate(err)
	}

	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
