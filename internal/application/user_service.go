package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/movie-watchlist/internal/domain/entity"
	repo "github.com/oksasatya/movie-watchlist/internal/domain/repository"
	"github.com/oksasatya/movie-watchlist/pkg/helpers"
)

type UserService struct {
	Repo   repo.UserRepository
	Logger *logrus.Logger
}

func NewUserService(repo repo.UserRepository, logger *logrus.Logger) *UserService {
	return &UserService{Repo: repo, Logger: logger}
}

// CreateAccount registers a new user with a freshly salted password hash.
func (s *UserService) CreateAccount(ctx context.Context, username, password string) (*entity.User, error) {
	fields := logrus.Fields{"username": username}

	_, err := s.Repo.GetByUsername(ctx, username)
	switch {
	case err == nil:
		return nil, ErrUsernameTaken
	case !errors.Is(err, repo.ErrNotFound):
		return nil, s.internal(err, "create account: lookup", fields)
	}

	salt, hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, s.internal(err, "create account: hash password", fields)
	}
	u := &entity.User{Username: username, Salt: salt, PasswordHash: hash}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrUsernameTaken
		}
		return nil, s.internal(err, "create account: insert", fields)
	}

	if s.Logger != nil {
		s.Logger.WithFields(fields).Info("new account created")
	}
	return u, nil
}

// Authenticate checks username and password. Unknown users and wrong
// passwords are reported the same way.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*entity.User, error) {
	u, err := s.Repo.GetByUsername(ctx, username)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, s.internal(err, "authenticate: lookup", logrus.Fields{"username": username})
	}
	if !helpers.VerifyPassword(u.Salt, u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// UpdatePassword replaces salt and hash together after checking the old password.
func (s *UserService) UpdatePassword(ctx context.Context, username, oldPassword, newPassword string) error {
	fields := logrus.Fields{"username": username}

	u, err := s.Repo.GetByUsername(ctx, username)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return s.internal(err, "update password: lookup", fields)
	}
	if !helpers.VerifyPassword(u.Salt, u.PasswordHash, oldPassword) {
		return ErrIncorrectPassword
	}

	salt, hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return s.internal(err, "update password: hash", fields)
	}
	if err := s.Repo.UpdateCredentials(ctx, u.ID, salt, hash); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return s.internal(err, "update password: store", fields)
	}

	if s.Logger != nil {
		s.Logger.WithFields(fields).Info("password updated")
	}
	return nil
}

func (s *UserService) internal(err error, op string, fields logrus.Fields) error {
	if s.Logger != nil {
		s.Logger.WithError(err).WithFields(fields).Error(op)
	}
	return ErrInternal
}
