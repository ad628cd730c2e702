package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/movie-watchlist/internal/domain/repository"
)

// TxBeginner is satisfied by *pgxpool.Pool.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

type TransactionManager struct {
	db TxBeginner
}

func NewTransactionManager(db TxBeginner) *TransactionManager {
	return &TransactionManager{db: db}
}

// Execute runs fn inside one transaction. fn's error rolls the transaction
// back and is returned as is, so callers can still match on it.
func (m *TransactionManager) Execute(ctx context.Context, fn func(repos repository.RepositoryFactory) error) error {
	tx, err := m.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(context.WithoutCancel(ctx))
			panic(p)
		}
	}()

	if err := fn(NewRepositoryFactory(tx)); err != nil {
		if rbErr := tx.Rollback(context.WithoutCancel(ctx)); rbErr != nil {
			return fmt.Errorf("%w (rollback: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

type RepositoryFactory struct {
	db DBTX
}

func NewRepositoryFactory(db DBTX) *RepositoryFactory {
	return &RepositoryFactory{db: db}
}

func (f *RepositoryFactory) Users() repository.UserRepository {
	return NewUserRepository(f.db)
}

func (f *RepositoryFactory) Watchlist() repository.WatchlistRepository {
	return NewWatchlistRepository(f.db)
}

var (
	_ repository.TransactionManager = (*TransactionManager)(nil)
	_ repository.RepositoryFactory  = (*RepositoryFactory)(nil)
)
