package repository

import "context"

// TransactionManager runs fn inside a single database transaction. The
// transaction commits when fn returns nil and rolls back otherwise.
type TransactionManager interface {
	Execute(ctx context.Context, fn func(repos RepositoryFactory) error) error
}

// RepositoryFactory hands out repositories bound to the current transaction.
type RepositoryFactory interface {
	Users() UserRepository
	Watchlist() WatchlistRepository
}
