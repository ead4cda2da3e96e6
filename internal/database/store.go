package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is the persistence gateway consumed by the service layer. It is
// the full query surface plus a transaction boundary so check-then-act
// sequences run serialized against concurrent requests.
type Store interface {
	Querier
	ExecTx(ctx context.Context, fn func(Store) error) error
}

type SQLStore struct {
	*Queries
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *SQLStore {
	return &SQLStore{
		Queries: New(pool),
		pool:    pool,
	}
}

// ExecTx runs fn inside a single database transaction. A store already
// scoped to a transaction runs fn directly instead of opening a nested one.
func (s *SQLStore) ExecTx(ctx context.Context, fn func(Store) error) error {
	if s.pool == nil {
		return fn(s)
	}
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := fn(&SQLStore{Queries: s.Queries.WithTx(tx)}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
