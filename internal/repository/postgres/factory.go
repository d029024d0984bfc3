package postgres

import (
	"context"
	"errors"

	repo "github.com/baharkarakas/bloglist-backend/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const txAttempts = 3

type Store struct {
	pool *pgxpool.Pool
	q    querier
	inTx bool
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool, q: pool}
}

func (s *Store) Users() repo.Users { return &usersRepo{q: s.q} }
func (s *Store) Blogs() repo.Blogs { return &blogsRepo{q: s.q} }

// WithTx runs fn in one serializable transaction, retrying serialization failures.
func (s *Store) WithTx(ctx context.Context, fn func(context.Context, repo.Store) error) error {
	if s.inTx {
		return fn(ctx, s)
	}
	var err error
	for i := 0; i < txAttempts; i++ {
		err = s.runTx(ctx, fn)
		if !isSerializationFailure(err) {
			return err
		}
	}
	return err
}

func (s *Store) runTx(ctx context.Context, fn func(context.Context, repo.Store) error) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.Serializable,
		AccessMode: pgx.ReadWrite,
	})
	if err != nil {
		return err
	}
	if err := fn(ctx, &Store{pool: s.pool, q: tx, inTx: true}); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

func (s *Store) Reset(ctx context.Context) error {
	_, err := s.q.Exec(ctx, `TRUNCATE user_blogs, blogs, users`)
	return err
}

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func isUniqueViolation(err error) bool     { return pgCode(err) == "23505" }
func isForeignKeyViolation(err error) bool { return pgCode(err) == "23503" }
func isSerializationFailure(err error) bool {
	return pgCode(err) == "40001"
}
