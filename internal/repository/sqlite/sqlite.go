package sqlite

import (
	"context"
	"database/sql"
	"strings"

	repo "github.com/baharkarakas/bloglist-backend/internal/repository"

	_ "modernc.org/sqlite"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db   *sql.DB
	q    querier
	inTx bool
}

// Open accepts a file path or a URI such as "file:name?mode=memory&cache=shared".
// The pool is pinned to one connection so pragmas and in-memory databases hold.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db, q: db}, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id TEXT PRIMARY KEY,
	username TEXT NOT NULL UNIQUE,
	name TEXT NOT NULL DEFAULT '',
	password_hash TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS blogs (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	author TEXT NOT NULL DEFAULT '',
	url TEXT NOT NULL,
	likes INTEGER NOT NULL DEFAULT 0,
	user_id TEXT REFERENCES users(id) ON DELETE SET NULL,
	comments TEXT NOT NULL DEFAULT '[]'
);
CREATE INDEX IF NOT EXISTS idx_blogs_user_id ON blogs(user_id);

CREATE TABLE IF NOT EXISTS user_blogs (
	user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	blog_id TEXT NOT NULL REFERENCES blogs(id) ON DELETE CASCADE,
	PRIMARY KEY (user_id, blog_id)
);
`

func (s *Store) Users() repo.Users { return &usersRepo{q: s.q} }
func (s *Store) Blogs() repo.Blogs { return &blogsRepo{q: s.q} }

func (s *Store) WithTx(ctx context.Context, fn func(context.Context, repo.Store) error) error {
	if s.inTx {
		return fn(ctx, s)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(ctx, &Store{db: s.db, q: tx, inTx: true}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (s *Store) Reset(ctx context.Context) error {
	for _, q := range []string{`DELETE FROM user_blogs`, `DELETE FROM blogs`, `DELETE FROM users`} {
		if _, err := s.q.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func isUniqueErr(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "PRIMARY KEY")
}

func isForeignKeyErr(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
