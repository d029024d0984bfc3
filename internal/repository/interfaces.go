package repository

import (
	"context"
	"errors"

	"github.com/baharkarakas/bloglist-backend/internal/models"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicateUsername = errors.New("duplicate username")
)

type Users interface {
	// Create assigns u.ID. Blogs starts empty.
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id string) (models.User, error)
	GetByUsername(ctx context.Context, username string) (models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Count(ctx context.Context) (int, error)

	// AppendBlog adds blogID to the owned set at most once.
	AppendBlog(ctx context.Context, userID, blogID string) error
	// RemoveBlog drops blogID from the owned set; absent ids are a no-op.
	RemoveBlog(ctx context.Context, userID, blogID string) error
}

type Blogs interface {
	// Create assigns b.ID; b.User, when set, is stored as the owner reference.
	Create(ctx context.Context, b *models.Blog) error
	GetByID(ctx context.Context, id string) (models.Blog, error)
	List(ctx context.Context) ([]models.Blog, error)
	Count(ctx context.Context) (int, error)
	UpdateLikes(ctx context.Context, id string, likes int64) (models.Blog, error)
	AppendComment(ctx context.Context, id, comment string) (models.Blog, error)
	Delete(ctx context.Context, id string) error
}

// Store is one backend. Reads return blogs with User populated and users with
// Blogs populated.
type Store interface {
	Users() Users
	Blogs() Blogs

	// WithTx runs fn atomically. Repositories reached through tx, called with
	// the ctx handed to fn, take part in the transaction. Nested calls reuse it.
	WithTx(ctx context.Context, fn func(ctx context.Context, tx Store) error) error

	// Reset deletes every user and blog.
	Reset(ctx context.Context) error
	Close() error
}
