package services

import (
	"context"
	"errors"
	"log/slog"
	"math"

	"github.com/baharkarakas/bloglist-backend/internal/api/validate"
	"github.com/baharkarakas/bloglist-backend/internal/auth"
	"github.com/baharkarakas/bloglist-backend/internal/metrics"
	"github.com/baharkarakas/bloglist-backend/internal/models"
	repo "github.com/baharkarakas/bloglist-backend/internal/repository"
)

type BlogService struct {
	store repo.Store
}

func NewBlogService(s repo.Store) *BlogService { return &BlogService{store: s} }

// BlogInput carries likes undecoded so non-numbers can fall back to 0.
type BlogInput struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
	Likes  any    `json:"likes"`
}

// CoerceLikes keeps JSON numbers (truncated to an integer) and maps anything else to 0.
func CoerceLikes(v any) int64 {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || n > math.MaxInt64 || n < math.MinInt64 {
			return 0
		}
		return int64(n)
	case int:
		return int64(n)
	case int64:
		return n
	default:
		return 0
	}
}

func (s *BlogService) List(ctx context.Context) ([]models.Blog, error) {
	return s.store.Blogs().List(ctx)
}

// Create stores the blog with the acting user as owner and appends its id to
// the owner's set, both in one transaction.
func (s *BlogService) Create(ctx context.Context, actor *auth.Claims, in BlogInput) (models.Blog, error) {
	if actor == nil {
		return models.Blog{}, ErrUnauthorized
	}
	if f := validate.First(
		validate.Required("title", in.Title),
		validate.Required("url", in.URL),
	); f != nil {
		return models.Blog{}, invalid(f)
	}

	blog := models.Blog{
		Title:    in.Title,
		Author:   in.Author,
		URL:      in.URL,
		Likes:    CoerceLikes(in.Likes),
		Comments: []string{},
	}
	err := s.store.WithTx(ctx, func(ctx context.Context, tx repo.Store) error {
		owner, err := tx.Users().GetByID(ctx, actor.UserID)
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		if err != nil {
			return err
		}
		summary := owner.Summary()
		blog.User = &summary

		if err := tx.Blogs().Create(ctx, &blog); err != nil {
			return err
		}
		return tx.Users().AppendBlog(ctx, owner.ID, blog.ID)
	})
	if err != nil {
		return models.Blog{}, err
	}

	metrics.BlogsCreated.Inc()
	slog.DebugContext(ctx, "blog created", "blog_id", blog.ID, "user_id", actor.UserID)
	return blog, nil
}

// UpdateLikes replaces likes only; other fields are left untouched.
func (s *BlogService) UpdateLikes(ctx context.Context, id string, likes any) (models.Blog, error) {
	b, err := s.store.Blogs().UpdateLikes(ctx, id, CoerceLikes(likes))
	if errors.Is(err, repo.ErrNotFound) {
		return models.Blog{}, ErrBlogNotFound
	}
	return b, err
}

// AddComment is open to any authenticated user.
func (s *BlogService) AddComment(ctx context.Context, actor *auth.Claims, id, comment string) (models.Blog, error) {
	if actor == nil {
		return models.Blog{}, ErrUnauthorized
	}
	if f := validate.Required("comment", comment); f != nil {
		return models.Blog{}, invalid(f)
	}
	b, err := s.store.Blogs().AppendComment(ctx, id, comment)
	if errors.Is(err, repo.ErrNotFound) {
		return models.Blog{}, ErrBlogNotFound
	}
	if err != nil {
		return models.Blog{}, err
	}
	metrics.CommentsAdded.Inc()
	return b, nil
}

// Delete is owner-only. The owner's set is cleaned before the blog row goes,
// inside the same transaction.
func (s *BlogService) Delete(ctx context.Context, actor *auth.Claims, id string) error {
	if actor == nil {
		return ErrUnauthorized
	}
	err := s.store.WithTx(ctx, func(ctx context.Context, tx repo.Store) error {
		blog, err := tx.Blogs().GetByID(ctx, id)
		if errors.Is(err, repo.ErrNotFound) {
			return ErrBlogNotFound
		}
		if err != nil {
			return err
		}
		if !blog.OwnedBy(actor.UserID) {
			return ErrForbidden
		}

		owner, err := tx.Users().GetByID(ctx, blog.UserID())
		switch {
		case errors.Is(err, repo.ErrNotFound):
			slog.WarnContext(ctx, "blog owner missing", "blog_id", blog.ID, "user_id", blog.UserID())
		case err != nil:
			return err
		default:
			if err := tx.Users().RemoveBlog(ctx, owner.ID, blog.ID); err != nil {
				return err
			}
		}
		return tx.Blogs().Delete(ctx, blog.ID)
	})
	if err != nil {
		return err
	}

	metrics.BlogsDeleted.Inc()
	slog.DebugContext(ctx, "blog deleted", "blog_id", id, "user_id", actor.UserID)
	return nil
}

func (s *BlogService) Stats(ctx context.Context) (Stats, error) {
	blogs, err := s.store.Blogs().List(ctx)
	if err != nil {
		return Stats{}, err
	}
	return ComputeStats(blogs), nil
}
