package postgres

import (
	"context"
	"errors"

	"github.com/baharkarakas/bloglist-backend/internal/models"
	"github.com/baharkarakas/bloglist-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type blogsRepo struct{ q querier }

const selectBlog = `
SELECT b.id, b.title, b.author, b.url, b.likes, b.comments, u.id, u.username, u.name
  FROM blogs b
  LEFT JOIN users u ON u.id = b.user_id`

func scanBlog(row pgx.Row) (models.Blog, error) {
	var b models.Blog
	var uid, uname, name *string
	if err := row.Scan(&b.ID, &b.Title, &b.Author, &b.URL, &b.Likes, &b.Comments, &uid, &uname, &name); err != nil {
		return models.Blog{}, err
	}
	if uid != nil {
		b.User = &models.UserSummary{ID: *uid, Username: deref(uname), Name: deref(name)}
	}
	if b.Comments == nil {
		b.Comments = []string{}
	}
	return b, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (r *blogsRepo) Create(ctx context.Context, b *models.Blog) error {
	id := uuid.NewString()
	var owner *string
	if b.User != nil {
		owner = &b.User.ID
	}
	if b.Comments == nil {
		b.Comments = []string{}
	}
	_, err := r.q.Exec(ctx,
		`INSERT INTO blogs(id, title, author, url, likes, user_id, comments) VALUES($1,$2,$3,$4,$5,$6,$7)`,
		id, b.Title, b.Author, b.URL, b.Likes, owner, b.Comments,
	)
	if isForeignKeyViolation(err) {
		return repository.ErrNotFound
	}
	if err != nil {
		return err
	}
	b.ID = id
	return nil
}

func (r *blogsRepo) GetByID(ctx context.Context, id string) (models.Blog, error) {
	b, err := scanBlog(r.q.QueryRow(ctx, selectBlog+` WHERE b.id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Blog{}, repository.ErrNotFound
	}
	return b, err
}

func (r *blogsRepo) List(ctx context.Context) ([]models.Blog, error) {
	rows, err := r.q.Query(ctx, selectBlog+` ORDER BY b.seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Blog{}
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *blogsRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT count(*) FROM blogs`).Scan(&n)
	return n, err
}

func (r *blogsRepo) UpdateLikes(ctx context.Context, id string, likes int64) (models.Blog, error) {
	return r.updateThenGet(ctx, id, `UPDATE blogs SET likes=$2 WHERE id=$1`, likes)
}

func (r *blogsRepo) AppendComment(ctx context.Context, id, comment string) (models.Blog, error) {
	return r.updateThenGet(ctx, id, `UPDATE blogs SET comments = array_append(comments, $2) WHERE id=$1`, comment)
}

func (r *blogsRepo) updateThenGet(ctx context.Context, id, q string, arg any) (models.Blog, error) {
	tag, err := r.q.Exec(ctx, q, id, arg)
	if err != nil {
		return models.Blog{}, err
	}
	if tag.RowsAffected() == 0 {
		return models.Blog{}, repository.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *blogsRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM blogs WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
