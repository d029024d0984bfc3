package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/baharkarakas/bloglist-backend/internal/models"
	"github.com/baharkarakas/bloglist-backend/internal/repository"
	"github.com/google/uuid"
)

type blogsRepo struct{ q querier }

const selectBlog = `
SELECT b.id, b.title, b.author, b.url, b.likes, b.comments, u.id, u.username, u.name
FROM blogs b
LEFT JOIN users u ON u.id = b.user_id`

type scanner interface {
	Scan(dest ...any) error
}

func scanBlog(row scanner) (models.Blog, error) {
	var b models.Blog
	var comments string
	var uid, uname, name sql.NullString
	if err := row.Scan(&b.ID, &b.Title, &b.Author, &b.URL, &b.Likes, &comments, &uid, &uname, &name); err != nil {
		return models.Blog{}, err
	}
	if err := json.Unmarshal([]byte(comments), &b.Comments); err != nil {
		return models.Blog{}, err
	}
	if b.Comments == nil {
		b.Comments = []string{}
	}
	if uid.Valid {
		b.User = &models.UserSummary{ID: uid.String, Username: uname.String, Name: name.String}
	}
	return b, nil
}

func (r *blogsRepo) Create(ctx context.Context, b *models.Blog) error {
	id := uuid.NewString()
	if b.Comments == nil {
		b.Comments = []string{}
	}
	comments, err := json.Marshal(b.Comments)
	if err != nil {
		return err
	}
	var owner sql.NullString
	if b.User != nil {
		owner = sql.NullString{String: b.User.ID, Valid: true}
	}
	_, err = r.q.ExecContext(ctx,
		`INSERT INTO blogs(id, title, author, url, likes, user_id, comments) VALUES(?, ?, ?, ?, ?, ?, ?)`,
		id, b.Title, b.Author, b.URL, b.Likes, owner, string(comments),
	)
	if isForeignKeyErr(err) {
		return repository.ErrNotFound
	}
	if err != nil {
		return err
	}
	b.ID = id
	return nil
}

func (r *blogsRepo) GetByID(ctx context.Context, id string) (models.Blog, error) {
	b, err := scanBlog(r.q.QueryRowContext(ctx, selectBlog+` WHERE b.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Blog{}, repository.ErrNotFound
	}
	return b, err
}

func (r *blogsRepo) List(ctx context.Context) ([]models.Blog, error) {
	rows, err := r.q.QueryContext(ctx, selectBlog+` ORDER BY b.rowid`)
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
	err := r.q.QueryRowContext(ctx, `SELECT count(*) FROM blogs`).Scan(&n)
	return n, err
}

func (r *blogsRepo) UpdateLikes(ctx context.Context, id string, likes int64) (models.Blog, error) {
	res, err := r.q.ExecContext(ctx, `UPDATE blogs SET likes = ? WHERE id = ?`, likes, id)
	if err != nil {
		return models.Blog{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.Blog{}, repository.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// AppendComment uses json_insert so the append happens in one statement.
func (r *blogsRepo) AppendComment(ctx context.Context, id, comment string) (models.Blog, error) {
	res, err := r.q.ExecContext(ctx,
		`UPDATE blogs SET comments = json_insert(comments, '$[#]', ?) WHERE id = ?`, comment, id)
	if err != nil {
		return models.Blog{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.Blog{}, repository.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *blogsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM blogs WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
