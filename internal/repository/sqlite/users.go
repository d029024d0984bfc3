package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/baharkarakas/bloglist-backend/internal/models"
	"github.com/baharkarakas/bloglist-backend/internal/repository"
	"github.com/google/uuid"
)

type usersRepo struct{ q querier }

func (r *usersRepo) Create(ctx context.Context, u *models.User) error {
	id := uuid.NewString()
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO users(id, username, name, password_hash) VALUES(?, ?, ?, ?)`,
		id, u.Username, u.Name, u.PasswordHash,
	)
	if isUniqueErr(err) {
		return repository.ErrDuplicateUsername
	}
	if err != nil {
		return err
	}
	u.ID = id
	u.Blogs = []models.BlogSummary{}
	return nil
}

func (r *usersRepo) GetByID(ctx context.Context, id string) (models.User, error) {
	return r.getOne(ctx, `SELECT id, username, name, password_hash FROM users WHERE id = ?`, id)
}

func (r *usersRepo) GetByUsername(ctx context.Context, username string) (models.User, error) {
	return r.getOne(ctx, `SELECT id, username, name, password_hash FROM users WHERE username = ?`, username)
}

func (r *usersRepo) getOne(ctx context.Context, q, arg string) (models.User, error) {
	var u models.User
	err := r.q.QueryRowContext(ctx, q, arg).Scan(&u.ID, &u.Username, &u.Name, &u.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, repository.ErrNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	owned, err := r.ownedBlogs(ctx, u.ID)
	if err != nil {
		return models.User{}, err
	}
	u.Blogs = nonNil(owned[u.ID])
	return u, nil
}

func (r *usersRepo) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT id, username, name, password_hash FROM users ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	out := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Name, &u.PasswordHash); err != nil {
			rows.Close()
			return nil, err
		}
		out = append(out, u)
	}
	// the single connection must be free before the next query
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	owned, err := r.ownedBlogs(ctx, "")
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Blogs = nonNil(owned[out[i].ID])
	}
	return out, nil
}

func (r *usersRepo) ownedBlogs(ctx context.Context, userID string) (map[string][]models.BlogSummary, error) {
	rows, err := r.q.QueryContext(ctx, `
SELECT ub.user_id, b.id, b.title, b.author, b.url
FROM user_blogs ub
JOIN blogs b ON b.id = ub.blog_id
WHERE ? = '' OR ub.user_id = ?
ORDER BY ub.rowid`, userID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string][]models.BlogSummary{}
	for rows.Next() {
		var owner string
		var b models.BlogSummary
		if err := rows.Scan(&owner, &b.ID, &b.Title, &b.Author, &b.URL); err != nil {
			return nil, err
		}
		out[owner] = append(out[owner], b)
	}
	return out, rows.Err()
}

func nonNil(b []models.BlogSummary) []models.BlogSummary {
	if b == nil {
		return []models.BlogSummary{}
	}
	return b
}

func (r *usersRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.q.QueryRowContext(ctx, `SELECT count(*) FROM users`).Scan(&n)
	return n, err
}

func (r *usersRepo) AppendBlog(ctx context.Context, userID, blogID string) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO user_blogs(user_id, blog_id) VALUES(?, ?) ON CONFLICT DO NOTHING`,
		userID, blogID,
	)
	if isForeignKeyErr(err) {
		return repository.ErrNotFound
	}
	return err
}

func (r *usersRepo) RemoveBlog(ctx context.Context, userID, blogID string) error {
	_, err := r.q.ExecContext(ctx, `DELETE FROM user_blogs WHERE user_id = ? AND blog_id = ?`, userID, blogID)
	return err
}
