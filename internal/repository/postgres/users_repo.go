// internal/repository/postgres/users_repo.go
package postgres

import (
	"context"
	"errors"

	"github.com/baharkarakas/bloglist-backend/internal/models"
	"github.com/baharkarakas/bloglist-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type usersRepo struct{ q querier }

func (r *usersRepo) Create(ctx context.Context, u *models.User) error {
	id := uuid.NewString()
	_, err := r.q.Exec(ctx,
		`INSERT INTO users(id, username, name, password_hash) VALUES($1,$2,$3,$4)`,
		id, u.Username, u.Name, u.PasswordHash,
	)
	if isUniqueViolation(err) {
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
	return r.getOne(ctx, `SELECT id, username, name, password_hash FROM users WHERE id=$1`, id)
}

func (r *usersRepo) GetByUsername(ctx context.Context, username string) (models.User, error) {
	return r.getOne(ctx, `SELECT id, username, name, password_hash FROM users WHERE username=$1`, username)
}

func (r *usersRepo) getOne(ctx context.Context, q string, arg string) (models.User, error) {
	var u models.User
	err := r.q.QueryRow(ctx, q, arg).Scan(&u.ID, &u.Username, &u.Name, &u.PasswordHash)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.User{}, repository.ErrNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	owned, err := r.ownedBlogs(ctx, u.ID)
	if err != nil {
		return models.User{}, err
	}
	u.Blogs = owned[u.ID]
	if u.Blogs == nil {
		u.Blogs = []models.BlogSummary{}
	}
	return u, nil
}

func (r *usersRepo) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.q.Query(ctx, `SELECT id, username, name, password_hash FROM users ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Name, &u.PasswordHash); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	owned, err := r.ownedBlogs(ctx, "")
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Blogs = owned[out[i].ID]
		if out[i].Blogs == nil {
			out[i].Blogs = []models.BlogSummary{}
		}
	}
	return out, nil
}

// ownedBlogs groups populated blog summaries by owner; userID "" means all users.
func (r *usersRepo) ownedBlogs(ctx context.Context, userID string) (map[string][]models.BlogSummary, error) {
	rows, err := r.q.Query(ctx,
		`SELECT ub.user_id, b.id, b.title, b.author, b.url
		   FROM user_blogs ub
		   JOIN blogs b ON b.id = ub.blog_id
		  WHERE $1 = '' OR ub.user_id = $1
		  ORDER BY ub.seq`, userID)
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

func (r *usersRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&n)
	return n, err
}

func (r *usersRepo) AppendBlog(ctx context.Context, userID, blogID string) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO user_blogs(user_id, blog_id) VALUES($1,$2) ON CONFLICT DO NOTHING`,
		userID, blogID,
	)
	if isForeignKeyViolation(err) {
		return repository.ErrNotFound
	}
	return err
}

func (r *usersRepo) RemoveBlog(ctx context.Context, userID, blogID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM user_blogs WHERE user_id=$1 AND blog_id=$2`, userID, blogID)
	return err
}
