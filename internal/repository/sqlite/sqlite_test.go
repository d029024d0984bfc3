package sqlite

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/bloglist-backend/internal/models"
	"github.com/baharkarakas/bloglist-backend/internal/repository"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func createUser(t *testing.T, st *Store, username string) models.User {
	t.Helper()
	u := models.User{Username: username, Name: "Name " + username, PasswordHash: "hash"}
	require.NoError(t, st.Users().Create(context.Background(), &u))
	return u
}

func TestUserLifecycle(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	u := createUser(t, st, "root")
	require.NotEmpty(t, u.ID)

	got, err := st.Users().GetByUsername(ctx, "root")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "hash", got.PasswordHash)
	assert.Empty(t, got.Blogs)
	assert.NotNil(t, got.Blogs)

	dup := models.User{Username: "root", PasswordHash: "x"}
	assert.ErrorIs(t, st.Users().Create(ctx, &dup), repository.ErrDuplicateUsername)

	_, err = st.Users().GetByID(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	n, err := st.Users().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestBlogLifecycle(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	u := createUser(t, st, "root")

	summary := u.Summary()
	b := models.Blog{Title: "Go", Author: "Rob", URL: "https://go.dev", Likes: 3, User: &summary}
	require.NoError(t, st.Blogs().Create(ctx, &b))
	require.NotEmpty(t, b.ID)

	got, err := st.Blogs().GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Go", got.Title)
	require.NotNil(t, got.User)
	assert.Equal(t, "root", got.User.Username)
	assert.Equal(t, []string{}, got.Comments)

	got, err = st.Blogs().UpdateLikes(ctx, b.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(10), got.Likes)

	_, err = st.Blogs().AppendComment(ctx, b.ID, "first")
	require.NoError(t, err)
	got, err = st.Blogs().AppendComment(ctx, b.ID, "first")
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "first"}, got.Comments)

	_, err = st.Blogs().UpdateLikes(ctx, "missing", 1)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = st.Blogs().AppendComment(ctx, "missing", "x")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, st.Blogs().Delete(ctx, b.ID))
	assert.ErrorIs(t, st.Blogs().Delete(ctx, b.ID), repository.ErrNotFound)
}

func TestOwnedSetOrderAndUniqueness(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	u := createUser(t, st, "root")

	var ids []string
	for i := 0; i < 3; i++ {
		b := models.Blog{Title: fmt.Sprintf("b%d", i), URL: "u"}
		require.NoError(t, st.Blogs().Create(ctx, &b))
		require.NoError(t, st.Users().AppendBlog(ctx, u.ID, b.ID))
		ids = append(ids, b.ID)
	}
	require.NoError(t, st.Users().AppendBlog(ctx, u.ID, ids[0]))

	got, err := st.Users().GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, got.Blogs, 3)
	for i, b := range got.Blogs {
		assert.Equal(t, ids[i], b.ID)
	}

	require.NoError(t, st.Users().RemoveBlog(ctx, u.ID, ids[1]))
	require.NoError(t, st.Users().RemoveBlog(ctx, u.ID, ids[1]))
	got, err = st.Users().GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, got.HasBlog(ids[1]))
	assert.Len(t, got.Blogs, 2)

	assert.ErrorIs(t, st.Users().AppendBlog(ctx, "missing", ids[0]), repository.ErrNotFound)

	users, err := st.Users().List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Len(t, users[0].Blogs, 2)
}

func TestWithTxRollsBack(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := st.WithTx(ctx, func(ctx context.Context, tx repository.Store) error {
		b := models.Blog{Title: "t", URL: "u"}
		if err := tx.Blogs().Create(ctx, &b); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	n, err := st.Blogs().Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestReset(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	u := createUser(t, st, "root")
	b := models.Blog{Title: "t", URL: "u"}
	require.NoError(t, st.Blogs().Create(ctx, &b))
	require.NoError(t, st.Users().AppendBlog(ctx, u.ID, b.ID))

	require.NoError(t, st.Reset(ctx))

	users, err := st.Users().Count(ctx)
	require.NoError(t, err)
	blogs, err := st.Blogs().Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, users)
	assert.Zero(t, blogs)
}
