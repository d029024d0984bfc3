package mongodb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/baharkarakas/bloglist-backend/internal/repository"
)

func TestUserDocPopulatesInOrder(t *testing.T) {
	b1 := blogDoc{ID: primitive.NewObjectID(), Title: "one", URL: "u1"}
	b2 := blogDoc{ID: primitive.NewObjectID(), Title: "two", URL: "u2"}
	gone := primitive.NewObjectID()

	u := userDoc{
		ID:       primitive.NewObjectID(),
		Username: "root",
		Blogs:    []primitive.ObjectID{b2.ID, gone, b1.ID},
	}
	m := u.model(map[primitive.ObjectID]blogDoc{b1.ID: b1, b2.ID: b2})

	require.Len(t, m.Blogs, 2)
	assert.Equal(t, "two", m.Blogs[0].Title)
	assert.Equal(t, "one", m.Blogs[1].Title)
	assert.Equal(t, u.ID.Hex(), m.ID)
}

func TestBlogDocModel(t *testing.T) {
	owner := userDoc{ID: primitive.NewObjectID(), Username: "root", Name: "Superuser"}
	b := blogDoc{ID: primitive.NewObjectID(), Title: "t", User: &owner.ID}

	m := b.model(map[primitive.ObjectID]userDoc{owner.ID: owner})
	require.NotNil(t, m.User)
	assert.Equal(t, "root", m.User.Username)
	assert.Equal(t, []string{}, m.Comments)

	// owner missing from the lookup still keeps the reference
	m = b.model(nil)
	require.NotNil(t, m.User)
	assert.Equal(t, owner.ID.Hex(), m.User.ID)

	m = blogDoc{ID: primitive.NewObjectID()}.model(nil)
	assert.Nil(t, m.User)
}

func TestObjectIDRejectsMalformed(t *testing.T) {
	_, err := objectID("nope")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	id := primitive.NewObjectID()
	got, err := objectID(id.Hex())
	require.NoError(t, err)
	assert.Equal(t, id, got)
}
