package mongodb

import (
	"context"
	"errors"

	"github.com/baharkarakas/bloglist-backend/internal/models"
	"github.com/baharkarakas/bloglist-backend/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type usersRepo struct{ s *Store }

func (r *usersRepo) Create(ctx context.Context, u *models.User) error {
	doc := userDoc{
		ID:           primitive.NewObjectID(),
		Username:     u.Username,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		Blogs:        []primitive.ObjectID{},
	}
	if _, err := r.s.users.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicateUsername
		}
		return err
	}
	u.ID = doc.ID.Hex()
	u.Blogs = []models.BlogSummary{}
	return nil
}

func (r *usersRepo) GetByID(ctx context.Context, id string) (models.User, error) {
	oid, err := objectID(id)
	if err != nil {
		return models.User{}, err
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *usersRepo) GetByUsername(ctx context.Context, username string) (models.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *usersRepo) findOne(ctx context.Context, filter bson.M) (models.User, error) {
	var doc userDoc
	if err := r.s.users.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, repository.ErrNotFound
		}
		return models.User{}, err
	}
	blogs, err := r.blogsByID(ctx, doc.Blogs)
	if err != nil {
		return models.User{}, err
	}
	return doc.model(blogs), nil
}

func (r *usersRepo) List(ctx context.Context) ([]models.User, error) {
	cur, err := r.s.users.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var docs []userDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	var ids []primitive.ObjectID
	for _, d := range docs {
		ids = append(ids, d.Blogs...)
	}
	blogs, err := r.blogsByID(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]models.User, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.model(blogs))
	}
	return out, nil
}

// blogsByID is the populate step: title, author and url of the referenced blogs.
func (r *usersRepo) blogsByID(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]blogDoc, error) {
	out := map[primitive.ObjectID]blogDoc{}
	if len(ids) == 0 {
		return out, nil
	}
	cur, err := r.s.blogs.Find(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetProjection(bson.M{"title": 1, "author": 1, "url": 1}),
	)
	if err != nil {
		return nil, err
	}
	var docs []blogDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	for _, d := range docs {
		out[d.ID] = d
	}
	return out, nil
}

func (r *usersRepo) Count(ctx context.Context) (int, error) {
	n, err := r.s.users.CountDocuments(ctx, bson.M{})
	return int(n), err
}

// AppendBlog uses $addToSet: insertion order is kept and repeats are ignored.
func (r *usersRepo) AppendBlog(ctx context.Context, userID, blogID string) error {
	return r.updateBlogs(ctx, userID, blogID, "$addToSet")
}

func (r *usersRepo) RemoveBlog(ctx context.Context, userID, blogID string) error {
	err := r.updateBlogs(ctx, userID, blogID, "$pull")
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	return err
}

func (r *usersRepo) updateBlogs(ctx context.Context, userID, blogID, op string) error {
	uid, err := objectID(userID)
	if err != nil {
		return err
	}
	bid, err := objectID(blogID)
	if err != nil {
		return err
	}
	res, err := r.s.users.UpdateByID(ctx, uid, bson.M{op: bson.M{"blogs": bid}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
