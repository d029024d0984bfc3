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

type blogsRepo struct{ s *Store }

func (r *blogsRepo) Create(ctx context.Context, b *models.Blog) error {
	doc := blogDoc{
		ID:       primitive.NewObjectID(),
		Title:    b.Title,
		Author:   b.Author,
		URL:      b.URL,
		Likes:    b.Likes,
		Comments: b.Comments,
	}
	if doc.Comments == nil {
		doc.Comments = []string{}
	}
	if b.User != nil {
		uid, err := objectID(b.User.ID)
		if err != nil {
			return err
		}
		doc.User = &uid
	}
	if _, err := r.s.blogs.InsertOne(ctx, doc); err != nil {
		return err
	}
	b.ID = doc.ID.Hex()
	b.Comments = doc.Comments
	return nil
}

func (r *blogsRepo) GetByID(ctx context.Context, id string) (models.Blog, error) {
	oid, err := objectID(id)
	if err != nil {
		return models.Blog{}, err
	}
	var doc blogDoc
	if err := r.s.blogs.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Blog{}, repository.ErrNotFound
		}
		return models.Blog{}, err
	}
	return r.populate(ctx, doc)
}

func (r *blogsRepo) List(ctx context.Context) ([]models.Blog, error) {
	cur, err := r.s.blogs.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var docs []blogDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	var ids []primitive.ObjectID
	for _, d := range docs {
		if d.User != nil {
			ids = append(ids, *d.User)
		}
	}
	owners, err := r.ownersByID(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]models.Blog, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.model(owners))
	}
	return out, nil
}

func (r *blogsRepo) populate(ctx context.Context, doc blogDoc) (models.Blog, error) {
	if doc.User == nil {
		return doc.model(nil), nil
	}
	owners, err := r.ownersByID(ctx, []primitive.ObjectID{*doc.User})
	if err != nil {
		return models.Blog{}, err
	}
	return doc.model(owners), nil
}

func (r *blogsRepo) ownersByID(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]userDoc, error) {
	out := map[primitive.ObjectID]userDoc{}
	if len(ids) == 0 {
		return out, nil
	}
	cur, err := r.s.users.Find(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetProjection(bson.M{"username": 1, "name": 1}),
	)
	if err != nil {
		return nil, err
	}
	var docs []userDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	for _, d := range docs {
		out[d.ID] = d
	}
	return out, nil
}

func (r *blogsRepo) Count(ctx context.Context) (int, error) {
	n, err := r.s.blogs.CountDocuments(ctx, bson.M{})
	return int(n), err
}

func (r *blogsRepo) UpdateLikes(ctx context.Context, id string, likes int64) (models.Blog, error) {
	return r.findAndUpdate(ctx, id, bson.M{"$set": bson.M{"likes": likes}})
}

func (r *blogsRepo) AppendComment(ctx context.Context, id, comment string) (models.Blog, error) {
	return r.findAndUpdate(ctx, id, bson.M{"$push": bson.M{"comments": comment}})
}

func (r *blogsRepo) findAndUpdate(ctx context.Context, id string, update bson.M) (models.Blog, error) {
	oid, err := objectID(id)
	if err != nil {
		return models.Blog{}, err
	}
	var doc blogDoc
	err = r.s.blogs.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Blog{}, repository.ErrNotFound
	}
	if err != nil {
		return models.Blog{}, err
	}
	return r.populate(ctx, doc)
}

func (r *blogsRepo) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.s.blogs.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
