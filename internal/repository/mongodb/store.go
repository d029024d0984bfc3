package mongodb

import (
	"context"

	repo "github.com/baharkarakas/bloglist-backend/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	client       *mongo.Client
	users        *mongo.Collection
	blogs        *mongo.Collection
	transactions bool
}

// Open binds the users and blogs collections of database and ensures the
// unique username index. transactions=false runs paired writes without a
// session, for standalone servers that cannot start one.
func Open(ctx context.Context, client *mongo.Client, database string, transactions bool) (*Store, error) {
	db := client.Database(database)
	s := &Store{
		client:       client,
		users:        db.Collection("users"),
		blogs:        db.Collection("blogs"),
		transactions: transactions,
	}
	_, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) Users() repo.Users { return &usersRepo{s: s} }
func (s *Store) Blogs() repo.Blogs { return &blogsRepo{s: s} }

func (s *Store) WithTx(ctx context.Context, fn func(context.Context, repo.Store) error) error {
	if !s.transactions || mongo.SessionFromContext(ctx) != nil {
		return fn(ctx, s)
	}
	sess, err := s.client.StartSession()
	if err != nil {
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc, s)
	})
	return err
}

func (s *Store) Reset(ctx context.Context) error {
	if _, err := s.users.DeleteMany(ctx, bson.M{}); err != nil {
		return err
	}
	_, err := s.blogs.DeleteMany(ctx, bson.M{})
	return err
}

func (s *Store) Close() error {
	return s.client.Disconnect(context.Background())
}

// objectID maps unparsable ids to ErrNotFound: no document can carry them.
func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, repo.ErrNotFound
	}
	return oid, nil
}
