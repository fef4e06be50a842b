// Package mongostore implements the store contracts on MongoDB.
package mongostore

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"iqscaler/backend/store"
)

const (
	usersCollection     = "users"
	questionsCollection = "questions"
	configsCollection   = "testconfigs"
	resultsCollection   = "results"
	paymentsCollection  = "payments"
)

type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

var _ store.Store = (*Store)(nil)

// Connect dials uri, verifies the connection and ensures indexes.
// ConfirmPurchase needs a replica set or sharded cluster for transactions.
func Connect(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetRegistry(newRegistry()))
	if err != nil {
		return nil, errors.Wrap(err, "connect mongo")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(err, "ping mongo")
	}
	s := &Store{client: client, db: client.Database(database)}
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return s, nil
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	unique := func(coll string, field string) error {
		_, err := s.db.Collection(coll).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: field, Value: 1}},
			Options: options.Index().SetUnique(true),
		})
		return errors.Wrapf(err, "index %s.%s", coll, field)
	}
	plain := func(coll string, keys bson.D) error {
		_, err := s.db.Collection(coll).Indexes().CreateOne(ctx, mongo.IndexModel{Keys: keys})
		return errors.Wrapf(err, "index %s", coll)
	}

	for _, step := range []func() error{
		func() error { return unique(usersCollection, "email") },
		func() error { return unique(usersCollection, "username") },
		func() error { return unique(configsCollection, "name") },
		func() error { return unique(paymentsCollection, "razorpayOrderId") },
		func() error { return plain(questionsCollection, bson.D{{Key: "difficulty", Value: 1}}) },
		func() error {
			return plain(resultsCollection, bson.D{{Key: "user", Value: 1}, {Key: "createdAt", Value: -1}})
		},
	} {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) Users() store.Users {
	return users{coll: s.db.Collection(usersCollection)}
}

func (s *Store) Questions() store.Questions {
	return questions{coll: s.db.Collection(questionsCollection)}
}

func (s *Store) Configs() store.Configs {
	return configs{coll: s.db.Collection(configsCollection)}
}

func (s *Store) Results() store.Results {
	return results{
		client:   s.client,
		coll:     s.db.Collection(resultsCollection),
		users:    users{coll: s.db.Collection(usersCollection)},
		payments: s.db.Collection(paymentsCollection),
	}
}

func (s *Store) Payments() store.Payments {
	return payments{
		coll:  s.db.Collection(paymentsCollection),
		users: users{coll: s.db.Collection(usersCollection)},
	}
}

func (s *Store) Close(ctx context.Context) error {
	return errors.WithStack(s.client.Disconnect(ctx))
}

func newID() string { return primitive.NewObjectID().Hex() }

func now() time.Time { return time.Now().UTC() }

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return errors.WithStack(store.ErrNotFound)
	case mongo.IsDuplicateKeyError(err):
		return errors.WithStack(store.ErrDuplicate)
	}
	return errors.WithStack(err)
}

// replaceByID overwrites the document and reports ErrNotFound when nothing
// matched.
func replaceByID(ctx context.Context, coll *mongo.Collection, id string, doc interface{}) error {
	res, err := coll.ReplaceOne(ctx, bson.M{"_id": id}, doc)
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return errors.WithStack(store.ErrNotFound)
	}
	return nil
}

func deleteByID(ctx context.Context, coll *mongo.Collection, id string) error {
	res, err := coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translate(err)
	}
	if res.DeletedCount == 0 {
		return errors.WithStack(store.ErrNotFound)
	}
	return nil
}

var newestFirst = options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
