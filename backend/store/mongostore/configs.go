package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"iqscaler/backend/models"
	"iqscaler/backend/store"
)

type configs struct {
	coll *mongo.Collection
}

func (r configs) Get(ctx context.Context) (models.TestConfig, error) {
	var c models.TestConfig
	err := r.coll.FindOne(ctx, bson.D{},
		options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: 1}}),
	).Decode(&c)
	return c, translate(err)
}

func (r configs) Create(ctx context.Context, c *models.TestConfig) error {
	if c.ID == "" {
		c.ID = newID()
	}
	c.CreatedAt, c.UpdatedAt = now(), now()
	_, err := r.coll.InsertOne(ctx, c)
	return translate(err)
}

func (r configs) Save(ctx context.Context, c *models.TestConfig) error {
	c.UpdatedAt = now()
	return replaceByID(ctx, r.coll, c.ID, c)
}

var _ store.Configs = configs{}
