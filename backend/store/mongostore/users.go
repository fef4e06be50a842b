package mongostore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"iqscaler/backend/models"
	"iqscaler/backend/store"
)

type users struct {
	coll *mongo.Collection
}

func (r users) Create(ctx context.Context, u *models.User) error {
	if u.ID == "" {
		u.ID = newID()
	}
	u.CreatedAt, u.UpdatedAt = now(), now()
	_, err := r.coll.InsertOne(ctx, u)
	return translate(err)
}

func (r users) findOne(ctx context.Context, filter interface{}) (models.User, error) {
	var u models.User
	err := r.coll.FindOne(ctx, filter).Decode(&u)
	return u, translate(err)
}

func (r users) Get(ctx context.Context, id string) (models.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r users) FindByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r users) FindByResetToken(ctx context.Context, tokenHash string, at time.Time) (models.User, error) {
	return r.findOne(ctx, bson.M{
		"resetPasswordToken":  tokenHash,
		"resetPasswordExpire": bson.M{"$gt": at},
	})
}

func (r users) Save(ctx context.Context, u *models.User) error {
	u.UpdatedAt = now()
	return replaceByID(ctx, r.coll, u.ID, u)
}

func (r users) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.coll, id)
}

func (r users) List(ctx context.Context) ([]models.User, error) {
	cur, err := r.coll.Find(ctx, bson.D{}, newestFirst)
	if err != nil {
		return nil, translate(err)
	}
	var out []models.User
	return out, translate(cur.All(ctx, &out))
}

func (r users) Summaries(ctx context.Context, ids []string) (map[string]models.UserSummary, error) {
	out := make(map[string]models.UserSummary, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	cur, err := r.coll.Find(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetProjection(bson.M{"username": 1, "email": 1}),
	)
	if err != nil {
		return nil, translate(err)
	}
	var found []models.UserSummary
	if err := cur.All(ctx, &found); err != nil {
		return nil, translate(err)
	}
	for _, u := range found {
		out[u.ID] = u
	}
	return out, nil
}

var _ store.Users = users{}
