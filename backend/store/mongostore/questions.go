package mongostore

import (
	"context"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"iqscaler/backend/models"
	"iqscaler/backend/store"
)

type questions struct {
	coll *mongo.Collection
}

func (r questions) Create(ctx context.Context, q *models.Question) error {
	if q.ID == "" {
		q.ID = newID()
	}
	q.CreatedAt, q.UpdatedAt = now(), now()
	_, err := r.coll.InsertOne(ctx, q)
	return translate(err)
}

func (r questions) Save(ctx context.Context, q *models.Question) error {
	q.UpdatedAt = now()
	return replaceByID(ctx, r.coll, q.ID, q)
}

func (r questions) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.coll, id)
}

func (r questions) Get(ctx context.Context, id string) (models.Question, error) {
	var q models.Question
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&q)
	return q, translate(err)
}

func (r questions) List(ctx context.Context) ([]models.Question, error) {
	cur, err := r.coll.Find(ctx, bson.D{}, newestFirst)
	if err != nil {
		return nil, translate(err)
	}
	var out []models.Question
	return out, translate(cur.All(ctx, &out))
}

func (r questions) Categories(ctx context.Context) ([]string, error) {
	raw, err := r.coll.Distinct(ctx, "category", bson.D{})
	if err != nil {
		return nil, translate(err)
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r questions) Sample(ctx context.Context, difficulty models.Difficulty, size int, exclude []string) ([]models.Question, error) {
	if size <= 0 {
		return nil, nil
	}
	match := bson.M{}
	if difficulty != "" {
		match["difficulty"] = difficulty
	}
	if len(exclude) > 0 {
		match["_id"] = bson.M{"$nin": exclude}
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sample", Value: bson.M{"size": size}}},
	}
	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, translate(err)
	}
	var out []models.Question
	return out, translate(cur.All(ctx, &out))
}

func (r questions) FindByIDs(ctx context.Context, ids []string) ([]models.Question, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, translate(err)
	}
	var out []models.Question
	return out, translate(cur.All(ctx, &out))
}

var _ store.Questions = questions{}
