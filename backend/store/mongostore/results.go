package mongostore

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"iqscaler/backend/models"
	"iqscaler/backend/store"
)

type results struct {
	client   *mongo.Client
	coll     *mongo.Collection
	users    users
	payments *mongo.Collection
}

func (r results) Create(ctx context.Context, res *models.Result) error {
	if res.ID == "" {
		res.ID = newID()
	}
	if res.DifficultyBreakdown == nil {
		res.DifficultyBreakdown = models.NewBreakdown()
	}
	if res.CreatedAt.IsZero() {
		res.CreatedAt = now()
	}
	res.UpdatedAt = now()
	_, err := r.coll.InsertOne(ctx, res)
	return translate(err)
}

func (r results) Get(ctx context.Context, id string) (models.Result, error) {
	var res models.Result
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&res); err != nil {
		return res, translate(err)
	}
	owners, err := r.users.Summaries(ctx, []string{res.UserID})
	if err != nil {
		return res, err
	}
	if u, ok := owners[res.UserID]; ok {
		res.User = &u
	}
	return res, nil
}

func (r results) ListByUser(ctx context.Context, userID string) ([]models.Result, error) {
	cur, err := r.coll.Find(ctx, bson.M{"user": userID}, newestFirst)
	if err != nil {
		return nil, translate(err)
	}
	var out []models.Result
	return out, translate(cur.All(ctx, &out))
}

func (r results) ListAll(ctx context.Context) ([]models.Result, error) {
	cur, err := r.coll.Find(ctx, bson.D{}, newestFirst)
	if err != nil {
		return nil, translate(err)
	}
	var out []models.Result
	if err := cur.All(ctx, &out); err != nil {
		return nil, translate(err)
	}
	ids := make([]string, 0, len(out))
	for _, res := range out {
		ids = append(ids, res.UserID)
	}
	owners, err := r.users.Summaries(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		if u, ok := owners[out[i].UserID]; ok {
			u := u
			out[i].User = &u
		}
	}
	return out, nil
}

func (r results) Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "totalScore", Value: -1}, {Key: "createdAt", Value: -1}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$user"},
			{Key: "maxScore", Value: bson.M{"$first": "$totalScore"}},
			{Key: "testDate", Value: bson.M{"$first": "$createdAt"}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "maxScore", Value: -1}, {Key: "_id", Value: 1}}}},
		{{Key: "$limit", Value: limit}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: usersCollection},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "owner"},
		}}},
		{{Key: "$unwind", Value: "$owner"}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "userId", Value: "$_id"},
			{Key: "username", Value: "$owner.username"},
			{Key: "maxScore", Value: 1},
			{Key: "testDate", Value: 1},
		}}},
	}
	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, translate(err)
	}
	out := []models.LeaderboardEntry{}
	return out, translate(cur.All(ctx, &out))
}

type purchase struct {
	result  models.Result
	updated bool
}

func (r results) ConfirmPurchase(ctx context.Context, resultID, orderID, paymentID string) (models.Result, bool, error) {
	sess, err := r.client.StartSession()
	if err != nil {
		return models.Result{}, false, translate(err)
	}
	defer sess.EndSession(ctx)

	out, err := sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		var res models.Result
		err := r.coll.FindOneAndUpdate(sc,
			bson.M{"_id": resultID},
			bson.M{"$set": bson.M{
				"certificatePurchased": true,
				"paymentId":            paymentID,
				"orderId":              orderID,
				"updatedAt":            now(),
			}},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&res)
		if err != nil {
			return nil, err
		}

		upd, err := r.payments.UpdateOne(sc,
			bson.M{"razorpayOrderId": orderID, "status": models.PaymentPending},
			bson.M{"$set": bson.M{
				"status":            models.PaymentSuccess,
				"razorpayPaymentId": paymentID,
				"updatedAt":         now(),
			}},
		)
		if err != nil {
			return nil, err
		}
		return purchase{result: res, updated: upd.ModifiedCount > 0}, nil
	})
	if err != nil {
		return models.Result{}, false, translate(err)
	}
	p, ok := out.(purchase)
	if !ok {
		return models.Result{}, false, errors.New("unexpected transaction result")
	}
	owners, err := r.users.Summaries(ctx, []string{p.result.UserID})
	if err != nil {
		return models.Result{}, false, err
	}
	if u, ok := owners[p.result.UserID]; ok {
		p.result.User = &u
	}
	return p.result, p.updated, nil
}

var _ store.Results = results{}
