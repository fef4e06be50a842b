package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"iqscaler/backend/models"
	"iqscaler/backend/store"
)

type payments struct {
	coll  *mongo.Collection
	users users
}

func (r payments) Create(ctx context.Context, p *models.Payment) error {
	if p.ID == "" {
		p.ID = newID()
	}
	if p.Status == "" {
		p.Status = models.PaymentPending
	}
	p.CreatedAt, p.UpdatedAt = now(), now()
	_, err := r.coll.InsertOne(ctx, p)
	return translate(err)
}

func (r payments) FindByOrderID(ctx context.Context, orderID string) (models.Payment, error) {
	var p models.Payment
	err := r.coll.FindOne(ctx, bson.M{"razorpayOrderId": orderID}).Decode(&p)
	return p, translate(err)
}

func (r payments) MarkFailed(ctx context.Context, orderID string) (bool, error) {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"razorpayOrderId": orderID, "status": models.PaymentPending},
		bson.M{"$set": bson.M{"status": models.PaymentFailed, "updatedAt": now()}},
	)
	if err != nil {
		return false, translate(err)
	}
	return res.ModifiedCount > 0, nil
}

func (r payments) List(ctx context.Context) ([]models.Payment, error) {
	cur, err := r.coll.Find(ctx, bson.D{}, newestFirst)
	if err != nil {
		return nil, translate(err)
	}
	var out []models.Payment
	if err := cur.All(ctx, &out); err != nil {
		return nil, translate(err)
	}
	ids := make([]string, 0, len(out))
	for _, p := range out {
		ids = append(ids, p.UserID)
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

var _ store.Payments = payments{}
