package sqlstore

import (
	"context"

	"gorm.io/gorm"

	"iqscaler/backend/models"
	"iqscaler/backend/store"
)

type payments struct {
	db *gorm.DB
}

func (r payments) Create(ctx context.Context, p *models.Payment) error {
	if p.ID == "" {
		p.ID = newID()
	}
	if p.Status == "" {
		p.Status = models.PaymentPending
	}
	return translate(r.db.WithContext(ctx).Create(p).Error)
}

func (r payments) FindByOrderID(ctx context.Context, orderID string) (models.Payment, error) {
	var p models.Payment
	err := r.db.WithContext(ctx).First(&p, "razorpay_order_id = ?", orderID).Error
	return p, translate(err)
}

func (r payments) MarkFailed(ctx context.Context, orderID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("razorpay_order_id = ? AND status = ?", orderID, models.PaymentPending).
		Update("status", models.PaymentFailed)
	if res.Error != nil {
		return false, translate(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r payments) List(ctx context.Context) ([]models.Payment, error) {
	var out []models.Payment
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, translate(err)
	}
	ids := make([]string, 0, len(out))
	for _, p := range out {
		ids = append(ids, p.UserID)
	}
	owners, err := attachUsers(ctx, r.db, ids)
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
