package sqlstore

import (
	"context"

	"gorm.io/gorm"

	"iqscaler/backend/models"
	"iqscaler/backend/store"
)

type results struct {
	db *gorm.DB
}

func (r results) Create(ctx context.Context, res *models.Result) error {
	if res.ID == "" {
		res.ID = newID()
	}
	if res.DifficultyBreakdown == nil {
		res.DifficultyBreakdown = models.NewBreakdown()
	}
	return translate(r.db.WithContext(ctx).Create(res).Error)
}

func (r results) Get(ctx context.Context, id string) (models.Result, error) {
	var res models.Result
	if err := r.db.WithContext(ctx).First(&res, "id = ?", id).Error; err != nil {
		return res, translate(err)
	}
	owners, err := attachUsers(ctx, r.db, []string{res.UserID})
	if err != nil {
		return res, err
	}
	if u, ok := owners[res.UserID]; ok {
		res.User = &u
	}
	return res, nil
}

func (r results) ListByUser(ctx context.Context, userID string) ([]models.Result, error) {
	var out []models.Result
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error
	return out, translate(err)
}

func (r results) ListAll(ctx context.Context) ([]models.Result, error) {
	var out []models.Result
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, translate(err)
	}
	ids := make([]string, 0, len(out))
	for _, res := range out {
		ids = append(ids, res.UserID)
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

type bestScore struct {
	UserID   string
	MaxScore int
}

// Leaderboard ranks users by their best score. The reported date is the
// most recent attempt that reached that score. Users that no longer exist
// are dropped.
func (r results) Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	db := r.db.WithContext(ctx)

	var best []bestScore
	if err := db.Model(&models.Result{}).
		Select("user_id, MAX(total_score) AS max_score").
		Group("user_id").
		Order("max_score DESC").
		Order("user_id ASC").
		Limit(limit).
		Scan(&best).Error; err != nil {
		return nil, translate(err)
	}

	ids := make([]string, 0, len(best))
	for _, b := range best {
		ids = append(ids, b.UserID)
	}
	owners, err := attachUsers(ctx, r.db, ids)
	if err != nil {
		return nil, err
	}

	out := make([]models.LeaderboardEntry, 0, len(best))
	for _, b := range best {
		owner, ok := owners[b.UserID]
		if !ok {
			continue
		}
		var top models.Result
		if err := db.Where("user_id = ? AND total_score = ?", b.UserID, b.MaxScore).
			Order("created_at DESC").
			First(&top).Error; err != nil {
			return nil, translate(err)
		}
		out = append(out, models.LeaderboardEntry{
			UserID:   b.UserID,
			Username: owner.Username,
			MaxScore: b.MaxScore,
			TestDate: top.CreatedAt,
		})
	}
	return out, nil
}

func (r results) ConfirmPurchase(ctx context.Context, resultID, orderID, paymentID string) (models.Result, bool, error) {
	var (
		out     models.Result
		updated bool
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&out, "id = ?", resultID).Error; err != nil {
			return err
		}
		out.CertificatePurchased = true
		out.OrderID = &orderID
		out.PaymentID = &paymentID
		if err := tx.Save(&out).Error; err != nil {
			return err
		}

		res := tx.Model(&models.Payment{}).
			Where("razorpay_order_id = ? AND status = ?", orderID, models.PaymentPending).
			Updates(map[string]interface{}{
				"status":              models.PaymentSuccess,
				"razorpay_payment_id": paymentID,
			})
		if res.Error != nil {
			return res.Error
		}
		updated = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		return models.Result{}, false, translate(err)
	}
	owners, err := attachUsers(ctx, r.db, []string{out.UserID})
	if err != nil {
		return models.Result{}, false, err
	}
	if u, ok := owners[out.UserID]; ok {
		out.User = &u
	}
	return out, updated, nil
}

var _ store.Results = results{}
