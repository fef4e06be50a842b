package sqlstore

import (
	"context"
	"time"

	"gorm.io/gorm"

	"iqscaler/backend/models"
	"iqscaler/backend/store"
)

type users struct {
	db *gorm.DB
}

func (r users) Create(ctx context.Context, u *models.User) error {
	if u.ID == "" {
		u.ID = newID()
	}
	return translate(r.db.WithContext(ctx).Create(u).Error)
}

func (r users) Get(ctx context.Context, id string) (models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	return u, translate(err)
}

func (r users) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).First(&u, "email = ?", email).Error
	return u, translate(err)
}

func (r users) FindByResetToken(ctx context.Context, tokenHash string, now time.Time) (models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).
		Where("reset_password_token = ? AND reset_password_expire > ?", tokenHash, now).
		First(&u).Error
	return u, translate(err)
}

func (r users) Save(ctx context.Context, u *models.User) error {
	return translate(r.db.WithContext(ctx).Save(u).Error)
}

func (r users) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.User{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound)
	}
	return nil
}

func (r users) List(ctx context.Context) ([]models.User, error) {
	var out []models.User
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error
	return out, translate(err)
}

func (r users) Summaries(ctx context.Context, ids []string) (map[string]models.UserSummary, error) {
	out := make(map[string]models.UserSummary, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var found []models.User
	if err := r.db.WithContext(ctx).
		Select("id", "username", "email").
		Where("id IN ?", ids).
		Find(&found).Error; err != nil {
		return nil, translate(err)
	}
	for _, u := range found {
		out[u.ID] = u.Summary()
	}
	return out, nil
}

var _ store.Users = users{}
