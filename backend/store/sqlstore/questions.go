package sqlstore

import (
	"context"

	"gorm.io/gorm"

	"iqscaler/backend/models"
	"iqscaler/backend/store"
)

type questions struct {
	db *gorm.DB
}

func (r questions) Create(ctx context.Context, q *models.Question) error {
	if q.ID == "" {
		q.ID = newID()
	}
	return translate(r.db.WithContext(ctx).Create(q).Error)
}

func (r questions) Save(ctx context.Context, q *models.Question) error {
	return translate(r.db.WithContext(ctx).Save(q).Error)
}

func (r questions) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Question{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound)
	}
	return nil
}

func (r questions) Get(ctx context.Context, id string) (models.Question, error) {
	var q models.Question
	err := r.db.WithContext(ctx).First(&q, "id = ?", id).Error
	return q, translate(err)
}

func (r questions) List(ctx context.Context) ([]models.Question, error) {
	var out []models.Question
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error
	return out, translate(err)
}

func (r questions) Categories(ctx context.Context) ([]string, error) {
	var out []string
	err := r.db.WithContext(ctx).
		Model(&models.Question{}).
		Distinct().
		Order("category ASC").
		Pluck("category", &out).Error
	return out, translate(err)
}

// Sample relies on ORDER BY RANDOM(), available in both PostgreSQL and
// SQLite.
func (r questions) Sample(ctx context.Context, difficulty models.Difficulty, size int, exclude []string) ([]models.Question, error) {
	if size <= 0 {
		return nil, nil
	}
	q := r.db.WithContext(ctx).Model(&models.Question{})
	if difficulty != "" {
		q = q.Where("difficulty = ?", difficulty)
	}
	if len(exclude) > 0 {
		q = q.Where("id NOT IN ?", exclude)
	}
	var out []models.Question
	err := q.Order("RANDOM()").Limit(size).Find(&out).Error
	return out, translate(err)
}

func (r questions) FindByIDs(ctx context.Context, ids []string) ([]models.Question, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var out []models.Question
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&out).Error
	return out, translate(err)
}

var _ store.Questions = questions{}
