package sqlstore

import (
	"context"

	"gorm.io/gorm"

	"iqscaler/backend/models"
	"iqscaler/backend/store"
)

type configs struct {
	db *gorm.DB
}

// Get returns the oldest configuration row; only one is expected.
func (r configs) Get(ctx context.Context) (models.TestConfig, error) {
	var c models.TestConfig
	err := r.db.WithContext(ctx).Order("created_at ASC").First(&c).Error
	return c, translate(err)
}

func (r configs) Create(ctx context.Context, c *models.TestConfig) error {
	if c.ID == "" {
		c.ID = newID()
	}
	return translate(r.db.WithContext(ctx).Create(c).Error)
}

func (r configs) Save(ctx context.Context, c *models.TestConfig) error {
	return translate(r.db.WithContext(ctx).Save(c).Error)
}

var _ store.Configs = configs{}
