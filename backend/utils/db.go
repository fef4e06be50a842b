package utils

import (
	"context"

	"iqscaler/backend/config"
	"iqscaler/backend/store"
	"iqscaler/backend/store/mongostore"
	"iqscaler/backend/store/sqlstore"
)

// InitDB opens the store selected by DB_DRIVER.
func InitDB(ctx context.Context, cfg *config.Config) (store.Store, error) {
	if cfg.DBDriver == config.DriverMongo {
		s, err := mongostore.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	s, err := sqlstore.Open(cfg)
	if err != nil {
		return nil, err
	}
	return s, nil
}
