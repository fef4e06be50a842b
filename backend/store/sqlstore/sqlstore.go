// Package sqlstore implements the store contracts on gorm, backed by
// PostgreSQL in production and SQLite for development and tests.
package sqlstore

import (
	"context"
	"strings"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"iqscaler/backend/config"
	"iqscaler/backend/models"
	"iqscaler/backend/store"
)

type Store struct {
	db *gorm.DB
}

var _ store.Store = (*Store)(nil)

// Open connects using the configured driver and migrates the schema.
func Open(cfg *config.Config) (*Store, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.PostgresDSN())
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.SQLitePath)
	default:
		return nil, errors.Errorf("sqlstore: unsupported driver %q", cfg.DBDriver)
	}
	return OpenDialector(dialector)
}

func OpenDialector(dialector gorm.Dialector) (*Store, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Question{},
		&models.TestConfig{},
		&models.Result{},
		&models.Payment{},
	); err != nil {
		return nil, errors.Wrap(err, "migrate database")
	}
	return &Store{db: db}, nil
}

func (s *Store) DB() *gorm.DB { return s.db }

func (s *Store) Users() store.Users         { return users{db: s.db} }
func (s *Store) Questions() store.Questions { return questions{db: s.db} }
func (s *Store) Configs() store.Configs     { return configs{db: s.db} }
func (s *Store) Results() store.Results     { return results{db: s.db} }
func (s *Store) Payments() store.Payments   { return payments{db: s.db} }

func (s *Store) Close(context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(sqlDB.Close())
}

func newID() string { return uuid.NewString() }

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errors.WithStack(store.ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey), isUniqueViolation(err):
		return errors.WithStack(store.ErrDuplicate)
	}
	return errors.WithStack(err)
}

func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}

func attachUsers(ctx context.Context, db *gorm.DB, ids []string) (map[string]models.UserSummary, error) {
	return users{db: db}.Summaries(ctx, ids)
}
