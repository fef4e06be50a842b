// Package store defines the persistence contracts shared by the SQL and
// document-store backends.
package store

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"iqscaler/backend/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

type Users interface {
	// Create fails with ErrDuplicate when the username or email is taken.
	Create(ctx context.Context, u *models.User) error
	Get(ctx context.Context, id string) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	// FindByResetToken matches a hashed reset token that expires after now.
	FindByResetToken(ctx context.Context, tokenHash string, now time.Time) (models.User, error)
	Save(ctx context.Context, u *models.User) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]models.User, error)
	Summaries(ctx context.Context, ids []string) (map[string]models.UserSummary, error)
}

type Questions interface {
	Create(ctx context.Context, q *models.Question) error
	Save(ctx context.Context, q *models.Question) error
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (models.Question, error)
	List(ctx context.Context) ([]models.Question, error)
	Categories(ctx context.Context) ([]string, error)
	// Sample draws up to size questions uniformly at random without
	// replacement. An empty difficulty samples the whole pool; ids in
	// exclude are never returned.
	Sample(ctx context.Context, difficulty models.Difficulty, size int, exclude []string) ([]models.Question, error)
	FindByIDs(ctx context.Context, ids []string) ([]models.Question, error)
}

type Configs interface {
	// Get returns the live configuration or ErrNotFound.
	Get(ctx context.Context) (models.TestConfig, error)
	Create(ctx context.Context, c *models.TestConfig) error
	Save(ctx context.Context, c *models.TestConfig) error
}

type Results interface {
	Create(ctx context.Context, r *models.Result) error
	// Get attaches the owner's summary when the user still exists.
	Get(ctx context.Context, id string) (models.Result, error)
	ListByUser(ctx context.Context, userID string) ([]models.Result, error)
	ListAll(ctx context.Context) ([]models.Result, error)
	Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error)
	// ConfirmPurchase marks the result purchased and moves the Pending
	// payment for orderID to Success in a single transaction. The boolean
	// reports whether a Pending payment row was found. The returned result
	// carries the owner's summary.
	ConfirmPurchase(ctx context.Context, resultID, orderID, paymentID string) (models.Result, bool, error)
}

type Payments interface {
	Create(ctx context.Context, p *models.Payment) error
	FindByOrderID(ctx context.Context, orderID string) (models.Payment, error)
	// MarkFailed moves a Pending payment to Failed. Terminal rows are left
	// untouched and reported as false.
	MarkFailed(ctx context.Context, orderID string) (bool, error)
	List(ctx context.Context) ([]models.Payment, error)
}

type Store interface {
	Users() Users
	Questions() Questions
	Configs() Configs
	Results() Results
	Payments() Payments
	Close(ctx context.Context) error
}
