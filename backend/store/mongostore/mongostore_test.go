package mongostore

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"iqscaler/backend/models"
	"iqscaler/backend/store"
)

func TestDecimalCodecRoundTrip(t *testing.T) {
	type doc struct {
		Amount decimal.Decimal `bson:"amount"`
	}
	reg := newRegistry()

	raw, err := bson.MarshalWithRegistry(reg, doc{Amount: decimal.RequireFromString("499.50")})
	require.NoError(t, err)

	var back doc
	require.NoError(t, bson.UnmarshalWithRegistry(reg, raw, &back))
	assert.True(t, decimal.RequireFromString("499.5").Equal(back.Amount))

	legacy, err := bson.Marshal(bson.M{"amount": 499})
	require.NoError(t, err)
	require.NoError(t, bson.UnmarshalWithRegistry(reg, legacy, &back))
	assert.True(t, decimal.NewFromInt(499).Equal(back.Amount))
}

// The remaining tests need a replica set, e.g.
// MONGO_TEST_URI=mongodb://localhost:27017/?replicaSet=rs0
func connectForTest(t *testing.T) *Store {
	t.Helper()
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s, err := Connect(ctx, uri, "iqscaler_test_"+newID())
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = s.db.Drop(context.Background())
		_ = s.Close(context.Background())
	})
	return s
}

func TestMongoLeaderboardAndPurchase(t *testing.T) {
	s := connectForTest(t)
	ctx := context.Background()

	ada := models.User{Username: "ada", Email: "ada@example.com", PasswordHash: "x"}
	require.NoError(t, s.Users().Create(ctx, &ada))
	dup := models.User{Username: "ada", Email: "other@example.com", PasswordHash: "x"}
	assert.True(t, errors.Is(s.Users().Create(ctx, &dup), store.ErrDuplicate))

	for _, score := range []int{3, 9, 6} {
		require.NoError(t, s.Results().Create(ctx, &models.Result{UserID: ada.ID, TotalScore: score}))
	}
	board, err := s.Results().Leaderboard(ctx, 5)
	require.NoError(t, err)
	require.Len(t, board, 1)
	assert.Equal(t, 9, board[0].MaxScore)
	assert.Equal(t, "ada", board[0].Username)

	res := models.Result{UserID: ada.ID, TotalScore: 1}
	require.NoError(t, s.Results().Create(ctx, &res))
	require.NoError(t, s.Payments().Create(ctx, &models.Payment{
		UserID: ada.ID, ResultID: res.ID, RazorpayOrderID: "order_m1", Amount: decimal.NewFromInt(499),
	}))

	got, updated, err := s.Results().ConfirmPurchase(ctx, res.ID, "order_m1", "pay_m1")
	require.NoError(t, err)
	assert.True(t, updated)
	assert.True(t, got.CertificatePurchased)
	require.NotNil(t, got.User)
	assert.Equal(t, "ada", got.User.Username)

	found, err := s.Payments().FindByOrderID(ctx, "order_m1")
	require.NoError(t, err)
	assert.Equal(t, res.ID, found.ResultID)

	failed, err := s.Payments().MarkFailed(ctx, "order_m1")
	require.NoError(t, err)
	assert.False(t, failed)
}

func TestMongoSampleExcludes(t *testing.T) {
	s := connectForTest(t)
	ctx := context.Background()

	var first models.Question
	for i := 0; i < 3; i++ {
		q := models.Question{
			Text:       "q",
			Options:    []models.Option{{Text: "a"}, {Text: "b"}},
			Difficulty: models.DifficultyEasy,
			Category:   "Logic",
		}
		require.NoError(t, s.Questions().Create(ctx, &q))
		if i == 0 {
			first = q
		}
	}
	got, err := s.Questions().Sample(ctx, "", 10, []string{first.ID})
	require.NoError(t, err)
	assert.Len(t, got, 2)
	for _, q := range got {
		assert.NotEqual(t, first.ID, q.ID)
	}
}
