package sqlstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iqscaler/backend/models"
	"iqscaler/backend/store"
	"iqscaler/backend/store/storetest"
)

func seedUser(t *testing.T, s store.Store, name string) models.User {
	t.Helper()
	u := models.User{Username: name, Email: name + "@example.com", PasswordHash: "x"}
	require.NoError(t, s.Users().Create(context.Background(), &u))
	return u
}

func seedQuestion(t *testing.T, s store.Store, d models.Difficulty, category string) models.Question {
	t.Helper()
	q := models.Question{
		Text:               "Which comes next?",
		Options:            []models.Option{{Text: "A"}, {Text: "B"}},
		CorrectAnswerIndex: 1,
		Difficulty:         d,
		Category:           category,
	}
	require.NoError(t, s.Questions().Create(context.Background(), &q))
	return q
}

func TestUsersDuplicateEmail(t *testing.T) {
	s := storetest.New(t)
	ctx := context.Background()
	seedUser(t, s, "ada")

	dup := models.User{Username: "ada2", Email: "ada@example.com", PasswordHash: "x"}
	err := s.Users().Create(ctx, &dup)
	assert.True(t, errors.Is(err, store.ErrDuplicate), "got %v", err)

	_, err = s.Users().FindByEmail(ctx, "nobody@example.com")
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestUsersResetTokenExpiry(t *testing.T) {
	s := storetest.New(t)
	ctx := context.Background()
	u := seedUser(t, s, "grace")

	hash := "abc123"
	expire := time.Now().Add(10 * time.Minute)
	u.ResetPasswordToken = &hash
	u.ResetPasswordExpire = &expire
	require.NoError(t, s.Users().Save(ctx, &u))

	found, err := s.Users().FindByResetToken(ctx, hash, time.Now())
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)

	_, err = s.Users().FindByResetToken(ctx, hash, expire.Add(time.Second))
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestQuestionsSampleAndCategories(t *testing.T) {
	s := storetest.New(t)
	ctx := context.Background()
	e1 := seedQuestion(t, s, models.DifficultyEasy, "Logic")
	seedQuestion(t, s, models.DifficultyEasy, "Spatial")
	seedQuestion(t, s, models.DifficultyHard, "Logic")

	easy, err := s.Questions().Sample(ctx, models.DifficultyEasy, 5, nil)
	require.NoError(t, err)
	assert.Len(t, easy, 2)
	for _, q := range easy {
		assert.Equal(t, models.DifficultyEasy, q.Difficulty)
		assert.Len(t, q.Options, 2)
	}

	rest, err := s.Questions().Sample(ctx, "", 5, []string{e1.ID})
	require.NoError(t, err)
	assert.Len(t, rest, 2)
	for _, q := range rest {
		assert.NotEqual(t, e1.ID, q.ID)
	}

	cats, err := s.Questions().Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Logic", "Spatial"}, cats)
}

func TestLeaderboardBestScorePerUser(t *testing.T) {
	s := storetest.New(t)
	ctx := context.Background()
	ada := seedUser(t, s, "ada")
	bob := seedUser(t, s, "bob")

	day := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	for i, r := range []models.Result{
		{UserID: ada.ID, TotalScore: 10, CreatedAt: day},
		{UserID: ada.ID, TotalScore: 25, CreatedAt: day.Add(24 * time.Hour)},
		{UserID: ada.ID, TotalScore: 12, CreatedAt: day.Add(48 * time.Hour)},
		{UserID: bob.ID, TotalScore: 18, CreatedAt: day},
	} {
		r := r
		require.NoError(t, s.Results().Create(ctx, &r), "result %d", i)
	}

	board, err := s.Results().Leaderboard(ctx, 5)
	require.NoError(t, err)
	require.Len(t, board, 2)

	assert.Equal(t, "ada", board[0].Username)
	assert.Equal(t, 25, board[0].MaxScore)
	assert.True(t, day.Add(24*time.Hour).Equal(board[0].TestDate))
	assert.Equal(t, "bob", board[1].Username)
	assert.Equal(t, 18, board[1].MaxScore)
}

func TestConfirmPurchaseIsAtomicAndStrict(t *testing.T) {
	s := storetest.New(t)
	ctx := context.Background()
	u := seedUser(t, s, "ada")

	res := models.Result{UserID: u.ID, TotalScore: 7, QuestionsAttempted: 3, CorrectAnswers: 2}
	require.NoError(t, s.Results().Create(ctx, &res))
	pay := models.Payment{UserID: u.ID, ResultID: res.ID, RazorpayOrderID: "order_1", Amount: decimal.NewFromInt(499)}
	require.NoError(t, s.Payments().Create(ctx, &pay))

	got, updated, err := s.Results().ConfirmPurchase(ctx, res.ID, "order_1", "pay_1")
	require.NoError(t, err)
	assert.True(t, updated)
	assert.True(t, got.CertificatePurchased)
	require.NotNil(t, got.PaymentID)
	assert.Equal(t, "pay_1", *got.PaymentID)
	require.NotNil(t, got.User)
	assert.Equal(t, "ada", got.User.Username)

	found, err := s.Payments().FindByOrderID(ctx, "order_1")
	require.NoError(t, err)
	assert.Equal(t, res.ID, found.ResultID)
	_, err = s.Payments().FindByOrderID(ctx, "order_missing")
	assert.True(t, errors.Is(err, store.ErrNotFound))

	failed, err := s.Payments().MarkFailed(ctx, "order_1")
	require.NoError(t, err)
	assert.False(t, failed, "terminal payments never change")

	list, err := s.Payments().List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, models.PaymentSuccess, list[0].Status)
	require.NotNil(t, list[0].User)
	assert.Equal(t, "ada", list[0].User.Username)
	assert.True(t, decimal.NewFromInt(499).Equal(list[0].Amount))

	_, _, err = s.Results().ConfirmPurchase(ctx, "missing", "order_1", "pay_1")
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestResultsGetAttachesOwner(t *testing.T) {
	s := storetest.New(t)
	ctx := context.Background()
	u := seedUser(t, s, "ada")

	res := models.Result{UserID: u.ID, TotalScore: 4}
	require.NoError(t, s.Results().Create(ctx, &res))

	got, err := s.Results().Get(ctx, res.ID)
	require.NoError(t, err)
	require.NotNil(t, got.User)
	assert.Equal(t, "ada", got.User.Username)
	assert.Equal(t, 0, got.DifficultyBreakdown[models.DifficultyHard])
}
