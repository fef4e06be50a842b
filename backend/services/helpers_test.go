package services_test

import (
	"context"
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/require"

	"iqscaler/backend/cache"
	"iqscaler/backend/config"
	"iqscaler/backend/gateway/gatewaytest"
	"iqscaler/backend/mailer/mailertest"
	"iqscaler/backend/models"
	"iqscaler/backend/services"
	"iqscaler/backend/store"
	"iqscaler/backend/store/storetest"
)

type env struct {
	store store.Store
	svc   *services.Services
	gw    *gatewaytest.Fake
	mail  *mailertest.Recorder
	cfg   *config.Config
}

func newEnv(t *testing.T, lb ...cache.LeaderboardCache) *env {
	t.Helper()
	e := &env{
		store: storetest.New(t),
		gw:    &gatewaytest.Fake{},
		mail:  &mailertest.Recorder{},
		cfg: &config.Config{
			Env:               "test",
			JWTSecret:         "testsecret",
			RazorpayKeyID:     "rzp_test_key",
			RazorpayKeySecret: "rzp_test_secret",
			CertificatePrice:  49900,
			Currency:          "INR",
			AdminEmail:        "admin@iqscaler.test",
		},
	}
	deps := services.Deps{
		Store:   e.store,
		Gateway: e.gw,
		Mailer:  e.mail,
		Config:  e.cfg,
		Logger:  log.New(io.Discard, "", 0),
	}
	if len(lb) > 0 {
		deps.Cache = lb[0]
	}
	e.svc = services.New(deps)
	return e
}

func (e *env) user(t *testing.T, name string, admin bool) models.User {
	t.Helper()
	u := models.User{Username: name, Email: name + "@example.com", PasswordHash: "x", IsAdmin: admin}
	require.NoError(t, e.store.Users().Create(context.Background(), &u))
	return u
}

func (e *env) question(t *testing.T, d models.Difficulty, correct int) models.Question {
	t.Helper()
	q := models.Question{
		Text:               "Pick the odd one out",
		Options:            []models.Option{{Text: "circle"}, {Text: "square"}, {Text: "cube"}},
		CorrectAnswerIndex: correct,
		Difficulty:         d,
		Category:           "Spatial",
	}
	require.NoError(t, e.store.Questions().Create(context.Background(), &q))
	return q
}

func (e *env) config(t *testing.T, total int, dist ...models.DifficultyCount) {
	t.Helper()
	c := models.TestConfig{
		Name:                   models.DefaultTestConfigName,
		DurationMinutes:        15,
		TotalQuestions:         total,
		DifficultyDistribution: dist,
	}
	require.NoError(t, e.store.Configs().Create(context.Background(), &c))
}

func (e *env) result(t *testing.T, owner models.User, correct, attempted, score int) models.Result {
	t.Helper()
	r := models.Result{UserID: owner.ID, CorrectAnswers: correct, QuestionsAttempted: attempted, TotalScore: score}
	require.NoError(t, e.store.Results().Create(context.Background(), &r))
	return r
}
