package services_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iqscaler/backend/models"
	"iqscaler/backend/services"
)

func TestGradeWeightsByDifficulty(t *testing.T) {
	key := map[string]models.Question{
		"e": {ID: "e", Difficulty: models.DifficultyEasy, CorrectAnswerIndex: 0},
		"m": {ID: "m", Difficulty: models.DifficultyMedium, CorrectAnswerIndex: 1},
		"h": {ID: "h", Difficulty: models.DifficultyHard, CorrectAnswerIndex: 2},
	}
	answers := []services.Answer{
		{QuestionID: "e", SelectedIndex: services.Index(0)},
		{QuestionID: "m", SelectedIndex: services.Index(1)},
		{QuestionID: "h", SelectedIndex: services.Index(0)},
		{QuestionID: "gone", SelectedIndex: services.Index(0)},
		{QuestionID: "h"},
	}

	tally := services.Grade(answers, key)

	assert.Equal(t, 4, tally.TotalScore)
	assert.Equal(t, 2, tally.CorrectAnswers)
	assert.Equal(t, 5, tally.QuestionsAttempted)
	assert.Equal(t, models.Breakdown{models.DifficultyEasy: 1, models.DifficultyMedium: 1, models.DifficultyHard: 0}, tally.DifficultyBreakdown)
}

func TestAnswerIndexDecoding(t *testing.T) {
	cases := []struct {
		raw   string
		want  services.AnswerIndex
		isErr bool
	}{
		{`2`, services.Index(2), false},
		{`"2"`, services.Index(2), false},
		{`" 3abc"`, services.Index(3), false},
		{`2.7`, services.Index(2), false},
		{`null`, services.AnswerIndex{}, false},
		{`"abc"`, services.AnswerIndex{}, true},
		{`true`, services.AnswerIndex{}, true},
		{`[1]`, services.AnswerIndex{}, true},
	}
	for _, tc := range cases {
		var got services.AnswerIndex
		err := json.Unmarshal([]byte(tc.raw), &got)
		if tc.isErr {
			assert.Error(t, err, tc.raw)
			continue
		}
		require.NoError(t, err, tc.raw)
		assert.Equal(t, tc.want, got, tc.raw)
	}

	var missing services.Answer
	require.NoError(t, json.Unmarshal([]byte(`{"questionId":"q1"}`), &missing))
	assert.False(t, missing.SelectedIndex.Valid)
}

func TestSubmitPersistsResult(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	ada := e.user(t, "ada", false)
	medium := e.question(t, models.DifficultyMedium, 2)

	resp, err := e.svc.Scorer.Submit(ctx, ada.ID, []services.Answer{
		{QuestionID: medium.ID, SelectedIndex: services.Index(2)},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.TotalScore)
	assert.Equal(t, 1, resp.CorrectAnswers)

	stored, err := e.store.Results().Get(ctx, resp.ResultID)
	require.NoError(t, err)
	assert.Equal(t, ada.ID, stored.UserID)
	assert.Equal(t, 1, stored.QuestionsAttempted)
	assert.Equal(t, 1, stored.DifficultyBreakdown[models.DifficultyMedium])
	assert.False(t, stored.CertificatePurchased)
}

func TestSubmitRejectsEmptyAnswers(t *testing.T) {
	e := newEnv(t)
	ada := e.user(t, "ada", false)

	_, err := e.svc.Scorer.Submit(context.Background(), ada.ID, nil)
	assert.True(t, errors.Is(err, services.ErrNoAnswers))
}

func TestSubmitIgnoresAnswersWithoutQuestion(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	ada := e.user(t, "ada", false)
	easy := e.question(t, models.DifficultyEasy, 0)

	resp, err := e.svc.Scorer.Submit(ctx, ada.ID, []services.Answer{
		{QuestionID: "", SelectedIndex: services.Index(0)},
		{QuestionID: "no-such-question", SelectedIndex: services.Index(0)},
		{QuestionID: easy.ID, SelectedIndex: services.Index(0)},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.TotalScore)
	assert.Equal(t, 1, resp.CorrectAnswers)

	stored, err := e.store.Results().Get(ctx, resp.ResultID)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.QuestionsAttempted)

	resp, err = e.svc.Scorer.Submit(ctx, ada.ID, []services.Answer{{SelectedIndex: services.Index(1)}})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.TotalScore)
}
