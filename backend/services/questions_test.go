package services_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iqscaler/backend/apperror"
	"iqscaler/backend/models"
	"iqscaler/backend/services"
)

func intp(n int) *int { return &n }

func TestQuestionCreateValidation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	admin := e.user(t, "root", true)

	_, err := e.svc.Questions.Create(ctx, admin.ID, services.QuestionInput{
		Text: "Only one option", Options: []models.Option{{Text: "a"}}, CorrectAnswerIndex: intp(0), Category: "Logic",
	})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	_, err = e.svc.Questions.Create(ctx, admin.ID, services.QuestionInput{
		Text: "Out of range", Options: []models.Option{{Text: "a"}, {Text: "b"}}, CorrectAnswerIndex: intp(2), Category: "Logic",
	})
	assert.True(t, errors.Is(err, services.ErrInvalidAnswerIndex))

	q, err := e.svc.Questions.Create(ctx, admin.ID, services.QuestionInput{
		Text: "2, 4, 8, ?", Options: []models.Option{{Text: "10"}, {Text: "16"}}, CorrectAnswerIndex: intp(1), Category: "Numerical",
	})
	require.NoError(t, err)
	assert.Equal(t, models.DifficultyMedium, q.Difficulty)
	assert.Equal(t, admin.ID, q.UserID)
}

func TestQuestionPartialUpdateAndDelete(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	q := e.question(t, models.DifficultyEasy, 2)

	hard := models.DifficultyHard
	updated, err := e.svc.Questions.Update(ctx, q.ID, services.QuestionPatch{Difficulty: &hard})
	require.NoError(t, err)
	assert.Equal(t, models.DifficultyHard, updated.Difficulty)
	assert.Equal(t, q.Text, updated.Text)

	// Shrinking options invalidates the stored answer index.
	_, err = e.svc.Questions.Update(ctx, q.ID, services.QuestionPatch{Options: []models.Option{{Text: "x"}, {Text: "y"}}})
	assert.True(t, errors.Is(err, services.ErrInvalidAnswerIndex))

	updated, err = e.svc.Questions.Update(ctx, q.ID, services.QuestionPatch{
		Options: []models.Option{{Text: "x"}, {Text: "y"}}, CorrectAnswerIndex: intp(0),
	})
	require.NoError(t, err)
	assert.Len(t, updated.Options, 2)

	cats, err := e.svc.Questions.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Spatial"}, cats)

	require.NoError(t, e.svc.Questions.Delete(ctx, q.ID))
	assert.True(t, errors.Is(e.svc.Questions.Delete(ctx, q.ID), services.ErrQuestionNotFound))
}
