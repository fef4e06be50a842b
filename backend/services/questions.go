package services

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"iqscaler/backend/apperror"
	"iqscaler/backend/models"
	"iqscaler/backend/store"
)

type QuestionInput struct {
	Text               string            `json:"text" validate:"required"`
	ImageURL           string            `json:"imageUrl"`
	Options            []models.Option   `json:"options" validate:"required,min=2,max=6,dive"`
	CorrectAnswerIndex *int              `json:"correctAnswerIndex" validate:"required"`
	Difficulty         models.Difficulty `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	Category           string            `json:"category" validate:"required"`
}

// QuestionPatch carries only the fields being changed.
type QuestionPatch struct {
	Text               *string            `json:"text" validate:"omitempty,min=1"`
	ImageURL           *string            `json:"imageUrl"`
	Options            []models.Option    `json:"options" validate:"omitempty,min=2,max=6,dive"`
	CorrectAnswerIndex *int               `json:"correctAnswerIndex"`
	Difficulty         *models.Difficulty `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	Category           *string            `json:"category" validate:"omitempty,min=1"`
}

type QuestionService struct {
	questions store.Questions
}

func NewQuestionService(questions store.Questions) *QuestionService {
	return &QuestionService{questions: questions}
}

func checkAnswerIndex(idx, options int) error {
	if idx < 0 || idx >= options {
		return errors.WithStack(ErrInvalidAnswerIndex)
	}
	return nil
}

func (s *QuestionService) List(ctx context.Context) ([]models.Question, error) {
	out, err := s.questions.List(ctx)
	return out, errors.Wrap(err, "list questions")
}

func (s *QuestionService) Categories(ctx context.Context) ([]string, error) {
	out, err := s.questions.Categories(ctx)
	return out, errors.Wrap(err, "list categories")
}

func (s *QuestionService) Get(ctx context.Context, id string) (models.Question, error) {
	q, err := s.questions.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return models.Question{}, errors.WithStack(ErrQuestionNotFound)
	}
	return q, errors.Wrap(err, "load question")
}

func (s *QuestionService) Create(ctx context.Context, authorID string, in QuestionInput) (models.Question, error) {
	if err := validateStruct(in); err != nil {
		return models.Question{}, err
	}
	if err := checkAnswerIndex(*in.CorrectAnswerIndex, len(in.Options)); err != nil {
		return models.Question{}, err
	}
	if in.Difficulty == "" {
		in.Difficulty = models.DifficultyMedium
	}

	q := models.Question{
		Text:               in.Text,
		ImageURL:           in.ImageURL,
		Options:            in.Options,
		CorrectAnswerIndex: *in.CorrectAnswerIndex,
		Difficulty:         in.Difficulty,
		Category:           strings.TrimSpace(in.Category),
		UserID:             authorID,
	}
	if err := s.questions.Create(ctx, &q); err != nil {
		return models.Question{}, errors.Wrap(err, "create question")
	}
	return q, nil
}

// Update applies a partial edit. Replacing options requires a
// correctAnswerIndex valid for the new set unless the current one still fits.
func (s *QuestionService) Update(ctx context.Context, id string, in QuestionPatch) (models.Question, error) {
	if err := validateStruct(in); err != nil {
		return models.Question{}, err
	}
	q, err := s.Get(ctx, id)
	if err != nil {
		return models.Question{}, err
	}

	if in.Text != nil {
		q.Text = *in.Text
	}
	if in.ImageURL != nil {
		q.ImageURL = *in.ImageURL
	}
	if in.Category != nil {
		q.Category = strings.TrimSpace(*in.Category)
	}
	if in.Difficulty != nil {
		q.Difficulty = *in.Difficulty
	}
	if in.Options != nil {
		q.Options = in.Options
	}
	if in.CorrectAnswerIndex != nil {
		q.CorrectAnswerIndex = *in.CorrectAnswerIndex
	}
	if err := checkAnswerIndex(q.CorrectAnswerIndex, len(q.Options)); err != nil {
		return models.Question{}, err
	}
	if len(q.Options) < 2 {
		return models.Question{}, apperror.Validation("A question needs at least two options")
	}

	if err := s.questions.Save(ctx, &q); err != nil {
		return models.Question{}, errors.Wrap(err, "save question")
	}
	return q, nil
}

func (s *QuestionService) Delete(ctx context.Context, id string) error {
	err := s.questions.Delete(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return errors.WithStack(ErrQuestionNotFound)
	}
	return errors.Wrap(err, "delete question")
}
