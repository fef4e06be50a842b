package services

import (
	"context"

	"github.com/pkg/errors"

	"iqscaler/backend/models"
	"iqscaler/backend/store"
)

// PublicOption and PublicQuestion are what test takers see: no answer key.
type PublicOption struct {
	Text     string `json:"text"`
	ImageURL string `json:"imageUrl,omitempty"`
}

type PublicQuestion struct {
	ID         string            `json:"_id"`
	Text       string            `json:"text"`
	ImageURL   string            `json:"imageUrl,omitempty"`
	Category   string            `json:"category"`
	Difficulty models.Difficulty `json:"difficulty"`
	Options    []PublicOption    `json:"options"`
}

func Sanitize(questions []models.Question) []PublicQuestion {
	out := make([]PublicQuestion, 0, len(questions))
	for _, q := range questions {
		opts := make([]PublicOption, 0, len(q.Options))
		for _, o := range q.Options {
			opts = append(opts, PublicOption{Text: o.Text, ImageURL: o.ImageURL})
		}
		out = append(out, PublicQuestion{
			ID:         q.ID,
			Text:       q.Text,
			ImageURL:   q.ImageURL,
			Category:   q.Category,
			Difficulty: q.Difficulty,
			Options:    opts,
		})
	}
	return out
}

type Assembler struct {
	questions store.Questions
	configs   store.Configs
}

func NewAssembler(questions store.Questions, configs store.Configs) *Assembler {
	return &Assembler{questions: questions, configs: configs}
}

// Assemble draws each configured tier at random, then tops up from the
// whole pool until TotalQuestions is reached or the pool runs out.
func (a *Assembler) Assemble(ctx context.Context) ([]PublicQuestion, error) {
	cfg, err := a.configs.Get(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return nil, errors.WithStack(ErrConfigurationMissing)
	}
	if err != nil {
		return nil, errors.Wrap(err, "load test configuration")
	}

	var selected []models.Question
	for _, tier := range cfg.DifficultyDistribution {
		if tier.Count <= 0 {
			continue
		}
		drawn, err := a.questions.Sample(ctx, tier.Difficulty, tier.Count, nil)
		if err != nil {
			return nil, errors.Wrapf(err, "sample %s questions", tier.Difficulty)
		}
		selected = append(selected, drawn...)
	}

	if remaining := cfg.TotalQuestions - len(selected); remaining > 0 {
		taken := make([]string, 0, len(selected))
		for _, q := range selected {
			taken = append(taken, q.ID)
		}
		drawn, err := a.questions.Sample(ctx, "", remaining, taken)
		if err != nil {
			return nil, errors.Wrap(err, "sample remaining questions")
		}
		selected = append(selected, drawn...)
	}

	if len(selected) == 0 {
		return nil, errors.WithStack(ErrInsufficientQuestions)
	}
	return Sanitize(selected), nil
}
