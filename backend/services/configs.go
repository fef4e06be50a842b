package services

import (
	"context"

	"github.com/pkg/errors"

	"iqscaler/backend/apperror"
	"iqscaler/backend/models"
	"iqscaler/backend/store"
)

type UpdateConfigInput struct {
	DurationMinutes        *int                     `json:"durationMinutes" validate:"omitempty,min=1,max=600"`
	TotalQuestions         *int                     `json:"totalQuestions" validate:"omitempty,min=1,max=500"`
	DifficultyDistribution []models.DifficultyCount `json:"difficultyDistribution" validate:"omitempty,dive"`
}

type ConfigService struct {
	configs store.Configs
}

func NewConfigService(configs store.Configs) *ConfigService {
	return &ConfigService{configs: configs}
}

// Get returns the live configuration, creating the default on first use.
func (s *ConfigService) Get(ctx context.Context) (models.TestConfig, error) {
	cfg, err := s.configs.Get(ctx)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return models.TestConfig{}, errors.Wrap(err, "load test configuration")
	}

	cfg = models.DefaultTestConfig()
	if err := s.configs.Create(ctx, &cfg); err != nil {
		// Lost a race with a concurrent first read.
		if errors.Is(err, store.ErrDuplicate) {
			cfg, err = s.configs.Get(ctx)
			return cfg, errors.Wrap(err, "reload test configuration")
		}
		return models.TestConfig{}, errors.Wrap(err, "create default configuration")
	}
	return cfg, nil
}

func (s *ConfigService) Update(ctx context.Context, in UpdateConfigInput) (models.TestConfig, error) {
	if err := validateStruct(in); err != nil {
		return models.TestConfig{}, err
	}
	if err := checkDistribution(in.DifficultyDistribution); err != nil {
		return models.TestConfig{}, err
	}

	cfg, err := s.configs.Get(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return models.TestConfig{}, errors.WithStack(ErrConfigNotFound)
	}
	if err != nil {
		return models.TestConfig{}, errors.Wrap(err, "load test configuration")
	}

	if in.DurationMinutes != nil {
		cfg.DurationMinutes = *in.DurationMinutes
	}
	if in.TotalQuestions != nil {
		cfg.TotalQuestions = *in.TotalQuestions
	}
	if in.DifficultyDistribution != nil {
		cfg.DifficultyDistribution = in.DifficultyDistribution
	}
	if err := s.configs.Save(ctx, &cfg); err != nil {
		return models.TestConfig{}, errors.Wrap(err, "save test configuration")
	}
	return cfg, nil
}

func checkDistribution(dist []models.DifficultyCount) error {
	seen := make(map[models.Difficulty]bool, len(dist))
	for _, d := range dist {
		if !d.Difficulty.Valid() {
			return apperror.Validation("Unknown difficulty: " + string(d.Difficulty))
		}
		if seen[d.Difficulty] {
			return apperror.Validation("Duplicate difficulty: " + string(d.Difficulty))
		}
		if d.Count < 0 {
			return apperror.Validation("Difficulty counts must not be negative")
		}
		seen[d.Difficulty] = true
	}
	return nil
}
