package services

import (
	"context"
	"log"

	"github.com/pkg/errors"

	"iqscaler/backend/cache"
	"iqscaler/backend/models"
	"iqscaler/backend/store"
)

const LeaderboardSize = 5

type ResultService struct {
	results store.Results
	cache   cache.LeaderboardCache
	logger  *log.Logger
}

func NewResultService(results store.Results, lb cache.LeaderboardCache, logger *log.Logger) *ResultService {
	return &ResultService{results: results, cache: lb, logger: logger}
}

func (s *ResultService) load(ctx context.Context, id string) (models.Result, error) {
	res, err := s.results.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return models.Result{}, errors.WithStack(ErrResultNotFound)
	}
	return res, errors.Wrap(err, "load result")
}

// Get returns a result to its owner or to an admin.
func (s *ResultService) Get(ctx context.Context, id string, viewer models.User) (models.Result, error) {
	res, err := s.load(ctx, id)
	if err != nil {
		return models.Result{}, err
	}
	if !res.OwnedBy(viewer.ID) && !viewer.IsAdmin {
		return models.Result{}, errors.WithStack(ErrNotAuthorized)
	}
	return res, nil
}

func (s *ResultService) Mine(ctx context.Context, userID string) ([]models.Result, error) {
	out, err := s.results.ListByUser(ctx, userID)
	return out, errors.Wrap(err, "list results")
}

func (s *ResultService) All(ctx context.Context) ([]models.Result, error) {
	out, err := s.results.ListAll(ctx)
	return out, errors.Wrap(err, "list results")
}

// Leaderboard serves from the cache when possible. Cache failures are
// logged and fall through to the store.
func (s *ResultService) Leaderboard(ctx context.Context) ([]models.LeaderboardEntry, error) {
	cached, ok, err := s.cache.Get(ctx)
	if err != nil {
		s.logger.Printf("leaderboard cache read: %v", err)
	}
	if ok {
		return cached, nil
	}

	entries, err := s.results.Leaderboard(ctx, LeaderboardSize)
	if err != nil {
		return nil, errors.Wrap(err, "build leaderboard")
	}
	if entries == nil {
		entries = []models.LeaderboardEntry{}
	}
	if err := s.cache.Set(ctx, entries); err != nil {
		s.logger.Printf("leaderboard cache write: %v", err)
	}
	return entries, nil
}
