package service

import (
	"context"
	"errors"

	"github.com/fitshop/fitshop-backend/internal/app/model"
	"github.com/fitshop/fitshop-backend/internal/app/repository"
	"github.com/fitshop/fitshop-backend/internal/cache"
	"github.com/fitshop/fitshop-backend/pkg/logger"
)

// PopularityService serves the merchandising rankings. When a cache is
// configured it is consulted first and repopulated after every DB read;
// without one every call goes straight to the counters tables.
type PopularityService interface {
	MostSearched(ctx context.Context) ([]model.ProductRanking, error)
	MostPurchased(ctx context.Context) ([]model.ProductRanking, error)
	RefreshRankings(ctx context.Context) error
}

type popularityService struct {
	counterRepo repository.CounterRepository
	cache       *cache.RankingCache // nil when caching is disabled
	limit       int
}

func NewPopularityService(
	counterRepo repository.CounterRepository,
	rankingCache *cache.RankingCache,
	limit int,
) PopularityService {
	return &popularityService{
		counterRepo: counterRepo,
		cache:       rankingCache,
		limit:       limit,
	}
}

func (s *popularityService) MostSearched(ctx context.Context) ([]model.ProductRanking, error) {
	return s.rankings(ctx, cache.KeyMostSearched, s.counterRepo.MostSearched)
}

func (s *popularityService) MostPurchased(ctx context.Context) ([]model.ProductRanking, error) {
	return s.rankings(ctx, cache.KeyMostPurchased, s.counterRepo.MostPurchased)
}

func (s *popularityService) rankings(
	ctx context.Context,
	key string,
	fetch func(limit int) ([]model.ProductRanking, error),
) ([]model.ProductRanking, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, key)
		if err == nil {
			logger.Debug("Serving ranking from cache", map[string]interface{}{
				"key":   key,
				"count": len(cached),
			})
			return cached, nil
		}
		if !errors.Is(err, cache.ErrMiss) {
			// A broken cache degrades to DB reads instead of failing the request.
			logger.Warn("Ranking cache unavailable, falling back to database", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
	}

	rankings, err := fetch(s.limit)
	if err != nil {
		logger.Error("Failed to fetch ranking", err, map[string]interface{}{
			"key": key,
		})
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, rankings); err != nil {
			logger.Warn("Failed to repopulate ranking cache", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
	}
	return rankings, nil
}

// RefreshRankings warms both cache entries from the counters tables. It is
// a no-op without a cache.
func (s *popularityService) RefreshRankings(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}

	logger.Debug("Refreshing ranking cache")

	searched, err := s.counterRepo.MostSearched(s.limit)
	if err != nil {
		return err
	}
	if err := s.cache.Set(ctx, cache.KeyMostSearched, searched); err != nil {
		return err
	}

	purchased, err := s.counterRepo.MostPurchased(s.limit)
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, cache.KeyMostPurchased, purchased)
}
