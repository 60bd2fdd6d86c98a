package scheduler

import (
	"context"
	"time"

	"github.com/fitshop/fitshop-backend/internal/app/service"
	"github.com/fitshop/fitshop-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// RankingScheduler periodically rebuilds the popularity ranking cache so
// the merchandising endpoints rarely see a cold cache.
type RankingScheduler struct {
	cron              *cron.Cron
	popularityService service.PopularityService
	spec              string
}

func NewRankingScheduler(popularityService service.PopularityService, spec string) *RankingScheduler {
	return &RankingScheduler{
		cron:              cron.New(),
		popularityService: popularityService,
		spec:              spec,
	}
}

// Start registers the refresh job and runs one refresh immediately so the
// cache is warm from boot.
func (s *RankingScheduler) Start() error {
	_, err := s.cron.AddFunc(s.spec, s.refresh)
	if err != nil {
		logger.Error("Failed to add cron job for ranking refresh", err, map[string]interface{}{
			"spec": s.spec,
		})
		return err
	}

	s.refresh()
	s.cron.Start()
	logger.Info("Ranking scheduler started successfully", map[string]interface{}{
		"spec": s.spec,
	})
	return nil
}

func (s *RankingScheduler) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.popularityService.RefreshRankings(ctx); err != nil {
		logger.Error("Failed to refresh ranking cache from scheduler", err)
		return
	}
	logger.Debug("Ranking cache refreshed from scheduler")
}

// Stop halts the cron loop.
func (s *RankingScheduler) Stop() {
	logger.Info("Stopping ranking scheduler...")
	s.cron.Stop()
	logger.Info("Ranking scheduler stopped")
}
