package job

import (
	"SocialPulse/internal/pkg/consts"
	"SocialPulse/internal/pkg/metrics"
	"SocialPulse/internal/service"
	"context"
	log "log/slog"
)

type CompetitorSyncJob struct {
	competitorSvc service.CompetitorService
	metrics       *metrics.Metrics
}

func NewCompetitorSyncJob(competitorSvc service.CompetitorService, m *metrics.Metrics) *CompetitorSyncJob {
	return &CompetitorSyncJob{competitorSvc: competitorSvc, metrics: m}
}

func (s *CompetitorSyncJob) Run() {
	run("competitor_sync", consts.CompetitorSyncLock, s.metrics, func(ctx context.Context) error {
		refreshed, err := s.competitorSvc.RefreshAll(ctx)
		if err != nil {
			return err
		}
		log.InfoContext(ctx, "refresh competitor metrics success", "competitor_count", refreshed)
		return nil
	})
}
