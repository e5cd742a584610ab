package job

import (
	"SocialPulse/internal/pkg/consts"
	"SocialPulse/internal/pkg/metrics"
	"SocialPulse/internal/service"
	"context"
	log "log/slog"
)

type InsightJob struct {
	insightSvc   service.InsightService
	lookbackDays int
	metrics      *metrics.Metrics
}

func NewInsightJob(insightSvc service.InsightService, lookbackDays int, m *metrics.Metrics) *InsightJob {
	return &InsightJob{insightSvc: insightSvc, lookbackDays: lookbackDays, metrics: m}
}

func (s *InsightJob) Run() {
	run("insight_generate", consts.InsightGenerateLock, s.metrics, func(ctx context.Context) error {
		created, err := s.insightSvc.GenerateAll(ctx, s.lookbackDays)
		if err != nil {
			return err
		}
		log.InfoContext(ctx, "generate insights success", "created", created)
		return nil
	})
}
