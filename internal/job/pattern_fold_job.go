package job

import (
	"SocialPulse/internal/pkg/metrics"
	"SocialPulse/internal/service"
	"context"
	log "log/slog"
)

// PatternFoldJob 把新快照折叠进发布时段规律，账号级别的锁在 service 内处理
type PatternFoldJob struct {
	patternSvc service.PatternService
	metrics    *metrics.Metrics
}

func NewPatternFoldJob(patternSvc service.PatternService, m *metrics.Metrics) *PatternFoldJob {
	return &PatternFoldJob{patternSvc: patternSvc, metrics: m}
}

func (s *PatternFoldJob) Run() {
	run("pattern_fold", "", s.metrics, func(ctx context.Context) error {
		results, err := s.patternSvc.FoldAll(ctx)
		if err != nil {
			return err
		}
		folded, skipped := 0, 0
		for _, r := range results {
			folded += r.Folded
			skipped += r.Skipped
		}
		log.InfoContext(ctx, "fold engagement patterns success",
			"account_count", len(results),
			"folded", folded,
			"skipped", skipped)
		return nil
	})
}
