package job

import (
	"SocialPulse/internal/pkg/logger"
	"SocialPulse/internal/pkg/metrics"
	"SocialPulse/internal/pkg/redis"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

// jobLockTTL 多实例部署时同一任务只允许一个实例执行
const jobLockTTL = 30 * time.Minute

// run 为任务生成 trace ctx，记录耗时与结果。lockKey 非空且 Redis 可用时先抢锁
func run(name, lockKey string, m *metrics.Metrics, fn func(ctx context.Context) error) {
	ctx := logger.NewJobContext(context.Background(), name)
	start := time.Now()

	if lockKey != "" && redis.Rdb != nil {
		lockValue := uuid.NewString()
		ok, err := redis.TryLock(ctx, lockKey, lockValue, jobLockTTL, 1)
		if err != nil {
			log.ErrorContext(ctx, "acquire job lock error", "job", name, "err", err)
			observe(m, name, "error", start)
			return
		}
		if !ok {
			log.InfoContext(ctx, "job skipped, lock held by another instance", "job", name)
			observe(m, name, "skipped", start)
			return
		}
		defer redis.UnLock(ctx, lockKey, lockValue)
	}

	err := fn(ctx)
	if err != nil {
		log.ErrorContext(ctx, "job failed", "job", name, "err", err)
	}
	observe(m, name, metrics.Result(err), start)
}

func observe(m *metrics.Metrics, name, result string, start time.Time) {
	if m == nil {
		return
	}
	m.JobRunsTotal.WithLabelValues(name, result).Inc()
	m.JobRunDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
}
