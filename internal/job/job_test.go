package job

import (
	"SocialPulse/internal/api/dto"
	"SocialPulse/internal/pkg/consts"
	"SocialPulse/internal/pkg/logger"
	"SocialPulse/internal/pkg/metrics"
	"SocialPulse/internal/pkg/redis"
	"SocialPulse/internal/service"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompetitorService struct {
	service.CompetitorService
	calls int
}

func (f *fakeCompetitorService) RefreshAll(ctx context.Context) (int, error) {
	f.calls++
	return 2, nil
}

type fakeInsightService struct {
	service.InsightService
	lookback int
	traceID  string
}

func (f *fakeInsightService) GenerateAll(ctx context.Context, lookbackDays int) (int, error) {
	f.lookback = lookbackDays
	f.traceID = logger.TraceID(ctx)
	return 1, nil
}

type fakePatternService struct {
	service.PatternService
}

func (fakePatternService) FoldAll(ctx context.Context) ([]*dto.FoldResultDTO, error) {
	return nil, errors.New("db down")
}

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)

	prev := redis.Rdb
	redis.Rdb = goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = redis.Rdb.Close()
		redis.Rdb = prev
		mr.Close()
	})
	return mr
}

func TestInsightJob_RunsWithTraceAndLookback(t *testing.T) {
	m := metrics.New()
	svc := &fakeInsightService{}

	NewInsightJob(svc, 7, m).Run()

	assert.Equal(t, 7, svc.lookback)
	assert.True(t, strings.HasPrefix(svc.traceID, "job-insight_generate-"))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.JobRunsTotal.WithLabelValues("insight_generate", "success")))
}

func TestCompetitorSyncJob_SkipsWhenLocked(t *testing.T) {
	mr := setupMiniredis(t)
	require.NoError(t, mr.Set(consts.CompetitorSyncLock, "other"))
	mr.SetTTL(consts.CompetitorSyncLock, time.Minute)

	m := metrics.New()
	svc := &fakeCompetitorService{}
	NewCompetitorSyncJob(svc, m).Run()

	assert.Equal(t, 0, svc.calls)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.JobRunsTotal.WithLabelValues("competitor_sync", "skipped")))
}

func TestCompetitorSyncJob_ReleasesLock(t *testing.T) {
	mr := setupMiniredis(t)

	m := metrics.New()
	svc := &fakeCompetitorService{}
	NewCompetitorSyncJob(svc, m).Run()

	assert.Equal(t, 1, svc.calls)
	assert.False(t, mr.Exists(consts.CompetitorSyncLock))
}

func TestPatternFoldJob_CountsError(t *testing.T) {
	m := metrics.New()
	NewPatternFoldJob(fakePatternService{}, m).Run()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.JobRunsTotal.WithLabelValues("pattern_fold", "error")))
}
