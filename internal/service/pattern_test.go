package service

import (
	"SocialPulse/internal/model"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotOf(t *testing.T) {
	// 2026-10-12 是周一
	hour, d := SlotOf(time.Date(2026, 10, 12, 9, 30, 0, 0, time.UTC))
	assert.Equal(t, 9, hour)
	assert.Equal(t, 0, d)

	_, d = SlotOf(time.Date(2026, 10, 18, 23, 0, 0, 0, time.UTC))
	assert.Equal(t, 6, d)

	// 非 UTC 时间按 UTC 落槽
	loc := time.FixedZone("UTC+8", 8*3600)
	hour, d = SlotOf(time.Date(2026, 10, 13, 2, 0, 0, 0, loc))
	assert.Equal(t, 18, hour)
	assert.Equal(t, 0, d)
}

func TestFoldMetric(t *testing.T) {
	p := &model.EngagementPattern{}
	rates := []float64{2, 4, 9}
	likes := []int64{10, 20, 60}
	for i := range rates {
		FoldMetric(p, &model.PostMetric{EngagementRate: rates[i], LikesCount: likes[i]})
	}
	assert.Equal(t, int64(3), p.PostCount)
	assert.InDelta(t, 5.0, p.AvgEngagementRate, 1e-9)
	assert.InDelta(t, 30.0, p.AvgLikes, 1e-9)
}

func TestBuildHeatmap(t *testing.T) {
	heatmap := BuildHeatmap([]*model.EngagementPattern{
		{SocialAccountID: 1, DayOfWeek: 2, HourOfDay: 9, AvgEngagementRate: 3, PostCount: 1},
		{SocialAccountID: 2, DayOfWeek: 2, HourOfDay: 9, AvgEngagementRate: 6, PostCount: 2},
		{SocialAccountID: 1, DayOfWeek: 4, HourOfDay: 20, AvgEngagementRate: 1, PostCount: 0},
	})
	require.Len(t, heatmap, 7)
	cell := heatmap["Wednesday"][9]
	require.NotNil(t, cell)
	assert.Equal(t, int64(3), cell.PostCount)
	assert.Equal(t, 5.0, cell.AvgEngagementRate)
	assert.Empty(t, heatmap["Friday"])
}

func TestPlanSchedule(t *testing.T) {
	patterns := []*model.EngagementPattern{
		{DayOfWeek: 3, HourOfDay: 18, AvgEngagementRate: 9},
		{DayOfWeek: 3, HourOfDay: 12, AvgEngagementRate: 8},
		{DayOfWeek: 0, HourOfDay: 9, AvgEngagementRate: 7},
		{DayOfWeek: 6, HourOfDay: 11, AvgEngagementRate: 5},
	}

	slots := PlanSchedule(patterns, 3)
	require.Len(t, slots, 3)
	assert.Equal(t, "Monday", slots[0].Day)
	assert.Equal(t, 18, slots[1].Hour)
	assert.Equal(t, "Sunday", slots[2].Day)

	slots = PlanSchedule(patterns, 10)
	require.Len(t, slots, 4)
	assert.Equal(t, 12, slots[1].Hour)
	assert.Equal(t, 18, slots[2].Hour)
}

func TestBuildGrowthTrend(t *testing.T) {
	list := []*model.Audience{
		{SocialAccountID: 1, FollowersCount: 100, RecordedAt: day(2026, 5, 1, 8)},
		{SocialAccountID: 1, FollowersCount: 110, RecordedAt: day(2026, 5, 1, 20)},
		{SocialAccountID: 2, FollowersCount: 50, RecordedAt: day(2026, 5, 1, 9)},
		{SocialAccountID: 1, FollowersCount: 130, RecordedAt: day(2026, 5, 2, 9)},
	}

	points := BuildGrowthTrend(list)
	require.Len(t, points, 2)
	assert.Equal(t, "2026-05-01", points[0].Date)
	assert.Equal(t, int64(160), points[0].FollowersCount)
	assert.Zero(t, points[0].Change)
	assert.Equal(t, int64(130), points[1].FollowersCount)
	assert.Equal(t, int64(-30), points[1].Change)
}

func newFoldFixture() (*patternServiceImpl, *fakePatternRepo, *fakeMetricRepo) {
	// 2026-10-05 与 2026-10-12 都是周一
	monday := time.Date(2026, 10, 5, 9, 0, 0, 0, time.UTC)
	accounts := &fakeAccountRepo{accounts: map[uint64]*model.SocialAccount{
		1: {ID: 1, UserID: 7, IsActive: true},
		2: {ID: 2, UserID: 7, IsActive: false},
	}}
	posts := &fakePostRepo{posts: []*model.Post{
		{ID: 11, SocialAccountID: 1, PostedAt: monday},
		{ID: 12, SocialAccountID: 1, PostedAt: monday.AddDate(0, 0, 7).Add(15 * time.Minute)},
		{ID: 13, SocialAccountID: 1, PostedAt: monday.Add(time.Hour)},
	}}
	metrics := &fakeMetricRepo{latest: map[uint64]*model.PostMetric{
		11: {ID: 101, PostID: 11, EngagementRate: 2, LikesCount: 10},
		12: {ID: 102, PostID: 12, EngagementRate: 4, LikesCount: 30},
	}}
	patterns := newFakePatternRepo()
	svc := NewPatternService(accounts, posts, metrics, patterns, nil).(*patternServiceImpl)
	return svc, patterns, metrics
}

func TestFoldAccount(t *testing.T) {
	svc, patterns, _ := newFoldFixture()
	ctx := context.Background()

	res, err := svc.FoldAccount(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Scanned)
	assert.Equal(t, 2, res.Folded)
	assert.Equal(t, 1, res.Skipped)

	p := patterns.patterns[model.PatternKey{SocialAccountID: 1, HourOfDay: 9, DayOfWeek: 0}]
	require.NotNil(t, p)
	assert.Equal(t, int64(2), p.PostCount)
	assert.InDelta(t, 3.0, p.AvgEngagementRate, 1e-9)
	assert.InDelta(t, 20.0, p.AvgLikes, 1e-9)
	// 没有快照的帖子不产生规律行
	assert.Len(t, patterns.patterns, 1)

	// 快照未变化时重复扫描不再折叠
	res, err = svc.FoldAccount(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Folded)
	assert.Equal(t, 3, res.Skipped)
	assert.Equal(t, int64(2), p.PostCount)
}

func TestFoldAccountNewSnapshotFoldsAgain(t *testing.T) {
	svc, patterns, metrics := newFoldFixture()
	ctx := context.Background()

	_, err := svc.FoldAccount(ctx, 1)
	require.NoError(t, err)
	metrics.latest[11] = &model.PostMetric{ID: 105, PostID: 11, EngagementRate: 6}

	res, err := svc.FoldAccount(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Folded)
	p := patterns.patterns[model.PatternKey{SocialAccountID: 1, HourOfDay: 9, DayOfWeek: 0}]
	assert.Equal(t, int64(3), p.PostCount)
	assert.InDelta(t, 4.0, p.AvgEngagementRate, 1e-9)
}

func TestFoldAccountMissing(t *testing.T) {
	svc, _, _ := newFoldFixture()
	res, err := svc.FoldAccount(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestFoldAllActiveOnly(t *testing.T) {
	svc, _, _ := newFoldFixture()
	results, err := svc.FoldAll(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, uint64(1), results[0].AccountID)
	assert.Equal(t, 2, results[0].Folded)
}
