package service

import (
	"SocialPulse/internal/api/dto"
	"SocialPulse/internal/model"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDashboardFixture(t *testing.T) (DashboardService, *fakePostRepo, time.Time) {
	fixed := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	nowFunc = func() time.Time { return fixed }
	t.Cleanup(func() { nowFunc = time.Now })

	accounts := &fakeAccountRepo{accounts: map[uint64]*model.SocialAccount{
		1: {ID: 1, UserID: 7, Platform: "instagram", IsActive: true},
		2: {ID: 2, UserID: 7, Platform: "tiktok", IsActive: false},
	}}
	audiences := &fakeAudienceRepo{audiences: map[uint64]*model.Audience{
		1: {SocialAccountID: 1, FollowersCount: 1000},
		2: {SocialAccountID: 2, FollowersCount: 500},
	}}
	posts := &fakePostRepo{posts: []*model.Post{
		{ID: 11, SocialAccountID: 1, PostedAt: fixed.AddDate(0, 0, -1)},
		{ID: 12, SocialAccountID: 1, PostedAt: fixed.AddDate(0, 0, -2)},
		{ID: 13, SocialAccountID: 2, PostedAt: fixed.AddDate(0, 0, -3)},
	}}
	metrics := &fakeMetricRepo{latest: map[uint64]*model.PostMetric{
		11: {ID: 1, PostID: 11, LikesCount: 10, CommentsCount: 2, SharesCount: 1, Reach: 300, EngagementRate: 2},
		12: {ID: 2, PostID: 12, LikesCount: 20, CommentsCount: 3, SharesCount: 0, Reach: 700, EngagementRate: 4},
		13: {ID: 3, PostID: 13, LikesCount: 5, CommentsCount: 1, SharesCount: 2, Reach: 100, EngagementRate: 6},
	}}
	svc := NewDashboardService(accounts, posts, metrics, audiences, &fakeInsightRepo{}, AnalyticsDefaults{WindowDays: 30}, time.Minute)
	return svc, posts, fixed
}

func TestDashboardOverviewWindow(t *testing.T) {
	svc, posts, fixed := newDashboardFixture(t)

	res, err := svc.Overview(context.Background(), 7, &dto.DashboardQuery{Days: 7})
	require.NoError(t, err)
	require.NotNil(t, posts.filter.DateFrom)
	assert.Equal(t, time.Date(2026, 10, 9, 0, 0, 0, 0, time.UTC), *posts.filter.DateFrom)
	assert.Equal(t, fixed, *posts.filter.DateTo)

	assert.Equal(t, 7, res.PeriodDays)
	assert.Equal(t, int64(2), res.TotalAccounts)
	assert.Equal(t, int64(1), res.ActiveAccounts)
	assert.Equal(t, int64(1500), res.TotalFollowers)
	assert.Equal(t, int64(3), res.TotalPosts)
	assert.Equal(t, int64(35), res.TotalLikes)
	assert.Equal(t, int64(6), res.TotalComments)
	assert.Equal(t, int64(3), res.TotalShares)
	assert.Equal(t, int64(1100), res.TotalReach)
	assert.Equal(t, 4.0, res.AvgEngagementRate)
}

func TestDashboardOverviewDefaultWindow(t *testing.T) {
	svc, posts, _ := newDashboardFixture(t)

	res, err := svc.Overview(context.Background(), 7, &dto.DashboardQuery{})
	require.NoError(t, err)
	assert.Equal(t, 30, res.PeriodDays)
	assert.Equal(t, time.Date(2026, 9, 16, 0, 0, 0, 0, time.UTC), *posts.filter.DateFrom)
}

func TestDashboardPlatformBreakdown(t *testing.T) {
	svc, posts, _ := newDashboardFixture(t)

	res, err := svc.PlatformBreakdown(context.Background(), 7, &dto.DashboardQuery{Days: 14})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 2, 0, 0, 0, 0, time.UTC), *posts.filter.DateFrom)
	require.Len(t, res, 2)

	ig := res[0]
	assert.Equal(t, "instagram", ig.Platform)
	assert.Equal(t, int64(2), ig.Posts)
	assert.Equal(t, int64(30), ig.TotalLikes)
	assert.Equal(t, int64(5), ig.TotalComments)
	assert.Equal(t, int64(1), ig.TotalShares)
	assert.Equal(t, int64(1000), ig.TotalReach)
	assert.Equal(t, 3.0, ig.AvgEngagementRate)

	assert.Equal(t, "tiktok", res[1].Platform)
	assert.Equal(t, int64(500), res[1].Followers)
	assert.Equal(t, int64(100), res[1].TotalReach)
}

func TestDashboardKeyIncludesDays(t *testing.T) {
	assert.Equal(t, "dashboard:overview:7:30", dashboardKey("dashboard:overview:", 7, 30))
	assert.NotEqual(t, dashboardKey("dashboard:overview:", 7, 7), dashboardKey("dashboard:overview:", 7, 30))
}
