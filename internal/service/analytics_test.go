package service

import (
	"SocialPulse/internal/model"
	"SocialPulse/internal/repository"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
}

func score(v float64) *float64 {
	return &v
}

func TestEngagementRate(t *testing.T) {
	assert.Equal(t, 5.0, EngagementRate(40, 5, 5, 1000))
	assert.Equal(t, 33.33, EngagementRate(1, 0, 0, 3))
	assert.Zero(t, EngagementRate(10, 10, 10, 0))
}

func TestTopK(t *testing.T) {
	posts := []*model.Post{
		{ID: 1, PostID: "a", PostedAt: day(2026, 1, 1, 10)},
		{ID: 2, PostID: "b", PostedAt: day(2026, 1, 2, 10)},
		{ID: 3, PostID: "c", PostedAt: day(2026, 1, 2, 10)},
		{ID: 4, PostID: "d", PostedAt: day(2026, 1, 3, 10)},
		{ID: 5, PostID: "e", PostedAt: day(2026, 1, 4, 10)},
	}
	latest := map[uint64]*model.PostMetric{
		1: {PostID: 1, EngagementRate: 8},
		2: {PostID: 2, EngagementRate: 4},
		3: {PostID: 3, EngagementRate: 4},
		4: {PostID: 4, EngagementRate: 4},
	}

	top := TopK(posts, latest, 3)
	require.Len(t, top, 3)
	assert.Equal(t, uint64(1), top[0].PostID)
	// 同分时发布时间新的在前，再相同时 id 大的在前
	assert.Equal(t, uint64(4), top[1].PostID)
	assert.Equal(t, uint64(3), top[2].PostID)
	assert.Equal(t, 3, top[2].Rank)

	all := TopK(posts, latest, 10)
	assert.Len(t, all, 4, "post without snapshot must not be ranked")
}

func TestPickBestPost_Empty(t *testing.T) {
	p, m := PickBestPost([]*model.Post{{ID: 1}}, map[uint64]*model.PostMetric{})
	assert.Nil(t, p)
	assert.Nil(t, m)
}

func TestGroupByContentType(t *testing.T) {
	posts := []*model.Post{
		{ID: 1, ContentType: "reel"},
		{ID: 2, ContentType: "reel"},
		{ID: 3, ContentType: "static"},
		{ID: 4, ContentType: "reel"},
	}
	latest := map[uint64]*model.PostMetric{
		1: {EngagementRate: 6, LikesCount: 100},
		2: {EngagementRate: 2, LikesCount: 50},
		3: {EngagementRate: 3, LikesCount: 10},
	}

	stats := GroupByContentType(posts, latest)
	require.Len(t, stats, 2)
	assert.Equal(t, "reel", stats[0].ContentType)
	assert.Equal(t, int64(3), stats[0].Count)
	assert.Equal(t, 4.0, stats[0].AvgEngagementRate)
	assert.Equal(t, 75.0, stats[0].AvgLikes)
	assert.Equal(t, int64(150), stats[0].TotalLikes)
	assert.Equal(t, "static", stats[1].ContentType)
}

func TestBuildTimeline(t *testing.T) {
	now := day(2026, 3, 10, 15)
	posts := []*model.Post{
		{ID: 1, PostedAt: day(2026, 3, 10, 1)},
		{ID: 2, PostedAt: day(2026, 3, 10, 9)},
		{ID: 3, PostedAt: day(2026, 3, 4, 23)},
		{ID: 4, PostedAt: day(2026, 3, 3, 23)},
	}
	latest := map[uint64]*model.PostMetric{
		1: {LikesCount: 10, EngagementRate: 2},
		2: {LikesCount: 20, EngagementRate: 4},
		3: {LikesCount: 5, EngagementRate: 1},
	}

	points := BuildTimeline(now, 7, posts, latest)
	require.Len(t, points, 7)
	assert.Equal(t, "2026-03-04", points[0].Date)
	assert.Equal(t, int64(1), points[0].PostsCount)
	assert.Equal(t, "2026-03-10", points[6].Date)
	assert.Equal(t, int64(2), points[6].PostsCount)
	assert.Equal(t, int64(30), points[6].TotalLikes)
	assert.Equal(t, 3.0, points[6].AvgEngagementRate)
	for _, p := range points[1:6] {
		assert.Zero(t, p.PostsCount)
		assert.Zero(t, p.AvgEngagementRate)
	}
}

func TestRankHashtags(t *testing.T) {
	tags := []*repository.PostTag{
		{PostID: 1, HashtagID: 10, Tag: "travel"},
		{PostID: 2, HashtagID: 10, Tag: "travel"},
		{PostID: 2, HashtagID: 10, Tag: "travel"},
		{PostID: 1, HashtagID: 20, Tag: "food"},
		{PostID: 3, HashtagID: 30, Tag: "art"},
	}
	latest := map[uint64]*model.PostMetric{
		1: {EngagementRate: 2},
		2: {EngagementRate: 4},
		3: {EngagementRate: 5},
	}

	ranked := RankHashtags(tags, latest, 2)
	require.Len(t, ranked, 2)
	assert.Equal(t, "travel", ranked[0].Tag)
	assert.Equal(t, int64(2), ranked[0].UsageCount)
	assert.Equal(t, 3.0, ranked[0].AvgEngagementRate)
	assert.Equal(t, "art", ranked[1].Tag)
}

func TestBucketSentiment(t *testing.T) {
	comments := []*model.Comment{
		{SentimentScore: score(0.5)},
		{SentimentScore: score(0.9)},
		{SentimentScore: score(0.2)},
		{SentimentScore: score(-0.5)},
		{SentimentScore: score(-0.6)},
		{SentimentScore: nil},
	}

	res := BucketSentiment(comments)
	assert.Equal(t, int64(6), res.TotalComments)
	assert.Equal(t, int64(5), res.ScoredComments)
	assert.Equal(t, int64(2), res.Positive)
	assert.Equal(t, int64(1), res.Neutral)
	assert.Equal(t, int64(2), res.Negative)
	assert.Equal(t, res.ScoredComments, res.Positive+res.Neutral+res.Negative)
	assert.Equal(t, 40.0, res.PositivePercent)
	assert.Equal(t, 0.1, res.AverageSentiment)
}

func TestBucketSentiment_NoScores(t *testing.T) {
	res := BucketSentiment([]*model.Comment{{}, {}})
	assert.Equal(t, int64(2), res.TotalComments)
	assert.Zero(t, res.ScoredComments)
	assert.Zero(t, res.PositivePercent)
}
