package service

import (
	"SocialPulse/internal/api/dto"
	"SocialPulse/internal/model"
	"SocialPulse/internal/pkg/consts"
	"SocialPulse/internal/pkg/util"
	"SocialPulse/internal/repository"
	"math"
	"sort"
	"time"
)

// nowFunc 便于测试固定时间
var nowFunc = time.Now

// EngagementRate (点赞+评论+分享)/粉丝数*100，粉丝数为 0 时返回 0
func EngagementRate(likes, comments, shares, followers int64) float64 {
	if followers <= 0 {
		return 0
	}
	return round2(float64(likes+comments+shares) / float64(followers) * 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func avg(sum float64, n int64) float64 {
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func postIDs(posts []*model.Post) []uint64 {
	ids := make([]uint64, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	return ids
}

// rankedPosts 只保留有快照的帖子，按最新互动率倒序，
// 相同时发布时间新的在前，再相同时 id 大的在前
func rankedPosts(posts []*model.Post, latest map[uint64]*model.PostMetric) []*model.Post {
	res := make([]*model.Post, 0, len(posts))
	for _, p := range posts {
		if _, ok := latest[p.ID]; ok {
			res = append(res, p)
		}
	}
	sort.SliceStable(res, func(i, j int) bool {
		ri, rj := latest[res[i].ID].EngagementRate, latest[res[j].ID].EngagementRate
		if ri != rj {
			return ri > rj
		}
		if !res[i].PostedAt.Equal(res[j].PostedAt) {
			return res[i].PostedAt.After(res[j].PostedAt)
		}
		return res[i].ID > res[j].ID
	})
	return res
}

// TopK 最新互动率前 k 的帖子，没有快照的帖子不参与排名
func TopK(posts []*model.Post, latest map[uint64]*model.PostMetric, k int) []*dto.PostPerformanceDTO {
	ranked := rankedPosts(posts, latest)
	if k >= 0 && len(ranked) > k {
		ranked = ranked[:k]
	}
	res := make([]*dto.PostPerformanceDTO, 0, len(ranked))
	for i, p := range ranked {
		m := latest[p.ID]
		res = append(res, &dto.PostPerformanceDTO{
			Rank:           i + 1,
			PostID:         p.ID,
			ExternalID:     p.PostID,
			ContentType:    p.ContentType,
			Caption:        p.Caption,
			PostedAt:       p.PostedAt,
			EngagementRate: m.EngagementRate,
			LikesCount:     m.LikesCount,
			CommentsCount:  m.CommentsCount,
			SharesCount:    m.SharesCount,
			Reach:          m.Reach,
		})
	}
	return res
}

// PickBestPost 互动率最高的帖子，没有可用帖子时返回 nil
func PickBestPost(posts []*model.Post, latest map[uint64]*model.PostMetric) (*model.Post, *model.PostMetric) {
	ranked := rankedPosts(posts, latest)
	if len(ranked) == 0 {
		return nil, nil
	}
	return ranked[0], latest[ranked[0].ID]
}

type metricSums struct {
	posts         int64
	withSnapshot  int64
	likes         int64
	comments      int64
	shares        int64
	reach         int64
	views         int64
	engagementSum float64
}

func (s *metricSums) add(m *model.PostMetric) {
	s.posts++
	if m == nil {
		return
	}
	s.withSnapshot++
	s.likes += m.LikesCount
	s.comments += m.CommentsCount
	s.shares += m.SharesCount
	s.reach += m.Reach
	s.views += m.ViewsCount
	s.engagementSum += m.EngagementRate
}

func (s *metricSums) avgEngagement() float64 {
	return round2(avg(s.engagementSum, s.withSnapshot))
}

// GroupByContentType 按内容类型聚合。均值只统计有快照的帖子，
// 按平均互动率倒序，相同时按内容类型字母序
func GroupByContentType(posts []*model.Post, latest map[uint64]*model.PostMetric) []*dto.ContentTypeStatDTO {
	groups := make(map[string]*metricSums)
	for _, p := range posts {
		g, ok := groups[p.ContentType]
		if !ok {
			g = &metricSums{}
			groups[p.ContentType] = g
		}
		g.add(latest[p.ID])
	}

	res := make([]*dto.ContentTypeStatDTO, 0, len(groups))
	for ct, g := range groups {
		res = append(res, &dto.ContentTypeStatDTO{
			ContentType:       ct,
			Count:             g.posts,
			AvgEngagementRate: g.avgEngagement(),
			AvgLikes:          round2(avg(float64(g.likes), g.withSnapshot)),
			AvgComments:       round2(avg(float64(g.comments), g.withSnapshot)),
			AvgShares:         round2(avg(float64(g.shares), g.withSnapshot)),
			AvgReach:          round2(avg(float64(g.reach), g.withSnapshot)),
			AvgViews:          round2(avg(float64(g.views), g.withSnapshot)),
			TotalLikes:        g.likes,
			TotalComments:     g.comments,
			TotalShares:       g.shares,
		})
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].AvgEngagementRate != res[j].AvgEngagementRate {
			return res[i].AvgEngagementRate > res[j].AvgEngagementRate
		}
		return res[i].ContentType < res[j].ContentType
	})
	return res
}

// BuildTimeline 窗口内每天一行（UTC），没有帖子的日期全部为零
func BuildTimeline(now time.Time, days int, posts []*model.Post, latest map[uint64]*model.PostMetric) []*dto.TimelinePointDTO {
	if days <= 0 {
		days = 1
	}
	start := util.WindowStart(now, days)
	sums := make([]metricSums, days)
	for _, p := range posts {
		idx := int(util.GetMidnight(p.PostedAt).Sub(start).Hours() / 24)
		if idx < 0 || idx >= days {
			continue
		}
		sums[idx].add(latest[p.ID])
	}

	res := make([]*dto.TimelinePointDTO, 0, days)
	for i := 0; i < days; i++ {
		s := sums[i]
		res = append(res, &dto.TimelinePointDTO{
			Date:              start.AddDate(0, 0, i).Format(time.DateOnly),
			PostsCount:        s.posts,
			TotalLikes:        s.likes,
			TotalComments:     s.comments,
			TotalShares:       s.shares,
			AvgEngagementRate: s.avgEngagement(),
		})
	}
	return res
}

// RankHashtags 使用次数为窗口内出现该话题的不同帖子数，
// 按使用次数倒序，再按平均互动率倒序
func RankHashtags(tags []*repository.PostTag, latest map[uint64]*model.PostMetric, limit int) []*dto.TrendingHashtagDTO {
	type agg struct {
		id    uint64
		tag   string
		posts map[uint64]struct{}
		sums  metricSums
	}
	groups := make(map[uint64]*agg)
	for _, t := range tags {
		g, ok := groups[t.HashtagID]
		if !ok {
			g = &agg{id: t.HashtagID, tag: t.Tag, posts: make(map[uint64]struct{})}
			groups[t.HashtagID] = g
		}
		if _, seen := g.posts[t.PostID]; seen {
			continue
		}
		g.posts[t.PostID] = struct{}{}
		g.sums.add(latest[t.PostID])
	}

	res := make([]*dto.TrendingHashtagDTO, 0, len(groups))
	for _, g := range groups {
		res = append(res, &dto.TrendingHashtagDTO{
			HashtagID:         g.id,
			Tag:               g.tag,
			UsageCount:        int64(len(g.posts)),
			AvgEngagementRate: g.sums.avgEngagement(),
		})
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].UsageCount != res[j].UsageCount {
			return res[i].UsageCount > res[j].UsageCount
		}
		if res[i].AvgEngagementRate != res[j].AvgEngagementRate {
			return res[i].AvgEngagementRate > res[j].AvgEngagementRate
		}
		return res[i].Tag < res[j].Tag
	})
	if limit > 0 && len(res) > limit {
		res = res[:limit]
	}
	return res
}

// BucketSentiment 只统计有情感分的评论，三个分桶恰好覆盖全部已打分评论
func BucketSentiment(comments []*model.Comment) *dto.SentimentDTO {
	res := &dto.SentimentDTO{TotalComments: int64(len(comments))}
	var sum float64
	for _, c := range comments {
		if c.SentimentScore == nil {
			continue
		}
		score := *c.SentimentScore
		res.ScoredComments++
		sum += score
		switch {
		case score >= consts.SentimentPositiveFrom:
			res.Positive++
		case score <= consts.SentimentNegativeTo:
			res.Negative++
		default:
			res.Neutral++
		}
	}
	if res.ScoredComments > 0 {
		n := float64(res.ScoredComments)
		res.PositivePercent = round2(float64(res.Positive) / n * 100)
		res.NeutralPercent = round2(float64(res.Neutral) / n * 100)
		res.NegativePercent = round2(float64(res.Negative) / n * 100)
		res.AverageSentiment = math.Round(sum/n*1000) / 1000
	}
	return res
}
