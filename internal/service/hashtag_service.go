package service

import (
	"SocialPulse/internal/api/dto"
	"SocialPulse/internal/pkg/util"
	"SocialPulse/internal/repository"
	"context"
)

type HashtagService interface {
	ListHashtags(ctx context.Context, userID uint64, search string) ([]*dto.HashtagDTO, error)
	Trending(ctx context.Context, userID uint64, query *dto.TrendingQuery) ([]*dto.TrendingHashtagDTO, error)
	// Performance hashtagID 为空返回 ErrHashtagIDRequired
	Performance(ctx context.Context, userID uint64, hashtagID *uint64) (*dto.HashtagPerformanceDTO, error)
}

type hashtagServiceImpl struct {
	postRepo    repository.PostRepo
	metricRepo  repository.PostMetricRepo
	hashtagRepo repository.HashtagRepo
	defaults    AnalyticsDefaults
}

func NewHashtagService(postRepo repository.PostRepo, metricRepo repository.PostMetricRepo, hashtagRepo repository.HashtagRepo, defaults AnalyticsDefaults) HashtagService {
	return &hashtagServiceImpl{
		postRepo:    postRepo,
		metricRepo:  metricRepo,
		hashtagRepo: hashtagRepo,
		defaults:    defaults,
	}
}

func (s *hashtagServiceImpl) ListHashtags(ctx context.Context, userID uint64, search string) ([]*dto.HashtagDTO, error) {
	usages, err := s.hashtagRepo.ListHashtagUsage(ctx, userID, search)
	if err != nil {
		return nil, err
	}
	res := make([]*dto.HashtagDTO, 0, len(usages))
	for _, u := range usages {
		res = append(res, &dto.HashtagDTO{
			ID:         u.ID,
			Tag:        u.Tag,
			UsageCount: u.UsageCount,
			CreatedAt:  u.CreatedAt,
		})
	}
	return res, nil
}

func (s *hashtagServiceImpl) Trending(ctx context.Context, userID uint64, query *dto.TrendingQuery) ([]*dto.TrendingHashtagDTO, error) {
	from := util.WindowStart(nowFunc(), s.defaults.window(query.Days))
	posts, err := s.postRepo.ListPosts(ctx, userID, repository.PostFilter{DateFrom: &from})
	if err != nil {
		return nil, err
	}
	ids := postIDs(posts)
	tags, err := s.hashtagRepo.ListPostTags(ctx, ids)
	if err != nil {
		return nil, err
	}
	latest, err := s.metricRepo.GetLatestMetrics(ctx, ids)
	if err != nil {
		return nil, err
	}
	return RankHashtags(tags, latest, s.defaults.trend(query.Limit)), nil
}

func (s *hashtagServiceImpl) Performance(ctx context.Context, userID uint64, hashtagID *uint64) (*dto.HashtagPerformanceDTO, error) {
	if hashtagID == nil || *hashtagID == 0 {
		return nil, ErrHashtagIDRequired
	}
	hashtag, err := s.hashtagRepo.GetHashtag(ctx, *hashtagID)
	if err != nil {
		return nil, err
	}
	if hashtag == nil {
		return nil, ErrHashtagNotFound
	}

	posts, err := s.postRepo.ListPosts(ctx, userID, repository.PostFilter{HashtagID: hashtagID})
	if err != nil {
		return nil, err
	}
	latest, err := s.metricRepo.GetLatestMetrics(ctx, postIDs(posts))
	if err != nil {
		return nil, err
	}

	var sums metricSums
	for _, p := range posts {
		sums.add(latest[p.ID])
	}
	return &dto.HashtagPerformanceDTO{
		HashtagID:         hashtag.ID,
		Tag:               hashtag.Tag,
		TotalPosts:        sums.posts,
		AvgEngagementRate: sums.avgEngagement(),
		TotalLikes:        sums.likes,
		TotalComments:     sums.comments,
		TotalShares:       sums.shares,
		TopPosts:          TopK(posts, latest, topPostsOfTag),
	}, nil
}
