package service

import (
	"SocialPulse/internal/api/dto"
	"SocialPulse/internal/model"
	"SocialPulse/internal/pkg/util"
	"SocialPulse/internal/repository"
	"context"
)

type PostMetricService interface {
	// CreateMetric 未传 engagement_rate 时按账号最新粉丝数计算
	CreateMetric(ctx context.Context, userID uint64, req *dto.MetricCreateDTO) (*dto.MetricSnapshotDTO, error)
	ListMetrics(ctx context.Context, userID uint64, query *dto.MetricListQuery) ([]*dto.MetricSnapshotDTO, error)
	DeleteMetric(ctx context.Context, userID, id uint64) error
}

type postMetricServiceImpl struct {
	postRepo     repository.PostRepo
	metricRepo   repository.PostMetricRepo
	audienceRepo repository.AudienceRepo
}

func NewPostMetricService(postRepo repository.PostRepo, metricRepo repository.PostMetricRepo, audienceRepo repository.AudienceRepo) PostMetricService {
	return &postMetricServiceImpl{
		postRepo:     postRepo,
		metricRepo:   metricRepo,
		audienceRepo: audienceRepo,
	}
}

func (s *postMetricServiceImpl) CreateMetric(ctx context.Context, userID uint64, req *dto.MetricCreateDTO) (*dto.MetricSnapshotDTO, error) {
	post, err := s.postRepo.GetOwnedPost(ctx, userID, req.PostID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	metric := &model.PostMetric{
		PostID:        post.ID,
		LikesCount:    req.LikesCount,
		CommentsCount: req.CommentsCount,
		SharesCount:   req.SharesCount,
		SavesCount:    req.SavesCount,
		ViewsCount:    req.ViewsCount,
		Reach:         req.Reach,
		Impressions:   req.Impressions,
		RecordedAt:    nowFunc().UTC(),
	}
	if req.RecordedAt != nil {
		metric.RecordedAt = req.RecordedAt.UTC()
	}

	if req.EngagementRate != nil {
		metric.EngagementRate = *req.EngagementRate
	} else {
		audience, err := s.audienceRepo.GetLatestAudience(ctx, post.SocialAccountID)
		if err != nil {
			return nil, err
		}
		var followers int64
		if audience != nil {
			followers = audience.FollowersCount
		}
		metric.EngagementRate = EngagementRate(metric.LikesCount, metric.CommentsCount, metric.SharesCount, followers)
	}

	if err = s.metricRepo.CreateMetric(ctx, metric); err != nil {
		return nil, err
	}
	invalidateUserCache(ctx, userID)
	return toMetricDTO(metric), nil
}

func (s *postMetricServiceImpl) ListMetrics(ctx context.Context, userID uint64, query *dto.MetricListQuery) ([]*dto.MetricSnapshotDTO, error) {
	filter := repository.MetricFilter{
		PostID:   query.PostID,
		DateFrom: query.DateFrom,
	}
	if query.DateTo != nil {
		end := util.EndOfDay(*query.DateTo)
		filter.DateTo = &end
	}
	metrics, err := s.metricRepo.ListMetrics(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	res := make([]*dto.MetricSnapshotDTO, 0, len(metrics))
	for _, m := range metrics {
		res = append(res, toMetricDTO(m))
	}
	return res, nil
}

func (s *postMetricServiceImpl) DeleteMetric(ctx context.Context, userID, id uint64) error {
	rows, err := s.metricRepo.DeleteMetric(ctx, userID, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrMetricNotFound
	}
	invalidateUserCache(ctx, userID)
	return nil
}
