package service

import (
	"SocialPulse/internal/api/dto"
	"SocialPulse/internal/model"
	"SocialPulse/internal/pkg/platform"
	"SocialPulse/internal/pkg/util"
	"SocialPulse/internal/repository"
	"context"
	log "log/slog"
	"time"
)

type CompetitorService interface {
	CreateCompetitor(ctx context.Context, userID uint64, req *dto.CompetitorCreateDTO) (*dto.CompetitorDTO, error)
	GetCompetitor(ctx context.Context, userID, id uint64) (*dto.CompetitorDTO, error)
	ListCompetitors(ctx context.Context, userID uint64, query *dto.CompetitorListQuery) ([]*dto.CompetitorDTO, error)
	UpdateCompetitor(ctx context.Context, userID, id uint64, req *dto.CompetitorUpdateDTO) (*dto.CompetitorDTO, error)
	DeleteCompetitor(ctx context.Context, userID, id uint64) error
	// Comparison ids 为空返回 ErrCompetitorIDsEmpty
	Comparison(ctx context.Context, userID uint64, ids []uint64) ([]*dto.CompetitorComparisonDTO, error)
	GrowthTrend(ctx context.Context, userID, id uint64, days int) ([]*dto.CompetitorMetricDTO, error)
	ListMetrics(ctx context.Context, userID uint64, query *dto.CompetitorMetricQuery) ([]*dto.CompetitorMetricDTO, error)
	// RefreshAll 定时任务入口，为每个启用的竞品写一条新快照
	RefreshAll(ctx context.Context) (int, error)
}

type competitorServiceImpl struct {
	competitorRepo repository.CompetitorRepo
	statsClient    platform.StatsClient
	defaults       AnalyticsDefaults
}

func NewCompetitorService(competitorRepo repository.CompetitorRepo, statsClient platform.StatsClient, defaults AnalyticsDefaults) CompetitorService {
	return &competitorServiceImpl{
		competitorRepo: competitorRepo,
		statsClient:    statsClient,
		defaults:       defaults,
	}
}

func (s *competitorServiceImpl) CreateCompetitor(ctx context.Context, userID uint64, req *dto.CompetitorCreateDTO) (*dto.CompetitorDTO, error) {
	competitor := &model.Competitor{
		UserID:          userID,
		Platform:        req.Platform,
		AccountID:       req.AccountID,
		AccountUsername: req.AccountUsername,
		IsActive:        true,
	}
	if err := s.competitorRepo.CreateCompetitor(ctx, competitor); err != nil {
		if isDuplicateError(err) {
			return nil, ErrCompetitorExist
		}
		return nil, err
	}
	if req.IsActive != nil && !*req.IsActive {
		if err := s.competitorRepo.UpdateCompetitor(ctx, competitor.ID, map[string]any{"is_active": false}); err != nil {
			return nil, err
		}
		competitor.IsActive = false
	}
	return toCompetitorDTO(competitor), nil
}

func (s *competitorServiceImpl) getOwned(ctx context.Context, userID, id uint64) (*model.Competitor, error) {
	competitor, err := s.competitorRepo.GetOwnedCompetitor(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if competitor == nil {
		return nil, ErrCompetitorNotFound
	}
	return competitor, nil
}

func (s *competitorServiceImpl) GetCompetitor(ctx context.Context, userID, id uint64) (*dto.CompetitorDTO, error) {
	competitor, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return toCompetitorDTO(competitor), nil
}

func (s *competitorServiceImpl) ListCompetitors(ctx context.Context, userID uint64, query *dto.CompetitorListQuery) ([]*dto.CompetitorDTO, error) {
	list, err := s.competitorRepo.ListCompetitors(ctx, userID, repository.CompetitorFilter{
		Platform: query.Platform,
		IsActive: query.IsActive,
	})
	if err != nil {
		return nil, err
	}
	res := make([]*dto.CompetitorDTO, 0, len(list))
	for _, c := range list {
		res = append(res, toCompetitorDTO(c))
	}
	return res, nil
}

func (s *competitorServiceImpl) UpdateCompetitor(ctx context.Context, userID, id uint64, req *dto.CompetitorUpdateDTO) (*dto.CompetitorDTO, error) {
	if _, err := s.getOwned(ctx, userID, id); err != nil {
		return nil, err
	}
	fields := make(map[string]any)
	if req.AccountUsername != nil {
		fields["account_username"] = *req.AccountUsername
	}
	if req.IsActive != nil {
		fields["is_active"] = *req.IsActive
	}
	if len(fields) > 0 {
		if err := s.competitorRepo.UpdateCompetitor(ctx, id, fields); err != nil {
			return nil, err
		}
	}
	return s.GetCompetitor(ctx, userID, id)
}

func (s *competitorServiceImpl) DeleteCompetitor(ctx context.Context, userID, id uint64) error {
	rows, err := s.competitorRepo.DeleteCompetitor(ctx, userID, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrCompetitorNotFound
	}
	return nil
}

func (s *competitorServiceImpl) Comparison(ctx context.Context, userID uint64, ids []uint64) ([]*dto.CompetitorComparisonDTO, error) {
	if len(ids) == 0 {
		return nil, ErrCompetitorIDsEmpty
	}
	competitors, err := s.competitorRepo.ListOwnedCompetitorsByIDs(ctx, userID, ids)
	if err != nil {
		return nil, err
	}
	found := make([]uint64, 0, len(competitors))
	for _, c := range competitors {
		found = append(found, c.ID)
	}
	latest, err := s.competitorRepo.GetLatestCompetitorMetrics(ctx, found)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.CompetitorComparisonDTO, 0, len(competitors))
	for _, c := range competitors {
		res = append(res, &dto.CompetitorComparisonDTO{
			Competitor:    toCompetitorDTO(c),
			LatestMetrics: toCompetitorMetricDTO(latest[c.ID]),
		})
	}
	return res, nil
}

func (s *competitorServiceImpl) GrowthTrend(ctx context.Context, userID, id uint64, days int) ([]*dto.CompetitorMetricDTO, error) {
	if _, err := s.getOwned(ctx, userID, id); err != nil {
		return nil, err
	}
	return s.ListMetrics(ctx, userID, &dto.CompetitorMetricQuery{CompetitorID: &id, Days: s.defaults.window(days)})
}

func (s *competitorServiceImpl) ListMetrics(ctx context.Context, userID uint64, query *dto.CompetitorMetricQuery) ([]*dto.CompetitorMetricDTO, error) {
	var since *time.Time
	if query.Days > 0 {
		from := util.WindowStart(nowFunc(), query.Days)
		since = &from
	}
	list, err := s.competitorRepo.ListCompetitorMetrics(ctx, userID, query.CompetitorID, since)
	if err != nil {
		return nil, err
	}
	res := make([]*dto.CompetitorMetricDTO, 0, len(list))
	for _, m := range list {
		res = append(res, toCompetitorMetricDTO(m))
	}
	return res, nil
}

func (s *competitorServiceImpl) RefreshAll(ctx context.Context) (int, error) {
	competitors, err := s.competitorRepo.ListActiveCompetitors(ctx)
	if err != nil {
		return 0, err
	}
	refreshed := 0
	for _, c := range competitors {
		stats, err := s.statsClient.FetchCompetitorStats(ctx, c.Platform, c.AccountID)
		if err != nil {
			log.ErrorContext(ctx, "fetch competitor stats error", "competitor_id", c.ID, "err", err)
			continue
		}
		err = s.competitorRepo.CreateCompetitorMetric(ctx, &model.CompetitorMetric{
			CompetitorID:      c.ID,
			FollowersCount:    stats.FollowersCount,
			FollowingCount:    stats.FollowingCount,
			PostsCount:        stats.PostsCount,
			AvgEngagementRate: stats.AvgEngagementRate,
			AvgLikes:          stats.AvgLikes,
			AvgComments:       stats.AvgComments,
			RecordedAt:        nowFunc().UTC(),
		})
		if err != nil {
			log.ErrorContext(ctx, "save competitor metric error", "competitor_id", c.ID, "err", err)
			continue
		}
		refreshed++
	}
	return refreshed, nil
}
