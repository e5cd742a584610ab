package service

import (
	"SocialPulse/internal/api/dto"
	"SocialPulse/internal/model"
	"SocialPulse/internal/pkg/consts"
	"SocialPulse/internal/pkg/util"
	"SocialPulse/internal/repository"
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jinzhu/copier"
)

const strategyHashtags = 10

type StrategyService interface {
	CreateStrategy(ctx context.Context, userID uint64, req *dto.StrategyCreateDTO) (*dto.StrategyDTO, error)
	GetStrategy(ctx context.Context, userID, id uint64) (*dto.StrategyDTO, error)
	ListStrategies(ctx context.Context, userID uint64, query *dto.StrategyListQuery) ([]*dto.StrategyDTO, error)
	UpdateStrategy(ctx context.Context, userID, id uint64, req *dto.StrategyUpdateDTO) (*dto.StrategyDTO, error)
	DeleteStrategy(ctx context.Context, userID, id uint64) error
	// ActivateStrategy 同一账号下只保留一个启用的策略
	ActivateStrategy(ctx context.Context, userID, id uint64) (*dto.StrategyDTO, error)
	// GenerateStrategy 根据账号的历史表现生成策略，缺少账号 ID 返回 ErrAccountIDRequired
	GenerateStrategy(ctx context.Context, userID uint64, req *dto.StrategyGenerateDTO) (*dto.StrategyDTO, error)
}

type strategyServiceImpl struct {
	accountRepo  repository.SocialAccountRepo
	postRepo     repository.PostRepo
	metricRepo   repository.PostMetricRepo
	hashtagRepo  repository.HashtagRepo
	patternRepo  repository.EngagementPatternRepo
	strategyRepo repository.ContentStrategyRepo
}

func NewStrategyService(
	accountRepo repository.SocialAccountRepo,
	postRepo repository.PostRepo,
	metricRepo repository.PostMetricRepo,
	hashtagRepo repository.HashtagRepo,
	patternRepo repository.EngagementPatternRepo,
	strategyRepo repository.ContentStrategyRepo,
) StrategyService {
	return &strategyServiceImpl{
		accountRepo:  accountRepo,
		postRepo:     postRepo,
		metricRepo:   metricRepo,
		hashtagRepo:  hashtagRepo,
		patternRepo:  patternRepo,
		strategyRepo: strategyRepo,
	}
}

func toStrategyDTO(m *model.ContentStrategy) *dto.StrategyDTO {
	var res dto.StrategyDTO
	_ = copier.Copy(&res, m)
	if res.Recommendations == nil {
		res.Recommendations = []dto.RecommendationDTO{}
	}
	if res.OptimalTimes == nil {
		res.OptimalTimes = []dto.TimeSlotDTO{}
	}
	if res.ContentMix == nil {
		res.ContentMix = map[string]float64{}
	}
	return &res
}

func (s *strategyServiceImpl) ownedAccount(ctx context.Context, userID, accountID uint64) (*model.SocialAccount, error) {
	account, err := s.accountRepo.GetOwned(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}
	return account, nil
}

func (s *strategyServiceImpl) getOwned(ctx context.Context, userID, id uint64) (*model.ContentStrategy, error) {
	strategy, err := s.strategyRepo.GetOwnedStrategy(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if strategy == nil {
		return nil, ErrStrategyNotFound
	}
	return strategy, nil
}

func (s *strategyServiceImpl) CreateStrategy(ctx context.Context, userID uint64, req *dto.StrategyCreateDTO) (*dto.StrategyDTO, error) {
	if _, err := s.ownedAccount(ctx, userID, req.SocialAccountID); err != nil {
		return nil, err
	}
	strategy := &model.ContentStrategy{UserID: userID}
	_ = copier.Copy(strategy, req)
	strategy.IsActive = req.IsActive == nil || *req.IsActive

	if err := s.strategyRepo.CreateStrategy(ctx, strategy); err != nil {
		return nil, err
	}
	if strategy.IsActive {
		if err := s.strategyRepo.ActivateStrategy(ctx, strategy); err != nil {
			return nil, err
		}
	} else if err := s.strategyRepo.UpdateStrategy(ctx, strategy.ID, map[string]any{"is_active": false}); err != nil {
		return nil, err
	}
	return toStrategyDTO(strategy), nil
}

func (s *strategyServiceImpl) GetStrategy(ctx context.Context, userID, id uint64) (*dto.StrategyDTO, error) {
	strategy, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return toStrategyDTO(strategy), nil
}

func (s *strategyServiceImpl) ListStrategies(ctx context.Context, userID uint64, query *dto.StrategyListQuery) ([]*dto.StrategyDTO, error) {
	list, err := s.strategyRepo.ListStrategies(ctx, userID, repository.StrategyFilter{
		AccountID: query.AccountID,
		IsActive:  query.IsActive,
	})
	if err != nil {
		return nil, err
	}
	res := make([]*dto.StrategyDTO, 0, len(list))
	for _, st := range list {
		res = append(res, toStrategyDTO(st))
	}
	return res, nil
}

func (s *strategyServiceImpl) UpdateStrategy(ctx context.Context, userID, id uint64, req *dto.StrategyUpdateDTO) (*dto.StrategyDTO, error) {
	strategy, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if req.Title != nil {
		strategy.Title = *req.Title
	}
	if req.Description != nil {
		strategy.Description = *req.Description
	}
	if req.Recommendations != nil {
		strategy.Recommendations = nil
		_ = copier.Copy(&strategy.Recommendations, &req.Recommendations)
	}
	if req.OptimalTimes != nil {
		strategy.OptimalTimes = nil
		_ = copier.Copy(&strategy.OptimalTimes, &req.OptimalTimes)
	}
	if req.ContentMix != nil {
		strategy.ContentMix = req.ContentMix
	}
	if req.HashtagStrategy != nil {
		strategy.HashtagStrategy = model.HashtagStrategy{
			Recommended: req.HashtagStrategy.Recommended,
			WindowDays:  req.HashtagStrategy.WindowDays,
		}
	}

	err = s.strategyRepo.UpdateStrategy(ctx, id, map[string]any{
		"title":            strategy.Title,
		"description":      strategy.Description,
		"recommendations":  mustJSON(strategy.Recommendations),
		"optimal_times":    mustJSON(strategy.OptimalTimes),
		"content_mix":      mustJSON(strategy.ContentMix),
		"hashtag_strategy": mustJSON(strategy.HashtagStrategy),
	})
	if err != nil {
		return nil, err
	}
	return s.GetStrategy(ctx, userID, id)
}

func (s *strategyServiceImpl) DeleteStrategy(ctx context.Context, userID, id uint64) error {
	rows, err := s.strategyRepo.DeleteStrategy(ctx, userID, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrStrategyNotFound
	}
	return nil
}

func (s *strategyServiceImpl) ActivateStrategy(ctx context.Context, userID, id uint64) (*dto.StrategyDTO, error) {
	strategy, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err = s.strategyRepo.ActivateStrategy(ctx, strategy); err != nil {
		return nil, err
	}
	strategy.IsActive = true
	return toStrategyDTO(strategy), nil
}

func (s *strategyServiceImpl) GenerateStrategy(ctx context.Context, userID uint64, req *dto.StrategyGenerateDTO) (*dto.StrategyDTO, error) {
	if req.SocialAccountID == nil || *req.SocialAccountID == 0 {
		return nil, ErrAccountIDRequired
	}
	account, err := s.ownedAccount(ctx, userID, *req.SocialAccountID)
	if err != nil {
		return nil, err
	}

	posts, err := s.postRepo.ListPostsByAccount(ctx, account.ID)
	if err != nil {
		return nil, err
	}
	latest, err := s.metricRepo.GetLatestMetrics(ctx, postIDs(posts))
	if err != nil {
		return nil, err
	}
	top := rankedPosts(posts, latest)
	if len(top) > consts.StrategyTopPosts {
		top = top[:consts.StrategyTopPosts]
	}

	patterns, err := s.patternRepo.TopPatterns(ctx, userID, &account.ID, consts.StrategyOptimalSlots)
	if err != nil {
		return nil, err
	}

	since := util.WindowStart(nowFunc(), consts.StrategyHashtagWindow)
	recent := make([]*model.Post, 0, len(posts))
	for _, p := range posts {
		if !p.PostedAt.Before(since) {
			recent = append(recent, p)
		}
	}
	tags, err := s.hashtagRepo.ListPostTags(ctx, postIDs(recent))
	if err != nil {
		return nil, err
	}
	trending := RankHashtags(tags, latest, strategyHashtags)

	strategy := BuildStrategy(account, top, patterns, trending)
	strategy.UserID = userID
	if err = s.strategyRepo.CreateStrategy(ctx, strategy); err != nil {
		return nil, err
	}
	if err = s.strategyRepo.ActivateStrategy(ctx, strategy); err != nil {
		return nil, err
	}
	return toStrategyDTO(strategy), nil
}

// BuildStrategy top 为互动率排名靠前的帖子，patterns 为最佳时段
func BuildStrategy(account *model.SocialAccount, top []*model.Post, patterns []*model.EngagementPattern, trending []*dto.TrendingHashtagDTO) *model.ContentStrategy {
	freq := make(map[string]int)
	for _, p := range top {
		freq[p.ContentType]++
	}
	recommendations := make([]model.Recommendation, 0, len(freq))
	for ct, n := range freq {
		recommendations = append(recommendations, model.Recommendation{
			ContentType: ct,
			Frequency:   n,
			Suggestion:  fmt.Sprintf("%d of your top %d posts are %s. Keep %s in your weekly plan.", n, len(top), ct, ct),
		})
	}
	sort.Slice(recommendations, func(i, j int) bool {
		if recommendations[i].Frequency != recommendations[j].Frequency {
			return recommendations[i].Frequency > recommendations[j].Frequency
		}
		return recommendations[i].ContentType < recommendations[j].ContentType
	})

	mix := make(map[string]float64, len(freq))
	for ct, n := range freq {
		mix[ct] = round2(float64(n) / float64(len(top)) * 100)
	}

	slots := make([]model.TimeSlot, 0, len(patterns))
	for _, p := range patterns {
		slots = append(slots, model.TimeSlot{
			Day:                    consts.DayNames[p.DayOfWeek],
			DayOfWeek:              p.DayOfWeek,
			Hour:                   p.HourOfDay,
			ExpectedEngagementRate: round2(p.AvgEngagementRate),
		})
	}

	hashtags := make([]string, 0, len(trending))
	for _, t := range trending {
		hashtags = append(hashtags, t.Tag)
	}

	return &model.ContentStrategy{
		SocialAccountID: account.ID,
		Title:           fmt.Sprintf("%s strategy for @%s (%s)", account.Platform, account.AccountUsername, nowFunc().UTC().Format(time.DateOnly)),
		Description:     fmt.Sprintf("Generated from %d top posts and %d engagement time slots.", len(top), len(slots)),
		Recommendations: recommendations,
		OptimalTimes:    slots,
		ContentMix:      mix,
		HashtagStrategy: model.HashtagStrategy{Recommended: hashtags, WindowDays: consts.StrategyHashtagWindow},
		IsActive:        true,
	}
}
