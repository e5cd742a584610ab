package service

import (
	"SocialPulse/internal/api/dto"
	"SocialPulse/internal/pkg/consts"
	"SocialPulse/internal/pkg/llm"
	"SocialPulse/internal/pkg/metrics"
	"SocialPulse/internal/pkg/mongo"
	"SocialPulse/internal/repository"
	"context"
	"fmt"
	log "log/slog"
	"time"
)

// Scorer 为洞察打优先级分
type Scorer interface {
	Score(ctx context.Context, title, description string) (int, error)
}

type defaultScorer struct{}

func (defaultScorer) Score(context.Context, string, string) (int, error) {
	return consts.DefaultInsightScore, nil
}

// NewDefaultScorer 固定返回默认优先级
func NewDefaultScorer() Scorer {
	return defaultScorer{}
}

type llmScorer struct {
	assistant *llm.Assistant
}

// NewLLMScorer 大模型打分，未启用或失败时退回默认优先级
func NewLLMScorer(assistant *llm.Assistant) Scorer {
	return &llmScorer{assistant: assistant}
}

func (s *llmScorer) Score(ctx context.Context, title, description string) (int, error) {
	if s.assistant == nil || !s.assistant.Enabled() {
		return consts.DefaultInsightScore, nil
	}
	score, err := s.assistant.ScoreInsight(ctx, title, description)
	if err != nil {
		log.WarnContext(ctx, "llm insight score failed, use default", "err", err)
		return consts.DefaultInsightScore, nil
	}
	return score, nil
}

type InsightService interface {
	ListInsights(ctx context.Context, userID uint64, query *dto.InsightListQuery) (*dto.PageDTO[*dto.InsightDTO], error)
	CreateInsight(ctx context.Context, userID uint64, req *dto.InsightCreateDTO) (*dto.InsightDTO, error)
	GetInsight(ctx context.Context, userID uint64, id string) (*dto.InsightDTO, error)
	DeleteInsight(ctx context.Context, userID uint64, id string) error
	MarkAsRead(ctx context.Context, userID uint64, id string) error
	MarkAllAsRead(ctx context.Context, userID uint64) (int64, error)
	UnreadCount(ctx context.Context, userID uint64) (*dto.UnreadCountDTO, error)
	// Generate 在 [now-lookback, now] 内挑出最新互动率最高的帖子，生成一条洞察。
	// 没有可用帖子时不生成，也不报错
	Generate(ctx context.Context, userID uint64, lookbackDays int) (int, error)
	// GenerateAll 定时任务入口，遍历全部活跃用户
	GenerateAll(ctx context.Context, lookbackDays int) (int, error)
}

type insightServiceImpl struct {
	userRepo    repository.UserRepo
	accountRepo repository.SocialAccountRepo
	postRepo    repository.PostRepo
	metricRepo  repository.PostMetricRepo
	insightRepo mongo.InsightRepo
	scorer      Scorer
	metrics     *metrics.Metrics
}

func NewInsightService(
	userRepo repository.UserRepo,
	accountRepo repository.SocialAccountRepo,
	postRepo repository.PostRepo,
	metricRepo repository.PostMetricRepo,
	insightRepo mongo.InsightRepo,
	scorer Scorer,
	m *metrics.Metrics,
) InsightService {
	if scorer == nil {
		scorer = NewDefaultScorer()
	}
	return &insightServiceImpl{
		userRepo:    userRepo,
		accountRepo: accountRepo,
		postRepo:    postRepo,
		metricRepo:  metricRepo,
		insightRepo: insightRepo,
		scorer:      scorer,
		metrics:     m,
	}
}

func (s *insightServiceImpl) ListInsights(ctx context.Context, userID uint64, query *dto.InsightListQuery) (*dto.PageDTO[*dto.InsightDTO], error) {
	page, pageSize := query.Page, query.PageSize
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	list, total, err := s.insightRepo.GetInsightList(ctx, userID, mongo.InsightFilter{
		InsightType: query.InsightType,
		IsRead:      query.IsRead,
		AccountID:   query.AccountID,
	}, int64(pageSize), int64((page-1)*pageSize))
	if err != nil {
		return nil, err
	}
	items := make([]*dto.InsightDTO, 0, len(list))
	for _, m := range list {
		items = append(items, toInsightDTO(m))
	}
	return &dto.PageDTO[*dto.InsightDTO]{Total: total, Items: items}, nil
}

func (s *insightServiceImpl) CreateInsight(ctx context.Context, userID uint64, req *dto.InsightCreateDTO) (*dto.InsightDTO, error) {
	if req.SocialAccountID != nil {
		account, err := s.accountRepo.GetOwned(ctx, userID, *req.SocialAccountID)
		if err != nil {
			return nil, err
		}
		if account == nil {
			return nil, ErrAccountNotFound
		}
	}
	insight := &mongo.InsightModel{
		UserID:          userID,
		SocialAccountID: req.SocialAccountID,
		InsightType:     req.InsightType,
		Title:           req.Title,
		Description:     req.Description,
		Data:            req.Data,
		Priority:        req.Priority,
		CreatedAt:       nowFunc().UTC(),
	}
	if err := s.insightRepo.CreateInsight(ctx, insight); err != nil {
		return nil, err
	}
	s.countCreated(1)
	return toInsightDTO(insight), nil
}

func (s *insightServiceImpl) GetInsight(ctx context.Context, userID uint64, id string) (*dto.InsightDTO, error) {
	insight, err := s.insightRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if insight == nil {
		return nil, ErrInsightNotFound
	}
	return toInsightDTO(insight), nil
}

func (s *insightServiceImpl) DeleteInsight(ctx context.Context, userID uint64, id string) error {
	ok, err := s.insightRepo.DeleteInsight(ctx, userID, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInsightNotFound
	}
	return nil
}

func (s *insightServiceImpl) MarkAsRead(ctx context.Context, userID uint64, id string) error {
	ok, err := s.insightRepo.MarkAsRead(ctx, userID, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInsightNotFound
	}
	invalidateUserCache(ctx, userID)
	return nil
}

func (s *insightServiceImpl) MarkAllAsRead(ctx context.Context, userID uint64) (int64, error) {
	n, err := s.insightRepo.MarkAllAsRead(ctx, userID)
	if err != nil {
		return 0, err
	}
	invalidateUserCache(ctx, userID)
	return n, nil
}

func (s *insightServiceImpl) UnreadCount(ctx context.Context, userID uint64) (*dto.UnreadCountDTO, error) {
	n, err := s.insightRepo.GetUnreadCount(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.UnreadCountDTO{UnreadCount: n}, nil
}

func (s *insightServiceImpl) Generate(ctx context.Context, userID uint64, lookbackDays int) (int, error) {
	if lookbackDays <= 0 {
		lookbackDays = consts.DefaultInsightDays
	}
	now := nowFunc()
	from := now.AddDate(0, 0, -lookbackDays)
	posts, err := s.postRepo.ListPosts(ctx, userID, repository.PostFilter{DateFrom: &from, DateTo: &now})
	if err != nil {
		return 0, err
	}
	if len(posts) == 0 {
		return 0, nil
	}
	latest, err := s.metricRepo.GetLatestMetrics(ctx, postIDs(posts))
	if err != nil {
		return 0, err
	}
	best, metric := PickBestPost(posts, latest)
	if best == nil {
		return 0, nil
	}

	title := fmt.Sprintf("Your %s content is performing well", best.ContentType)
	description := fmt.Sprintf(
		"Your %s post from %s reached a %.2f%% engagement rate, the best in the last %d days. Consider creating more %s content.",
		best.ContentType, best.PostedAt.UTC().Format(time.DateOnly), metric.EngagementRate, lookbackDays, best.ContentType,
	)
	priority, err := s.scorer.Score(ctx, title, description)
	if err != nil {
		return 0, err
	}

	accountID := best.SocialAccountID
	insight := &mongo.InsightModel{
		UserID:          userID,
		SocialAccountID: &accountID,
		InsightType:     consts.InsightContentPerformance,
		Title:           title,
		Description:     description,
		Data:            map[string]any{"post_id": best.ID},
		Priority:        priority,
		CreatedAt:       now.UTC(),
	}
	if err = s.insightRepo.CreateInsight(ctx, insight); err != nil {
		return 0, err
	}
	s.countCreated(1)
	invalidateUserCache(ctx, userID)
	return 1, nil
}

func (s *insightServiceImpl) GenerateAll(ctx context.Context, lookbackDays int) (int, error) {
	userIDs, err := s.userRepo.ListActiveUserIDs(ctx)
	if err != nil {
		return 0, err
	}
	created := 0
	for _, uid := range userIDs {
		n, err := s.Generate(ctx, uid, lookbackDays)
		if err != nil {
			log.ErrorContext(ctx, "generate insight error", "user_id", uid, "err", err)
			continue
		}
		created += n
	}
	return created, nil
}

func (s *insightServiceImpl) countCreated(n int) {
	if s.metrics != nil {
		s.metrics.InsightsCreated.Add(float64(n))
	}
}
