package service

import (
	"SocialPulse/internal/api/dto"
	"SocialPulse/internal/model"
	"SocialPulse/internal/pkg/consts"
	"SocialPulse/internal/pkg/mongo"
	"SocialPulse/internal/pkg/util"
	"SocialPulse/internal/repository"
	"context"
	"sort"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"
)

type DashboardService interface {
	// Overview 帖子相关的汇总只统计最近 days 天发布的帖子
	Overview(ctx context.Context, userID uint64, query *dto.DashboardQuery) (*dto.DashboardOverviewDTO, error)
	PlatformBreakdown(ctx context.Context, userID uint64, query *dto.DashboardQuery) ([]*dto.PlatformStatDTO, error)
}

type dashboardServiceImpl struct {
	accountRepo  repository.SocialAccountRepo
	postRepo     repository.PostRepo
	metricRepo   repository.PostMetricRepo
	audienceRepo repository.AudienceRepo
	insightRepo  mongo.InsightRepo
	defaults     AnalyticsDefaults
	cacheTTL     time.Duration
}

func NewDashboardService(
	accountRepo repository.SocialAccountRepo,
	postRepo repository.PostRepo,
	metricRepo repository.PostMetricRepo,
	audienceRepo repository.AudienceRepo,
	insightRepo mongo.InsightRepo,
	defaults AnalyticsDefaults,
	cacheTTL time.Duration,
) DashboardService {
	return &dashboardServiceImpl{
		accountRepo:  accountRepo,
		postRepo:     postRepo,
		metricRepo:   metricRepo,
		audienceRepo: audienceRepo,
		insightRepo:  insightRepo,
		defaults:     defaults,
		cacheTTL:     cacheTTL,
	}
}

// dashboardData 首页聚合所需的原始数据
type dashboardData struct {
	accounts  []*model.SocialAccount
	audiences map[uint64]*model.Audience
	posts     []*model.Post
	latest    map[uint64]*model.PostMetric
	unread    int64
	days      int
}

func (s *dashboardServiceImpl) load(ctx context.Context, userID uint64, days int, withUnread bool) (*dashboardData, error) {
	data := &dashboardData{days: days}
	now := nowFunc()
	since := util.WindowStart(now, days)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		accounts, err := s.accountRepo.List(gCtx, userID, repository.AccountFilter{})
		if err != nil {
			return err
		}
		ids := make([]uint64, 0, len(accounts))
		for _, a := range accounts {
			ids = append(ids, a.ID)
		}
		audiences, err := s.audienceRepo.GetLatestAudiences(gCtx, ids)
		if err != nil {
			return err
		}
		data.accounts, data.audiences = accounts, audiences
		return nil
	})
	g.Go(func() error {
		posts, err := s.postRepo.ListPosts(gCtx, userID, repository.PostFilter{DateFrom: &since, DateTo: &now})
		if err != nil {
			return err
		}
		latest, err := s.metricRepo.GetLatestMetrics(gCtx, postIDs(posts))
		if err != nil {
			return err
		}
		data.posts, data.latest = posts, latest
		return nil
	})
	if withUnread && s.insightRepo != nil {
		g.Go(func() error {
			unread, err := s.insightRepo.GetUnreadCount(gCtx, userID)
			if err != nil {
				return err
			}
			data.unread = unread
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return data, nil
}

// dashboardKey 缓存键按用户和窗口天数区分
func dashboardKey(prefix string, userID uint64, days int) string {
	return prefix + strconv.FormatUint(userID, 10) + ":" + strconv.Itoa(days)
}

func (s *dashboardServiceImpl) Overview(ctx context.Context, userID uint64, query *dto.DashboardQuery) (*dto.DashboardOverviewDTO, error) {
	days := s.defaults.window(query.Days)
	key := dashboardKey(consts.DashboardOverviewKey, userID, days)
	return cached(ctx, "dashboard_overview", key, s.cacheTTL, func() (*dto.DashboardOverviewDTO, error) {
		data, err := s.load(ctx, userID, days, true)
		if err != nil {
			return nil, err
		}
		return buildOverview(data), nil
	})
}

func buildOverview(data *dashboardData) *dto.DashboardOverviewDTO {
	res := &dto.DashboardOverviewDTO{
		PeriodDays:     data.days,
		TotalAccounts:  int64(len(data.accounts)),
		UnreadInsights: data.unread,
	}
	for _, a := range data.accounts {
		if a.IsActive {
			res.ActiveAccounts++
		}
		if aud, ok := data.audiences[a.ID]; ok {
			res.TotalFollowers += aud.FollowersCount
		}
	}

	var sums metricSums
	for _, p := range data.posts {
		sums.add(data.latest[p.ID])
	}
	res.TotalPosts = sums.posts
	res.TotalLikes = sums.likes
	res.TotalComments = sums.comments
	res.TotalShares = sums.shares
	res.TotalReach = sums.reach
	res.AvgEngagementRate = sums.avgEngagement()
	return res
}

func (s *dashboardServiceImpl) PlatformBreakdown(ctx context.Context, userID uint64, query *dto.DashboardQuery) ([]*dto.PlatformStatDTO, error) {
	days := s.defaults.window(query.Days)
	key := dashboardKey(consts.DashboardPlatformKey, userID, days)
	return cached(ctx, "dashboard_platform", key, s.cacheTTL, func() ([]*dto.PlatformStatDTO, error) {
		data, err := s.load(ctx, userID, days, false)
		if err != nil {
			return nil, err
		}
		return buildPlatformBreakdown(data), nil
	})
}

func buildPlatformBreakdown(data *dashboardData) []*dto.PlatformStatDTO {
	platformOf := make(map[uint64]string, len(data.accounts))
	stats := make(map[string]*dto.PlatformStatDTO)
	sums := make(map[string]*metricSums)
	for _, a := range data.accounts {
		platformOf[a.ID] = a.Platform
		st, ok := stats[a.Platform]
		if !ok {
			st = &dto.PlatformStatDTO{Platform: a.Platform}
			stats[a.Platform] = st
			sums[a.Platform] = &metricSums{}
		}
		st.Accounts++
		if aud, ok := data.audiences[a.ID]; ok {
			st.Followers += aud.FollowersCount
		}
	}
	for _, p := range data.posts {
		platform, ok := platformOf[p.SocialAccountID]
		if !ok {
			continue
		}
		sums[platform].add(data.latest[p.ID])
	}

	res := make([]*dto.PlatformStatDTO, 0, len(stats))
	for platform, st := range stats {
		sm := sums[platform]
		st.Posts = sm.posts
		st.TotalLikes = sm.likes
		st.TotalComments = sm.comments
		st.TotalShares = sm.shares
		st.TotalReach = sm.reach
		st.AvgEngagementRate = sm.avgEngagement()
		res = append(res, st)
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].Platform < res[j].Platform
	})
	return res
}
