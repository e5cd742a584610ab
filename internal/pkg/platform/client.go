package platform

import (
	"SocialPulse/internal/api/config"
	"context"
	"fmt"
	log "log/slog"
	"time"

	"github.com/go-resty/resty/v2"
)

// CompetitorStats 第三方平台返回的公开账号统计
type CompetitorStats struct {
	FollowersCount    int64   `json:"followers_count"`
	FollowingCount    int64   `json:"following_count"`
	PostsCount        int64   `json:"posts_count"`
	AvgEngagementRate float64 `json:"avg_engagement_rate"`
	AvgLikes          float64 `json:"avg_likes"`
	AvgComments       float64 `json:"avg_comments"`
}

type StatsClient interface {
	// FetchCompetitorStats 未配置 base_url 时返回全零统计
	FetchCompetitorStats(ctx context.Context, platform, accountID string) (*CompetitorStats, error)
}

type restyStatsClient struct {
	client *resty.Client
}

func NewStatsClient(cfg config.PlatformConfig) StatsClient {
	if cfg.BaseURL == "" {
		log.Warn("Platform stats API not configured, competitor refresh records empty snapshots")
		return &restyStatsClient{}
	}
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	if cfg.ApiKey != "" {
		client.SetAuthToken(cfg.ApiKey)
	}
	return &restyStatsClient{client: client}
}

func (s *restyStatsClient) FetchCompetitorStats(ctx context.Context, platform, accountID string) (*CompetitorStats, error) {
	if s.client == nil {
		return &CompetitorStats{}, nil
	}

	var stats CompetitorStats
	resp, err := s.client.R().
		SetContext(ctx).
		SetPathParams(map[string]string{
			"platform":   platform,
			"account_id": accountID,
		}).
		SetResult(&stats).
		Get("/v1/{platform}/accounts/{account_id}/stats")
	if err != nil {
		log.ErrorContext(ctx, "FetchCompetitorStats", "platform", platform, "account_id", accountID, "err", err)
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("platform stats api returned %d", resp.StatusCode())
	}
	return &stats, nil
}
