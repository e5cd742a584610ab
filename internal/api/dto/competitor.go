package dto

import "time"

type CompetitorCreateDTO struct {
	Platform        string `json:"platform" binding:"required,oneof=instagram facebook twitter linkedin youtube tiktok"`
	AccountID       string `json:"account_id" binding:"required,max=255"`
	AccountUsername string `json:"account_username" binding:"required,max=255"`
	IsActive        *bool  `json:"is_active"`
}

type CompetitorUpdateDTO struct {
	AccountUsername *string `json:"account_username" binding:"omitempty,min=1,max=255"`
	IsActive        *bool   `json:"is_active"`
}

type CompetitorListQuery struct {
	Platform string `form:"platform"`
	IsActive *bool  `form:"is_active"`
}

type CompetitorDTO struct {
	ID              uint64    `json:"id"`
	Platform        string    `json:"platform"`
	AccountID       string    `json:"account_id"`
	AccountUsername string    `json:"account_username"`
	IsActive        bool      `json:"is_active"`
	AddedAt         time.Time `json:"added_at"`
}

type CompetitorMetricDTO struct {
	ID                uint64    `json:"id"`
	CompetitorID      uint64    `json:"competitor_id"`
	FollowersCount    int64     `json:"followers_count"`
	FollowingCount    int64     `json:"following_count"`
	PostsCount        int64     `json:"posts_count"`
	AvgEngagementRate float64   `json:"avg_engagement_rate"`
	AvgLikes          float64   `json:"avg_likes"`
	AvgComments       float64   `json:"avg_comments"`
	RecordedAt        time.Time `json:"recorded_at"`
}

type CompetitorMetricQuery struct {
	CompetitorID *uint64 `form:"competitor_id"`
	Days         int     `form:"days" binding:"omitempty,min=1,max=730"`
}

// CompetitorComparisonDTO LatestMetrics 为空表示尚未采集
type CompetitorComparisonDTO struct {
	Competitor    *CompetitorDTO       `json:"competitor"`
	LatestMetrics *CompetitorMetricDTO `json:"latest_metrics"`
}
