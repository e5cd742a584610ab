package dto

import "time"

type AccountCreateDTO struct {
	Platform        string     `json:"platform" binding:"required,oneof=instagram facebook twitter linkedin youtube tiktok"`
	AccountID       string     `json:"account_id" binding:"required,max=255"`
	AccountUsername string     `json:"account_username" binding:"required,max=255"`
	AccessToken     *string    `json:"access_token"`
	RefreshToken    *string    `json:"refresh_token"`
	TokenExpiresAt  *time.Time `json:"token_expires_at"`
	IsActive        *bool      `json:"is_active"`
}

type AccountUpdateDTO struct {
	AccountUsername *string    `json:"account_username" binding:"omitempty,min=1,max=255"`
	AccessToken     *string    `json:"access_token"`
	RefreshToken    *string    `json:"refresh_token"`
	TokenExpiresAt  *time.Time `json:"token_expires_at"`
	IsActive        *bool      `json:"is_active"`
}

type AccountListQuery struct {
	Platform string `form:"platform"`
	IsActive *bool  `form:"is_active"`
	Search   string `form:"search"`
}

type AccountDTO struct {
	ID              uint64     `json:"id"`
	UserID          uint64     `json:"user_id"`
	Platform        string     `json:"platform"`
	AccountID       string     `json:"account_id"`
	AccountUsername string     `json:"account_username"`
	IsActive        bool       `json:"is_active"`
	ConnectedAt     time.Time  `json:"connected_at"`
	LastSynced      *time.Time `json:"last_synced"`
}

// AccountOverviewDTO 账号概览，粉丝数取最新画像快照
type AccountOverviewDTO struct {
	ID                uint64  `json:"id"`
	Platform          string  `json:"platform"`
	AccountUsername   string  `json:"account_username"`
	FollowersCount    int64   `json:"followers_count"`
	PostsCount        int64   `json:"posts_count"`
	TotalLikes        int64   `json:"total_likes"`
	TotalComments     int64   `json:"total_comments"`
	TotalShares       int64   `json:"total_shares"`
	AvgEngagementRate float64 `json:"avg_engagement_rate"`
}
