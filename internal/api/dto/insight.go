package dto

import "time"

type InsightCreateDTO struct {
	SocialAccountID *uint64        `json:"social_account_id"`
	InsightType     string         `json:"insight_type" binding:"required,oneof=content_performance audience_behavior optimal_timing trend_analysis competitor_analysis recommendation"`
	Title           string         `json:"title" binding:"required,max=255"`
	Description     string         `json:"description" binding:"required"`
	Data            map[string]any `json:"data"`
	Priority        int            `json:"priority" binding:"min=0,max=10"`
}

type InsightListQuery struct {
	InsightType string  `form:"insight_type"`
	IsRead      *bool   `form:"is_read"`
	AccountID   *uint64 `form:"account_id"`
	Page        int     `form:"page" binding:"omitempty,min=1"`
	PageSize    int     `form:"page_size" binding:"omitempty,min=1,max=100"`
}

type InsightDTO struct {
	ID              string         `json:"id"`
	UserID          uint64         `json:"user_id"`
	SocialAccountID *uint64        `json:"social_account_id"`
	InsightType     string         `json:"insight_type"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	Data            map[string]any `json:"data"`
	Priority        int            `json:"priority"`
	IsRead          bool           `json:"is_read"`
	CreatedAt       time.Time      `json:"created_at"`
}

type UnreadCountDTO struct {
	UnreadCount int64 `json:"unread_count"`
}
