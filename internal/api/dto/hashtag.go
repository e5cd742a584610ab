package dto

import "time"

type HashtagDTO struct {
	ID         uint64    `json:"id"`
	Tag        string    `json:"tag"`
	UsageCount int64     `json:"usage_count"`
	CreatedAt  time.Time `json:"created_at"`
}

type TrendingQuery struct {
	Days  int `form:"days" binding:"omitempty,min=1,max=365"`
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

// TrendingHashtagDTO UsageCount 为窗口内使用该话题的不同帖子数
type TrendingHashtagDTO struct {
	HashtagID         uint64  `json:"hashtag_id"`
	Tag               string  `json:"tag"`
	UsageCount        int64   `json:"usage_count"`
	AvgEngagementRate float64 `json:"avg_engagement_rate"`
}

type HashtagPerformanceDTO struct {
	HashtagID         uint64                `json:"hashtag_id"`
	Tag               string                `json:"tag"`
	TotalPosts        int64                 `json:"total_posts"`
	AvgEngagementRate float64               `json:"avg_engagement_rate"`
	TotalLikes        int64                 `json:"total_likes"`
	TotalComments     int64                 `json:"total_comments"`
	TotalShares       int64                 `json:"total_shares"`
	TopPosts          []*PostPerformanceDTO `json:"top_posts"`
}
