package dto

import "time"

// MetricCreateDTO EngagementRate 为空时按最新粉丝数计算
type MetricCreateDTO struct {
	PostID         uint64     `json:"post_id" binding:"required"`
	LikesCount     int64      `json:"likes_count" binding:"min=0"`
	CommentsCount  int64      `json:"comments_count" binding:"min=0"`
	SharesCount    int64      `json:"shares_count" binding:"min=0"`
	SavesCount     int64      `json:"saves_count" binding:"min=0"`
	ViewsCount     int64      `json:"views_count" binding:"min=0"`
	Reach          int64      `json:"reach" binding:"min=0"`
	Impressions    int64      `json:"impressions" binding:"min=0"`
	EngagementRate *float64   `json:"engagement_rate" binding:"omitempty,min=0"`
	RecordedAt     *time.Time `json:"recorded_at"`
}

type MetricListQuery struct {
	PostID   *uint64    `form:"post_id"`
	DateFrom *time.Time `form:"date_from" time_format:"2006-01-02"`
	DateTo   *time.Time `form:"date_to" time_format:"2006-01-02"`
}
