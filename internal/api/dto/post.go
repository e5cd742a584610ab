package dto

import "time"

type PostCreateDTO struct {
	SocialAccountID uint64    `json:"social_account_id" binding:"required"`
	PostID          string    `json:"post_id" binding:"required,max=255"`
	ContentType     string    `json:"content_type" binding:"required,oneof=reel carousel static story video"`
	Caption         *string   `json:"caption"`
	MediaURL        *string   `json:"media_url" binding:"omitempty,url,max=1000"`
	ThumbnailURL    *string   `json:"thumbnail_url" binding:"omitempty,url,max=1000"`
	PostedAt        time.Time `json:"posted_at" binding:"required"`
	Hashtags        []string  `json:"hashtags"`
}

// PostUpdateDTO 帖子除归档标记外不可修改
type PostUpdateDTO struct {
	IsArchived *bool `json:"is_archived" binding:"required"`
}

// AnalyticsQuery 分析类接口的公共筛选
type AnalyticsQuery struct {
	Days        int     `form:"days" binding:"omitempty,min=1,max=365"`
	ContentType string  `form:"content_type" binding:"omitempty,oneof=reel carousel static story video"`
	Platform    string  `form:"platform"`
	AccountID   *uint64 `form:"account_id"`
	HashtagID   *uint64 `form:"hashtag_id"`
	Limit       int     `form:"limit" binding:"omitempty,min=1,max=100"`
}

type PostListQuery struct {
	ContentType   string     `form:"content_type" binding:"omitempty,oneof=reel carousel static story video"`
	Platform      string     `form:"platform"`
	AccountID     *uint64    `form:"account_id"`
	HashtagID     *uint64    `form:"hashtag_id"`
	DateFrom      *time.Time `form:"date_from" time_format:"2006-01-02"`
	DateTo        *time.Time `form:"date_to" time_format:"2006-01-02"`
	MinLikes      *int64     `form:"min_likes" binding:"omitempty,min=0"`
	MinEngagement *float64   `form:"min_engagement" binding:"omitempty,min=0"`
	Search        string     `form:"search"`
	Ordering      string     `form:"ordering" binding:"omitempty,oneof=posted_at -posted_at engagement -engagement likes -likes"`
	Page          int        `form:"page" binding:"omitempty,min=1"`
	PageSize      int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// MetricSnapshotDTO 单条指标快照
type MetricSnapshotDTO struct {
	ID             uint64    `json:"id"`
	PostID         uint64    `json:"post_id"`
	LikesCount     int64     `json:"likes_count"`
	CommentsCount  int64     `json:"comments_count"`
	SharesCount    int64     `json:"shares_count"`
	SavesCount     int64     `json:"saves_count"`
	ViewsCount     int64     `json:"views_count"`
	Reach          int64     `json:"reach"`
	Impressions    int64     `json:"impressions"`
	EngagementRate float64   `json:"engagement_rate"`
	RecordedAt     time.Time `json:"recorded_at"`
}

type PostDTO struct {
	ID              uint64             `json:"id"`
	SocialAccountID uint64             `json:"social_account_id"`
	PostID          string             `json:"post_id"`
	ContentType     string             `json:"content_type"`
	Caption         *string            `json:"caption"`
	MediaURL        *string            `json:"media_url"`
	ThumbnailURL    *string            `json:"thumbnail_url"`
	PostedAt        time.Time          `json:"posted_at"`
	IsArchived      bool               `json:"is_archived"`
	CreatedAt       time.Time          `json:"created_at"`
	Hashtags        []string           `json:"hashtags"`
	LatestMetrics   *MetricSnapshotDTO `json:"latest_metrics"`
}

// PostPerformanceDTO Top-K 排名项
type PostPerformanceDTO struct {
	Rank           int       `json:"rank"`
	PostID         uint64    `json:"post_id"`
	ExternalID     string    `json:"external_id"`
	ContentType    string    `json:"content_type"`
	Caption        *string   `json:"caption"`
	PostedAt       time.Time `json:"posted_at"`
	EngagementRate float64   `json:"engagement_rate"`
	LikesCount     int64     `json:"likes_count"`
	CommentsCount  int64     `json:"comments_count"`
	SharesCount    int64     `json:"shares_count"`
	Reach          int64     `json:"reach"`
}

// ContentTypeStatDTO 按内容类型聚合
type ContentTypeStatDTO struct {
	ContentType       string  `json:"content_type"`
	Count             int64   `json:"count"`
	AvgEngagementRate float64 `json:"avg_engagement_rate"`
	AvgLikes          float64 `json:"avg_likes"`
	AvgComments       float64 `json:"avg_comments"`
	AvgShares         float64 `json:"avg_shares"`
	AvgReach          float64 `json:"avg_reach"`
	AvgViews          float64 `json:"avg_views"`
	TotalLikes        int64   `json:"total_likes"`
	TotalComments     int64   `json:"total_comments"`
	TotalShares       int64   `json:"total_shares"`
}

// TimelinePointDTO 按天聚合的一行，没有数据的日期也会出现
type TimelinePointDTO struct {
	Date              string  `json:"date"`
	PostsCount        int64   `json:"posts_count"`
	TotalLikes        int64   `json:"total_likes"`
	TotalComments     int64   `json:"total_comments"`
	TotalShares       int64   `json:"total_shares"`
	AvgEngagementRate float64 `json:"avg_engagement_rate"`
}

type PostAnalyticsDTO struct {
	Post           *PostDTO             `json:"post"`
	MetricsHistory []*MetricSnapshotDTO `json:"metrics_history"`
	CommentsCount  int64                `json:"comments_count"`
	Sentiment      *SentimentDTO        `json:"sentiment"`
	Hashtags       []string             `json:"hashtags"`
}
