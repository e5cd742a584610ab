package dto

import "time"

// CommentCreateDTO 仅供数据接入使用
type CommentCreateDTO struct {
	PostID         uint64    `json:"post_id" binding:"required"`
	CommentID      string    `json:"comment_id" binding:"required,max=255"`
	Username       string    `json:"username" binding:"required,max=255"`
	Text           string    `json:"text" binding:"required"`
	LikesCount     int64     `json:"likes_count" binding:"min=0"`
	RepliedToID    *uint64   `json:"replied_to_id"`
	PostedAt       time.Time `json:"posted_at" binding:"required"`
	SentimentScore *float64  `json:"sentiment_score" binding:"omitempty,min=-1,max=1"`
}

type CommentListQuery struct {
	PostID *uint64 `form:"post_id"`
	Search string  `form:"search"`
}

type CommentDTO struct {
	ID             uint64    `json:"id"`
	PostID         uint64    `json:"post_id"`
	CommentID      string    `json:"comment_id"`
	Username       string    `json:"username"`
	Text           string    `json:"text"`
	LikesCount     int64     `json:"likes_count"`
	RepliedToID    *uint64   `json:"replied_to_id"`
	PostedAt       time.Time `json:"posted_at"`
	SentimentScore *float64  `json:"sentiment_score"`
}

type SentimentQuery struct {
	PostID *uint64 `form:"post_id"`
	Days   int     `form:"days" binding:"omitempty,min=1,max=365"`
}

// SentimentDTO 三个分桶之和恰好等于 ScoredComments
type SentimentDTO struct {
	TotalComments    int64   `json:"total_comments"`
	ScoredComments   int64   `json:"scored_comments"`
	Positive         int64   `json:"positive"`
	Neutral          int64   `json:"neutral"`
	Negative         int64   `json:"negative"`
	PositivePercent  float64 `json:"positive_percent"`
	NeutralPercent   float64 `json:"neutral_percent"`
	NegativePercent  float64 `json:"negative_percent"`
	AverageSentiment float64 `json:"average_sentiment"`
}

type CommenterQuery struct {
	Days  int `form:"days" binding:"omitempty,min=1,max=365"`
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

type CommenterDTO struct {
	Username        string    `json:"username"`
	CommentCount    int64     `json:"comment_count"`
	AvgSentiment    float64   `json:"avg_sentiment"`
	TotalLikes      int64     `json:"total_likes"`
	LatestCommentAt time.Time `json:"latest_comment_at"`
}
