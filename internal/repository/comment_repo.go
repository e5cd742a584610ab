package repository

import (
	"SocialPulse/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CommentFilter 评论筛选，Since 为时间窗口起点
type CommentFilter struct {
	PostID *uint64
	Search string
	Since  *time.Time
}

// CommenterStat 评论者聚合
type CommenterStat struct {
	Username        string
	CommentCount    int64
	AvgSentiment    *float64
	TotalLikes      int64
	LatestCommentAt time.Time
}

type CommentRepo interface {
	// UpsertComment 同一外部评论重复推送时只刷新点赞数与情感分
	UpsertComment(ctx context.Context, comment *model.Comment) error
	ListComments(ctx context.Context, userID uint64, filter CommentFilter) ([]*model.Comment, error)
	CountByPost(ctx context.Context, postID uint64) (int64, error)
	// TopCommenters 只统计 since 之后发布的评论
	TopCommenters(ctx context.Context, userID uint64, since time.Time, limit int) ([]*CommenterStat, error)
}

type commentRepoImpl struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepo {
	return &commentRepoImpl{db: db}
}

func (r *commentRepoImpl) UpsertComment(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "comment_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"likes_count", "sentiment_score"}),
	}).Create(comment).Error
}

func (r *commentRepoImpl) ListComments(ctx context.Context, userID uint64, filter CommentFilter) ([]*model.Comment, error) {
	comments := make([]*model.Comment, 0)
	db := r.db.WithContext(ctx).Scopes(
		ownedPosts("post_id", userID),
		timeRange("posted_at", filter.Since, nil),
	)
	if filter.PostID != nil {
		db = db.Where("post_id = ?", *filter.PostID)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		db = db.Where("(text LIKE ? OR username LIKE ?)", like, like)
	}
	if err := db.Order("posted_at DESC, id DESC").Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *commentRepoImpl) CountByPost(ctx context.Context, postID uint64) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Comment{}).Where("post_id = ?", postID).Count(&total).Error
	return total, err
}

func (r *commentRepoImpl) TopCommenters(ctx context.Context, userID uint64, since time.Time, limit int) ([]*CommenterStat, error) {
	stats := make([]*CommenterStat, 0)
	err := r.db.WithContext(ctx).
		Model(&model.Comment{}).
		Scopes(
			ownedPosts("post_id", userID),
			timeRange("posted_at", &since, nil),
		).
		Select("username, COUNT(*) AS comment_count, AVG(sentiment_score) AS avg_sentiment, " +
			"COALESCE(SUM(likes_count), 0) AS total_likes, MAX(posted_at) AS latest_comment_at").
		Group("username").
		Order("comment_count DESC, username ASC").
		Limit(limit).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}
