package repository

import (
	"SocialPulse/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// MetricFilter 指标快照筛选
type MetricFilter struct {
	PostID   *uint64
	DateFrom *time.Time
	DateTo   *time.Time
}

type PostMetricRepo interface {
	CreateMetric(ctx context.Context, metric *model.PostMetric) error
	// GetLatestMetric 最新快照：recorded_at 最大，相同时取 id 最大
	GetLatestMetric(ctx context.Context, postID uint64) (*model.PostMetric, error)
	// GetLatestMetrics 批量取最新快照，没有快照的帖子不出现在结果里
	GetLatestMetrics(ctx context.Context, postIDs []uint64) (map[uint64]*model.PostMetric, error)
	ListMetricsByPost(ctx context.Context, postID uint64) ([]*model.PostMetric, error)
	ListMetrics(ctx context.Context, userID uint64, filter MetricFilter) ([]*model.PostMetric, error)
	DeleteMetric(ctx context.Context, userID, id uint64) (int64, error)
}

type postMetricRepoImpl struct {
	db *gorm.DB
}

func NewPostMetricRepository(db *gorm.DB) PostMetricRepo {
	return &postMetricRepoImpl{db: db}
}

const latestMetricsSQL = `SELECT id, post_id, likes_count, comments_count, shares_count, saves_count,
	views_count, reach, impressions, engagement_rate, recorded_at
FROM (
	SELECT pm.*, ROW_NUMBER() OVER (PARTITION BY pm.post_id ORDER BY pm.recorded_at DESC, pm.id DESC) AS rn
	FROM post_metrics pm
	WHERE pm.post_id IN ?
) latest
WHERE latest.rn = 1`

func (r *postMetricRepoImpl) CreateMetric(ctx context.Context, metric *model.PostMetric) error {
	return r.db.WithContext(ctx).Create(metric).Error
}

func (r *postMetricRepoImpl) GetLatestMetric(ctx context.Context, postID uint64) (*model.PostMetric, error) {
	var metric model.PostMetric
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("recorded_at DESC, id DESC").
		First(&metric).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &metric, nil
}

func (r *postMetricRepoImpl) GetLatestMetrics(ctx context.Context, postIDs []uint64) (map[uint64]*model.PostMetric, error) {
	res := make(map[uint64]*model.PostMetric, len(postIDs))
	if len(postIDs) == 0 {
		return res, nil
	}
	metrics := make([]*model.PostMetric, 0, len(postIDs))
	if err := r.db.WithContext(ctx).Raw(latestMetricsSQL, postIDs).Scan(&metrics).Error; err != nil {
		return nil, err
	}
	for _, m := range metrics {
		res[m.PostID] = m
	}
	return res, nil
}

func (r *postMetricRepoImpl) ListMetricsByPost(ctx context.Context, postID uint64) ([]*model.PostMetric, error) {
	metrics := make([]*model.PostMetric, 0)
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("recorded_at ASC, id ASC").
		Find(&metrics).Error
	if err != nil {
		return nil, err
	}
	return metrics, nil
}

func (r *postMetricRepoImpl) ListMetrics(ctx context.Context, userID uint64, filter MetricFilter) ([]*model.PostMetric, error) {
	metrics := make([]*model.PostMetric, 0)
	db := r.db.WithContext(ctx).Scopes(
		ownedPosts("post_id", userID),
		timeRange("recorded_at", filter.DateFrom, filter.DateTo),
	)
	if filter.PostID != nil {
		db = db.Where("post_id = ?", *filter.PostID)
	}
	if err := db.Order("recorded_at DESC, id DESC").Find(&metrics).Error; err != nil {
		return nil, err
	}
	return metrics, nil
}

// DeleteMetric 删除快照，并清掉指向该快照的折叠游标，使帖子剩下的最新快照能被重新折叠
func (r *postMetricRepoImpl) DeleteMetric(ctx context.Context, userID, id uint64) (int64, error) {
	var rows int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Scopes(ownedPosts("post_id", userID)).
			Where("id = ?", id).
			Delete(&model.PostMetric{})
		if result.Error != nil {
			return result.Error
		}
		rows = result.RowsAffected
		if rows == 0 {
			return nil
		}
		return tx.Where("metric_id = ?", id).Delete(&model.PatternFoldCursor{}).Error
	})
	if err != nil {
		return 0, err
	}
	return rows, nil
}
