package repository

import (
	"SocialPulse/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// CompetitorFilter 竞品列表筛选
type CompetitorFilter struct {
	Platform string
	IsActive *bool
}

type CompetitorRepo interface {
	CreateCompetitor(ctx context.Context, competitor *model.Competitor) error
	GetOwnedCompetitor(ctx context.Context, userID, id uint64) (*model.Competitor, error)
	ListCompetitors(ctx context.Context, userID uint64, filter CompetitorFilter) ([]*model.Competitor, error)
	ListOwnedCompetitorsByIDs(ctx context.Context, userID uint64, ids []uint64) ([]*model.Competitor, error)
	ListActiveCompetitors(ctx context.Context) ([]*model.Competitor, error)
	UpdateCompetitor(ctx context.Context, id uint64, fields map[string]any) error
	DeleteCompetitor(ctx context.Context, userID, id uint64) (int64, error)

	CreateCompetitorMetric(ctx context.Context, metric *model.CompetitorMetric) error
	GetLatestCompetitorMetrics(ctx context.Context, competitorIDs []uint64) (map[uint64]*model.CompetitorMetric, error)
	ListCompetitorMetrics(ctx context.Context, userID uint64, competitorID *uint64, since *time.Time) ([]*model.CompetitorMetric, error)
}

type competitorRepoImpl struct {
	db *gorm.DB
}

func NewCompetitorRepository(db *gorm.DB) CompetitorRepo {
	return &competitorRepoImpl{db: db}
}

func (r *competitorRepoImpl) CreateCompetitor(ctx context.Context, competitor *model.Competitor) error {
	return r.db.WithContext(ctx).Create(competitor).Error
}

func (r *competitorRepoImpl) GetOwnedCompetitor(ctx context.Context, userID, id uint64) (*model.Competitor, error) {
	var competitor model.Competitor
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&competitor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &competitor, nil
}

func (r *competitorRepoImpl) ListCompetitors(ctx context.Context, userID uint64, filter CompetitorFilter) ([]*model.Competitor, error) {
	competitors := make([]*model.Competitor, 0)
	db := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if filter.Platform != "" {
		db = db.Where("platform = ?", filter.Platform)
	}
	if filter.IsActive != nil {
		db = db.Where("is_active = ?", *filter.IsActive)
	}
	if err := db.Order("added_at DESC, id DESC").Find(&competitors).Error; err != nil {
		return nil, err
	}
	return competitors, nil
}

func (r *competitorRepoImpl) ListOwnedCompetitorsByIDs(ctx context.Context, userID uint64, ids []uint64) ([]*model.Competitor, error) {
	competitors := make([]*model.Competitor, 0)
	if len(ids) == 0 {
		return competitors, nil
	}
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND id IN ?", userID, ids).
		Order("id ASC").
		Find(&competitors).Error
	if err != nil {
		return nil, err
	}
	return competitors, nil
}

func (r *competitorRepoImpl) ListActiveCompetitors(ctx context.Context) ([]*model.Competitor, error) {
	competitors := make([]*model.Competitor, 0)
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("id ASC").Find(&competitors).Error
	if err != nil {
		return nil, err
	}
	return competitors, nil
}

func (r *competitorRepoImpl) UpdateCompetitor(ctx context.Context, id uint64, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&model.Competitor{}).Where("id = ?", id).Updates(fields).Error
}

func (r *competitorRepoImpl) DeleteCompetitor(ctx context.Context, userID, id uint64) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&model.Competitor{})
	return result.RowsAffected, result.Error
}

func (r *competitorRepoImpl) CreateCompetitorMetric(ctx context.Context, metric *model.CompetitorMetric) error {
	return r.db.WithContext(ctx).Create(metric).Error
}

func (r *competitorRepoImpl) GetLatestCompetitorMetrics(ctx context.Context, competitorIDs []uint64) (map[uint64]*model.CompetitorMetric, error) {
	res := make(map[uint64]*model.CompetitorMetric, len(competitorIDs))
	if len(competitorIDs) == 0 {
		return res, nil
	}
	metrics := make([]*model.CompetitorMetric, 0, len(competitorIDs))
	err := r.db.WithContext(ctx).
		Where("id IN (?)", r.db.Raw(`SELECT id FROM (
	SELECT cm.id, ROW_NUMBER() OVER (PARTITION BY cm.competitor_id ORDER BY cm.recorded_at DESC, cm.id DESC) AS rn
	FROM competitor_metrics cm
	WHERE cm.competitor_id IN ?
) latest WHERE latest.rn = 1`, competitorIDs)).
		Find(&metrics).Error
	if err != nil {
		return nil, err
	}
	for _, m := range metrics {
		res[m.CompetitorID] = m
	}
	return res, nil
}

func (r *competitorRepoImpl) ListCompetitorMetrics(ctx context.Context, userID uint64, competitorID *uint64, since *time.Time) ([]*model.CompetitorMetric, error) {
	metrics := make([]*model.CompetitorMetric, 0)
	db := r.db.WithContext(ctx).
		Where("competitor_id IN (SELECT id FROM competitors WHERE user_id = ?)", userID).
		Scopes(timeRange("recorded_at", since, nil))
	if competitorID != nil {
		db = db.Where("competitor_id = ?", *competitorID)
	}
	if err := db.Order("recorded_at ASC, id ASC").Find(&metrics).Error; err != nil {
		return nil, err
	}
	return metrics, nil
}
