package repository

import (
	"SocialPulse/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

// StrategyFilter 内容策略筛选
type StrategyFilter struct {
	AccountID *uint64
	IsActive  *bool
}

type ContentStrategyRepo interface {
	CreateStrategy(ctx context.Context, strategy *model.ContentStrategy) error
	GetOwnedStrategy(ctx context.Context, userID, id uint64) (*model.ContentStrategy, error)
	ListStrategies(ctx context.Context, userID uint64, filter StrategyFilter) ([]*model.ContentStrategy, error)
	UpdateStrategy(ctx context.Context, id uint64, fields map[string]any) error
	DeleteStrategy(ctx context.Context, userID, id uint64) (int64, error)
	// ActivateStrategy 启用该策略并停用同账号下的其他策略
	ActivateStrategy(ctx context.Context, strategy *model.ContentStrategy) error
}

type contentStrategyRepoImpl struct {
	db *gorm.DB
}

func NewContentStrategyRepository(db *gorm.DB) ContentStrategyRepo {
	return &contentStrategyRepoImpl{db: db}
}

func (r *contentStrategyRepoImpl) CreateStrategy(ctx context.Context, strategy *model.ContentStrategy) error {
	return r.db.WithContext(ctx).Create(strategy).Error
}

func (r *contentStrategyRepoImpl) GetOwnedStrategy(ctx context.Context, userID, id uint64) (*model.ContentStrategy, error) {
	var strategy model.ContentStrategy
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&strategy).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &strategy, nil
}

func (r *contentStrategyRepoImpl) ListStrategies(ctx context.Context, userID uint64, filter StrategyFilter) ([]*model.ContentStrategy, error) {
	strategies := make([]*model.ContentStrategy, 0)
	db := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if filter.AccountID != nil {
		db = db.Where("social_account_id = ?", *filter.AccountID)
	}
	if filter.IsActive != nil {
		db = db.Where("is_active = ?", *filter.IsActive)
	}
	if err := db.Order("created_at DESC, id DESC").Find(&strategies).Error; err != nil {
		return nil, err
	}
	return strategies, nil
}

func (r *contentStrategyRepoImpl) UpdateStrategy(ctx context.Context, id uint64, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&model.ContentStrategy{}).Where("id = ?", id).Updates(fields).Error
}

func (r *contentStrategyRepoImpl) DeleteStrategy(ctx context.Context, userID, id uint64) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&model.ContentStrategy{})
	return result.RowsAffected, result.Error
}

func (r *contentStrategyRepoImpl) ActivateStrategy(ctx context.Context, strategy *model.ContentStrategy) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&model.ContentStrategy{}).
			Where("user_id = ? AND social_account_id = ? AND id <> ?", strategy.UserID, strategy.SocialAccountID, strategy.ID).
			Update("is_active", false).Error
		if err != nil {
			return err
		}
		return tx.Model(&model.ContentStrategy{}).Where("id = ?", strategy.ID).Update("is_active", true).Error
	})
}
