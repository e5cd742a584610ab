package repository

import (
	"SocialPulse/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type QueryRepo interface {
	CreateQuery(ctx context.Context, query *model.Query) error
	GetOwnedQuery(ctx context.Context, userID, id uint64) (*model.Query, error)
	ListQueries(ctx context.Context, userID uint64, status string) ([]*model.Query, error)
	DeleteQuery(ctx context.Context, userID, id uint64) (int64, error)
}

type queryRepoImpl struct {
	db *gorm.DB
}

func NewQueryRepository(db *gorm.DB) QueryRepo {
	return &queryRepoImpl{db: db}
}

func (r *queryRepoImpl) CreateQuery(ctx context.Context, query *model.Query) error {
	return r.db.WithContext(ctx).Create(query).Error
}

func (r *queryRepoImpl) GetOwnedQuery(ctx context.Context, userID, id uint64) (*model.Query, error) {
	var query model.Query
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&query).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &query, nil
}

func (r *queryRepoImpl) ListQueries(ctx context.Context, userID uint64, status string) ([]*model.Query, error) {
	queries := make([]*model.Query, 0)
	db := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if status != "" {
		db = db.Where("status = ?", status)
	}
	if err := db.Order("created_at DESC, id DESC").Find(&queries).Error; err != nil {
		return nil, err
	}
	return queries, nil
}

func (r *queryRepoImpl) DeleteQuery(ctx context.Context, userID, id uint64) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&model.Query{})
	return result.RowsAffected, result.Error
}
