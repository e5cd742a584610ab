package repository

import (
	"SocialPulse/internal/model"
	"context"

	"gorm.io/gorm"
)

// JobRepo 报告与查询共用的状态机存取，按表区分
type JobRepo interface {
	// GetStatus 任务不存在时返回空字符串
	GetStatus(ctx context.Context, id uint64) (string, error)
	// UpdateStatus 仅当当前状态为 from 时切换到 to，返回受影响行数
	UpdateStatus(ctx context.Context, id uint64, from, to string, fields map[string]any) (int64, error)
}

type jobRepoImpl struct {
	db       *gorm.DB
	newModel func() any
}

func NewReportJobRepository(db *gorm.DB) JobRepo {
	return &jobRepoImpl{db: db, newModel: func() any { return &model.Report{} }}
}

func NewQueryJobRepository(db *gorm.DB) JobRepo {
	return &jobRepoImpl{db: db, newModel: func() any { return &model.Query{} }}
}

func (r *jobRepoImpl) GetStatus(ctx context.Context, id uint64) (string, error) {
	statuses := make([]string, 0, 1)
	err := r.db.WithContext(ctx).
		Model(r.newModel()).
		Where("id = ?", id).
		Limit(1).
		Pluck("status", &statuses).Error
	if err != nil {
		return "", err
	}
	if len(statuses) == 0 {
		return "", nil
	}
	return statuses[0], nil
}

func (r *jobRepoImpl) UpdateStatus(ctx context.Context, id uint64, from, to string, fields map[string]any) (int64, error) {
	updates := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		updates[k] = v
	}
	updates["status"] = to

	result := r.db.WithContext(ctx).
		Model(r.newModel()).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	return result.RowsAffected, result.Error
}
