package repository

import (
	"SocialPulse/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

// ReportFilter 报告列表筛选
type ReportFilter struct {
	ReportType string
	Status     string
}

type ReportRepo interface {
	CreateReport(ctx context.Context, report *model.Report) error
	GetOwnedReport(ctx context.Context, userID, id uint64) (*model.Report, error)
	ListReports(ctx context.Context, userID uint64, filter ReportFilter) ([]*model.Report, error)
	UpdateReport(ctx context.Context, id uint64, fields map[string]any) error
	DeleteReport(ctx context.Context, userID, id uint64) (int64, error)
}

type reportRepoImpl struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepo {
	return &reportRepoImpl{db: db}
}

func (r *reportRepoImpl) CreateReport(ctx context.Context, report *model.Report) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *reportRepoImpl) GetOwnedReport(ctx context.Context, userID, id uint64) (*model.Report, error) {
	var report model.Report
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&report).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &report, nil
}

func (r *reportRepoImpl) ListReports(ctx context.Context, userID uint64, filter ReportFilter) ([]*model.Report, error) {
	reports := make([]*model.Report, 0)
	db := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if filter.ReportType != "" {
		db = db.Where("report_type = ?", filter.ReportType)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if err := db.Order("created_at DESC, id DESC").Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *reportRepoImpl) UpdateReport(ctx context.Context, id uint64, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&model.Report{}).Where("id = ?", id).Updates(fields).Error
}

func (r *reportRepoImpl) DeleteReport(ctx context.Context, userID, id uint64) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&model.Report{})
	return result.RowsAffected, result.Error
}
