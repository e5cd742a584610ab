package repository

import (
	"SocialPulse/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// AudienceFilter 粉丝画像筛选
type AudienceFilter struct {
	AccountID *uint64
	Since     *time.Time
}

type AudienceRepo interface {
	CreateAudience(ctx context.Context, audience *model.Audience) error
	GetLatestAudience(ctx context.Context, accountID uint64) (*model.Audience, error)
	// GetLatestAudienceOwned accountID 为空时取该用户所有账号中最新的一条
	GetLatestAudienceOwned(ctx context.Context, userID uint64, accountID *uint64) (*model.Audience, error)
	GetLatestAudiences(ctx context.Context, accountIDs []uint64) (map[uint64]*model.Audience, error)
	ListAudiences(ctx context.Context, userID uint64, filter AudienceFilter) ([]*model.Audience, error)
}

type audienceRepoImpl struct {
	db *gorm.DB
}

func NewAudienceRepository(db *gorm.DB) AudienceRepo {
	return &audienceRepoImpl{db: db}
}

func (r *audienceRepoImpl) CreateAudience(ctx context.Context, audience *model.Audience) error {
	return r.db.WithContext(ctx).Create(audience).Error
}

func (r *audienceRepoImpl) GetLatestAudience(ctx context.Context, accountID uint64) (*model.Audience, error) {
	var audience model.Audience
	err := r.db.WithContext(ctx).
		Where("social_account_id = ?", accountID).
		Order("recorded_at DESC, id DESC").
		First(&audience).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &audience, nil
}

func (r *audienceRepoImpl) GetLatestAudienceOwned(ctx context.Context, userID uint64, accountID *uint64) (*model.Audience, error) {
	var audience model.Audience
	db := r.db.WithContext(ctx).Scopes(ownedAccounts("social_account_id", userID))
	if accountID != nil {
		db = db.Where("social_account_id = ?", *accountID)
	}
	err := db.Order("recorded_at DESC, id DESC").First(&audience).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &audience, nil
}

func (r *audienceRepoImpl) GetLatestAudiences(ctx context.Context, accountIDs []uint64) (map[uint64]*model.Audience, error) {
	res := make(map[uint64]*model.Audience, len(accountIDs))
	if len(accountIDs) == 0 {
		return res, nil
	}
	audiences := make([]*model.Audience, 0, len(accountIDs))
	err := r.db.WithContext(ctx).
		Where("id IN (?)", r.db.Raw(`SELECT id FROM (
	SELECT a.id, ROW_NUMBER() OVER (PARTITION BY a.social_account_id ORDER BY a.recorded_at DESC, a.id DESC) AS rn
	FROM audiences a
	WHERE a.social_account_id IN ?
) latest WHERE latest.rn = 1`, accountIDs)).
		Find(&audiences).Error
	if err != nil {
		return nil, err
	}
	for _, a := range audiences {
		res[a.SocialAccountID] = a
	}
	return res, nil
}

func (r *audienceRepoImpl) ListAudiences(ctx context.Context, userID uint64, filter AudienceFilter) ([]*model.Audience, error) {
	audiences := make([]*model.Audience, 0)
	db := r.db.WithContext(ctx).Scopes(
		ownedAccounts("social_account_id", userID),
		timeRange("recorded_at", filter.Since, nil),
	)
	if filter.AccountID != nil {
		db = db.Where("social_account_id = ?", *filter.AccountID)
	}
	if err := db.Order("recorded_at ASC, id ASC").Find(&audiences).Error; err != nil {
		return nil, err
	}
	return audiences, nil
}
