package repository

import (
	"SocialPulse/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// AccountFilter 账号列表筛选
type AccountFilter struct {
	Platform string
	IsActive *bool
	Search   string
}

type SocialAccountRepo interface {
	Create(ctx context.Context, account *model.SocialAccount) error
	GetByID(ctx context.Context, id uint64) (*model.SocialAccount, error)
	GetOwned(ctx context.Context, userID, id uint64) (*model.SocialAccount, error)
	List(ctx context.Context, userID uint64, filter AccountFilter) ([]*model.SocialAccount, error)
	ListActive(ctx context.Context) ([]*model.SocialAccount, error)
	Update(ctx context.Context, id uint64, fields map[string]any) error
	TouchSynced(ctx context.Context, id uint64, at time.Time) error
	Delete(ctx context.Context, userID, id uint64) (int64, error)
}

type socialAccountRepoImpl struct {
	db *gorm.DB
}

func NewSocialAccountRepository(db *gorm.DB) SocialAccountRepo {
	return &socialAccountRepoImpl{db: db}
}

func (r *socialAccountRepoImpl) Create(ctx context.Context, account *model.SocialAccount) error {
	return r.db.WithContext(ctx).Create(account).Error
}

func (r *socialAccountRepoImpl) GetByID(ctx context.Context, id uint64) (*model.SocialAccount, error) {
	var account model.SocialAccount
	err := r.db.WithContext(ctx).First(&account, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

func (r *socialAccountRepoImpl) GetOwned(ctx context.Context, userID, id uint64) (*model.SocialAccount, error) {
	var account model.SocialAccount
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

func (r *socialAccountRepoImpl) List(ctx context.Context, userID uint64, filter AccountFilter) ([]*model.SocialAccount, error) {
	accounts := make([]*model.SocialAccount, 0)
	db := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if filter.Platform != "" {
		db = db.Where("platform = ?", filter.Platform)
	}
	if filter.IsActive != nil {
		db = db.Where("is_active = ?", *filter.IsActive)
	}
	if filter.Search != "" {
		db = db.Where("account_username LIKE ?", "%"+filter.Search+"%")
	}
	if err := db.Order("connected_at DESC, id DESC").Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r *socialAccountRepoImpl) ListActive(ctx context.Context) ([]*model.SocialAccount, error) {
	accounts := make([]*model.SocialAccount, 0)
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("id ASC").Find(&accounts).Error
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

// Update 使用 map 更新，is_active=false 这类零值才能写入
func (r *socialAccountRepoImpl) Update(ctx context.Context, id uint64, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&model.SocialAccount{}).Where("id = ?", id).Updates(fields).Error
}

func (r *socialAccountRepoImpl) TouchSynced(ctx context.Context, id uint64, at time.Time) error {
	return r.db.WithContext(ctx).Model(&model.SocialAccount{}).Where("id = ?", id).Update("last_synced", at).Error
}

func (r *socialAccountRepoImpl) Delete(ctx context.Context, userID, id uint64) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&model.SocialAccount{})
	return result.RowsAffected, result.Error
}
