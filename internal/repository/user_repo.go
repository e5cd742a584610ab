package repository

import (
	"SocialPulse/internal/model"
	"context"

	"gorm.io/gorm"
)

type UserRepo interface {
	// ListActiveUserIDs 返回至少绑定了一个启用账号的活跃用户
	ListActiveUserIDs(ctx context.Context) ([]uint64, error)
}

type UserRepoImpl struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepo {
	return &UserRepoImpl{db: db}
}

func (s *UserRepoImpl) ListActiveUserIDs(ctx context.Context) ([]uint64, error) {
	ids := make([]uint64, 0)
	err := s.db.WithContext(ctx).
		Model(&model.User{}).
		Where("is_active = ?", true).
		Where("EXISTS (SELECT 1 FROM social_accounts sa WHERE sa.user_id = users.id AND sa.is_active = ?)", true).
		Order("id ASC").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
