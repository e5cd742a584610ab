package repository

import (
	"SocialPulse/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// PostFilter 帖子筛选条件，IDs 非 nil 时只在这些帖子中查找
type PostFilter struct {
	AccountID   *uint64
	Platform    string
	ContentType string
	HashtagID   *uint64
	DateFrom    *time.Time
	DateTo      *time.Time
	IDs         []uint64
	Offset      int
	Limit       int
}

type PostRepo interface {
	CreatePost(ctx context.Context, post *model.Post) error
	GetPost(ctx context.Context, id uint64) (*model.Post, error)
	GetOwnedPost(ctx context.Context, userID, id uint64) (*model.Post, error)
	GetPostByExternalID(ctx context.Context, externalID string) (*model.Post, error)
	ListPosts(ctx context.Context, userID uint64, filter PostFilter) ([]*model.Post, error)
	CountPosts(ctx context.Context, userID uint64, filter PostFilter) (int64, error)
	ListPostsByAccount(ctx context.Context, accountID uint64) ([]*model.Post, error)
	UpdateArchived(ctx context.Context, id uint64, archived bool) error
	DeletePost(ctx context.Context, userID, id uint64) (int64, error)
}

type postRepoImpl struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepo {
	return &postRepoImpl{db: db}
}

func (r *postRepoImpl) CreatePost(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepoImpl) GetPost(ctx context.Context, id uint64) (*model.Post, error) {
	var post model.Post
	err := r.db.WithContext(ctx).First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

func (r *postRepoImpl) GetOwnedPost(ctx context.Context, userID, id uint64) (*model.Post, error) {
	var post model.Post
	err := r.db.WithContext(ctx).
		Scopes(ownedAccounts("social_account_id", userID)).
		Where("id = ?", id).
		First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

func (r *postRepoImpl) GetPostByExternalID(ctx context.Context, externalID string) (*model.Post, error) {
	var post model.Post
	err := r.db.WithContext(ctx).Where("post_id = ?", externalID).First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// filtered 所有查询都经过 social_accounts 连接以校验归属
func (r *postRepoImpl) filtered(ctx context.Context, userID uint64, filter PostFilter) *gorm.DB {
	db := r.db.WithContext(ctx).
		Model(&model.Post{}).
		Joins("JOIN social_accounts sa ON sa.id = posts.social_account_id").
		Where("sa.user_id = ?", userID)
	if filter.AccountID != nil {
		db = db.Where("posts.social_account_id = ?", *filter.AccountID)
	}
	if filter.Platform != "" {
		db = db.Where("sa.platform = ?", filter.Platform)
	}
	if filter.ContentType != "" {
		db = db.Where("posts.content_type = ?", filter.ContentType)
	}
	if filter.HashtagID != nil {
		db = db.Where("posts.id IN (SELECT post_id FROM post_hashtags WHERE hashtag_id = ?)", *filter.HashtagID)
	}
	if filter.IDs != nil {
		db = db.Where("posts.id IN ?", filter.IDs)
	}
	return db.Scopes(timeRange("posts.posted_at", filter.DateFrom, filter.DateTo))
}

func (r *postRepoImpl) ListPosts(ctx context.Context, userID uint64, filter PostFilter) ([]*model.Post, error) {
	posts := make([]*model.Post, 0)
	if filter.IDs != nil && len(filter.IDs) == 0 {
		return posts, nil
	}
	db := r.filtered(ctx, userID, filter).
		Select("posts.*").
		Order("posts.posted_at DESC, posts.id DESC")
	if filter.Limit > 0 {
		db = db.Offset(filter.Offset).Limit(filter.Limit)
	}
	if err := db.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepoImpl) CountPosts(ctx context.Context, userID uint64, filter PostFilter) (int64, error) {
	if filter.IDs != nil && len(filter.IDs) == 0 {
		return 0, nil
	}
	var total int64
	if err := r.filtered(ctx, userID, filter).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *postRepoImpl) ListPostsByAccount(ctx context.Context, accountID uint64) ([]*model.Post, error) {
	posts := make([]*model.Post, 0)
	err := r.db.WithContext(ctx).
		Where("social_account_id = ?", accountID).
		Order("id ASC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepoImpl) UpdateArchived(ctx context.Context, id uint64, archived bool) error {
	return r.db.WithContext(ctx).Model(&model.Post{}).Where("id = ?", id).Update("is_archived", archived).Error
}

func (r *postRepoImpl) DeletePost(ctx context.Context, userID, id uint64) (int64, error) {
	result := r.db.WithContext(ctx).
		Scopes(ownedAccounts("social_account_id", userID)).
		Where("id = ?", id).
		Delete(&model.Post{})
	return result.RowsAffected, result.Error
}
