package repository

import (
	"SocialPulse/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// HashtagUsage 话题及其在当前用户帖子中的使用次数
type HashtagUsage struct {
	ID         uint64
	Tag        string
	UsageCount int64
	CreatedAt  time.Time
}

// PostTag 帖子与话题的展开行
type PostTag struct {
	PostID    uint64
	HashtagID uint64
	Tag       string
}

type HashtagRepo interface {
	GetOrCreateHashtags(ctx context.Context, tags []string) ([]*model.Hashtag, error)
	LinkPostHashtags(ctx context.Context, postID uint64, hashtagIDs []uint64) error
	GetHashtag(ctx context.Context, id uint64) (*model.Hashtag, error)
	ListHashtagUsage(ctx context.Context, userID uint64, search string) ([]*HashtagUsage, error)
	ListPostTags(ctx context.Context, postIDs []uint64) ([]*PostTag, error)
}

type hashtagRepoImpl struct {
	db *gorm.DB
}

func NewHashtagRepository(db *gorm.DB) HashtagRepo {
	return &hashtagRepoImpl{db: db}
}

func (r *hashtagRepoImpl) GetOrCreateHashtags(ctx context.Context, tags []string) ([]*model.Hashtag, error) {
	hashtags := make([]*model.Hashtag, 0, len(tags))
	if len(tags) == 0 {
		return hashtags, nil
	}
	// 先插入，已存在的忽略
	for _, tag := range tags {
		h := model.Hashtag{Tag: tag, CreatedAt: time.Now()}
		if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&h).Error; err != nil {
			return nil, err
		}
	}
	if err := r.db.WithContext(ctx).Where("tag IN ?", tags).Find(&hashtags).Error; err != nil {
		return nil, err
	}
	return hashtags, nil
}

func (r *hashtagRepoImpl) LinkPostHashtags(ctx context.Context, postID uint64, hashtagIDs []uint64) error {
	if len(hashtagIDs) == 0 {
		return nil
	}
	links := make([]*model.PostHashtag, 0, len(hashtagIDs))
	for _, id := range hashtagIDs {
		links = append(links, &model.PostHashtag{PostID: postID, HashtagID: id})
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error
}

func (r *hashtagRepoImpl) GetHashtag(ctx context.Context, id uint64) (*model.Hashtag, error) {
	var hashtag model.Hashtag
	err := r.db.WithContext(ctx).First(&hashtag, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &hashtag, nil
}

func (r *hashtagRepoImpl) ListHashtagUsage(ctx context.Context, userID uint64, search string) ([]*HashtagUsage, error) {
	usages := make([]*HashtagUsage, 0)
	db := r.db.WithContext(ctx).
		Table("hashtags h").
		Select("h.id, h.tag, COUNT(DISTINCT ph.post_id) AS usage_count, h.created_at").
		Joins("JOIN post_hashtags ph ON ph.hashtag_id = h.id").
		Scopes(ownedPosts("ph.post_id", userID))
	if search != "" {
		db = db.Where("h.tag LIKE ?", "%"+search+"%")
	}
	err := db.Group("h.id, h.tag, h.created_at").
		Order("usage_count DESC, h.tag ASC").
		Scan(&usages).Error
	if err != nil {
		return nil, err
	}
	return usages, nil
}

func (r *hashtagRepoImpl) ListPostTags(ctx context.Context, postIDs []uint64) ([]*PostTag, error) {
	rows := make([]*PostTag, 0)
	if len(postIDs) == 0 {
		return rows, nil
	}
	err := r.db.WithContext(ctx).
		Table("post_hashtags ph").
		Select("ph.post_id, ph.hashtag_id, h.tag").
		Joins("JOIN hashtags h ON h.id = ph.hashtag_id").
		Where("ph.post_id IN ?", postIDs).
		Order("ph.post_id ASC, h.tag ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
