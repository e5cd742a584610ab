package repository

import (
	"SocialPulse/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EngagementPatternRepo interface {
	// FoldSnapshot 在一个事务里把帖子的最新快照折叠进对应的规律行。
	// 游标中记录的快照 ID 不小于 metricID 时跳过，返回 false
	FoldSnapshot(ctx context.Context, key model.PatternKey, postID, metricID uint64, apply func(p *model.EngagementPattern)) (bool, error)
	ListPatterns(ctx context.Context, userID uint64, accountID *uint64) ([]*model.EngagementPattern, error)
	// TopPatterns 按平均互动率倒序
	TopPatterns(ctx context.Context, userID uint64, accountID *uint64, limit int) ([]*model.EngagementPattern, error)
}

type engagementPatternRepoImpl struct {
	db *gorm.DB
}

func NewEngagementPatternRepository(db *gorm.DB) EngagementPatternRepo {
	return &engagementPatternRepoImpl{db: db}
}

func (r *engagementPatternRepoImpl) FoldSnapshot(
	ctx context.Context,
	key model.PatternKey,
	postID, metricID uint64,
	apply func(p *model.EngagementPattern),
) (bool, error) {
	applied := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cursor model.PatternFoldCursor
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("post_id = ?", postID).
			Take(&cursor).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err == nil && cursor.MetricID >= metricID {
			return nil
		}

		seed := model.EngagementPattern{
			SocialAccountID: key.SocialAccountID,
			HourOfDay:       key.HourOfDay,
			DayOfWeek:       key.DayOfWeek,
		}
		if err = tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
			return err
		}

		var pattern model.EngagementPattern
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("social_account_id = ? AND hour_of_day = ? AND day_of_week = ?", key.SocialAccountID, key.HourOfDay, key.DayOfWeek).
			Take(&pattern).Error
		if err != nil {
			return err
		}

		apply(&pattern)
		if err = tx.Save(&pattern).Error; err != nil {
			return err
		}

		err = tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "post_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"metric_id", "updated_at"}),
		}).Create(&model.PatternFoldCursor{PostID: postID, MetricID: metricID, UpdatedAt: time.Now()}).Error
		if err != nil {
			return err
		}

		applied = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return applied, nil
}

func (r *engagementPatternRepoImpl) scoped(ctx context.Context, userID uint64, accountID *uint64) *gorm.DB {
	db := r.db.WithContext(ctx).Scopes(ownedAccounts("social_account_id", userID))
	if accountID != nil {
		db = db.Where("social_account_id = ?", *accountID)
	}
	return db
}

func (r *engagementPatternRepoImpl) ListPatterns(ctx context.Context, userID uint64, accountID *uint64) ([]*model.EngagementPattern, error) {
	patterns := make([]*model.EngagementPattern, 0)
	err := r.scoped(ctx, userID, accountID).
		Order("social_account_id ASC, day_of_week ASC, hour_of_day ASC").
		Find(&patterns).Error
	if err != nil {
		return nil, err
	}
	return patterns, nil
}

func (r *engagementPatternRepoImpl) TopPatterns(ctx context.Context, userID uint64, accountID *uint64, limit int) ([]*model.EngagementPattern, error) {
	patterns := make([]*model.EngagementPattern, 0)
	err := r.scoped(ctx, userID, accountID).
		Order("avg_engagement_rate DESC, post_count DESC, day_of_week ASC, hour_of_day ASC").
		Limit(limit).
		Find(&patterns).Error
	if err != nil {
		return nil, err
	}
	return patterns, nil
}
