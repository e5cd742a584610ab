package database

import (
	"SocialPulse/internal/model"
	"fmt"
	log "log/slog"

	"gorm.io/gorm"
)

// Models 按外键依赖排序，父表在前
func Models() []any {
	return []any{
		&model.User{},
		&model.SocialAccount{},
		&model.Post{},
		&model.PostMetric{},
		&model.Comment{},
		&model.Hashtag{},
		&model.PostHashtag{},
		&model.Audience{},
		&model.EngagementPattern{},
		&model.PatternFoldCursor{},
		&model.Query{},
		&model.Report{},
		&model.Competitor{},
		&model.CompetitorMetric{},
		&model.ContentStrategy{},
	}
}

// Migrate 建表，仅在 database.auto_migrate 打开时调用
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate failed: %w", err)
	}
	log.Info("Database schema migrated.", "tables", len(Models()))
	return nil
}
