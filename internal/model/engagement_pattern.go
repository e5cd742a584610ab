package model

import (
	"time"
)

// EngagementPattern 每个账号在 (小时, 星期) 维度上的滚动均值
type EngagementPattern struct {
	ID                uint64  `gorm:"primaryKey"`
	SocialAccountID   uint64  `gorm:"not null;uniqueIndex:idx_account_hour_day,priority:1"`
	HourOfDay         int     `gorm:"not null;uniqueIndex:idx_account_hour_day,priority:2"`
	DayOfWeek         int     `gorm:"not null;uniqueIndex:idx_account_hour_day,priority:3"`
	AvgEngagementRate float64 `gorm:"not null;default:0"`
	AvgLikes          float64 `gorm:"not null;default:0"`
	AvgComments       float64 `gorm:"not null;default:0"`
	AvgShares         float64 `gorm:"not null;default:0"`
	PostCount         int64   `gorm:"not null;default:0"`
	CreatedAt         time.Time
	UpdatedAt         time.Time

	SocialAccount *SocialAccount `gorm:"foreignKey:SocialAccountID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (EngagementPattern) TableName() string {
	return "engagement_patterns"
}

// PatternKey 定位唯一一行 EngagementPattern
type PatternKey struct {
	SocialAccountID uint64
	HourOfDay       int
	DayOfWeek       int
}

// PatternFoldCursor 记录每个帖子最后一次被折叠进规律表的快照 ID
type PatternFoldCursor struct {
	PostID    uint64 `gorm:"primaryKey;autoIncrement:false"`
	MetricID  uint64 `gorm:"not null"`
	UpdatedAt time.Time

	Post *Post `gorm:"foreignKey:PostID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (PatternFoldCursor) TableName() string {
	return "engagement_fold_cursors"
}
