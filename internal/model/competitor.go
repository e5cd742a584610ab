package model

import (
	"time"
)

type Competitor struct {
	ID              uint64    `gorm:"primaryKey"`
	UserID          uint64    `gorm:"not null;uniqueIndex:idx_user_platform_account,priority:1"`
	Platform        string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_user_platform_account,priority:2"`
	AccountID       string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_user_platform_account,priority:3"`
	AccountUsername string    `gorm:"type:varchar(255);not null"`
	IsActive        bool      `gorm:"type:tinyint(1);not null;default:1"`
	AddedAt         time.Time `gorm:"autoCreateTime"`

	User *User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Competitor) TableName() string {
	return "competitors"
}

// CompetitorMetric 竞品指标快照
type CompetitorMetric struct {
	ID                uint64    `gorm:"primaryKey"`
	CompetitorID      uint64    `gorm:"not null;index:idx_competitor_recorded,priority:1"`
	FollowersCount    int64     `gorm:"not null;default:0"`
	FollowingCount    int64     `gorm:"not null;default:0"`
	PostsCount        int64     `gorm:"not null;default:0"`
	AvgEngagementRate float64   `gorm:"not null;default:0"`
	AvgLikes          float64   `gorm:"not null;default:0"`
	AvgComments       float64   `gorm:"not null;default:0"`
	RecordedAt        time.Time `gorm:"not null;index:idx_competitor_recorded,priority:2"`

	Competitor *Competitor `gorm:"foreignKey:CompetitorID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (CompetitorMetric) TableName() string {
	return "competitor_metrics"
}
