package model

import (
	"time"
)

// PostMetric 帖子指标快照，只追加不修改
type PostMetric struct {
	ID             uint64    `gorm:"primaryKey"`
	PostID         uint64    `gorm:"not null;index:idx_post_recorded,priority:1"`
	LikesCount     int64     `gorm:"not null;default:0"`
	CommentsCount  int64     `gorm:"not null;default:0"`
	SharesCount    int64     `gorm:"not null;default:0"`
	SavesCount     int64     `gorm:"not null;default:0"`
	ViewsCount     int64     `gorm:"not null;default:0"`
	Reach          int64     `gorm:"not null;default:0"`
	Impressions    int64     `gorm:"not null;default:0"`
	EngagementRate float64   `gorm:"not null;default:0"`
	RecordedAt     time.Time `gorm:"not null;index:idx_post_recorded,priority:2"`

	Post *Post `gorm:"foreignKey:PostID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (PostMetric) TableName() string {
	return "post_metrics"
}
