package model

import (
	"time"
)

// ReportFilters 报告生成时使用的筛选条件
type ReportFilters struct {
	Days        int     `json:"days,omitempty"`
	AccountID   *uint64 `json:"account_id,omitempty"`
	Platform    string  `json:"platform,omitempty"`
	ContentType string  `json:"content_type,omitempty"`
	HashtagID   *uint64 `json:"hashtag_id,omitempty"`
}

type Report struct {
	ID          uint64        `gorm:"primaryKey"`
	UserID      uint64        `gorm:"not null;index:idx_user_created,priority:1"`
	ReportType  string        `gorm:"type:varchar(20);not null"`
	Title       string        `gorm:"type:varchar(255);not null"`
	Description *string       `gorm:"type:text"`
	Format      string        `gorm:"type:varchar(10);not null"`
	Filters     ReportFilters `gorm:"type:json;serializer:json"`
	FileKey     *string       `gorm:"type:varchar(512)"`
	Status      string        `gorm:"type:varchar(20);not null;default:pending"`
	CreatedAt   time.Time     `gorm:"index:idx_user_created,priority:2"`
	CompletedAt *time.Time

	User *User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Report) TableName() string {
	return "reports"
}
