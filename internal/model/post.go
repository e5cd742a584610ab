package model

import (
	"time"
)

type Post struct {
	ID              uint64    `gorm:"primaryKey" json:"id"`
	SocialAccountID uint64    `gorm:"not null;index:idx_account_posted,priority:1" json:"social_account_id"`
	PostID          string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_external_post_id" json:"post_id"`
	ContentType     string    `gorm:"type:varchar(20);not null;index:idx_type_posted,priority:1" json:"content_type"`
	Caption         *string   `gorm:"type:text" json:"caption"`
	MediaURL        *string   `gorm:"type:varchar(1000)" json:"media_url"`
	ThumbnailURL    *string   `gorm:"type:varchar(1000)" json:"thumbnail_url"`
	PostedAt        time.Time `gorm:"not null;index:idx_account_posted,priority:2;index:idx_type_posted,priority:2" json:"posted_at"`
	IsArchived      bool      `gorm:"type:tinyint(1);not null;default:0" json:"is_archived"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// 关联关系
	SocialAccount *SocialAccount `gorm:"foreignKey:SocialAccountID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Post) TableName() string {
	return "posts"
}
