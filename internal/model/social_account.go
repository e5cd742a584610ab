package model

import (
	"time"
)

type SocialAccount struct {
	ID              uint64     `gorm:"primaryKey"`
	UserID          uint64     `gorm:"not null;uniqueIndex:idx_user_platform_account,priority:1"`
	Platform        string     `gorm:"type:varchar(20);not null;uniqueIndex:idx_user_platform_account,priority:2"`
	AccountID       string     `gorm:"type:varchar(255);not null;uniqueIndex:idx_user_platform_account,priority:3"`
	AccountUsername string     `gorm:"type:varchar(255);not null"`
	AccessToken     *string    `gorm:"type:text" json:"-"`
	RefreshToken    *string    `gorm:"type:text" json:"-"`
	TokenExpiresAt  *time.Time `json:"-"`
	IsActive        bool       `gorm:"type:tinyint(1);not null;default:1"`
	ConnectedAt     time.Time  `gorm:"autoCreateTime"`
	LastSynced      *time.Time

	User *User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (SocialAccount) TableName() string {
	return "social_accounts"
}
