package model

import (
	"time"
)

// User 由外部身份服务维护，这里只保存归属关系所需字段
type User struct {
	ID           uint64  `gorm:"primaryKey"`
	Username     string  `gorm:"type:varchar(150);not null;uniqueIndex:idx_username"`
	Email        string  `gorm:"type:varchar(255);not null;uniqueIndex:idx_email"`
	Organization *string `gorm:"type:varchar(255)"`
	IsActive     bool    `gorm:"type:tinyint(1);not null;default:1"`
	IsVerified   bool    `gorm:"type:tinyint(1);not null;default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (User) TableName() string {
	return "users"
}
