package model

import (
	"time"
)

type Comment struct {
	ID             uint64    `gorm:"primaryKey"`
	PostID         uint64    `gorm:"not null;index:idx_post_posted,priority:1"`
	CommentID      string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_external_comment_id"`
	Username       string    `gorm:"type:varchar(255);not null"`
	Text           string    `gorm:"type:text;not null"`
	LikesCount     int64     `gorm:"not null;default:0"`
	RepliedToID    *uint64   `gorm:"index"`
	PostedAt       time.Time `gorm:"not null;index:idx_post_posted,priority:2"`
	SentimentScore *float64
	CreatedAt      time.Time

	Post      *Post    `gorm:"foreignKey:PostID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	RepliedTo *Comment `gorm:"foreignKey:RepliedToID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Comment) TableName() string {
	return "comments"
}
