package es

import "time"

// PostES 帖子文案索引文档，只用于检索，权威数据在 MySQL
type PostES struct {
	ID              uint64    `json:"id"`
	UserID          uint64    `json:"user_id"`
	SocialAccountID uint64    `json:"social_account_id"`
	Platform        string    `json:"platform"`
	PostID          string    `json:"post_id"`
	ContentType     string    `json:"content_type"`
	Caption         string    `json:"caption"`
	Hashtags        []string  `json:"hashtags"`
	PostedAt        time.Time `json:"posted_at"`
}
