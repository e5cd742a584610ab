package model

import "time"

type Hashtag struct {
	ID        uint64 `gorm:"primaryKey"`
	Tag       string `gorm:"type:varchar(255);not null;uniqueIndex:idx_hashtag_tag"`
	CreatedAt time.Time
}

func (Hashtag) TableName() string {
	return "hashtags"
}

// PostHashtag 帖子与话题的关联，只有两个外键
type PostHashtag struct {
	PostID    uint64 `gorm:"primaryKey" json:"post_id"`
	HashtagID uint64 `gorm:"primaryKey;index:idx_hashtag_id" json:"hashtag_id"`

	Post    *Post    `gorm:"foreignKey:PostID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	Hashtag *Hashtag `gorm:"foreignKey:HashtagID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (PostHashtag) TableName() string {
	return "post_hashtags"
}
