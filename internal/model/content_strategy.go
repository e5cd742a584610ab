package model

import (
	"time"
)

// Recommendation 内容类型推荐
type Recommendation struct {
	ContentType string `json:"content_type"`
	Frequency   int    `json:"frequency"`
	Suggestion  string `json:"suggestion"`
}

// TimeSlot 推荐发布时段
type TimeSlot struct {
	Day                    string  `json:"day"`
	DayOfWeek              int     `json:"day_of_week"`
	Hour                   int     `json:"hour"`
	ExpectedEngagementRate float64 `json:"expected_engagement_rate"`
}

// HashtagStrategy 话题策略
type HashtagStrategy struct {
	Recommended []string `json:"recommended"`
	WindowDays  int      `json:"window_days"`
}

type ContentStrategy struct {
	ID              uint64             `gorm:"primaryKey"`
	UserID          uint64             `gorm:"not null;index"`
	SocialAccountID uint64             `gorm:"not null;index"`
	Title           string             `gorm:"type:varchar(255);not null"`
	Description     string             `gorm:"type:text;not null"`
	Recommendations []Recommendation   `gorm:"type:json;serializer:json"`
	OptimalTimes    []TimeSlot         `gorm:"type:json;serializer:json"`
	ContentMix      map[string]float64 `gorm:"type:json;serializer:json"`
	HashtagStrategy HashtagStrategy    `gorm:"type:json;serializer:json"`
	IsActive        bool               `gorm:"type:tinyint(1);not null;default:1"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	User          *User          `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	SocialAccount *SocialAccount `gorm:"foreignKey:SocialAccountID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (ContentStrategy) TableName() string {
	return "content_strategies"
}
