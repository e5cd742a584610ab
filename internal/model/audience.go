package model

import (
	"time"
)

// LocationShare 地区粉丝占比
type LocationShare struct {
	Name  string  `json:"name"`
	Share float64 `json:"share"`
}

// Audience 粉丝画像快照
type Audience struct {
	ID              uint64          `gorm:"primaryKey"`
	SocialAccountID uint64          `gorm:"not null;index:idx_account_recorded,priority:1"`
	FollowersCount  int64           `gorm:"not null;default:0"`
	FollowingCount  int64           `gorm:"not null;default:0"`
	AgeRange13To17  float64         `gorm:"column:age_range_13_17;not null;default:0"`
	AgeRange18To24  float64         `gorm:"column:age_range_18_24;not null;default:0"`
	AgeRange25To34  float64         `gorm:"column:age_range_25_34;not null;default:0"`
	AgeRange35To44  float64         `gorm:"column:age_range_35_44;not null;default:0"`
	AgeRange45To54  float64         `gorm:"column:age_range_45_54;not null;default:0"`
	AgeRange55Plus  float64         `gorm:"column:age_range_55_plus;not null;default:0"`
	GenderMale      float64         `gorm:"not null;default:0"`
	GenderFemale    float64         `gorm:"not null;default:0"`
	GenderOther     float64         `gorm:"not null;default:0"`
	TopCountries    []LocationShare `gorm:"type:json;serializer:json"`
	TopCities       []LocationShare `gorm:"type:json;serializer:json"`
	RecordedAt      time.Time       `gorm:"not null;index:idx_account_recorded,priority:2"`

	SocialAccount *SocialAccount `gorm:"foreignKey:SocialAccountID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Audience) TableName() string {
	return "audiences"
}
