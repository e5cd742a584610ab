package dto

import "time"

type LocationShareDTO struct {
	Name  string  `json:"name" binding:"required"`
	Share float64 `json:"share" binding:"min=0,max=100"`
}

// AudienceCreateDTO 粉丝画像快照，比例单位为百分比
type AudienceCreateDTO struct {
	SocialAccountID uint64             `json:"social_account_id" binding:"required"`
	FollowersCount  int64              `json:"followers_count" binding:"min=0"`
	FollowingCount  int64              `json:"following_count" binding:"min=0"`
	AgeRange13To17  float64            `json:"age_range_13_17"`
	AgeRange18To24  float64            `json:"age_range_18_24"`
	AgeRange25To34  float64            `json:"age_range_25_34"`
	AgeRange35To44  float64            `json:"age_range_35_44"`
	AgeRange45To54  float64            `json:"age_range_45_54"`
	AgeRange55Plus  float64            `json:"age_range_55_plus"`
	GenderMale      float64            `json:"gender_male"`
	GenderFemale    float64            `json:"gender_female"`
	GenderOther     float64            `json:"gender_other"`
	TopCountries    []LocationShareDTO `json:"top_countries" binding:"dive"`
	TopCities       []LocationShareDTO `json:"top_cities" binding:"dive"`
	RecordedAt      *time.Time         `json:"recorded_at"`
}

type AudienceQuery struct {
	AccountID *uint64 `form:"account_id"`
	Days      int     `form:"days" binding:"omitempty,min=1,max=730"`
}

type AudienceDTO struct {
	ID              uint64             `json:"id"`
	SocialAccountID uint64             `json:"social_account_id"`
	FollowersCount  int64              `json:"followers_count"`
	FollowingCount  int64              `json:"following_count"`
	TopCountries    []LocationShareDTO `json:"top_countries"`
	TopCities       []LocationShareDTO `json:"top_cities"`
	RecordedAt      time.Time          `json:"recorded_at"`
}

type DemographicsDTO struct {
	SocialAccountID uint64             `json:"social_account_id"`
	FollowersCount  int64              `json:"followers_count"`
	AgeDistribution map[string]float64 `json:"age_distribution"`
	Gender          map[string]float64 `json:"gender_distribution"`
	TopCountries    []LocationShareDTO `json:"top_countries"`
	TopCities       []LocationShareDTO `json:"top_cities"`
	RecordedAt      time.Time          `json:"recorded_at"`
}

type GrowthPointDTO struct {
	Date           string `json:"date"`
	FollowersCount int64  `json:"followers_count"`
	FollowingCount int64  `json:"following_count"`
	Change         int64  `json:"change"`
}
