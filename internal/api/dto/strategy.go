package dto

import "time"

type RecommendationDTO struct {
	ContentType string `json:"content_type" binding:"required"`
	Frequency   int    `json:"frequency" binding:"min=0"`
	Suggestion  string `json:"suggestion"`
}

type TimeSlotDTO struct {
	Day                    string  `json:"day"`
	DayOfWeek              int     `json:"day_of_week" binding:"min=0,max=6"`
	Hour                   int     `json:"hour" binding:"min=0,max=23"`
	ExpectedEngagementRate float64 `json:"expected_engagement_rate"`
}

type HashtagStrategyDTO struct {
	Recommended []string `json:"recommended"`
	WindowDays  int      `json:"window_days"`
}

type StrategyCreateDTO struct {
	SocialAccountID uint64              `json:"social_account_id" binding:"required"`
	Title           string              `json:"title" binding:"required,max=255"`
	Description     string              `json:"description" binding:"required"`
	Recommendations []RecommendationDTO `json:"recommendations" binding:"dive"`
	OptimalTimes    []TimeSlotDTO       `json:"optimal_times" binding:"dive"`
	ContentMix      map[string]float64  `json:"content_mix"`
	HashtagStrategy HashtagStrategyDTO  `json:"hashtag_strategy"`
	IsActive        *bool               `json:"is_active"`
}

type StrategyUpdateDTO struct {
	Title           *string             `json:"title" binding:"omitempty,min=1,max=255"`
	Description     *string             `json:"description"`
	Recommendations []RecommendationDTO `json:"recommendations" binding:"omitempty,dive"`
	OptimalTimes    []TimeSlotDTO       `json:"optimal_times" binding:"omitempty,dive"`
	ContentMix      map[string]float64  `json:"content_mix"`
	HashtagStrategy *HashtagStrategyDTO `json:"hashtag_strategy"`
}

type StrategyListQuery struct {
	AccountID *uint64 `form:"account_id"`
	IsActive  *bool   `form:"is_active"`
}

type StrategyGenerateDTO struct {
	SocialAccountID *uint64 `json:"social_account_id"`
}

type StrategyDTO struct {
	ID              uint64              `json:"id"`
	SocialAccountID uint64              `json:"social_account_id"`
	Title           string              `json:"title"`
	Description     string              `json:"description"`
	Recommendations []RecommendationDTO `json:"recommendations"`
	OptimalTimes    []TimeSlotDTO       `json:"optimal_times"`
	ContentMix      map[string]float64  `json:"content_mix"`
	HashtagStrategy HashtagStrategyDTO  `json:"hashtag_strategy"`
	IsActive        bool                `json:"is_active"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}
