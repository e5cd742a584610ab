package dto

type PatternQuery struct {
	AccountID *uint64 `form:"account_id"`
	Limit     int     `form:"limit" binding:"omitempty,min=1,max=168"`
}

type EngagementPatternDTO struct {
	ID                uint64  `json:"id"`
	SocialAccountID   uint64  `json:"social_account_id"`
	HourOfDay         int     `json:"hour_of_day"`
	DayOfWeek         int     `json:"day_of_week"`
	DayName           string  `json:"day_name"`
	AvgEngagementRate float64 `json:"avg_engagement_rate"`
	AvgLikes          float64 `json:"avg_likes"`
	AvgComments       float64 `json:"avg_comments"`
	AvgShares         float64 `json:"avg_shares"`
	PostCount         int64   `json:"post_count"`
}

// HeatmapCellDTO 热力图单元，同一 (day, hour) 下多个账号按样本数加权合并
type HeatmapCellDTO struct {
	AvgEngagementRate float64 `json:"avg_engagement_rate"`
	PostCount         int64   `json:"post_count"`
}

// HeatmapDTO day_name -> hour -> cell
type HeatmapDTO map[string]map[int]*HeatmapCellDTO

type ScheduleQuery struct {
	AccountID    *uint64 `form:"account_id"`
	PostsPerWeek int     `form:"posts_per_week" binding:"omitempty,min=1,max=168"`
}

type ScheduleSlotDTO struct {
	Day                    string  `json:"day"`
	DayOfWeek              int     `json:"day_of_week"`
	Hour                   int     `json:"hour"`
	ExpectedEngagementRate float64 `json:"expected_engagement_rate"`
	PostCount              int64   `json:"post_count"`
}

type BestScheduleDTO struct {
	PostsPerWeek int                `json:"posts_per_week"`
	Schedule     []*ScheduleSlotDTO `json:"schedule"`
}

type FoldResultDTO struct {
	AccountID uint64 `json:"account_id"`
	Scanned   int    `json:"scanned"`
	Folded    int    `json:"folded"`
	Skipped   int    `json:"skipped"`
}
