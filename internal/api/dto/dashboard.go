package dto

// DashboardQuery 首页统计窗口，缺省 30 天
type DashboardQuery struct {
	Days int `form:"days" binding:"omitempty,min=1,max=365"`
}

type DashboardOverviewDTO struct {
	PeriodDays        int     `json:"period_days"`
	TotalAccounts     int64   `json:"total_accounts"`
	ActiveAccounts    int64   `json:"active_accounts"`
	TotalPosts        int64   `json:"total_posts"`
	TotalFollowers    int64   `json:"total_followers"`
	TotalLikes        int64   `json:"total_likes"`
	TotalComments     int64   `json:"total_comments"`
	TotalShares       int64   `json:"total_shares"`
	TotalReach        int64   `json:"total_reach"`
	AvgEngagementRate float64 `json:"avg_engagement_rate"`
	UnreadInsights    int64   `json:"unread_insights"`
}

type PlatformStatDTO struct {
	Platform          string  `json:"platform"`
	Accounts          int64   `json:"accounts"`
	Followers         int64   `json:"followers"`
	Posts             int64   `json:"posts"`
	TotalLikes        int64   `json:"total_likes"`
	TotalComments     int64   `json:"total_comments"`
	TotalShares       int64   `json:"total_shares"`
	TotalReach        int64   `json:"total_reach"`
	AvgEngagementRate float64 `json:"avg_engagement_rate"`
}
