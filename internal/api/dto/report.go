package dto

import "time"

type ReportFiltersDTO struct {
	Days        int     `json:"days" binding:"omitempty,min=1,max=365"`
	AccountID   *uint64 `json:"account_id"`
	Platform    string  `json:"platform"`
	ContentType string  `json:"content_type" binding:"omitempty,oneof=reel carousel static story video"`
	HashtagID   *uint64 `json:"hashtag_id"`
}

type ReportCreateDTO struct {
	ReportType  string           `json:"report_type" binding:"required,oneof=performance engagement audience content comparative custom"`
	Title       string           `json:"title" binding:"required,max=255"`
	Description *string          `json:"description"`
	Format      string           `json:"format" binding:"required,oneof=pdf csv excel json"`
	Filters     ReportFiltersDTO `json:"filters"`
}

type ReportUpdateDTO struct {
	Title       *string `json:"title" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description"`
}

type ReportListQuery struct {
	ReportType string `form:"report_type"`
	Status     string `form:"status" binding:"omitempty,oneof=pending processing completed"`
}

type ReportDTO struct {
	ID          uint64           `json:"id"`
	ReportType  string           `json:"report_type"`
	Title       string           `json:"title"`
	Description *string          `json:"description"`
	Format      string           `json:"format"`
	Filters     ReportFiltersDTO `json:"filters"`
	HasFile     bool             `json:"has_file"`
	Status      string           `json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
	CompletedAt *time.Time       `json:"completed_at"`
}

type ReportDownloadDTO struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}
