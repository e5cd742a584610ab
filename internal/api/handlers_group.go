package api

import "SocialPulse/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	AccountHandler    *handler.AccountHandler
	PostHandler       *handler.PostHandler
	PostMetricHandler *handler.PostMetricHandler
	CommentHandler    *handler.CommentHandler
	HashtagHandler    *handler.HashtagHandler
	AudienceHandler   *handler.AudienceHandler
	PatternHandler    *handler.PatternHandler
	InsightHandler    *handler.InsightHandler
	QueryHandler      *handler.QueryHandler
	ReportHandler     *handler.ReportHandler
	CompetitorHandler *handler.CompetitorHandler
	StrategyHandler   *handler.StrategyHandler
	DashboardHandler  *handler.DashboardHandler
}
