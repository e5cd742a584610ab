package api

import (
	"SocialPulse/internal/api/config"
	"SocialPulse/internal/api/middleware"
	"SocialPulse/internal/pkg/logger"
	"SocialPulse/internal/pkg/metrics"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup, cfg *config.Config, m *metrics.Metrics) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Metrics & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.MetricsMiddleware(m))
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware(cfg.Server.AllowOrigins))
	logger.SetupGin(r)

	r.GET("/metrics", gin.WrapH(m.Handler()))

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"code":    200,
				"message": "pong",
				"data":    nil,
			})
		})

		authGroup := apiGroup.Group("")
		authGroup.Use(middleware.AuthMiddleware(cfg.JWT))

		accountGroup := authGroup.Group("/accounts")
		{
			accountGroup.GET("", group.AccountHandler.ListAccounts)
			accountGroup.POST("", group.AccountHandler.CreateAccount)
			accountGroup.GET("/overview", group.AccountHandler.Overview)
			accountGroup.GET("/:id", group.AccountHandler.GetAccount)
			accountGroup.PUT("/:id", group.AccountHandler.UpdateAccount)
			accountGroup.DELETE("/:id", group.AccountHandler.DeleteAccount)
			accountGroup.POST("/:id/sync", group.AccountHandler.SyncAccount)
		}

		postGroup := authGroup.Group("/posts")
		{
			postGroup.GET("", group.PostHandler.ListPosts)
			postGroup.POST("", group.PostHandler.CreatePost)
			postGroup.GET("/top-performing", group.PostHandler.TopPerforming)
			postGroup.GET("/content-comparison", group.PostHandler.ContentComparison)
			postGroup.GET("/timeline", group.PostHandler.Timeline)
			postGroup.GET("/:id", group.PostHandler.GetPost)
			postGroup.PUT("/:id", group.PostHandler.UpdatePost)
			postGroup.DELETE("/:id", group.PostHandler.DeletePost)
			postGroup.GET("/:id/analytics", group.PostHandler.Analytics)
			postGroup.GET("/:id/latest-metric", group.PostHandler.LatestMetric)
		}

		metricGroup := authGroup.Group("/post-metrics")
		{
			metricGroup.GET("", group.PostMetricHandler.ListMetrics)
			metricGroup.POST("", group.PostMetricHandler.CreateMetric)
			metricGroup.DELETE("/:id", group.PostMetricHandler.DeleteMetric)
		}

		commentGroup := authGroup.Group("/comments")
		{
			commentGroup.GET("", group.CommentHandler.ListComments)
			commentGroup.GET("/sentiment", group.CommentHandler.Sentiment)
			commentGroup.GET("/top-commenters", group.CommentHandler.TopCommenters)
		}

		hashtagGroup := authGroup.Group("/hashtags")
		{
			hashtagGroup.GET("", group.HashtagHandler.ListHashtags)
			hashtagGroup.GET("/trending", group.HashtagHandler.Trending)
			hashtagGroup.GET("/performance", group.HashtagHandler.Performance)
		}

		audienceGroup := authGroup.Group("/audience")
		{
			audienceGroup.GET("", group.AudienceHandler.ListAudiences)
			audienceGroup.POST("", group.AudienceHandler.CreateAudience)
			audienceGroup.GET("/demographics", group.AudienceHandler.Demographics)
			audienceGroup.GET("/growth-trend", group.AudienceHandler.GrowthTrend)
		}

		patternGroup := authGroup.Group("/patterns")
		{
			patternGroup.GET("", group.PatternHandler.ListPatterns)
			patternGroup.GET("/optimal-times", group.PatternHandler.OptimalTimes)
			patternGroup.GET("/heatmap", group.PatternHandler.Heatmap)
			patternGroup.GET("/best-schedule", group.PatternHandler.BestSchedule)
		}

		insightGroup := authGroup.Group("/insights")
		{
			insightGroup.GET("", group.InsightHandler.ListInsights)
			insightGroup.POST("", group.InsightHandler.CreateInsight)
			insightGroup.GET("/unread-count", group.InsightHandler.UnreadCount)
			insightGroup.POST("/read-all", group.InsightHandler.MarkAllAsRead)
			insightGroup.GET("/:id", group.InsightHandler.GetInsight)
			insightGroup.DELETE("/:id", group.InsightHandler.DeleteInsight)
			insightGroup.POST("/:id/read", group.InsightHandler.MarkAsRead)
		}

		queryGroup := authGroup.Group("/queries")
		{
			queryGroup.GET("", group.QueryHandler.ListQueries)
			queryGroup.POST("/execute", group.QueryHandler.Execute)
			queryGroup.GET("/:id", group.QueryHandler.GetQuery)
			queryGroup.DELETE("/:id", group.QueryHandler.DeleteQuery)
		}

		reportGroup := authGroup.Group("/reports")
		{
			reportGroup.GET("", group.ReportHandler.ListReports)
			reportGroup.POST("", group.ReportHandler.CreateReport)
			reportGroup.GET("/:id", group.ReportHandler.GetReport)
			reportGroup.PUT("/:id", group.ReportHandler.UpdateReport)
			reportGroup.DELETE("/:id", group.ReportHandler.DeleteReport)
			reportGroup.POST("/:id/generate", group.ReportHandler.GenerateReport)
			reportGroup.GET("/:id/download", group.ReportHandler.DownloadReport)
		}

		competitorGroup := authGroup.Group("/competitors")
		{
			competitorGroup.GET("", group.CompetitorHandler.ListCompetitors)
			competitorGroup.POST("", group.CompetitorHandler.CreateCompetitor)
			competitorGroup.GET("/comparison", group.CompetitorHandler.Comparison)
			competitorGroup.GET("/:id", group.CompetitorHandler.GetCompetitor)
			competitorGroup.PUT("/:id", group.CompetitorHandler.UpdateCompetitor)
			competitorGroup.DELETE("/:id", group.CompetitorHandler.DeleteCompetitor)
			competitorGroup.GET("/:id/growth-trend", group.CompetitorHandler.GrowthTrend)
		}
		authGroup.GET("/competitor-metrics", group.CompetitorHandler.ListMetrics)

		strategyGroup := authGroup.Group("/strategies")
		{
			strategyGroup.GET("", group.StrategyHandler.ListStrategies)
			strategyGroup.POST("", group.StrategyHandler.CreateStrategy)
			strategyGroup.POST("/generate", group.StrategyHandler.GenerateStrategy)
			strategyGroup.GET("/:id", group.StrategyHandler.GetStrategy)
			strategyGroup.PUT("/:id", group.StrategyHandler.UpdateStrategy)
			strategyGroup.DELETE("/:id", group.StrategyHandler.DeleteStrategy)
			strategyGroup.POST("/:id/activate", group.StrategyHandler.ActivateStrategy)
		}

		dashboardGroup := authGroup.Group("/dashboard")
		{
			dashboardGroup.GET("/overview", group.DashboardHandler.Overview)
			dashboardGroup.GET("/platform-breakdown", group.DashboardHandler.PlatformBreakdown)
		}
	}

	return r
}
