package wire

import (
	"SocialPulse/internal/api"
	"SocialPulse/internal/api/config"
	"SocialPulse/internal/api/handler"
	"SocialPulse/internal/job"
	"SocialPulse/internal/pkg/cron"
	"SocialPulse/internal/pkg/es"
	"SocialPulse/internal/pkg/kafka"
	"SocialPulse/internal/pkg/llm"
	"SocialPulse/internal/pkg/metrics"
	"SocialPulse/internal/pkg/minio"
	"SocialPulse/internal/pkg/mongo"
	"SocialPulse/internal/pkg/platform"
	"SocialPulse/internal/repository"
	"SocialPulse/internal/service"
	"time"

	"github.com/gin-gonic/gin"
	mongodrv "go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router       *gin.Engine
	DB           *gorm.DB
	CronMgr      *cron.Manager
	KafkaManager *kafka.ConsumerManager // kafka_ingest_consumer.enable 关闭时为 nil
}

func BuildApplication(db *gorm.DB, mongoDB *mongodrv.Database, cfg *config.Config) (*ApplicationContainer, error) {
	m := metrics.Default
	cacheTTL := time.Duration(cfg.Analytics.CacheTTL) * time.Second
	defaults := service.AnalyticsDefaults{
		WindowDays: cfg.Analytics.DefaultWindowDays,
		TopLimit:   cfg.Analytics.DefaultTopLimit,
		TrendLimit: cfg.Analytics.DefaultTrendLimit,
	}

	// Repository
	userRepo := repository.NewUserRepo(db)
	accountRepo := repository.NewSocialAccountRepository(db)
	postRepo := repository.NewPostRepository(db)
	metricRepo := repository.NewPostMetricRepository(db)
	hashtagRepo := repository.NewHashtagRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	audienceRepo := repository.NewAudienceRepository(db)
	patternRepo := repository.NewEngagementPatternRepository(db)
	queryRepo := repository.NewQueryRepository(db)
	reportRepo := repository.NewReportRepository(db)
	competitorRepo := repository.NewCompetitorRepository(db)
	strategyRepo := repository.NewContentStrategyRepository(db)
	insightRepo := mongo.NewInsightRepo(mongoDB)
	postESRepo := es.NewPostRepo(es.Client)
	reportStore := minio.NewReportStore(minio.Client, minio.ReportBucket)
	statsClient := platform.NewStatsClient(cfg.Platform)
	assistant := llm.NewAssistant()

	// Service
	accountSvc := service.NewAccountService(accountRepo, postRepo, metricRepo, audienceRepo, insightRepo, postESRepo, cacheTTL)
	postSvc := service.NewPostService(accountRepo, postRepo, metricRepo, hashtagRepo, commentRepo, postESRepo, defaults)
	metricSvc := service.NewPostMetricService(postRepo, metricRepo, audienceRepo)
	commentSvc := service.NewCommentService(postRepo, commentRepo, defaults)
	hashtagSvc := service.NewHashtagService(postRepo, metricRepo, hashtagRepo, defaults)
	audienceSvc := service.NewAudienceService(accountRepo, audienceRepo)
	patternSvc := service.NewPatternService(accountRepo, postRepo, metricRepo, patternRepo, m)

	var scorer service.Scorer
	if assistant.Enabled() {
		scorer = service.NewLLMScorer(assistant)
	}
	insightSvc := service.NewInsightService(userRepo, accountRepo, postRepo, metricRepo, insightRepo, scorer, m)

	queryRunner := service.NewJobRunner(repository.NewQueryJobRepository(db))
	answerer := service.NewAnalyticsAnswerer(postSvc, assistant, cfg.Analytics.DefaultWindowDays)
	querySvc := service.NewQueryService(queryRepo, queryRunner, answerer)

	competitorSvc := service.NewCompetitorService(competitorRepo, statsClient, defaults)

	reportRunner := service.NewJobRunner(repository.NewReportJobRepository(db))
	reportSvc := service.NewReportService(reportRepo, reportRunner, reportStore, service.ReportSources{
		Posts:       postSvc,
		Hashtags:    hashtagSvc,
		Patterns:    patternSvc,
		Audiences:   audienceSvc,
		Comments:    commentSvc,
		Competitors: competitorSvc,
	}, time.Duration(cfg.MinIO.PresignTTL)*time.Minute, m)

	strategySvc := service.NewStrategyService(accountRepo, postRepo, metricRepo, hashtagRepo, patternRepo, strategyRepo)
	dashboardSvc := service.NewDashboardService(accountRepo, postRepo, metricRepo, audienceRepo, insightRepo, defaults, cacheTTL)

	// Handler
	handlers := &api.HandlersGroup{
		AccountHandler:    handler.NewAccountHandler(accountSvc),
		PostHandler:       handler.NewPostHandler(postSvc),
		PostMetricHandler: handler.NewPostMetricHandler(metricSvc),
		CommentHandler:    handler.NewCommentHandler(commentSvc),
		HashtagHandler:    handler.NewHashtagHandler(hashtagSvc),
		AudienceHandler:   handler.NewAudienceHandler(audienceSvc),
		PatternHandler:    handler.NewPatternHandler(patternSvc),
		InsightHandler:    handler.NewInsightHandler(insightSvc),
		QueryHandler:      handler.NewQueryHandler(querySvc),
		ReportHandler:     handler.NewReportHandler(reportSvc),
		CompetitorHandler: handler.NewCompetitorHandler(competitorSvc),
		StrategyHandler:   handler.NewStrategyHandler(strategySvc),
		DashboardHandler:  handler.NewDashboardHandler(dashboardSvc),
	}

	router := api.SetupRouter(handlers, cfg, m)

	// Cron
	cronMgr := cron.NewCronManager(
		cfg.Cron,
		job.NewAccountSyncJob(accountSvc, m),
		job.NewPatternFoldJob(patternSvc, m),
		job.NewInsightJob(insightSvc, cfg.Analytics.InsightLookback, m),
		job.NewCompetitorSyncJob(competitorSvc, m),
	)

	// Kafka
	var kafkaMgr *kafka.ConsumerManager
	if cfg.KafkaIngest.Enable {
		ingestSvc := service.NewIngestService(accountRepo, postRepo, postSvc, metricSvc, commentSvc, audienceSvc)
		var err error
		kafkaMgr, err = kafka.NewConsumerManager(cfg, kafka.NewIngestHandler(ingestSvc, service.IsPermanent, m))
		if err != nil {
			return nil, err
		}
	}

	return &ApplicationContainer{
		Router:       router,
		DB:           db,
		CronMgr:      cronMgr,
		KafkaManager: kafkaMgr,
	}, nil
}
