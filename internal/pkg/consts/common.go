package consts

// 平台
const (
	PlatformInstagram = "instagram"
	PlatformFacebook  = "facebook"
	PlatformTwitter   = "twitter"
	PlatformLinkedIn  = "linkedin"
	PlatformYouTube   = "youtube"
	PlatformTikTok    = "tiktok"
)

// 内容类型
const (
	ContentTypeReel     = "reel"
	ContentTypeCarousel = "carousel"
	ContentTypeStatic   = "static"
	ContentTypeStory    = "story"
	ContentTypeVideo    = "video"
)

// 洞察类型
const (
	InsightContentPerformance = "content_performance"
	InsightAudienceBehavior   = "audience_behavior"
	InsightOptimalTiming      = "optimal_timing"
	InsightTrendAnalysis      = "trend_analysis"
	InsightCompetitorAnalysis = "competitor_analysis"
	InsightRecommendation     = "recommendation"
)

// 报告类型
const (
	ReportPerformance = "performance"
	ReportEngagement  = "engagement"
	ReportAudience    = "audience"
	ReportContent     = "content"
	ReportComparative = "comparative"
	ReportCustom      = "custom"
)

// 报告格式
const (
	FormatPDF   = "pdf"
	FormatCSV   = "csv"
	FormatExcel = "excel"
	FormatJSON  = "json"
)

// 情感分桶边界
const (
	SentimentPositiveFrom = 0.5
	SentimentNegativeTo   = -0.5
)

// 默认值
const (
	DefaultWindowDays     = 30
	DefaultTopLimit       = 10
	DefaultTrendLimit     = 20
	DefaultInsightDays    = 7
	DefaultGrowthDays     = 90
	DefaultPostsPerWeek   = 7
	DefaultInsightScore   = 5
	StrategyTopPosts      = 10
	StrategyOptimalSlots  = 7
	StrategyHashtagWindow = 30
)

// DayNames 星期名称，周一为 0
var DayNames = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
