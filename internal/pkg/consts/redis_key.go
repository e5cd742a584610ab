package consts

const (
	DashboardOverviewKey = "dashboard:overview:"
	DashboardPlatformKey = "dashboard:platform:"
	AccountOverviewKey   = "account:overview:"
	TokenBlacklistKey    = "auth:blacklist:"
)

const (
	PatternFoldLock     = "lock:pattern:fold:"
	InsightGenerateLock = "lock:insight:generate"
	CompetitorSyncLock  = "lock:competitor:sync"
)
