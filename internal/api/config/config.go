package config

// Config 配置主体
type Config struct {
	Server      ServerConfig        `mapstructure:"server"`
	DB          DBConfig            `mapstructure:"database"`
	Redis       RedisConfig         `mapstructure:"redis"`
	Logstash    LogstashConfig      `mapstructure:"logstash"`
	JWT         JWTConfig           `mapstructure:"jwt"`
	LLM         LLMConfig           `mapstructure:"llm"`
	MinIO       MinIOConfig         `mapstructure:"minio"`
	Elastic     ElasticConfig       `mapstructure:"elastic"`
	Mongo       MongoConfig         `mapstructure:"mongo"`
	Kafka       KafkaConfig         `mapstructure:"kafka"`
	KafkaIngest KafkaIngestConsumer `mapstructure:"kafka_ingest_consumer"`
	Platform    PlatformConfig      `mapstructure:"platform"`
	Analytics   AnalyticsConfig     `mapstructure:"analytics"`
	Cron        CronConfig          `mapstructure:"cron"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port int `mapstructure:"port"`
	// AllowOrigins 为空时放行任意来源
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// DBConfig 数据库配置
type DBConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

type LogstashConfig struct {
	Address string `mapstructure:"address"`
	Index   string `mapstructure:"index"`
	Token   string `mapstructure:"token"`
}

// JWTConfig 令牌由外部身份服务签发，这里只做校验
type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
}

type LLMConfig struct {
	Enable     bool   `mapstructure:"enable"`
	URL        string `mapstructure:"url"`
	TextModel  string `mapstructure:"text_model"`
	ApiKey     string `mapstructure:"api_key"`
	PromptPath string `mapstructure:"prompt_path"`
}

// MinIOConfig MinIO配置
type MinIOConfig struct {
	Endpoint     string `mapstructure:"endpoint"`
	AccessKey    string `mapstructure:"access_key"`
	SecretKey    string `mapstructure:"secret_key"`
	ReportBucket string `mapstructure:"report_bucket"`
	UseSSL       bool   `mapstructure:"use_ssl"`
	PresignTTL   int    `mapstructure:"presign_ttl"` // 分钟
}

// ElasticConfig Elastic配置
type ElasticConfig struct {
	Address  string         `mapstructure:"address"`
	Username string         `mapstructure:"username"`
	Password string         `mapstructure:"password"`
	Indices  ElasticIndices `mapstructure:"indices"`
}

// ElasticIndices Elastic索引
type ElasticIndices struct {
	PostIndex string `mapstructure:"post_index"`
}

type MongoConfig struct {
	URL      string `mapstructure:"url"`
	Database string `mapstructure:"database"`
}

type KafkaConfig struct {
	Brokers  []string       `mapstructure:"brokers"`
	Sasl     SaslConfig     `mapstructure:"sasl"`
	Consumer ConsumerConfig `mapstructure:"consumer"`
}

type SaslConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type ConsumerConfig struct {
	SessionTimeout    int `mapstructure:"session_timeout"`
	HeartbeatInterval int `mapstructure:"heartbeat_interval"`
	RebalanceTimeout  int `mapstructure:"rebalance_timeout"`
	MaxProcessingTime int `mapstructure:"max_processing_time"`
}

type KafkaIngestConsumer struct {
	Enable  bool   `mapstructure:"enable"`
	Topic   string `mapstructure:"topic"`
	GroupID string `mapstructure:"group_id"`
}

// PlatformConfig 竞品数据拉取接口，BaseURL 为空时写入零值快照
type PlatformConfig struct {
	BaseURL string `mapstructure:"base_url"`
	ApiKey  string `mapstructure:"api_key"`
	Timeout int    `mapstructure:"timeout"` // 秒
}

type AnalyticsConfig struct {
	CacheTTL          int `mapstructure:"cache_ttl"` // 秒
	InsightLookback   int `mapstructure:"insight_lookback_days"`
	DefaultWindowDays int `mapstructure:"default_window_days"`
	DefaultTopLimit   int `mapstructure:"default_top_limit"`
	DefaultTrendLimit int `mapstructure:"default_trend_limit"`
}

// CronConfig 定时任务表达式（含秒）
type CronConfig struct {
	AccountSync     string `mapstructure:"account_sync"`
	PatternFold     string `mapstructure:"pattern_fold"`
	InsightGenerate string `mapstructure:"insight_generate"`
	CompetitorSync  string `mapstructure:"competitor_sync"`
}
