package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Cfg 全局可访问的配置实例
var Cfg *Config

// LoadConfig 从文件加载配置并填充到 Cfg
func LoadConfig() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")

	viper.SetEnvPrefix("SOCIALPULSE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("config file not found: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	Cfg = &cfg

	return nil
}

func setDefaults() {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("analytics.cache_ttl", 300)
	viper.SetDefault("analytics.insight_lookback_days", 7)
	viper.SetDefault("analytics.default_window_days", 30)
	viper.SetDefault("analytics.default_top_limit", 10)
	viper.SetDefault("analytics.default_trend_limit", 20)
	viper.SetDefault("minio.presign_ttl", 60)
	viper.SetDefault("platform.timeout", 10)
	viper.SetDefault("cron.account_sync", "0 */30 * * * *")
	viper.SetDefault("cron.pattern_fold", "0 0 */6 * * *")
	viper.SetDefault("cron.insight_generate", "0 0 0 * * *")
	viper.SetDefault("cron.competitor_sync", "0 0 */12 * * *")
}
