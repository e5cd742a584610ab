package logger

import (
	"SocialPulse/internal/api/config"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

type ginAccessLog struct {
	Time        string `json:"time"`
	Level       string `json:"level"`
	Msg         string `json:"msg"`
	TraceID     string `json:"trace_id"`
	LogToken    string `json:"log_token"`
	TargetIndex string `json:"target_index"`
	Method      string `json:"method"`
	Path        string `json:"path"`
	Status      int    `json:"status"`
	Latency     string `json:"latency"`
	ClientIP    string `json:"client_ip"`
}

// SetupGin 注册 JSON 访问日志与 Recovery
func SetupGin(r *gin.Engine) {
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Output:    LogWriter,
		SkipPaths: []string{"/metrics", "/api/ping"},
		Formatter: func(p gin.LogFormatterParams) string {
			var traceID string
			if p.Keys != nil {
				if id, ok := p.Keys[TraceIDKey].(string); ok {
					traceID = id
				}
			}
			if traceID == "" && p.Request != nil {
				if id, ok := p.Request.Context().Value(TraceIDKey).(string); ok {
					traceID = id
				}
			}

			line, _ := json.Marshal(ginAccessLog{
				Time:        p.TimeStamp.Format(time.RFC3339),
				Level:       "INFO",
				Msg:         "GIN_ACCESS",
				TraceID:     traceID,
				LogToken:    config.Cfg.Logstash.Token,
				TargetIndex: config.Cfg.Logstash.Index,
				Method:      p.Method,
				Path:        p.Path,
				Status:      p.StatusCode,
				Latency:     p.Latency.String(),
				ClientIP:    p.ClientIP,
			})
			return string(line) + "\n"
		},
	}))

	r.Use(gin.Recovery())
}
