package middleware

import (
	"bytes"
	"io"
	log "log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

const (
	maxAuditBody = 16384
	protected    = "[PROTECTED]"
)

// auditSkipped 抓取与探活请求不记录
var auditSkipped = map[string]struct{}{
	"/metrics":  {},
	"/api/ping": {},
}

// bodylessRoutes 响应里带预签名链接，请求与响应体都不落日志
var bodylessRoutes = map[string]struct{}{
	"/api/reports/:id/download": {},
}

// sensitiveFields JSON 请求体中需要打码的字段
var sensitiveFields = map[string]struct{}{
	"access_token":  {},
	"refresh_token": {},
	"password":      {},
	"api_key":       {},
}

type responseBodyWriter struct {
	gin.ResponseWriter
	body    *bytes.Buffer
	capture bool
}

func (r *responseBodyWriter) Write(b []byte) (int, error) {
	if r.capture && r.body.Len() < maxAuditBody {
		r.body.Write(b)
	}
	return r.ResponseWriter.Write(b)
}

func (r *responseBodyWriter) Flush() {
	if flusher, ok := r.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// AuditMiddleware 记录每个请求的入参与响应
func AuditMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := auditSkipped[c.Request.URL.Path]; ok {
			c.Next()
			return
		}
		ctx := c.Request.Context()
		_, bodyless := bodylessRoutes[c.FullPath()]

		reqBody := protected
		if !bodyless && c.Request.Body != nil {
			raw, _ := io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(raw))
			reqBody = redactBody(c.ContentType(), raw)
		}

		query, err := url.QueryUnescape(c.Request.URL.RawQuery)
		if err != nil {
			query = c.Request.URL.RawQuery
		}

		log.InfoContext(ctx, "Recv Request",
			log.String("method", c.Request.Method),
			log.String("path", c.Request.URL.Path),
			log.String("query", query),
			log.String("req_body", reqBody),
		)

		w := &responseBodyWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer, capture: !bodyless}
		c.Writer = w
		start := time.Now()

		c.Next()

		resBody := w.body.String()
		if bodyless {
			resBody = protected
		}
		log.InfoContext(ctx, "Send Response",
			log.Int("status", c.Writer.Status()),
			log.Duration("latency", time.Since(start)),
			log.String("res_body", resBody),
		)
	}
}

// redactBody 只处理顶层 JSON 对象，其余内容原样截断输出
func redactBody(contentType string, raw []byte) string {
	if len(raw) == 0 {
		return ""
	}
	if strings.Contains(contentType, "json") {
		var fields map[string]any
		if err := json.Unmarshal(raw, &fields); err == nil {
			masked := false
			for k := range fields {
				if _, ok := sensitiveFields[strings.ToLower(k)]; ok && fields[k] != nil {
					fields[k] = protected
					masked = true
				}
			}
			if masked {
				if out, err := json.Marshal(fields); err == nil {
					raw = out
				}
			}
		}
	}
	if len(raw) > maxAuditBody {
		raw = raw[:maxAuditBody]
	}
	return string(raw)
}
