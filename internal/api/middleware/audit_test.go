package middleware

import (
	"bytes"
	"io"
	log "log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Default()
	log.SetDefault(log.New(log.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { log.SetDefault(prev) })
	return &buf
}

func newAuditRouter(seen *string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AuditMiddleware())
	r.GET("/metrics", func(c *gin.Context) { c.String(http.StatusOK, "# HELP up") })
	r.GET("/api/reports/:id/download", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"url": "https://minio.local/reports/1.pdf?X-Amz-Signature=secret"})
	})
	r.POST("/api/accounts", func(c *gin.Context) {
		raw, _ := io.ReadAll(c.Request.Body)
		*seen = string(raw)
		c.JSON(http.StatusOK, gin.H{"id": 1})
	})
	return r
}

func TestAuditSkipsMetrics(t *testing.T) {
	buf := captureLogs(t)
	r := newAuditRouter(new(string))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, buf.String())
}

func TestAuditHidesDownloadBodies(t *testing.T) {
	buf := captureLogs(t)
	r := newAuditRouter(new(string))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/reports/1/download", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "X-Amz-Signature")

	out := buf.String()
	assert.Contains(t, out, "Send Response")
	assert.Contains(t, out, protected)
	assert.NotContains(t, out, "X-Amz-Signature")
}

func TestAuditMasksTokens(t *testing.T) {
	buf := captureLogs(t)
	var seen string
	r := newAuditRouter(&seen)

	body := `{"platform":"instagram","access_token":"tok-123","refresh_token":null}`
	req := httptest.NewRequest(http.MethodPost, "/api/accounts", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	// 处理函数拿到的仍是原始请求体
	assert.Equal(t, body, seen)
	out := buf.String()
	assert.NotContains(t, out, "tok-123")
	assert.Contains(t, out, "instagram")
}

func TestRedactBodyPlainText(t *testing.T) {
	assert.Equal(t, "hello", redactBody("text/plain", []byte("hello")))
	assert.Equal(t, "", redactBody("application/json", nil))
	assert.Len(t, redactBody("text/plain", bytes.Repeat([]byte("a"), maxAuditBody+10)), maxAuditBody)
}
