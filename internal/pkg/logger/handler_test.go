package logger

import (
	"bytes"
	"context"
	log "log/slog"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextHandlerAddsTraceID(t *testing.T) {
	var buf bytes.Buffer
	l := log.New(&ContextHandler{log.NewJSONHandler(&buf, nil)})

	ctx := context.WithValue(context.Background(), TraceIDKey, "abc")
	l.InfoContext(ctx, "hello")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "abc", rec[TraceIDKey])
}

func TestTeeOnlyForwardsTracedRecordsRemotely(t *testing.T) {
	var local, remote bytes.Buffer
	tee := &TeeHandler{handlers: []log.Handler{
		log.NewJSONHandler(&local, nil),
		&RemoteFilterHandler{next: log.NewJSONHandler(&remote, nil)},
	}}
	l := log.New(&ContextHandler{tee})

	l.Info("startup")
	l.InfoContext(context.WithValue(context.Background(), TraceIDKey, "t-1"), "request")

	assert.Equal(t, 2, strings.Count(local.String(), "\n"))
	assert.Equal(t, 1, strings.Count(remote.String(), "\n"))
	assert.Contains(t, remote.String(), "t-1")
}

func TestNewJobContext(t *testing.T) {
	ctx := NewJobContext(context.Background(), "pattern")
	assert.True(t, strings.HasPrefix(TraceID(ctx), "job-pattern-"))
	assert.Equal(t, "", TraceID(context.Background()))
}
