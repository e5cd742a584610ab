package platform

import (
	"SocialPulse/internal/api/config"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchCompetitorStats(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/instagram/accounts/acme/stats", r.URL.Path)
		assert.Equal(t, "Bearer k", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"followers_count":1200,"posts_count":30,"avg_engagement_rate":3.5}`))
	}))
	defer srv.Close()

	client := NewStatsClient(config.PlatformConfig{BaseURL: srv.URL, ApiKey: "k", Timeout: 2})
	stats, err := client.FetchCompetitorStats(context.Background(), "instagram", "acme")
	require.NoError(t, err)
	assert.Equal(t, int64(1200), stats.FollowersCount)
	assert.Equal(t, int64(30), stats.PostsCount)
	assert.Equal(t, 3.5, stats.AvgEngagementRate)
}

func TestFetchCompetitorStatsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewStatsClient(config.PlatformConfig{BaseURL: srv.URL})
	_, err := client.FetchCompetitorStats(context.Background(), "tiktok", "x")
	assert.Error(t, err)
}

func TestUnconfiguredClientReturnsZeroStats(t *testing.T) {
	client := NewStatsClient(config.PlatformConfig{})
	stats, err := client.FetchCompetitorStats(context.Background(), "tiktok", "x")
	require.NoError(t, err)
	assert.Equal(t, CompetitorStats{}, *stats)
}
