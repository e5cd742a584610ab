package kafka

import (
	"SocialPulse/internal/api/dto"
	"SocialPulse/internal/pkg/metrics"
	"context"
	"testing"

	"github.com/IBM/sarama"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errNotFound = errors.New("not found")

type fakeIngester struct {
	posts     []*dto.PostCreateDTO
	metrics   []*dto.MetricCreateDTO
	comments  []*dto.CommentCreateDTO
	audiences []*dto.AudienceCreateDTO
	err       error
}

func (f *fakeIngester) IngestPost(_ context.Context, req *dto.PostCreateDTO) error {
	f.posts = append(f.posts, req)
	return f.err
}

func (f *fakeIngester) IngestMetric(_ context.Context, req *dto.MetricCreateDTO) error {
	f.metrics = append(f.metrics, req)
	return f.err
}

func (f *fakeIngester) IngestComment(_ context.Context, req *dto.CommentCreateDTO) error {
	f.comments = append(f.comments, req)
	return f.err
}

func (f *fakeIngester) IngestAudience(_ context.Context, req *dto.AudienceCreateDTO) error {
	f.audiences = append(f.audiences, req)
	return f.err
}

func newTestHandler(ing *fakeIngester) (*IngestHandler, *metrics.Metrics) {
	m := metrics.New()
	h := NewIngestHandler(ing, func(err error) bool { return errors.Is(err, errNotFound) }, m)
	return h, m
}

func message(value string) *sarama.ConsumerMessage {
	return &sarama.ConsumerMessage{Topic: "social_ingest", Value: []byte(value)}
}

func TestIngestPost(t *testing.T) {
	ing := &fakeIngester{}
	h, m := newTestHandler(ing)

	err := h.logic(context.Background(), message(`{"type":"post","data":{"social_account_id":3,"post_id":"ig_1","content_type":"reel","caption":"hi #go","posted_at":"2026-03-02T10:00:00Z"}}`))
	require.NoError(t, err)
	require.Len(t, ing.posts, 1)
	assert.Equal(t, uint64(3), ing.posts[0].SocialAccountID)
	assert.Equal(t, 10, ing.posts[0].PostedAt.Hour())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.IngestMessages.WithLabelValues("post", "success")))
}

func TestIngestMetric(t *testing.T) {
	ing := &fakeIngester{}
	h, _ := newTestHandler(ing)

	err := h.logic(context.Background(), message(`{"type":"metric","data":{"post_id":9,"likes_count":12,"comments_count":3}}`))
	require.NoError(t, err)
	require.Len(t, ing.metrics, 1)
	assert.Equal(t, int64(12), ing.metrics[0].LikesCount)
	assert.Nil(t, ing.metrics[0].EngagementRate)
}

func TestIngestMalformedIsPoison(t *testing.T) {
	h, m := newTestHandler(&fakeIngester{})

	cases := []string{
		`not json`,
		`{"type":"","data":{}}`,
		`{"type":"post"}`,
		`{"type":"story_view","data":{"id":1}}`,
	}
	for _, c := range cases {
		err := h.logic(context.Background(), message(c))
		assert.ErrorIs(t, err, ErrPoison, c)
	}
	assert.Equal(t, 3.0, testutil.ToFloat64(m.IngestMessages.WithLabelValues("unknown", "invalid")))
}

func TestIngestValidationFailureIsPoison(t *testing.T) {
	ing := &fakeIngester{}
	h, _ := newTestHandler(ing)

	err := h.logic(context.Background(), message(`{"type":"post","data":{"social_account_id":3,"post_id":"x","content_type":"gif","posted_at":"2026-03-02T10:00:00Z"}}`))
	assert.ErrorIs(t, err, ErrPoison)
	assert.Empty(t, ing.posts)
}

func TestIngestPermanentErrorIsDropped(t *testing.T) {
	ing := &fakeIngester{err: errors.Wrap(errNotFound, "post 9")}
	h, m := newTestHandler(ing)

	err := h.logic(context.Background(), message(`{"type":"comment","data":{"post_id":9,"comment_id":"c1","username":"amy","text":"nice","posted_at":"2026-03-02T10:00:00Z"}}`))
	assert.ErrorIs(t, err, ErrPoison)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.IngestMessages.WithLabelValues("comment", "rejected")))
}

func TestIngestTransientErrorIsRetried(t *testing.T) {
	ing := &fakeIngester{err: errors.New("connection refused")}
	h, _ := newTestHandler(ing)

	err := h.logic(context.Background(), message(`{"type":"audience","data":{"social_account_id":3,"followers_count":100}}`))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrPoison)
}

func TestProcessWithRetryStopsOnPoison(t *testing.T) {
	calls := 0
	processWithRetry(context.Background(), message("x"), func(context.Context, *sarama.ConsumerMessage) error {
		calls++
		if calls < 3 {
			return errors.New("temporary")
		}
		return ErrPoison
	})
	assert.Equal(t, 3, calls)
}

func TestProcessWithRetryStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	calls := 0
	processWithRetry(ctx, message("x"), func(context.Context, *sarama.ConsumerMessage) error {
		calls++
		return errors.New("down")
	})
	assert.Equal(t, 1, calls)
}
