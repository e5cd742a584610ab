package service

import (
	"SocialPulse/internal/api/dto"
	"SocialPulse/internal/model"
	"SocialPulse/internal/pkg/consts"
	"SocialPulse/internal/pkg/mongo"
	"SocialPulse/internal/repository"
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 以下 fake 只实现用到的方法，其余方法调用会 panic

type fakeJobRepo struct {
	status map[uint64]string
	fields map[string]any
}

func (f *fakeJobRepo) GetStatus(_ context.Context, id uint64) (string, error) {
	return f.status[id], nil
}

func (f *fakeJobRepo) UpdateStatus(_ context.Context, id uint64, from, to string, fields map[string]any) (int64, error) {
	if f.status[id] != from {
		return 0, nil
	}
	f.status[id] = to
	f.fields = fields
	return 1, nil
}

type fakePostRepo struct {
	repository.PostRepo
	posts  []*model.Post
	filter repository.PostFilter
}

// ListPosts 记录收到的筛选条件，不做过滤
func (f *fakePostRepo) ListPosts(_ context.Context, _ uint64, filter repository.PostFilter) ([]*model.Post, error) {
	f.filter = filter
	return f.posts, nil
}

func (f *fakePostRepo) ListPostsByAccount(_ context.Context, accountID uint64) ([]*model.Post, error) {
	res := make([]*model.Post, 0)
	for _, p := range f.posts {
		if p.SocialAccountID == accountID {
			res = append(res, p)
		}
	}
	return res, nil
}

type fakeAccountRepo struct {
	repository.SocialAccountRepo
	accounts map[uint64]*model.SocialAccount
}

func (f *fakeAccountRepo) GetByID(_ context.Context, id uint64) (*model.SocialAccount, error) {
	return f.accounts[id], nil
}

func (f *fakeAccountRepo) sorted() []*model.SocialAccount {
	res := make([]*model.SocialAccount, 0, len(f.accounts))
	for _, a := range f.accounts {
		res = append(res, a)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res
}

func (f *fakeAccountRepo) List(context.Context, uint64, repository.AccountFilter) ([]*model.SocialAccount, error) {
	return f.sorted(), nil
}

func (f *fakeAccountRepo) ListActive(context.Context) ([]*model.SocialAccount, error) {
	res := make([]*model.SocialAccount, 0)
	for _, a := range f.sorted() {
		if a.IsActive {
			res = append(res, a)
		}
	}
	return res, nil
}

type fakeMetricRepo struct {
	repository.PostMetricRepo
	latest map[uint64]*model.PostMetric
	filter repository.MetricFilter
}

func (f *fakeMetricRepo) ListMetrics(_ context.Context, _ uint64, filter repository.MetricFilter) ([]*model.PostMetric, error) {
	f.filter = filter
	return nil, nil
}

func (f *fakeMetricRepo) GetLatestMetrics(_ context.Context, postIDs []uint64) (map[uint64]*model.PostMetric, error) {
	res := make(map[uint64]*model.PostMetric)
	for _, id := range postIDs {
		if m, ok := f.latest[id]; ok {
			res[id] = m
		}
	}
	return res, nil
}

type fakeCommentRepo struct {
	repository.CommentRepo
	since time.Time
	limit int
}

func (f *fakeCommentRepo) TopCommenters(_ context.Context, _ uint64, since time.Time, limit int) ([]*repository.CommenterStat, error) {
	f.since, f.limit = since, limit
	return []*repository.CommenterStat{{Username: "alice", CommentCount: 4}}, nil
}

type fakeAudienceRepo struct {
	repository.AudienceRepo
	audiences map[uint64]*model.Audience
}

func (f *fakeAudienceRepo) GetLatestAudiences(context.Context, []uint64) (map[uint64]*model.Audience, error) {
	return f.audiences, nil
}

// fakePatternRepo 在内存里模拟折叠游标与规律行
type fakePatternRepo struct {
	repository.EngagementPatternRepo
	cursors  map[uint64]uint64
	patterns map[model.PatternKey]*model.EngagementPattern
}

func newFakePatternRepo() *fakePatternRepo {
	return &fakePatternRepo{
		cursors:  make(map[uint64]uint64),
		patterns: make(map[model.PatternKey]*model.EngagementPattern),
	}
}

func (f *fakePatternRepo) FoldSnapshot(_ context.Context, key model.PatternKey, postID, metricID uint64, apply func(p *model.EngagementPattern)) (bool, error) {
	if seen, ok := f.cursors[postID]; ok && seen >= metricID {
		return false, nil
	}
	p, ok := f.patterns[key]
	if !ok {
		p = &model.EngagementPattern{SocialAccountID: key.SocialAccountID, HourOfDay: key.HourOfDay, DayOfWeek: key.DayOfWeek}
		f.patterns[key] = p
	}
	apply(p)
	f.cursors[postID] = metricID
	return true, nil
}

type fakeInsightRepo struct {
	mongo.InsightRepo
	created []*mongo.InsightModel
}

func (f *fakeInsightRepo) CreateInsight(_ context.Context, insight *mongo.InsightModel) error {
	f.created = append(f.created, insight)
	return nil
}

func (f *fakeInsightRepo) GetUnreadCount(context.Context, uint64) (int64, error) {
	return int64(len(f.created)), nil
}

type fakePostService struct {
	PostService
	createErr error
	created   int
}

func (f *fakePostService) CreatePost(context.Context, uint64, *dto.PostCreateDTO) (*dto.PostDTO, error) {
	f.created++
	return nil, f.createErr
}

func (f *fakePostService) ContentComparison(context.Context, uint64, *dto.AnalyticsQuery) ([]*dto.ContentTypeStatDTO, error) {
	return []*dto.ContentTypeStatDTO{{ContentType: consts.ContentTypeReel, Count: 2, AvgEngagementRate: 4.5}}, nil
}

type fakeHashtagService struct {
	HashtagService
}

func (fakeHashtagService) Trending(context.Context, uint64, *dto.TrendingQuery) ([]*dto.TrendingHashtagDTO, error) {
	return []*dto.TrendingHashtagDTO{{HashtagID: 1, Tag: "travel", UsageCount: 3, AvgEngagementRate: 2}}, nil
}

type fakeReportRepo struct {
	repository.ReportRepo
	report *model.Report
}

func (f *fakeReportRepo) GetOwnedReport(_ context.Context, userID, id uint64) (*model.Report, error) {
	if f.report == nil || f.report.UserID != userID || f.report.ID != id {
		return nil, nil
	}
	cp := *f.report
	return &cp, nil
}

type fakeStore struct {
	objects map[string][]byte
}

func (f *fakeStore) Upload(_ context.Context, name string, data []byte, _ string) error {
	f.objects[name] = data
	return nil
}

func (f *fakeStore) Delete(_ context.Context, name string) error {
	delete(f.objects, name)
	return nil
}

func (f *fakeStore) PresignedURL(_ context.Context, name, downloadName string, _ time.Duration) (string, error) {
	return "http://minio.local/" + name + "?name=" + downloadName, nil
}

func TestJobRunner_Transitions(t *testing.T) {
	repo := &fakeJobRepo{status: map[uint64]string{1: model.JobStatusPending}}
	runner := NewJobRunner(repo)
	ctx := context.Background()

	// pending 不能直接完成
	err := runner.CompleteJob(ctx, 1, nil)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	require.NoError(t, runner.StartJob(ctx, 1))
	assert.ErrorIs(t, runner.StartJob(ctx, 1), ErrInvalidTransition)

	require.NoError(t, runner.CompleteJob(ctx, 1, map[string]any{"file_key": "k"}))
	assert.Equal(t, model.JobStatusCompleted, repo.status[1])
	assert.Equal(t, "k", repo.fields["file_key"])
	assert.Contains(t, repo.fields, "completed_at")

	assert.ErrorIs(t, runner.StartJob(ctx, 99), ErrJobNotFound)
}

func TestQueryService_EmptyText(t *testing.T) {
	svc := NewQueryService(nil, nil, nil)
	_, err := svc.Execute(context.Background(), 1, &dto.QueryExecuteDTO{QueryText: "   "})
	assert.ErrorIs(t, err, ErrQueryTextEmpty)
}

func TestHashtagService_PerformanceRequiresID(t *testing.T) {
	svc := NewHashtagService(nil, nil, nil, AnalyticsDefaults{})
	_, err := svc.Performance(context.Background(), 1, nil)
	assert.ErrorIs(t, err, ErrHashtagIDRequired)

	zero := uint64(0)
	_, err = svc.Performance(context.Background(), 1, &zero)
	assert.ErrorIs(t, err, ErrHashtagIDRequired)
}

func TestInsightService_GenerateWithoutPosts(t *testing.T) {
	svc := NewInsightService(nil, nil, &fakePostRepo{}, nil, nil, NewDefaultScorer(), nil)
	n, err := svc.Generate(context.Background(), 1, 7)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestInsightService_GeneratePicksBestPost(t *testing.T) {
	fixed := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	nowFunc = func() time.Time { return fixed }
	t.Cleanup(func() { nowFunc = time.Now })

	posts := &fakePostRepo{posts: []*model.Post{
		{ID: 1, SocialAccountID: 3, ContentType: consts.ContentTypeStatic, PostedAt: fixed.AddDate(0, 0, -2)},
		{ID: 2, SocialAccountID: 3, ContentType: consts.ContentTypeReel, PostedAt: fixed.AddDate(0, 0, -1)},
		{ID: 3, SocialAccountID: 4, ContentType: consts.ContentTypeStatic, PostedAt: fixed.AddDate(0, 0, -3)},
	}}
	metrics := &fakeMetricRepo{latest: map[uint64]*model.PostMetric{
		1: {ID: 10, PostID: 1, EngagementRate: 3},
		2: {ID: 11, PostID: 2, EngagementRate: 7},
	}}
	insights := &fakeInsightRepo{}
	svc := NewInsightService(nil, nil, posts, metrics, insights, NewDefaultScorer(), nil)

	n, err := svc.Generate(context.Background(), 9, 7)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	require.NotNil(t, posts.filter.DateFrom)
	assert.Equal(t, fixed.AddDate(0, 0, -7), *posts.filter.DateFrom)
	assert.Equal(t, fixed, *posts.filter.DateTo)

	require.Len(t, insights.created, 1)
	got := insights.created[0]
	assert.Equal(t, uint64(9), got.UserID)
	assert.Equal(t, consts.InsightContentPerformance, got.InsightType)
	assert.Equal(t, consts.DefaultInsightScore, got.Priority)
	assert.Equal(t, uint64(2), got.Data["post_id"])
	require.NotNil(t, got.SocialAccountID)
	assert.Equal(t, uint64(3), *got.SocialAccountID)
	assert.Contains(t, got.Description, "7.00%")
}

func TestInsightService_GenerateWithoutSnapshots(t *testing.T) {
	posts := &fakePostRepo{posts: []*model.Post{{ID: 1, SocialAccountID: 3, PostedAt: time.Now()}}}
	insights := &fakeInsightRepo{}
	svc := NewInsightService(nil, nil, posts, &fakeMetricRepo{}, insights, NewDefaultScorer(), nil)

	n, err := svc.Generate(context.Background(), 9, 0)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, insights.created)
}

func TestIngestService_Post(t *testing.T) {
	accounts := &fakeAccountRepo{accounts: map[uint64]*model.SocialAccount{
		3: {ID: 3, UserID: 7},
	}}
	posts := &fakePostService{createErr: ErrPostExist}
	svc := NewIngestService(accounts, nil, posts, nil, nil, nil)
	ctx := context.Background()

	// 重复投递视为成功
	require.NoError(t, svc.IngestPost(ctx, &dto.PostCreateDTO{SocialAccountID: 3, PostID: "p1"}))
	assert.Equal(t, 1, posts.created)

	err := svc.IngestPost(ctx, &dto.PostCreateDTO{SocialAccountID: 4, PostID: "p2"})
	assert.ErrorIs(t, err, ErrAccountNotFound)
	assert.True(t, IsPermanent(err))
	assert.False(t, IsPermanent(errors.New("connection refused")))
}

func newTestReportService(rep *model.Report) (*reportServiceImpl, *fakeJobRepo, *fakeStore) {
	jobs := &fakeJobRepo{status: map[uint64]string{rep.ID: rep.Status}}
	store := &fakeStore{objects: make(map[string][]byte)}
	svc := NewReportService(
		&fakeReportRepo{report: rep},
		NewJobRunner(jobs),
		store,
		ReportSources{Posts: &fakePostService{}, Hashtags: fakeHashtagService{}},
		time.Hour,
		nil,
	).(*reportServiceImpl)
	svc.async = func(f func()) { f() }
	return svc, jobs, store
}

func TestReportService_Generate(t *testing.T) {
	rep := &model.Report{
		ID:         5,
		UserID:     1,
		ReportType: consts.ReportContent,
		Title:      "Monthly content",
		Format:     consts.FormatCSV,
		Status:     model.JobStatusPending,
	}
	svc, jobs, store := newTestReportService(rep)

	res, err := svc.GenerateReport(context.Background(), 1, 5)
	require.NoError(t, err)
	assert.Equal(t, model.JobStatusProcessing, res.Status)

	assert.Equal(t, model.JobStatusCompleted, jobs.status[5])
	key, ok := jobs.fields["file_key"].(string)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(key, "reports/1/"))
	assert.True(t, strings.HasSuffix(key, ".csv"))

	body := string(store.objects[key])
	assert.Contains(t, body, "Monthly content")
	assert.Contains(t, body, "#travel")
	assert.Contains(t, body, "reel")

	// 已经开始过的任务不能再次生成
	_, err = svc.GenerateReport(context.Background(), 1, 5)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestReportService_Download(t *testing.T) {
	fixed := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	nowFunc = func() time.Time { return fixed }
	t.Cleanup(func() { nowFunc = time.Now })

	rep := &model.Report{ID: 8, UserID: 1, ReportType: consts.ReportAudience, Format: consts.FormatPDF, Status: model.JobStatusProcessing}
	svc, _, _ := newTestReportService(rep)
	ctx := context.Background()

	_, err := svc.DownloadReport(ctx, 1, 8)
	assert.ErrorIs(t, err, ErrReportNotReady)

	_, err = svc.DownloadReport(ctx, 2, 8)
	assert.ErrorIs(t, err, ErrReportNotFound)

	rep.Status = model.JobStatusCompleted
	_, err = svc.DownloadReport(ctx, 1, 8)
	assert.ErrorIs(t, err, ErrReportFileNotFound)

	key := "reports/1/abc.pdf"
	rep.FileKey = &key
	link, err := svc.DownloadReport(ctx, 1, 8)
	require.NoError(t, err)
	assert.Contains(t, link.URL, key)
	assert.Contains(t, link.URL, "audience-report-8.pdf")
	assert.Equal(t, fixed.Add(time.Hour), link.ExpiresAt)
}

func TestReportService_CreateRejectsUnknownFormat(t *testing.T) {
	svc := NewReportService(nil, nil, nil, ReportSources{}, time.Hour, nil)
	_, err := svc.CreateReport(context.Background(), 1, &dto.ReportCreateDTO{ReportType: consts.ReportCustom, Title: "x", Format: "docx"})
	assert.ErrorIs(t, err, ErrFormatNotSupported)
}

func TestPostMetricService_ListMetricsWholeDay(t *testing.T) {
	metrics := &fakeMetricRepo{}
	svc := NewPostMetricService(nil, metrics, nil)
	from := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 10, 10, 0, 0, 0, 0, time.UTC)

	_, err := svc.ListMetrics(context.Background(), 7, &dto.MetricListQuery{DateFrom: &from, DateTo: &to})
	require.NoError(t, err)
	assert.Equal(t, from, *metrics.filter.DateFrom)
	// 当天晚些时候的快照也在范围内
	assert.Equal(t, time.Date(2026, 10, 10, 23, 59, 59, 999999999, time.UTC), *metrics.filter.DateTo)

	_, err = svc.ListMetrics(context.Background(), 7, &dto.MetricListQuery{})
	require.NoError(t, err)
	assert.Nil(t, metrics.filter.DateTo)
}

func TestPostService_AnalyticsWindowEndsNow(t *testing.T) {
	fixed := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	nowFunc = func() time.Time { return fixed }
	t.Cleanup(func() { nowFunc = time.Now })

	posts := &fakePostRepo{posts: []*model.Post{{ID: 1, SocialAccountID: 3, PostedAt: fixed.Add(-time.Hour)}}}
	metrics := &fakeMetricRepo{latest: map[uint64]*model.PostMetric{1: {ID: 5, PostID: 1, EngagementRate: 2}}}
	svc := NewPostService(nil, posts, metrics, nil, nil, nil, AnalyticsDefaults{WindowDays: 14})

	top, err := svc.TopPerforming(context.Background(), 7, &dto.AnalyticsQuery{})
	require.NoError(t, err)
	require.Len(t, top, 1)
	require.NotNil(t, posts.filter.DateTo)
	assert.Equal(t, fixed, *posts.filter.DateTo)
	assert.Equal(t, time.Date(2026, 10, 2, 0, 0, 0, 0, time.UTC), *posts.filter.DateFrom)
}

func TestCommentService_TopCommentersWindow(t *testing.T) {
	fixed := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	nowFunc = func() time.Time { return fixed }
	t.Cleanup(func() { nowFunc = time.Now })

	comments := &fakeCommentRepo{}
	svc := NewCommentService(nil, comments, AnalyticsDefaults{})

	res, err := svc.TopCommenters(context.Background(), 7, &dto.CommenterQuery{Days: 7, Limit: 3})
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "alice", res[0].Username)
	assert.Equal(t, time.Date(2026, 10, 9, 0, 0, 0, 0, time.UTC), comments.since)
	assert.Equal(t, 3, comments.limit)

	// 缺省窗口 30 天
	_, err = svc.TopCommenters(context.Background(), 7, &dto.CommenterQuery{})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 16, 0, 0, 0, 0, time.UTC), comments.since)
}
