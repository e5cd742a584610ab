package service

import (
	"SocialPulse/internal/api/dto"
	"SocialPulse/internal/model"
	"SocialPulse/internal/pkg/consts"
	"SocialPulse/internal/pkg/es"
	"SocialPulse/internal/pkg/util"
	"SocialPulse/internal/repository"
	"context"
	log "log/slog"
	"sort"
	"strings"
)

const (
	defaultPageSize = 20
	topPostsOfTag   = 5
)

type PostService interface {
	CreatePost(ctx context.Context, userID uint64, req *dto.PostCreateDTO) (*dto.PostDTO, error)
	GetPost(ctx context.Context, userID, id uint64) (*dto.PostDTO, error)
	ListPosts(ctx context.Context, userID uint64, query *dto.PostListQuery) (*dto.PageDTO[*dto.PostDTO], error)
	UpdatePost(ctx context.Context, userID, id uint64, req *dto.PostUpdateDTO) (*dto.PostDTO, error)
	DeletePost(ctx context.Context, userID, id uint64) error
	TopPerforming(ctx context.Context, userID uint64, query *dto.AnalyticsQuery) ([]*dto.PostPerformanceDTO, error)
	ContentComparison(ctx context.Context, userID uint64, query *dto.AnalyticsQuery) ([]*dto.ContentTypeStatDTO, error)
	Timeline(ctx context.Context, userID uint64, query *dto.AnalyticsQuery) ([]*dto.TimelinePointDTO, error)
	GetPostAnalytics(ctx context.Context, userID, id uint64) (*dto.PostAnalyticsDTO, error)
	// GetLatestMetric 没有快照时返回 ErrMetricNotFound
	GetLatestMetric(ctx context.Context, userID, id uint64) (*dto.MetricSnapshotDTO, error)
}

type postServiceImpl struct {
	accountRepo repository.SocialAccountRepo
	postRepo    repository.PostRepo
	metricRepo  repository.PostMetricRepo
	hashtagRepo repository.HashtagRepo
	commentRepo repository.CommentRepo
	postESRepo  es.PostRepo
	defaults    AnalyticsDefaults
}

// AnalyticsDefaults 分析接口未传参数时使用的默认值
type AnalyticsDefaults struct {
	WindowDays int
	TopLimit   int
	TrendLimit int
}

func (d AnalyticsDefaults) window(days int) int {
	if days > 0 {
		return days
	}
	if d.WindowDays > 0 {
		return d.WindowDays
	}
	return consts.DefaultWindowDays
}

func (d AnalyticsDefaults) top(limit int) int {
	if limit > 0 {
		return limit
	}
	if d.TopLimit > 0 {
		return d.TopLimit
	}
	return consts.DefaultTopLimit
}

func (d AnalyticsDefaults) trend(limit int) int {
	if limit > 0 {
		return limit
	}
	if d.TrendLimit > 0 {
		return d.TrendLimit
	}
	return consts.DefaultTrendLimit
}

func NewPostService(
	accountRepo repository.SocialAccountRepo,
	postRepo repository.PostRepo,
	metricRepo repository.PostMetricRepo,
	hashtagRepo repository.HashtagRepo,
	commentRepo repository.CommentRepo,
	postESRepo es.PostRepo,
	defaults AnalyticsDefaults,
) PostService {
	return &postServiceImpl{
		accountRepo: accountRepo,
		postRepo:    postRepo,
		metricRepo:  metricRepo,
		hashtagRepo: hashtagRepo,
		commentRepo: commentRepo,
		postESRepo:  postESRepo,
		defaults:    defaults,
	}
}

// CreatePost 文案中的 #话题 与显式传入的话题合并后关联
func (s *postServiceImpl) CreatePost(ctx context.Context, userID uint64, req *dto.PostCreateDTO) (*dto.PostDTO, error) {
	account, err := s.accountRepo.GetOwned(ctx, userID, req.SocialAccountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}

	post := &model.Post{
		SocialAccountID: account.ID,
		PostID:          req.PostID,
		ContentType:     req.ContentType,
		Caption:         req.Caption,
		MediaURL:        req.MediaURL,
		ThumbnailURL:    req.ThumbnailURL,
		PostedAt:        req.PostedAt.UTC(),
	}
	if err = s.postRepo.CreatePost(ctx, post); err != nil {
		if isDuplicateError(err) {
			return nil, ErrPostExist
		}
		return nil, err
	}

	caption := ""
	if req.Caption != nil {
		caption = *req.Caption
	}
	tags := util.MergeTags(util.ExtractTags(caption), req.Hashtags)
	if len(tags) > 0 {
		hashtags, err := s.hashtagRepo.GetOrCreateHashtags(ctx, tags)
		if err != nil {
			return nil, err
		}
		ids := make([]uint64, 0, len(hashtags))
		for _, h := range hashtags {
			ids = append(ids, h.ID)
		}
		if err = s.hashtagRepo.LinkPostHashtags(ctx, post.ID, ids); err != nil {
			return nil, err
		}
	}

	if s.postESRepo != nil {
		doc := &es.PostES{
			ID:              post.ID,
			UserID:          userID,
			SocialAccountID: account.ID,
			Platform:        account.Platform,
			PostID:          post.PostID,
			ContentType:     post.ContentType,
			Caption:         caption,
			Hashtags:        tags,
			PostedAt:        post.PostedAt,
		}
		if err = s.postESRepo.IndexPost(ctx, doc); err != nil {
			log.ErrorContext(ctx, "index post to es error", "post_id", post.ID, "err", err)
		}
	}

	invalidateUserCache(ctx, userID)
	return toPostDTO(post, tags, nil), nil
}

func (s *postServiceImpl) getOwned(ctx context.Context, userID, id uint64) (*model.Post, error) {
	post, err := s.postRepo.GetOwnedPost(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

func (s *postServiceImpl) GetPost(ctx context.Context, userID, id uint64) (*dto.PostDTO, error) {
	post, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	res, err := s.toPostDTOs(ctx, []*model.Post{post}, nil)
	if err != nil {
		return nil, err
	}
	return res[0], nil
}

// toPostDTOs 批量补齐话题与最新快照
func (s *postServiceImpl) toPostDTOs(ctx context.Context, posts []*model.Post, latest map[uint64]*model.PostMetric) ([]*dto.PostDTO, error) {
	ids := postIDs(posts)
	if latest == nil {
		var err error
		latest, err = s.metricRepo.GetLatestMetrics(ctx, ids)
		if err != nil {
			return nil, err
		}
	}
	postTags, err := s.hashtagRepo.ListPostTags(ctx, ids)
	if err != nil {
		return nil, err
	}
	tagsByPost := make(map[uint64][]string, len(posts))
	for _, pt := range postTags {
		tagsByPost[pt.PostID] = append(tagsByPost[pt.PostID], pt.Tag)
	}

	res := make([]*dto.PostDTO, 0, len(posts))
	for _, p := range posts {
		res = append(res, toPostDTO(p, tagsByPost[p.ID], latest[p.ID]))
	}
	return res, nil
}

func (s *postServiceImpl) ListPosts(ctx context.Context, userID uint64, query *dto.PostListQuery) (*dto.PageDTO[*dto.PostDTO], error) {
	page, pageSize := query.Page, query.PageSize
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	filter := repository.PostFilter{
		AccountID:   query.AccountID,
		Platform:    query.Platform,
		ContentType: query.ContentType,
		HashtagID:   query.HashtagID,
		DateFrom:    query.DateFrom,
	}
	if query.DateTo != nil {
		// date_to 按整天计算
		end := util.EndOfDay(*query.DateTo)
		filter.DateTo = &end
	}
	if keyword := strings.TrimSpace(query.Search); keyword != "" {
		ids, err := s.postESRepo.SearchPostIDs(ctx, userID, keyword, es.MaxSearchSize)
		if err != nil {
			return nil, err
		}
		if ids == nil {
			ids = []uint64{}
		}
		filter.IDs = ids
	}

	inMemory := query.MinLikes != nil || query.MinEngagement != nil ||
		(query.Ordering != "" && query.Ordering != "-posted_at")
	if !inMemory {
		total, err := s.postRepo.CountPosts(ctx, userID, filter)
		if err != nil {
			return nil, err
		}
		filter.Offset = (page - 1) * pageSize
		filter.Limit = pageSize
		posts, err := s.postRepo.ListPosts(ctx, userID, filter)
		if err != nil {
			return nil, err
		}
		items, err := s.toPostDTOs(ctx, posts, nil)
		if err != nil {
			return nil, err
		}
		return &dto.PageDTO[*dto.PostDTO]{Total: total, Items: items}, nil
	}

	// 按指标筛选或排序时先取全量，再在内存里过滤分页
	posts, err := s.postRepo.ListPosts(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	latest, err := s.metricRepo.GetLatestMetrics(ctx, postIDs(posts))
	if err != nil {
		return nil, err
	}
	posts = filterByMetrics(posts, latest, query.MinLikes, query.MinEngagement)
	sortPosts(posts, latest, query.Ordering)

	total := int64(len(posts))
	start := min((page-1)*pageSize, len(posts))
	end := min(start+pageSize, len(posts))
	items, err := s.toPostDTOs(ctx, posts[start:end], latest)
	if err != nil {
		return nil, err
	}
	return &dto.PageDTO[*dto.PostDTO]{Total: total, Items: items}, nil
}

func filterByMetrics(posts []*model.Post, latest map[uint64]*model.PostMetric, minLikes *int64, minEngagement *float64) []*model.Post {
	if minLikes == nil && minEngagement == nil {
		return posts
	}
	res := make([]*model.Post, 0, len(posts))
	for _, p := range posts {
		m := latest[p.ID]
		if m == nil {
			continue
		}
		if minLikes != nil && m.LikesCount < *minLikes {
			continue
		}
		if minEngagement != nil && m.EngagementRate < *minEngagement {
			continue
		}
		res = append(res, p)
	}
	return res
}

// sortPosts 没有快照的帖子按 0 参与排序
func sortPosts(posts []*model.Post, latest map[uint64]*model.PostMetric, ordering string) {
	desc := strings.HasPrefix(ordering, "-")
	field := strings.TrimPrefix(ordering, "-")
	if field == "" {
		field, desc = "posted_at", true
	}

	value := func(p *model.Post) float64 {
		m := latest[p.ID]
		switch field {
		case "engagement":
			if m != nil {
				return m.EngagementRate
			}
		case "likes":
			if m != nil {
				return float64(m.LikesCount)
			}
		default:
			return float64(p.PostedAt.UnixNano())
		}
		return 0
	}

	sort.SliceStable(posts, func(i, j int) bool {
		vi, vj := value(posts[i]), value(posts[j])
		if vi == vj {
			return posts[i].ID > posts[j].ID
		}
		if desc {
			return vi > vj
		}
		return vi < vj
	})
}

func (s *postServiceImpl) UpdatePost(ctx context.Context, userID, id uint64, req *dto.PostUpdateDTO) (*dto.PostDTO, error) {
	if _, err := s.getOwned(ctx, userID, id); err != nil {
		return nil, err
	}
	if err := s.postRepo.UpdateArchived(ctx, id, *req.IsArchived); err != nil {
		return nil, err
	}
	return s.GetPost(ctx, userID, id)
}

func (s *postServiceImpl) DeletePost(ctx context.Context, userID, id uint64) error {
	rows, err := s.postRepo.DeletePost(ctx, userID, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrPostNotFound
	}
	if s.postESRepo != nil {
		if err = s.postESRepo.DeletePost(ctx, id); err != nil {
			log.ErrorContext(ctx, "delete post from es error", "post_id", id, "err", err)
		}
	}
	invalidateUserCache(ctx, userID)
	return nil
}

// windowPosts 分析窗口内的帖子及其最新快照
func (s *postServiceImpl) windowPosts(ctx context.Context, userID uint64, query *dto.AnalyticsQuery) ([]*model.Post, map[uint64]*model.PostMetric, int, error) {
	days := s.defaults.window(query.Days)
	now := nowFunc()
	from := util.WindowStart(now, days)
	posts, err := s.postRepo.ListPosts(ctx, userID, repository.PostFilter{
		AccountID:   query.AccountID,
		Platform:    query.Platform,
		ContentType: query.ContentType,
		HashtagID:   query.HashtagID,
		DateFrom:    &from,
		DateTo:      &now,
	})
	if err != nil {
		return nil, nil, 0, err
	}
	latest, err := s.metricRepo.GetLatestMetrics(ctx, postIDs(posts))
	if err != nil {
		return nil, nil, 0, err
	}
	return posts, latest, days, nil
}

func (s *postServiceImpl) TopPerforming(ctx context.Context, userID uint64, query *dto.AnalyticsQuery) ([]*dto.PostPerformanceDTO, error) {
	posts, latest, _, err := s.windowPosts(ctx, userID, query)
	if err != nil {
		return nil, err
	}
	return TopK(posts, latest, s.defaults.top(query.Limit)), nil
}

func (s *postServiceImpl) ContentComparison(ctx context.Context, userID uint64, query *dto.AnalyticsQuery) ([]*dto.ContentTypeStatDTO, error) {
	posts, latest, _, err := s.windowPosts(ctx, userID, query)
	if err != nil {
		return nil, err
	}
	return GroupByContentType(posts, latest), nil
}

func (s *postServiceImpl) Timeline(ctx context.Context, userID uint64, query *dto.AnalyticsQuery) ([]*dto.TimelinePointDTO, error) {
	posts, latest, days, err := s.windowPosts(ctx, userID, query)
	if err != nil {
		return nil, err
	}
	return BuildTimeline(nowFunc(), days, posts, latest), nil
}

func (s *postServiceImpl) GetPostAnalytics(ctx context.Context, userID, id uint64) (*dto.PostAnalyticsDTO, error) {
	post, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	history, err := s.metricRepo.ListMetricsByPost(ctx, id)
	if err != nil {
		return nil, err
	}
	var latest *model.PostMetric
	historyDTOs := make([]*dto.MetricSnapshotDTO, 0, len(history))
	for _, m := range history {
		historyDTOs = append(historyDTOs, toMetricDTO(m))
	}
	if len(history) > 0 {
		latest, err = s.metricRepo.GetLatestMetric(ctx, id)
		if err != nil {
			return nil, err
		}
	}

	commentsCount, err := s.commentRepo.CountByPost(ctx, id)
	if err != nil {
		return nil, err
	}
	comments, err := s.commentRepo.ListComments(ctx, userID, repository.CommentFilter{PostID: &id})
	if err != nil {
		return nil, err
	}

	postTags, err := s.hashtagRepo.ListPostTags(ctx, []uint64{id})
	if err != nil {
		return nil, err
	}
	tags := make([]string, 0, len(postTags))
	for _, pt := range postTags {
		tags = append(tags, pt.Tag)
	}

	return &dto.PostAnalyticsDTO{
		Post:           toPostDTO(post, tags, latest),
		MetricsHistory: historyDTOs,
		CommentsCount:  commentsCount,
		Sentiment:      BucketSentiment(comments),
		Hashtags:       tags,
	}, nil
}

func (s *postServiceImpl) GetLatestMetric(ctx context.Context, userID, id uint64) (*dto.MetricSnapshotDTO, error) {
	if _, err := s.getOwned(ctx, userID, id); err != nil {
		return nil, err
	}
	metric, err := s.metricRepo.GetLatestMetric(ctx, id)
	if err != nil {
		return nil, err
	}
	if metric == nil {
		return nil, ErrMetricNotFound
	}
	return toMetricDTO(metric), nil
}
