package service

import (
	"SocialPulse/internal/api/dto"
	"SocialPulse/internal/model"
	"SocialPulse/internal/pkg/util"
	"SocialPulse/internal/repository"
	"context"
)

const defaultCommenterLimit = 10

type CommentService interface {
	ListComments(ctx context.Context, userID uint64, query *dto.CommentListQuery) ([]*dto.CommentDTO, error)
	// Sentiment 指定 post_id 时只看该帖子，否则看最近 days 天
	Sentiment(ctx context.Context, userID uint64, query *dto.SentimentQuery) (*dto.SentimentDTO, error)
	// TopCommenters 最近 days 天内评论最多的用户
	TopCommenters(ctx context.Context, userID uint64, query *dto.CommenterQuery) ([]*dto.CommenterDTO, error)
	// UpsertComment 接入专用，不校验归属
	UpsertComment(ctx context.Context, req *dto.CommentCreateDTO) error
}

type commentServiceImpl struct {
	postRepo    repository.PostRepo
	commentRepo repository.CommentRepo
	defaults    AnalyticsDefaults
}

func NewCommentService(postRepo repository.PostRepo, commentRepo repository.CommentRepo, defaults AnalyticsDefaults) CommentService {
	return &commentServiceImpl{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		defaults:    defaults,
	}
}

func (s *commentServiceImpl) ListComments(ctx context.Context, userID uint64, query *dto.CommentListQuery) ([]*dto.CommentDTO, error) {
	comments, err := s.commentRepo.ListComments(ctx, userID, repository.CommentFilter{
		PostID: query.PostID,
		Search: query.Search,
	})
	if err != nil {
		return nil, err
	}
	res := make([]*dto.CommentDTO, 0, len(comments))
	for _, c := range comments {
		res = append(res, toCommentDTO(c))
	}
	return res, nil
}

func (s *commentServiceImpl) Sentiment(ctx context.Context, userID uint64, query *dto.SentimentQuery) (*dto.SentimentDTO, error) {
	filter := repository.CommentFilter{PostID: query.PostID}
	if query.PostID == nil {
		since := util.WindowStart(nowFunc(), s.defaults.window(query.Days))
		filter.Since = &since
	}
	comments, err := s.commentRepo.ListComments(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	return BucketSentiment(comments), nil
}

func (s *commentServiceImpl) TopCommenters(ctx context.Context, userID uint64, query *dto.CommenterQuery) ([]*dto.CommenterDTO, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = defaultCommenterLimit
	}
	since := util.WindowStart(nowFunc(), s.defaults.window(query.Days))
	stats, err := s.commentRepo.TopCommenters(ctx, userID, since, limit)
	if err != nil {
		return nil, err
	}
	res := make([]*dto.CommenterDTO, 0, len(stats))
	for _, st := range stats {
		item := &dto.CommenterDTO{
			Username:        st.Username,
			CommentCount:    st.CommentCount,
			TotalLikes:      st.TotalLikes,
			LatestCommentAt: st.LatestCommentAt,
		}
		if st.AvgSentiment != nil {
			item.AvgSentiment = round2(*st.AvgSentiment)
		}
		res = append(res, item)
	}
	return res, nil
}

func (s *commentServiceImpl) UpsertComment(ctx context.Context, req *dto.CommentCreateDTO) error {
	post, err := s.postRepo.GetPost(ctx, req.PostID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}
	return s.commentRepo.UpsertComment(ctx, &model.Comment{
		PostID:         post.ID,
		CommentID:      req.CommentID,
		Username:       req.Username,
		Text:           req.Text,
		LikesCount:     req.LikesCount,
		RepliedToID:    req.RepliedToID,
		PostedAt:       req.PostedAt.UTC(),
		SentimentScore: req.SentimentScore,
	})
}
