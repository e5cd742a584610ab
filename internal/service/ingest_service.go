package service

import (
	"SocialPulse/internal/api/dto"
	"SocialPulse/internal/repository"
	"context"
	"errors"
	log "log/slog"
)

// IngestService Kafka 接入的落库入口，归属用户由账号反查
type IngestService struct {
	accountRepo repository.SocialAccountRepo
	postRepo    repository.PostRepo
	postSvc     PostService
	metricSvc   PostMetricService
	commentSvc  CommentService
	audienceSvc AudienceService
}

func NewIngestService(
	accountRepo repository.SocialAccountRepo,
	postRepo repository.PostRepo,
	postSvc PostService,
	metricSvc PostMetricService,
	commentSvc CommentService,
	audienceSvc AudienceService,
) *IngestService {
	return &IngestService{
		accountRepo: accountRepo,
		postRepo:    postRepo,
		postSvc:     postSvc,
		metricSvc:   metricSvc,
		commentSvc:  commentSvc,
		audienceSvc: audienceSvc,
	}
}

func (s *IngestService) ownerOf(ctx context.Context, accountID uint64) (uint64, error) {
	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return 0, err
	}
	if account == nil {
		return 0, ErrAccountNotFound
	}
	return account.UserID, nil
}

// IngestPost 重复投递的帖子直接忽略
func (s *IngestService) IngestPost(ctx context.Context, req *dto.PostCreateDTO) error {
	userID, err := s.ownerOf(ctx, req.SocialAccountID)
	if err != nil {
		return err
	}
	_, err = s.postSvc.CreatePost(ctx, userID, req)
	if errors.Is(err, ErrPostExist) {
		log.InfoContext(ctx, "ingest duplicate post skipped", "post_id", req.PostID)
		return nil
	}
	return err
}

func (s *IngestService) IngestMetric(ctx context.Context, req *dto.MetricCreateDTO) error {
	post, err := s.postRepo.GetPost(ctx, req.PostID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}
	userID, err := s.ownerOf(ctx, post.SocialAccountID)
	if err != nil {
		return err
	}
	_, err = s.metricSvc.CreateMetric(ctx, userID, req)
	return err
}

func (s *IngestService) IngestComment(ctx context.Context, req *dto.CommentCreateDTO) error {
	return s.commentSvc.UpsertComment(ctx, req)
}

func (s *IngestService) IngestAudience(ctx context.Context, req *dto.AudienceCreateDTO) error {
	userID, err := s.ownerOf(ctx, req.SocialAccountID)
	if err != nil {
		return err
	}
	_, err = s.audienceSvc.CreateAudience(ctx, userID, req)
	return err
}
