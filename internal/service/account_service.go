package service

import (
	"SocialPulse/internal/api/dto"
	"SocialPulse/internal/model"
	"SocialPulse/internal/pkg/consts"
	"SocialPulse/internal/pkg/es"
	"SocialPulse/internal/pkg/mongo"
	"SocialPulse/internal/repository"
	"context"
	log "log/slog"
	"strconv"
	"time"
)

type AccountService interface {
	CreateAccount(ctx context.Context, userID uint64, req *dto.AccountCreateDTO) (*dto.AccountDTO, error)
	GetAccount(ctx context.Context, userID, id uint64) (*dto.AccountDTO, error)
	ListAccounts(ctx context.Context, userID uint64, query *dto.AccountListQuery) ([]*dto.AccountDTO, error)
	UpdateAccount(ctx context.Context, userID, id uint64, req *dto.AccountUpdateDTO) (*dto.AccountDTO, error)
	DeleteAccount(ctx context.Context, userID, id uint64) error
	SyncAccount(ctx context.Context, userID, id uint64) (*dto.AccountDTO, error)
	GetOverview(ctx context.Context, userID uint64) ([]*dto.AccountOverviewDTO, error)
	// SyncActiveAccounts 定时任务入口，刷新全部启用账号的同步时间
	SyncActiveAccounts(ctx context.Context) (int, error)
}

type accountServiceImpl struct {
	accountRepo  repository.SocialAccountRepo
	postRepo     repository.PostRepo
	metricRepo   repository.PostMetricRepo
	audienceRepo repository.AudienceRepo
	insightRepo  mongo.InsightRepo
	postESRepo   es.PostRepo
	cacheTTL     time.Duration
}

func NewAccountService(
	accountRepo repository.SocialAccountRepo,
	postRepo repository.PostRepo,
	metricRepo repository.PostMetricRepo,
	audienceRepo repository.AudienceRepo,
	insightRepo mongo.InsightRepo,
	postESRepo es.PostRepo,
	cacheTTL time.Duration,
) AccountService {
	return &accountServiceImpl{
		accountRepo:  accountRepo,
		postRepo:     postRepo,
		metricRepo:   metricRepo,
		audienceRepo: audienceRepo,
		insightRepo:  insightRepo,
		postESRepo:   postESRepo,
		cacheTTL:     cacheTTL,
	}
}

func (s *accountServiceImpl) CreateAccount(ctx context.Context, userID uint64, req *dto.AccountCreateDTO) (*dto.AccountDTO, error) {
	account := &model.SocialAccount{
		UserID:          userID,
		Platform:        req.Platform,
		AccountID:       req.AccountID,
		AccountUsername: req.AccountUsername,
		AccessToken:     req.AccessToken,
		RefreshToken:    req.RefreshToken,
		TokenExpiresAt:  req.TokenExpiresAt,
		IsActive:        true,
	}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		if isDuplicateError(err) {
			return nil, ErrAccountExist
		}
		return nil, err
	}
	// is_active 列默认值为 1，false 需要单独写
	if req.IsActive != nil && !*req.IsActive {
		if err := s.accountRepo.Update(ctx, account.ID, map[string]any{"is_active": false}); err != nil {
			return nil, err
		}
		account.IsActive = false
	}

	invalidateUserCache(ctx, userID)
	return toAccountDTO(account), nil
}

func (s *accountServiceImpl) GetAccount(ctx context.Context, userID, id uint64) (*dto.AccountDTO, error) {
	account, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return toAccountDTO(account), nil
}

func (s *accountServiceImpl) getOwned(ctx context.Context, userID, id uint64) (*model.SocialAccount, error) {
	account, err := s.accountRepo.GetOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}
	return account, nil
}

func (s *accountServiceImpl) ListAccounts(ctx context.Context, userID uint64, query *dto.AccountListQuery) ([]*dto.AccountDTO, error) {
	accounts, err := s.accountRepo.List(ctx, userID, repository.AccountFilter{
		Platform: query.Platform,
		IsActive: query.IsActive,
		Search:   query.Search,
	})
	if err != nil {
		return nil, err
	}
	res := make([]*dto.AccountDTO, 0, len(accounts))
	for _, a := range accounts {
		res = append(res, toAccountDTO(a))
	}
	return res, nil
}

func (s *accountServiceImpl) UpdateAccount(ctx context.Context, userID, id uint64, req *dto.AccountUpdateDTO) (*dto.AccountDTO, error) {
	if _, err := s.getOwned(ctx, userID, id); err != nil {
		return nil, err
	}

	fields := make(map[string]any)
	if req.AccountUsername != nil {
		fields["account_username"] = *req.AccountUsername
	}
	if req.AccessToken != nil {
		fields["access_token"] = *req.AccessToken
	}
	if req.RefreshToken != nil {
		fields["refresh_token"] = *req.RefreshToken
	}
	if req.TokenExpiresAt != nil {
		fields["token_expires_at"] = *req.TokenExpiresAt
	}
	if req.IsActive != nil {
		fields["is_active"] = *req.IsActive
	}
	if len(fields) > 0 {
		if err := s.accountRepo.Update(ctx, id, fields); err != nil {
			return nil, err
		}
		invalidateUserCache(ctx, userID)
	}
	return s.GetAccount(ctx, userID, id)
}

// DeleteAccount 关系库级联删除帖子、指标、评论、规律；洞察与搜索文档在这里清理
func (s *accountServiceImpl) DeleteAccount(ctx context.Context, userID, id uint64) error {
	rows, err := s.accountRepo.Delete(ctx, userID, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrAccountNotFound
	}

	if s.insightRepo != nil {
		if err = s.insightRepo.DeleteByAccount(ctx, id); err != nil {
			log.ErrorContext(ctx, "delete account insights error", "account_id", id, "err", err)
		}
	}
	if s.postESRepo != nil {
		if err = s.postESRepo.DeleteByAccount(ctx, id); err != nil {
			log.ErrorContext(ctx, "delete account posts from es error", "account_id", id, "err", err)
		}
	}

	invalidateUserCache(ctx, userID)
	return nil
}

func (s *accountServiceImpl) SyncAccount(ctx context.Context, userID, id uint64) (*dto.AccountDTO, error) {
	account, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	now := nowFunc().UTC()
	if err = s.accountRepo.TouchSynced(ctx, id, now); err != nil {
		return nil, err
	}
	account.LastSynced = &now
	return toAccountDTO(account), nil
}

func (s *accountServiceImpl) SyncActiveAccounts(ctx context.Context) (int, error) {
	accounts, err := s.accountRepo.ListActive(ctx)
	if err != nil {
		return 0, err
	}
	synced := 0
	for _, a := range accounts {
		if err = s.accountRepo.TouchSynced(ctx, a.ID, nowFunc().UTC()); err != nil {
			log.ErrorContext(ctx, "touch account synced error", "account_id", a.ID, "err", err)
			continue
		}
		synced++
	}
	return synced, nil
}

func (s *accountServiceImpl) GetOverview(ctx context.Context, userID uint64) ([]*dto.AccountOverviewDTO, error) {
	key := consts.AccountOverviewKey + strconv.FormatUint(userID, 10)
	return cached(ctx, "account_overview", key, s.cacheTTL, func() ([]*dto.AccountOverviewDTO, error) {
		return s.buildOverview(ctx, userID)
	})
}

func (s *accountServiceImpl) buildOverview(ctx context.Context, userID uint64) ([]*dto.AccountOverviewDTO, error) {
	accounts, err := s.accountRepo.List(ctx, userID, repository.AccountFilter{})
	if err != nil {
		return nil, err
	}
	accountIDs := make([]uint64, 0, len(accounts))
	for _, a := range accounts {
		accountIDs = append(accountIDs, a.ID)
	}
	audiences, err := s.audienceRepo.GetLatestAudiences(ctx, accountIDs)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.AccountOverviewDTO, 0, len(accounts))
	for _, a := range accounts {
		posts, err := s.postRepo.ListPostsByAccount(ctx, a.ID)
		if err != nil {
			return nil, err
		}
		latest, err := s.metricRepo.GetLatestMetrics(ctx, postIDs(posts))
		if err != nil {
			return nil, err
		}
		var sums metricSums
		for _, p := range posts {
			sums.add(latest[p.ID])
		}

		item := &dto.AccountOverviewDTO{
			ID:                a.ID,
			Platform:          a.Platform,
			AccountUsername:   a.AccountUsername,
			PostsCount:        sums.posts,
			TotalLikes:        sums.likes,
			TotalComments:     sums.comments,
			TotalShares:       sums.shares,
			AvgEngagementRate: sums.avgEngagement(),
		}
		if aud, ok := audiences[a.ID]; ok {
			item.FollowersCount = aud.FollowersCount
		}
		res = append(res, item)
	}
	return res, nil
}
