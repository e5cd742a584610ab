package service

import (
	"SocialPulse/internal/api/dto"
	"SocialPulse/internal/model"
	"SocialPulse/internal/pkg/consts"
	"SocialPulse/internal/pkg/util"
	"SocialPulse/internal/repository"
	"context"
	"sort"
	"time"
)

type AudienceService interface {
	ListAudiences(ctx context.Context, userID uint64, query *dto.AudienceQuery) ([]*dto.AudienceDTO, error)
	CreateAudience(ctx context.Context, userID uint64, req *dto.AudienceCreateDTO) (*dto.AudienceDTO, error)
	// Demographics 取最新画像，没有时返回 ErrAudienceNotFound
	Demographics(ctx context.Context, userID uint64, accountID *uint64) (*dto.DemographicsDTO, error)
	GrowthTrend(ctx context.Context, userID uint64, query *dto.AudienceQuery) ([]*dto.GrowthPointDTO, error)
}

type audienceServiceImpl struct {
	accountRepo  repository.SocialAccountRepo
	audienceRepo repository.AudienceRepo
}

func NewAudienceService(accountRepo repository.SocialAccountRepo, audienceRepo repository.AudienceRepo) AudienceService {
	return &audienceServiceImpl{
		accountRepo:  accountRepo,
		audienceRepo: audienceRepo,
	}
}

func (s *audienceServiceImpl) ListAudiences(ctx context.Context, userID uint64, query *dto.AudienceQuery) ([]*dto.AudienceDTO, error) {
	filter := repository.AudienceFilter{AccountID: query.AccountID}
	if query.Days > 0 {
		since := util.WindowStart(nowFunc(), query.Days)
		filter.Since = &since
	}
	list, err := s.audienceRepo.ListAudiences(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	res := make([]*dto.AudienceDTO, 0, len(list))
	for _, a := range list {
		res = append(res, toAudienceDTO(a))
	}
	return res, nil
}

func (s *audienceServiceImpl) CreateAudience(ctx context.Context, userID uint64, req *dto.AudienceCreateDTO) (*dto.AudienceDTO, error) {
	account, err := s.accountRepo.GetOwned(ctx, userID, req.SocialAccountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}

	audience := &model.Audience{
		SocialAccountID: account.ID,
		FollowersCount:  req.FollowersCount,
		FollowingCount:  req.FollowingCount,
		AgeRange13To17:  req.AgeRange13To17,
		AgeRange18To24:  req.AgeRange18To24,
		AgeRange25To34:  req.AgeRange25To34,
		AgeRange35To44:  req.AgeRange35To44,
		AgeRange45To54:  req.AgeRange45To54,
		AgeRange55Plus:  req.AgeRange55Plus,
		GenderMale:      req.GenderMale,
		GenderFemale:    req.GenderFemale,
		GenderOther:     req.GenderOther,
		TopCountries:    toLocationModels(req.TopCountries),
		TopCities:       toLocationModels(req.TopCities),
		RecordedAt:      nowFunc().UTC(),
	}
	if req.RecordedAt != nil {
		audience.RecordedAt = req.RecordedAt.UTC()
	}
	if err = s.audienceRepo.CreateAudience(ctx, audience); err != nil {
		return nil, err
	}
	invalidateUserCache(ctx, userID)
	return toAudienceDTO(audience), nil
}

func (s *audienceServiceImpl) Demographics(ctx context.Context, userID uint64, accountID *uint64) (*dto.DemographicsDTO, error) {
	a, err := s.audienceRepo.GetLatestAudienceOwned(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrAudienceNotFound
	}
	return &dto.DemographicsDTO{
		SocialAccountID: a.SocialAccountID,
		FollowersCount:  a.FollowersCount,
		AgeDistribution: map[string]float64{
			"13-17": a.AgeRange13To17,
			"18-24": a.AgeRange18To24,
			"25-34": a.AgeRange25To34,
			"35-44": a.AgeRange35To44,
			"45-54": a.AgeRange45To54,
			"55+":   a.AgeRange55Plus,
		},
		Gender: map[string]float64{
			"male":   a.GenderMale,
			"female": a.GenderFemale,
			"other":  a.GenderOther,
		},
		TopCountries: toLocationDTOs(a.TopCountries),
		TopCities:    toLocationDTOs(a.TopCities),
		RecordedAt:   a.RecordedAt,
	}, nil
}

// GrowthTrend 每天取各账号当天最后一次快照求和，只返回有数据的日期
func (s *audienceServiceImpl) GrowthTrend(ctx context.Context, userID uint64, query *dto.AudienceQuery) ([]*dto.GrowthPointDTO, error) {
	days := query.Days
	if days <= 0 {
		days = consts.DefaultGrowthDays
	}
	since := util.WindowStart(nowFunc(), days)
	list, err := s.audienceRepo.ListAudiences(ctx, userID, repository.AudienceFilter{
		AccountID: query.AccountID,
		Since:     &since,
	})
	if err != nil {
		return nil, err
	}
	return BuildGrowthTrend(list), nil
}

// BuildGrowthTrend 输入需按 recorded_at 升序
func BuildGrowthTrend(list []*model.Audience) []*dto.GrowthPointDTO {
	type dayKey struct {
		date    string
		account uint64
	}
	lastOfDay := make(map[dayKey]*model.Audience)
	dates := make([]string, 0)
	seenDate := make(map[string]struct{})
	for _, a := range list {
		date := a.RecordedAt.UTC().Format(time.DateOnly)
		lastOfDay[dayKey{date, a.SocialAccountID}] = a
		if _, ok := seenDate[date]; !ok {
			seenDate[date] = struct{}{}
			dates = append(dates, date)
		}
	}
	sort.Strings(dates)

	totals := make(map[string]*dto.GrowthPointDTO, len(dates))
	for k, a := range lastOfDay {
		p, ok := totals[k.date]
		if !ok {
			p = &dto.GrowthPointDTO{Date: k.date}
			totals[k.date] = p
		}
		p.FollowersCount += a.FollowersCount
		p.FollowingCount += a.FollowingCount
	}

	res := make([]*dto.GrowthPointDTO, 0, len(dates))
	for i, d := range dates {
		p := totals[d]
		if i > 0 {
			p.Change = p.FollowersCount - res[i-1].FollowersCount
		}
		res = append(res, p)
	}
	return res
}
