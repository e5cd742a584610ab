package service

import (
	"SocialPulse/internal/api/dto"
	"SocialPulse/internal/model"
	"SocialPulse/internal/pkg/consts"
	"SocialPulse/internal/pkg/metrics"
	"SocialPulse/internal/pkg/redis"
	"SocialPulse/internal/repository"
	"context"
	log "log/slog"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
)

const (
	foldLockTTL       = 10 * time.Minute
	maxPatternSlots   = 7 * 24
	defaultSlotsLimit = 10
)

type PatternService interface {
	ListPatterns(ctx context.Context, userID uint64, accountID *uint64) ([]*dto.EngagementPatternDTO, error)
	OptimalTimes(ctx context.Context, userID uint64, query *dto.PatternQuery) ([]*dto.EngagementPatternDTO, error)
	Heatmap(ctx context.Context, userID uint64, accountID *uint64) (dto.HeatmapDTO, error)
	BestSchedule(ctx context.Context, userID uint64, query *dto.ScheduleQuery) (*dto.BestScheduleDTO, error)
	// FoldAccount 把账号下每个帖子的最新快照折叠进规律表。账号不存在时返回 nil
	FoldAccount(ctx context.Context, accountID uint64) (*dto.FoldResultDTO, error)
	// FoldAll 遍历全部启用账号，单个账号失败不影响其他账号
	FoldAll(ctx context.Context) ([]*dto.FoldResultDTO, error)
}

type patternServiceImpl struct {
	accountRepo repository.SocialAccountRepo
	postRepo    repository.PostRepo
	metricRepo  repository.PostMetricRepo
	patternRepo repository.EngagementPatternRepo
	metrics     *metrics.Metrics
}

func NewPatternService(
	accountRepo repository.SocialAccountRepo,
	postRepo repository.PostRepo,
	metricRepo repository.PostMetricRepo,
	patternRepo repository.EngagementPatternRepo,
	m *metrics.Metrics,
) PatternService {
	return &patternServiceImpl{
		accountRepo: accountRepo,
		postRepo:    postRepo,
		metricRepo:  metricRepo,
		patternRepo: patternRepo,
		metrics:     m,
	}
}

func (s *patternServiceImpl) ListPatterns(ctx context.Context, userID uint64, accountID *uint64) ([]*dto.EngagementPatternDTO, error) {
	patterns, err := s.patternRepo.ListPatterns(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}
	return toPatternDTOs(patterns), nil
}

func toPatternDTOs(patterns []*model.EngagementPattern) []*dto.EngagementPatternDTO {
	res := make([]*dto.EngagementPatternDTO, 0, len(patterns))
	for _, p := range patterns {
		res = append(res, toPatternDTO(p))
	}
	return res
}

func (s *patternServiceImpl) OptimalTimes(ctx context.Context, userID uint64, query *dto.PatternQuery) ([]*dto.EngagementPatternDTO, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = defaultSlotsLimit
	}
	patterns, err := s.patternRepo.TopPatterns(ctx, userID, query.AccountID, limit)
	if err != nil {
		return nil, err
	}
	return toPatternDTOs(patterns), nil
}

func (s *patternServiceImpl) Heatmap(ctx context.Context, userID uint64, accountID *uint64) (dto.HeatmapDTO, error) {
	patterns, err := s.patternRepo.ListPatterns(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}
	return BuildHeatmap(patterns), nil
}

// BuildHeatmap 同一槽位的多个账号按样本数加权平均
func BuildHeatmap(patterns []*model.EngagementPattern) dto.HeatmapDTO {
	res := make(dto.HeatmapDTO, len(consts.DayNames))
	for _, name := range consts.DayNames {
		res[name] = make(map[int]*dto.HeatmapCellDTO)
	}
	for _, p := range patterns {
		if p.DayOfWeek < 0 || p.DayOfWeek >= len(consts.DayNames) || p.PostCount == 0 {
			continue
		}
		day := res[consts.DayNames[p.DayOfWeek]]
		cell, ok := day[p.HourOfDay]
		if !ok {
			cell = &dto.HeatmapCellDTO{}
			day[p.HourOfDay] = cell
		}
		total := cell.PostCount + p.PostCount
		cell.AvgEngagementRate = (cell.AvgEngagementRate*float64(cell.PostCount) + p.AvgEngagementRate*float64(p.PostCount)) / float64(total)
		cell.PostCount = total
	}
	for _, day := range res {
		for _, cell := range day {
			cell.AvgEngagementRate = round2(cell.AvgEngagementRate)
		}
	}
	return res
}

func (s *patternServiceImpl) BestSchedule(ctx context.Context, userID uint64, query *dto.ScheduleQuery) (*dto.BestScheduleDTO, error) {
	perWeek := query.PostsPerWeek
	if perWeek <= 0 {
		perWeek = consts.DefaultPostsPerWeek
	}
	patterns, err := s.patternRepo.TopPatterns(ctx, userID, query.AccountID, maxPatternSlots)
	if err != nil {
		return nil, err
	}
	return &dto.BestScheduleDTO{
		PostsPerWeek: perWeek,
		Schedule:     PlanSchedule(patterns, perWeek),
	}, nil
}

// PlanSchedule 输入按互动率倒序。先给每天挑最好的时段，名额还有剩余再按整体排名补足，
// 结果按周一到周日、小时升序排列
func PlanSchedule(patterns []*model.EngagementPattern, perWeek int) []*dto.ScheduleSlotDTO {
	picked := make([]*model.EngagementPattern, 0, perWeek)
	used := make(map[*model.EngagementPattern]struct{})
	dayUsed := make(map[int]struct{})

	for _, p := range patterns {
		if len(picked) >= perWeek {
			break
		}
		if _, ok := dayUsed[p.DayOfWeek]; ok {
			continue
		}
		dayUsed[p.DayOfWeek] = struct{}{}
		used[p] = struct{}{}
		picked = append(picked, p)
	}
	for _, p := range patterns {
		if len(picked) >= perWeek {
			break
		}
		if _, ok := used[p]; ok {
			continue
		}
		used[p] = struct{}{}
		picked = append(picked, p)
	}

	sort.Slice(picked, func(i, j int) bool {
		if picked[i].DayOfWeek != picked[j].DayOfWeek {
			return picked[i].DayOfWeek < picked[j].DayOfWeek
		}
		return picked[i].HourOfDay < picked[j].HourOfDay
	})

	res := make([]*dto.ScheduleSlotDTO, 0, len(picked))
	for _, p := range picked {
		res = append(res, &dto.ScheduleSlotDTO{
			Day:                    consts.DayNames[p.DayOfWeek],
			DayOfWeek:              p.DayOfWeek,
			Hour:                   p.HourOfDay,
			ExpectedEngagementRate: round2(p.AvgEngagementRate),
			PostCount:              p.PostCount,
		})
	}
	return res
}

func (s *patternServiceImpl) FoldAccount(ctx context.Context, accountID uint64) (*dto.FoldResultDTO, error) {
	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, nil
	}

	if redis.Rdb != nil {
		lockKey := consts.PatternFoldLock + strconv.FormatUint(accountID, 10)
		lockValue := uuid.NewString()
		ok, err := redis.TryLock(ctx, lockKey, lockValue, foldLockTTL, 1)
		if err != nil {
			return nil, err
		}
		if !ok {
			log.WarnContext(ctx, "pattern fold already running", "account_id", accountID)
			return &dto.FoldResultDTO{AccountID: accountID}, nil
		}
		defer redis.UnLock(ctx, lockKey, lockValue)
	}

	posts, err := s.postRepo.ListPostsByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	latest, err := s.metricRepo.GetLatestMetrics(ctx, postIDs(posts))
	if err != nil {
		return nil, err
	}

	res := &dto.FoldResultDTO{AccountID: accountID, Scanned: len(posts)}
	for _, p := range posts {
		m, ok := latest[p.ID]
		if !ok {
			res.Skipped++
			s.countFold("no_snapshot")
			continue
		}
		hour, day := SlotOf(p.PostedAt)
		key := model.PatternKey{SocialAccountID: accountID, HourOfDay: hour, DayOfWeek: day}
		folded, err := s.patternRepo.FoldSnapshot(ctx, key, p.ID, m.ID, func(pattern *model.EngagementPattern) {
			FoldMetric(pattern, m)
		})
		if err != nil {
			s.countFold("error")
			return res, err
		}
		if folded {
			res.Folded++
			s.countFold("folded")
		} else {
			res.Skipped++
			s.countFold("seen")
		}
	}
	return res, nil
}

func (s *patternServiceImpl) FoldAll(ctx context.Context) ([]*dto.FoldResultDTO, error) {
	accounts, err := s.accountRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	results := make([]*dto.FoldResultDTO, 0, len(accounts))
	for _, a := range accounts {
		r, err := s.FoldAccount(ctx, a.ID)
		if err != nil {
			log.ErrorContext(ctx, "fold account patterns error", "account_id", a.ID, "err", err)
			continue
		}
		if r != nil {
			results = append(results, r)
		}
	}
	return results, nil
}

func (s *patternServiceImpl) countFold(result string) {
	if s.metrics != nil {
		s.metrics.PatternFolds.WithLabelValues(result).Inc()
	}
}
